// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import "io"

// PickSentinel scans r to completion and returns the smallest byte value
// that never occurs in it, for use as the sentinel when transforming blocks
// drawn from the same data.
//
// It reports ErrSentinelExhausted if every one of the 256 byte values occurs
// in r. The scan consumes r; callers that need to transform the same data
// afterwards must buffer it or reopen the source.
func PickSentinel(r io.Reader) (byte, error) {
	var seen [256]bool
	buf := make([]byte, 8192)
	for {
		n, err := r.Read(buf)
		for _, c := range buf[:n] {
			seen[c] = true
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	return pickSentinel(&seen)
}

// pickSentinel returns the smallest byte value not marked in seen.
func pickSentinel(seen *[256]bool) (byte, error) {
	for c, ok := range seen {
		if !ok {
			return byte(c), nil
		}
	}
	return 0, ErrSentinelExhausted
}
