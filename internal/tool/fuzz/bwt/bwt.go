// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz

package bwt

import (
	"bytes"

	gbwt "github.com/dsnet/bwt"
)

func Fuzz(data []byte) int {
	sentinel, err := gbwt.PickSentinel(bytes.NewReader(data))
	if err != nil {
		// All 256 byte values occur; the transform is not applicable.
		return 0
	}

	xfrm := gbwt.Transform(data, sentinel)
	if len(xfrm) != len(data)+1 {
		panic("length law violated")
	}
	if bytes.Count(xfrm, []byte{sentinel}) != 1 {
		panic("sentinel count violated")
	}

	output, err := gbwt.Inverse(xfrm, sentinel)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(output, data) {
		panic("round trip mismatch")
	}

	// The matrix method is quadratic; only cross-check small inputs.
	if len(xfrm) <= 512 {
		ref, err := gbwt.InverseMatrix(xfrm, sentinel)
		if err != nil {
			panic(err)
		}
		if !bytes.Equal(ref, output) {
			panic("oracle mismatch")
		}
	}

	// Inverting the raw input must either fail cleanly or terminate with
	// some output; it must never hang or read out of bounds.
	gbwt.Inverse(data, '~')
	return 1
}
