// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

// The inverse transform recovers the original block from the last column of
// the sorted rotation matrix using the LF-mapping: for the rotation whose
// last-column entry sits at row i, the row holding that rotation shifted
// right by one is firstOccurrence[T[i]] + rank[i], where rank[i] counts the
// prior occurrences of T[i] and firstOccurrence[c] counts the rows whose
// first column holds a value smaller than c. Walking this mapping from the
// sentinel's row visits the original string backwards, one byte per step,
// in O(n) total time and O(n + 256) space.
//
// References:
//	https://en.wikipedia.org/wiki/Burrows%E2%80%93Wheeler_transform
//	M. Burrows and D. J. Wheeler, "A Block-sorting Lossless Data
//	Compression Algorithm", SRC Research Report 124, 1994.

// Inverse computes the inverse Burrows-Wheeler Transform of xfrm and
// returns the recovered block, which is always exactly one byte shorter
// than the input.
//
// It reports ErrMalformedBlock if xfrm cannot have been produced by
// Transform with the given sentinel: the sentinel occurs zero or multiple
// times, or the LF-mapping walk closes before reproducing every byte.
// Malformed input never causes an unbounded loop or an out-of-range access.
func Inverse(xfrm []byte, sentinel byte) ([]byte, error) {
	n := len(xfrm)

	// Pass 1: per-position occurrence ranks, byte histogram, sentinel row.
	rank := make([]int, n)
	var count [256]int
	row := -1
	for i, c := range xfrm {
		if c == sentinel {
			if row >= 0 {
				return nil, ErrMalformedBlock
			}
			row = i
		}
		rank[i] = count[c]
		count[c]++
	}
	if row < 0 {
		return nil, ErrMalformedBlock
	}

	// Pass 2: firstOccurrence[c] is the cumulative count of all byte values
	// strictly less than c, which is the row of c's first appearance in the
	// sorted first column.
	var firstOccurrence [256]int
	var sum int
	for c, cnt := range count {
		firstOccurrence[c] = sum
		sum += cnt
	}

	// Walk the LF-mapping starting from the sentinel's row. The mapping is
	// a permutation of the rows, so the walk returns to the sentinel within
	// n steps even for corrupted input.
	out := make([]byte, 0, n-1)
	for i := 0; i < n; i++ {
		row = firstOccurrence[xfrm[row]] + rank[row]
		c := xfrm[row]
		if c == sentinel {
			break
		}
		out = append(out, c)
	}
	if len(out) != n-1 {
		// The walk cycled back early without visiting every row.
		return nil, ErrMalformedBlock
	}

	// The walk produced the block backwards.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
