// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"bytes"
	"sort"
)

// inverseMatrix computes the inverse transform by rebuilding the sorted
// rotation matrix column by column: prepend the transformed block to every
// working row, re-sort, and repeat n times. After iteration k the working
// rows hold the first k columns of the matrix; after n iterations they are
// the full set of rotations, and the row ending in the sentinel is the
// augmented original block.
//
// This costs O(n² log n) time and O(n²) space. It exists purely as a
// correctness oracle for Inverse in tests and fuzzing; nothing on a
// production path calls it.
func inverseMatrix(xfrm []byte, sentinel byte) ([]byte, error) {
	n := len(xfrm)
	table := make([][]byte, n)
	for i := 0; i < n; i++ {
		for j := range table {
			row := make([]byte, 0, i+1)
			row = append(row, xfrm[j])
			row = append(row, table[j]...)
			table[j] = row
		}
		sort.Slice(table, func(a, b int) bool {
			return bytes.Compare(table[a], table[b]) < 0
		})
	}
	for _, row := range table {
		if len(row) > 0 && row[len(row)-1] == sentinel {
			return row[:len(row)-1], nil
		}
	}
	return nil, ErrMalformedBlock
}
