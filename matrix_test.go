// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"bytes"
	"testing"

	"github.com/dsnet/bwt/internal/testutil"
)

// TestOracleAgreement checks that the linear-time inverse and the
// matrix-rebuilding inverse agree on every valid transformed block.
// The matrix method costs O(n² log n), so the inputs stay small.
func TestOracleAgreement(t *testing.T) {
	const sentinel = '~'
	alphabet := []byte("abcdeABCDE01")

	rand := testutil.NewRand(2)
	for _, n := range []int{0, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 128} {
		input := rand.BytesIn(alphabet, n)
		xfrm := Transform(input, sentinel)

		got, err := Inverse(xfrm, sentinel)
		if err != nil {
			t.Fatalf("size %d, unexpected error: %v", n, err)
		}
		want, err := inverseMatrix(xfrm, sentinel)
		if err != nil {
			t.Fatalf("size %d, unexpected error: %v", n, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("size %d, inverse mismatch:\ngot  %v\nwant %v", n, ss(got), ss(want))
		}
		if !bytes.Equal(want, input) {
			t.Errorf("size %d, oracle round trip mismatch:\ngot  %v\nwant %v", n, ss(want), ss(input))
		}
	}
}

func TestMatrixMalformed(t *testing.T) {
	if _, err := inverseMatrix([]byte("banana"), '$'); err != ErrMalformedBlock {
		t.Errorf("error mismatch: got %v, want %v", err, ErrMalformedBlock)
	}
}
