// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz

// This file exists to export internal implementation details for fuzz testing.

package bwt

func InverseMatrix(xfrm []byte, sentinel byte) ([]byte, error) {
	return inverseMatrix(xfrm, sentinel)
}
