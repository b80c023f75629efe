// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

// The forward transform used here is the textbook rotation sort: append the
// sentinel, sort all cyclic rotations of the augmented block by unsigned
// byte value, and emit the last byte of each rotation in sorted order.
// Rotations are represented by their start offsets into the augmented block,
// so the sorted rotation matrix is never materialized.
//
// The rotation sort runs in O(n² log n) time in the worst case. A suffix
// array construction (such as SA-IS) would bring this down to O(n), but for
// the modest block sizes this package targets the rotation sort is the
// reference semantics and is kept deliberately simple. The inverse direction
// is where the linear-time algorithm matters; see inverse.go.

import "sort"

// rotationSort sorts rotation start offsets of an augmented block by the
// byte-value lexicographic order of the rotations they denote.
//
// Because the sentinel occurs exactly once in the augmented block, no two
// rotations are equal and every comparison terminates at the first position
// where the rotations differ.
type rotationSort struct {
	aug  []byte // Augmented block (content plus trailing sentinel)
	perm []int  // Rotation start offsets being permuted
}

func (s *rotationSort) Len() int      { return len(s.perm) }
func (s *rotationSort) Swap(i, j int) { s.perm[i], s.perm[j] = s.perm[j], s.perm[i] }

func (s *rotationSort) Less(i, j int) bool {
	n := len(s.aug)
	xi, xj := s.perm[i], s.perm[j]
	for k := 0; k < n; k++ {
		bi, bj := s.aug[xi], s.aug[xj]
		if bi != bj {
			return bi < bj
		}
		if xi++; xi == n {
			xi = 0
		}
		if xj++; xj == n {
			xj = 0
		}
	}
	return false
}

// Transform computes the forward Burrows-Wheeler Transform of block and
// returns the transformed block, which is always exactly one byte longer
// than the input.
//
// The sentinel must not occur anywhere in block. This precondition is not
// re-validated here; violating it produces output that is silently not
// invertible. Callers that obtain the sentinel from PickSentinel over the
// stream the blocks are drawn from satisfy the precondition by construction.
func Transform(block []byte, sentinel byte) []byte {
	n := len(block) + 1
	aug := make([]byte, n)
	copy(aug, block)
	aug[n-1] = sentinel

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.Sort(&rotationSort{aug: aug, perm: perm})

	// The last byte of the rotation starting at offset k is the byte that
	// cyclically precedes position k.
	out := make([]byte, n)
	for i, k := range perm {
		if k == 0 {
			k = n
		}
		out[i] = aug[k-1]
	}
	return out
}
