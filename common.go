// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwt implements the Burrows-Wheeler Transform over fixed-size
// blocks of a byte stream.
//
// The Burrows-Wheeler Transform is a reversible permutation of a block of
// bytes that tends to group identical bytes together, which makes the output
// far more compressible by later stages of a block-sorting compressor.
// This package implements only the transform pair itself; it performs no
// entropy coding and no move-to-front stage.
//
// Rather than recording the origin pointer of the sorted rotation matrix,
// this implementation delimits each block with a sentinel: a byte value that
// is guaranteed to be absent from the data being transformed. The sentinel
// is selected once by scanning the entire input stream and is recorded as a
// one-byte header of the encoded stream. Since the sentinel occurs exactly
// once per augmented block, all rotations of a block are distinct and the
// inverse transform can locate the original string without extra metadata.
//
// Each block is transformed independently; no state is carried between
// blocks other than the stream-wide sentinel.
package bwt

import "fmt"

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "bwt: " + string(e) }

var (
	// ErrSentinelExhausted indicates that all 256 byte values occur in the
	// input, leaving no byte value available to act as the sentinel.
	// The stream cannot be transformed; there is no fallback.
	ErrSentinelExhausted error = Error("no unused byte value for sentinel")

	// ErrInvalidBlockSize indicates a configured block size that is not a
	// positive number of bytes.
	ErrInvalidBlockSize error = Error("invalid block size")

	// ErrMalformedBlock indicates a transformed block that cannot have been
	// produced by the forward transform: the sentinel occurs zero or
	// multiple times, or the block does not decode to a permutation of
	// itself.
	ErrMalformedBlock error = Error("malformed transformed block")

	errClosed error = Error("stream is closed")
)

// BlockError reports a decode failure for a specific block, identified by
// its zero-based index within the stream.
type BlockError struct {
	Index int64 // Index of the offending block
	Err   error // Underlying error (usually ErrMalformedBlock)
}

func (e *BlockError) Error() string { return fmt.Sprintf("bwt: block %d: %v", e.Index, e.Err) }
func (e *BlockError) Unwrap() error { return e.Err }
