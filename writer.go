// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"hash/crc32"
	"io"
	"sync"

	"github.com/dsnet/golib/hashmerge"
)

// DefaultBlockSize is the number of content bytes transformed per block when
// the configuration does not specify one. Larger blocks improve the grouping
// quality of the transform but the rotation sort cost grows superlinearly
// with the block size.
const DefaultBlockSize = 1 << 12

// WriterConfig configures a Writer. The zero value (or a nil pointer) means
// default block size and sequential operation.
type WriterConfig struct {
	// BlockSize is the number of content bytes transformed per block.
	// It counts the original bytes only: every transformed block written to
	// the stream is exactly BlockSize+1 bytes (except a shorter final
	// block), since the forward transform appends the sentinel.
	//
	// It must be positive; zero means DefaultBlockSize.
	BlockSize int

	// NumWorkers is the number of goroutines transforming blocks
	// concurrently during Close. Values below 2 mean sequential operation.
	// Output blocks are always written in their original order regardless
	// of which worker finishes first.
	NumWorkers int
}

// A Writer encodes a byte stream as a sentinel header followed by the
// Burrows-Wheeler Transform of each fixed-size block of the stream.
//
// The sentinel must be chosen from the byte values absent from the entire
// stream, so the Writer buffers all written data in memory and performs the
// transform when Close is called. A stream that uses all 256 byte values
// cannot be encoded; Close then reports ErrSentinelExhausted and writes
// nothing.
type Writer struct {
	// InputOffset is the number of raw bytes accepted by Write.
	InputOffset int64
	// OutputOffset is the number of encoded bytes emitted, including the
	// sentinel header. It is zero until Close.
	OutputOffset int64

	wr        io.Writer
	buf       []byte
	seen      [256]bool
	blockSize int
	workers   int

	sentinel     byte
	haveSentinel bool
	crc          uint32
	err          error
	closed       bool
}

// NewWriter returns a Writer encoding to w under the given configuration.
// It reports ErrInvalidBlockSize if conf specifies a negative block size.
func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	zw := &Writer{wr: w, blockSize: DefaultBlockSize, workers: 1}
	if conf != nil {
		if conf.BlockSize < 0 {
			return nil, ErrInvalidBlockSize
		}
		if conf.BlockSize > 0 {
			zw.blockSize = conf.BlockSize
		}
		if conf.NumWorkers > 1 {
			zw.workers = conf.NumWorkers
		}
	}
	return zw, nil
}

// Write buffers buf for encoding at Close. It never fails before Close.
func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.closed {
		return 0, errClosed
	}
	for _, c := range buf {
		zw.seen[c] = true
	}
	zw.buf = append(zw.buf, buf...)
	zw.InputOffset += int64(len(buf))
	return len(buf), nil
}

// Close selects the sentinel, writes the one-byte header, and writes the
// transformed blocks in stream order. It must be called exactly once;
// subsequent calls report the first error encountered, if any.
func (zw *Writer) Close() error {
	if zw.closed {
		return zw.err
	}
	zw.closed = true

	sentinel, err := pickSentinel(&zw.seen)
	if err != nil {
		zw.err = err
		return err
	}
	zw.sentinel = sentinel
	zw.haveSentinel = true

	if _, err := zw.wr.Write([]byte{sentinel}); err != nil {
		zw.err = err
		return err
	}
	zw.OutputOffset++

	nblks := (len(zw.buf) + zw.blockSize - 1) / zw.blockSize
	type encodedBlock struct {
		xfrm []byte
		crc  uint32 // CRC-32 of the raw block
		n    int    // Raw block length
	}
	results := make([]encodedBlock, nblks)
	encode := func(i int) {
		blk := zw.buf[i*zw.blockSize : min((i+1)*zw.blockSize, len(zw.buf))]
		results[i] = encodedBlock{
			xfrm: Transform(blk, sentinel),
			crc:  crc32.ChecksumIEEE(blk),
			n:    len(blk),
		}
	}

	if zw.workers > 1 && nblks > 1 {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < zw.workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					encode(i)
				}
			}()
		}
		for i := 0; i < nblks; i++ {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	} else {
		for i := 0; i < nblks; i++ {
			encode(i)
		}
	}

	for _, r := range results {
		if _, err := zw.wr.Write(r.xfrm); err != nil {
			zw.err = err
			return err
		}
		zw.OutputOffset += int64(len(r.xfrm))
		zw.crc = hashmerge.CombineCRC32(crc32.IEEE, zw.crc, r.crc, int64(r.n))
	}
	zw.buf = nil
	return nil
}

// Sentinel returns the sentinel byte selected for the stream. It is not
// known until Close succeeds.
func (zw *Writer) Sentinel() (byte, bool) {
	return zw.sentinel, zw.haveSentinel
}

// Checksum returns the CRC-32 (IEEE) of the raw input stream, available
// after Close. A decoder for the same stream computes the same value, which
// lets surrounding tooling verify a round trip without retaining the input.
func (zw *Writer) Checksum() uint32 {
	return zw.crc
}
