// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"hash/crc32"
	"io"
	"sync"

	"github.com/dsnet/bwt/internal/reorder"
	"github.com/dsnet/golib/hashmerge"
)

// ReaderConfig configures a Reader. The zero value (or a nil pointer) means
// default block size and sequential operation.
type ReaderConfig struct {
	// BlockSize is the content size the stream was encoded with. It must
	// match the encoder's value, since it determines the fixed chunk length
	// BlockSize+1 of each transformed block. It must be positive; zero
	// means DefaultBlockSize.
	BlockSize int

	// NumWorkers is the number of goroutines inverting blocks concurrently.
	// Values below 2 mean sequential operation. Decoded blocks are always
	// delivered in stream order regardless of which worker finishes first.
	NumWorkers int
}

// A Reader decodes a stream produced by a Writer: a one-byte sentinel
// header followed by transformed blocks of BlockSize+1 bytes each, the last
// of which may be shorter.
type Reader struct {
	// InputOffset is the number of encoded bytes consumed, including the
	// sentinel header.
	InputOffset int64
	// OutputOffset is the number of decoded bytes returned by Read.
	OutputOffset int64

	rd        io.Reader
	blockSize int
	workers   int

	sentinel     byte
	haveSentinel bool
	out          []byte // Decoded bytes not yet served
	blkIdx       int64
	crc          uint32
	err          error

	results *reorder.Buffer[decodedBlock] // Non-nil on the concurrent path
}

type decodedBlock struct {
	data []byte
	crc  uint32 // CRC-32 of the decoded data
	nin  int    // Encoded chunk length consumed
	err  error
}

// NewReader returns a Reader decoding from r under the given configuration.
// It reports ErrInvalidBlockSize if conf specifies a negative block size.
func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	zr := &Reader{rd: r, blockSize: DefaultBlockSize, workers: 1}
	if conf != nil {
		if conf.BlockSize < 0 {
			return nil, ErrInvalidBlockSize
		}
		if conf.BlockSize > 0 {
			zr.blockSize = conf.BlockSize
		}
		if conf.NumWorkers > 1 {
			zr.workers = conf.NumWorkers
		}
	}
	return zr, nil
}

// Read decodes and returns the original byte stream. A malformed block
// surfaces as a *BlockError identifying the block by index; the underlying
// reader's errors propagate as-is.
func (zr *Reader) Read(buf []byte) (int, error) {
	for len(zr.out) == 0 {
		if zr.err != nil {
			return 0, zr.err
		}
		if !zr.haveSentinel {
			if err := zr.readHeader(); err != nil {
				zr.err = err
				return 0, err
			}
		}
		blk, err := zr.nextBlock()
		if err != nil {
			zr.err = err
			return 0, err
		}
		zr.InputOffset += int64(blk.nin)
		zr.crc = hashmerge.CombineCRC32(crc32.IEEE, zr.crc, blk.crc, int64(len(blk.data)))
		zr.out = blk.data
	}
	n := copy(buf, zr.out)
	zr.out = zr.out[n:]
	zr.OutputOffset += int64(n)
	return n, nil
}

// Close releases any decoding workers. It is safe to call before the stream
// is fully consumed.
func (zr *Reader) Close() error {
	if zr.results != nil {
		zr.results.Stop()
	}
	if zr.err == nil || zr.err == io.EOF {
		zr.err = errClosed
	}
	return nil
}

// Sentinel returns the sentinel byte recorded in the stream header. It is
// not known until the first Read.
func (zr *Reader) Sentinel() (byte, bool) {
	return zr.sentinel, zr.haveSentinel
}

// Checksum returns the CRC-32 (IEEE) of the decoded bytes delivered so far.
// After the stream is fully consumed it matches the encoding Writer's
// Checksum.
func (zr *Reader) Checksum() uint32 {
	return zr.crc
}

func (zr *Reader) readHeader() error {
	var hdr [1]byte
	if _, err := io.ReadFull(zr.rd, hdr[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	zr.sentinel = hdr[0]
	zr.haveSentinel = true
	zr.InputOffset++
	if zr.workers > 1 {
		zr.startWorkers()
	}
	return nil
}

// nextBlock returns the next decoded block in stream order, or io.EOF after
// the last one. Block decode failures are returned inside the block.
func (zr *Reader) nextBlock() (decodedBlock, error) {
	if zr.results != nil {
		blk, ok := zr.results.Next()
		if !ok {
			return decodedBlock{}, io.EOF
		}
		if blk.err != nil {
			return decodedBlock{}, blk.err
		}
		return blk, nil
	}

	chunk, err := readChunk(zr.rd, zr.blockSize)
	if err != nil {
		return decodedBlock{}, err
	}
	blk := invertChunk(chunk, zr.sentinel, zr.blkIdx)
	zr.blkIdx++
	if blk.err != nil {
		return decodedBlock{}, blk.err
	}
	return blk, nil
}

// startWorkers spins up the concurrent decode pipeline: one goroutine reads
// chunks sequentially and hands them to NumWorkers inverting goroutines,
// whose results are reassembled in stream order by a reorder buffer.
func (zr *Reader) startWorkers() {
	zr.results = reorder.NewBuffer[decodedBlock](2 * zr.workers)

	type job struct {
		idx   int64
		chunk []byte
	}
	jobs := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < zr.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				zr.results.Put(j.idx, invertChunk(j.chunk, zr.sentinel, j.idx))
			}
		}()
	}

	go func() {
		var idx int64
		for !zr.results.Stopped() {
			chunk, err := readChunk(zr.rd, zr.blockSize)
			if err == io.EOF {
				break
			}
			if err != nil {
				zr.results.Put(idx, decodedBlock{err: err})
				break
			}
			jobs <- job{idx, chunk}
			idx++
		}
		close(jobs)
		wg.Wait()
		zr.results.Close()
	}()
}

// readChunk reads the next transformed block of up to blockSize+1 bytes.
// A short read at the end of the stream is a legal final block; io.EOF is
// returned only when no bytes remain at all.
func readChunk(r io.Reader, blockSize int) ([]byte, error) {
	chunk := make([]byte, blockSize+1)
	n, err := io.ReadFull(r, chunk)
	switch err {
	case nil:
		return chunk, nil
	case io.ErrUnexpectedEOF:
		return chunk[:n], nil
	default:
		return nil, err
	}
}

func invertChunk(chunk []byte, sentinel byte, idx int64) decodedBlock {
	data, err := Inverse(chunk, sentinel)
	if err != nil {
		return decodedBlock{nin: len(chunk), err: &BlockError{Index: idx, Err: err}}
	}
	return decodedBlock{data: data, crc: crc32.ChecksumIEEE(data), nin: len(chunk)}
}
