// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"
	"runtime"

	"github.com/dsnet/bwt"
)

func init() {
	// The transform has no compression levels; the level argument is
	// ignored and the block size comes from BWTBlockSize.
	RegisterEncoder(FormatBWT, "bwt",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := bwt.NewWriter(w, &bwt.WriterConfig{
				BlockSize:  BWTBlockSize,
				NumWorkers: runtime.GOMAXPROCS(0),
			})
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatBWT, "bwt",
		func(r io.Reader) io.ReadCloser {
			zr, err := bwt.NewReader(r, &bwt.ReaderConfig{
				BlockSize:  BWTBlockSize,
				NumWorkers: runtime.GOMAXPROCS(0),
			})
			if err != nil {
				panic(err)
			}
			return zr
		})
}
