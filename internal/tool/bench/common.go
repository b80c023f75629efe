// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the performance of the block-wise Burrows-Wheeler
// Transform against reference compression implementations with respect to
// encode speed, decode speed, and ratio.
//
// The transform on its own is not a compressor, so the ratio numbers mostly
// demonstrate the sentinel overhead of one byte per block; the interesting
// comparisons are the encode and decode rates of the transform stage
// relative to full codecs operating on the same data.
package bench

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/dsnet/bwt/internal/testutil"
	"github.com/dsnet/golib/unitconv"
)

const (
	FormatBWT = iota
	FormatFlate
	FormatXZ
	FormatZstd
)

const (
	TestEncodeRate = iota
	TestDecodeRate
	TestCompressRatio
)

type Encoder func(io.Writer, int) io.WriteCloser
type Decoder func(io.Reader) io.ReadCloser

var (
	Encoders map[int]map[string]Encoder
	Decoders map[int]map[string]Decoder

	// List of search paths for test files.
	Paths []string

	// BWTBlockSize is the content block size used by the bwt codec for both
	// encoding and decoding. The transform has no compression levels, so the
	// block size plays that role; the decoder must use the same value.
	BWTBlockSize = 1 << 12
)

func RegisterEncoder(format int, name string, enc Encoder) {
	if Encoders == nil {
		Encoders = make(map[int]map[string]Encoder)
	}
	if Encoders[format] == nil {
		Encoders[format] = make(map[string]Encoder)
	}
	Encoders[format][name] = enc
}

func RegisterDecoder(format int, name string, dec Decoder) {
	if Decoders == nil {
		Decoders = make(map[int]map[string]Decoder)
	}
	if Decoders[format] == nil {
		Decoders[format] = make(map[string]Decoder)
	}
	Decoders[format][name] = dec
}

// BenchmarkEncoder benchmarks a single encoder on the given input data using
// the selected compression level and reports the result.
func BenchmarkEncoder(input []byte, enc Encoder, lvl int) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if enc == nil {
			b.Fatalf("unexpected error: nil Encoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			wr := enc(io.Discard, lvl)
			_, err := io.Copy(wr, bytes.NewBuffer(input))
			if err := wr.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
}

// BenchmarkDecoder benchmarks a single decoder on the given pre-compressed
// input data and reports the result.
func BenchmarkDecoder(input []byte, dec Decoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if dec == nil {
			b.Fatalf("unexpected error: nil Decoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			rd := dec(bufio.NewReader(bytes.NewBuffer(input)))
			cnt, err := io.Copy(io.Discard, rd)
			if err := rd.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(cnt)
		}
	})
}

type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta ratio relative to primary benchmark
}

// BenchmarkSuite runs the selected test across all codec implementations,
// files, levels, and sizes.
//
// The values returned have the following structure:
//	results: [len(files)*len(levels)*len(sizes)][len(codecs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkSuite(test, format int, codecs, files []string, levels, sizes []int) (results [][]Result, names []string) {
	run := func(input []byte, codec string, lvl int) Result {
		switch test {
		case TestEncodeRate:
			result := BenchmarkEncoder(input, Encoders[format][codec], lvl)
			return rateResult(result)
		case TestDecodeRate:
			output, ok := encodeBytes(input, Encoders[format][codec], lvl)
			if !ok {
				return Result{}
			}
			return rateResult(BenchmarkDecoder(output, Decoders[format][codec]))
		case TestCompressRatio:
			output, ok := encodeBytes(input, Encoders[format][codec], lvl)
			if !ok {
				return Result{}
			}
			return Result{R: float64(len(input)) / float64(len(output))}
		default:
			panic("unknown test")
		}
	}

	d0 := len(files) * len(levels) * len(sizes)
	results = make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, len(codecs))
	}
	names = make([]string, d0)

	var i int
	for _, f := range files {
		for _, l := range levels {
			for _, n := range sizes {
				b, err := testutil.LoadFile(getPath(f), n)
				names[i] = getName(f, l, len(b))
				for j, c := range codecs {
					if err == nil {
						results[i][j] = run(b, c, l)
					}
					results[i][j].D = results[i][j].R / results[i][0].R
				}
				i++
			}
		}
	}
	return results, names
}

func encodeBytes(input []byte, enc Encoder, lvl int) ([]byte, bool) {
	if enc == nil {
		return nil, false
	}
	buf := new(bytes.Buffer)
	wr := enc(buf, lvl)
	if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
		return nil, false
	}
	if wr.Close() != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

func rateResult(result testing.BenchmarkResult) Result {
	if result.N == 0 {
		return Result{}
	}
	us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
	return Result{R: float64(result.Bytes) / us}
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

func getName(f string, l, n int) string {
	s := unitconv.FormatPrefix(float64(n), unitconv.Base1024, 2)
	return fmt.Sprintf("%s:%d:%s", path.Base(f), l, s)
}
