// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore

// Benchmark tool to compare the performance of the block-wise
// Burrows-Wheeler Transform against reference compression implementations.
//
// Example usage:
//	$ go build -o benchmark main.go
//	$ ./benchmark \
//		-formats bwt,fl          \
//		-tests   encRate,decRate \
//		-files   twain.txt       \
//		-levels  1,6,9           \
//		-sizes   1e4,1e5,1e6
//
//	BENCHMARK: bwt:encRate
//		benchmark             bwt MB/s  delta
//		twain.txt:1:9.77Ki       22.31  1.00x
//		twain.txt:1:97.7Ki       20.50  1.00x
//		...
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dsnet/bwt/internal/tool/bench"
	"github.com/dsnet/golib/unitconv"
)

var (
	fmtToEnum = map[string]int{
		"bwt":  bench.FormatBWT,
		"fl":   bench.FormatFlate,
		"xz":   bench.FormatXZ,
		"zstd": bench.FormatZstd,
	}
	testToEnum = map[string]int{
		"encRate": bench.TestEncodeRate,
		"decRate": bench.TestDecodeRate,
		"ratio":   bench.TestCompressRatio,
	}
)

func main() {
	formats := flag.String("formats", "bwt", "comma-separated list of formats to benchmark (bwt,fl,xz,zstd)")
	tests := flag.String("tests", "encRate,decRate,ratio", "comma-separated list of tests to run")
	codecs := flag.String("codecs", "", "comma-separated list of codecs to use (default: all registered)")
	files := flag.String("files", "", "comma-separated list of input files")
	levels := flag.String("levels", "1,6,9", "comma-separated list of compression levels")
	sizes := flag.String("sizes", "1e4,1e5,1e6", "comma-separated list of input sizes")
	block := flag.Int("block", bench.BWTBlockSize, "content block size for the bwt codec")
	paths := flag.String("paths", ".", "comma-separated list of search paths for input files")
	flag.Parse()

	bench.BWTBlockSize = *block
	bench.Paths = strings.Split(*paths, ",")
	if *files == "" {
		fmt.Fprintln(os.Stderr, "no input files specified")
		os.Exit(1)
	}

	var levelInts, sizeInts []int
	for _, s := range strings.Split(*levels, ",") {
		levelInts = append(levelInts, parseInt(s))
	}
	for _, s := range strings.Split(*sizes, ",") {
		sizeInts = append(sizeInts, parseInt(s))
	}

	start := time.Now()
	for _, f := range strings.Split(*formats, ",") {
		format, ok := fmtToEnum[f]
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown format: %s\n", f)
			os.Exit(1)
		}
		names := codecNames(format, *codecs)
		if len(names) == 0 {
			continue
		}
		for _, ts := range strings.Split(*tests, ",") {
			test, ok := testToEnum[ts]
			if !ok {
				fmt.Fprintf(os.Stderr, "unknown test: %s\n", ts)
				os.Exit(1)
			}
			fmt.Printf("BENCHMARK: %s:%s\n", f, ts)
			results, rows := bench.BenchmarkSuite(test, format, names,
				strings.Split(*files, ","), levelInts, sizeInts)
			printTable(test, names, rows, results)
			fmt.Println()
		}
	}
	fmt.Printf("RUNTIME: %v\n", time.Since(start))
}

func codecNames(format int, only string) (names []string) {
	for name := range bench.Encoders[format] {
		if only == "" || strings.Contains(","+only+",", ","+name+",") {
			names = append(names, name)
		}
	}
	return names
}

func printTable(test int, codecs, rows []string, results [][]bench.Result) {
	unit := "MB/s"
	if test == bench.TestCompressRatio {
		unit = "ratio"
	}
	fmt.Printf("\t%-20s", "benchmark")
	for _, c := range codecs {
		fmt.Printf("  %8s %s  delta", c, unit)
	}
	fmt.Println()
	for i, row := range rows {
		fmt.Printf("\t%-20s", row)
		for _, r := range results[i] {
			if math.IsNaN(r.D) || r.R == 0 {
				fmt.Printf("  %13s  %5s", "-", "-")
				continue
			}
			fmt.Printf("  %13s  %.2fx", unitconv.FormatPrefix(r.R, unitconv.Base1024, 2), r.D)
		}
		fmt.Println()
	}
}

func parseInt(s string) int {
	var f float64
	if _, err := fmt.Sscanf(s, "%g", &f); err != nil {
		fmt.Fprintf(os.Stderr, "invalid number: %s\n", s)
		os.Exit(1)
	}
	return int(f)
}
