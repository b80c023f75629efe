// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore

// bwtfile applies the block-wise Burrows-Wheeler Transform to a file.
//
// Example usage:
//	$ go build -o bwtfile main.go
//	$ ./bwtfile -b 4096 input.txt input.bwt
//	$ ./bwtfile -b 4096 -d input.bwt output.txt
//	$ cmp input.txt output.txt
//
// The block size passed to -b must match between encoding and decoding,
// since the decoder re-reads the stream in chunks of that size plus one
// sentinel byte.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/dsnet/bwt"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("bwtfile: ")

	decode := flag.Bool("d", false, "decode the input instead of encoding it")
	block := flag.Int("b", bwt.DefaultBlockSize, "content bytes per block")
	workers := flag.Int("j", runtime.GOMAXPROCS(0), "number of parallel block workers")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-d] [-b size] [-j workers] input output\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Arg(1), *decode, *block, *workers); err != nil {
		log.Fatal(err)
	}
}

func run(srcPath, dstPath string, decode bool, block, workers int) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	if decode {
		zr, err := bwt.NewReader(src, &bwt.ReaderConfig{BlockSize: block, NumWorkers: workers})
		if err != nil {
			return err
		}
		defer zr.Close()
		if _, err := io.Copy(dst, zr); err != nil {
			return err
		}
	} else {
		zw, err := bwt.NewWriter(dst, &bwt.WriterConfig{BlockSize: block, NumWorkers: workers})
		if err != nil {
			return err
		}
		if _, err := io.Copy(zw, src); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return err
		}
	}
	return dst.Close()
}
