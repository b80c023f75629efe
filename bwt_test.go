// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/dsnet/bwt/internal/testutil"
)

func ss(s []byte) string {
	const limit = 256
	if len(s) > limit {
		return fmt.Sprintf("%q...", s[:limit])
	}
	return fmt.Sprintf("%q", s)
}

func TestBurrowsWheelerTransform(t *testing.T) {
	var vectors = []struct {
		input    string // The input test string
		output   string // Expected output string after the transform
		sentinel byte   // Sentinel delimiting the block
	}{{
		input:    "",
		output:   "$",
		sentinel: '$',
	}, {
		input:    "a",
		output:   "a$",
		sentinel: '$',
	}, {
		input:    "aaa",
		output:   "aaa$",
		sentinel: '$',
	}, {
		input:    "abab",
		output:   "bb$aa",
		sentinel: '$',
	}, {
		input:    "banana",
		output:   "annb$aa",
		sentinel: '$',
	}, {
		input:    "mississippi",
		output:   "ipssm$pissii",
		sentinel: '$',
	}, {
		input:    "abracadabra",
		output:   "ard$rcaaaabb",
		sentinel: '$',
	}, {
		input:    "banana",
		output:   "annb\x00aa",
		sentinel: 0x00,
	}}

	for i, v := range vectors {
		output := Transform([]byte(v.input), v.sentinel)
		if string(output) != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %v\nwant %v", i, ss(output), ss([]byte(v.output)))
		}
		input, err := Inverse(output, v.sentinel)
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
		}
		if string(input) != v.input {
			t.Errorf("test %d, input mismatch:\ngot  %v\nwant %v", i, ss(input), ss([]byte(v.input)))
		}
	}
}

func TestTransformLaws(t *testing.T) {
	// The sentinel 0xff never occurs since the alphabet excludes it.
	const sentinel = 0xff
	alphabet := []byte("abcdefghijklmnopqrstuvwxyz \n0123456789")

	rand := testutil.NewRand(0)
	for _, n := range []int{0, 1, 2, 3, 7, 64, 128, 333, 1024, 4096} {
		input := rand.BytesIn(alphabet, n)
		output := Transform(input, sentinel)

		if len(output) != len(input)+1 {
			t.Errorf("size %d, length mismatch: got %d, want %d", n, len(output), len(input)+1)
		}
		if cnt := bytes.Count(output, []byte{sentinel}); cnt != 1 {
			t.Errorf("size %d, sentinel count mismatch: got %d, want 1", n, cnt)
		}
		input2, err := Inverse(output, sentinel)
		if err != nil {
			t.Errorf("size %d, unexpected error: %v", n, err)
		}
		if !bytes.Equal(input2, input) {
			t.Errorf("size %d, round trip mismatch:\ngot  %v\nwant %v", n, ss(input2), ss(input))
		}
	}
}

func TestTransformBinary(t *testing.T) {
	// Full binary alphabet except one value reserved for the sentinel.
	rand := testutil.NewRand(1)
	for _, n := range []int{16, 255, 256, 1000} {
		input := rand.Bytes(n)
		sentinel, err := PickSentinel(bytes.NewReader(input))
		if err == ErrSentinelExhausted {
			// Remap one byte value to free up a sentinel.
			input = bytes.ReplaceAll(input, []byte{0xa5}, []byte{0xa4})
			sentinel, err = PickSentinel(bytes.NewReader(input))
		}
		if err != nil {
			t.Fatalf("size %d, unexpected error: %v", n, err)
		}

		output := Transform(input, sentinel)
		input2, err := Inverse(output, sentinel)
		if err != nil {
			t.Errorf("size %d, unexpected error: %v", n, err)
		}
		if !bytes.Equal(input2, input) {
			t.Errorf("size %d, round trip mismatch:\ngot  %v\nwant %v", n, ss(input2), ss(input))
		}
	}
}

func BenchmarkTransform(b *testing.B) {
	input := testutil.NewRand(0).BytesIn([]byte("the quick brown fox "), 1<<12)
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Transform(input, 0xff)
	}
}

func BenchmarkInverse(b *testing.B) {
	output := Transform(testutil.NewRand(0).BytesIn([]byte("the quick brown fox "), 1<<12), 0xff)
	b.SetBytes(int64(len(output)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Inverse(output, 0xff); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
