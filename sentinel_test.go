// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/dsnet/bwt/internal/testutil"
)

func TestPickSentinel(t *testing.T) {
	allBytes := func() []byte {
		b := make([]byte, 256)
		for i := range b {
			b[i] = byte(i)
		}
		return b
	}

	var vectors = []struct {
		input []byte
		want  byte
		fail  bool
	}{
		{input: nil, want: 0x00},
		{input: []byte("banana"), want: 0x00},
		{input: allBytes()[:1], want: 0x01},
		{input: allBytes()[:255], want: 0xff},
		{input: allBytes(), fail: true},
		{input: testutil.ResizeData(allBytes(), 1<<16), fail: true},
		{input: bytes.ReplaceAll(allBytes(), []byte{0x42}, []byte{0x43}), want: 0x42},
	}

	for i, v := range vectors {
		got, err := PickSentinel(bytes.NewReader(v.input))
		if v.fail {
			if !errors.Is(err, ErrSentinelExhausted) {
				t.Errorf("test %d, error mismatch: got %v, want %v", i, err, ErrSentinelExhausted)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
		}
		if got != v.want {
			t.Errorf("test %d, sentinel mismatch: got %#02x, want %#02x", i, got, v.want)
		}
	}
}

func TestPickSentinelReadError(t *testing.T) {
	errFault := errors.New("fault")
	br := &testutil.BuggyReader{R: bytes.NewReader(make([]byte, 1<<16)), N: 100, Err: errFault}
	if _, err := PickSentinel(br); err != errFault {
		t.Errorf("error mismatch: got %v, want %v", err, errFault)
	}
}

func TestPickSentinelChunked(t *testing.T) {
	// The scan must tolerate readers that return short counts.
	input := testutil.NewRand(3).BytesIn([]byte("xyz"), 100000)
	got, err := PickSentinel(shortReader{bytes.NewReader(input)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x00 {
		t.Fatalf("sentinel mismatch: got %#02x, want %#02x", got, 0x00)
	}
}

// shortReader returns at most 7 bytes per Read call.
type shortReader struct{ r io.Reader }

func (t shortReader) Read(buf []byte) (int, error) {
	if len(buf) > 7 {
		buf = buf[:7]
	}
	return t.r.Read(buf)
}
