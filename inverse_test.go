// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"errors"
	"testing"
)

func TestInverseMalformed(t *testing.T) {
	var vectors = []struct {
		input    string // Claimed transformed block
		sentinel byte
	}{
		{"", '$'},        // Empty, sentinel cannot occur
		{"banana", '$'},  // Sentinel never occurs
		{"an$nb$aa", '$'}, // Sentinel occurs twice
		{"$$", '$'},       // Sentinel occurs twice
		{"$ba", '$'},      // LF walk returns to the sentinel immediately
		{"a$a", '$'},      // LF walk closes early
	}

	for i, v := range vectors {
		output, err := Inverse([]byte(v.input), v.sentinel)
		if !errors.Is(err, ErrMalformedBlock) {
			t.Errorf("test %d, error mismatch: got %v, want %v", i, err, ErrMalformedBlock)
		}
		if output != nil {
			t.Errorf("test %d, partial output for failed block: %v", i, ss(output))
		}
	}
}

func TestInverseKnownVector(t *testing.T) {
	output, err := Inverse([]byte("annb$aa"), '$')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(output) != "banana" {
		t.Fatalf("output mismatch: got %q, want %q", output, "banana")
	}
}
