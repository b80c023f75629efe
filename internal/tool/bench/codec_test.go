// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"io"
	"testing"

	"github.com/dsnet/bwt/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

// TestCodecRoundTrip checks that every registered codec with both an encoder
// and a decoder losslessly round-trips the same input. The input is textual
// so that the bwt codec always has a sentinel available.
func TestCodecRoundTrip(t *testing.T) {
	input := testutil.NewRand(0).BytesIn([]byte("the quick brown fox jumped over the lazy dog.\n"), 1<<16)

	for format, encs := range Encoders {
		for name, enc := range encs {
			dec := Decoders[format][name]
			if dec == nil {
				continue
			}
			output, ok := encodeBytes(input, enc, 6)
			if !ok {
				t.Errorf("codec %d:%s, encode failed", format, name)
				continue
			}
			rd := dec(bytes.NewReader(output))
			decoded, err := io.ReadAll(rd)
			if cerr := rd.Close(); cerr != nil {
				t.Errorf("codec %d:%s, unexpected error: %v", format, name, cerr)
			}
			if err != nil {
				t.Errorf("codec %d:%s, unexpected error: %v", format, name, err)
				continue
			}
			if diff := cmp.Diff(input, decoded); diff != "" {
				t.Errorf("codec %d:%s, round trip mismatch (-want +got):\n%s", format, name, diff)
			}
		}
	}
}
