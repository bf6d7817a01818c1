// Copyright 2026 The PNGFuse Authors
// SPDX-License-Identifier: Apache-2.0

package pngfuse

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestCompressRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"short text", []byte("hello, chunk")},
		{"binary with zeros", []byte{0, 1, 0, 2, 0, 0, 3}},
		{"repetitive", bytes.Repeat([]byte("abcdef"), 10_000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := Compress(tt.data)
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}

			decompressed, err := Decompress(compressed)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(decompressed, tt.data) {
				t.Errorf("round trip changed data: got %d bytes, want %d bytes",
					len(decompressed), len(tt.data))
			}
		})
	}
}

// Inputs larger than the 32 KiB deflate window must still round-trip;
// random data additionally exercises the stored-block path.
func TestCompressRoundTripLargerThanWindow(t *testing.T) {
	data := make([]byte, 100*1024)
	if _, err := rand.Read(data); err != nil {
		t.Fatalf("generating input: %v", err)
	}

	compressed, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	decompressed, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(decompressed, data) {
		t.Error("round trip changed data")
	}
}

func TestCompressRatio(t *testing.T) {
	data := bytes.Repeat([]byte("the same line over and over\n"), 1000)
	compressed, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if len(compressed) >= len(data)/10 {
		t.Errorf("highly repetitive input compressed to %d of %d bytes, expected at least 10x",
			len(compressed), len(data))
	}
}

func TestDecompressMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte{0xde, 0xad, 0xbe, 0xef}},
		{"empty", []byte{}},
		{"truncated stream", nil}, // filled in below
	}

	valid, err := Compress(bytes.Repeat([]byte("x"), 1000))
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	tests[2].data = valid[:len(valid)/2]

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decompress(tt.data); err == nil {
				t.Error("Decompress should fail on malformed input")
			}
		})
	}
}
