// Copyright 2026 The PNGFuse Authors
// SPDX-License-Identifier: Apache-2.0

package pngfuse

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"testing"
)

func TestEncodeChunkLayout(t *testing.T) {
	data := []byte("payload bytes")
	chunk := EncodeChunk("teSt", data)

	if got, want := len(chunk), chunkOverhead+len(data); got != want {
		t.Fatalf("encoded chunk is %d bytes, want %d", got, want)
	}
	if got := binary.BigEndian.Uint32(chunk[0:4]); got != uint32(len(data)) {
		t.Errorf("length field = %d, want %d", got, len(data))
	}
	if got := string(chunk[4:8]); got != "teSt" {
		t.Errorf("type tag = %q, want %q", got, "teSt")
	}
	if !bytes.Equal(chunk[8:8+len(data)], data) {
		t.Error("data bytes do not match input")
	}

	wantCRC := crc32.ChecksumIEEE(chunk[4 : 8+len(data)])
	if got := binary.BigEndian.Uint32(chunk[8+len(data):]); got != wantCRC {
		t.Errorf("crc = %#x, want %#x", got, wantCRC)
	}
}

func TestEncodeChunkEmptyData(t *testing.T) {
	chunk := EncodeChunk("teSt", nil)
	if len(chunk) != chunkOverhead {
		t.Fatalf("empty chunk is %d bytes, want %d", len(chunk), chunkOverhead)
	}
	if got := binary.BigEndian.Uint32(chunk[0:4]); got != 0 {
		t.Errorf("length field = %d, want 0", got)
	}
}

func TestParseChunkHeader(t *testing.T) {
	buffer := EncodeChunk("abCD", []byte("12345"))

	chunk, err := parseChunkHeader(buffer, 0)
	if err != nil {
		t.Fatalf("parseChunkHeader failed: %v", err)
	}
	if chunk.typeTag != "abCD" {
		t.Errorf("type = %q, want %q", chunk.typeTag, "abCD")
	}
	if chunk.length != 5 {
		t.Errorf("length = %d, want 5", chunk.length)
	}
	if got := chunk.next(); got != len(buffer) {
		t.Errorf("next() = %d, want %d", got, len(buffer))
	}
	if got := chunk.data(buffer); !bytes.Equal(got, []byte("12345")) {
		t.Errorf("data = %q, want %q", got, "12345")
	}
}

func TestParseChunkHeaderTruncated(t *testing.T) {
	tests := []struct {
		name   string
		buffer []byte
	}{
		{"empty buffer", nil},
		{"partial header", []byte{0, 0, 0, 5, 'a', 'b'}},
		{"declared length overruns buffer", func() []byte {
			chunk := EncodeChunk("abCD", []byte("12345"))
			binary.BigEndian.PutUint32(chunk[0:4], 1000)
			return chunk
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseChunkHeader(tt.buffer, 0)
			if !errors.Is(err, ErrCorruptChunk) {
				t.Errorf("got %v, want ErrCorruptChunk", err)
			}
		})
	}
}
