// Copyright 2026 The PNGFuse Authors
// SPDX-License-Identifier: Apache-2.0

package pngfuse

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// Compress deflates data into a zlib stream at the maximum compression
// level (dynamic Huffman blocks, lazy matching, the full 32 KiB
// window). Embedded payloads are written once and read many times, so
// ratio matters more than encode speed here.
//
// The result is a fresh buffer; Compress has no shared state and is
// safe to call concurrently.
func Compress(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer, err := zlib.NewWriterLevel(&buffer, flate.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("pngfuse: compress: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("pngfuse: compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("pngfuse: compress: %w", err)
	}
	return buffer.Bytes(), nil
}

// Decompress inflates a zlib stream produced by any conforming
// deflate implementation, not just Compress. Returns a fresh buffer.
// Malformed or truncated input fails with the underlying library
// diagnostic wrapped.
func Decompress(compressed []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("pngfuse: decompress: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("pngfuse: decompress: %w", err)
	}
	return data, nil
}
