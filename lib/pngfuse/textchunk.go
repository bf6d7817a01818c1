// Copyright 2026 The PNGFuse Authors
// SPDX-License-Identifier: Apache-2.0

package pngfuse

import (
	"bytes"
	"fmt"
)

// Text chunk layout, per the PNG zTXt convention:
//
//	Keyword:            1-79 bytes, no NUL
//	Null separator:     1 byte
//	Compression method: 1 byte, always 0 (deflate)
//	Compressed text:    n bytes
const (
	textChunkType = "zTXt"

	// maxKeywordLength is the longest keyword the zTXt layout allows.
	maxKeywordLength = 79
)

// TextChunk is a decoded key/value text chunk. Key is the uncompressed
// keyword; Value is the uncompressed payload.
type TextChunk struct {
	Key   []byte
	Value []byte
}

// TextCodec is the ChunkCodec for standard zTXt chunks.
type TextCodec struct{}

func (TextCodec) Type() string { return textChunkType }

// Matches accepts every chunk of the zTXt type. Structural problems
// inside the data only surface at decode time.
func (TextCodec) Matches([]byte) bool { return true }

func (TextCodec) Decode(data []byte) (TextChunk, error) {
	key, value, err := decodeTextData(data)
	if err != nil {
		return TextChunk{}, err
	}
	return TextChunk{Key: key, Value: value}, nil
}

func (TextCodec) Encode(chunk TextChunk) ([]byte, error) {
	payload, err := encodeTextData(chunk.Key, chunk.Value)
	if err != nil {
		return nil, err
	}
	return EncodeChunk(textChunkType, payload), nil
}

// encodeTextData compresses value and builds the chunk data bytes:
// key, NUL separator, the zero compression-method byte, compressed
// value. The key must be 1-79 bytes with no embedded NUL.
func encodeTextData(key, value []byte) ([]byte, error) {
	if len(key) == 0 || len(key) > maxKeywordLength {
		return nil, fmt.Errorf("pngfuse: keyword must be 1-%d bytes, got %d", maxKeywordLength, len(key))
	}
	if bytes.IndexByte(key, 0) >= 0 {
		return nil, fmt.Errorf("pngfuse: keyword %q contains a NUL byte", key)
	}

	compressed, err := Compress(value)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, len(key)+2+len(compressed))
	data = append(data, key...)
	data = append(data, 0, 0)
	data = append(data, compressed...)
	return data, nil
}

// decodeTextData splits chunk data into the keyword and the
// decompressed value. The separator must appear within the first
// length-1 bytes (the compression-method byte needs room after it)
// and the method byte must be zero. The returned key is an
// independent copy, never a view into data.
func decodeTextData(data []byte) (key, value []byte, err error) {
	separator := bytes.IndexByte(data[:max(len(data)-1, 0)], 0)
	if separator < 0 {
		return nil, nil, fmt.Errorf("%w: text chunk has no keyword separator", ErrCorruptChunk)
	}
	if method := data[separator+1]; method != 0 {
		return nil, nil, fmt.Errorf("%w: unknown compression method %d", ErrCorruptChunk, method)
	}

	value, err = Decompress(data[separator+2:])
	if err != nil {
		return nil, nil, err
	}
	return bytes.Clone(data[:separator]), value, nil
}
