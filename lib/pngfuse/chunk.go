// Copyright 2026 The PNGFuse Authors
// SPDX-License-Identifier: Apache-2.0

package pngfuse

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// Chunk wire format constants, fixed by the PNG file format.
const (
	// pngSignatureSize is the length of the fixed file signature that
	// precedes the first chunk.
	pngSignatureSize = 8

	// chunkHeaderSize is the 4-byte length field plus the 4-byte type
	// tag at the start of every chunk.
	chunkHeaderSize = 8

	// chunkOverhead is the total framing around a chunk's data:
	// header plus the trailing 4-byte CRC.
	chunkOverhead = chunkHeaderSize + 4
)

// pngSignature is the 8-byte magic at the start of every PNG file.
var pngSignature = [pngSignatureSize]byte{137, 'P', 'N', 'G', '\r', '\n', 26, '\n'}

// ChunkCodec describes one chunk type the store can target. A codec
// knows how to recognize, decode, and encode chunks of its type; the
// Image store supplies the buffer walking and splicing around it.
//
// Implementations must be stateless or otherwise safe for concurrent
// use: bulk insertion calls Encode from multiple goroutines.
type ChunkCodec[C any] interface {
	// Type returns the 4-character ASCII chunk type tag.
	Type() string

	// Matches reports whether a chunk whose type tag already equals
	// Type() should be included in enumeration and deletion, given its
	// raw (still compressed) data bytes. Codecs without extra framing
	// return true unconditionally.
	Matches(data []byte) bool

	// Decode parses a chunk's data bytes into a value. The returned
	// value must not alias data.
	Decode(data []byte) (C, error)

	// Encode serializes a value into a complete chunk: header, data,
	// and CRC, ready for insertion.
	Encode(value C) ([]byte, error)
}

// EncodeChunk wraps data in the standard chunk framing for the given
// 4-character type tag: big-endian u32 length, type, data, CRC-32
// computed over type and data.
func EncodeChunk(typeTag string, data []byte) []byte {
	chunk := make([]byte, chunkOverhead+len(data))
	binary.BigEndian.PutUint32(chunk[0:4], uint32(len(data)))
	copy(chunk[4:8], typeTag)
	copy(chunk[chunkHeaderSize:], data)

	crc := crc32.ChecksumIEEE(chunk[4 : chunkHeaderSize+len(data)])
	binary.BigEndian.PutUint32(chunk[chunkHeaderSize+len(data):], crc)
	return chunk
}

// rawChunk locates one encoded chunk inside a larger buffer. It holds
// offsets only, never slice views, so it stays cheap to copy and is
// trivially invalidated together with the buffer it indexes.
type rawChunk struct {
	// offset is the position of the chunk's length field.
	offset int

	// length is the declared data length.
	length int

	// typeTag is the 4-character chunk type.
	typeTag string
}

// next returns the offset of the chunk that follows this one.
func (c rawChunk) next() int {
	return c.offset + chunkOverhead + c.length
}

// data returns the chunk's data bytes as a view into buffer. The view
// aliases the buffer and must not outlive the next mutation.
func (c rawChunk) data(buffer []byte) []byte {
	start := c.offset + chunkHeaderSize
	return buffer[start : start+c.length]
}

// parseChunkHeader reads the chunk header at offset and bounds-checks
// the declared length against the remaining buffer. A header that
// does not fit, or a declared length that overruns the buffer, fails
// with ErrCorruptChunk — the walker never reads past the buffer on
// truncated input.
func parseChunkHeader(buffer []byte, offset int) (rawChunk, error) {
	if offset+chunkHeaderSize > len(buffer) {
		return rawChunk{}, fmt.Errorf("%w: truncated chunk header at offset %d", ErrCorruptChunk, offset)
	}
	length := int(binary.BigEndian.Uint32(buffer[offset : offset+4]))
	if offset+chunkOverhead+length > len(buffer) {
		return rawChunk{}, fmt.Errorf("%w: chunk at offset %d declares %d data bytes but only %d remain",
			ErrCorruptChunk, offset, length, len(buffer)-offset-chunkOverhead)
	}
	return rawChunk{
		offset:  offset,
		length:  length,
		typeTag: string(buffer[offset+4 : offset+8]),
	}, nil
}
