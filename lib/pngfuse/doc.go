// Copyright 2026 The PNGFuse Authors
// SPDX-License-Identifier: Apache-2.0

// Package pngfuse embeds arbitrary files inside PNG metadata and
// recovers or removes them later, without touching pixel data. It is
// the pure byte-manipulation engine that the pngfuse CLI builds on.
//
// The package is organized in layers, each usable independently:
//
//   - Compression: zlib streams tuned for maximum ratio, matching the
//     settings the PNG text-chunk convention expects. Compress and
//     Decompress are pure functions safe for concurrent use.
//
//   - Chunk wire codec: the standard PNG chunk container (big-endian
//     u32 length, 4-byte ASCII type, data, CRC-32 over type+data).
//     EncodeChunk produces complete insertable chunks; the internal
//     walker steps a buffer chunk-by-chunk with bounds checking so a
//     truncated stream surfaces ErrCorruptChunk instead of reading
//     out of range.
//
//   - Text chunks: the zTXt layout (keyword, NUL separator, one
//     compression-method byte, compressed value), generic over the
//     chunk type via the ChunkCodec interface so private chunk types
//     can reuse it.
//
//   - Image: an owned PNG byte buffer with insert, enumerate, and
//     delete operations over a chosen chunk type. New chunks are
//     always spliced immediately after the IDAT run so viewers can
//     start rendering before reaching the embedded payloads. Bulk
//     insertion encodes payloads in parallel and preserves caller
//     order in the output stream.
//
//   - Sub-files: the fuSe private chunk type. A sub-file is a
//     (filename, contents) pair serialized as filename, NUL, raw
//     bytes, then carried as the compressed value of a text chunk
//     with the fixed keyword "PNGFuse". SubFileImage binds Image to
//     this chunk type with file-level operations.
//
// The wire format is fixed: any change to the fuSe chunk layout or
// the merged sub-file payload breaks compatibility with previously
// fused images.
package pngfuse
