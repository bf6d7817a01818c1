// Copyright 2026 The PNGFuse Authors
// SPDX-License-Identifier: Apache-2.0

package pngfuse

import (
	"bytes"
	"fmt"
	"slices"
	"sync"
)

// idatChunkType is the standard chunk type holding compressed pixel
// data. The insertion boundary sits immediately after the contiguous
// run of these chunks.
const idatChunkType = "IDAT"

// Image owns the raw bytes of one PNG file and supports inserting,
// enumerating, and deleting chunks of a chosen type. The buffer is
// mutated in place; enumeration results are independent copies, so
// they stay valid across later mutations.
//
// Chunks are only ever inserted after the IDAT run and before any
// trailing chunks (including IEND). Large ancillary payloads placed
// before the pixel data would force viewers to buffer them before
// rendering can start. Enumeration and deletion, by contrast, cover
// the whole stream from the first chunk to the last.
//
// An Image assumes exclusive single-goroutine ownership of its
// buffer: structural operations must not overlap.
type Image struct {
	buffer []byte

	// idatEnd is the byte offset immediately after the last chunk of
	// the IDAT run. Insertions happen here; the store updates it when
	// a deletion removes bytes in front of it.
	idatEnd int
}

// NewImage takes ownership of data, validates the PNG signature, and
// locates the insertion boundary. Fails with ErrInvalidFormat when the
// signature is wrong or no IDAT chunk exists, and with ErrCorruptChunk
// when the chunk structure between the signature and the IDAT run is
// broken.
func NewImage(data []byte) (*Image, error) {
	if len(data) < pngSignatureSize || !bytes.Equal(data[:pngSignatureSize], pngSignature[:]) {
		return nil, fmt.Errorf("%w: missing PNG signature", ErrInvalidFormat)
	}

	img := &Image{buffer: data}

	idatEnd, err := img.findIDATEnd()
	if err != nil {
		return nil, err
	}
	img.idatEnd = idatEnd
	return img, nil
}

// Bytes returns the current buffer contents, suitable for writing to
// storage. The slice aliases the Image's buffer; callers that keep it
// across further mutations must copy it first.
func (img *Image) Bytes() []byte {
	return img.buffer
}

// findIDATEnd scans forward from the signature to the first IDAT
// chunk, then through the contiguous IDAT run, and returns the offset
// immediately after it.
func (img *Image) findIDATEnd() (int, error) {
	offset := pngSignatureSize
	inRun := false
	for offset < len(img.buffer) {
		chunk, err := parseChunkHeader(img.buffer, offset)
		if err != nil {
			return 0, err
		}
		if chunk.typeTag == idatChunkType {
			inRun = true
		} else if inRun {
			return offset, nil
		}
		offset = chunk.next()
	}
	if inRun {
		// IDAT run extends to the end of the buffer (no IEND). The
		// stream is unusual but the boundary is still well defined.
		return offset, nil
	}
	return 0, fmt.Errorf("%w: no IDAT chunk found", ErrInvalidFormat)
}

// insert splices an encoded chunk into the buffer at the insertion
// boundary. The boundary offset itself does not move: the new chunk
// lands after the pixel data, and repeated inserts at the same offset
// each land in front of the previously inserted chunk.
func (img *Image) insert(encoded []byte) {
	img.buffer = slices.Insert(img.buffer, img.idatEnd, encoded...)
}

// AddChunk encodes one value and splices it in at the insertion
// boundary. On encode failure the buffer is left unmodified.
func AddChunk[C any](img *Image, codec ChunkCodec[C], value C) error {
	encoded, err := codec.Encode(value)
	if err != nil {
		return err
	}
	img.insert(encoded)
	return nil
}

// AddChunks encodes every value concurrently, then splices the
// results into the buffer so that their final order in the stream
// equals the order of values. Encoding dominates the cost of bulk
// insertion (each value is deflated at maximum effort), and the
// encodes share no state, so one goroutine per value is launched and
// joined before any buffer mutation.
//
// Each insert happens at the same fixed boundary offset, which pushes
// the new chunk in front of previously inserted ones; inserting in
// reverse order therefore reproduces the caller's order in the final
// byte stream. This ordering holds regardless of the completion order
// of the encode goroutines.
//
// If any encode fails, the whole batch is abandoned and the buffer is
// left unmodified.
func AddChunks[C any](img *Image, codec ChunkCodec[C], values []C) error {
	encoded := make([][]byte, len(values))
	errs := make([]error, len(values))

	var pending sync.WaitGroup
	for i, value := range values {
		i, value := i, value
		pending.Add(1)
		go func() {
			defer pending.Done()
			encoded[i], errs[i] = codec.Encode(value)
		}()
	}
	pending.Wait()

	var total int
	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("encoding chunk %d of %d: %w", i+1, len(values), err)
		}
		total += len(encoded[i])
	}

	// One reservation for the whole batch, then inserts in reverse.
	img.buffer = slices.Grow(img.buffer, total)
	for i := len(encoded) - 1; i >= 0; i-- {
		img.insert(encoded[i])
	}
	return nil
}

// Chunks walks the whole stream and decodes every chunk the codec
// recognizes, in stream order. Each result is an independently owned
// copy; mutating the Image afterwards does not invalidate it. CRC
// values are not verified. The first corrupt chunk aborts the
// enumeration with no partial results.
func Chunks[C any](img *Image, codec ChunkCodec[C]) ([]C, error) {
	var chunks []C
	offset := pngSignatureSize
	for offset < len(img.buffer) {
		chunk, err := parseChunkHeader(img.buffer, offset)
		if err != nil {
			return nil, err
		}
		if chunk.typeTag == codec.Type() && codec.Matches(chunk.data(img.buffer)) {
			value, err := codec.Decode(chunk.data(img.buffer))
			if err != nil {
				return nil, fmt.Errorf("decoding chunk at offset %d: %w", offset, err)
			}
			chunks = append(chunks, value)
		}
		offset = chunk.next()
	}
	return chunks, nil
}

// ClearChunks deletes every chunk the codec recognizes and returns
// how many were removed. Matching chunks are first grouped into
// maximal contiguous byte ranges, which are then erased back-to-front
// so earlier-computed offsets stay valid and each erase is one
// contiguous removal instead of many small ones.
func ClearChunks[C any](img *Image, codec ChunkCodec[C]) (int, error) {
	type span struct{ start, end int }

	var ranges []span
	rangeStart := -1
	count := 0

	offset := pngSignatureSize
	for offset < len(img.buffer) {
		chunk, err := parseChunkHeader(img.buffer, offset)
		if err != nil {
			return 0, err
		}
		if chunk.typeTag == codec.Type() && codec.Matches(chunk.data(img.buffer)) {
			count++
			if rangeStart < 0 {
				rangeStart = offset
			}
		} else if rangeStart >= 0 {
			ranges = append(ranges, span{rangeStart, offset})
			rangeStart = -1
		}
		offset = chunk.next()
	}
	if rangeStart >= 0 {
		ranges = append(ranges, span{rangeStart, offset})
	}

	for i := len(ranges) - 1; i >= 0; i-- {
		r := ranges[i]
		img.buffer = slices.Delete(img.buffer, r.start, r.end)
		if r.end <= img.idatEnd {
			// Chunk boundaries never straddle the insertion boundary,
			// so a deleted range is entirely before or after it.
			img.idatEnd -= r.end - r.start
		}
	}
	return count, nil
}
