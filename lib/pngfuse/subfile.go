// Copyright 2026 The PNGFuse Authors
// SPDX-License-Identifier: Apache-2.0

package pngfuse

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/pngfuse/pngfuse/lib/fileio"
)

// fuSe chunk format. The layout is zTXt-compatible with two
// alterations: the keyword is always "PNGFuse", and the value is a
// merged sub-file payload (UTF-8 filename, NUL, raw contents) rather
// than Latin-1 text. The type tag is private and ancillary (lowercase
// first letter), so conforming PNG tools skip these chunks without
// complaint.
const (
	// FuseChunkType is the 4-character type tag of the private chunk.
	FuseChunkType = "fuSe"

	// FuseKeyword is the fixed keyword stored in every fuSe chunk.
	FuseKeyword = "PNGFuse"
)

// SubFile is a named file carried inside a fuSe chunk.
type SubFile struct {
	// Name is the filename recorded in the chunk, UTF-8, without any
	// directory components.
	Name string

	// Contents is the uncompressed file data.
	Contents []byte
}

// LoadSubFile reads a file from the filesystem into a SubFile. The
// recorded name is the base name of path.
func LoadSubFile(path string) (SubFile, error) {
	contents, err := fileio.Read(path)
	if err != nil {
		return SubFile{}, err
	}
	return SubFile{Name: filepath.Base(path), Contents: contents}, nil
}

// Save writes the sub-file's contents to the path stored in Name.
func (f SubFile) Save() error {
	return fileio.Write(f.Name, f.Contents)
}

// Merged serializes the sub-file into its on-wire payload: name, NUL,
// contents verbatim. There is no length prefix; the first NUL
// terminates the name and everything after it is content. Names
// containing NUL bytes cannot be represented by this format.
func (f SubFile) Merged() []byte {
	merged := make([]byte, 0, len(f.Name)+1+len(f.Contents))
	merged = append(merged, f.Name...)
	merged = append(merged, 0)
	merged = append(merged, f.Contents...)
	return merged
}

// SplitSubFile parses a merged payload back into a SubFile. Fails
// with ErrCorruptPayload when the NUL separator is absent.
func SplitSubFile(payload []byte) (SubFile, error) {
	separator := bytes.IndexByte(payload, 0)
	if separator < 0 {
		return SubFile{}, fmt.Errorf("%w: no filename separator", ErrCorruptPayload)
	}
	return SubFile{
		Name:     string(payload[:separator]),
		Contents: bytes.Clone(payload[separator+1:]),
	}, nil
}

// FuseCodec is the ChunkCodec for fuSe chunks, carrying SubFile
// values.
type FuseCodec struct{}

func (FuseCodec) Type() string { return FuseChunkType }

// Matches reports whether the chunk data begins with the PNGFuse
// keyword. This is a deliberately loose filter, kept for wire
// compatibility: it does not check the separator or the
// compression-method byte, so a crafted chunk can pass here and still
// fail at Decode.
func (FuseCodec) Matches(data []byte) bool {
	return len(data) >= len(FuseKeyword) && string(data[:len(FuseKeyword)]) == FuseKeyword
}

func (FuseCodec) Decode(data []byte) (SubFile, error) {
	_, value, err := decodeTextData(data)
	if err != nil {
		return SubFile{}, err
	}
	return SplitSubFile(value)
}

func (FuseCodec) Encode(file SubFile) ([]byte, error) {
	payload, err := encodeTextData([]byte(FuseKeyword), file.Merged())
	if err != nil {
		return nil, err
	}
	return EncodeChunk(FuseChunkType, payload), nil
}
