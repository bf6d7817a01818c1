// Copyright 2026 The PNGFuse Authors
// SPDX-License-Identifier: Apache-2.0

package pngfuse

import (
	"github.com/pngfuse/pngfuse/lib/fileio"
)

// SubFileImage binds an Image to the fuSe chunk type, exposing
// file-level operations over the embedded sub-files.
type SubFileImage struct {
	*Image

	codec FuseCodec
}

// NewSubFileImage takes ownership of data as a PNG buffer. See
// NewImage for the validation performed.
func NewSubFileImage(data []byte) (*SubFileImage, error) {
	img, err := NewImage(data)
	if err != nil {
		return nil, err
	}
	return &SubFileImage{Image: img}, nil
}

// LoadSubFileImage reads a PNG file from disk into a SubFileImage.
func LoadSubFileImage(path string) (*SubFileImage, error) {
	data, err := fileio.Read(path)
	if err != nil {
		return nil, err
	}
	return NewSubFileImage(data)
}

// AddSubFile embeds one sub-file after the image data.
func (s *SubFileImage) AddSubFile(file SubFile) error {
	return AddChunk(s.Image, s.codec, file)
}

// AddSubFiles embeds several sub-files in one batch, compressing them
// in parallel. Their order in the image equals their order in files.
func (s *SubFileImage) AddSubFiles(files []SubFile) error {
	return AddChunks(s.Image, s.codec, files)
}

// SubFiles returns every embedded sub-file, in stream order.
func (s *SubFileImage) SubFiles() ([]SubFile, error) {
	return Chunks[SubFile](s.Image, s.codec)
}

// ClearSubFiles removes every fuSe chunk from the image and returns
// how many were removed.
func (s *SubFileImage) ClearSubFiles() (int, error) {
	return ClearChunks[SubFile](s.Image, s.codec)
}

// Save writes the current image bytes to path.
func (s *SubFileImage) Save(path string) error {
	return fileio.Write(path, s.Bytes())
}
