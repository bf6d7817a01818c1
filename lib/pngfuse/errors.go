// Copyright 2026 The PNGFuse Authors
// SPDX-License-Identifier: Apache-2.0

package pngfuse

import "errors"

// Sentinel errors returned by the engine. Callers match them with
// errors.Is; the concrete messages wrap additional context.
var (
	// ErrInvalidFormat indicates the input bytes are not a usable PNG:
	// the 8-byte signature is missing or no IDAT chunk run exists to
	// anchor the insertion boundary.
	ErrInvalidFormat = errors.New("pngfuse: not a valid PNG image")

	// ErrCorruptChunk indicates a structurally broken chunk: a declared
	// length that overruns the buffer, a text chunk without its NUL
	// separator, or a non-zero compression-method byte.
	ErrCorruptChunk = errors.New("pngfuse: corrupt chunk")

	// ErrCorruptPayload indicates a decoded sub-file value without the
	// NUL separator between filename and contents.
	ErrCorruptPayload = errors.New("pngfuse: corrupt sub-file payload")
)
