// Copyright 2026 The PNGFuse Authors
// SPDX-License-Identifier: Apache-2.0

// Package fileio wraps whole-file reads and writes with errors that
// carry the offending path. The core engine treats these as opaque
// collaborators; retry policy, if any, belongs to callers.
package fileio

import (
	"fmt"
	"os"
)

// Read returns the full contents of the file at path.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fileio: reading %s: %w", path, err)
	}
	return data, nil
}

// Write replaces the file at path with data, creating it if needed.
func Write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("fileio: writing %s: %w", path, err)
	}
	return nil
}
