// Copyright 2026 The PNGFuse Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without an extra error
// message. A command or the framework returning ExitError has already
// written its own output; main exits with the code silently. Execute
// returns ExitError with code 2 for usage errors after printing help.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the process exit code. main checks for this
// interface on returned errors to tell a handled non-zero exit from
// an unexpected error that still needs printing.
func (e *ExitError) ExitCode() int {
	return e.Code
}
