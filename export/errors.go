package export

import (
	"errors"
	"fmt"
)

// ErrExportFailure matches every *ExportError.
var ErrExportFailure = errors.New("export: export failed")

// ExportError describes a failed export step. Op names the step ("open",
// "encode", "finish", ...). errors.Is matches both ErrExportFailure and Err.
type ExportError struct {
	Op   string
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("export: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("export: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns ErrExportFailure and the underlying error.
func (e *ExportError) Unwrap() []error {
	return []error{ErrExportFailure, e.Err}
}

func exportErr(op, path string, err error) error {
	return &ExportError{Op: op, Path: path, Err: err}
}
