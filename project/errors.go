package project

import (
	"errors"
	"fmt"
)

// ErrCorruptProject is returned when a project file fails validation: bad
// magic, truncated data, out-of-range fields, payload length mismatches or
// a checksum failure. Decoding never produces a partial document.
var ErrCorruptProject = errors.New("project: corrupt project file")

// ErrUnsupportedVersion marks files written by a newer format revision.
// Errors carrying it also match ErrCorruptProject.
var ErrUnsupportedVersion = errors.New("project: unsupported format version")

// ErrNameTooLong is returned by Encode when the title or a palette name does
// not fit its length prefix.
var ErrNameTooLong = errors.New("project: name too long")

// corrupt formats a decoding failure that matches ErrCorruptProject.
func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptProject, fmt.Sprintf(format, args...))
}
