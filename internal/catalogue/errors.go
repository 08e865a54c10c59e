// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogue

import (
	"errors"
	"fmt"
)

// FileFormatError reports an input file that cannot be used: unreadable,
// not valid CSV, or missing the identifier column. It is raised before any
// network activity.
type FileFormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FileFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *FileFormatError) Unwrap() error { return e.Err }

// IsFileFormat reports whether err is, or wraps, a FileFormatError.
func IsFileFormat(err error) bool {
	var target *FileFormatError
	return errors.As(err, &target)
}
