package filestore

import (
	"strings"

	"github.com/koustreak/filedrop/internal/errs"
)

// ValidateName checks that name identifies a single file directly under
// the storage root. Anything that could address another directory is
// rejected with errs.ErrKindInvalidInput.
func ValidateName(name string) error {
	switch {
	case name == "":
		return errs.New(errs.ErrKindInvalidInput, "file name must not be empty")
	case name == "." || name == "..":
		return errs.New(errs.ErrKindInvalidInput, "file name must not be a directory reference")
	case strings.ContainsAny(name, `/\`):
		return errs.New(errs.ErrKindInvalidInput, "file name must not contain a path separator")
	case strings.ContainsRune(name, 0):
		return errs.New(errs.ErrKindInvalidInput, "file name must not contain NUL")
	}
	return nil
}
