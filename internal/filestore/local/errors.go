package local

import (
	"context"
	"errors"
	"io/fs"

	"github.com/koustreak/filedrop/internal/errs"
)

// mapError translates an os / io error into an *errs.Error.
// err must be non-nil.
func mapError(err error, msg string) error {
	// Context cancellation / deadline
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	switch {
	case errors.Is(err, fs.ErrExist):
		return errs.Wrap(errs.ErrKindAlreadyExists, msg, err)
	case errors.Is(err, fs.ErrNotExist):
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	case errors.Is(err, fs.ErrPermission):
		return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
	}

	// Anything else: disk full, read errors from the source, …
	return errs.Wrap(errs.ErrKindIOFailed, msg, err)
}
