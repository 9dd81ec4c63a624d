package server

import (
	"errors"
	"net/http"

	"github.com/koustreak/filedrop/internal/errs"
)

// Appended to every 500 body.
const tryAgainSuffix = " Please try again"

// statusFor maps an error coming out of the storage layer to an HTTP
// status. Every error maps to something; unknown kinds become 500.
func statusFor(err error) int {
	if isTooLarge(err) {
		return http.StatusRequestEntityTooLarge
	}

	switch errs.KindOf(err) {
	case errs.ErrKindNotFound:
		return http.StatusNotFound
	case errs.ErrKindAlreadyExists:
		return http.StatusConflict
	case errs.ErrKindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// isTooLarge reports whether err comes from reading past the
// http.MaxBytesReader installed on an upload.
func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// clientMessage returns the validation message of an invalid-input error.
func clientMessage(err error) string {
	var e *errs.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
