package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrorKind is the stable, machine-checkable category of a service failure.
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindForbidden        ErrorKind = "forbidden"
	KindNotFound         ErrorKind = "not_found"
	KindAlreadySubmitted ErrorKind = "already_submitted"
	KindInternal         ErrorKind = "internal"
)

// Error carries a kind and a client-safe message. Err holds the cause for
// logs only; it is never rendered to clients.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func validationError(format string, args ...interface{}) *Error {
	return newError(KindValidation, nil, format, args...)
}

func internalError(err error, message string) *Error {
	return newError(KindInternal, err, "%s", message)
}

// KindOf reports the kind of err, treating anything untyped as internal.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message for err.
func MessageOf(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return "Internal server error"
}

// attemptLookupError maps a repository lookup failure to not_found or
// internal.
func attemptLookupError(err error, attemptID uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(KindNotFound, nil, "Attempt not found")
	}
	log.Error().Err(err).Uint("attemptID", attemptID).Msg("Failed to load attempt")
	return internalError(err, "Failed to load attempt")
}
