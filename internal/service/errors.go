// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/erp-accounts/internal/access"
	"github.com/MKhiriev/erp-accounts/internal/app"
	"github.com/MKhiriev/erp-accounts/internal/store"
)

// Error kinds. Every error returned by a server-side service wraps exactly
// one of them; match with errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrAccountDisabled   = access.ErrAccountDisabled
	ErrProvider          = errors.New("identity provider error")
	ErrDirectory         = errors.New("directory error")
	ErrInconsistentState = errors.New("inconsistent state")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = access.ErrForbidden
	ErrInternal          = errors.New("internal error")
)

// Causes surfaced by the directory, re-exported for transport mapping.
var (
	ErrUserNotFound      = store.ErrUserNotFound
	ErrUserAlreadyExists = store.ErrUserAlreadyExists
	ErrEventNotFound     = store.ErrEventNotFound
)

var ErrVersionIsNotSpecified = errors.New("app version is not specified")

// Error is a failed operation: Kind classifies it, Message is what the user
// sees and Err is the underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// UserMessage returns the text to show for err. Errors that are not *Error
// get a generic message so internals never leak.
func UserMessage(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message
	}
	return app.MsgInternalServerError
}

func validationError(err error) *Error {
	return &Error{Kind: ErrValidation, Message: err.Error(), Err: err}
}

// providerError forwards the provider's message verbatim.
func providerError(err error) *Error {
	return &Error{Kind: ErrProvider, Message: err.Error(), Err: err}
}

func directoryError(msg string, err error) *Error {
	return &Error{Kind: ErrDirectory, Message: msg, Err: err}
}

func disabledError() *Error {
	return &Error{Kind: ErrAccountDisabled, Message: app.MsgAccountDisabled}
}

func unauthenticatedError(err error) *Error {
	return &Error{Kind: ErrUnauthenticated, Message: app.MsgNotAuthenticated, Err: err}
}

func internalError(err error) *Error {
	return &Error{Kind: ErrInternal, Message: app.MsgInternalServerError, Err: err}
}

// accessError converts an access.Rules failure into a service error.
func accessError(err error) *Error {
	switch {
	case errors.Is(err, access.ErrAccountDisabled):
		return disabledError()
	case errors.Is(err, access.ErrForbidden):
		return &Error{Kind: ErrForbidden, Message: app.MsgForbidden}
	default:
		return directoryError(app.MsgInternalServerError, err)
	}
}
