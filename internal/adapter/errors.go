// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

// Status sentinels a [*ProviderError] unwraps to.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

// ErrNotLoggedIn is returned by [AdminAPI] calls made before Login.
var ErrNotLoggedIn = errors.New("not logged in")

// ProviderError is a non-2xx answer of a remote service. Error returns the
// remote message unchanged so it can be shown to the user as is.
type ProviderError struct {
	Status  int
	Message string

	kind error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.kind)
}

func (e *ProviderError) Unwrap() error {
	return e.kind
}

// NewProviderError builds the error a remote service answering status with
// message is reported as.
func NewProviderError(status int, message string) *ProviderError {
	return &ProviderError{Status: status, Message: message, kind: statusKind(status)}
}
