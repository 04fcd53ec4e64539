// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/erp-accounts/internal/adapter"
	"github.com/MKhiriev/erp-accounts/internal/app"
)

// Client-side errors.
var (
	ErrNotAdmin          = errors.New("admin role required")
	ErrClientNotLoggedIn = errors.New("not logged in")
	ErrServerUnavailable = errors.New("server unavailable")
)

// mapAdapterError translates an admin API error into a service *Error so the
// terminal shows the server's message and can branch on the kind.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, adapter.ErrNotLoggedIn) {
		return &Error{Kind: ErrUnauthenticated, Message: app.MsgNotAuthenticated, Err: ErrClientNotLoggedIn}
	}

	var perr *adapter.ProviderError
	if !errors.As(err, &perr) {
		// transport failure, the server never answered
		return &Error{Kind: ErrInternal, Message: ErrServerUnavailable.Error() + ": " + err.Error(), Err: errors.Join(ErrServerUnavailable, err)}
	}

	msg := perr.Message
	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return &Error{Kind: ErrUnauthenticated, Message: orDefault(msg, app.MsgNotAuthenticated), Err: err}

	case errors.Is(err, adapter.ErrForbidden):
		if msg == app.MsgAccountDisabled {
			return &Error{Kind: ErrAccountDisabled, Message: msg, Err: err}
		}
		return &Error{Kind: ErrForbidden, Message: orDefault(msg, app.MsgForbidden), Err: err}

	case errors.Is(err, adapter.ErrNotFound):
		return &Error{Kind: ErrDirectory, Message: orDefault(msg, app.MsgUserNotFound), Err: errors.Join(ErrUserNotFound, err)}

	case errors.Is(err, adapter.ErrBadRequest), errors.Is(err, adapter.ErrUnprocessable):
		return &Error{Kind: ErrValidation, Message: orDefault(msg, app.MsgInvalidDataProvided), Err: err}

	case errors.Is(err, adapter.ErrConflict):
		return &Error{Kind: ErrDirectory, Message: orDefault(msg, app.MsgUserAlreadyExists), Err: errors.Join(ErrUserAlreadyExists, err)}

	case errors.Is(err, adapter.ErrBadGateway):
		return &Error{Kind: ErrProvider, Message: orDefault(msg, app.MsgInternalServerError), Err: err}
	}

	return &Error{Kind: ErrInternal, Message: orDefault(msg, app.MsgInternalServerError), Err: err}
}

func orDefault(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}
