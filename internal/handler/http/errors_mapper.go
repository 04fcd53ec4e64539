// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/erp-accounts/internal/adapter"
	"github.com/MKhiriev/erp-accounts/internal/service"
)

// errorStatusMap is checked in order; the first kind err matches wins.
// Not-found causes come before ErrDirectory so a missing user is a 404
// rather than a 500.
var errorStatusMap = []struct {
	target error
	status int
}{
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrNoSession, http.StatusUnauthorized},
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrAccountDisabled, http.StatusForbidden},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrUnauthenticated, http.StatusUnauthorized},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrEventNotFound, http.StatusNotFound},
	{service.ErrUserAlreadyExists, http.StatusConflict},
	{service.ErrInconsistentState, http.StatusInternalServerError},
	{service.ErrDirectory, http.StatusInternalServerError},
	{service.ErrInternal, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	if errors.Is(err, service.ErrProvider) {
		return providerStatus(err)
	}

	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.target) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// providerStatus passes a 4xx answer of the identity provider through and
// turns everything else into 502.
func providerStatus(err error) int {
	var perr *adapter.ProviderError
	if errors.As(err, &perr) && perr.Status >= http.StatusBadRequest && perr.Status < http.StatusInternalServerError {
		return perr.Status
	}
	return http.StatusBadGateway
}
