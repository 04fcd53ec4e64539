// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/erp-accounts/internal/service"
)

var errNoServices = errors.New("tui: client services are required")

func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrServerUnavailable):
		return "Server is unreachable. Check the network and the server address."
	case errors.Is(err, service.ErrNotAdmin):
		return "Only admins can use this client."
	default:
		return service.UserMessage(err)
	}
}
