// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"sync/atomic"

	"github.com/MKhiriev/erp-accounts/models"
)

var sessionAdmin atomic.Pointer[models.UserWithRole]

func setSessionAdmin(admin models.UserWithRole) {
	sessionAdmin.Store(&admin)
}

func getSessionAdmin() (models.UserWithRole, bool) {
	admin := sessionAdmin.Load()
	if admin == nil {
		return models.UserWithRole{}, false
	}
	return *admin, true
}

func clearSessionAdmin() {
	sessionAdmin.Store(nil)
}
