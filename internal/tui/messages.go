// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/MKhiriev/erp-accounts/models"

// NavigateTo switches the active page. A non-nil Payload is delivered to
// the new page instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload any
}

// LoginResult finishes a login attempt. On success RootModel opens the
// users page.
type LoginResult struct {
	Admin models.UserWithRole
	Err   error
}

// LogoutResult returns to the login page. Err, when set, is shown there.
type LogoutResult struct {
	Err error
}

type resetLoginMsg struct {
	err error
}

type usersLoadedMsg struct {
	page models.UserPage
	err  error
}

type actionDoneMsg struct {
	message string
	err     error
}

type createDoneMsg struct {
	email string
	err   error
}

type copiedMsg struct {
	email string
	err   error
}

type clearStatusMsg struct{}
