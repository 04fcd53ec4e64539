// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// erp-accounts services, handlers and the admin terminal.
//
// All Msg* constants are human-readable strings shown to the end user,
// either inline in a form result or as the error query parameter of a
// redirect. Keeping them in one place keeps the wording consistent.
package app

// Authentication outcomes.
const (
	// MsgAccountDisabled is shown on every entry point a disabled user hits.
	MsgAccountDisabled = "Your account has been disabled. Please contact support."

	// MsgProfileNotFound is shown when a valid session has no directory row.
	MsgProfileNotFound = "User profile not found. Please contact support."

	// MsgNotAuthenticated is returned when a request carries no valid session.
	MsgNotAuthenticated = "You must be signed in to continue."

	// MsgForbidden is returned when a non-admin calls an admin operation.
	MsgForbidden = "You do not have permission to perform this action."

	MsgOAuthFailed = "Could not complete sign in. Please try again."
)

// Form validation.
const (
	MsgInvalidEmail        = "Please enter a valid email address."
	MsgPasswordTooShort    = "Password must be at least 4 characters."
	MsgPasswordsDoNotMatch = "Passwords do not match"
	MsgFullNameRequired    = "Full name is required."
	MsgNameRequired        = "Name is required."
	MsgInvalidRole         = "Please select a valid role."

	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "Invalid data provided."
)

// Admin action results.
const (
	MsgUserCreated         = "User created successfully."
	MsgUserAccessRestrict  = "User access has been restricted."
	MsgUserAccessEnabled   = "User access has been enabled."
	MsgUserDeleted         = "User deleted successfully."
	MsgEventResolved       = "Reconciliation event resolved."
	MsgUserNotFound        = "User not found."
	MsgEventNotFound       = "Reconciliation event not found."
	MsgUserAlreadyExists   = "A user with this email already exists."
	MsgUpdateAccessFailed  = "Failed to update user access"
	MsgDeleteUserFailed    = "Failed to delete user"
	MsgCreateUserFailed    = "Failed to create user"
	MsgLoadUsersFailed     = "Failed to load users"
	MsgResolveEventFailed  = "Failed to resolve reconciliation event"
	MsgInternalServerError = "Something went wrong. Please try again."
)

// Notification templates.
const (
	WelcomeEmailSubject = "Your ERP account is ready"

	// WelcomeEmailTemplate is rendered with name, site URL, email, temporary
	// password and support email, in that order.
	WelcomeEmailTemplate = `<p>Hello %s,</p>
<p>An account has been created for you at <a href="%s">%[2]s</a>.</p>
<p>Email: <strong>%s</strong><br>Temporary password: <strong>%s</strong></p>
<p>You will be asked to change this password after your first sign in.</p>
<p>Questions? Contact %s.</p>`
)
