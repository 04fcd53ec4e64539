// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SignupForm is the self-service registration input.
type SignupForm struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
}

// LoginForm is the password login input.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordForm requests a password recovery email.
type ResetPasswordForm struct {
	Email string `json:"email"`
}

// CreateUserForm is the admin input for provisioning an account.
type CreateUserForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// FormResult is the outcome of a form submission. Error is null on success.
type FormResult struct {
	Error *string `json:"error"`
}

// FormOK is a successful FormResult.
func FormOK() FormResult {
	return FormResult{}
}

// FormError builds a failed FormResult carrying msg.
func FormError(msg string) FormResult {
	return FormResult{Error: &msg}
}

// ActionResult is the outcome of an admin action.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UserWithRole is the payload of the current-user endpoint.
type UserWithRole struct {
	User User `json:"user"`
	Role Role `json:"role"`
}

// VersionResponse is returned by the version endpoint.
type VersionResponse struct {
	Version string `json:"version"`
}
