// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/erp-accounts/models"
)

// Field name constants accepted by AccountValidator.Validate.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldFullName        = "full_name"
	FieldName            = "name"
	FieldRole            = "role"
)

// MinPasswordLength is the shortest password accepted at signup and login.
const MinPasswordLength = 4

// AccountValidator validates signup, login, password reset and admin
// create-user forms.
type AccountValidator struct {
}

func NewAccountValidator() Validator {
	return &AccountValidator{}
}

func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupForm:
		return v.validateSignup(value, fields...)
	case *models.SignupForm:
		return v.validateSignup(*value, fields...)

	case models.LoginForm:
		return v.validateLogin(value, fields...)
	case *models.LoginForm:
		return v.validateLogin(*value, fields...)

	case models.ResetPasswordForm:
		return v.validateResetPassword(value, fields...)
	case *models.ResetPasswordForm:
		return v.validateResetPassword(*value, fields...)

	case models.CreateUserForm:
		return v.validateCreateUser(value, fields...)
	case *models.CreateUserForm:
		return v.validateCreateUser(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateSignup(form models.SignupForm, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldFullName, FieldConfirmPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(form.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if utf8.RuneCountInString(form.Password) < MinPasswordLength {
				return ErrPasswordTooShort
			}
		case FieldFullName:
			if strings.TrimSpace(form.FullName) == "" {
				return ErrFullNameRequired
			}
		case FieldConfirmPassword:
			if form.Password != form.ConfirmPassword {
				return ErrPasswordsDoNotMatch
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateLogin(form models.LoginForm, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(form.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if utf8.RuneCountInString(form.Password) < MinPasswordLength {
				return ErrPasswordTooShort
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateResetPassword(form models.ResetPasswordForm, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(form.Email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateCreateUser(form models.CreateUserForm, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(form.Name) == "" {
				return ErrNameRequired
			}
		case FieldEmail:
			if !isValidEmail(form.Email) {
				return ErrInvalidEmail
			}
		case FieldRole:
			if _, err := models.ParseRole(form.Role); err != nil {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// isValidEmail accepts a bare addr-spec with a dotted domain. Display-name
// forms such as "Ada <a@x.com>" are rejected.
func isValidEmail(raw string) bool {
	email := strings.TrimSpace(raw)
	if email == "" {
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return false
	}

	_, domain, ok := strings.Cut(email, "@")
	return ok && strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}
