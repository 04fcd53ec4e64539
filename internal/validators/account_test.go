// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/erp-accounts/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validSignup() models.SignupForm {
	return models.SignupForm{
		Email:           "a@x.com",
		Password:        "Pw1!",
		ConfirmPassword: "Pw1!",
		FullName:        "Ada Lovelace",
	}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestNewAccountValidator(t *testing.T) {
	require.NotNil(t, NewAccountValidator())
}

func TestValidate_UnsupportedType(t *testing.T) {
	err := NewAccountValidator().Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestValidate_Pointers(t *testing.T) {
	v := NewAccountValidator()
	form := validSignup()

	assert.NoError(t, v.Validate(context.Background(), &form))
	assert.NoError(t, v.Validate(context.Background(), &models.LoginForm{Email: "a@x.com", Password: "pass"}))
	assert.NoError(t, v.Validate(context.Background(), &models.ResetPasswordForm{Email: "a@x.com"}))
	assert.NoError(t, v.Validate(context.Background(), &models.CreateUserForm{Name: "Cara", Email: "c@x.com", Role: "staff"}))
}

func TestValidate_UnknownField(t *testing.T) {
	err := NewAccountValidator().Validate(context.Background(), validSignup(), "nickname")
	assert.ErrorIs(t, err, ErrUnknownField)
}

// ---------------------------------------------------------------------------
// Signup
// ---------------------------------------------------------------------------

func TestValidate_Signup(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *models.SignupForm)
		wantErr error
	}{
		{name: "valid", mutate: func(f *models.SignupForm) {}},
		{name: "bad email", mutate: func(f *models.SignupForm) { f.Email = "not-an-email" }, wantErr: ErrInvalidEmail},
		{name: "display name email", mutate: func(f *models.SignupForm) { f.Email = "Ada <a@x.com>" }, wantErr: ErrInvalidEmail},
		{name: "no dot in domain", mutate: func(f *models.SignupForm) { f.Email = "a@localhost" }, wantErr: ErrInvalidEmail},
		{name: "short password", mutate: func(f *models.SignupForm) { f.Password, f.ConfirmPassword = "abc", "abc" }, wantErr: ErrPasswordTooShort},
		{name: "blank name", mutate: func(f *models.SignupForm) { f.FullName = "   " }, wantErr: ErrFullNameRequired},
		{name: "mismatch", mutate: func(f *models.SignupForm) { f.ConfirmPassword = "Pw2!" }, wantErr: ErrPasswordsDoNotMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validSignup()
			tt.mutate(&form)

			err := NewAccountValidator().Validate(context.Background(), form)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// Shape errors are reported before the password mismatch.
func TestValidate_SignupOrder(t *testing.T) {
	form := models.SignupForm{Email: "bad", Password: "a", ConfirmPassword: "b"}

	err := NewAccountValidator().Validate(context.Background(), form)
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestValidate_MessagesAreUserFacing(t *testing.T) {
	form := validSignup()
	form.ConfirmPassword = "other"

	err := NewAccountValidator().Validate(context.Background(), form)
	require.Error(t, err)
	assert.Equal(t, "Passwords do not match", err.Error())
}

// ---------------------------------------------------------------------------
// Create user
// ---------------------------------------------------------------------------

func TestValidate_CreateUser(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.CreateUserForm{Name: "Cara", Email: "c@x.com", Role: "Staff"}))
	assert.ErrorIs(t, v.Validate(ctx, models.CreateUserForm{Email: "c@x.com", Role: "staff"}), ErrNameRequired)
	assert.ErrorIs(t, v.Validate(ctx, models.CreateUserForm{Name: "Cara", Email: "c@", Role: "staff"}), ErrInvalidEmail)
	assert.ErrorIs(t, v.Validate(ctx, models.CreateUserForm{Name: "Cara", Email: "c@x.com", Role: "owner"}), ErrInvalidRole)
}

func TestValidate_FieldScoping(t *testing.T) {
	form := models.CreateUserForm{Name: "", Email: "c@x.com", Role: "owner"}

	err := NewAccountValidator().Validate(context.Background(), form, FieldEmail)
	assert.NoError(t, err)
}
