// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"

	"github.com/MKhiriev/erp-accounts/internal/app"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// Field errors. Their text is shown to the user as is.
var (
	ErrInvalidEmail        = errors.New(app.MsgInvalidEmail)
	ErrPasswordTooShort    = errors.New(app.MsgPasswordTooShort)
	ErrPasswordsDoNotMatch = errors.New(app.MsgPasswordsDoNotMatch)
	ErrFullNameRequired    = errors.New(app.MsgFullNameRequired)
	ErrNameRequired        = errors.New(app.MsgNameRequired)
	ErrInvalidRole         = errors.New(app.MsgInvalidRole)
)
