// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the shape of account forms before any external
// call is made.
//
// A Validator accepts a form value and, optionally, the names of the fields
// to check. Errors returned for a field carry the message shown to the user.
package validators

import "context"

// Validator validates arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
