// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid admin client transport
	// settings (for example, a server URL without http scheme).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates a missing or unsupported DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid site-level settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid notification queue settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidIdentityConfigs indicates missing identity provider settings.
	ErrInvalidIdentityConfigs = errors.New("invalid identity provider configuration")
	// ErrInvalidMailerConfigs indicates missing email service settings.
	ErrInvalidMailerConfigs = errors.New("invalid mailer configuration")
)
