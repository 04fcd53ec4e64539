// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration of the erp-accounts
// server. It is populated by merging environment variables, command-line
// flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds site-level settings used when building links and emails.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the inbound HTTP settings.
	Server Server `envPrefix:"SERVER_"`

	// Identity holds the credential provider settings.
	Identity Identity `envPrefix:"IDENTITY_"`

	// Mailer holds the email and contacts service settings.
	Mailer Mailer `envPrefix:"MAILER_"`

	// Workers holds the notification queue settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration.
type App struct {
	// SiteURL is the public base URL of the web application
	// (e.g. "https://erp.example.com"). OAuth and password reset redirects
	// are built from it.
	// Env: APP_SITE_URL
	SiteURL string `env:"SITE_URL"`

	// SupportEmail is shown in welcome emails.
	// Env: APP_SUPPORT_EMAIL
	SupportEmail string `env:"SUPPORT_EMAIL"`

	// TempPasswordLength is the length of generated temporary passwords.
	// Env: APP_TEMP_PASSWORD_LENGTH
	TempPasswordLength int `env:"TEMP_PASSWORD_LENGTH"`

	// Version is exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the persistence settings.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the user directory.
type DB struct {
	// DSN selects the driver by scheme: "postgres://..." for PostgreSQL,
	// "sqlite3://path/to/file.db" for a local SQLite file.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the HTTP server.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request (e.g. "30s").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// CookieSecure marks session cookies Secure. Enable behind TLS.
	// Env: SERVER_COOKIE_SECURE
	CookieSecure bool `env:"COOKIE_SECURE"`
}

// Identity holds the credential provider settings.
type Identity struct {
	// URL is the provider base URL (e.g. "https://project.supabase.co").
	// Env: IDENTITY_URL
	URL string `env:"URL"`

	// AnonKey is the public API key sent with end-user calls.
	// Env: IDENTITY_ANON_KEY
	AnonKey string `env:"ANON_KEY"`

	// ServiceKey is the service-role key used for admin calls.
	// Env: IDENTITY_SERVICE_KEY
	ServiceKey string `env:"SERVICE_KEY"`

	// JWTSecret verifies access tokens locally. When empty every session
	// check asks the provider.
	// Env: IDENTITY_JWT_SECRET
	JWTSecret string `env:"JWT_SECRET"`

	// Timeout bounds each provider call.
	// Env: IDENTITY_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Mailer holds the email and contacts service settings.
type Mailer struct {
	// URL is the service base URL (e.g. "https://api.resend.com").
	// Env: MAILER_URL
	URL string `env:"URL"`

	// APIKey is sent as a bearer token.
	// Env: MAILER_API_KEY
	APIKey string `env:"API_KEY"`

	// AudienceID is the contacts audience users are synced into.
	// Env: MAILER_AUDIENCE_ID
	AudienceID string `env:"AUDIENCE_ID"`

	// From is the sender of transactional emails.
	// Env: MAILER_FROM
	From string `env:"FROM"`

	// Timeout bounds each mailer call.
	// Env: MAILER_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Workers holds notification queue settings.
type Workers struct {
	// NotificationWorkers is the number of goroutines draining the queue.
	// Env: WORKERS_NOTIFICATION_WORKERS
	NotificationWorkers int `env:"NOTIFICATION_WORKERS"`

	// QueueSize is the capacity of the notification queue. Tasks arriving
	// at a full queue are dropped.
	// Env: WORKERS_QUEUE_SIZE
	QueueSize int `env:"QUEUE_SIZE"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Unset values are then filled from [Defaults].
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder(os.Args[1:]).
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// Defaults returns the values used for settings no source provided.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SiteURL:            "http://localhost:3000",
			TempPasswordLength: 16,
			Version:            "dev",
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Identity: Identity{Timeout: 10 * time.Second},
		Mailer: Mailer{
			URL:     "https://api.resend.com",
			Timeout: 10 * time.Second,
		},
		Workers: Workers{
			NotificationWorkers: 2,
			QueueSize:           256,
		},
	}
}
