// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		host        string
		port        int
	}{
		{name: "localhost", input: "localhost:8080", host: "localhost", port: 8080},
		{name: "ipv4", input: "0.0.0.0:80", host: "0.0.0.0", port: 80},
		{name: "empty host", input: ":8080", host: "", port: 8080},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "port not a number", input: "localhost:http", expectError: true},
		{name: "port zero", input: "localhost:0", expectError: true},
		{name: "port too large", input: "localhost:70000", expectError: true},
		{name: "hostname not allowed", input: "example.com:80", expectError: true},
		{name: "too many colons", input: "a:b:c", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.host, addr.Host)
			assert.Equal(t, tt.port, addr.Port)
		})
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-a", "127.0.0.1:8081",
		"-d", "postgres://u:p@localhost/erp",
		"-config", "/etc/erp.json",
		"-site-url", "https://erp.example.com",
		"-request-timeout", "15s",
		"-identity-url", "https://id.example.com",
		"-identity-anon-key", "anon",
		"-identity-service-key", "svc",
		"-jwt-secret", "secret",
		"-mailer-url", "https://mail.example.com",
		"-mailer-key", "re_123",
		"-audience-id", "aud",
		"-mail-from", "erp@example.com",
		"-workers", "4",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "postgres://u:p@localhost/erp", cfg.Storage.DB.DSN)
	assert.Equal(t, "/etc/erp.json", cfg.JSONFilePath)
	assert.Equal(t, "https://erp.example.com", cfg.App.SiteURL)
	assert.Equal(t, Identity{URL: "https://id.example.com", AnonKey: "anon", ServiceKey: "svc", JWTSecret: "secret"}, cfg.Identity)
	assert.Equal(t, "re_123", cfg.Mailer.APIKey)
	assert.Equal(t, "aud", cfg.Mailer.AudienceID)
	assert.Equal(t, "erp@example.com", cfg.Mailer.From)
	assert.Equal(t, 4, cfg.Workers.NotificationWorkers)
}

func TestParseFlags_NoArgs(t *testing.T) {
	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	_, err := ParseFlags([]string{"-a", "not-an-address"})
	assert.Error(t, err)
}

func TestParseClientConfig(t *testing.T) {
	t.Setenv("ADMIN_SERVER_URL", "https://erp.example.com")

	cfg, err := parseClientConfig([]string{"-timeout", "3s"})
	require.NoError(t, err)
	assert.Equal(t, "https://erp.example.com", cfg.ServerURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "erp-admin.log", cfg.LogFile)

	_, err = parseClientConfig([]string{"-s", "erp.example.com"})
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}
