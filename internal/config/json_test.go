// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": {
			"site_url": "https://erp.example.com",
			"support_email": "support@example.com",
			"temp_password_length": 24,
			"version": "2.0.0"
		},
		"server": {
			"http_address": "localhost:8080",
			"request_timeout": "30s",
			"cookie_secure": true
		},
		"storage": {
			"db": { "dsn": "sqlite3://erp.db" }
		},
		"identity": {
			"url": "https://id.example.com",
			"anon_key": "anon",
			"service_key": "svc",
			"jwt_secret": "jwt",
			"timeout": "4s"
		},
		"mailer": {
			"api_key": "re_1",
			"audience_id": "aud",
			"from": "erp@example.com",
			"timeout": 2000000000
		},
		"workers": { "notification_workers": 5, "queue_size": 10 }
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://erp.example.com", cfg.App.SiteURL)
	assert.Equal(t, 24, cfg.App.TempPasswordLength)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.Server.CookieSecure)
	assert.Equal(t, "sqlite3://erp.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 4*time.Second, cfg.Identity.Timeout)
	assert.Equal(t, "svc", cfg.Identity.ServiceKey)
	assert.Equal(t, 2*time.Second, cfg.Mailer.Timeout)
	assert.Equal(t, "aud", cfg.Mailer.AudienceID)
	assert.Equal(t, Workers{NotificationWorkers: 5, QueueSize: 10}, cfg.Workers)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_BadDuration(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"server":{"request_timeout":"forever"}}`), 0o600))

	_, err := parseJSON(p)
	assert.Error(t, err)
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(data))
}

func TestDuration_UnmarshalJSON_RejectsBool(t *testing.T) {
	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}
