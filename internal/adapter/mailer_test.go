// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/erp-accounts/internal/config"
)

func newTestMailer(t *testing.T, serverURL string) Mailer {
	t.Helper()
	m, err := NewMailerClient(config.Mailer{
		URL:        serverURL,
		APIKey:     "re_key",
		AudienceID: "aud-1",
		From:       "ERP <noreply@erp.test>",
	})
	require.NoError(t, err)
	return m
}

func TestNewMailerClient_RequiresKey(t *testing.T) {
	_, err := NewMailerClient(config.Mailer{URL: "https://api.resend.com"})
	assert.Error(t, err)
}

func TestCreateContact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/audiences/aud-1/contacts", r.URL.Path)
		assert.Equal(t, "Bearer re_key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@x.com", body["email"])
		assert.Equal(t, "Ada", body["first_name"])
		assert.Equal(t, "Lovelace", body["last_name"])
		assert.Equal(t, false, body["unsubscribed"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	require.NoError(t, newTestMailer(t, srv.URL).CreateContact(context.Background(), "a@x.com", "Ada", "Lovelace"))
}

func TestRemoveContact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/audiences/aud-1/contacts/a@x.com", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, newTestMailer(t, srv.URL).RemoveContact(context.Background(), "a@x.com"))
}

func TestSendEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ERP <noreply@erp.test>", body["from"])
		assert.Equal(t, []any{"c@x.com"}, body["to"])
		assert.Equal(t, "Welcome", body["subject"])
		assert.Contains(t, body["html"], "temporary password")

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestMailer(t, srv.URL).SendEmail(context.Background(), "c@x.com", "Welcome", "<p>Your temporary password</p>")
	require.NoError(t, err)
}

func TestSendEmail_ErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"statusCode":429,"message":"Too many requests","name":"rate_limit_exceeded"}`))
	}))
	defer srv.Close()

	err := newTestMailer(t, srv.URL).SendEmail(context.Background(), "c@x.com", "s", "h")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyRequests)
	assert.Equal(t, "Too many requests", err.Error())
}
