// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/erp-accounts/internal/config"
	"github.com/MKhiriev/erp-accounts/internal/utils"
)

type mailerClient struct {
	client     *utils.HTTPClient
	audienceID string
	from       string
}

// NewMailerClient creates the Resend-style mailer client. The API key is
// sent as a bearer token on every call.
func NewMailerClient(cfg config.Mailer) (Mailer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("mailer api key is required")
	}

	client, err := utils.NewHTTPClient(cfg.URL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("mailer url: %w", err)
	}
	client.SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &mailerClient{client: client, audienceID: cfg.AudienceID, from: cfg.From}, nil
}

func (m *mailerClient) CreateContact(ctx context.Context, email, firstName, lastName string) error {
	resp, err := m.client.R().
		SetContext(ctx).
		SetPathParam("audience", m.audienceID).
		SetBody(map[string]any{
			"email":        email,
			"first_name":   firstName,
			"last_name":    lastName,
			"unsubscribed": false,
		}).
		Post("/audiences/{audience}/contacts")
	if err != nil {
		return fmt.Errorf("create contact request: %w", err)
	}
	return mapHTTPError(resp)
}

func (m *mailerClient) RemoveContact(ctx context.Context, email string) error {
	resp, err := m.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"audience": m.audienceID, "email": email}).
		Delete("/audiences/{audience}/contacts/{email}")
	if err != nil {
		return fmt.Errorf("remove contact request: %w", err)
	}
	return mapHTTPError(resp)
}

func (m *mailerClient) SendEmail(ctx context.Context, to, subject, html string) error {
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"from":    m.from,
			"to":      []string{to},
			"subject": subject,
			"html":    html,
		}).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("send email request: %w", err)
	}
	return mapHTTPError(resp)
}
