// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client, err := utils.NewHTTPClient("https://api.resend.com", 10*time.Second)
//	resp, err := client.R().SetContext(ctx).Get("/emails")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client bound to baseURL with the given request
// timeout. A base URL without a scheme gets "http://"; trailing slashes
// are removed. A zero timeout leaves resty's default (none).
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	normalized, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	client := resty.New().SetBaseURL(normalized)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}, nil
}

// NormalizeBaseURL validates raw as an absolute URL and strips trailing
// slashes.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid address: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
