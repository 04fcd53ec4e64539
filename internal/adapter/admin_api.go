// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/erp-accounts/internal/config"
	"github.com/MKhiriev/erp-accounts/internal/utils"
	"github.com/MKhiriev/erp-accounts/models"
)

type adminAPIClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string
}

// NewAdminAPIClient creates the erp-accounts API client of the admin terminal.
func NewAdminAPIClient(cfg config.ClientConfig) (AdminAPI, error) {
	client, err := utils.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	client.SetHeader("Content-Type", "application/json")

	return &adminAPIClient{client: client}, nil
}

func (a *adminAPIClient) setToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = strings.TrimSpace(token)
}

func (a *adminAPIClient) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

func (a *adminAPIClient) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := a.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	return a.client.R().SetContext(ctx).SetAuthToken(token), nil
}

func (a *adminAPIClient) Login(ctx context.Context, email, password string) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(models.LoginForm{Email: email, Password: password}).
		Post("/api/auth/login")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("login parse bearer token: %w", err)
	}

	a.setToken(token)
	return nil
}

func (a *adminAPIClient) Logout(ctx context.Context) error {
	req, err := a.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Post("/api/auth/logout")
	a.setToken("")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	return mapHTTPError(resp)
}

func (a *adminAPIClient) CurrentUser(ctx context.Context) (models.UserWithRole, error) {
	req, err := a.authedRequest(ctx)
	if err != nil {
		return models.UserWithRole{}, err
	}

	var out models.UserWithRole
	resp, err := req.SetResult(&out).Get("/api/user")
	if err != nil {
		return models.UserWithRole{}, fmt.Errorf("current user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserWithRole{}, err
	}
	return out, nil
}

func (a *adminAPIClient) ListUsers(ctx context.Context, pr models.PageRequest) (models.UserPage, error) {
	req, err := a.authedRequest(ctx)
	if err != nil {
		return models.UserPage{}, err
	}

	params := map[string]string{}
	if pr.Page > 0 {
		params["page"] = strconv.Itoa(pr.Page)
	}
	if pr.PageSize > 0 {
		params["page_size"] = strconv.Itoa(pr.PageSize)
	}
	if pr.Sort != "" {
		params["sort"] = string(pr.Sort)
	}
	if pr.Order != "" {
		params["order"] = pr.Order
	}
	if pr.Search != "" {
		params["search"] = pr.Search
	}
	if pr.Role != "" {
		params["role"] = string(pr.Role)
	}

	var out models.UserPage
	resp, err := req.SetQueryParams(params).SetResult(&out).Get("/api/admin/users")
	if err != nil {
		return models.UserPage{}, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserPage{}, err
	}
	return out, nil
}

func (a *adminAPIClient) CreateUser(ctx context.Context, form models.CreateUserForm) error {
	req, err := a.authedRequest(ctx)
	if err != nil {
		return err
	}
	return a.action(req.SetBody(form), http.MethodPost, "/api/admin/users")
}

func (a *adminAPIClient) DisableUser(ctx context.Context, userID string) error {
	req, err := a.authedRequest(ctx)
	if err != nil {
		return err
	}
	return a.action(req.SetPathParam("id", userID), http.MethodPost, "/api/admin/users/{id}/disable")
}

func (a *adminAPIClient) EnableUser(ctx context.Context, userID string) error {
	req, err := a.authedRequest(ctx)
	if err != nil {
		return err
	}
	return a.action(req.SetPathParam("id", userID), http.MethodPost, "/api/admin/users/{id}/enable")
}

func (a *adminAPIClient) DeleteUser(ctx context.Context, userID string) error {
	req, err := a.authedRequest(ctx)
	if err != nil {
		return err
	}
	return a.action(req.SetPathParam("id", userID), http.MethodDelete, "/api/admin/users/{id}")
}

// action executes an admin call answering with an ActionResult.
func (a *adminAPIClient) action(req *resty.Request, method, path string) error {
	var out models.ActionResult
	resp, err := req.SetResult(&out).Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s request: %w", method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}
	if !out.Success {
		if out.Error != "" {
			return errors.New(out.Error)
		}
		return errors.New("action failed")
	}
	return nil
}

func (a *adminAPIClient) Version(ctx context.Context) (string, error) {
	var out models.VersionResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return out.Version, nil
}
