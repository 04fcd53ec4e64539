// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"

	"github.com/MKhiriev/erp-accounts/internal/config"
	"github.com/MKhiriev/erp-accounts/internal/utils"
	"github.com/MKhiriev/erp-accounts/models"
)

const authPrefix = "/auth/v1"

// AdminCreateUserRequest is the input of [IdentityProvider.AdminCreateUser].
// The identity is created with a confirmed email.
type AdminCreateUserRequest struct {
	Email                  string
	Password               string
	FullName               string
	PasswordChangeRequired bool
}

type identityClient struct {
	client     *utils.HTTPClient
	baseURL    string
	anonKey    string
	serviceKey string
}

// NewIdentityClient creates the GoTrue-style identity provider client.
func NewIdentityClient(cfg config.Identity) (IdentityProvider, error) {
	if cfg.AnonKey == "" || cfg.ServiceKey == "" {
		return nil, errors.New("identity provider keys are required")
	}

	client, err := utils.NewHTTPClient(cfg.URL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("identity provider url: %w", err)
	}
	client.SetHeader("Content-Type", "application/json")

	return &identityClient{
		client:     client,
		baseURL:    client.BaseURL,
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceKey,
	}, nil
}

type identityDTO struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

func (d identityDTO) toModel() models.Identity {
	return models.Identity{ID: d.ID, Email: d.Email, UserMetadata: d.UserMetadata}
}

// sessionDTO is the token endpoint answer. Signup returns either a bare
// user (email confirmation pending) or a session with a nested user.
type sessionDTO struct {
	identityDTO
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	User         *identityDTO `json:"user"`
}

func (d sessionDTO) identity() models.Identity {
	if d.User != nil {
		return d.User.toModel()
	}
	return d.identityDTO.toModel()
}

func (d sessionDTO) session(now time.Time) (*models.Session, error) {
	if d.AccessToken == "" {
		return nil, errors.New("identity provider returned no access token")
	}

	identity := d.identity()
	expiresAt := now.Add(time.Duration(d.ExpiresIn) * time.Second)
	if d.ExpiresAt > 0 {
		expiresAt = time.Unix(d.ExpiresAt, 0)
	}

	return &models.Session{
		AccessToken:  d.AccessToken,
		RefreshToken: d.RefreshToken,
		ExpiresAt:    expiresAt.UTC(),
		UserID:       identity.ID,
		Email:        identity.Email,
	}, nil
}

func (c *identityClient) public(ctx context.Context) *resty.Request {
	return c.client.R().
		SetContext(ctx).
		SetHeader("apikey", c.anonKey).
		SetAuthToken(c.anonKey)
}

func (c *identityClient) admin(ctx context.Context) *resty.Request {
	return c.client.R().
		SetContext(ctx).
		SetHeader("apikey", c.serviceKey).
		SetAuthToken(c.serviceKey)
}

func (c *identityClient) SignUp(ctx context.Context, email, password, fullName string) (models.Identity, error) {
	var out sessionDTO
	resp, err := c.public(ctx).
		SetBody(map[string]any{
			"email":    email,
			"password": password,
			"data":     map[string]any{"full_name": fullName},
		}).
		SetResult(&out).
		Post(authPrefix + "/signup")
	if err != nil {
		return models.Identity{}, fmt.Errorf("signup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}

	identity := out.identity()
	if identity.ID == "" {
		return models.Identity{}, errors.New("signup: identity provider returned no user id")
	}
	return identity, nil
}

func (c *identityClient) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, models.Identity, error) {
	return c.token(ctx, "password", map[string]string{"email": email, "password": password})
}

func (c *identityClient) ExchangeCodeForSession(ctx context.Context, authCode, codeVerifier string) (*models.Session, models.Identity, error) {
	return c.token(ctx, "pkce", map[string]string{"auth_code": authCode, "code_verifier": codeVerifier})
}

func (c *identityClient) token(ctx context.Context, grantType string, body map[string]string) (*models.Session, models.Identity, error) {
	var out sessionDTO
	resp, err := c.public(ctx).
		SetQueryParam("grant_type", grantType).
		SetBody(body).
		SetResult(&out).
		Post(authPrefix + "/token")
	if err != nil {
		return nil, models.Identity{}, fmt.Errorf("token request (%s): %w", grantType, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, models.Identity{}, err
	}

	session, err := out.session(time.Now())
	if err != nil {
		return nil, models.Identity{}, err
	}
	return session, out.identity(), nil
}

func (c *identityClient) SignOut(ctx context.Context, accessToken string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("apikey", c.anonKey).
		SetAuthToken(accessToken).
		Post(authPrefix + "/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	return mapHTTPError(resp)
}

func (c *identityClient) GetUser(ctx context.Context, accessToken string) (models.Identity, error) {
	var out identityDTO
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("apikey", c.anonKey).
		SetAuthToken(accessToken).
		SetResult(&out).
		Get(authPrefix + "/user")
	if err != nil {
		return models.Identity{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}
	return out.toModel(), nil
}

func (c *identityClient) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	req := c.public(ctx).SetBody(map[string]string{"email": email})
	if redirectTo != "" {
		req.SetQueryParam("redirect_to", redirectTo)
	}

	resp, err := req.Post(authPrefix + "/recover")
	if err != nil {
		return fmt.Errorf("recover request: %w", err)
	}
	return mapHTTPError(resp)
}

func (c *identityClient) AdminCreateUser(ctx context.Context, in AdminCreateUserRequest) (models.Identity, error) {
	var out identityDTO
	resp, err := c.admin(ctx).
		SetBody(map[string]any{
			"email":         in.Email,
			"password":      in.Password,
			"email_confirm": true,
			"user_metadata": map[string]any{
				"full_name":                in.FullName,
				"password_change_required": in.PasswordChangeRequired,
			},
		}).
		SetResult(&out).
		Post(authPrefix + "/admin/users")
	if err != nil {
		return models.Identity{}, fmt.Errorf("admin create user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}
	if out.ID == "" {
		return models.Identity{}, errors.New("admin create user: identity provider returned no user id")
	}
	return out.toModel(), nil
}

func (c *identityClient) AdminDeleteUser(ctx context.Context, userID string) error {
	resp, err := c.admin(ctx).
		SetPathParam("id", userID).
		Delete(authPrefix + "/admin/users/{id}")
	if err != nil {
		return fmt.Errorf("admin delete user request: %w", err)
	}
	return mapHTTPError(resp)
}

// OAuthURL returns the provider authorize URL. GoTrue expects the
// upstream provider name and the post-login target as query params next
// to the standard PKCE challenge.
func (c *identityClient) OAuthURL(provider, redirectTo, codeVerifier string) string {
	cfg := oauth2.Config{
		Endpoint: oauth2.Endpoint{AuthURL: c.baseURL + authPrefix + "/authorize"},
	}

	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("provider", provider),
		oauth2.S256ChallengeOption(codeVerifier),
	}
	if redirectTo != "" {
		opts = append(opts, oauth2.SetAuthURLParam("redirect_to", redirectTo))
	}

	return cfg.AuthCodeURL("", opts...)
}

func (c *identityClient) Issuer() string {
	return strings.TrimRight(c.baseURL, "/") + authPrefix
}
