// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/erp-accounts/internal/adapter"
	"github.com/MKhiriev/erp-accounts/internal/app"
	"github.com/MKhiriev/erp-accounts/models"
)

type clientAuthService struct {
	api adapter.AdminAPI
}

func NewClientAuthService(api adapter.AdminAPI) ClientAuthService {
	return &clientAuthService{api: api}
}

func (a *clientAuthService) Login(ctx context.Context, email, password string) (models.UserWithRole, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.UserWithRole{}, &Error{Kind: ErrValidation, Message: app.MsgInvalidDataProvided}
	}

	if err := a.api.Login(ctx, email, password); err != nil {
		return models.UserWithRole{}, mapAdapterError(err)
	}

	me, err := a.api.CurrentUser(ctx)
	if err != nil {
		_ = a.api.Logout(ctx)
		return models.UserWithRole{}, mapAdapterError(err)
	}

	if me.Role != models.RoleAdmin {
		if err = a.api.Logout(ctx); err != nil {
			return models.UserWithRole{}, fmt.Errorf("%w: logout: %v", ErrNotAdmin, err)
		}
		return models.UserWithRole{}, &Error{Kind: ErrForbidden, Message: app.MsgForbidden, Err: ErrNotAdmin}
	}

	return me, nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	if a.api.Token() == "" {
		return nil
	}
	return mapAdapterError(a.api.Logout(ctx))
}
