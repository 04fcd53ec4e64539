// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/erp-accounts/internal/adapter"
	"github.com/MKhiriev/erp-accounts/internal/validators"
	"github.com/MKhiriev/erp-accounts/models"
)

type clientUsersService struct {
	api       adapter.AdminAPI
	validator validators.Validator
}

func NewClientUsersService(api adapter.AdminAPI, validator validators.Validator) ClientUsersService {
	return &clientUsersService{api: api, validator: validator}
}

func (s *clientUsersService) List(ctx context.Context, req models.PageRequest) (models.UserPage, error) {
	page, err := s.api.ListUsers(ctx, req.Normalize())
	if err != nil {
		return models.UserPage{}, mapAdapterError(err)
	}
	return page, nil
}

func (s *clientUsersService) Create(ctx context.Context, form models.CreateUserForm) error {
	if err := s.validator.Validate(ctx, form); err != nil {
		return validationError(err)
	}
	return mapAdapterError(s.api.CreateUser(ctx, form))
}

func (s *clientUsersService) Disable(ctx context.Context, userID string) error {
	return mapAdapterError(s.api.DisableUser(ctx, userID))
}

func (s *clientUsersService) Enable(ctx context.Context, userID string) error {
	return mapAdapterError(s.api.EnableUser(ctx, userID))
}

func (s *clientUsersService) Delete(ctx context.Context, userID string) error {
	return mapAdapterError(s.api.DeleteUser(ctx, userID))
}

func (s *clientUsersService) ServerVersion(ctx context.Context) (string, error) {
	version, err := s.api.Version(ctx)
	if err != nil {
		return "", mapAdapterError(err)
	}
	return version, nil
}
