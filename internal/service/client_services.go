// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/erp-accounts/internal/adapter"
	"github.com/MKhiriev/erp-accounts/internal/validators"
)

type ClientServices struct {
	AuthService  ClientAuthService
	UsersService ClientUsersService
}

func NewClientServices(api adapter.AdminAPI) *ClientServices {
	return &ClientServices{
		AuthService:  NewClientAuthService(api),
		UsersService: NewClientUsersService(api, validators.NewAccountValidator()),
	}
}
