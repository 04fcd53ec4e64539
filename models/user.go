// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"strings"
	"time"
)

// ErrUnknownRole is returned by [ParseRole] for values outside the role set.
var ErrUnknownRole = errors.New("unknown role")

// Role is the access level of a directory user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleBroker   Role = "broker"
	RoleCustomer Role = "customer"
	RoleGuest    Role = "guest"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleStaff, RoleBroker, RoleCustomer, RoleGuest}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// IsAdmin reports whether r is the admin role.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ParseRole converts s (case-insensitive, surrounding spaces ignored) to a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// User is a row of the application directory. UserID is issued by the
// identity provider and is never generated locally.
type User struct {
	UserID     string     `json:"user_id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Role       Role       `json:"role"`
	IsDisabled bool       `json:"is_disabled"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// SplitName splits a display name into first and last name for contact
// sync: the first token is the first name, the rest joined by a single
// space is the last name.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
