// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SortField is a column the users table can be ordered by.
type SortField string

const (
	SortByName      SortField = "name"
	SortByEmail     SortField = "email"
	SortByRole      SortField = "role"
	SortByCreatedAt SortField = "created_at"
	SortByLastLogin SortField = "last_login"
)

// SortFields lists the sortable columns in the order the table cycles them.
var SortFields = []SortField{SortByCreatedAt, SortByName, SortByEmail, SortByRole, SortByLastLogin}

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// PageRequest selects one page of the users table.
type PageRequest struct {
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Sort     SortField `json:"sort"`
	Order    string    `json:"order"`
	Search   string    `json:"search,omitempty"`
	Role     Role      `json:"role,omitempty"`
}

// Normalize fills defaults and replaces out-of-range values.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}

	valid := false
	for _, f := range SortFields {
		if p.Sort == f {
			valid = true
			break
		}
	}
	if !valid {
		p.Sort = SortByCreatedAt
	}

	p.Order = strings.ToLower(p.Order)
	if p.Order != OrderAsc {
		p.Order = OrderDesc
	}

	p.Search = strings.TrimSpace(p.Search)
	if p.Role != "" && !p.Role.Valid() {
		p.Role = ""
	}

	return p
}

// Clamp moves a page past the end onto the last page.
func (p PageRequest) Clamp(total int) PageRequest {
	if last := TotalPages(total, p.PageSize); p.Page > last {
		p.Page = last
	}
	return p
}

// Offset is the number of rows skipped before the page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns ceil(total/pageSize), never less than 1.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// UserPage is one page of directory users.
type UserPage struct {
	Users      []User `json:"users"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
}

// NewUserPage assembles a page for req out of the selected rows and the
// total number of matching rows.
func NewUserPage(users []User, total int, req PageRequest) UserPage {
	if users == nil {
		users = []User{}
	}
	return UserPage{
		Users:      users,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: TotalPages(total, req.PageSize),
	}
}
