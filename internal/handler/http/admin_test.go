// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/erp-accounts/internal/app"
	"github.com/MKhiriev/erp-accounts/internal/service"
	"github.com/MKhiriev/erp-accounts/internal/store"
	"github.com/MKhiriev/erp-accounts/models"
)

var adminSession = &models.Session{AccessToken: "admin-token", UserID: "admin-1", Email: "root@x.com"}

func TestAdminRoutes_Anonymous(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.do(t, http.MethodGet, "/api/admin/users", nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, app.MsgNotAuthenticated, decodeActionResult(t, rr).Error)
}

func TestAdminRoutes_NonAdmin(t *testing.T) {
	ts := newTestServer(t)
	session := &models.Session{AccessToken: "staff-token", UserID: "u-2"}

	ts.auth.EXPECT().Authenticate(gomock.Any(), "staff-token").Return(session, nil)
	ts.auth.EXPECT().GetUserDataAndRole(gomock.Any(), session).
		Return(models.UserWithRole{User: models.User{UserID: "u-2", Role: models.RoleStaff}, Role: models.RoleStaff}, nil)

	rr := ts.do(t, http.MethodPost, "/api/admin/users/u-9/disable", nil, withBearer("staff-token"))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, app.MsgForbidden, decodeActionResult(t, rr).Error)
}

func TestAdminRoutes_DisabledAdmin(t *testing.T) {
	ts := newTestServer(t)

	ts.auth.EXPECT().Authenticate(gomock.Any(), "admin-token").Return(adminSession, nil)
	ts.auth.EXPECT().GetUserDataAndRole(gomock.Any(), adminSession).
		Return(models.UserWithRole{}, &service.Error{Kind: service.ErrAccountDisabled, Message: app.MsgAccountDisabled})

	rr := ts.do(t, http.MethodGet, "/api/admin/users", nil, withBearer("admin-token"))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, app.MsgAccountDisabled, decodeActionResult(t, rr).Error)
}

// ── List users ───────────────────────────────────────────────────────────────

func TestListUsers_CachedUntilRevalidated(t *testing.T) {
	ts := newTestServer(t)
	want := models.PageRequest{Page: 2, PageSize: 10, Sort: models.SortByEmail, Order: models.OrderAsc}
	page := models.UserPage{Users: []models.User{{UserID: "u-1", Email: "a@x.com"}}, Total: 11, Page: 2, PageSize: 10, TotalPages: 2}

	ts.users.EXPECT().ListUsers(gomock.Any(), adminSession.Principal(), want).Return(page, nil).Times(2)

	path := "/api/admin/users?page=2&page_size=10&sort=email&order=ASC"
	for range 2 {
		rr := ts.do(t, http.MethodGet, path, nil, ts.asAdmin(adminSession))
		require.Equal(t, http.StatusOK, rr.Code)

		var got models.UserPage
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, page.Total, got.Total)
		assert.Equal(t, "a@x.com", got.Users[0].Email)
	}

	ts.views.Revalidate(context.Background(), service.AdminUsersPath)

	rr := ts.do(t, http.MethodGet, path, nil, ts.asAdmin(adminSession))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestListUsers_Failure(t *testing.T) {
	ts := newTestServer(t)
	ts.users.EXPECT().ListUsers(gomock.Any(), adminSession.Principal(), gomock.Any()).
		Return(models.UserPage{}, &service.Error{Kind: service.ErrDirectory, Message: app.MsgLoadUsersFailed, Err: errors.New("db down")})

	rr := ts.do(t, http.MethodGet, "/api/admin/users", nil, ts.asAdmin(adminSession))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, app.MsgLoadUsersFailed, decodeActionResult(t, rr).Error)
	assert.Zero(t, ts.views.Len())
}

func TestPageRequestFromQuery(t *testing.T) {
	req := pageRequestFromQuery(url.Values{"page": {"x"}, "page_size": {"500"}, "sort": {"password"}, "role": {"owner"}})

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, models.MaxPageSize, req.PageSize)
	assert.Equal(t, models.SortByCreatedAt, req.Sort)
	assert.Equal(t, models.OrderDesc, req.Order)
	assert.Empty(t, req.Role)
}

// ── Actions ──────────────────────────────────────────────────────────────────

func TestCreateUser(t *testing.T) {
	ts := newTestServer(t)
	form := models.CreateUserForm{Name: "Cara", Email: "c@x.com", Role: "staff"}

	ts.users.EXPECT().CreateUser(gomock.Any(), adminSession.Principal(), form).
		Return(models.User{UserID: "u-cara", Role: models.RoleStaff}, nil)

	rr := ts.do(t, http.MethodPost, "/api/admin/users", form, ts.asAdmin(adminSession))

	assert.Equal(t, http.StatusCreated, rr.Code)
	result := decodeActionResult(t, rr)
	assert.True(t, result.Success)
	assert.Equal(t, app.MsgUserCreated, result.Message)
}

func TestUserActions(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		expect     func(ts *testServer) *gomock.Call
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name: "disable", method: http.MethodPost, path: "/api/admin/users/u-1/disable",
			expect: func(ts *testServer) *gomock.Call {
				return ts.users.EXPECT().RestrictUserAccess(gomock.Any(), adminSession.Principal(), "u-1")
			},
			wantStatus: http.StatusOK, wantMsg: app.MsgUserAccessRestrict,
		},
		{
			name: "enable", method: http.MethodPost, path: "/api/admin/users/u-1/enable",
			expect: func(ts *testServer) *gomock.Call {
				return ts.users.EXPECT().EnableUserAccess(gomock.Any(), adminSession.Principal(), "u-1")
			},
			wantStatus: http.StatusOK, wantMsg: app.MsgUserAccessEnabled,
		},
		{
			name: "delete", method: http.MethodDelete, path: "/api/admin/users/u-1",
			expect: func(ts *testServer) *gomock.Call {
				return ts.users.EXPECT().DeleteUser(gomock.Any(), adminSession.Principal(), "u-1")
			},
			wantStatus: http.StatusOK, wantMsg: app.MsgUserDeleted,
		},
		{
			name: "delete unknown", method: http.MethodDelete, path: "/api/admin/users/ghost",
			expect: func(ts *testServer) *gomock.Call {
				return ts.users.EXPECT().DeleteUser(gomock.Any(), adminSession.Principal(), "ghost")
			},
			err:        &service.Error{Kind: service.ErrDirectory, Message: app.MsgUserNotFound, Err: store.ErrUserNotFound},
			wantStatus: http.StatusNotFound, wantMsg: app.MsgUserNotFound,
		},
		{
			name: "resolve", method: http.MethodPost, path: "/api/admin/reconciliation/e-1/resolve",
			expect: func(ts *testServer) *gomock.Call {
				return ts.users.EXPECT().ResolveReconciliation(gomock.Any(), adminSession.Principal(), "e-1")
			},
			wantStatus: http.StatusOK, wantMsg: app.MsgEventResolved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			tt.expect(ts).Return(tt.err)

			rr := ts.do(t, tt.method, tt.path, nil, ts.asAdmin(adminSession))

			assert.Equal(t, tt.wantStatus, rr.Code)
			result := decodeActionResult(t, rr)
			assert.Equal(t, tt.err == nil, result.Success)
			if tt.err == nil {
				assert.Equal(t, tt.wantMsg, result.Message)
			} else {
				assert.Equal(t, tt.wantMsg, result.Error)
			}
		})
	}
}

func TestListReconciliation(t *testing.T) {
	ts := newTestServer(t)
	ts.users.EXPECT().ListReconciliation(gomock.Any(), adminSession.Principal()).Return(nil, nil)

	rr := ts.do(t, http.MethodGet, "/api/admin/reconciliation", nil, ts.asAdmin(adminSession))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
