// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/erp-accounts/internal/app"
	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/internal/service"
	"github.com/MKhiriev/erp-accounts/internal/utils"
	"github.com/MKhiriev/erp-accounts/models"
)

// pageRequestFromQuery reads the users table query. Malformed numbers fall
// back to the defaults.
func pageRequestFromQuery(q url.Values) models.PageRequest {
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	return models.PageRequest{
		Page:     page,
		PageSize: pageSize,
		Sort:     models.SortField(q.Get("sort")),
		Order:    q.Get("order"),
		Search:   q.Get("search"),
		Role:     models.Role(q.Get("role")),
	}.Normalize()
}

// usersViewKey is the cache key of one users table page. It lives under
// service.AdminUsersPath so revalidating that path drops every page.
func usersViewKey(req models.PageRequest) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(req.Page))
	q.Set("page_size", strconv.Itoa(req.PageSize))
	q.Set("sort", string(req.Sort))
	q.Set("order", req.Order)
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.Role != "" {
		q.Set("role", string(req.Role))
	}
	return service.AdminUsersPath + "?" + q.Encode()
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	req := pageRequestFromQuery(r.URL.Query())
	key := usersViewKey(req)

	if h.views != nil {
		if body, ok := h.views.Get(key); ok {
			writeRawJSON(w, body)
			return
		}
	}

	page, err := h.services.UserAdminService.ListUsers(r.Context(), principalFromRequest(r), req)
	if err != nil {
		h.writeActionError(w, r, err)
		return
	}

	body, err := json.Marshal(page)
	if err != nil {
		h.writeActionError(w, r, err)
		return
	}
	if h.views != nil {
		h.views.Set(key, body)
	}
	writeRawJSON(w, body)
}

func writeRawJSON(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var form models.CreateUserForm
	if err := decodeBody(r, &form); err != nil {
		h.writeActionError(w, r, err)
		return
	}

	user, err := h.services.UserAdminService.CreateUser(r.Context(), principalFromRequest(r), form)
	if err != nil {
		h.writeActionError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("created_user_id", user.UserID).Send()
	writeActionOK(w, app.MsgUserCreated, http.StatusCreated)
}

func (h *Handler) disableUser(w http.ResponseWriter, r *http.Request) {
	if err := h.services.UserAdminService.RestrictUserAccess(r.Context(), principalFromRequest(r), chi.URLParam(r, "id")); err != nil {
		h.writeActionError(w, r, err)
		return
	}
	writeActionOK(w, app.MsgUserAccessRestrict, http.StatusOK)
}

func (h *Handler) enableUser(w http.ResponseWriter, r *http.Request) {
	if err := h.services.UserAdminService.EnableUserAccess(r.Context(), principalFromRequest(r), chi.URLParam(r, "id")); err != nil {
		h.writeActionError(w, r, err)
		return
	}
	writeActionOK(w, app.MsgUserAccessEnabled, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.services.UserAdminService.DeleteUser(r.Context(), principalFromRequest(r), chi.URLParam(r, "id")); err != nil {
		h.writeActionError(w, r, err)
		return
	}
	writeActionOK(w, app.MsgUserDeleted, http.StatusOK)
}

func (h *Handler) listReconciliation(w http.ResponseWriter, r *http.Request) {
	events, err := h.services.UserAdminService.ListReconciliation(r.Context(), principalFromRequest(r))
	if err != nil {
		h.writeActionError(w, r, err)
		return
	}
	if events == nil {
		events = []models.ReconciliationEvent{}
	}
	utils.WriteJSON(w, events, http.StatusOK)
}

func (h *Handler) resolveReconciliation(w http.ResponseWriter, r *http.Request) {
	if err := h.services.UserAdminService.ResolveReconciliation(r.Context(), principalFromRequest(r), chi.URLParam(r, "id")); err != nil {
		h.writeActionError(w, r, err)
		return
	}
	writeActionOK(w, app.MsgEventResolved, http.StatusOK)
}
