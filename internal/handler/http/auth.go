// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/internal/service"
	"github.com/MKhiriev/erp-accounts/internal/utils"
	"github.com/MKhiriev/erp-accounts/models"
)

// homePath is where a successful OAuth login lands.
const homePath = "/"

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var form models.SignupForm
	if err := decodeBody(r, &form); err != nil {
		h.writeFormError(w, r, err)
		return
	}

	if err := h.services.AuthService.Signup(r.Context(), form); err != nil {
		h.writeFormError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.FormOK(), http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var form models.LoginForm
	if err := decodeBody(r, &form); err != nil {
		h.writeFormError(w, r, err)
		return
	}

	session, err := h.services.AuthService.Login(r.Context(), form)
	if err != nil {
		h.writeFormError(w, r, err)
		return
	}

	h.setSessionCookies(w, session)
	w.Header().Set("Authorization", "Bearer "+session.AccessToken)
	utils.WriteJSON(w, models.FormOK(), http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var form models.ResetPasswordForm
	if err := decodeBody(r, &form); err != nil {
		h.writeFormError(w, r, err)
		return
	}

	if err := h.services.AuthService.ResetPassword(r.Context(), form); err != nil {
		h.writeFormError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.FormOK(), http.StatusOK)
}

// logout clears the cookies even when the provider call fails, so the
// browser never keeps a session it was told is gone.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	session, _ := utils.GetSessionFromContext(r.Context())
	err := h.services.AuthService.Logout(r.Context(), session)
	h.clearSessionCookies(w)

	if err != nil {
		h.writeFormError(w, r, err)
		return
	}
	utils.WriteJSON(w, models.FormOK(), http.StatusOK)
}

func (h *Handler) googleLogin(w http.ResponseWriter, r *http.Request) {
	session, _ := utils.GetSessionFromContext(r.Context())

	redirect, err := h.services.AuthService.GoogleLogin(r.Context(), session)
	if err != nil {
		logFailure(r, statusFromError(err), err)
		http.Redirect(w, r, service.LoginRedirectFor(err).Location, http.StatusSeeOther)
		return
	}

	if redirect.CodeVerifier != "" {
		h.setVerifierCookie(w, redirect.CodeVerifier)
	} else {
		h.clearSessionCookies(w)
	}
	http.Redirect(w, r, redirect.Location, http.StatusSeeOther)
}

func (h *Handler) oauthCallback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if providerErr := r.URL.Query().Get("error"); providerErr != "" {
		log.Info().Str("error", providerErr).Str("description", r.URL.Query().Get("error_description")).Msg("provider refused oauth login")
	}

	verifier := h.popVerifierCookie(w, r)
	session, err := h.services.AuthService.OAuthCallback(r.Context(), r.URL.Query().Get("code"), verifier)
	if err != nil {
		logFailure(r, statusFromError(err), err)
		h.clearSessionCookies(w)
		http.Redirect(w, r, service.LoginRedirectFor(err).Location, http.StatusSeeOther)
		return
	}

	h.setSessionCookies(w, session)
	http.Redirect(w, r, homePath, http.StatusSeeOther)
}

// currentUser returns the caller with their role. Browser requests that
// fail are redirected to the login page; API clients sending a bearer token
// get the error as JSON.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	session, _ := utils.GetSessionFromContext(r.Context())

	me, err := h.services.AuthService.GetUserDataAndRole(r.Context(), session)
	if err != nil {
		if r.Header.Get("Authorization") != "" {
			h.writeActionError(w, r, err)
			return
		}
		logFailure(r, statusFromError(err), err)
		http.Redirect(w, r, service.LoginRedirectFor(err).Location, http.StatusSeeOther)
		return
	}

	utils.WriteJSON(w, me, http.StatusOK)
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.VersionResponse{Version: h.services.AppInfoService.GetAppVersion(r.Context())}, http.StatusOK)
}
