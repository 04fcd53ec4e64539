// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/erp-accounts/internal/app"
	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/internal/service"
	"github.com/MKhiriev/erp-accounts/internal/utils"
	"github.com/MKhiriev/erp-accounts/models"
)

func decodeBody(r *http.Request, v any) error {
	if err := utils.DecodeJSON(r, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

// messageFor returns the user-facing text of err.
func messageFor(err error) string {
	if errors.Is(err, ErrInvalidJSON) {
		return app.MsgInvalidDataProvided
	}
	return service.UserMessage(err)
}

func logFailure(r *http.Request, status int, err error) {
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
		return
	}
	log.Info().Err(err).Int("status", status).Msg("request rejected")
}

// writeFormError answers a form submission with {"error": "<message>"}.
func (h *Handler) writeFormError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	logFailure(r, status, err)
	utils.WriteJSON(w, models.FormError(messageFor(err)), status)
}

// writeActionError answers an admin action with {"success": false, "error": "<message>"}.
func (h *Handler) writeActionError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	logFailure(r, status, err)
	utils.WriteJSON(w, models.ActionResult{Error: messageFor(err)}, status)
}

func writeActionOK(w http.ResponseWriter, msg string, status int) {
	utils.WriteJSON(w, models.ActionResult{Success: true, Message: msg}, status)
}
