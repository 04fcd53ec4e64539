// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background workers of the server and holds the
// notification queue that decouples best-effort email and contact calls
// from the request that triggered them.
package workers

import (
	"context"

	"github.com/MKhiriev/erp-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/workers_mock.go -package=mock

// Worker is a background loop. Run blocks until ctx is cancelled or the
// worker fails.
type Worker interface {
	Run(ctx context.Context) error
}

// Notifier accepts best-effort notification tasks. Notify never blocks and
// never reports failure to the caller.
type Notifier interface {
	Notify(ctx context.Context, task models.NotificationTask)
}
