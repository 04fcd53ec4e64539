// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/erp-accounts/internal/adapter"
	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/internal/metrics"
	"github.com/MKhiriev/erp-accounts/models"
)

// callTimeout bounds one mailer call made by the worker. Calls are detached
// from the request that queued them.
const callTimeout = 15 * time.Second

var errUnknownNotificationKind = errors.New("unknown notification kind")

// NotificationQueue is a bounded in-memory queue of notification tasks.
type NotificationQueue struct {
	tasks   chan models.NotificationTask
	metrics *metrics.Metrics
}

// NewNotificationQueue creates a queue holding at most size tasks.
func NewNotificationQueue(size int, m *metrics.Metrics) *NotificationQueue {
	if size < 1 {
		size = 1
	}
	return &NotificationQueue{
		tasks:   make(chan models.NotificationTask, size),
		metrics: m,
	}
}

// Notify enqueues task without blocking. A full queue drops the task.
func (q *NotificationQueue) Notify(ctx context.Context, task models.NotificationTask) {
	select {
	case q.tasks <- task:
		q.metrics.Notifications.WithLabelValues(string(task.Kind), metrics.StatusEnqueued).Inc()
	default:
		q.metrics.Notifications.WithLabelValues(string(task.Kind), metrics.StatusDropped).Inc()
		logger.FromContext(ctx).Warn().
			Str("kind", string(task.Kind)).
			Str("email", task.Email).
			Msg("notification queue is full, task dropped")
	}
}

// Len returns the number of queued tasks.
func (q *NotificationQueue) Len() int {
	return len(q.tasks)
}

// NotificationWorker drains a NotificationQueue into the mailer.
type NotificationWorker struct {
	queue       *NotificationQueue
	mailer      adapter.Mailer
	concurrency int
	metrics     *metrics.Metrics
	logger      *logger.Logger
}

// NewNotificationWorker creates a worker running concurrency goroutines.
func NewNotificationWorker(queue *NotificationQueue, mailer adapter.Mailer, concurrency int, m *metrics.Metrics, log *logger.Logger) *NotificationWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &NotificationWorker{
		queue:       queue,
		mailer:      mailer,
		concurrency: concurrency,
		metrics:     m,
		logger:      log,
	}
}

// Run processes tasks until ctx is cancelled, then handles the tasks still
// queued and returns. Mailer failures are logged and counted only.
func (w *NotificationWorker) Run(ctx context.Context) error {
	w.logger.Info().Int("concurrency", w.concurrency).Msg("notification worker started")

	g, gctx := errgroup.WithContext(ctx)
	for range w.concurrency {
		g.Go(func() error {
			w.loop(gctx)
			return nil
		})
	}
	_ = g.Wait()

	drained := w.drain()
	w.logger.Info().Int("drained", drained).Msg("notification worker stopped")
	return nil
}

func (w *NotificationWorker) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-w.queue.tasks:
			w.handle(task)
		}
	}
}

func (w *NotificationWorker) drain() int {
	n := 0
	for {
		select {
		case task := <-w.queue.tasks:
			w.handle(task)
			n++
		default:
			return n
		}
	}
}

func (w *NotificationWorker) handle(task models.NotificationTask) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	err := w.dispatch(ctx, task)
	if err != nil {
		w.metrics.Notifications.WithLabelValues(string(task.Kind), metrics.StatusFailed).Inc()
		w.logger.Err(err).
			Str("kind", string(task.Kind)).
			Str("email", task.Email).
			Msg("notification failed")
		return
	}

	w.metrics.Notifications.WithLabelValues(string(task.Kind), metrics.StatusSent).Inc()
	w.logger.Debug().
		Str("kind", string(task.Kind)).
		Str("email", task.Email).
		Msg("notification sent")
}

func (w *NotificationWorker) dispatch(ctx context.Context, task models.NotificationTask) error {
	switch task.Kind {
	case models.NotifyCreateContact:
		return w.mailer.CreateContact(ctx, task.Email, task.FirstName, task.LastName)
	case models.NotifyRemoveContact:
		return w.mailer.RemoveContact(ctx, task.Email)
	case models.NotifySendEmail:
		return w.mailer.SendEmail(ctx, task.Email, task.Subject, task.HTML)
	default:
		return fmt.Errorf("%w: %q", errUnknownNotificationKind, task.Kind)
	}
}
