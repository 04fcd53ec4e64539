// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Notifications.WithLabelValues("send_email", StatusSent).Inc()
	m.Notifications.WithLabelValues("send_email", StatusSent).Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Notifications.WithLabelValues("send_email", StatusSent)))

	expected := `
# HELP erp_notifications_total Notification tasks by kind and status (enqueued, sent, failed, dropped).
# TYPE erp_notifications_total counter
erp_notifications_total{kind="send_email",status="sent"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "erp_notifications_total"))
}

func TestNew_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}

func TestNop_Independent(t *testing.T) {
	a, b := Nop(), Nop()
	a.Reconciliation.WithLabelValues("orphaned_identity").Inc()

	assert.Equal(t, 0.0, testutil.ToFloat64(b.Reconciliation.WithLabelValues("orphaned_identity")))
}
