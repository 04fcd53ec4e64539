// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewCache_SetGet(t *testing.T) {
	c := NewViewCache(0, 0)

	_, ok := c.Get("/admin/users?page=1")
	assert.False(t, ok)

	c.Set("/admin/users?page=1", []byte(`{"users":[]}`))
	body, ok := c.Get("/admin/users?page=1")
	require.True(t, ok)
	assert.JSONEq(t, `{"users":[]}`, string(body))
}

func TestViewCache_RevalidateByPrefix(t *testing.T) {
	c := NewViewCache(10, time.Minute)
	c.Set("/admin/users?page=1", []byte("a"))
	c.Set("/admin/users?page=2", []byte("b"))
	c.Set("/admin/reconciliation", []byte("c"))

	c.Revalidate(context.Background(), "/admin/users")

	_, ok := c.Get("/admin/users?page=1")
	assert.False(t, ok)
	_, ok = c.Get("/admin/users?page=2")
	assert.False(t, ok)
	_, ok = c.Get("/admin/reconciliation")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestViewCache_Expires(t *testing.T) {
	c := NewViewCache(10, 20*time.Millisecond)
	c.Set("/admin/users", []byte("a"))

	assert.Eventually(t, func() bool {
		_, ok := c.Get("/admin/users")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestViewCache_EvictsOldest(t *testing.T) {
	c := NewViewCache(2, time.Minute)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("c", []byte("3"))

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}
