// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache keeps rendered list views so repeated admin page loads do
// not hit the directory. Entries expire after a TTL and are dropped early
// when a mutation revalidates their path.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/MKhiriev/erp-accounts/internal/logger"
)

const (
	DefaultSize = 256
	DefaultTTL  = 30 * time.Second
)

// ViewCache maps a view key (path plus canonical query) to its rendered
// body. It is safe for concurrent use.
type ViewCache struct {
	lru *expirable.LRU[string, []byte]
}

// NewViewCache returns a cache holding at most size views for ttl each.
// Non-positive arguments select the defaults.
func NewViewCache(size int, ttl time.Duration) *ViewCache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ViewCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (c *ViewCache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

func (c *ViewCache) Set(key string, body []byte) {
	c.lru.Add(key, body)
}

// Revalidate drops every view whose key starts with path.
func (c *ViewCache) Revalidate(ctx context.Context, path string) {
	dropped := 0
	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, path) && c.lru.Remove(key) {
			dropped++
		}
	}
	logger.FromContext(ctx).Debug().Str("path", path).Int("dropped", dropped).Msg("views revalidated")
}

// Len returns the number of cached views, expired ones included until
// they are purged.
func (c *ViewCache) Len() int {
	return c.lru.Len()
}
