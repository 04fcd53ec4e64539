// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport of the erp-accounts server.
//
// It exposes the auth form endpoints, the OAuth redirects and the admin user
// management API. Tracing, access logging, request metrics, compression and
// session resolution are handled here before requests reach the service
// layer.
package http
