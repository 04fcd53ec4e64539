// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server is the lifecycle of the running application.
//
// RunServer blocks until a stop signal arrives or a component fails.
// Shutdown stops serving and lets in-flight requests finish.
type Server interface {
	RunServer()
	Shutdown()
}

// Runner is a background component started alongside the HTTP server,
// such as the notification workers.
type Runner interface {
	Run(ctx context.Context) error
}
