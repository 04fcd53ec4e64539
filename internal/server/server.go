// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/erp-accounts/internal/config"
	"github.com/MKhiriev/erp-accounts/internal/handler"
	"github.com/MKhiriev/erp-accounts/internal/logger"
)

type server struct {
	httpServer *httpServer
	runners    []Runner
	logger     *logger.Logger
}

// NewServer builds the HTTP server from handlers. runners are started with
// it and receive a context cancelled on shutdown.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger, runners ...Runner) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		runners:    runners,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Msg("server stopped with error")
		return
	}
	s.logger.Info().Msg("server shutdown gracefully")
}

func (s *server) Shutdown() {
	s.httpServer.shutdown()
}

// run serves until ctx is done or a component fails, then stops the HTTP
// server first and waits for the runners to drain.
func (s *server) run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(s.httpServer.run)
	for _, r := range s.runners {
		g.Go(func() error {
			return r.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.Shutdown()
		return nil
	})

	return g.Wait()
}
