// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/airpath/server"
)

const shutdownGrace = 15 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP routing service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			return a.runServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")

	return cmd
}

func (a *app) runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)

	air, err := buildOracle(a.cfg)
	if err != nil {
		return err
	}
	timeout, err := a.cfg.Server.RequestTimeoutDuration()
	if err != nil {
		return err
	}

	srv, err := server.New(buildRegistry(a.cfg, a.log), air,
		server.WithLogger(a.log),
		server.WithLimits(a.cfg.Limits),
		server.WithRefineOptions(refineOptions(a.cfg)...),
		server.WithSearchPad(a.cfg.Network.SearchPad),
		server.WithServiceAreaCheck(a.cfg.Server.CheckServiceArea),
		server.WithMaxConcurrent(int64(a.cfg.Server.MaxConcurrent)),
		server.WithRequestTimeout(timeout),
		server.WithCORSOrigins(a.cfg.Server.CORSOrigins...),
	)
	if err != nil {
		return err
	}

	return srv.ListenAndServe(ctx, a.cfg.Server.Addr, shutdownGrace)
}
