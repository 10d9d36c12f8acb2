// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/katalvlaran/airpath/config"
)

// app carries state shared by every subcommand after PersistentPreRunE.
type app struct {
	configPath string
	envFiles   []string
	logLevel   string
	logFormat  string
	trace      bool

	cfg      *config.Config
	log      *slog.Logger
	shutdown func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "airpath",
		Short:         "Pollution-aware walking and cycling route planner",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if a.shutdown == nil {
				return nil
			}
			return a.shutdown(context.Background())
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&a.configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")
	f.StringSliceVar(&a.envFiles, "env-file", []string{".env"}, "dotenv files loaded before the config")
	f.StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	f.StringVar(&a.logFormat, "log-format", "", "override log.format (text, json)")
	f.BoolVar(&a.trace, "trace", false, "print OpenTelemetry spans to stderr")

	root.AddCommand(newPlanCmd(a), newServeCmd(a))

	return root
}

func (a *app) init(ctx context.Context) error {
	if err := config.LoadEnvFiles(a.envFiles...); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	lvl, _ := cfg.Log.SlogLevel()
	hopts := &slog.HandlerOptions{Level: lvl}
	if cfg.Log.Format == "json" {
		a.log = slog.New(slog.NewJSONHandler(os.Stderr, hopts))
	} else {
		a.log = slog.New(slog.NewTextHandler(os.Stderr, hopts))
	}
	slog.SetDefault(a.log)

	if a.trace {
		a.shutdown, err = initTracing(ctx)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
	}

	return nil
}

// initTracing installs a global tracer provider exporting to stderr.
func initTracing(_ context.Context) (func(context.Context) error, error) {
	exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint(), stdouttrace.WithWriter(os.Stderr))
	if err != nil {
		return nil, err
	}
	res := resource.NewWithAttributes("", attribute.String("service.name", "airpath"))
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
