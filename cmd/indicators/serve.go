package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-indicators/internal/datasource"
	"github.com/rxtech-lab/argo-indicators/internal/engine"
	"github.com/rxtech-lab/argo-indicators/internal/server"
	"github.com/rxtech-lab/argo-indicators/internal/session"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func serveCommand() *cli.Command {
	defaults := server.DefaultConfig()

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the indicator HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address",
				Value:   defaults.Addr,
				Sources: cli.EnvVars("ARGO_INDICATORS_ADDR"),
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Optional bar `FILE` (.csv or .parquet) backing /v1/bundle",
				Sources: cli.EnvVars("ARGO_INDICATORS_DATA"),
			},
			&cli.StringSliceFlag{
				Name:    "allowed-origins",
				Usage:   "CORS origins allowed to call the API, \"*\" for any",
				Value:   defaults.AllowedOrigins,
				Sources: cli.EnvVars("ALLOWED_ORIGINS"),
			},
			&cli.IntFlag{
				Name:  "max-sessions",
				Usage: "Number of stored sessions before the oldest is evicted",
				Value: session.DefaultMaxSessions,
			},
			&cli.DurationFlag{
				Name:  "shutdown-timeout",
				Usage: "Grace period for in-flight requests on shutdown",
				Value: defaults.ShutdownTimeout,
			},
		},
		Action: serveAction,
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	params, err := loadParams(cmd)
	if err != nil {
		return err
	}

	config := server.DefaultConfig()
	config.Addr = cmd.String("addr")
	config.AllowedOrigins = cmd.StringSlice("allowed-origins")
	config.MaxSessions = int(cmd.Int("max-sessions"))
	config.ShutdownTimeout = cmd.Duration("shutdown-timeout")
	config.Params = params

	var source datasource.BarSource

	if path := cmd.String("data"); path != "" {
		duck, err := datasource.NewDuckDBBarSource(":memory:", log)
		if err != nil {
			return err
		}
		defer duck.Close()

		if err := duck.Initialize(path); err != nil {
			return err
		}

		log.Info("Serving bars from file", zap.String("path", path))
		source = duck
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(config, engine.NewEngine(nil, log), source, log)

	return srv.ListenAndServe(ctx)
}
