package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rxtech-lab/argo-indicators/internal/engine"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/version"
	"github.com/urfave/cli/v3"
)

// newApp defines the indicators CLI. Flags declared on the root are visible to every
// subcommand.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "indicators",
		Usage:   "Compute technical indicators over OHLCV bars",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("ARGO_INDICATORS_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "params",
				Aliases: []string{"p"},
				Usage:   "Path to an indicator params `YAML` file. Defaults are used when empty.",
				Sources: cli.EnvVars("ARGO_INDICATORS_PARAMS"),
			},
		},
		Commands: []*cli.Command{
			computeCommand(),
			serveCommand(),
			schemaCommand(),
			{
				Name:  "version",
				Usage: "Print the engine version",
				Action: func(_ context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintf(cmd.Root().Writer, "argo-indicators %s\n", version.GetVersion())

					return err
				},
			},
		},
	}
}

func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	log, err := logger.NewLoggerWithLevel(cmd.String("log-level"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

func loadParams(cmd *cli.Command) (engine.Params, error) {
	path := cmd.String("params")
	if path == "" {
		return engine.DefaultParams(), nil
	}

	return engine.LoadParams(path)
}

// writeOutput writes body as indented JSON to path, or to the command writer when path
// is empty or "-".
func writeOutput(cmd *cli.Command, path string, body any) error {
	var w io.Writer = cmd.Root().Writer

	if path != "" && path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		w = file
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(body)
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
