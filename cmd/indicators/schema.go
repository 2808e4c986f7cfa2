package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-indicators/internal/engine"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	schemaName       = "indicator-params.json"
	sampleParamsName = "indicator-params.yaml"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the params JSON schema, or write it with a sample params file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Write " + schemaName + " and " + sampleParamsName + " into `DIR` instead of printing",
			},
		},
		Action: schemaAction,
	}
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	params := engine.DefaultParams()

	schemaJSON, err := params.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	dir := cmd.String("dir")
	if dir == "" {
		_, err := fmt.Fprintln(cmd.Root().Writer, schemaJSON)

		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	schemaPath := filepath.Join(dir, schemaName)
	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	// an existing sample is never overwritten
	samplePath := filepath.Join(dir, sampleParamsName)
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		yamlBytes, err := yaml.Marshal(params)
		if err != nil {
			return fmt.Errorf("failed to marshal sample params: %w", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)
		if err := os.WriteFile(samplePath, yamlBytes, 0644); err != nil {
			return fmt.Errorf("failed to write sample params: %w", err)
		}

		fmt.Fprintf(cmd.Root().Writer, "Sample params generated at %s\n", samplePath)
	}

	fmt.Fprintf(cmd.Root().Writer, "Schema generated at %s\n", schemaPath)

	return nil
}
