package main

import (
	"context"
	"fmt"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/datasource"
	"github.com/rxtech-lab/argo-indicators/internal/engine"
	"github.com/rxtech-lab/argo-indicators/internal/server"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func computeCommand() *cli.Command {
	return &cli.Command{
		Name:  "compute",
		Usage: "Compute indicators for symbols stored in a CSV or Parquet bar file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Path to the bar `FILE` (.csv or .parquet)",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:    "symbol",
				Aliases: []string{"s"},
				Usage:   "Symbol to compute; repeat for several. Every symbol in the file when omitted.",
			},
			&cli.StringFlag{
				Name:    "indicators",
				Aliases: []string{"i"},
				Usage:   "Comma separated indicator list (ema,sma,rsi,stochastic,macd,pivot). All when empty.",
			},
			&cli.TimestampFlag{
				Name:  "start",
				Usage: "First bar time in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.TimestampFlag{
				Name:  "end",
				Usage: "Last bar time in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output JSON `FILE`, \"-\" for stdout",
				Value:   "-",
			},
		},
		Action: computeAction,
	}
}

func computeAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	params, err := loadParams(cmd)
	if err != nil {
		return err
	}

	source, err := datasource.NewDuckDBBarSource(":memory:", log)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := source.Initialize(cmd.String("data")); err != nil {
		return err
	}

	symbols := cmd.StringSlice("symbol")
	if len(symbols) == 0 {
		symbols, err = source.Symbols(ctx)
		if err != nil {
			return err
		}
	}

	start := timestampOption(cmd, "start", false)
	end := timestampOption(cmd, "end", true)
	kinds := types.ParseIndicatorTypes(cmd.String("indicators"))
	eng := engine.NewEngine(nil, log)

	bar := progressbar.NewOptions(len(symbols),
		progressbar.OptionSetWriter(cmd.Root().ErrWriter),
		progressbar.OptionSetDescription("Computing indicators"),
		progressbar.OptionShowCount(),
	)

	out := make(map[string]server.BundleResponse, len(symbols))

	for _, symbol := range symbols {
		raw, err := source.ReadBars(ctx, symbol, start, end)
		if err != nil {
			return fmt.Errorf("symbol %s: %w", symbol, err)
		}

		series, result, err := eng.ComputeBars(ctx, raw, kinds, params)
		if err != nil {
			return fmt.Errorf("symbol %s: %w", symbol, err)
		}

		out[symbol] = server.NewBundleResponse(series, result, params.Precision, map[string]any{
			"source": "datasource",
			"symbol": symbol,
		})

		log.Debug("Computed symbol", zap.String("symbol", symbol), zap.Int("bars", series.Len()))
		_ = bar.Add(1)
	}

	_ = bar.Finish()

	return writeOutput(cmd, cmd.String("output"), out)
}

// timestampOption reads a date flag. The flag layouts carry no time of day, so with
// endOfDay set the date covers its whole day.
func timestampOption(cmd *cli.Command, name string, endOfDay bool) optional.Option[time.Time] {
	if !cmd.IsSet(name) {
		return optional.None[time.Time]()
	}

	t := cmd.Timestamp(name)
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return optional.Some(t)
}
