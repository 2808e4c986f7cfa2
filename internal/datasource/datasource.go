// Package datasource loads OHLCV bars from parquet or CSV files through DuckDB.
package datasource

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// BarSource provides bars per symbol.
type BarSource interface {
	// Initialize exposes the bars stored in path (parquet or CSV, globs allowed). The
	// file needs the columns symbol, time, open, high, low, close and volume.
	Initialize(path string) error
	// ReadBars returns the bars of symbol in ascending time order, optionally bounded
	// by an inclusive start and end.
	ReadBars(ctx context.Context, symbol string, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.Bar, error)
	// Symbols returns every symbol in the source, sorted.
	Symbols(ctx context.Context) ([]string, error)
	// Count returns the number of bars stored for symbol.
	Count(ctx context.Context, symbol string) (int, error)
	// Close closes the data source and releases any resources
	Close() error
}
