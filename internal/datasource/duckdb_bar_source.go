package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

const barsView = "bars"

var _ BarSource = (*DuckDBBarSource)(nil)

// DuckDBBarSource reads bars from a DuckDB view over a parquet or CSV file.
type DuckDBBarSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType

	mu          sync.RWMutex
	initialized bool
}

// NewDuckDBBarSource opens a DuckDB database at dbPath (":memory:" for an in-memory
// database). Call Initialize to attach a bar file.
func NewDuckDBBarSource(dbPath string, log *logger.Logger) (*DuckDBBarSource, error) {
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &DuckDBBarSource{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements BarSource.
func (d *DuckDBBarSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB bar source", zap.String("path", path))

	reader, err := readerFor(path)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.db.Exec(`DROP VIEW IF EXISTS ` + barsView); err != nil {
		return errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to drop existing view", err)
	}

	// Squirrel has no CREATE VIEW support and DuckDB does not bind table function paths
	query := fmt.Sprintf(`CREATE VIEW %s AS SELECT * FROM %s('%s')`, barsView, reader, strings.ReplaceAll(path, "'", "''"))
	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to load bars from %s", path)
	}

	d.initialized = true

	return nil
}

// readerFor picks the DuckDB table function for a file extension.
func readerFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return "read_parquet", nil
	case ".csv":
		return "read_csv_auto", nil
	default:
		return "", errors.Newf(errors.ErrCodeDataSourceUnavailable, "unsupported bar file %s: expected .parquet or .csv", path)
	}
}

func (d *DuckDBBarSource) ready() error {
	if !d.initialized {
		return errors.New(errors.ErrCodeDataSourceUnavailable, "bar source is not initialized")
	}

	return nil
}

// ReadBars implements BarSource.
func (d *DuckDBBarSource) ReadBars(ctx context.Context, symbol string, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.Bar, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if err := d.ready(); err != nil {
		return nil, err
	}

	conditions := squirrel.And{squirrel.Eq{"symbol": symbol}}
	if start.IsSome() {
		conditions = append(conditions, squirrel.GtOrEq{"time": start.Unwrap()})
	}

	if end.IsSome() {
		conditions = append(conditions, squirrel.LtOrEq{"time": end.Unwrap()})
	}

	query, args, err := d.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From(barsView).
		Where(conditions).
		OrderBy("time ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query bars for %s", symbol)
	}
	defer rows.Close()

	result := make([]types.Bar, 0)

	for rows.Next() {
		var bar types.Bar
		if err := rows.Scan(&bar.Time, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
		}

		result = append(result, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate rows", err)
	}

	if len(result) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataNotFound, "no bars found for symbol %s", symbol)
	}

	d.logger.Debug("Read bars",
		zap.String("symbol", symbol),
		zap.Int("count", len(result)),
	)

	return result, nil
}

// Symbols implements BarSource.
func (d *DuckDBBarSource) Symbols(ctx context.Context) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if err := d.ready(); err != nil {
		return nil, err
	}

	query, args, err := d.sq.
		Select("DISTINCT symbol").
		From(barsView).
		OrderBy("symbol").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query symbols", err)
	}
	defer rows.Close()

	var symbols []string

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan symbol", err)
		}

		symbols = append(symbols, symbol)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate symbols", err)
	}

	return symbols, nil
}

// Count implements BarSource.
func (d *DuckDBBarSource) Count(ctx context.Context, symbol string) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if err := d.ready(); err != nil {
		return 0, err
	}

	query, args, err := d.sq.
		Select("COUNT(*)").
		From(barsView).
		Where(squirrel.Eq{"symbol": symbol}).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	var count int
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to count bars for %s", symbol)
	}

	return count, nil
}

// Close implements BarSource.
func (d *DuckDBBarSource) Close() error {
	if d.db != nil {
		return d.db.Close()
	}

	return nil
}
