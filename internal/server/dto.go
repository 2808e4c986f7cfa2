package server

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-indicators/internal/engine"
	"github.com/rxtech-lab/argo-indicators/internal/session"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// ComputeRequest carries bars either as columns (t in epoch milliseconds) or as
// ohlc rows, plus an optional indicator list and params override.
type ComputeRequest struct {
	T          []int64         `json:"t" validate:"required_without=OHLC"`
	O          []float64       `json:"o"`
	H          []float64       `json:"h"`
	L          []float64       `json:"l"`
	C          []float64       `json:"c"`
	V          []float64       `json:"v"`
	OHLC       []OHLCRow       `json:"ohlc" validate:"required_without=T,dive"`
	Indicators []string        `json:"indicators" validate:"omitempty,dive,required"`
	Params     json.RawMessage `json:"params"`
}

// OHLCRow is one bar of the row form. Date accepts RFC 3339, "2006-01-02 15:04:05"
// and "2006-01-02".
type OHLCRow struct {
	Date   string   `json:"Date" validate:"required"`
	Open   float64  `json:"Open"`
	High   float64  `json:"High"`
	Low    float64  `json:"Low"`
	Close  float64  `json:"Close"`
	Volume *float64 `json:"Volume"`
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

// Validate checks the request shape. Bar contents are checked by bars.Validate.
func (r *ComputeRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid compute request", err)
	}

	return nil
}

// Bars converts the request to raw bars in the order given.
func (r *ComputeRequest) Bars() ([]types.Bar, error) {
	if len(r.T) > 0 {
		return r.columnBars()
	}

	out := make([]types.Bar, len(r.OHLC))

	for i, row := range r.OHLC {
		t, err := parseDate(row.Date)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMalformedBar, err, "bar %d", i)
		}

		volume := 0.0
		if row.Volume != nil {
			volume = *row.Volume
		}

		out[i] = types.Bar{Time: t, Open: row.Open, High: row.High, Low: row.Low, Close: row.Close, Volume: volume}
	}

	return out, nil
}

func (r *ComputeRequest) columnBars() ([]types.Bar, error) {
	n := len(r.T)
	columns := []struct {
		name   string
		values []float64
	}{{"o", r.O}, {"h", r.H}, {"l", r.L}, {"c", r.C}}

	for _, column := range columns {
		if len(column.values) != n {
			return nil, errors.Newf(errors.ErrCodeMalformedBar, "column %s has %d values, expected %d", column.name, len(column.values), n)
		}
	}

	if r.V != nil && len(r.V) != n {
		return nil, errors.Newf(errors.ErrCodeMalformedBar, "column v has %d values, expected %d", len(r.V), n)
	}

	out := make([]types.Bar, n)
	for i := range out {
		out[i] = types.Bar{
			Time:  time.UnixMilli(r.T[i]).UTC(),
			Open:  r.O[i],
			High:  r.H[i],
			Low:   r.L[i],
			Close: r.C[i],
		}

		if r.V != nil {
			out[i].Volume = r.V[i]
		}
	}

	return out, nil
}

// Kinds returns the requested indicator kinds; empty means all.
func (r *ComputeRequest) Kinds() []types.IndicatorType {
	return types.ParseIndicatorTypes(strings.Join(r.Indicators, ","))
}

// ResolveParams decodes the params override on top of the defaults, or returns
// fallback when the request has none.
func (r *ComputeRequest) ResolveParams(fallback engine.Params) (engine.Params, error) {
	raw := strings.TrimSpace(string(r.Params))
	if raw == "" || raw == "null" {
		return fallback, nil
	}

	return engine.ParseParamsJSON(r.Params)
}

func isDateOnly(value string) bool {
	_, err := time.Parse(time.DateOnly, value)

	return err == nil
}

func parseDate(value string) (time.Time, error) {
	var lastErr error

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}

		lastErr = err
	}

	return time.Time{}, lastErr
}

// BundleResponse is the success body of every compute endpoint: the bars echoed as
// columns and the encoded indicators keyed by name.
type BundleResponse struct {
	OK         bool           `json:"ok"`
	SessionID  string         `json:"sessionId,omitempty"`
	Meta       map[string]any `json:"meta"`
	T          []int64        `json:"t"`
	O          []float64      `json:"o"`
	H          []float64      `json:"h"`
	L          []float64      `json:"l"`
	C          []float64      `json:"c"`
	V          []float64      `json:"v"`
	Indicators map[string]any `json:"indicators"`
}

// NewBundleResponse renders a computed series. meta gains the row count and the sorted
// indicator keys.
func NewBundleResponse(series types.BarSeries, result types.IndicatorResult, precision int, meta map[string]any) BundleResponse {
	n := series.Len()
	resp := BundleResponse{
		OK:         true,
		Meta:       meta,
		T:          make([]int64, n),
		O:          roundColumn(series.Opens(), precision),
		H:          roundColumn(series.Highs(), precision),
		L:          roundColumn(series.Lows(), precision),
		C:          roundColumn(series.Closes(), precision),
		V:          roundColumn(series.Volumes(), precision),
		Indicators: result.Encode(precision),
	}

	for i, bar := range series {
		resp.T[i] = bar.Time.UnixMilli()
	}

	meta["rows"] = n
	meta["indicators"] = result.Keys()

	return resp
}

func roundColumn(values []float64, precision int) []float64 {
	for i, v := range values {
		values[i], _ = types.RoundValue(v, precision)
	}

	return values
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	AsOf    string `json:"asof"`
	Version string `json:"version"`
}

// SessionSummary describes a stored session without its series.
type SessionSummary struct {
	ID         string                   `json:"id"`
	CreatedAt  time.Time                `json:"createdAt"`
	UpdatedAt  time.Time                `json:"updatedAt"`
	Rows       int                      `json:"rows"`
	Indicators []types.IndicatorType    `json:"indicators"`
	Series     map[string]SeriesSummary `json:"series"`
}

// SeriesSummary tells a client where a stored series starts and what its latest value
// is without fetching the full bundle. FirstDefined is -1 for an all-None series.
type SeriesSummary struct {
	FirstDefined int      `json:"firstDefined"`
	Defined      int      `json:"defined"`
	Last         *float64 `json:"last"`
}

func newSessionSummary(sess session.Session) SessionSummary {
	flat := sess.Result.Flatten()
	series := make(map[string]SeriesSummary, len(flat))

	for key, s := range flat {
		summary := SeriesSummary{FirstDefined: s.FirstDefined(), Defined: s.Defined(), Last: nil}
		if last := s.Last(); last.IsSome() {
			if v, ok := types.RoundValue(last.Unwrap(), sess.Params.Precision); ok {
				summary.Last = &v
			}
		}

		series[key] = summary
	}

	return SessionSummary{
		ID:         sess.ID,
		CreatedAt:  sess.CreatedAt,
		UpdatedAt:  sess.UpdatedAt,
		Rows:       sess.Series.Len(),
		Indicators: sess.Kinds,
		Series:     series,
	}
}
