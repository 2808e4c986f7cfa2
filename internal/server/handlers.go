package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/engine"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/internal/version"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// computation is a validated, computed request ready to be rendered or stored.
type computation struct {
	series types.BarSeries
	result types.IndicatorResult
	kinds  []types.IndicatorType
	params engine.Params
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		OK:      true,
		AsOf:    time.Now().UTC().Format(time.RFC3339),
		Version: version.GetVersion(),
	})
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.config.Params.GenerateSchema())
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	comp, err := s.computeRequest(w, r)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, NewBundleResponse(comp.series, comp.result, comp.params.Precision, map[string]any{
		"source": "client",
	}))
}

// handleBundle computes indicators over bars read from the configured data source.
// Query: symbol (required), start and end (optional dates), indicators (comma list).
func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		s.writeError(w, errors.New(errors.ErrCodeDataSourceUnavailable, "no bar data source configured"))

		return
	}

	query := r.URL.Query()

	symbol := strings.TrimSpace(query.Get("symbol"))
	if symbol == "" {
		s.writeError(w, errors.New(errors.ErrCodeMissingParameter, "symbol is required"))

		return
	}

	start, err := optionalDate(query.Get("start"), "start", false)
	if err != nil {
		s.writeError(w, err)

		return
	}

	end, err := optionalDate(query.Get("end"), "end", true)
	if err != nil {
		s.writeError(w, err)

		return
	}

	kinds := types.ParseIndicatorTypes(query.Get("indicators"))

	// the stored total bounds any date range, so a symbol too short for the
	// requested warm-up is rejected without reading its bars
	stored, err := s.source.Count(r.Context(), symbol)
	if err != nil {
		s.writeError(w, err)

		return
	}

	if stored == 0 {
		s.writeError(w, errors.Newf(errors.ErrCodeDataNotFound, "no bars found for symbol %s", symbol))

		return
	}

	if err := s.engine.CheckHistory(kinds, s.config.Params, stored); err != nil {
		s.writeError(w, err)

		return
	}

	raw, err := s.source.ReadBars(r.Context(), symbol, start, end)
	if err != nil {
		s.writeError(w, err)

		return
	}

	comp, err := s.compute(r.Context(), raw, kinds, s.config.Params)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, NewBundleResponse(comp.series, comp.result, comp.params.Precision, map[string]any{
		"source": "datasource",
		"symbol": symbol,
	}))
}

func (s *Server) handleListSessions(w http.ResponseWriter, _ *http.Request) {
	ids := s.sessions.IDs()
	out := make([]SessionSummary, 0, len(ids))

	for _, id := range ids {
		sess, err := s.sessions.Get(id)
		if err != nil {
			// deleted since IDs was taken
			continue
		}

		out = append(out, newSessionSummary(sess))
	}

	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	comp, err := s.computeRequest(w, r)
	if err != nil {
		s.writeError(w, err)

		return
	}

	sess := s.sessions.Create(comp.series, comp.result, comp.kinds, comp.params)
	s.metrics.SetSessions(s.sessions.Len())

	resp := NewBundleResponse(comp.series, comp.result, comp.params.Precision, map[string]any{"source": "client"})
	resp.SessionID = sess.ID
	s.writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	resp := NewBundleResponse(sess.Series, sess.Result, sess.Params.Precision, map[string]any{"source": "session"})
	resp.SessionID = sess.ID
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReplaceSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	// fail fast before decoding a large body for a missing session
	if _, err := s.sessions.Get(id); err != nil {
		s.writeError(w, err)

		return
	}

	comp, err := s.computeRequest(w, r)
	if err != nil {
		s.writeError(w, err)

		return
	}

	sess, err := s.sessions.Replace(id, comp.series, comp.result, comp.kinds, comp.params)
	if err != nil {
		s.writeError(w, err)

		return
	}

	resp := NewBundleResponse(sess.Series, sess.Result, sess.Params.Precision, map[string]any{"source": "client"})
	resp.SessionID = sess.ID
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)

		return
	}

	s.metrics.SetSessions(s.sessions.Len())
	w.WriteHeader(http.StatusNoContent)
}

// computeRequest decodes a ComputeRequest body and runs it through the engine.
func (s *Server) computeRequest(w http.ResponseWriter, r *http.Request) (computation, error) {
	if s.config.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	}

	var req ComputeRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		return computation{}, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid request body", err)
	}

	if err := req.Validate(); err != nil {
		return computation{}, err
	}

	params, err := req.ResolveParams(s.config.Params)
	if err != nil {
		return computation{}, err
	}

	raw, err := req.Bars()
	if err != nil {
		return computation{}, err
	}

	return s.compute(r.Context(), raw, req.Kinds(), params)
}

func (s *Server) compute(ctx context.Context, raw []types.Bar, kinds []types.IndicatorType, params engine.Params) (computation, error) {
	start := time.Now()
	series, result, err := s.engine.ComputeBars(ctx, raw, kinds, params)
	s.metrics.ObserveCompute(len(raw), time.Since(start), err)

	if err != nil {
		return computation{}, err
	}

	resolved, err := engine.ResolveKinds(kinds)
	if err != nil {
		return computation{}, err
	}

	return computation{series: series, result: result, kinds: resolved, params: params}, nil
}

// optionalDate parses a query date. With endOfDay set, a date without a time of day
// covers that whole day.
func optionalDate(value, name string, endOfDay bool) (optional.Option[time.Time], error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return optional.None[time.Time](), nil
	}

	t, err := parseDate(value)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid %s date %q", name, value)
	}

	if endOfDay && isDateOnly(value) {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return optional.Some(t), nil
}
