// Package session keeps computed indicator results addressable by id for the host
// service. A Manager is owned by its server; there is no package-level state.
package session

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-indicators/internal/engine"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

// DefaultMaxSessions bounds a Manager created with a non-positive size.
const DefaultMaxSessions = 256

// Session is one stored computation. Series and Result are never mutated after the
// session is stored; Replace swaps in new values.
type Session struct {
	ID        string                `json:"id"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
	Kinds     []types.IndicatorType `json:"indicators"`
	Params    engine.Params         `json:"params"`
	Series    types.BarSeries       `json:"-"`
	Result    types.IndicatorResult `json:"-"`
}

// TeardownFunc is called once for every session that leaves the manager, whether it
// was deleted, replaced, evicted or closed.
type TeardownFunc func(s Session)

// Manager stores sessions up to a fixed size and evicts the oldest created session
// when full.
type Manager struct {
	maxSize  int
	sessions map[string]Session
	// order holds ids by creation time, oldest first
	order      []string
	log        *logger.Logger
	onTeardown TeardownFunc
	now        func() time.Time
	mu         sync.Mutex
}

// NewManager creates a manager holding at most maxSize sessions.
func NewManager(maxSize int, log *logger.Logger) *Manager {
	if maxSize <= 0 {
		maxSize = DefaultMaxSessions
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &Manager{
		maxSize:    maxSize,
		sessions:   make(map[string]Session),
		order:      make([]string, 0, maxSize),
		log:        log,
		onTeardown: nil,
		now:        time.Now,
	}
}

// OnTeardown registers fn to run for every session that leaves the manager. It
// replaces any previous function.
func (m *Manager) OnTeardown(fn TeardownFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onTeardown = fn
}

// Create stores a new session under a fresh id.
func (m *Manager) Create(series types.BarSeries, result types.IndicatorResult, kinds []types.IndicatorType, params engine.Params) Session {
	now := m.now()
	s := Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
		Kinds:     kinds,
		Params:    params,
		Series:    series,
		Result:    result,
	}

	var evicted []Session

	m.mu.Lock()
	for len(m.order) >= m.maxSize {
		oldest := m.order[0]
		m.order = m.order[1:]
		evicted = append(evicted, m.sessions[oldest])
		delete(m.sessions, oldest)
	}

	m.sessions[s.ID] = s
	m.order = append(m.order, s.ID)
	teardown := m.onTeardown
	m.mu.Unlock()

	for _, old := range evicted {
		m.log.Debug("Session evicted", zap.String("id", old.ID))
		runTeardown(teardown, old)
	}

	m.log.Debug("Session created", zap.String("id", s.ID), zap.Int("bars", series.Len()))

	return s
}

// Replace swaps the content of an existing session and tears the previous content down.
func (m *Manager) Replace(id string, series types.BarSeries, result types.IndicatorResult, kinds []types.IndicatorType, params engine.Params) (Session, error) {
	m.mu.Lock()

	old, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()

		return Session{}, notFound(id)
	}

	s := Session{
		ID:        id,
		CreatedAt: old.CreatedAt,
		UpdatedAt: m.now(),
		Kinds:     kinds,
		Params:    params,
		Series:    series,
		Result:    result,
	}
	m.sessions[id] = s
	teardown := m.onTeardown
	m.mu.Unlock()

	runTeardown(teardown, old)
	m.log.Debug("Session replaced", zap.String("id", id), zap.Int("bars", series.Len()))

	return s, nil
}

// Get returns the session stored under id.
func (m *Manager) Get(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, notFound(id)
	}

	return s, nil
}

// Delete removes the session stored under id and tears it down.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()

	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()

		return notFound(id)
	}

	delete(m.sessions, id)
	m.order = slices.DeleteFunc(m.order, func(v string) bool { return v == id })
	teardown := m.onTeardown
	m.mu.Unlock()

	runTeardown(teardown, s)
	m.log.Debug("Session deleted", zap.String("id", id))

	return nil
}

// Len returns the number of stored sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// IDs returns the stored session ids, oldest first.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.order)
}

// Close tears down every stored session.
func (m *Manager) Close() {
	m.mu.Lock()
	closed := make([]Session, 0, len(m.order))

	for _, id := range m.order {
		closed = append(closed, m.sessions[id])
	}

	m.sessions = make(map[string]Session)
	m.order = m.order[:0]
	teardown := m.onTeardown
	m.mu.Unlock()

	for _, s := range closed {
		runTeardown(teardown, s)
	}
}

func runTeardown(fn TeardownFunc, s Session) {
	if fn != nil {
		fn(s)
	}
}

func notFound(id string) error {
	return errors.Newf(errors.ErrCodeSessionNotFound, "session %s not found", id)
}
