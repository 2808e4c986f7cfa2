package server

import (
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/engine"
)

// Config holds the host service settings.
type Config struct {
	// Addr is the listen address, ":0" picks a free port
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// MaxBodyBytes bounds request bodies
	MaxBodyBytes int64
	// MaxSessions bounds the session store; the oldest session is evicted when full
	MaxSessions int
	// AllowedOrigins lists the CORS origins, "*" allows any
	AllowedOrigins []string
	// Params are used when a request does not carry its own
	Params engine.Params
}

// DefaultConfig returns the settings used by the serve command.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxBodyBytes:    32 << 20,
		MaxSessions:     256,
		AllowedOrigins:  []string{"*"},
		Params:          engine.DefaultParams(),
	}
}
