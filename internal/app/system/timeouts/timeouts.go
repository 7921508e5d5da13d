// Package timeouts provides centralized timeout values.
//
// Ping and Short bound local I/O (Mongo health checks and session
// documents). Request and Bootstrap bound calls to the marketplace backend;
// they default to zero, which means no deadline beyond the caller's
// context. Retries is the number of extra attempts for an idempotent
// backend read.
//
// Values can be changed at startup with Configure or ConfigureFromEnv.
package timeouts

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default values (used if Configure is not called).
const (
	DefaultPing      = 2 * time.Second
	DefaultShort     = 5 * time.Second
	DefaultRequest   = 0
	DefaultBootstrap = 0
	DefaultRetries   = 0
)

var mu sync.RWMutex

var (
	ping      = DefaultPing
	short     = DefaultShort
	request   = time.Duration(DefaultRequest)
	bootstrap = time.Duration(DefaultBootstrap)
	retries   = DefaultRetries
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads and writes.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Request returns the per-request timeout for backend calls. 0 means none.
func Request() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return request
}

// Bootstrap returns the timeout for a whole bootstrap run. 0 means none.
func Bootstrap() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return bootstrap
}

// Retries returns how many times a failed backend read is retried.
func Retries() int {
	mu.RLock()
	defer mu.RUnlock()
	return retries
}

// Config holds timeout configuration values.
// Zero values are ignored for Ping and Short. Request, Bootstrap and
// Retries are applied as given, since zero is meaningful for them; use
// Keep to leave one unchanged.
type Config struct {
	Ping      time.Duration
	Short     time.Duration
	Request   time.Duration
	Bootstrap time.Duration
	Retries   int
}

// Keep marks a Request, Bootstrap or Retries value as "leave unchanged".
const Keep = -1

// Configure sets custom values. This should be called during application
// startup before any backend call is made.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Request >= 0 {
		request = cfg.Request
	}
	if cfg.Bootstrap >= 0 {
		bootstrap = cfg.Bootstrap
	}
	if cfg.Retries >= 0 {
		retries = cfg.Retries
	}
}

// Reset restores all values to their defaults.
// Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	request = DefaultRequest
	bootstrap = DefaultBootstrap
	retries = DefaultRetries
}

// ConfigureFromEnv reads configuration from environment variables.
// All are optional; unset or invalid values are ignored:
//   - TIMEOUT_PING, TIMEOUT_SHORT: e.g. "2s", "500ms" (must be > 0)
//   - TIMEOUT_REQUEST, TIMEOUT_BOOTSTRAP: e.g. "10s", "0" for none
//   - REQUEST_RETRIES: e.g. "2"
//
// Returns the number of values configured from the environment.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()
	configured := 0

	positive := func(key string, dst *time.Duration) {
		if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
			*dst = d
			configured++
		}
	}
	nonNegative := func(key string, dst *time.Duration) {
		if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d >= 0 {
			*dst = d
			configured++
		}
	}

	positive("TIMEOUT_PING", &ping)
	positive("TIMEOUT_SHORT", &short)
	nonNegative("TIMEOUT_REQUEST", &request)
	nonNegative("TIMEOUT_BOOTSTRAP", &bootstrap)
	if n, err := strconv.Atoi(os.Getenv("REQUEST_RETRIES")); err == nil && n >= 0 {
		retries = n
		configured++
	}

	return configured
}

// Current returns the current configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{
		Ping:      ping,
		Short:     short,
		Request:   request,
		Bootstrap: bootstrap,
		Retries:   retries,
	}
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the context was canceled due to deadline exceeded.
// A timeout of 0 or less adds no deadline.
//
// Example:
//
//	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Bootstrap(), logger, "bootstrap")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
