package provider

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Factory builds the provider for a device.
type Factory func(deviceID string) (*Provider, error)

// ErrClosed is returned by Get after Close.
var ErrClosed = errors.New("provider registry: closed")

// Registry maps device ids to mounted providers.
type Registry struct {
	build Factory
	log   *zap.Logger

	mu        sync.Mutex
	providers map[string]*Provider
	closed    bool
}

// NewRegistry returns an empty registry.
func NewRegistry(build Factory, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{build: build, log: logger, providers: map[string]*Provider{}}
}

// Get returns the device's provider, building and mounting it on first use.
func (r *Registry) Get(deviceID string) (*Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	if p, ok := r.providers[deviceID]; ok {
		p.Touch()
		return p, nil
	}
	p, err := r.build(deviceID)
	if err != nil {
		return nil, err
	}
	r.providers[deviceID] = p
	p.Mount()
	return p, nil
}

// Len is the number of live providers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.providers)
}

// Remove unmounts and forgets deviceID.
func (r *Registry) Remove(deviceID string) {
	r.mu.Lock()
	p, ok := r.providers[deviceID]
	delete(r.providers, deviceID)
	r.mu.Unlock()
	if ok {
		p.Unmount()
	}
}

// EvictIdle unmounts providers unused for longer than idle and returns how
// many were evicted. Their ephemeral sessions go with them.
func (r *Registry) EvictIdle(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	r.mu.Lock()
	var stale []*Provider
	for id, p := range r.providers {
		if p.LastUsed().Before(cutoff) {
			stale = append(stale, p)
			delete(r.providers, id)
		}
	}
	r.mu.Unlock()

	for _, p := range stale {
		p.Unmount()
	}
	if len(stale) > 0 {
		r.log.Debug("evicted idle providers", zap.Int("count", len(stale)))
	}
	return len(stale)
}

// Close unmounts every provider. Get fails afterwards.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	all := r.providers
	r.providers = map[string]*Provider{}
	r.mu.Unlock()

	for _, p := range all {
		p.Unmount()
	}
}
