package testutil

import (
	"net/http"
	"sync"
	"testing"

	"github.com/dalemusser/tutorhub/internal/app/system/apiclient"
	"github.com/dalemusser/tutorhub/internal/app/system/auth"
	"github.com/dalemusser/tutorhub/internal/app/system/provider"
	"github.com/dalemusser/tutorhub/internal/app/system/session"
	"go.uber.org/zap"
)

// Devices is a provider registry wired to a fake backend, with in-memory
// session scopes per device.
type Devices struct {
	*provider.Registry
	Backend *Backend

	mu      sync.Mutex
	durable map[string]*session.MemoryScope
}

// NewDevices starts a fake backend and a registry over it. Both are torn
// down when t ends.
func NewDevices(t *testing.T) *Devices {
	t.Helper()
	b := NewBackend(t)
	client, err := apiclient.New(b.URL(), apiclient.Options{Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}

	d := &Devices{Backend: b, durable: map[string]*session.MemoryScope{}}
	d.Registry = provider.NewRegistry(func(deviceID string) (*provider.Provider, error) {
		return provider.New(provider.Deps{
			Backend:  client,
			Sessions: session.New(d.Durable(deviceID), session.NewMemoryScope()),
			Logger:   zap.NewNop(),
		}), nil
	}, zap.NewNop())
	t.Cleanup(d.Registry.Close)
	return d
}

// Durable is the durable scope of deviceID. It outlives the device's
// provider, as a remembered session would.
func (d *Devices) Durable(deviceID string) *session.MemoryScope {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.durable[deviceID]
	if !ok {
		s = session.NewMemoryScope()
		d.durable[deviceID] = s
	}
	return s
}

// AsDevice tags r as coming from deviceID.
func AsDevice(r *http.Request, deviceID string) *http.Request {
	return auth.WithDeviceID(r, deviceID)
}
