package provider_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/tutorhub/internal/app/system/provider"
	"github.com/dalemusser/tutorhub/internal/app/system/session"
	"go.uber.org/zap"
)

func newRegistry(t *testing.T) (*provider.Registry, *int) {
	t.Helper()
	f := newFixture(t)
	built := 0
	r := provider.NewRegistry(func(deviceID string) (*provider.Provider, error) {
		built++
		return provider.New(provider.Deps{
			Backend:  f.client,
			Sessions: session.New(session.NewMemoryScope(), session.NewMemoryScope()),
			Logger:   zap.NewNop(),
		}), nil
	}, zap.NewNop())
	t.Cleanup(r.Close)
	return r, &built
}

func TestRegistry_GetReuses(t *testing.T) {
	r, built := newRegistry(t)

	a, err := r.Get("dev-a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	again, _ := r.Get("dev-a")
	b, _ := r.Get("dev-b")

	if a != again {
		t.Error("same device should get the same provider")
	}
	if a == b {
		t.Error("different devices must not share a provider")
	}
	if *built != 2 || r.Len() != 2 {
		t.Errorf("built=%d len=%d, want 2/2", *built, r.Len())
	}
}

func TestRegistry_FactoryError(t *testing.T) {
	boom := errors.New("boom")
	r := provider.NewRegistry(func(string) (*provider.Provider, error) { return nil, boom }, nil)

	if _, err := r.Get("dev"); !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	if r.Len() != 0 {
		t.Error("failed build must not be registered")
	}
}

func TestRegistry_EvictIdle(t *testing.T) {
	r, _ := newRegistry(t)
	old, _ := r.Get("old")
	time.Sleep(30 * time.Millisecond)
	fresh, _ := r.Get("fresh")

	if n := r.EvictIdle(20 * time.Millisecond); n != 1 {
		t.Fatalf("evicted: got %d, want 1", n)
	}
	if r.Len() != 1 {
		t.Errorf("len: got %d, want 1", r.Len())
	}
	again, _ := r.Get("fresh")
	if again != fresh {
		t.Error("fresh provider should survive")
	}
	rebuilt, _ := r.Get("old")
	if rebuilt == old {
		t.Error("evicted device should get a new provider")
	}
}

func TestRegistry_RemoveAndClose(t *testing.T) {
	r, _ := newRegistry(t)
	_, _ = r.Get("a")
	_, _ = r.Get("b")

	r.Remove("a")
	r.Remove("missing")
	if r.Len() != 1 {
		t.Errorf("len after Remove: got %d", r.Len())
	}

	r.Close()
	if r.Len() != 0 {
		t.Errorf("len after Close: got %d", r.Len())
	}
	if _, err := r.Get("c"); !errors.Is(err, provider.ErrClosed) {
		t.Errorf("Get after Close: got %v", err)
	}
}
