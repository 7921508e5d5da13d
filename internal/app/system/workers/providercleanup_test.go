package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type countingEvicter struct {
	calls atomic.Int32
	idle  atomic.Int64
}

func (e *countingEvicter) EvictIdle(idle time.Duration) int {
	e.calls.Add(1)
	e.idle.Store(int64(idle))
	return 1
}

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (s *countingSweeper) DeleteExpired(ctx context.Context) (int64, error) {
	s.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("sweep without deadline")
	}
	return 2, s.err
}

func TestProviderCleanup_Ticks(t *testing.T) {
	ev := &countingEvicter{}
	sw := &countingSweeper{}
	w := NewProviderCleanup(ev, sw, zap.NewNop(), 10*time.Millisecond, time.Minute)

	w.Start()
	deadline := time.Now().Add(2 * time.Second)
	for ev.calls.Load() < 2 || sw.calls.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("worker did not tick: evict=%d sweep=%d", ev.calls.Load(), sw.calls.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()
	w.Stop()

	if time.Duration(ev.idle.Load()) != time.Minute {
		t.Errorf("idle ttl: got %v", time.Duration(ev.idle.Load()))
	}

	after := ev.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if ev.calls.Load() != after {
		t.Error("worker kept running after Stop")
	}
}

func TestProviderCleanup_NoSweeper(t *testing.T) {
	ev := &countingEvicter{}
	w := NewProviderCleanup(ev, nil, zap.NewNop(), time.Hour, time.Minute)

	w.cleanup()
	if ev.calls.Load() != 1 {
		t.Errorf("evict calls: got %d", ev.calls.Load())
	}
}

func TestProviderCleanup_SweepError(t *testing.T) {
	ev := &countingEvicter{}
	sw := &countingSweeper{err: errors.New("mongo down")}
	w := NewProviderCleanup(ev, sw, zap.NewNop(), time.Hour, time.Minute)

	w.cleanup()
	if sw.calls.Load() != 1 || ev.calls.Load() != 1 {
		t.Errorf("calls: evict=%d sweep=%d", ev.calls.Load(), sw.calls.Load())
	}
}
