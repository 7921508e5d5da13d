package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDefaults(t *testing.T) {
	Reset()
	defer Reset()

	if Ping() != DefaultPing {
		t.Errorf("Ping: got %v, want %v", Ping(), DefaultPing)
	}
	if Short() != DefaultShort {
		t.Errorf("Short: got %v, want %v", Short(), DefaultShort)
	}
	if Request() != 0 || Bootstrap() != 0 {
		t.Errorf("backend timeouts should default to none, got %v / %v", Request(), Bootstrap())
	}
	if Retries() != 0 {
		t.Errorf("Retries: got %d, want 0", Retries())
	}
}

func TestConfigure(t *testing.T) {
	Reset()
	defer Reset()

	Configure(Config{Short: 7 * time.Second, Request: 3 * time.Second, Bootstrap: Keep, Retries: 2})

	if Ping() != DefaultPing {
		t.Errorf("zero Ping should keep default, got %v", Ping())
	}
	if Short() != 7*time.Second {
		t.Errorf("Short: got %v", Short())
	}
	if Request() != 3*time.Second {
		t.Errorf("Request: got %v", Request())
	}
	if Bootstrap() != 0 {
		t.Errorf("Bootstrap: got %v", Bootstrap())
	}
	if Retries() != 2 {
		t.Errorf("Retries: got %d", Retries())
	}

	// Zero turns the request timeout back off.
	Configure(Config{Request: 0, Bootstrap: Keep, Retries: Keep})
	if Request() != 0 {
		t.Errorf("Request after reset to 0: got %v", Request())
	}
	if Retries() != 2 {
		t.Errorf("Keep should leave Retries, got %d", Retries())
	}
}

func TestConfigureFromEnv(t *testing.T) {
	Reset()
	defer Reset()

	t.Setenv("TIMEOUT_PING", "1s")
	t.Setenv("TIMEOUT_SHORT", "-3s")
	t.Setenv("TIMEOUT_REQUEST", "4s")
	t.Setenv("TIMEOUT_BOOTSTRAP", "bogus")
	t.Setenv("REQUEST_RETRIES", "3")

	if n := ConfigureFromEnv(); n != 3 {
		t.Errorf("configured: got %d, want 3", n)
	}
	got := Current()
	want := Config{Ping: time.Second, Short: DefaultShort, Request: 4 * time.Second, Bootstrap: 0, Retries: 3}
	if got != want {
		t.Errorf("Current: got %+v, want %+v", got, want)
	}
}

func TestWithTimeout_Zero(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), 0, zap.NewNop(), "test")
	if _, ok := ctx.Deadline(); ok {
		t.Error("zero timeout should not set a deadline")
	}
	cancel()
	if ctx.Err() != context.Canceled {
		t.Errorf("cancel should cancel the context, got %v", ctx.Err())
	}
}

func TestWithTimeout_Deadline(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test")
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("expected a deadline")
	}
	<-ctx.Done()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("got %v, want DeadlineExceeded", ctx.Err())
	}
}
