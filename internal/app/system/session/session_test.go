package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/tutorhub/internal/app/system/session"
)

func newMemoryStore() (*session.Store, *session.MemoryScope, *session.MemoryScope) {
	durable, ephemeral := session.NewMemoryScope(), session.NewMemoryScope()
	return session.New(durable, ephemeral), durable, ephemeral
}

func TestLogin_RememberWritesDurableOnly(t *testing.T) {
	ctx := context.Background()
	st, durable, ephemeral := newMemoryStore()

	_ = ephemeral.Save(ctx, "stale")
	if err := st.Login(ctx, "tok-1", true); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if got, _ := durable.Load(ctx); got != "tok-1" {
		t.Errorf("durable: got %q", got)
	}
	if got, _ := ephemeral.Load(ctx); got != "" {
		t.Errorf("ephemeral should be cleared, got %q", got)
	}

	sess, ok, err := st.Current(ctx)
	if err != nil || !ok {
		t.Fatalf("Current: ok=%v err=%v", ok, err)
	}
	if sess.Token != "tok-1" || !sess.Durable {
		t.Errorf("Current: %+v", sess)
	}
}

func TestLogin_SessionOnlyWritesEphemeralOnly(t *testing.T) {
	ctx := context.Background()
	st, durable, ephemeral := newMemoryStore()

	_ = durable.Save(ctx, "stale")
	if err := st.Login(ctx, "tok-2", false); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if got, _ := durable.Load(ctx); got != "" {
		t.Errorf("durable should be cleared, got %q", got)
	}
	if got, _ := ephemeral.Load(ctx); got != "tok-2" {
		t.Errorf("ephemeral: got %q", got)
	}
	sess, ok, _ := st.Current(ctx)
	if !ok || sess.Durable || sess.Token != "tok-2" {
		t.Errorf("Current: %+v ok=%v", sess, ok)
	}
}

func TestCurrent_PrefersDurable(t *testing.T) {
	ctx := context.Background()
	st, durable, ephemeral := newMemoryStore()
	_ = durable.Save(ctx, "d")
	_ = ephemeral.Save(ctx, "e")

	sess, ok, _ := st.Current(ctx)
	if !ok || sess.Token != "d" {
		t.Errorf("got %+v, want durable token", sess)
	}
}

func TestCurrent_None(t *testing.T) {
	st, _, _ := newMemoryStore()
	if _, ok, err := st.Current(context.Background()); ok || err != nil {
		t.Errorf("ok=%v err=%v, want no session", ok, err)
	}
}

func TestLogout_ClearsBoth(t *testing.T) {
	ctx := context.Background()
	st, durable, ephemeral := newMemoryStore()
	_ = durable.Save(ctx, "d")
	_ = ephemeral.Save(ctx, "e")

	if err := st.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok, _ := st.Current(ctx); ok {
		t.Error("session still present after logout")
	}
}

func TestLogin_EmptyToken(t *testing.T) {
	st, _, _ := newMemoryStore()
	if err := st.Login(context.Background(), "", true); !errors.Is(err, session.ErrEmptyToken) {
		t.Errorf("got %v, want ErrEmptyToken", err)
	}
}

type failingScope struct{ session.MemoryScope }

func (failingScope) Clear(context.Context) error { return errors.New("disk full") }

func TestLogout_AttemptsBothScopes(t *testing.T) {
	ctx := context.Background()
	ephemeral := session.NewMemoryScope()
	_ = ephemeral.Save(ctx, "e")
	st := session.New(&failingScope{}, ephemeral)

	if err := st.Logout(ctx); err == nil {
		t.Error("expected error from failing durable scope")
	}
	if got, _ := ephemeral.Load(ctx); got != "" {
		t.Error("ephemeral scope not cleared after durable failure")
	}
}
