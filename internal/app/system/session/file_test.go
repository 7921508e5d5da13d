package session_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dalemusser/tutorhub/internal/app/system/session"
)

const testSecret = "test-session-key-must-be-32-chars-long"

func TestNewCodec_ShortSecret(t *testing.T) {
	if _, err := session.NewCodec("short", 0); err == nil {
		t.Error("expected error for short secret")
	}
}

func TestFileScope_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	codec, err := session.NewCodec(testSecret, 0)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	fs := session.NewFileScope(dir, "device-1", codec)

	if got, err := fs.Load(ctx); err != nil || got != "" {
		t.Fatalf("empty Load: %q, %v", got, err)
	}
	if err := fs.Save(ctx, "secret-token"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "device-1.token"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if strings.Contains(string(raw), "secret-token") {
		t.Error("token stored in clear text")
	}

	got, err := fs.Load(ctx)
	if err != nil || got != "secret-token" {
		t.Fatalf("Load: %q, %v", got, err)
	}

	if err := fs.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := fs.Clear(ctx); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
	if got, _ := fs.Load(ctx); got != "" {
		t.Errorf("after Clear: %q", got)
	}
}

func TestFileScope_OtherSecretReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	a, _ := session.NewCodec(testSecret, 0)
	b, _ := session.NewCodec("another-session-key-that-is-32-chars!!", 0)

	if err := session.NewFileScope(dir, "d", a).Save(ctx, "tok"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := session.NewFileScope(dir, "d", b).Load(ctx)
	if err != nil || got != "" {
		t.Errorf("Load with other secret: %q, %v", got, err)
	}
}

func TestFileScope_AsDurableScope(t *testing.T) {
	ctx := context.Background()
	codec, _ := session.NewCodec(testSecret, 0)
	st := session.New(session.NewFileScope(t.TempDir(), "d", codec), session.NewMemoryScope())

	if err := st.Login(ctx, "tok", true); err != nil {
		t.Fatalf("Login: %v", err)
	}
	sess, ok, err := st.Current(ctx)
	if err != nil || !ok || !sess.Durable || sess.Token != "tok" {
		t.Errorf("Current: %+v ok=%v err=%v", sess, ok, err)
	}
}
