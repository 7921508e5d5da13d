package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/tutorhub/internal/app/system/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestDeviceManager(t *testing.T) *auth.DeviceManager {
	t.Helper()
	dm, err := auth.NewDeviceManager(
		"test-session-key-must-be-32-chars-long",
		"test-device",
		"",
		24*time.Hour,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create device manager: %v", err)
	}
	return dm
}

func echoDevice(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.DeviceID(r)
		if !ok {
			http.Error(w, "no device", http.StatusInternalServerError)
			return
		}
		*got = id
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewDeviceManager_RejectsEmptyKey(t *testing.T) {
	if _, err := auth.NewDeviceManager("", "x", "", time.Hour, false, zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
	if _, err := auth.NewDeviceManager("test-session-key-must-be-32-chars-long", "", "", time.Hour, false, zap.NewNop()); err == nil {
		t.Error("expected error for empty cookie name")
	}
}

func TestLoadDevice_IssuesCookie(t *testing.T) {
	dm := newTestDeviceManager(t)
	var id string
	handler := dm.LoadDevice(echoDevice(&id))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/state", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("device id %q is not a uuid", id)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "test-device" {
		t.Fatalf("expected one test-device cookie, got %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("device cookie should be HttpOnly")
	}
	if cookies[0].SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite=Lax for insecure cookie, got %v", cookies[0].SameSite)
	}
}

func TestLoadDevice_StableAcrossRequests(t *testing.T) {
	dm := newTestDeviceManager(t)
	var first, second string

	rec := httptest.NewRecorder()
	dm.LoadDevice(echoDevice(&first)).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	dm.LoadDevice(echoDevice(&second)).ServeHTTP(rec, req)

	if first == "" || first != second {
		t.Errorf("device id changed: %q -> %q", first, second)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("known device should not be issued a new cookie")
	}
}

func TestLoadDevice_TamperedCookie(t *testing.T) {
	dm := newTestDeviceManager(t)
	var id string

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "test-device", Value: "forged"})
	rec := httptest.NewRecorder()
	dm.LoadDevice(echoDevice(&id)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected fresh device id, got %q", id)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Error("expected a replacement cookie")
	}
}

func TestLoadDevice_ForeignKey(t *testing.T) {
	dm := newTestDeviceManager(t)
	other, _ := auth.NewDeviceManager("another-secret-that-is-32-chars-long!!", "test-device", "", time.Hour, false, zap.NewNop())

	var original, seen string
	rec := httptest.NewRecorder()
	other.LoadDevice(echoDevice(&original)).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	rec = httptest.NewRecorder()
	dm.LoadDevice(echoDevice(&seen)).ServeHTTP(rec, req)

	if seen == original {
		t.Error("a cookie signed with another key must not be trusted")
	}
}

func TestDeviceID_Absent(t *testing.T) {
	if _, ok := auth.DeviceID(httptest.NewRequest("GET", "/", nil)); ok {
		t.Error("expected no device id without LoadDevice")
	}
	r := auth.WithDeviceID(httptest.NewRequest("GET", "/", nil), "dev-1")
	if id, ok := auth.DeviceID(r); !ok || id != "dev-1" {
		t.Errorf("WithDeviceID: got %q, %v", id, ok)
	}
}
