// Package auth identifies the browser device behind a request.
//
// Each device carries a signed cookie holding a random device id. The id
// keys the device's state provider and its durable session; it is not a
// credential for the marketplace backend, which only ever sees the
// session token.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const deviceIDKey = "device_id"

type ctxKey string

const deviceKey ctxKey = "deviceID"

// DeviceManager issues and reads device cookies.
type DeviceManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewDeviceManager builds a manager whose cookies are signed with
// sessionKey and live for maxAge.
//
// In production (secure=true), cookies are Secure + SameSite=None so the UI
// may be served from another origin over HTTPS. In local dev over
// http://localhost, use secure=false so cookies are accepted.
func NewDeviceManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*DeviceManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		return nil, fmt.Errorf("session cookie name is empty")
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts
	store.MaxAge(opts.MaxAge)

	logger.Info("device cookie store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &DeviceManager{store: store, name: name, log: logger}, nil
}

// LoadDevice puts the request's device id into its context, issuing a new
// id (and cookie) to devices that have none or whose cookie no longer
// verifies.
func (m *DeviceManager) LoadDevice(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A cookie that fails verification still yields a fresh session.
		sess, _ := m.store.Get(r, m.name)

		id, _ := sess.Values[deviceIDKey].(string)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			sess.Values[deviceIDKey] = id
			if err := sess.Save(r, w); err != nil {
				m.log.Error("issue device cookie", zap.Error(err))
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), deviceKey, id)))
	})
}

// DeviceID returns the id set by LoadDevice.
func DeviceID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(deviceKey).(string)
	return id, ok && id != ""
}

// WithDeviceID returns a copy of r carrying id, as LoadDevice would.
func WithDeviceID(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), deviceKey, id))
}
