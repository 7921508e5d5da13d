// Package shared holds helpers used by several features.
package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	errorsfeature "github.com/dalemusser/tutorhub/internal/app/features/errors"
	"github.com/dalemusser/tutorhub/internal/app/system/auth"
	"github.com/dalemusser/tutorhub/internal/app/system/limits"
	"github.com/dalemusser/tutorhub/internal/app/system/provider"
)

// MaxBody caps JSON request bodies.
const MaxBody = limits.MaxJSONBody

// Providers finds the provider of a device. *provider.Registry satisfies it.
type Providers interface {
	Get(deviceID string) (*provider.Provider, error)
}

// ProviderFor returns the provider of the request's device. On failure it
// has already answered and returns false.
func ProviderFor(w http.ResponseWriter, r *http.Request, reg Providers, errLog *errorsfeature.ErrorLogger) (*provider.Provider, bool) {
	id, ok := auth.DeviceID(r)
	if !ok {
		errLog.Internal(w, r, "device not identified", errors.New("no device id in context"))
		return nil, false
	}
	p, err := reg.Get(id)
	if errors.Is(err, provider.ErrClosed) {
		errorsfeature.Write(w, http.StatusServiceUnavailable, "shutting down")
		return nil, false
	}
	if err != nil {
		errLog.Internal(w, r, "could not open device state", err)
		return nil, false
	}
	return p, true
}

// DecodeJSON reads a single JSON value from the body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
