// internal/app/features/login/handler.go
package login

import (
	"errors"
	"net/http"

	errorsfeature "github.com/dalemusser/tutorhub/internal/app/features/errors"
	"github.com/dalemusser/tutorhub/internal/app/features/shared"
	"github.com/dalemusser/tutorhub/internal/app/system/apiclient"
	"github.com/dalemusser/tutorhub/internal/app/system/provider"
	"github.com/dalemusser/tutorhub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// User-facing messages. Backend details never reach the client.
const (
	msgInvalidCredentials = "Invalid email or password."
	msgUnavailable        = "Sign-in is unavailable right now. Please try again."
)

type Handler struct {
	Providers shared.Providers
	ErrLog    *errorsfeature.ErrorLogger
	Log       *zap.Logger

	// Limiter throttles attempts when set.
	Limiter *ratelimit.LoginLimiter
}

func NewHandler(providers shared.Providers, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Providers: providers,
		ErrLog:    errLog,
		Log:       logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// HandleLoginPost handles POST /login.
//
// On success it waits for the bootstrap that follows sign-in, so the
// returned snapshot is already hydrated. Status codes:
//   - 400: missing email or password, or a body that is not JSON
//   - 401: the backend rejected the credentials
//   - 429: too many attempts from this address or for this account
//   - 502: the backend failed or answered something unusable
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := shared.DecodeJSON(r, &in); err != nil {
		errorsfeature.Write(w, http.StatusBadRequest, "Request body must be JSON.")
		return
	}

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, in.Email); !ok {
			h.Log.Warn("login throttled",
				zap.String("email", in.Email),
				zap.String("ip", ratelimit.ClientIP(r)))
			errorsfeature.Write(w, http.StatusTooManyRequests, reason)
			return
		}
	}

	p, ok := shared.ProviderFor(w, r, h.Providers, h.ErrLog)
	if !ok {
		return
	}

	err := p.Login(r.Context(), in.Email, in.Password, in.Remember)
	switch {
	case err == nil:
	case errors.Is(err, provider.ErrValidation):
		errorsfeature.Write(w, http.StatusBadRequest, "Email and password are required.")
		return
	case errors.Is(err, apiclient.ErrInvalidCredentials):
		h.Log.Info("login rejected", zap.String("email", in.Email))
		errorsfeature.Write(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	case errors.Is(err, provider.ErrUnmounted):
		errorsfeature.Write(w, http.StatusServiceUnavailable, msgUnavailable)
		return
	case errors.Is(err, apiclient.ErrTransport),
		errors.Is(err, apiclient.ErrMalformed),
		errors.Is(err, apiclient.ErrUnauthorized):
		h.ErrLog.Status(w, r, http.StatusBadGateway, msgUnavailable, err)
		return
	default:
		h.ErrLog.Internal(w, r, msgUnavailable, err)
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetEmail(in.Email)
	}

	if err := p.Wait(r.Context()); err != nil {
		// The client went away; the bootstrap carries on regardless.
		return
	}
	errorsfeature.WriteJSON(w, http.StatusOK, p.Store().State())
}
