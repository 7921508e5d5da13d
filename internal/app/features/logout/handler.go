// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	errorsfeature "github.com/dalemusser/tutorhub/internal/app/features/errors"
	"github.com/dalemusser/tutorhub/internal/app/features/shared"
	"go.uber.org/zap"
)

type Handler struct {
	Providers shared.Providers
	ErrLog    *errorsfeature.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(providers shared.Providers, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Providers: providers,
		ErrLog:    errLog,
		Log:       logger,
	}
}

// ServeLogout handles POST /logout. The device cookie is kept; only the
// backend session is forgotten.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.ProviderFor(w, r, h.Providers, h.ErrLog)
	if !ok {
		return
	}
	if err := p.Logout(r.Context()); err != nil {
		// The state is already anonymous, but a token may survive in storage.
		h.ErrLog.Internal(w, r, "could not clear the saved session", err)
		return
	}
	errorsfeature.WriteJSON(w, http.StatusOK, p.Store().State())
}
