// internal/app/features/state/handler.go
package state

import (
	"errors"
	"io"
	"net/http"
	"strings"

	errorsfeature "github.com/dalemusser/tutorhub/internal/app/features/errors"
	"github.com/dalemusser/tutorhub/internal/app/features/shared"
	appstate "github.com/dalemusser/tutorhub/internal/app/state"
	"github.com/dalemusser/tutorhub/internal/domain/models"
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

// ServeState handles GET /state: the device's current snapshot.
func (h *Handler) ServeState(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.ProviderFor(w, r, h.Providers, h.ErrLog)
	if !ok {
		return
	}
	errorsfeature.WriteJSON(w, http.StatusOK, p.Store().State())
}

// HandleAction handles POST /state/actions.
//
// The body is one {"type": ..., "payload": ...} envelope. An unrecognized
// type is accepted and changes nothing; a recognized type whose payload
// does not fit is a 400. The response is the snapshot after the dispatch.
func (h *Handler) HandleAction(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, shared.MaxBody))
	if err != nil {
		errorsfeature.Write(w, http.StatusBadRequest, "could not read request body")
		return
	}
	a, err := appstate.DecodeAction(body)
	if err != nil {
		errorsfeature.Write(w, http.StatusBadRequest, err.Error())
		return
	}

	p, ok := shared.ProviderFor(w, r, h.Providers, h.ErrLog)
	if !ok {
		return
	}

	if !appstate.Known(a.Type()) {
		h.Log.Debug("ignoring unknown action", zap.String("type", a.Type()))
	}
	next := p.Store().Dispatch(sanitize(a))
	errorsfeature.WriteJSON(w, http.StatusOK, next)
}

// ServeTutors handles GET /state/tutors: the listing filtered by the
// current search filters.
func (h *Handler) ServeTutors(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.ProviderFor(w, r, h.Providers, h.ErrLog)
	if !ok {
		return
	}
	errorsfeature.WriteJSON(w, http.StatusOK, appstate.VisibleTutors(p.Store().State()))
}

type costResponse struct {
	TutorID       models.ID `json:"tutorId"`
	HourlyRate    float64   `json:"hourlyRate"`
	DaysPerWeek   int       `json:"daysPerWeek"`
	HoursPerDay   int       `json:"hoursPerDay"`
	WeeksPerMonth int       `json:"weeksPerMonth"`
	TotalCost     float64   `json:"totalCost"`
}

var errNoTutor = errors.New("tutor query parameter is required")

// ServeBookingCost handles GET /state/booking/cost?tutor=<id>: the price
// of the in-progress booking form at that tutor's rate.
func (h *Handler) ServeBookingCost(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("tutor"))
	if id == "" {
		errorsfeature.Write(w, http.StatusBadRequest, errNoTutor.Error())
		return
	}

	p, ok := shared.ProviderFor(w, r, h.Providers, h.ErrLog)
	if !ok {
		return
	}
	s := p.Store().State()
	t, found := appstate.FindTutor(s, models.ID(id))
	if !found {
		errorsfeature.Write(w, http.StatusNotFound, "tutor not found")
		return
	}

	b := s.BookingData
	errorsfeature.WriteJSON(w, http.StatusOK, costResponse{
		TutorID:       t.ID,
		HourlyRate:    t.HourlyRate,
		DaysPerWeek:   b.DaysPerWeek,
		HoursPerDay:   b.HoursPerDay,
		WeeksPerMonth: appstate.WeeksPerMonth,
		TotalCost:     appstate.TotalCost(b, t.HourlyRate),
	})
}
