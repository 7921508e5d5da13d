// internal/app/features/state/routes.go
package state

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /state.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeState)
	r.Post("/actions", h.HandleAction)
	r.Get("/tutors", h.ServeTutors)
	r.Get("/booking/cost", h.ServeBookingCost)
	return r
}
