// internal/app/features/schedules/routes.go
package schedules

import (
	"net/http"

	"github.com/dalemusser/servehub/internal/app/system/limits"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router mounted under /schedules.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(limitBody(limits.MaxWizardBodySize))

	// WIZARD SESSION
	start := r.With()
	if h.StartLimiter != nil {
		start = r.With(h.StartLimiter.Middleware(h.renderRateLimited))
	}
	start.Post("/wizard", h.HandleStart)
	r.Get("/wizard/{draftID}", h.ServeDraft)
	r.Delete("/wizard/{draftID}", h.HandleCancel)

	// NAVIGATION
	r.Post("/wizard/{draftID}/goto", h.HandleGoTo)
	r.Post("/wizard/{draftID}/next", h.HandleNext)
	r.Post("/wizard/{draftID}/previous", h.HandlePrevious)
	r.Post("/wizard/{draftID}/steps/{step}/complete", h.HandleMarkComplete)
	r.Post("/wizard/{draftID}/steps/{step}/incomplete", h.HandleMarkIncomplete)

	// DETAILS
	r.Put("/wizard/{draftID}/fields", h.HandleUpdateFields)

	// MEMBERS
	r.Get("/wizard/{draftID}/candidates", h.ServeCandidates)
	r.Put("/wizard/{draftID}/campus", h.HandleSetCampus)
	r.Post("/wizard/{draftID}/members/{memberID}/toggle", h.HandleToggleMember)

	// FUNCTIONS
	r.Get("/wizard/{draftID}/functions", h.ServeFunctions)
	r.Put("/wizard/{draftID}/members/{memberID}/functions", h.HandleSetFunctions)

	// SUBMIT
	r.Post("/wizard/{draftID}/submit", h.HandleSubmit)

	// READ
	r.Get("/{scheduleID}", h.ServeSchedule)

	return r
}

func limitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
