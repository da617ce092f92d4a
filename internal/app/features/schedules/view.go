// internal/app/features/schedules/view.go
package schedules

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/servehub/internal/app/features/errors"
	schedulestore "github.com/dalemusser/servehub/internal/app/store/schedules"
	wizarddraftstore "github.com/dalemusser/servehub/internal/app/store/wizarddrafts"
	"github.com/dalemusser/servehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeDraft returns the current snapshot of a wizard draft.
// GET /schedules/wizard/{draftID}
func (h *Handler) ServeDraft(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load wizard draft")
	defer cancel()

	d, ok := h.loadDraft(ctx, w, r)
	if !ok {
		return
	}
	writeDraft(w, http.StatusOK, d)
}

// HandleCancel discards a wizard draft.
// DELETE /schedules/wizard/{draftID}
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "cancel wizard")
	defer cancel()

	id := chi.URLParam(r, "draftID")
	err := h.Drafts.Delete(ctx, id)
	if errors.Is(err, wizarddraftstore.ErrNotFound) {
		uierrors.RenderNotFound(w, r, "Wizard draft not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete wizard draft failed", err, "A database error occurred.")
		return
	}
	h.Log.Info("wizard canceled", zap.String("draft_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// ServeSchedule returns a stored schedule.
// GET /schedules/{scheduleID}
func (h *Handler) ServeSchedule(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "scheduleID"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "invalid_schedule_id", "Invalid schedule ID.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load schedule")
	defer cancel()

	sch, err := schedulestore.New(h.DB).GetByID(ctx, oid)
	if errors.Is(err, schedulestore.ErrNotFound) {
		uierrors.RenderNotFound(w, r, "Schedule not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load schedule failed", err, "A database error occurred.")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, sch)
}
