// internal/app/features/schedules/start.go
package schedules

import (
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/servehub/internal/app/features/errors"
	schedulestore "github.com/dalemusser/servehub/internal/app/store/schedules"
	"github.com/dalemusser/servehub/internal/app/system/scheduledraft"
	"github.com/dalemusser/servehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleStart creates a wizard draft. With a schedule_id the draft edits
// that schedule and starts pre-populated from it.
// POST /schedules/wizard
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(r, &req, true); err != nil {
		renderDecodeError(w, r, err, "Request body is not valid JSON.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "start wizard")
	defer cancel()

	d := scheduledraft.New(h.Steps)
	if sid := strings.TrimSpace(req.ScheduleID); sid != "" {
		oid, err := primitive.ObjectIDFromHex(sid)
		if err != nil {
			uierrors.RenderBadRequest(w, r, "invalid_schedule_id", "Invalid schedule ID.")
			return
		}
		sch, err := schedulestore.New(h.DB).GetByID(ctx, oid)
		if errors.Is(err, schedulestore.ErrNotFound) {
			uierrors.RenderNotFound(w, r, "Schedule not found.")
			return
		}
		if err != nil {
			h.ErrLog.LogServerError(w, r, "load schedule for edit failed", err, "A database error occurred.")
			return
		}
		d = scheduledraft.Edit(h.Steps, sch)
	}

	doc, err := h.Drafts.Create(ctx, d.Document())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create wizard draft failed", err, "A database error occurred.")
		return
	}
	d.ID, d.Version, d.CreatedAt = doc.ID, doc.Version, doc.CreatedAt

	h.Log.Info("wizard started", zap.String("draft_id", d.ID), zap.Bool("edit", d.IsEdit()))
	writeDraft(w, http.StatusCreated, d)
}
