// internal/app/features/schedules/submit.go
package schedules

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/servehub/internal/app/features/errors"
	memberstore "github.com/dalemusser/servehub/internal/app/store/members"
	schedulestore "github.com/dalemusser/servehub/internal/app/store/schedules"
	"github.com/dalemusser/servehub/internal/app/system/scheduledraft"
	"github.com/dalemusser/servehub/internal/app/system/submission"
	"github.com/dalemusser/servehub/internal/app/system/timeouts"
	"github.com/dalemusser/servehub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleSubmit composes the draft into a schedule and stores it.
//
// Members that left the roster are pruned first. Submitting from any step
// but the last answers 409. A composer failure routes the draft back to the
// step that needs attention and answers 422. The draft is claimed with a
// version-checked save before the schedule is written, so two concurrent
// submits cannot both create a schedule.
// POST /schedules/wizard/{draftID}/submit
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "wizard submit")
	defer cancel()

	d, ok := h.loadDraft(ctx, w, r)
	if !ok {
		return
	}

	valid, err := memberstore.New(h.DB).IDs(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load member ids failed", err, "A database error occurred.")
		return
	}
	sub, dropped, err := d.Prepare(valid)
	if len(dropped) > 0 {
		h.Log.Info("pruned members no longer on roster",
			zap.String("draft_id", d.ID), zap.Int64s("member_ids", dropped))
	}
	var verr *submission.ValidationError
	switch {
	case errors.Is(err, scheduledraft.ErrNotOnLastStep):
		uierrors.RenderConflict(w, r, "not_on_last_step", "Submit is only available on the last step.")
		return
	case errors.As(err, &verr):
		if !h.saveDraft(ctx, w, r, d) {
			return
		}
		body := uierrors.Body{Error: verr.Code(), Message: verr.Error(), Step: verr.Step}
		if len(verr.Fields) > 0 {
			body.Fields = verr.Fields
		}
		uierrors.WriteJSON(w, http.StatusUnprocessableEntity, body)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "compose schedule failed", err, "Unable to build the schedule.")
		return
	}
	if !h.checkFunctions(ctx, w, r, sub.FunctionIDs) {
		return
	}

	// Claim the draft.
	if !h.saveDraft(ctx, w, r, d) {
		return
	}

	store := schedulestore.New(h.DB)
	var (
		saved   models.Schedule
		status  = http.StatusCreated
		created = true
	)
	if sub.ScheduleID != nil {
		saved, err = store.Update(ctx, *sub.ScheduleID, sub.Payload.Schedule())
		status, created = http.StatusOK, false
	} else {
		saved, err = store.Create(ctx, sub.Payload.Schedule())
	}
	if errors.Is(err, schedulestore.ErrNotFound) {
		uierrors.RenderNotFound(w, r, "Schedule not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "store schedule failed", err, "A database error occurred.")
		return
	}

	if err := h.Drafts.Delete(ctx, d.ID); err != nil {
		// The schedule is stored; an orphaned draft expires on its own.
		h.Log.Warn("delete submitted draft failed", zap.String("draft_id", d.ID), zap.Error(err))
	}

	h.Log.Info("schedule submitted",
		zap.String("draft_id", d.ID),
		zap.String("schedule_id", saved.ID.Hex()),
		zap.Bool("created", created),
		zap.Int("members", len(saved.Members)))
	uierrors.WriteJSON(w, status, submitResponse{Created: created, Schedule: saved})
}
