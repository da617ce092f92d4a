// internal/app/features/schedules/functions.go
package schedules

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/servehub/internal/app/features/errors"
	functionstore "github.com/dalemusser/servehub/internal/app/store/functions"
	memberstore "github.com/dalemusser/servehub/internal/app/store/members"
	"github.com/dalemusser/servehub/internal/app/system/assignments"
	"github.com/dalemusser/servehub/internal/app/system/scheduledraft"
	"github.com/dalemusser/servehub/internal/app/system/timeouts"
	"github.com/dalemusser/servehub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeFunctions lists the selected members, in selection order, with their
// assigned functions and the active function catalog.
// GET /schedules/wizard/{draftID}/functions
func (h *Handler) ServeFunctions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list functions step")
	defer cancel()

	d, ok := h.loadDraft(ctx, w, r)
	if !ok {
		return
	}

	roster, err := memberstore.New(h.DB).Roster(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load roster failed", err, "A database error occurred.")
		return
	}
	catalog, err := functionstore.New(h.DB).ListActive(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load functions failed", err, "A database error occurred.")
		return
	}

	byID := make(map[int64]models.Member, len(roster))
	for _, m := range roster {
		byID[m.ID] = m
	}

	selected := d.Members.Selected()
	views := make([]candidateView, 0, len(selected))
	for _, id := range selected {
		m, found := byID[id]
		if !found {
			m = models.Member{ID: id}
		}
		views = append(views, newCandidateView(m, d))
	}

	uierrors.WriteJSON(w, http.StatusOK, selectedFunctionsView{
		Members:   views,
		Functions: catalog,
		Stats:     d.Members.CompletionStats(),
	})
}

// HandleSetFunctions replaces a selected member's function set. An empty
// list clears the assignment.
// PUT /schedules/wizard/{draftID}/members/{memberID}/functions
func (h *Handler) HandleSetFunctions(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberIDParam(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, "invalid_member_id", "Invalid member ID.")
		return
	}
	var req functionsRequest
	if err := decodeJSON(r, &req, false); err != nil {
		renderDecodeError(w, r, err, "Request body must be {\"function_ids\": [..]}.")
		return
	}

	d, ok := h.mutate(w, r, "wizard set functions", func(ctx context.Context, d *scheduledraft.Draft) bool {
		if !d.Members.IsSelected(memberID) {
			h.ErrLog.LogWarn(w, r, http.StatusConflict, "unknown_member",
				"set functions for unselected member", assignments.ErrUnknownMember,
				"The member is not selected for this schedule.")
			return false
		}
		if !h.checkFunctions(ctx, w, r, req.FunctionIDs) {
			return false
		}
		if err := d.Members.SetFunctions(memberID, req.FunctionIDs); err != nil {
			h.ErrLog.LogServerError(w, r, "set functions failed", err, "Unable to assign functions.")
			return false
		}
		d.SyncCompletion()
		return true
	})
	if !ok {
		return
	}
	writeDraft(w, http.StatusOK, d)
}

// checkFunctions answers 400 unknown_function when any id is not an active
// function.
func (h *Handler) checkFunctions(ctx context.Context, w http.ResponseWriter, r *http.Request, ids []int64) bool {
	if len(ids) == 0 {
		return true
	}
	missing, err := functionstore.New(h.DB).Missing(ctx, ids)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "check functions failed", err, "A database error occurred.")
		return false
	}
	if len(missing) > 0 {
		h.Log.Info("unknown function ids", zap.Int64s("function_ids", missing))
		uierrors.WriteJSON(w, http.StatusBadRequest, uierrors.Body{
			Error:   "unknown_function",
			Message: "One or more functions do not exist.",
			Fields:  missing,
		})
		return false
	}
	return true
}
