// internal/app/features/schedules/members.go
package schedules

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/servehub/internal/app/features/errors"
	memberstore "github.com/dalemusser/servehub/internal/app/store/members"
	"github.com/dalemusser/servehub/internal/app/system/scheduledraft"
)

// HandleToggleMember selects or deselects a member. Deselecting drops the
// member's function assignment. Only members on the roster can be added;
// removal always succeeds so stale ids can be cleared.
// POST /schedules/wizard/{draftID}/members/{memberID}/toggle
func (h *Handler) HandleToggleMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberIDParam(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, "invalid_member_id", "Invalid member ID.")
		return
	}

	d, ok := h.mutate(w, r, "wizard toggle member", func(ctx context.Context, d *scheduledraft.Draft) bool {
		if !d.Members.IsSelected(memberID) {
			_, err := memberstore.New(h.DB).GetByID(ctx, memberID)
			if errors.Is(err, memberstore.ErrNotFound) {
				uierrors.RenderNotFound(w, r, "Member not found.")
				return false
			}
			if err != nil {
				h.ErrLog.LogServerError(w, r, "load member failed", err, "A database error occurred.")
				return false
			}
		}
		d.Members.ToggleMember(memberID)
		d.SyncCompletion()
		return true
	})
	if !ok {
		return
	}
	writeDraft(w, http.StatusOK, d)
}
