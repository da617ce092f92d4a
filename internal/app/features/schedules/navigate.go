// internal/app/features/schedules/navigate.go
package schedules

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/servehub/internal/app/features/errors"
	"github.com/dalemusser/servehub/internal/app/system/scheduledraft"
	"github.com/go-chi/chi/v5"
)

// navigate applies a move and reports whether the current step changed.
// Gated or unknown targets are not errors: the response carries
// "moved": false and the unchanged snapshot.
func (h *Handler) navigate(w http.ResponseWriter, r *http.Request, op string, move func(d *scheduledraft.Draft) bool) {
	var moved bool
	d, ok := h.mutate(w, r, op, func(_ context.Context, d *scheduledraft.Draft) bool {
		moved = move(d)
		return true
	})
	if !ok {
		return
	}
	resp := newDraftResponse(d)
	resp.Moved = &moved
	uierrors.WriteJSON(w, http.StatusOK, resp)
}

// HandleGoTo jumps to a step if the completed prefix allows it.
// POST /schedules/wizard/{draftID}/goto
func (h *Handler) HandleGoTo(w http.ResponseWriter, r *http.Request) {
	var req gotoRequest
	if err := decodeJSON(r, &req, false); err != nil {
		renderDecodeError(w, r, err, "Request body must be {\"step\": \"<name>\"}.")
		return
	}
	step := strings.TrimSpace(req.Step)
	h.navigate(w, r, "wizard goto", func(d *scheduledraft.Draft) bool { return d.Nav.GoTo(step) })
}

// HandleNext moves one step forward.
// POST /schedules/wizard/{draftID}/next
func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, "wizard next", func(d *scheduledraft.Draft) bool { return d.Nav.Next() })
}

// HandlePrevious moves one step back.
// POST /schedules/wizard/{draftID}/previous
func (h *Handler) HandlePrevious(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, "wizard previous", func(d *scheduledraft.Draft) bool { return d.Nav.Previous() })
}

// HandleMarkComplete marks a step complete.
// POST /schedules/wizard/{draftID}/steps/{step}/complete
func (h *Handler) HandleMarkComplete(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, true)
}

// HandleMarkIncomplete marks a step incomplete.
// POST /schedules/wizard/{draftID}/steps/{step}/incomplete
func (h *Handler) HandleMarkIncomplete(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, false)
}

// mark syncs derived completion first so the explicit choice wins for this
// request. Unknown step names are ignored.
func (h *Handler) mark(w http.ResponseWriter, r *http.Request, done bool) {
	step := chi.URLParam(r, "step")
	d, ok := h.mutate(w, r, "wizard mark step", func(_ context.Context, d *scheduledraft.Draft) bool {
		d.SyncCompletion()
		d.Nav.SetComplete(step, done)
		return true
	})
	if !ok {
		return
	}
	writeDraft(w, http.StatusOK, d)
}
