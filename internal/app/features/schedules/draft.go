// internal/app/features/schedules/draft.go
package schedules

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/servehub/internal/app/features/errors"
	wizarddraftstore "github.com/dalemusser/servehub/internal/app/store/wizarddrafts"
	"github.com/dalemusser/servehub/internal/app/system/ratelimit"
	"github.com/dalemusser/servehub/internal/app/system/scheduledraft"
	"github.com/dalemusser/servehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// loadDraft reads the draft named by the {draftID} URL parameter. On
// failure it writes the response and returns false.
func (h *Handler) loadDraft(ctx context.Context, w http.ResponseWriter, r *http.Request) (*scheduledraft.Draft, bool) {
	id := chi.URLParam(r, "draftID")
	doc, err := h.Drafts.Get(ctx, id)
	if errors.Is(err, wizarddraftstore.ErrNotFound) {
		uierrors.RenderNotFound(w, r, "Wizard draft not found.")
		return nil, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load wizard draft failed", err, "A database error occurred.")
		return nil, false
	}
	return scheduledraft.FromDocument(h.Steps, doc), true
}

// saveDraft stores d and refreshes its version. On failure it writes the
// response and returns false.
func (h *Handler) saveDraft(ctx context.Context, w http.ResponseWriter, r *http.Request, d *scheduledraft.Draft) bool {
	saved, err := h.Drafts.Save(ctx, d.Document())
	switch {
	case errors.Is(err, wizarddraftstore.ErrConflict):
		h.Log.Info("wizard draft conflict", zap.String("draft_id", d.ID), zap.Int64("version", d.Version))
		uierrors.RenderConflict(w, r, "draft_conflict", "The draft was changed by another request. Reload and retry.")
		return false
	case errors.Is(err, wizarddraftstore.ErrNotFound):
		uierrors.RenderNotFound(w, r, "Wizard draft not found.")
		return false
	case err != nil:
		h.ErrLog.LogServerError(w, r, "save wizard draft failed", err, "A database error occurred.")
		return false
	}
	d.Version = saved.Version
	return true
}

// mutate runs the load, change and save cycle shared by every wizard write.
// apply returns false after writing its own error response. Handlers that
// change collected data call d.SyncCompletion inside apply.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, op string, apply func(ctx context.Context, d *scheduledraft.Draft) bool) (*scheduledraft.Draft, bool) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, op)
	defer cancel()

	d, ok := h.loadDraft(ctx, w, r)
	if !ok {
		return nil, false
	}
	if !apply(ctx, d) {
		return nil, false
	}
	if !h.saveDraft(ctx, w, r, d) {
		return nil, false
	}
	return d, true
}

func writeDraft(w http.ResponseWriter, status int, d *scheduledraft.Draft) {
	uierrors.WriteJSON(w, status, newDraftResponse(d))
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched
// when allowEmpty is set.
func decodeJSON(r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	return err
}

// renderDecodeError answers a body that failed decodeJSON: 413 when it
// exceeded the size cap, 400 otherwise.
func renderDecodeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		uierrors.Render(w, http.StatusRequestEntityTooLarge, "body_too_large", "Request body is too large.")
		return
	}
	uierrors.RenderBadRequest(w, r, "invalid_json", msg)
}

func (h *Handler) renderRateLimited(w http.ResponseWriter, r *http.Request) {
	h.Log.Info("wizard start rate limited", zap.String("client_ip", ratelimit.ClientIP(r)))
	uierrors.Render(w, http.StatusTooManyRequests, "rate_limited", "Too many wizard starts. Please wait a minute.")
}

func memberIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "memberID"), 10, 64)
	return id, err == nil
}
