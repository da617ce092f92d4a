// internal/app/features/schedules/fields.go
package schedules

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/servehub/internal/app/features/errors"
	"github.com/dalemusser/servehub/internal/app/system/scheduledraft"
	"github.com/dalemusser/servehub/internal/app/system/submission"
)

// HandleUpdateFields replaces the details step fields. Values are stored as
// entered; the composer trims and validates them at submit.
// PUT /schedules/wizard/{draftID}/fields
func (h *Handler) HandleUpdateFields(w http.ResponseWriter, r *http.Request) {
	var req fieldsRequest
	if err := decodeJSON(r, &req, false); err != nil {
		renderDecodeError(w, r, err, "Request body is not valid JSON.")
		return
	}
	date := strings.TrimSpace(req.Date)
	if _, err := submission.ParseDate(date); err != nil {
		uierrors.RenderBadRequest(w, r, "invalid_date", "Date must be formatted YYYY-MM-DD.")
		return
	}

	d, ok := h.mutate(w, r, "wizard update fields", func(_ context.Context, d *scheduledraft.Draft) bool {
		d.Fields = submission.Fields{
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
		}
		d.Date = date
		d.Time = strings.TrimSpace(req.Time)
		d.SyncCompletion()
		return true
	})
	if !ok {
		return
	}
	writeDraft(w, http.StatusOK, d)
}
