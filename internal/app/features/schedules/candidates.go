// internal/app/features/schedules/candidates.go
package schedules

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/servehub/internal/app/features/errors"
	campusstore "github.com/dalemusser/servehub/internal/app/store/campuses"
	memberstore "github.com/dalemusser/servehub/internal/app/store/members"
	"github.com/dalemusser/servehub/internal/app/system/candidates"
	"github.com/dalemusser/servehub/internal/app/system/scheduledraft"
	"github.com/dalemusser/servehub/internal/app/system/timeouts"
	"github.com/dalemusser/servehub/internal/domain/models"
)

// ServeCandidates lists the members visible under the campus filter with
// the per-campus counts for the filter pane. A campus query parameter
// overrides the stored filter for this request only; q narrows the pool by
// name or email.
// GET /schedules/wizard/{draftID}/candidates
func (h *Handler) ServeCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list candidates")
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
	campuses, err := campusstore.New(h.DB).ListActive(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load campuses failed", err, "A database error occurred.")
		return
	}

	filter := d.CampusFilter
	if v, set := r.URL.Query()["campus"]; set && len(v) > 0 {
		filter = v[0]
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	pool := candidates.Search(candidates.Filter(roster, filter), q)
	views := make([]candidateView, 0, len(pool))
	for _, m := range pool {
		views = append(views, newCandidateView(m, d))
	}

	uierrors.WriteJSON(w, http.StatusOK, candidatesResponse{
		CampusFilter: filter,
		Query:        q,
		Members:      views,
		Counts:       candidates.CountsByCampus(roster, campuses),
	})
}

// HandleSetCampus stores the campus filter on the draft. Any value is
// accepted; one that names no campus simply shows an empty pool.
// PUT /schedules/wizard/{draftID}/campus
func (h *Handler) HandleSetCampus(w http.ResponseWriter, r *http.Request) {
	var req campusRequest
	if err := decodeJSON(r, &req, false); err != nil {
		renderDecodeError(w, r, err, "Request body must be {\"campus\": \"all|<id>\"}.")
		return
	}

	d, ok := h.mutate(w, r, "wizard set campus", func(_ context.Context, d *scheduledraft.Draft) bool {
		d.CampusFilter = strings.TrimSpace(req.Campus)
		if candidates.IsAll(d.CampusFilter) {
			d.CampusFilter = candidates.AllCampuses
		}
		return true
	})
	if !ok {
		return
	}
	writeDraft(w, http.StatusOK, d)
}

func newCandidateView(m models.Member, d *scheduledraft.Draft) candidateView {
	fns := d.Members.Functions(m.ID)
	if fns == nil {
		fns = []int64{}
	}
	return candidateView{
		ID:          m.ID,
		Name:        m.FullName,
		Email:       m.Email,
		CampusID:    candidates.EffectiveCampusID(m),
		Selected:    d.Members.IsSelected(m.ID),
		FunctionIDs: fns,
	}
}
