// Package scheduledraft binds the pieces of one schedule wizard session
// (step navigator, member assignments, form fields and campus filter) into
// a single value that can be stored between requests.
package scheduledraft

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/dalemusser/servehub/internal/app/system/assignments"
	"github.com/dalemusser/servehub/internal/app/system/candidates"
	"github.com/dalemusser/servehub/internal/app/system/submission"
	"github.com/dalemusser/servehub/internal/app/system/wizard"
	"github.com/dalemusser/servehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotOnLastStep is returned by Prepare while the navigator is on any step
// but the last.
var ErrNotOnLastStep = errors.New("submit is only available on the last step")

// Draft is one wizard session.
type Draft struct {
	ID         string
	ScheduleID *primitive.ObjectID
	Version    int64

	Nav     *wizard.Navigator
	Members *assignments.Aggregator

	Fields       submission.Fields
	Date         string // YYYY-MM-DD, may be empty
	Time         string // HH:MM, may be empty
	CampusFilter string

	CreatedAt time.Time
}

// New starts an empty session for a new schedule.
func New(reg *wizard.Registry) *Draft {
	return &Draft{
		Nav:          wizard.NewNavigator(reg, ""),
		Members:      assignments.New(),
		CampusFilter: candidates.AllCampuses,
	}
}

// Edit starts a session pre-populated from an existing schedule.
func Edit(reg *wizard.Registry, s models.Schedule) *Draft {
	id := s.ID
	d := &Draft{
		ScheduleID: &id,
		Nav:        wizard.NewNavigator(reg, ""),
		Members:    assignments.FromSchedule(s),
		Fields: submission.Fields{
			Title:       s.Title,
			Description: s.Description,
			Location:    s.Location,
		},
		Date:         s.Date,
		Time:         s.Time,
		CampusFilter: candidates.AllCampuses,
	}
	d.SyncCompletion()
	return d
}

// FromDocument restores a stored session.
func FromDocument(reg *wizard.Registry, doc models.WizardDraft) *Draft {
	fns := make(map[int64][]int64, len(doc.MemberFunctions))
	for _, a := range doc.MemberFunctions {
		fns[a.MemberID] = a.FunctionIDs
	}
	filter := doc.CampusFilter
	if filter == "" {
		filter = candidates.AllCampuses
	}
	return &Draft{
		ID:         doc.ID,
		ScheduleID: doc.ScheduleID,
		Version:    doc.Version,
		Nav: wizard.Restore(reg, wizard.State{
			Current:   doc.Step.Current,
			Visited:   doc.Step.Visited,
			Completed: doc.Step.Completed,
		}),
		Members: assignments.Restore(doc.MemberIDs, fns),
		Fields: submission.Fields{
			Title:       doc.Title,
			Description: doc.Description,
			Location:    doc.Location,
		},
		Date:         doc.Date,
		Time:         doc.Time,
		CampusFilter: filter,
		CreatedAt:    doc.CreatedAt,
	}
}

// Document returns the storable form of the session. Assignments are
// listed in selection order.
func (d *Draft) Document() models.WizardDraft {
	st := d.Nav.State()
	selected := d.Members.Selected()
	fns := d.Members.Assignments()

	list := make([]models.DraftAssignment, 0, len(fns))
	for _, id := range selected {
		if f, ok := fns[id]; ok {
			list = append(list, models.DraftAssignment{MemberID: id, FunctionIDs: f})
		}
	}
	return models.WizardDraft{
		ID:              d.ID,
		ScheduleID:      d.ScheduleID,
		Step:            models.DraftStep{Current: st.Current, Visited: st.Visited, Completed: st.Completed},
		Title:           d.Fields.Title,
		Description:     d.Fields.Description,
		Location:        d.Fields.Location,
		Date:            d.Date,
		Time:            d.Time,
		CampusFilter:    d.CampusFilter,
		MemberIDs:       selected,
		MemberFunctions: list,
		Version:         d.Version,
		CreatedAt:       d.CreatedAt,
	}
}

// IsEdit reports whether the session edits an existing schedule.
func (d *Draft) IsEdit() bool { return d.ScheduleID != nil }

// date returns the parsed date, or the zero time when it is blank or invalid.
func (d *Draft) date() time.Time {
	t, err := submission.ParseDate(d.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DetailsValid reports whether the details step passes the composer's
// date, time and field checks.
func (d *Draft) DetailsValid() bool {
	if d.date().IsZero() || strings.TrimSpace(d.Time) == "" {
		return false
	}
	return len(submission.CheckFields(d.Fields, d.Time)) == 0
}

// SyncCompletion derives step completion from the collected data:
//   - details is complete exactly when DetailsValid
//   - members is complete exactly when someone is selected
//   - functions becomes complete once every selected member has a function,
//     becomes incomplete when nobody is selected, and is otherwise left as
//     the user set it
//
// Steps that are not registered are ignored.
func (d *Draft) SyncCompletion() {
	d.Nav.SetComplete(wizard.StepDetails, d.DetailsValid())

	stats := d.Members.CompletionStats()
	d.Nav.SetComplete(wizard.StepMembers, stats.Total > 0)
	switch {
	case stats.Total == 0:
		d.Nav.MarkIncomplete(wizard.StepFunctions)
	case stats.Done():
		d.Nav.MarkComplete(wizard.StepFunctions)
	}
}

// Compose builds the submission payload from the session.
func (d *Draft) Compose() (submission.Payload, error) {
	return submission.Compose(d.Fields, d.date(), d.Time, d.Members.Selected(), d.Members.Assignments())
}

// FunctionIDs returns every function id referenced by the session, sorted
// and without duplicates.
func (d *Draft) FunctionIDs() []int64 {
	var ids []int64
	for _, f := range d.Members.Assignments() {
		ids = append(ids, f...)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Submission is a prepared session handed to storage. It shares no state
// with the Draft it came from.
type Submission struct {
	ScheduleID  *primitive.ObjectID // nil for a new schedule
	Payload     submission.Payload
	FunctionIDs []int64
}

// Prepare readies the session for storage. Members missing from roster are
// dropped and returned; a nil roster skips pruning. Completion is resynced,
// then the navigator must be on the last step (ErrNotOnLastStep). A
// composer failure is returned as *submission.ValidationError after moving
// the navigator to the step that needs attention.
//
// Prepare mutates the draft and must run on the goroutine that owns it.
func (d *Draft) Prepare(roster []int64) (Submission, []int64, error) {
	var dropped []int64
	if roster != nil {
		dropped = d.Members.Prune(roster)
	}
	d.SyncCompletion()

	if !d.Nav.Registry().IsLast(d.Nav.Current()) {
		return Submission{}, dropped, ErrNotOnLastStep
	}

	payload, err := d.Compose()
	if err != nil {
		var verr *submission.ValidationError
		if errors.As(err, &verr) {
			d.Nav.GoTo(verr.Step)
		}
		return Submission{}, dropped, err
	}

	sub := Submission{Payload: payload, FunctionIDs: d.FunctionIDs()}
	if d.ScheduleID != nil {
		id := *d.ScheduleID
		sub.ScheduleID = &id
	}
	return sub, dropped, nil
}
