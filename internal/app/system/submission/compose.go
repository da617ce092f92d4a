// Package submission turns the wizard's collected state into the single
// payload handed to the schedule store.
package submission

import (
	"slices"
	"strings"
	"time"

	"github.com/dalemusser/servehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/servehub/internal/domain/models"
)

// DateLayout is the calendar date format of Payload.Date.
const DateLayout = "2006-01-02"

// Fields are the free-form scalar fields of the details step.
type Fields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// Payload is a validated schedule ready to be stored. It shares no memory
// with the wizard state it was built from.
type Payload struct {
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Location        string            `json:"location"`
	Date            string            `json:"date"`
	Time            string            `json:"time"`
	MemberIDs       []int64           `json:"member_ids"`
	MemberFunctions map[int64][]int64 `json:"member_functions"`
}

// Compose validates the wizard state and builds a Payload.
//
// Checks run in a fixed order and the first failure wins: date, time,
// member selection, then the scalar fields. A zero date or a blank clock
// counts as missing. The returned error is always a *ValidationError.
func Compose(f Fields, date time.Time, clock string, selected []int64, assignments map[int64][]int64) (Payload, error) {
	if date.IsZero() {
		return Payload{}, newValidationError(ErrMissingDate)
	}
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return Payload{}, newValidationError(ErrMissingTime)
	}
	if len(selected) == 0 {
		return Payload{}, newValidationError(ErrNoMembersSelected)
	}
	if fe := CheckFields(f, clock); len(fe) > 0 {
		return Payload{}, newValidationError(ErrInvalidFields, fe...)
	}

	fns := make(map[int64][]int64, len(assignments))
	for id, ids := range assignments {
		if slices.Contains(selected, id) {
			fns[id] = slices.Clone(ids)
		}
	}

	return Payload{
		Title:           strings.TrimSpace(f.Title),
		Description:     htmlsanitize.Sanitize(strings.TrimSpace(f.Description)),
		Location:        strings.TrimSpace(f.Location),
		Date:            date.Format(DateLayout),
		Time:            clock,
		MemberIDs:       slices.Clone(selected),
		MemberFunctions: fns,
	}, nil
}

// Schedule converts p into the stored schedule shape. Members keep the
// selection order and members without functions get an empty list.
func (p Payload) Schedule() models.Schedule {
	members := make([]models.ScheduleMember, 0, len(p.MemberIDs))
	for _, id := range p.MemberIDs {
		refs := make([]models.ScheduleFunctionRef, 0, len(p.MemberFunctions[id]))
		for _, fid := range p.MemberFunctions[id] {
			refs = append(refs, models.ScheduleFunctionRef{FunctionID: fid})
		}
		members = append(members, models.ScheduleMember{UserID: id, Functions: refs})
	}
	return models.Schedule{
		Title:       p.Title,
		Description: p.Description,
		Location:    p.Location,
		Date:        p.Date,
		Time:        p.Time,
		Members:     members,
	}
}

// ParseDate parses a YYYY-MM-DD date. A blank value yields the zero time,
// which Compose reports as a missing date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}
