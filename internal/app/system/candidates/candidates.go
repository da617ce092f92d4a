// Package candidates derives the pool of members that can be assigned to a
// schedule from the full roster and the campus filter.
//
// Every campus comparison goes through EffectiveCampusID so that the
// filtered pool and the per-campus counts shown next to the filter always
// agree.
package candidates

import (
	"math"
	"strconv"
	"strings"

	"github.com/dalemusser/servehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// AllCampuses is the campus filter value that disables filtering.
const AllCampuses = "all"

// EffectiveCampusID resolves a member's campus: the direct campus_id field,
// then the embedded campus.id, then nil.
func EffectiveCampusID(m models.Member) *int64 {
	if m.CampusID != nil {
		return m.CampusID
	}
	if m.Campus != nil && m.Campus.ID != nil {
		return m.Campus.ID
	}
	return nil
}

// IsAll reports whether the filter value selects every campus. An empty
// value is treated as "all".
func IsAll(campusFilter string) bool {
	f := strings.TrimSpace(campusFilter)
	return f == "" || strings.EqualFold(f, AllCampuses)
}

// Filter returns the members visible under campusFilter, in roster order.
//
// "all" returns the roster unchanged. Any other value is coerced to a number
// and matched against each member's effective campus id; a value that is
// not a number matches nobody, and members without a campus never match.
func Filter(roster []models.Member, campusFilter string) []models.Member {
	if IsAll(campusFilter) {
		return roster
	}
	want, ok := coerce(campusFilter)
	if !ok {
		return []models.Member{}
	}
	out := make([]models.Member, 0, len(roster))
	for _, m := range roster {
		if matches(m, want) {
			out = append(out, m)
		}
	}
	return out
}

// CountForCampus counts members whose effective campus id is campusID.
// It equals len(Filter(roster, strconv.FormatInt(campusID, 10))).
func CountForCampus(roster []models.Member, campusID int64) int {
	want := campusID
	n := 0
	for _, m := range roster {
		if matches(m, want) {
			n++
		}
	}
	return n
}

// CampusCount is one row of the campus filter pane.
type CampusCount struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	Count int    `json:"count"`
}

// Counts holds the "all" total and one row per campus, in campus order.
type Counts struct {
	All      int           `json:"all"`
	Campuses []CampusCount `json:"campuses"`
}

// CountsByCampus builds the campus pane rows for roster.
func CountsByCampus(roster []models.Member, campuses []models.Campus) Counts {
	out := Counts{
		All:      len(roster),
		Campuses: make([]CampusCount, 0, len(campuses)),
	}
	for _, c := range campuses {
		out.Campuses = append(out.Campuses, CampusCount{
			ID:    c.ID,
			Name:  c.Name,
			City:  c.City,
			Count: CountForCampus(roster, c.ID),
		})
	}
	return out
}

// Search narrows members to those whose name or email contains q, compared
// case- and diacritic-insensitively. An empty query returns members as is.
func Search(members []models.Member, q string) []models.Member {
	needle := text.Fold(strings.TrimSpace(q))
	if needle == "" {
		return members
	}
	out := make([]models.Member, 0, len(members))
	for _, m := range members {
		if strings.Contains(text.Fold(m.FullName), needle) || strings.Contains(text.Fold(m.Email), needle) {
			out = append(out, m)
		}
	}
	return out
}

func matches(m models.Member, want int64) bool {
	id := EffectiveCampusID(m)
	return id != nil && *id == want
}

// coerce converts a filter value to a campus id the way a form field would:
// surrounding space is ignored and decimal notation is accepted. Integers
// parse exactly; a decimal value must be integral and within int64 range.
func coerce(v string) (int64, bool) {
	v = strings.TrimSpace(v)
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
