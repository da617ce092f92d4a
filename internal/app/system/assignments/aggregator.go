// Package assignments tracks which members are selected for a schedule and
// which functions each selected member will perform.
package assignments

import (
	"errors"
	"slices"

	"github.com/dalemusser/servehub/internal/domain/models"
)

// ErrUnknownMember is returned when functions are set for a member that is
// not selected. Callers only offer function editing for selected members, so
// seeing this error means the caller is out of sync.
var ErrUnknownMember = errors.New("member is not selected")

// Stats summarizes how many selected members have at least one function.
type Stats struct {
	WithFunctions int `json:"with_functions"`
	Total         int `json:"total"`
}

// Done reports whether every selected member has a function and at least
// one member is selected.
func (s Stats) Done() bool {
	return s.Total > 0 && s.WithFunctions == s.Total
}

// Aggregator owns the selected member set and the member -> functions map.
//
// The key set of the map is always a subset of the selected set: removing a
// member removes its functions, and functions can only be set for selected
// members. The zero value is an empty, usable aggregator.
type Aggregator struct {
	selected []int64
	index    map[int64]struct{}
	fns      map[int64][]int64
}

// New returns an empty aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// FromSchedule initializes an aggregator for editing an existing schedule.
// Every stored member is selected in stored order. Only members with a
// non-empty stored function list get an entry.
func FromSchedule(s models.Schedule) *Aggregator {
	a := New()
	for _, m := range s.Members {
		if a.IsSelected(m.UserID) {
			continue
		}
		a.add(m.UserID)
		if ids := m.FunctionIDs(); len(ids) > 0 {
			a.fns[m.UserID] = normalize(ids)
		}
	}
	return a
}

// Restore rebuilds an aggregator from persisted selection and assignments.
// Duplicate ids are collapsed and entries for members that are not selected
// are dropped.
func Restore(ids []int64, fns map[int64][]int64) *Aggregator {
	a := New()
	for _, id := range ids {
		if !a.IsSelected(id) {
			a.add(id)
		}
	}
	for id, f := range fns {
		if a.IsSelected(id) && len(f) > 0 {
			a.fns[id] = normalize(f)
		}
	}
	return a
}

func (a *Aggregator) init() {
	if a.index == nil {
		a.index = make(map[int64]struct{})
	}
	if a.fns == nil {
		a.fns = make(map[int64][]int64)
	}
}

func (a *Aggregator) add(id int64) {
	a.init()
	a.selected = append(a.selected, id)
	a.index[id] = struct{}{}
}

func (a *Aggregator) remove(id int64) {
	a.selected = slices.DeleteFunc(a.selected, func(v int64) bool { return v == id })
	delete(a.index, id)
	delete(a.fns, id)
}

// ToggleMember selects an unselected member or deselects a selected one,
// and reports whether the member is selected afterwards. Deselecting also
// discards the member's functions, so re-selecting starts with none.
func (a *Aggregator) ToggleMember(id int64) bool {
	if a.IsSelected(id) {
		a.remove(id)
		return false
	}
	a.add(id)
	return true
}

// SetFunctions replaces the function set of a selected member. Duplicates
// are collapsed. An empty list clears the member's functions, which is a
// valid "no specific function" assignment.
func (a *Aggregator) SetFunctions(memberID int64, functionIDs []int64) error {
	if !a.IsSelected(memberID) {
		return ErrUnknownMember
	}
	if len(functionIDs) == 0 {
		delete(a.fns, memberID)
		return nil
	}
	a.fns[memberID] = normalize(functionIDs)
	return nil
}

// Prune deselects every member that is not in valid, for example members
// removed from the roster since a draft was saved. It returns the ids that
// were dropped.
func (a *Aggregator) Prune(valid []int64) []int64 {
	keep := make(map[int64]struct{}, len(valid))
	for _, id := range valid {
		keep[id] = struct{}{}
	}
	var dropped []int64
	for _, id := range slices.Clone(a.selected) {
		if _, ok := keep[id]; !ok {
			a.remove(id)
			dropped = append(dropped, id)
		}
	}
	return dropped
}

// IsSelected reports whether id is in the selected set.
func (a *Aggregator) IsSelected(id int64) bool {
	_, ok := a.index[id]
	return ok
}

// Selected returns the selected member ids in selection order.
func (a *Aggregator) Selected() []int64 {
	out := make([]int64, len(a.selected))
	copy(out, a.selected)
	return out
}

// Functions returns the function ids of a member, sorted ascending. It is
// empty for members without functions and for members that are not selected.
func (a *Aggregator) Functions(id int64) []int64 {
	return slices.Clone(a.fns[id])
}

// Assignments returns a copy of the member -> functions map.
func (a *Aggregator) Assignments() map[int64][]int64 {
	out := make(map[int64][]int64, len(a.fns))
	for id, f := range a.fns {
		out[id] = slices.Clone(f)
	}
	return out
}

// CompletionStats counts selected members with a non-empty function set.
func (a *Aggregator) CompletionStats() Stats {
	s := Stats{Total: len(a.selected)}
	for _, id := range a.selected {
		if len(a.fns[id]) > 0 {
			s.WithFunctions++
		}
	}
	return s
}

func normalize(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
