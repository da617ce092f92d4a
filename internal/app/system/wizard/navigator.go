// internal/app/system/wizard/navigator.go
package wizard

import "math"

// State is the serializable form of a wizard session: the current step and
// the visited and completed step sets, each listed in registry order.
type State struct {
	Current   string   `bson:"current" json:"current"`
	Visited   []string `bson:"visited" json:"visited"`
	Completed []string `bson:"completed" json:"completed"`
}

// Navigator tracks one wizard session over a Registry.
//
// Navigation to an unregistered step is ignored rather than reported: hosts
// re-render with stale step references and must not fail on them.
type Navigator struct {
	reg       *Registry
	current   string
	visited   map[string]bool
	completed map[string]bool
}

// NewNavigator starts a session at initial, or at the first step when
// initial is empty or not registered.
func NewNavigator(reg *Registry, initial string) *Navigator {
	if !reg.Has(initial) {
		initial = reg.First()
	}
	return &Navigator{
		reg:       reg,
		current:   initial,
		visited:   map[string]bool{initial: true},
		completed: map[string]bool{},
	}
}

// Restore rebuilds a navigator from a saved State. Names that are no longer
// registered are dropped; an unknown current step falls back to the first.
func Restore(reg *Registry, st State) *Navigator {
	n := NewNavigator(reg, st.Current)
	for _, name := range st.Visited {
		if reg.Has(name) {
			n.visited[name] = true
		}
	}
	for _, name := range st.Completed {
		if reg.Has(name) {
			n.completed[name] = true
		}
	}
	return n
}

// Registry returns the step registry this navigator runs over.
func (n *Navigator) Registry() *Registry { return n.reg }

// Current returns the name of the current step.
func (n *Navigator) Current() string { return n.current }

// CanNavigate reports whether step may become the current step. Moving back
// or staying is always allowed. Moving forward requires every step before
// the target to be completed.
func (n *Navigator) CanNavigate(step string) bool {
	target := n.reg.IndexOf(step)
	if target < 0 {
		return false
	}
	if target <= n.reg.IndexOf(n.current) {
		return true
	}
	for _, s := range n.reg.steps[:target] {
		if !n.completed[s.Name] {
			return false
		}
	}
	return true
}

// GoTo moves to step when CanNavigate allows it and reports whether the
// current step is now step. Unregistered or gated targets leave the state
// untouched.
func (n *Navigator) GoTo(step string) bool {
	if !n.CanNavigate(step) {
		return false
	}
	n.current = step
	n.visited[step] = true
	return true
}

// Next moves one step forward. It returns false at the last step or when
// the next step is gated.
func (n *Navigator) Next() bool {
	next, ok := n.reg.Next(n.current)
	if !ok {
		return false
	}
	return n.GoTo(next)
}

// Previous moves one step back. It returns false at the first step.
func (n *Navigator) Previous() bool {
	prev, ok := n.reg.Previous(n.current)
	if !ok {
		return false
	}
	return n.GoTo(prev)
}

// MarkComplete adds step to the completed set.
func (n *Navigator) MarkComplete(step string) {
	if n.reg.Has(step) {
		n.completed[step] = true
	}
}

// MarkIncomplete removes step from the completed set.
func (n *Navigator) MarkIncomplete(step string) {
	delete(n.completed, step)
}

// SetComplete marks step complete or incomplete.
func (n *Navigator) SetComplete(step string, done bool) {
	if done {
		n.MarkComplete(step)
		return
	}
	n.MarkIncomplete(step)
}

// IsComplete reports whether step is in the completed set.
func (n *Navigator) IsComplete(step string) bool { return n.completed[step] }

// IsVisited reports whether step has been the current step.
func (n *Navigator) IsVisited(step string) bool { return n.visited[step] }

// Progress is the position of the current step as a rounded percentage.
func (n *Navigator) Progress() int {
	pos := n.reg.IndexOf(n.current) + 1
	return int(math.Round(100 * float64(pos) / float64(n.reg.Len())))
}

// IsWizardComplete reports whether every registered step is completed.
func (n *Navigator) IsWizardComplete() bool {
	for _, s := range n.reg.steps {
		if !n.completed[s.Name] {
			return false
		}
	}
	return true
}

// State returns the serializable form of the session.
func (n *Navigator) State() State {
	st := State{
		Current:   n.current,
		Visited:   []string{},
		Completed: []string{},
	}
	for _, s := range n.reg.steps {
		if n.visited[s.Name] {
			st.Visited = append(st.Visited, s.Name)
		}
		if n.completed[s.Name] {
			st.Completed = append(st.Completed, s.Name)
		}
	}
	return st
}
