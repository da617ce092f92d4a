// internal/app/system/wizard/registry.go
package wizard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfiguration is returned when a step list cannot form a registry.
// It is a startup error; a running wizard never produces it.
var ErrInvalidConfiguration = errors.New("wizard: invalid step configuration")

// Step is one registered wizard step. Name is its identity; Order is its
// index in the registry. Title is only used for display.
type Step struct {
	Name  string `yaml:"name" json:"name"`
	Title string `yaml:"title" json:"title"`
	Order int    `yaml:"-" json:"order"`
}

// Registry is the ordered, immutable list of wizard steps.
type Registry struct {
	steps []Step
	index map[string]int
}

// Register builds a registry from step names, using each name as its title.
func Register(names ...string) (*Registry, error) {
	steps := make([]Step, 0, len(names))
	for _, n := range names {
		steps = append(steps, Step{Name: n})
	}
	return RegisterSteps(steps)
}

// RegisterSteps builds a registry from fully described steps. Order is
// assigned from the slice position. Fails with ErrInvalidConfiguration when
// the list is empty or a name is blank or repeated.
func RegisterSteps(steps []Step) (*Registry, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidConfiguration)
	}

	r := &Registry{
		steps: make([]Step, 0, len(steps)),
		index: make(map[string]int, len(steps)),
	}
	for i, s := range steps {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: step %d has no name", ErrInvalidConfiguration, i+1)
		}
		if _, dup := r.index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate step %q", ErrInvalidConfiguration, name)
		}
		title := strings.TrimSpace(s.Title)
		if title == "" {
			title = name
		}
		r.index[name] = i
		r.steps = append(r.steps, Step{Name: name, Title: title, Order: i})
	}
	return r, nil
}

// Steps returns a copy of the registered steps in order.
func (r *Registry) Steps() []Step {
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Names returns the registered step names in order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.steps))
	for i, s := range r.steps {
		out[i] = s.Name
	}
	return out
}

// Len is the number of registered steps.
func (r *Registry) Len() int { return len(r.steps) }

// Has reports whether name is a registered step.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// IndexOf returns the position of name, or -1 when it is not registered.
func (r *Registry) IndexOf(name string) int {
	if i, ok := r.index[name]; ok {
		return i
	}
	return -1
}

// Step returns the registered step with the given name.
func (r *Registry) Step(name string) (Step, bool) {
	i, ok := r.index[name]
	if !ok {
		return Step{}, false
	}
	return r.steps[i], true
}

// First returns the name of the first step.
func (r *Registry) First() string { return r.steps[0].Name }

// Last returns the name of the last step.
func (r *Registry) Last() string { return r.steps[len(r.steps)-1].Name }

// Next returns the step after name. ok is false at the last step or for an
// unregistered name.
func (r *Registry) Next(name string) (string, bool) {
	i := r.IndexOf(name)
	if i < 0 || i+1 >= len(r.steps) {
		return "", false
	}
	return r.steps[i+1].Name, true
}

// Previous returns the step before name. ok is false at the first step or
// for an unregistered name.
func (r *Registry) Previous(name string) (string, bool) {
	i := r.IndexOf(name)
	if i <= 0 {
		return "", false
	}
	return r.steps[i-1].Name, true
}

// IsFirst reports whether name is the first registered step.
func (r *Registry) IsFirst(name string) bool { return r.IndexOf(name) == 0 }

// IsLast reports whether name is the last registered step.
func (r *Registry) IsLast(name string) bool {
	i := r.IndexOf(name)
	return i >= 0 && i == len(r.steps)-1
}
