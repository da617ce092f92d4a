// internal/app/system/wizard/snapshot.go
package wizard

// StepView is the per-step projection rendered by a step sidebar.
type StepView struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Order       int    `json:"order"`
	IsCurrent   bool   `json:"is_current"`
	IsComplete  bool   `json:"is_complete"`
	IsVisited   bool   `json:"is_visited"`
	CanNavigate bool   `json:"can_navigate"`
}

// Snapshot is a read-only view of a navigator for rendering layers.
type Snapshot struct {
	Current  string     `json:"current"`
	Progress int        `json:"progress"`
	Complete bool       `json:"complete"`
	IsFirst  bool       `json:"is_first"`
	IsLast   bool       `json:"is_last"`
	Steps    []StepView `json:"steps"`
}

// Snapshot projects the navigator state for display.
func (n *Navigator) Snapshot() Snapshot {
	snap := Snapshot{
		Current:  n.current,
		Progress: n.Progress(),
		Complete: n.IsWizardComplete(),
		IsFirst:  n.reg.IsFirst(n.current),
		IsLast:   n.reg.IsLast(n.current),
		Steps:    make([]StepView, 0, n.reg.Len()),
	}
	for _, s := range n.reg.steps {
		snap.Steps = append(snap.Steps, StepView{
			Name:        s.Name,
			Title:       s.Title,
			Order:       s.Order,
			IsCurrent:   s.Name == n.current,
			IsComplete:  n.completed[s.Name],
			IsVisited:   n.visited[s.Name],
			CanNavigate: n.CanNavigate(s.Name),
		})
	}
	return snap
}
