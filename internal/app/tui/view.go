// internal/app/tui/view.go
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dalemusser/servehub/internal/app/system/candidates"
	"github.com/dalemusser/servehub/internal/app/system/wizard"
	"github.com/dalemusser/servehub/internal/domain/models"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	stepCurrent   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	stepComplete  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	stepOpen      = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	stepGated     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	sidebarStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1).Width(22)
	contentStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	fieldLabelCol = lipgloss.NewStyle().Width(13).Foreground(lipgloss.Color("#AAAAAA"))
)

// View renders the wizard.
func (a *App) View() string {
	heading := "New schedule"
	if a.draft.IsEdit() {
		heading = "Edit schedule"
	}
	header := titleStyle.Render("ServeHub · " + heading)

	if a.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			errorStyle.Render("Error: "+a.err.Error()), mutedStyle.Render("Press q to quit."))
	}
	if a.loading {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", mutedStyle.Render("Loading roster..."))
	}

	snap := a.draft.Nav.Snapshot()
	bar := a.progress.ViewAs(float64(snap.Progress) / 100)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(a.renderSteps(snap)),
		contentStyle.Render(a.renderStep(snap.Current)),
	)

	lines := []string{header, bar, body}
	if a.status != "" {
		lines = append(lines, statusStyle.Render(a.status))
	}
	lines = append(lines, a.help.View(a.keys))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a *App) renderSteps(snap wizard.Snapshot) string {
	var b strings.Builder
	for i, s := range snap.Steps {
		mark := " "
		if s.IsComplete {
			mark = "✓"
		}
		line := fmt.Sprintf("%s %d. %s", mark, i+1, s.Title)
		switch {
		case s.IsCurrent:
			line = stepCurrent.Render("› " + line)
		case !s.CanNavigate:
			line = stepGated.Render("  " + line)
		case s.IsComplete:
			line = stepComplete.Render("  " + line)
		default:
			line = stepOpen.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderStep(step string) string {
	switch step {
	case wizard.StepDetails:
		return a.renderDetails()
	case wizard.StepMembers:
		return a.renderMembers()
	case wizard.StepFunctions:
		return a.renderFunctions()
	}
	return mutedStyle.Render("Nothing to fill in on this step.")
}

func (a *App) renderDetails() string {
	labels := [inputCount]string{"Title", "Description", "Location", "Date", "Time"}
	var b strings.Builder
	for i, in := range a.inputs {
		b.WriteString(fieldLabelCol.Render(labels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if a.editing {
		b.WriteString(mutedStyle.Render("↑/↓ move · enter next · esc done"))
	} else {
		b.WriteString(mutedStyle.Render("enter to edit"))
	}
	return b.String()
}

func (a *App) renderMembers() string {
	counts := candidates.CountsByCampus(a.roster, a.campuses)
	filter := "All campuses"
	if !candidates.IsAll(a.draft.CampusFilter) {
		filter = "Campus " + a.draft.CampusFilter
		for _, c := range counts.Campuses {
			if strconv.FormatInt(c.ID, 10) == strings.TrimSpace(a.draft.CampusFilter) {
				filter = fmt.Sprintf("%s (%d)", c.Name, c.Count)
			}
		}
	} else {
		filter = fmt.Sprintf("%s (%d)", filter, counts.All)
	}

	stats := a.draft.Members.CompletionStats()
	var b strings.Builder
	fmt.Fprintf(&b, "%s · %d selected\n\n", filter, stats.Total)

	pool := a.pool()
	if len(pool) == 0 {
		b.WriteString(mutedStyle.Render("No members on this campus."))
		return b.String()
	}
	for i, m := range pool {
		check := "[ ]"
		if a.draft.Members.IsSelected(m.ID) {
			check = "[x]"
		}
		b.WriteString(a.row(i, fmt.Sprintf("%s %s", check, memberLabel(m))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderFunctions() string {
	selected := a.draft.Members.Selected()
	if len(selected) == 0 {
		return mutedStyle.Render("No members selected.")
	}

	names := make(map[int64]string, len(a.roster))
	for _, m := range a.roster {
		names[m.ID] = memberLabel(m)
	}
	fnNames := make(map[int64]string, len(a.catalog))
	for _, f := range a.catalog {
		fnNames[f.ID] = f.Name
	}

	stats := a.draft.Members.CompletionStats()
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d members have a function\n\n", stats.WithFunctions, stats.Total)
	for i, id := range selected {
		label, ok := names[id]
		if !ok {
			label = fmt.Sprintf("member %d", id)
		}
		assigned := "no specific function"
		if fns := a.draft.Members.Functions(id); len(fns) > 0 {
			parts := make([]string, 0, len(fns))
			for _, f := range fns {
				if n, ok := fnNames[f]; ok {
					parts = append(parts, n)
				} else {
					parts = append(parts, strconv.FormatInt(f, 10))
				}
			}
			assigned = strings.Join(parts, ", ")
		}
		b.WriteString(a.row(i, fmt.Sprintf("%-28s %s", label, assigned)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) row(i int, text string) string {
	if i == a.cursor {
		return cursorStyle.Render("› "+text) + "\n"
	}
	return "  " + text + "\n"
}

func memberLabel(m models.Member) string {
	if m.FullName == "" {
		return fmt.Sprintf("member %d", m.ID)
	}
	return m.FullName
}
