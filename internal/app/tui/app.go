// internal/app/tui/app.go
//
// The terminal schedule wizard. It hosts the same draft engine as the HTTP
// API, in process, for a single operator:
//
//	key press -> Update -> draft / navigator change -> View
//
// Reference data is loaded once at start and the schedule is written on
// submit; the draft itself is never persisted.

package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dalemusser/servehub/internal/app/system/candidates"
	"github.com/dalemusser/servehub/internal/app/system/scheduledraft"
	"github.com/dalemusser/servehub/internal/app/system/submission"
	"github.com/dalemusser/servehub/internal/app/system/timeouts"
	"github.com/dalemusser/servehub/internal/app/system/wizard"
	"github.com/dalemusser/servehub/internal/domain/models"
	"go.uber.org/zap"
)

// Details form inputs, in display order.
const (
	inputTitle = iota
	inputDescription
	inputLocation
	inputDate
	inputTime
	inputCount
)

type dataLoadedMsg struct {
	roster   []models.Member
	campuses []models.Campus
	catalog  []models.Function
	err      error
}

type submitFinishedMsg struct {
	schedule models.Schedule
	created  bool
	err      error
}

// App is the bubbletea model of one wizard session.
type App struct {
	draft   *scheduledraft.Draft
	backend Backend
	log     *zap.Logger

	keys     keyMap
	help     help.Model
	progress progress.Model
	inputs   []textinput.Model
	focus    int
	editing  bool
	cursor   int

	roster   []models.Member
	campuses []models.Campus
	catalog  []models.Function

	loading    bool
	submitting bool
	submitted  bool
	status     string
	err        error

	width  int
	height int
}

// NewApp starts a wizard over draft. Use scheduledraft.New for a new
// schedule or scheduledraft.Edit to change an existing one.
func NewApp(draft *scheduledraft.Draft, backend Backend, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		draft:    draft,
		backend:  backend,
		log:      logger,
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
		loading:  true,
	}
	a.inputs = newInputs(draft)
	return a
}

func newInputs(d *scheduledraft.Draft) []textinput.Model {
	specs := []struct {
		placeholder string
		value       string
		limit       int
	}{
		inputTitle:       {"Title", d.Fields.Title, 200},
		inputDescription: {"Description", d.Fields.Description, 2000},
		inputLocation:    {"Location", d.Fields.Location, 200},
		inputDate:        {"YYYY-MM-DD", d.Date, len(submission.DateLayout)},
		inputTime:        {"HH:MM", d.Time, len(submission.ClockLayout)},
	}
	out := make([]textinput.Model, inputCount)
	for i, s := range specs {
		ti := textinput.New()
		ti.Placeholder = s.placeholder
		ti.CharLimit = s.limit
		ti.SetValue(s.value)
		out[i] = ti
	}
	return out
}

// Draft returns the session being edited.
func (a *App) Draft() *scheduledraft.Draft { return a.draft }

// Init loads the roster, campuses and function catalog.
func (a *App) Init() tea.Cmd {
	return a.loadData()
}

func (a *App) loadData() tea.Cmd {
	backend := a.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.Medium())
		defer cancel()

		var msg dataLoadedMsg
		if msg.roster, msg.err = backend.Roster(ctx); msg.err != nil {
			return msg
		}
		if msg.campuses, msg.err = backend.Campuses(ctx); msg.err != nil {
			return msg
		}
		msg.catalog, msg.err = backend.Functions(ctx)
		return msg
	}
}

// submit stores sub off the Update loop. The cmd holds no reference to the
// draft.
func (a *App) submit(sub scheduledraft.Submission) tea.Cmd {
	backend := a.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
		defer cancel()
		sch, created, err := backend.Submit(ctx, sub)
		return submitFinishedMsg{schedule: sch, created: created, err: err}
	}
}

// Update handles one message.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		a.progress.Width = max(10, min(60, msg.Width-4))
		return a, nil

	case dataLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
			a.log.Error("load reference data failed", zap.Error(msg.err))
			return a, nil
		}
		a.roster, a.campuses, a.catalog = msg.roster, msg.campuses, msg.catalog
		a.log.Info("reference data loaded",
			zap.Int("members", len(a.roster)),
			zap.Int("campuses", len(a.campuses)),
			zap.Int("functions", len(a.catalog)))
		return a, nil

	case submitFinishedMsg:
		return a.handleSubmitFinished(msg)

	case tea.KeyMsg:
		if a.editing {
			return a.updateEditing(msg)
		}
		return a.updateKeys(msg)
	}
	return a, nil
}

func (a *App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}
	if a.loading || a.submitting || a.submitted || a.err != nil {
		return a, nil
	}

	nav := a.draft.Nav
	switch {
	case key.Matches(msg, a.keys.Next):
		a.moved(nav.Next())
		return a, nil
	case key.Matches(msg, a.keys.Previous):
		a.moved(nav.Previous())
		return a, nil
	case key.Matches(msg, a.keys.Jump):
		n := int(msg.String()[0] - '1')
		if steps := nav.Registry().Steps(); n < len(steps) {
			a.moved(nav.GoTo(steps[n].Name))
		}
		return a, nil
	case key.Matches(msg, a.keys.Up):
		a.cursor = max(0, a.cursor-1)
		return a, nil
	case key.Matches(msg, a.keys.Down):
		a.cursor = min(max(0, a.rowCount()-1), a.cursor+1)
		return a, nil
	case key.Matches(msg, a.keys.Submit):
		return a.startSubmit()
	}

	switch nav.Current() {
	case wizard.StepDetails:
		if key.Matches(msg, a.keys.Edit) {
			a.editing = true
			a.status = ""
			return a, a.inputs[a.focus].Focus()
		}
	case wizard.StepMembers:
		switch {
		case key.Matches(msg, a.keys.Campus):
			a.cycleCampus()
		case key.Matches(msg, a.keys.Toggle):
			a.toggleMember()
		}
	case wizard.StepFunctions:
		switch {
		case key.Matches(msg, a.keys.Function):
			a.cycleFunction()
		case key.Matches(msg, a.keys.Confirm):
			if a.draft.Members.CompletionStats().Total == 0 {
				a.status = "Select at least one member first."
				break
			}
			nav.MarkComplete(wizard.StepFunctions)
			a.status = "Functions confirmed."
		}
	}
	return a, nil
}

func (a *App) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		a.inputs[a.focus].Blur()
		a.editing = false
		return a, nil
	case tea.KeyUp, tea.KeyDown, tea.KeyEnter:
		a.inputs[a.focus].Blur()
		switch {
		case msg.Type == tea.KeyUp:
			a.focus = (a.focus + inputCount - 1) % inputCount
		case msg.Type == tea.KeyEnter && a.focus == inputCount-1:
			a.editing = false
			return a, nil
		default:
			a.focus = (a.focus + 1) % inputCount
		}
		return a, a.inputs[a.focus].Focus()
	}

	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	a.applyInputs()
	return a, cmd
}

// applyInputs copies the form into the draft and refreshes completion.
func (a *App) applyInputs() {
	a.draft.Fields = submission.Fields{
		Title:       a.inputs[inputTitle].Value(),
		Description: a.inputs[inputDescription].Value(),
		Location:    a.inputs[inputLocation].Value(),
	}
	a.draft.Date = strings.TrimSpace(a.inputs[inputDate].Value())
	a.draft.Time = strings.TrimSpace(a.inputs[inputTime].Value())
	a.draft.SyncCompletion()
}

func (a *App) moved(ok bool) {
	if !ok {
		a.status = "Complete the earlier steps first."
		return
	}
	a.cursor = 0
	a.status = ""
}

// pool is the member list of the members step.
func (a *App) pool() []models.Member {
	return candidates.Filter(a.roster, a.draft.CampusFilter)
}

func (a *App) rowCount() int {
	switch a.draft.Nav.Current() {
	case wizard.StepMembers:
		return len(a.pool())
	case wizard.StepFunctions:
		return len(a.draft.Members.Selected())
	}
	return 0
}

// campusOptions is the cycle order of the campus filter.
func (a *App) campusOptions() []string {
	out := make([]string, 0, len(a.campuses)+1)
	out = append(out, candidates.AllCampuses)
	for _, c := range a.campuses {
		out = append(out, strconv.FormatInt(c.ID, 10))
	}
	return out
}

func (a *App) cycleCampus() {
	opts := a.campusOptions()
	pos := 0
	if !candidates.IsAll(a.draft.CampusFilter) {
		pos = slices.Index(opts, strings.TrimSpace(a.draft.CampusFilter))
	}
	a.draft.CampusFilter = opts[(pos+1)%len(opts)]
	a.cursor = 0
}

func (a *App) toggleMember() {
	pool := a.pool()
	if a.cursor >= len(pool) {
		return
	}
	a.draft.Members.ToggleMember(pool[a.cursor].ID)
	a.draft.SyncCompletion()
}

// cycleFunction steps the focused member through no function, then each
// catalog function in turn, then back to no function.
func (a *App) cycleFunction() {
	selected := a.draft.Members.Selected()
	if a.cursor >= len(selected) || len(a.catalog) == 0 {
		return
	}
	id := selected[a.cursor]

	next := 0
	if cur := a.draft.Members.Functions(id); len(cur) > 0 {
		at := slices.IndexFunc(a.catalog, func(f models.Function) bool { return f.ID == cur[0] })
		next = at + 1
	}

	var ids []int64
	if next < len(a.catalog) {
		ids = []int64{a.catalog[next].ID}
	}
	if err := a.draft.Members.SetFunctions(id, ids); err != nil {
		a.status = err.Error()
		return
	}
	a.draft.SyncCompletion()
}

// startSubmit prepares the draft on the Update loop and hands only the
// resulting submission to the backend.
func (a *App) startSubmit() (tea.Model, tea.Cmd) {
	sub, dropped, err := a.draft.Prepare(a.rosterIDs())
	if len(dropped) > 0 {
		a.log.Info("pruned members not on roster", zap.Int64s("member_ids", dropped))
	}

	var verr *submission.ValidationError
	switch {
	case errors.Is(err, scheduledraft.ErrNotOnLastStep):
		a.status = "Submit from the last step."
		return a, nil
	case errors.As(err, &verr):
		a.cursor = 0
		a.status = validationMessage(verr)
		a.log.Info("submit rejected", zap.String("error", verr.Code()), zap.String("step", verr.Step))
		return a, nil
	case err != nil:
		a.status = "Saving failed: " + err.Error()
		a.log.Error("prepare submission failed", zap.Error(err))
		return a, nil
	}

	a.submitting = true
	a.status = "Saving schedule..."
	return a, a.submit(sub)
}

func (a *App) rosterIDs() []int64 {
	ids := make([]int64, 0, len(a.roster))
	for _, m := range a.roster {
		ids = append(ids, m.ID)
	}
	return ids
}

func (a *App) handleSubmitFinished(msg submitFinishedMsg) (tea.Model, tea.Cmd) {
	a.submitting = false

	var stale *StaleMembersError
	switch {
	case errors.As(msg.err, &stale):
		// The roster changed under us; refresh it locally and let the
		// operator review before submitting again.
		a.roster = slices.DeleteFunc(slices.Clone(a.roster), func(m models.Member) bool {
			return slices.Contains(stale.IDs, m.ID)
		})
		a.draft.Members.Prune(a.rosterIDs())
		a.draft.SyncCompletion()
		a.cursor = 0
		a.status = fmt.Sprintf("%d selected members left the roster. Review and submit again.", len(stale.IDs))
		a.log.Warn("submit rejected", zap.Int64s("member_ids", stale.IDs))
		return a, nil
	case errors.Is(msg.err, ErrUnknownFunctions):
		a.status = "Some assigned functions no longer exist. Reassign them and submit again."
		a.log.Warn("submit rejected", zap.Error(msg.err))
		return a, nil
	case msg.err != nil:
		a.status = "Saving failed: " + msg.err.Error()
		a.log.Error("submit failed", zap.Error(msg.err))
		return a, nil
	}

	a.submitted = true
	verb := "updated"
	if msg.created {
		verb = "created"
	}
	a.status = fmt.Sprintf("Schedule %s (%s). Press q to quit.", verb, msg.schedule.ID.Hex())
	a.log.Info("schedule submitted",
		zap.String("schedule_id", msg.schedule.ID.Hex()),
		zap.Bool("created", msg.created),
		zap.Int("members", len(msg.schedule.Members)))
	return a, nil
}

func validationMessage(verr *submission.ValidationError) string {
	if len(verr.Fields) == 0 {
		return strings.ReplaceAll(verr.Code(), "_", " ")
	}
	parts := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		parts = append(parts, f.Error)
	}
	return strings.Join(parts, "; ")
}
