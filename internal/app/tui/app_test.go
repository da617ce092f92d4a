package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dalemusser/servehub/internal/app/system/scheduledraft"
	"github.com/dalemusser/servehub/internal/app/system/wizard"
	"github.com/dalemusser/servehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBackend struct {
	roster    []models.Member
	campuses  []models.Campus
	functions []models.Function
	loadErr   error

	submitted *scheduledraft.Submission
	stored    models.Schedule
	submitErr error
}

func (f *fakeBackend) Roster(context.Context) ([]models.Member, error) {
	return f.roster, f.loadErr
}

func (f *fakeBackend) Campuses(context.Context) ([]models.Campus, error) {
	return f.campuses, nil
}

func (f *fakeBackend) Functions(context.Context) ([]models.Function, error) {
	return f.functions, nil
}

func (f *fakeBackend) Submit(_ context.Context, sub scheduledraft.Submission) (models.Schedule, bool, error) {
	f.submitted = &sub
	if f.submitErr != nil {
		return models.Schedule{}, false, f.submitErr
	}
	sch := sub.Payload.Schedule()
	sch.ID = primitive.NewObjectID()
	if sub.ScheduleID != nil {
		sch.ID = *sub.ScheduleID
	}
	f.stored = sch
	return sch, sub.ScheduleID == nil, nil
}

func int64p(v int64) *int64 { return &v }

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		roster: []models.Member{
			{ID: 1, FullName: "Ana", CampusID: int64p(10)},
			{ID: 2, FullName: "Ben", Campus: &models.CampusRef{ID: int64p(20)}},
			{ID: 3, FullName: "Cy"},
		},
		campuses: []models.Campus{
			{ID: 10, Name: "North"},
			{ID: 20, Name: "South"},
		},
		functions: []models.Function{
			{ID: 7, Name: "Usher"},
			{ID: 8, Name: "Sound"},
		},
	}
}

func newTestApp(t *testing.T, backend *fakeBackend) *App {
	t.Helper()
	reg, err := wizard.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry: %v", err)
	}
	app := NewApp(scheduledraft.New(reg), backend, nil)
	return runCommands(t, app, app.Init())
}

// runCommands feeds command results back into the model until no command
// remains. Batched and quit commands are not expected here.
func runCommands(t *testing.T, model tea.Model, cmd tea.Cmd) *App {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			break
		}
		model, cmd = model.Update(msg)
	}
	app, ok := model.(*App)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return app
}

func press(t *testing.T, app *App, keys ...string) *App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		model, cmd := app.Update(msg)
		app = model.(*App)
		// Only submit produces a message worth feeding back.
		if k == "s" {
			app = runCommands(t, app, cmd)
		}
	}
	return app
}

// fillDetails types a valid details form: title, description, location,
// date and time.
func fillDetails(t *testing.T, app *App) *App {
	t.Helper()
	return press(t, app,
		"enter", "Sunday Service",
		"enter",
		"enter", "Main Hall",
		"enter", "2026-11-01",
		"enter", "09:30",
		"enter",
	)
}

func TestLoad(t *testing.T) {
	app := newTestApp(t, newFakeBackend())
	if app.loading {
		t.Fatal("expected loading to finish")
	}
	if len(app.roster) != 3 || len(app.campuses) != 2 || len(app.catalog) != 2 {
		t.Errorf("loaded %d members, %d campuses, %d functions", len(app.roster), len(app.campuses), len(app.catalog))
	}
	if !strings.Contains(app.View(), "New schedule") {
		t.Error("view should show the heading")
	}
}

func TestLoad_Error(t *testing.T) {
	backend := newFakeBackend()
	backend.loadErr = errors.New("boom")
	app := newTestApp(t, backend)
	if app.err == nil || !strings.Contains(app.View(), "boom") {
		t.Error("expected load error to be shown")
	}
}

func TestNavigation_Gated(t *testing.T) {
	app := newTestApp(t, newFakeBackend())

	app = press(t, app, "tab")
	if got := app.draft.Nav.Current(); got != wizard.StepDetails {
		t.Fatalf("tab moved to %q with details incomplete", got)
	}
	if app.status == "" {
		t.Error("expected a gated status message")
	}

	app = press(t, app, "3")
	if got := app.draft.Nav.Current(); got != wizard.StepDetails {
		t.Fatalf("jump moved to %q with details incomplete", got)
	}

	app = fillDetails(t, app)
	if app.editing {
		t.Fatal("expected editing to end after the last field")
	}
	if !app.draft.Nav.IsComplete(wizard.StepDetails) {
		t.Fatalf("details not complete: %+v date=%q time=%q", app.draft.Fields, app.draft.Date, app.draft.Time)
	}

	app = press(t, app, "tab")
	if got := app.draft.Nav.Current(); got != wizard.StepMembers {
		t.Fatalf("current = %q, want members", got)
	}
	app = press(t, app, "3")
	if got := app.draft.Nav.Current(); got != wizard.StepMembers {
		t.Errorf("functions should stay gated with nobody selected, got %q", got)
	}
	app = press(t, app, "shift+tab")
	if got := app.draft.Nav.Current(); got != wizard.StepDetails {
		t.Errorf("current = %q, want details", got)
	}
}

func TestEditing_KeysTypeIntoFields(t *testing.T) {
	app := newTestApp(t, newFakeBackend())

	// While editing, q and digits are text, not commands.
	app = press(t, app, "enter", "q1", "esc")
	if app.draft.Fields.Title != "q1" {
		t.Errorf("title = %q, want q1", app.draft.Fields.Title)
	}
	if app.draft.Nav.Current() != wizard.StepDetails {
		t.Error("digits typed in a field must not navigate")
	}
}

func TestMembers_CampusCycleAndToggle(t *testing.T) {
	app := newTestApp(t, newFakeBackend())
	app = fillDetails(t, app)
	app = press(t, app, "tab")

	if n := len(app.pool()); n != 3 {
		t.Fatalf("pool under all = %d, want 3", n)
	}

	app = press(t, app, "c")
	if app.draft.CampusFilter != "10" || len(app.pool()) != 1 || app.pool()[0].ID != 1 {
		t.Fatalf("after c: filter=%q pool=%v", app.draft.CampusFilter, app.pool())
	}
	app = press(t, app, "c")
	if app.draft.CampusFilter != "20" || len(app.pool()) != 1 || app.pool()[0].ID != 2 {
		t.Fatalf("nested campus: filter=%q pool=%v", app.draft.CampusFilter, app.pool())
	}
	app = press(t, app, " ")
	if !app.draft.Members.IsSelected(2) {
		t.Fatal("expected member 2 selected")
	}
	app = press(t, app, "c")
	if app.draft.CampusFilter != "all" {
		t.Fatalf("filter = %q, want all", app.draft.CampusFilter)
	}

	app = press(t, app, "down", "down", " ")
	if !app.draft.Members.IsSelected(3) {
		t.Fatal("expected member 3 selected")
	}
	if !app.draft.Nav.IsComplete(wizard.StepMembers) {
		t.Error("members should be complete")
	}
	if got := app.draft.Members.Selected(); len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("selected = %v, want [2 3]", got)
	}
}

func TestFunctions_CycleAndConfirm(t *testing.T) {
	app := newTestApp(t, newFakeBackend())
	app = fillDetails(t, app)
	app = press(t, app, "tab", " ", "down", " ", "tab")
	if got := app.draft.Nav.Current(); got != wizard.StepFunctions {
		t.Fatalf("current = %q, want functions", got)
	}

	app = press(t, app, "f")
	if got := app.draft.Members.Functions(1); len(got) != 1 || got[0] != 7 {
		t.Fatalf("functions(1) = %v, want [7]", got)
	}
	app = press(t, app, "f")
	if got := app.draft.Members.Functions(1); len(got) != 1 || got[0] != 8 {
		t.Fatalf("functions(1) = %v, want [8]", got)
	}
	app = press(t, app, "f")
	if got := app.draft.Members.Functions(1); len(got) != 0 {
		t.Fatalf("functions(1) = %v, want none", got)
	}
	if app.draft.Nav.IsComplete(wizard.StepFunctions) {
		t.Fatal("functions should not be complete yet")
	}

	app = press(t, app, "enter")
	if !app.draft.Nav.IsComplete(wizard.StepFunctions) {
		t.Error("enter should confirm the functions step")
	}
	if !strings.Contains(app.View(), "no specific function") {
		t.Error("view should list members without a function")
	}
}

func TestSubmit(t *testing.T) {
	backend := newFakeBackend()
	app := newTestApp(t, backend)
	app = fillDetails(t, app)
	app = press(t, app, "tab", " ", "tab", "f", "s")

	if backend.submitted == nil {
		t.Fatal("expected Submit to be called")
	}
	if !app.submitted {
		t.Fatalf("expected submitted, status %q", app.status)
	}
	if !strings.Contains(app.status, "created") {
		t.Errorf("status = %q", app.status)
	}
}

func TestSubmit_OnlyFromLastStep(t *testing.T) {
	backend := newFakeBackend()
	app := newTestApp(t, backend)
	app = press(t, app, "s")
	if backend.submitted != nil {
		t.Error("submit must not run before the last step")
	}
}

func TestSubmit_ValidationRoutesBack(t *testing.T) {
	backend := newFakeBackend()
	app := newTestApp(t, backend)
	app = fillDetails(t, app)
	app = press(t, app, "tab", " ", "tab")

	// Member 1 leaves the roster after being assigned.
	app.roster = app.roster[1:]
	app = press(t, app, "s")

	if backend.submitted != nil {
		t.Fatal("backend must not see a submission that fails to compose")
	}
	if app.submitted {
		t.Fatal("submit should have failed")
	}
	if got := app.draft.Nav.Current(); got != wizard.StepMembers {
		t.Errorf("current = %q, want members", got)
	}
	if app.draft.Members.IsSelected(1) {
		t.Error("removed member should be pruned")
	}
	if !strings.Contains(app.status, "no members selected") {
		t.Errorf("status = %q", app.status)
	}
}

func TestSubmit_StaleMembers(t *testing.T) {
	backend := newFakeBackend()
	backend.submitErr = &StaleMembersError{IDs: []int64{1}}
	app := newTestApp(t, backend)
	app = fillDetails(t, app)
	app = press(t, app, "tab", " ", "down", " ", "tab", "s")

	if app.submitted {
		t.Fatal("submit should have failed")
	}
	if app.draft.Members.IsSelected(1) || !app.draft.Members.IsSelected(2) {
		t.Errorf("selected = %v, want [2]", app.draft.Members.Selected())
	}
	if len(app.roster) != 2 {
		t.Errorf("roster has %d members, want 2", len(app.roster))
	}
	if !strings.Contains(app.status, "left the roster") {
		t.Errorf("status = %q", app.status)
	}
}

// The submit command runs on its own goroutine in a real program while the
// Update loop keeps rendering. Run with -race.
func TestSubmit_CommandSharesNoDraftState(t *testing.T) {
	backend := newFakeBackend()
	app := newTestApp(t, backend)
	app = fillDetails(t, app)
	app = press(t, app, "tab", " ", "tab", "f")

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	app = model.(*App)
	if cmd == nil || !app.submitting {
		t.Fatalf("expected a submit command, status %q", app.status)
	}

	done := make(chan tea.Msg)
	go func() { done <- cmd() }()

	var msg tea.Msg
	for msg == nil {
		select {
		case msg = <-done:
		default:
			_ = app.View()
			app.draft.Fields.Title = "Changed while saving"
			if err := app.draft.Members.SetFunctions(1, []int64{8}); err != nil {
				t.Fatalf("SetFunctions: %v", err)
			}
			app.draft.SyncCompletion()
		}
	}
	app = runCommands(t, app, func() tea.Msg { return msg })

	if !app.submitted {
		t.Fatalf("expected submitted, status %q", app.status)
	}
	if backend.stored.Title != "Sunday Service" {
		t.Errorf("stored title = %q, want the title at submit time", backend.stored.Title)
	}
	if m := backend.stored.Members; len(m) != 1 || len(m[0].Functions) != 1 || m[0].Functions[0].FunctionID != 7 {
		t.Errorf("stored members = %+v, want member 1 with function 7", backend.stored.Members)
	}
}

func TestSubmit_UnknownFunctions(t *testing.T) {
	backend := newFakeBackend()
	backend.submitErr = ErrUnknownFunctions
	app := newTestApp(t, backend)
	app = fillDetails(t, app)
	app = press(t, app, "tab", " ", "tab", "s")

	if app.submitted || !strings.Contains(app.status, "no longer exist") {
		t.Errorf("submitted=%v status=%q", app.submitted, app.status)
	}
}
