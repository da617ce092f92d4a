package submission_test

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/servehub/internal/app/system/submission"
	"github.com/dalemusser/servehub/internal/app/system/wizard"
)

var day = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

func validFields() submission.Fields {
	return submission.Fields{
		Title:       "Sunday service",
		Description: "Main hall",
		Location:    "Campus North",
	}
}

func TestCompose_GateOrder(t *testing.T) {
	tests := []struct {
		name     string
		fields   submission.Fields
		date     time.Time
		clock    string
		selected []int64
		want     error
		step     string
	}{
		{"missing date wins over everything", submission.Fields{}, time.Time{}, "", nil, submission.ErrMissingDate, wizard.StepDetails},
		{"missing date with all else valid", validFields(), time.Time{}, "09:00", []int64{1}, submission.ErrMissingDate, wizard.StepDetails},
		{"missing time", validFields(), day, "  ", []int64{1}, submission.ErrMissingTime, wizard.StepDetails},
		{"missing time before members", submission.Fields{}, day, "", nil, submission.ErrMissingTime, wizard.StepDetails},
		{"no members after date and time", submission.Fields{}, day, "09:00", nil, submission.ErrNoMembersSelected, wizard.StepMembers},
		{"invalid fields last", submission.Fields{Title: "ab"}, day, "09:00", []int64{1}, submission.ErrInvalidFields, wizard.StepDetails},
		{"bad clock is a field error", validFields(), day, "9am", []int64{1}, submission.ErrInvalidFields, wizard.StepDetails},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := submission.Compose(tt.fields, tt.date, tt.clock, tt.selected, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			var verr *submission.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err is %T, want *ValidationError", err)
			}
			if verr.Step != tt.step {
				t.Errorf("Step = %q, want %q", verr.Step, tt.step)
			}
		})
	}
}

func TestCompose_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields submission.Fields
		clock  string
		want   []string
	}{
		{"title too short after trim", submission.Fields{Title: "  ab  ", Location: "Hall"}, "09:00", []string{"title"}},
		{"missing location", submission.Fields{Title: "Service"}, "09:00", []string{"location"}},
		{"both", submission.Fields{}, "09:00", []string{"title", "location"}},
		{"long description", submission.Fields{Title: "Service", Location: "Hall", Description: strings.Repeat("x", 2001)}, "09:00", []string{"description"}},
		{"clock out of range", submission.Fields{Title: "Service", Location: "Hall"}, "25:00", []string{"time"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := submission.Compose(tt.fields, day, tt.clock, []int64{1}, nil)
			var verr *submission.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			var got []string
			for _, f := range verr.Fields {
				if f.Error == "" {
					t.Errorf("field %q has no message", f.Field)
				}
				got = append(got, f.Field)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("fields = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompose_TitleCountsRunes(t *testing.T) {
	f := submission.Fields{Title: "Ñoé", Location: "Sala"}
	if _, err := submission.Compose(f, day, "18:30", []int64{1}, nil); err != nil {
		t.Fatalf("3-rune title rejected: %v", err)
	}
}

func TestCompose_Success(t *testing.T) {
	selected := []int64{3, 1}
	assignments := map[int64][]int64{3: {2, 5}}
	f := validFields()
	f.Title = "  Sunday service "
	f.Description = `<p>Bring <b>water</b></p><script>alert(1)</script>`

	p, err := submission.Compose(f, day, "09:30", selected, assignments)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if p.Date != "2026-03-08" {
		t.Errorf("Date = %q", p.Date)
	}
	if p.Time != "09:30" {
		t.Errorf("Time = %q", p.Time)
	}
	if p.Title != "Sunday service" {
		t.Errorf("Title = %q", p.Title)
	}
	if strings.Contains(p.Description, "script") {
		t.Errorf("Description not sanitized: %q", p.Description)
	}
	if !slices.Equal(p.MemberIDs, []int64{3, 1}) {
		t.Errorf("MemberIDs = %v", p.MemberIDs)
	}
	if !slices.Equal(p.MemberFunctions[3], []int64{2, 5}) || len(p.MemberFunctions) != 1 {
		t.Errorf("MemberFunctions = %v", p.MemberFunctions)
	}
}

func TestCompose_PayloadIsDetached(t *testing.T) {
	selected := []int64{1, 2}
	assignments := map[int64][]int64{1: {7}}

	p, err := submission.Compose(validFields(), day, "10:00", selected, assignments)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	selected[0] = 99
	assignments[1][0] = 99
	assignments[2] = []int64{8}

	if p.MemberIDs[0] != 1 {
		t.Error("MemberIDs aliases the selection")
	}
	if p.MemberFunctions[1][0] != 7 {
		t.Error("MemberFunctions aliases the assignment map")
	}
	if _, ok := p.MemberFunctions[2]; ok {
		t.Error("MemberFunctions shares the map")
	}
}

func TestPayload_Schedule(t *testing.T) {
	p := submission.Payload{
		Title:           "Service",
		Date:            "2026-03-08",
		Time:            "09:00",
		MemberIDs:       []int64{4, 2},
		MemberFunctions: map[int64][]int64{2: {1, 3}},
	}
	s := p.Schedule()
	if len(s.Members) != 2 || s.Members[0].UserID != 4 || s.Members[1].UserID != 2 {
		t.Fatalf("members = %+v", s.Members)
	}
	if len(s.Members[0].Functions) != 0 || s.Members[0].Functions == nil {
		t.Errorf("member 4 functions = %#v, want empty list", s.Members[0].Functions)
	}
	if !slices.Equal(s.Members[1].FunctionIDs(), []int64{1, 3}) {
		t.Errorf("member 2 functions = %v", s.Members[1].FunctionIDs())
	}
}

func TestValidationError_Code(t *testing.T) {
	_, err := submission.Compose(validFields(), time.Time{}, "", nil, nil)
	var verr *submission.ValidationError
	if !errors.As(err, &verr) {
		t.Fatal("expected *ValidationError")
	}
	if verr.Code() != "missing_date" {
		t.Errorf("Code() = %q", verr.Code())
	}
}

func TestParseDate(t *testing.T) {
	d, err := submission.ParseDate(" 2026-03-08 ")
	if err != nil || !d.Equal(day) {
		t.Errorf("ParseDate = %v, %v", d, err)
	}
	if d, err := submission.ParseDate(""); err != nil || !d.IsZero() {
		t.Errorf("blank ParseDate = %v, %v", d, err)
	}
	if _, err := submission.ParseDate("08/03/2026"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestValidClock(t *testing.T) {
	for s, want := range map[string]bool{"00:00": true, "23:59": true, "9:00": false, "24:00": false, "12:60": false, "": false} {
		if got := submission.ValidClock(s); got != want {
			t.Errorf("ValidClock(%q) = %v, want %v", s, got, want)
		}
	}
}
