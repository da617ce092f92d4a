package wizard_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/servehub/internal/app/system/wizard"
)

func TestRegister_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name  string
		steps []string
	}{
		{"empty", nil},
		{"duplicate", []string{"details", "members", "details"}},
		{"blank", []string{"details", "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := wizard.Register(tt.steps...)
			if !errors.Is(err, wizard.ErrInvalidConfiguration) {
				t.Fatalf("Register(%v) error = %v, want ErrInvalidConfiguration", tt.steps, err)
			}
			if reg != nil {
				t.Error("expected nil registry on error")
			}
		})
	}
}

func TestRegistry_Lookups(t *testing.T) {
	reg, err := wizard.Register("details", "members", "functions")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
	if got := reg.IndexOf("members"); got != 1 {
		t.Errorf("IndexOf(members) = %d, want 1", got)
	}
	if got := reg.IndexOf("nope"); got != -1 {
		t.Errorf("IndexOf(nope) = %d, want -1", got)
	}

	if next, ok := reg.Next("details"); !ok || next != "members" {
		t.Errorf("Next(details) = %q, %v; want members, true", next, ok)
	}
	if _, ok := reg.Next("functions"); ok {
		t.Error("Next(functions) should report no next step")
	}
	if prev, ok := reg.Previous("functions"); !ok || prev != "members" {
		t.Errorf("Previous(functions) = %q, %v; want members, true", prev, ok)
	}
	if _, ok := reg.Previous("details"); ok {
		t.Error("Previous(details) should report no previous step")
	}
	if _, ok := reg.Next("nope"); ok {
		t.Error("Next(nope) should report no next step")
	}

	if !reg.IsFirst("details") || reg.IsFirst("members") {
		t.Error("IsFirst mismatch")
	}
	if !reg.IsLast("functions") || reg.IsLast("members") || reg.IsLast("nope") {
		t.Error("IsLast mismatch")
	}
}

func TestRegistry_StepsOrderAndTitles(t *testing.T) {
	reg, err := wizard.RegisterSteps([]wizard.Step{
		{Name: "details", Title: "Event details"},
		{Name: "members"},
	})
	if err != nil {
		t.Fatalf("RegisterSteps failed: %v", err)
	}

	steps := reg.Steps()
	if steps[0].Order != 0 || steps[1].Order != 1 {
		t.Errorf("orders = %d,%d; want 0,1", steps[0].Order, steps[1].Order)
	}
	if steps[0].Title != "Event details" {
		t.Errorf("title = %q, want %q", steps[0].Title, "Event details")
	}
	if steps[1].Title != "members" {
		t.Errorf("title fallback = %q, want %q", steps[1].Title, "members")
	}

	// Returned slice is a copy.
	steps[0].Name = "changed"
	if reg.First() != "details" {
		t.Error("mutating Steps() result changed the registry")
	}
}
