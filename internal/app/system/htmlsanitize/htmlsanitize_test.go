package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/servehub/internal/app/system/htmlsanitize"
)

func TestSanitize_Preserves(t *testing.T) {
	tests := []string{
		"",
		"Bring your own music stand.",
		"<p><strong>Choir</strong> meets at <em>8:45</em></p>",
		"<ul><li>Ushers at the doors</li><li>Sound in the booth</li></ul>",
		"<ol><li>Setup</li><li>Service</li></ol>",
	}
	for _, in := range tests {
		if got := htmlsanitize.Sanitize(in); got != in {
			t.Errorf("Sanitize(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestSanitize_Strips(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		absent string
		keep   string
	}{
		{"script", "<p>Main hall</p><script>alert('xss')</script>", "script", "Main hall"},
		{"onclick", `<button onclick="alert('xss')">Join</button>`, "onclick", ""},
		{"onerror", `<img src="x" onerror="alert('xss')">`, "onerror", ""},
		{"javascript href", `<a href="javascript:alert('xss')">Map</a>`, "javascript:", "Map"},
		{"iframe", `<p>Parking info</p><iframe src="https://evil.example"></iframe>`, "iframe", "Parking info"},
		{"form", `<form action="/x"><input name="d"><button>Go</button></form>`, "<input", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := htmlsanitize.Sanitize(tt.input)
			if strings.Contains(got, tt.absent) {
				t.Errorf("Sanitize(%q) = %q, still contains %q", tt.input, got, tt.absent)
			}
			if tt.keep != "" && !strings.Contains(got, tt.keep) {
				t.Errorf("Sanitize(%q) = %q, lost %q", tt.input, got, tt.keep)
			}
		})
	}
}

func TestSanitize_KeepsSafeLinks(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="https://example.com/map">Map</a>`)
	// bluemonday adds rel="nofollow".
	if !strings.Contains(got, "https://example.com/map") || !strings.Contains(got, "nofollow") {
		t.Errorf("unexpected link rendering %q", got)
	}
}
