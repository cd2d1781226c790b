package content

import (
	"strings"
	"testing"
)

func TestRichTextRenderer(t *testing.T) {
	render := NewRichTextRenderer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "   ", ""},
		{"strong", "<p>Hello <strong>world</strong></p>", "Hello **world**"},
		{"heading", "<h2>Studio</h2>", "## Studio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := render(tt.in)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got != tt.want {
				t.Errorf("render(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRichTextRendererPlainText(t *testing.T) {
	got, err := NewRichTextRenderer()("just words")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "just words") {
		t.Errorf("got %q", got)
	}
}
