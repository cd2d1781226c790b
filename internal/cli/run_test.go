package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/hero"
	"github.com/phanxgames/hero/internal/content"
)

func TestSameShell(t *testing.T) {
	base := func() *content.Document {
		return &content.Document{
			Images:   []string{"a.png"},
			RichText: "<p>hi</p>",
			Sections: []float64{1, 1},
			Tracker:  content.Tracker{Mode: "debounced", Debounce: 50 * time.Millisecond},
			Slots:    []content.Slot{{Top: 1, Left: 2}},
			Palette:  content.Palette{Letters: []string{"N"}},
		}
	}

	tests := []struct {
		name   string
		mutate func(d *content.Document)
		want   bool
	}{
		{"identical", func(d *content.Document) {}, true},
		{"images only", func(d *content.Document) { d.Images = []string{"b.png", "c.png"} }, true},
		{"sections only", func(d *content.Document) { d.Sections = []float64{2} }, true},
		{"rich text", func(d *content.Document) { d.RichText = "<p>bye</p>" }, false},
		{"embed", func(d *content.Document) { d.Embed.Caption = "new" }, false},
		{"tracker", func(d *content.Document) { d.Tracker.Mode = "immediate" }, false},
		{"slots", func(d *content.Document) { d.Slots = nil }, false},
		{"palette", func(d *content.Document) { d.Palette.Letters = []string{"X"} }, false},
		{"blend", func(d *content.Document) { d.Blend = "add" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := base()
			tt.mutate(b)
			if got := sameShell(base(), b); got != tt.want {
				t.Errorf("sameShell = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSectionHeights(t *testing.T) {
	if got := sectionHeights(&content.Document{}); len(got) != 3 {
		t.Errorf("default heights = %v", got)
	}
	if got := sectionHeights(&content.Document{Sections: []float64{}}); len(got) != 0 {
		t.Errorf("explicit empty heights = %v", got)
	}
}

func TestStopWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{scene: hero.NewScene()}
	s.scene.SetUpdateFunc(s.stopWhen(ctx))

	if err := s.scene.Advance(time.Second / 60); err != nil {
		t.Fatalf("Advance before cancel = %v, want nil", err)
	}
	cancel()
	if err := s.scene.Advance(time.Second / 60); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Advance after cancel = %v, want ebiten.Termination", err)
	}
}

func TestStopWhenScriptDone(t *testing.T) {
	runner, err := hero.LoadTestScript([]byte(`{"steps":[{"action":"wait","frames":2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := &session{scene: hero.NewScene(), runner: runner}
	s.scene.SetTestRunner(runner)
	s.scene.SetUpdateFunc(s.stopWhen(context.Background()))

	var last error
	for i := 0; i < 10 && last == nil; i++ {
		last = s.scene.Advance(time.Second / 60)
	}
	if !runner.Done() {
		t.Fatal("script should have finished")
	}
	if !errors.Is(last, ebiten.Termination) {
		t.Errorf("update err = %v, want ebiten.Termination", last)
	}
}
