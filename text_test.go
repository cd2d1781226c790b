package hero

import (
	"math"
	"testing"
)

func loadTestFont(t *testing.T) *TTFFont {
	t.Helper()
	f, err := DefaultFont(20, false)
	if err != nil {
		t.Fatalf("DefaultFont: %v", err)
	}
	return f
}

// --- LoadTTFFont ---

func TestLoadTTFFont_InvalidData(t *testing.T) {
	_, err := LoadTTFFont([]byte("not a TTF file"), 16)
	if err == nil {
		t.Error("expected error for invalid TTF data, got nil")
	}
}

func TestDefaultFont(t *testing.T) {
	regular := loadTestFont(t)
	bold, err := DefaultFont(20, true)
	if err != nil {
		t.Fatal(err)
	}
	if regular.Size() != 20 || bold.Size() != 20 {
		t.Errorf("sizes = %v, %v, want 20", regular.Size(), bold.Size())
	}
	if regular.LineHeight() <= 0 {
		t.Errorf("LineHeight = %v, want > 0", regular.LineHeight())
	}
	rw, _ := regular.MeasureString("Studio")
	bw, _ := bold.MeasureString("Studio")
	if bw <= rw {
		t.Errorf("bold width %v should exceed regular width %v", bw, rw)
	}
}

func TestTTFFont_WithSize(t *testing.T) {
	f := loadTestFont(t)
	big := f.WithSize(40)
	if big.Size() != 40 {
		t.Errorf("Size = %v, want 40", big.Size())
	}
	w1, _ := f.MeasureString("N")
	w2, _ := big.MeasureString("N")
	if math.Abs(w2-2*w1) > 1 {
		t.Errorf("width at 40 = %v, want ~%v", w2, 2*w1)
	}
}

// --- Layout ---

func TestTextBlock_WordWrap(t *testing.T) {
	f := loadTestFont(t)
	w, _ := f.MeasureString("aaa bbb")

	tb := &TextBlock{
		Content:     "aaa bbb ccc",
		Font:        f,
		WrapWidth:   w + 0.5,
		layoutDirty: true,
	}

	lines := tb.layout()
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(lines))
	}
	if lines[0].text != "aaa bbb" || lines[1].text != "ccc" {
		t.Errorf("lines = %q, %q", lines[0].text, lines[1].text)
	}
	if math.Abs(tb.measuredH-2*f.LineHeight()) > 1e-9 {
		t.Errorf("measuredH = %v, want %v", tb.measuredH, 2*f.LineHeight())
	}
}

func TestTextBlock_LongWordOwnLine(t *testing.T) {
	f := loadTestFont(t)
	tb := &TextBlock{
		Content:     "a extraordinarily b",
		Font:        f,
		WrapWidth:   1,
		layoutDirty: true,
	}
	if lines := tb.layout(); len(lines) != 3 {
		t.Errorf("line count = %d, want 3", len(lines))
	}
}

func TestTextBlock_NoWrap_WhenZeroWrapWidth(t *testing.T) {
	f := loadTestFont(t)
	tb := &TextBlock{
		Content:     "a long line that never wraps",
		Font:        f,
		layoutDirty: true,
	}
	if lines := tb.layout(); len(lines) != 1 {
		t.Errorf("line count = %d, want 1 (no wrapping)", len(lines))
	}
}

func TestTextBlock_Newlines(t *testing.T) {
	f := loadTestFont(t)
	tb := &TextBlock{
		Content:     "one\n\nthree",
		Font:        f,
		WrapWidth:   500,
		layoutDirty: true,
	}
	if lines := tb.layout(); len(lines) != 3 {
		t.Errorf("line count = %d, want 3", len(lines))
	}
}

func TestTextBlock_LineHeightOverride(t *testing.T) {
	f := loadTestFont(t)
	tb := &TextBlock{Content: "x\ny", Font: f, LineHeight: 50, layoutDirty: true}
	tb.layout()
	if tb.measuredH != 100 {
		t.Errorf("measuredH = %v, want 100", tb.measuredH)
	}
}

func TestTextBlock_NoFont(t *testing.T) {
	tb := &TextBlock{Content: "hello", layoutDirty: true}
	if lines := tb.layout(); len(lines) != 0 {
		t.Errorf("line count = %d, want 0 without a font", len(lines))
	}
	if tb.render() != nil {
		t.Error("render without a font should return nil")
	}
}

// --- Layout caching ---

func TestTextBlock_LayoutCaching(t *testing.T) {
	f := loadTestFont(t)
	tb := &TextBlock{Content: "ABC", Font: f, layoutDirty: true}

	tb.layout()
	w1 := tb.measuredW
	if tb.layoutDirty {
		t.Error("layoutDirty should be false after layout()")
	}

	tb.SetContent("ABC")
	if tb.layoutDirty {
		t.Error("SetContent with the same text should not dirty the layout")
	}

	tb.SetContent("A")
	if !tb.layoutDirty {
		t.Error("SetContent should dirty the layout")
	}
	tb.layout()
	if tb.measuredW >= w1 {
		t.Errorf("measuredW = %v, want < %v after shortening", tb.measuredW, w1)
	}

	tb.SetWrapWidth(10)
	if !tb.layoutDirty {
		t.Error("SetWrapWidth should dirty the layout")
	}
	tb.layout()
	tb.Invalidate()
	if !tb.layoutDirty {
		t.Error("Invalidate should dirty the layout")
	}
}

func TestNodeSizeText(t *testing.T) {
	f := loadTestFont(t)
	n := NewText("t", "Hello", f)
	w, h := n.Size()
	fw, _ := f.MeasureString("Hello")
	if w != fw || h != f.LineHeight() {
		t.Errorf("Size = (%v, %v), want (%v, %v)", w, h, fw, f.LineHeight())
	}
}
