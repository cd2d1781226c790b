package hero

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content    string
	Font       *TTFFont
	Align      TextAlign
	WrapWidth  float64 // 0 = no wrapping
	Color      Color
	LineHeight float64 // override; 0 = use Font.LineHeight()

	// Cached layout (unexported)
	layoutDirty bool
	measuredW   float64
	measuredH   float64
	lines       []textLine

	// Render cache (unexported)
	image      *ebiten.Image
	imageDirty bool
}

// textLine is one laid-out line and its advance width.
type textLine struct {
	text  string
	width float64
}

// SetContent replaces the text and invalidates the cached layout.
func (tb *TextBlock) SetContent(s string) {
	if tb.Content == s {
		return
	}
	tb.Content = s
	tb.layoutDirty = true
}

// SetWrapWidth changes the wrap width and invalidates the cached layout.
func (tb *TextBlock) SetWrapWidth(w float64) {
	if tb.WrapWidth == w {
		return
	}
	tb.WrapWidth = w
	tb.layoutDirty = true
}

// Invalidate forces a re-layout on the next draw. Call after changing Font,
// Align, Color or LineHeight directly.
func (tb *TextBlock) Invalidate() {
	tb.layoutDirty = true
}

// lineHeight returns the effective line height for this text block.
func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// layout recomputes line breaks if dirty. Returns the cached lines.
func (tb *TextBlock) layout() []textLine {
	if !tb.layoutDirty {
		return tb.lines
	}
	tb.layoutDirty = false
	tb.imageDirty = true
	tb.lines = tb.lines[:0]
	tb.measuredW, tb.measuredH = 0, 0

	if tb.Font == nil || tb.Content == "" {
		return tb.lines
	}

	for _, para := range strings.Split(tb.Content, "\n") {
		tb.wrapParagraph(para)
	}

	for _, l := range tb.lines {
		tb.measuredW = max(tb.measuredW, l.width)
	}
	tb.measuredH = float64(len(tb.lines)) * tb.lineHeight()
	return tb.lines
}

// wrapParagraph greedily breaks one paragraph on spaces. A single word wider
// than WrapWidth gets a line of its own.
func (tb *TextBlock) wrapParagraph(para string) {
	f := tb.Font
	if tb.WrapWidth <= 0 {
		w, _ := f.MeasureString(para)
		tb.lines = append(tb.lines, textLine{text: para, width: w})
		return
	}
	words := strings.Fields(para)
	if len(words) == 0 {
		tb.lines = append(tb.lines, textLine{})
		return
	}
	cur := words[0]
	curW, _ := f.MeasureString(cur)
	for _, word := range words[1:] {
		candidate := cur + " " + word
		w, _ := f.MeasureString(candidate)
		if w > tb.WrapWidth {
			tb.lines = append(tb.lines, textLine{text: cur, width: curW})
			cur = word
			curW, _ = f.MeasureString(word)
			continue
		}
		cur, curW = candidate, w
	}
	tb.lines = append(tb.lines, textLine{text: cur, width: curW})
}

// render returns the cached text image, re-rendering it when the layout
// changed. Returns nil for empty text.
func (tb *TextBlock) render() *ebiten.Image {
	lines := tb.layout()
	if tb.measuredW == 0 || tb.measuredH == 0 {
		return nil
	}
	if !tb.imageDirty && tb.image != nil {
		return tb.image
	}
	tb.imageDirty = false

	w := int(tb.measuredW) + 1
	h := int(tb.measuredH) + 1
	if tb.image != nil {
		b := tb.image.Bounds()
		if b.Dx() != w || b.Dy() != h {
			tb.image.Deallocate()
			tb.image = ebiten.NewImage(w, h)
		} else {
			tb.image.Clear()
		}
	} else {
		tb.image = ebiten.NewImage(w, h)
	}

	lh := tb.lineHeight()
	for i, l := range lines {
		var x float64
		switch tb.Align {
		case TextAlignCenter:
			x = (tb.measuredW - l.width) / 2
		case TextAlignRight:
			x = tb.measuredW - l.width
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, float64(i)*lh)
		op.ColorScale.ScaleWithColor(tb.Color)
		text.Draw(tb.image, l.text, tb.Font.face, op)
	}
	return tb.image
}

// release frees the cached image.
func (tb *TextBlock) release() {
	if tb.image != nil {
		tb.image.Deallocate()
		tb.image = nil
	}
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("hero: failed to parse TTF data: %w", err)
	}
	return newTTFFont(source, size), nil
}

func newTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}
}

// WithSize returns a font sharing this font's source at a different size.
func (f *TTFFont) WithSize(size float64) *TTFFont {
	return newTTFFont(f.source, size)
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}
