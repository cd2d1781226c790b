package hero

// Palette holds the fixed letter and color sequences the tracker maps a
// section index through.
//
// Letters cycle with period len(Letters). Colors follow the
// "first section is special" rule: index 0 gets First, every later index i
// gets Cycle[(i-1) mod len(Cycle)].
type Palette struct {
	Letters []string
	First   Color
	Cycle   []Color
}

// DefaultPalette spells N-E-S-T with the orange, blue, salmon, yellow
// accents, so sections 0..3 read the same as the four-step sequence and
// later sections keep cycling the last three.
func DefaultPalette() Palette {
	return Palette{
		Letters: []string{"N", "E", "S", "T"},
		First:   RGB(255, 106, 0),
		Cycle: []Color{
			RGB(38, 0, 255),
			RGB(255, 156, 130),
			RGB(253, 255, 1),
		},
	}
}

// Letter returns the letter for section index i. Negative indices map to 0.
func (p Palette) Letter(i int) string {
	if len(p.Letters) == 0 {
		return ""
	}
	if i < 0 {
		i = 0
	}
	return p.Letters[i%len(p.Letters)]
}

// Color returns the accent color for section index i. Negative indices map
// to 0.
func (p Palette) Color(i int) Color {
	if i <= 0 || len(p.Cycle) == 0 {
		return p.First
	}
	return p.Cycle[(i-1)%len(p.Cycle)]
}

// Display returns the letter/color pair for section index i.
func (p Palette) Display(i int) Display {
	if i < 0 {
		i = 0
	}
	return Display{Index: i, Letter: p.Letter(i), Color: p.Color(i)}
}

// Display is the derived letter/color pair shown for the active section.
type Display struct {
	Index  int
	Letter string
	Color  Color
}
