// Package content loads the hero document: images, intro text, embed block,
// section layout and tracker settings, from a TOML or YAML file.
package content

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/hero"
)

// ErrUnsupportedFormat is returned for files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("content: unsupported format")

// Format selects the document syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Document is the hero content file.
type Document struct {
	Title    string    `toml:"title" yaml:"title"`
	Window   Window    `toml:"window" yaml:"window"`
	Slice    Slice     `toml:"slice" yaml:"slice"`
	Images   []string  `toml:"images" yaml:"images"`
	RichText string    `toml:"rich_text" yaml:"rich_text"`
	Embed    Embed     `toml:"embed" yaml:"embed"`
	Sections []float64 `toml:"sections" yaml:"sections"` // heights below the hero, in screens
	Tracker  Tracker   `toml:"tracker" yaml:"tracker"`
	Slots    []Slot    `toml:"slots" yaml:"slots"`
	Palette  Palette   `toml:"palette" yaml:"palette"`
	Seed     uint64    `toml:"seed" yaml:"seed"`   // 0 = random
	Blend    string    `toml:"blend" yaml:"blend"` // normal | add | copy, for the background images

	// Revision identifies this load. Every Load stamps a fresh one, so a
	// reload always reads as a new image list.
	Revision string `toml:"-" yaml:"-"`
	// Dir is the directory relative image paths resolve against.
	Dir string `toml:"-" yaml:"-"`
}

// Window holds the window settings for `hero run`.
type Window struct {
	Title     string `toml:"title" yaml:"title"`
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	Resizable bool   `toml:"resizable" yaml:"resizable"`
}

// Slice carries the slice tags exposed on the hero container.
type Slice struct {
	Type      string `toml:"type" yaml:"type"`
	Variation string `toml:"variation" yaml:"variation"`
}

// Embed is the raw embed markup and its caption.
type Embed struct {
	HTML    string `toml:"html" yaml:"html"`
	Caption string `toml:"caption" yaml:"caption"`
}

// Tracker configures section tracking.
type Tracker struct {
	Mode      string        `toml:"mode" yaml:"mode"` // debounced | immediate
	Debounce  time.Duration `toml:"debounce" yaml:"debounce"`
	Threshold float64       `toml:"threshold" yaml:"threshold"`
}

// Slot is a catalog entry in percent of the hero area.
type Slot struct {
	Top  float64 `toml:"top" yaml:"top"`
	Left float64 `toml:"left" yaml:"left"`
}

// Palette overrides the letter and color sequences. Colors are "#rrggbb".
type Palette struct {
	Letters []string `toml:"letters" yaml:"letters"`
	First   string   `toml:"first" yaml:"first"`
	Cycle   []string `toml:"cycle" yaml:"cycle"`
}

// Load reads the document at path, choosing TOML or YAML by extension.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Dir = filepath.Dir(path)
	return doc, nil
}

// Parse decodes a document and fills defaults.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	doc.defaults()
	if err := doc.validate(); err != nil {
		return nil, err
	}
	doc.Revision = uuid.NewString()
	return &doc, nil
}

func (d *Document) defaults() {
	if d.Title == "" {
		d.Title = "hero"
	}
	if d.Window.Title == "" {
		d.Window.Title = d.Title
	}
	if d.Window.Width <= 0 {
		d.Window.Width = 1280
	}
	if d.Window.Height <= 0 {
		d.Window.Height = 720
	}
	if d.Slice.Type == "" {
		d.Slice.Type = "hero"
	}
	if d.Slice.Variation == "" {
		d.Slice.Variation = "default"
	}
	if d.Tracker.Mode == "" {
		d.Tracker.Mode = "debounced"
	}
	if d.Dir == "" {
		d.Dir = "."
	}
}

func (d *Document) validate() error {
	if _, err := d.trackMode(); err != nil {
		return err
	}
	for i, h := range d.Sections {
		if h < 0 {
			return fmt.Errorf("sections[%d]: negative height %v", i, h)
		}
	}
	for i, s := range d.Slots {
		if s.Top < 0 || s.Top > 100 || s.Left < 0 || s.Left > 100 {
			return fmt.Errorf("slots[%d]: offsets must be within 0..100", i)
		}
	}
	if _, err := d.palette(); err != nil {
		return err
	}
	if _, err := d.blendMode(); err != nil {
		return err
	}
	return nil
}

func (d *Document) blendMode() (hero.BlendMode, error) {
	switch strings.ToLower(d.Blend) {
	case "", "normal":
		return hero.BlendNormal, nil
	case "add":
		return hero.BlendAdd, nil
	case "copy":
		return hero.BlendNone, nil
	}
	return 0, fmt.Errorf("blend: unknown mode %q", d.Blend)
}

func (d *Document) trackMode() (hero.TrackMode, error) {
	switch strings.ToLower(d.Tracker.Mode) {
	case "debounced":
		return hero.ModeDebounced, nil
	case "immediate":
		return hero.ModeImmediate, nil
	}
	return 0, fmt.Errorf("tracker.mode: unknown mode %q", d.Tracker.Mode)
}

// palette returns the configured palette or nil when none is set.
func (d *Document) palette() (*hero.Palette, error) {
	p := d.Palette
	if len(p.Letters) == 0 && p.First == "" && len(p.Cycle) == 0 {
		return nil, nil
	}
	out := hero.DefaultPalette()
	if len(p.Letters) > 0 {
		out.Letters = p.Letters
	}
	if p.First != "" {
		c, err := ParseColor(p.First)
		if err != nil {
			return nil, fmt.Errorf("palette.first: %w", err)
		}
		out.First = c
	}
	if len(p.Cycle) > 0 {
		out.Cycle = make([]hero.Color, len(p.Cycle))
		for i, s := range p.Cycle {
			c, err := ParseColor(s)
			if err != nil {
				return nil, fmt.Errorf("palette.cycle[%d]: %w", i, err)
			}
			out.Cycle[i] = c
		}
	}
	return &out, nil
}

// ParseColor parses "#rrggbb".
func ParseColor(s string) (hero.Color, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || len(hex) != 6 {
		return hero.Color{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return hero.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return hero.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// ImageList returns the images as a hero.ImageList stamped with the
// document revision.
func (d *Document) ImageList() hero.ImageList {
	refs := make([]hero.ImageRef, len(d.Images))
	for i, p := range d.Images {
		refs[i] = hero.ImageRef(p)
	}
	return hero.ImageList{Revision: d.Revision, Images: refs}
}

// TrackerConfig converts the tracker settings.
func (d *Document) TrackerConfig() hero.TrackerConfig {
	mode, _ := d.trackMode() // validated in Parse
	return hero.TrackerConfig{
		Mode:      mode,
		Debounce:  d.Tracker.Debounce,
		Threshold: d.Tracker.Threshold,
	}
}

// SlotCatalog returns the configured slots, or nil for the default catalog.
func (d *Document) SlotCatalog() []hero.Slot {
	if len(d.Slots) == 0 {
		return nil
	}
	out := make([]hero.Slot, len(d.Slots))
	for i, s := range d.Slots {
		out[i] = hero.Slot{Top: s.Top, Left: s.Left}
	}
	return out
}

// ViewConfig builds the view configuration for this document. The resolver
// and rich-text renderer are supplied by the caller.
func (d *Document) ViewConfig() hero.ViewConfig {
	pal, _ := d.palette() // validated in Parse
	blend, _ := d.blendMode()
	var sections []float64
	if d.Sections != nil {
		sections = append([]float64{}, d.Sections...)
	}
	var rng *rand.Rand
	if d.Seed != 0 {
		rng = rand.New(rand.NewPCG(d.Seed, d.Seed))
	}
	return hero.ViewConfig{
		Slots:          d.SlotCatalog(),
		Rand:           rng,
		Palette:        pal,
		Tracker:        d.TrackerConfig(),
		SectionHeights: sections,
		Tags:           hero.SliceTags{SliceType: d.Slice.Type, Variation: d.Slice.Variation},
		RichText:       d.RichText,
		Embed:          hero.EmbedBlock{HTML: d.Embed.HTML, Caption: d.Embed.Caption},
		ImageBlend:     blend,
	}
}
