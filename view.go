package hero

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Element timing ranges. Durations are uniform in [minDuration,
// minDuration+durationSpread), delays in [0, maxDelay).
const (
	minDuration    = 6 * time.Second
	durationSpread = 4 * time.Second
	maxDelay       = 5 * time.Second

	defaultLetterSize = 220.0
	defaultTextSize   = 22.0
	letterFade        = 0.35 // seconds
)

// ErrMounted is returned by Mount when the view is already mounted.
var ErrMounted = errors.New("hero: view already mounted")

// ImageRef is an opaque handle for one background image. Only the
// configured ImageResolver interprets it.
type ImageRef string

// ImageList is the ordered image input of a view. Revision is its identity:
// a list with a new Revision resets allocation, a list with the same
// Revision only refreshes images in place.
type ImageList struct {
	Revision string
	Images   []ImageRef
}

// ImageResolver turns an ImageRef into a drawable image. A nil result draws
// a plain placeholder.
type ImageResolver interface {
	Resolve(ref ImageRef) *ebiten.Image
}

// ImageResolverFunc adapts a function to ImageResolver.
type ImageResolverFunc func(ref ImageRef) *ebiten.Image

// Resolve calls f(ref).
func (f ImageResolverFunc) Resolve(ref ImageRef) *ebiten.Image { return f(ref) }

// RichTextRenderer converts an opaque rich-text document into display text.
type RichTextRenderer func(doc string) (string, error)

// EmbedBlock is third-party markup shown verbatim with a caption.
type EmbedBlock struct {
	HTML    string
	Caption string
}

// SliceTags identify the hero container for styling and test hooks. The
// view stores them on the container node and never changes them.
type SliceTags struct {
	SliceType string
	Variation string
}

// ViewEventKind identifies a ViewEvent.
type ViewEventKind uint8

const (
	EventSectionCommitted ViewEventKind = iota // tracker committed a new display
	EventElementMoved                          // an element finished a cycle
	EventImagesReset                           // the image list changed identity
)

// String returns the event name.
func (k ViewEventKind) String() string {
	switch k {
	case EventSectionCommitted:
		return "section_committed"
	case EventElementMoved:
		return "element_moved"
	case EventImagesReset:
		return "images_reset"
	}
	return "unknown"
}

// ViewEvent is published to the configured EventSink. Fields not relevant to
// Kind are zero.
type ViewEvent struct {
	Kind     ViewEventKind
	Display  Display
	Element  int
	Slot     Slot
	Order    int
	Revision string
}

// EventSink receives view events from the update loop.
type EventSink interface {
	Publish(ev ViewEvent)
}

// ViewConfig configures a View. Zero values select defaults.
type ViewConfig struct {
	Slots   []Slot     // nil = DefaultSlots
	Rand    *rand.Rand // nil = randomly seeded
	Palette *Palette   // nil = DefaultPalette()
	Tracker TrackerConfig

	// SectionHeights lists the sections below the hero in viewport heights.
	// nil = three one-screen sections.
	SectionHeights []float64

	Tags             SliceTags
	RichText         string
	RichTextRenderer RichTextRenderer // nil shows RichText as is
	Embed            EmbedBlock
	Resolver         ImageResolver // nil draws placeholders
	ImageBlend       BlendMode     // compositing for the background images

	LetterFont *TTFFont // nil = bundled bold face
	TextFont   *TTFFont // nil = bundled regular face

	Logger *log.Logger // nil = scene logger
	Sink   EventSink
}

// View is the hero section: floating background elements, the section
// letter and the intro content, plus the sections below it that drive the
// letter through the tracker.
type View struct {
	scene   *Scene
	cfg     ViewConfig
	palette Palette
	rng     *rand.Rand
	alloc   *Allocator
	tracker *SectionTracker
	log     *log.Logger

	images   ImageList
	elements []*Element
	revision string
	seeded   bool

	container *Node
	bg        *Node
	intro     *Node
	embed     *Node
	caption   *Node
	letter    *Node
	letterTw  *TweenGroup
	shown     Display

	heroArea Rect
	mounted  bool
	releases []func()
}

// NewView creates an unmounted view on scene.
func NewView(scene *Scene, cfg ViewConfig) *View {
	if cfg.Slots == nil {
		cfg.Slots = DefaultSlots
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	p := DefaultPalette()
	if cfg.Palette != nil {
		p = *cfg.Palette
	}
	cfg.Tracker.Palette = &p
	if cfg.SectionHeights == nil {
		cfg.SectionHeights = []float64{1, 1, 1}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = scene.Logger()
	}
	return &View{
		scene:   scene,
		cfg:     cfg,
		palette: p,
		shown:   p.Display(0),
		rng:     cfg.Rand,
		alloc:   NewAllocator(cfg.Slots, cfg.Rand),
		log:     logger.WithPrefix("hero"),
	}
}

// Allocator returns the view's slot allocator.
func (v *View) Allocator() *Allocator { return v.alloc }

// Tracker returns the section tracker, or nil while unmounted.
func (v *View) Tracker() *SectionTracker { return v.tracker }

// Elements returns the live background elements in image-list order. The
// returned slice MUST NOT be mutated.
func (v *View) Elements() []*Element { return v.elements }

// Container returns the hero container node, or nil while unmounted. Its
// UserData holds the SliceTags.
func (v *View) Container() *Node { return v.container }

// Tags returns the slice tags.
func (v *View) Tags() SliceTags { return v.cfg.Tags }

// Letter returns the letter node, or nil while unmounted.
func (v *View) Letter() *Node { return v.letter }

// Mounted reports whether the view is mounted.
func (v *View) Mounted() bool { return v.mounted }

// Display returns the letter/color pair currently shown. It keeps its last
// value after Unmount.
func (v *View) Display() Display { return v.shown }

// HeroArea returns the hero rectangle in page coordinates.
func (v *View) HeroArea() Rect { return v.heroArea }

// deferRelease pushes a release onto the unmount stack.
func (v *View) deferRelease(fn func()) {
	v.releases = append(v.releases, fn)
}

// releaseAll runs the release stack in reverse order.
func (v *View) releaseAll() {
	for i := len(v.releases) - 1; i >= 0; i-- {
		v.releases[i]()
	}
	v.releases = v.releases[:0]
}

// Mount builds the view's nodes, subscribes to scroll, resize and frame
// events and seeds the elements from the current image list. If Mount
// fails, everything acquired so far is released.
func (v *View) Mount() (err error) {
	if v.mounted {
		return ErrMounted
	}
	defer func() {
		if err != nil {
			v.releaseAll()
		}
	}()

	letterFont, err := v.fontOr(v.cfg.LetterFont, defaultLetterSize, true)
	if err != nil {
		return err
	}
	textFont, err := v.fontOr(v.cfg.TextFont, defaultTextSize, false)
	if err != nil {
		return err
	}

	v.buildNodes(letterFont, textFont)

	v.tracker = NewSectionTracker(v.scene.Scheduler(), v.cfg.Tracker)
	v.tracker.OnChange(v.showDisplay)
	v.deferRelease(func() {
		v.tracker.Stop()
		v.tracker = nil
	})

	scroll := v.scene.OnScroll(func(ctx ScrollContext) {
		v.tracker.ObserveViewport(ctx.Viewport)
	})
	v.deferRelease(scroll.Remove)
	resize := v.scene.OnResize(func(ResizeContext) { v.layout() })
	v.deferRelease(resize.Remove)
	frame := v.scene.OnFrame(v.update)
	v.deferRelease(frame.Remove)

	v.deferRelease(v.clearElements)
	v.mounted = true
	v.deferRelease(func() { v.mounted = false })

	v.layout()
	v.seeded = false
	v.applyImages()
	v.tracker.ObserveViewport(v.scene.Viewport().Bounds())

	v.log.Debug("mounted", "images", len(v.images.Images), "sections", len(v.tracker.Sections()))
	return nil
}

// Unmount stops every listener and timer and removes the view's nodes.
// Observations arriving afterwards have no effect. Unmounting an unmounted
// view is a no-op.
func (v *View) Unmount() {
	if !v.mounted {
		return
	}
	v.releaseAll()
	v.log.Debug("unmounted")
}

func (v *View) fontOr(f *TTFFont, size float64, bold bool) (*TTFFont, error) {
	if f != nil {
		return f, nil
	}
	return DefaultFont(size, bold)
}

func (v *View) buildNodes(letterFont, textFont *TTFFont) {
	page := v.scene.Page()

	v.container = NewContainer("hero")
	v.container.UserData = v.cfg.Tags
	page.AddChild(v.container)

	v.bg = NewContainer("hero-backgrounds")
	v.container.AddChild(v.bg)

	v.intro = NewText("hero-intro", v.renderRichText(), textFont)
	v.intro.SetZIndex(1)
	v.container.AddChild(v.intro)

	v.embed = NewText("embed", v.cfg.Embed.HTML, textFont)
	v.embed.Alpha = 0.8
	page.AddChild(v.embed)
	v.caption = NewText("embed-caption", v.cfg.Embed.Caption, textFont)
	page.AddChild(v.caption)

	d := v.palette.Display(0)
	v.letter = NewText("hero-letter", d.Letter, letterFont)
	v.letter.Color = d.Color
	v.scene.Overlay().AddChild(v.letter)

	nodes := []*Node{v.container, v.embed, v.caption, v.letter}
	v.deferRelease(func() {
		for _, n := range nodes {
			n.Dispose()
		}
		v.container, v.bg, v.intro, v.embed, v.caption, v.letter = nil, nil, nil, nil, nil, nil
		v.letterTw = nil
	})
}

func (v *View) renderRichText() string {
	if v.cfg.RichTextRenderer == nil || v.cfg.RichText == "" {
		return v.cfg.RichText
	}
	out, err := v.cfg.RichTextRenderer(v.cfg.RichText)
	if err != nil {
		v.log.Warn("rich text render failed, showing source", "err", err)
		return v.cfg.RichText
	}
	return out
}

// layout places the hero, the sections and the fixed letter for the current
// viewport size and re-registers the sections with the tracker.
func (v *View) layout() {
	vp := v.scene.Viewport()
	w, h := vp.Width, vp.Height
	v.heroArea = Rect{X: 0, Y: 0, Width: w, Height: h}

	for _, e := range v.elements {
		e.SetArea(v.heroArea)
	}

	v.intro.TextBlock.SetWrapWidth(w * 0.5)
	v.intro.SetPosition(w*0.08, h*0.42)

	sections := make([]Section, 0, len(v.cfg.SectionHeights)+1)
	sections = append(sections, Section{Name: SectionName(0), Bounds: v.heroArea})
	for i, sh := range v.cfg.SectionHeights {
		y := sections[len(sections)-1].Bounds.Bottom()
		sections = append(sections, Section{
			Name:   SectionName(i + 1),
			Bounds: Rect{X: 0, Y: y, Width: w, Height: max(sh, 0) * h},
		})
	}
	v.tracker.SetSections(sections)
	vp.ContentHeight = sections[len(sections)-1].Bounds.Bottom()
	vp.clamp()

	// The embed sits in the section right below the hero, or under the
	// hero when there is none.
	ey := h
	if len(sections) > 1 {
		ey = sections[1].Bounds.Y
	}
	v.embed.TextBlock.SetWrapWidth(w * 0.8)
	v.embed.SetPosition(w*0.1, ey+h*0.15)
	_, eh := v.embed.Size()
	v.caption.TextBlock.SetWrapWidth(w * 0.8)
	v.caption.SetPosition(w*0.1, ey+h*0.15+eh+16)

	v.letter.SetPosition(w*0.06, h*0.04)
}

// SetSections replaces the section heights below the hero, in viewport
// heights, and re-runs layout when mounted.
func (v *View) SetSections(heights []float64) {
	v.cfg.SectionHeights = append([]float64(nil), heights...)
	if v.mounted {
		v.layout()
		v.tracker.ObserveViewport(v.scene.Viewport().Bounds())
	}
}

// SetImages replaces the image list. A new Revision resets allocation and
// redraws every element; the same Revision only swaps images in place.
// Before Mount the list is stored and applied on Mount.
func (v *View) SetImages(list ImageList) {
	v.images = ImageList{Revision: list.Revision, Images: append([]ImageRef(nil), list.Images...)}
	if v.mounted {
		v.applyImages()
	}
}

func (v *View) applyImages() {
	list := v.images
	if v.seeded && list.Revision == v.revision && len(list.Images) == len(v.elements) {
		for i, e := range v.elements {
			e.SetImage(v.resolve(list.Images[i]))
		}
		return
	}

	// Drop surplus elements first so their releases land before the reset.
	for len(v.elements) > len(list.Images) {
		last := len(v.elements) - 1
		v.elements[last].destroy()
		v.elements = v.elements[:last]
	}

	v.alloc.Reset()
	for i, ref := range list.Images {
		p := Placement{
			Slot:     v.alloc.Draw(),
			Duration: minDuration + time.Duration(v.rng.Int64N(int64(durationSpread))),
			Delay:    time.Duration(v.rng.Int64N(int64(maxDelay))),
			Order:    v.alloc.NextOrder(),
		}
		img := v.resolve(ref)
		if i < len(v.elements) {
			e := v.elements[i]
			e.SetImage(img)
			e.Sync(p)
			continue
		}
		e := newElement("hero-image-"+strconv.Itoa(i), img, v.alloc, v.scene.Scheduler(), v.heroArea, p)
		idx := i
		e.OnMove = func(e *Element) { v.elementMoved(idx, e) }
		e.node.BlendMode = v.cfg.ImageBlend
		v.bg.AddChild(e.node)
		v.elements = append(v.elements, e)
	}

	v.revision = list.Revision
	v.seeded = true
	v.log.Debug("images reset", "revision", list.Revision, "count", len(list.Images))
	v.publish(ViewEvent{Kind: EventImagesReset, Revision: list.Revision})
}

func (v *View) resolve(ref ImageRef) *ebiten.Image {
	if v.cfg.Resolver == nil {
		return nil
	}
	img := v.cfg.Resolver.Resolve(ref)
	if img == nil {
		v.log.Warn("image unresolved, using placeholder", "ref", string(ref))
	}
	return img
}

func (v *View) clearElements() {
	for _, e := range v.elements {
		e.destroy()
	}
	v.elements = v.elements[:0]
	v.alloc.Reset()
	v.seeded = false
}

func (v *View) elementMoved(idx int, e *Element) {
	v.publish(ViewEvent{Kind: EventElementMoved, Element: idx, Slot: e.slot, Order: e.order})
}

// showDisplay applies a committed display to the letter node.
func (v *View) showDisplay(d Display) {
	if v.letter == nil {
		return
	}
	v.shown = d
	v.letter.TextBlock.SetContent(d.Letter)
	v.letterTw = TweenColor(v.letter, d.Color, letterFade, ease.OutQuad)
	v.log.Debug("section committed", "index", d.Index, "letter", d.Letter, "color", d.Color.Hex())
	v.publish(ViewEvent{Kind: EventSectionCommitted, Display: d})
}

func (v *View) update(dt float32) {
	for _, e := range v.elements {
		e.update(dt)
	}
	v.letterTw.Update(dt)
}

func (v *View) publish(ev ViewEvent) {
	if v.cfg.Sink != nil {
		v.cfg.Sink.Publish(ev)
	}
}
