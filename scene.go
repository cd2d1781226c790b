package hero

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, the viewport, the
// scheduler, input state and render buffers.
//
// The tree has two fixed layers under the root: Page, which moves with the
// scroll offset, and Overlay, which stays pinned to the window.
type Scene struct {
	root    *Node
	page    *Node
	overlay *Node

	viewport *Viewport
	sched    *Scheduler
	logger   *log.Logger
	debug    bool

	// ClearColor fills the screen before drawing. Zero alpha skips the fill.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// Render state
	commands []RenderCommand
	sortBuf  []RenderCommand

	// Input and callbacks
	handlers    handlerRegistry
	updateFunc  func() error
	scrollStep  float64
	pollDevices bool

	// Scripted input and capture
	injectQueue     []syntheticScrollEvent
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene creates a scene with an 800×600 viewport. The Run loop resizes
// the viewport to the real window on the first layout.
func NewScene() *Scene {
	root := NewContainer("root")
	page := NewContainer("page")
	overlay := NewContainer("overlay")
	root.AddChild(page)
	root.AddChild(overlay)
	return &Scene{
		root:          root,
		page:          page,
		overlay:       overlay,
		viewport:      newViewport(800, 600),
		sched:         NewScheduler(),
		logger:        log.Default(),
		ScreenshotDir: "screenshots",
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:       make([]RenderCommand, 0, defaultCommandCap),
		scrollStep:    defaultScrollStep,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node { return s.root }

// Page returns the scrolling layer. Children use page coordinates.
func (s *Scene) Page() *Node { return s.page }

// Overlay returns the fixed layer. Children use window coordinates.
func (s *Scene) Overlay() *Node { return s.overlay }

// Viewport returns the scene's viewport.
func (s *Scene) Viewport() *Viewport { return s.viewport }

// Scheduler returns the scene's timer queue.
func (s *Scene) Scheduler() *Scheduler { return s.sched }

// Logger returns the scene logger.
func (s *Scene) Logger() *log.Logger { return s.logger }

// SetLogger replaces the scene logger. Nil restores log.Default().
func (s *Scene) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	s.logger = l
}

// SetUpdateFunc sets a callback that runs at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

// Update is one tick of the event loop at the Ebitengine tick rate.
func (s *Scene) Update() error {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return s.Advance(time.Second / time.Duration(tps))
}

// Advance runs one tick of dt: scripted and real input, the viewport, due
// timers, frame callbacks, then the update func. Every callback runs here,
// one after another, never concurrently.
func (s *Scene) Advance(dt time.Duration) error {
	fdt := float32(dt.Seconds())

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.processInjectedInput() {
		s.processInput()
	}

	scrolled, resized := s.viewport.update(fdt)
	if scrolled || resized {
		s.page.SetPosition(0, -s.viewport.ScrollY)
	}
	if resized {
		s.fireResize()
	}
	if scrolled || resized {
		s.fireScroll()
	}

	s.sched.Advance(dt)
	s.fireFrame(fdt)

	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Draw traverses the scene tree, emits render commands, sorts them, and
// submits them to the given screen image.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toNRGBA())
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.commands = s.commands[:0]
	treeOrder := 0
	s.traverse(s.root, identityTransform, 1.0, false, &treeOrder)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.mergeSort()

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submitCommands(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}
