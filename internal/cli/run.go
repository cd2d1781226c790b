package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/hero"
	"github.com/phanxgames/hero/internal/content"
)

// runOptions holds the flags of the run command.
type runOptions struct {
	script    string
	shotsDir  string
	watch     bool
	interval  time.Duration
	debug     bool
	showFPS   bool
	resizable bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run <content-file>",
		Short: "Open a window showing the hero",
		Long: `Open a window showing the hero described by a TOML or YAML content file.

Scroll with the mouse wheel, arrow keys, Page Up/Down, Space, Home and End.
With --script the JSON test script drives the window and the process exits
once it finishes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHero(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.script, "script", "", "JSON test script to play")
	cmd.Flags().StringVar(&opts.shotsDir, "screenshots", "screenshots", "directory for script screenshots")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the content file when it changes")
	cmd.Flags().DurationVar(&opts.interval, "watch-interval", time.Second, "how often --watch checks the file")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log per-frame timings and panic on disposed-node use")
	cmd.Flags().BoolVar(&opts.showFPS, "fps", false, "show an FPS overlay")
	cmd.Flags().BoolVar(&opts.resizable, "resizable", false, "allow resizing the window")
	return cmd
}

// session is one running hero: the scene, the mounted view and the content
// it was built from.
type session struct {
	logger   *log.Logger
	path     string
	scene    *hero.Scene
	view     *hero.View
	resolver *content.Resolver
	doc      *content.Document
	runner   *hero.TestRunner
}

// newSession loads path and mounts a view on a fresh scene.
func newSession(logger *log.Logger, path string) (*session, error) {
	doc, err := content.Load(path)
	if err != nil {
		return nil, err
	}

	scene := hero.NewScene()
	scene.SetLogger(logger)
	scene.ClearColor = hero.RGB(14, 14, 18)

	s := &session{
		logger:   logger,
		path:     path,
		scene:    scene,
		resolver: content.NewResolver(doc.Dir, logger),
		doc:      doc,
	}
	scene.Viewport().Resize(float64(doc.Window.Width), float64(doc.Window.Height))

	s.view = hero.NewView(scene, s.viewConfig(doc))
	s.view.SetImages(doc.ImageList())
	if err := s.view.Mount(); err != nil {
		return nil, fmt.Errorf("mount hero: %w", err)
	}
	return s, nil
}

func (s *session) viewConfig(doc *content.Document) hero.ViewConfig {
	cfg := doc.ViewConfig()
	cfg.Resolver = s.resolver
	cfg.RichTextRenderer = content.NewRichTextRenderer()
	cfg.Logger = s.logger
	return cfg
}

// reload re-reads the content file. Image and section changes are applied
// to the mounted view; anything else rebuilds the view.
func (s *session) reload() error {
	doc, err := content.Load(s.path)
	if err != nil {
		return err
	}
	s.resolver.Forget()
	if sameShell(s.doc, doc) {
		s.view.SetSections(sectionHeights(doc))
		s.view.SetImages(doc.ImageList())
	} else {
		s.view.Unmount()
		s.view = hero.NewView(s.scene, s.viewConfig(doc))
		s.view.SetImages(doc.ImageList())
		if err := s.view.Mount(); err != nil {
			return fmt.Errorf("mount hero: %w", err)
		}
	}
	s.doc = doc
	s.logger.Info("content reloaded", "revision", doc.Revision, "images", len(doc.Images))
	return nil
}

// sameShell reports whether two documents differ only in images and
// section heights.
func sameShell(a, b *content.Document) bool {
	return a.RichText == b.RichText &&
		a.Embed == b.Embed &&
		a.Slice == b.Slice &&
		a.Tracker == b.Tracker &&
		a.Seed == b.Seed &&
		a.Blend == b.Blend &&
		slotsEqual(a.Slots, b.Slots) &&
		paletteEqual(a.Palette, b.Palette)
}

func slotsEqual(a, b []content.Slot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func paletteEqual(a, b content.Palette) bool {
	return a.First == b.First && stringsEqual(a.Letters, b.Letters) && stringsEqual(a.Cycle, b.Cycle)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sectionHeights(doc *content.Document) []float64 {
	if doc.Sections == nil {
		return []float64{1, 1, 1}
	}
	return doc.Sections
}

// watch polls the content file on the scene scheduler, so reloads run on
// the update loop between frames.
func (s *session) watch(interval time.Duration) error {
	w, err := content.NewWatcher(s.path)
	if err != nil {
		return err
	}
	s.scene.Scheduler().Every(interval, interval, func() {
		changed, err := w.Poll()
		if err != nil {
			s.logger.Warn("watch", "path", w.Path(), "err", err)
			return
		}
		if !changed {
			return
		}
		if err := s.reload(); err != nil {
			s.logger.Error("reload failed, keeping previous content", "err", err)
		}
	})
	s.logger.Debug("watching content", "path", w.Path(), "interval", interval)
	return nil
}

// attachScript plays a JSON test script. The run ends once it finishes.
func (s *session) attachScript(path, shotsDir string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	runner, err := hero.LoadTestScript(data)
	if err != nil {
		return err
	}
	s.scene.ScreenshotDir = shotsDir
	s.scene.SetTestRunner(runner)
	s.runner = runner
	return nil
}

// stopWhen returns the scene update func: it ends the run once ctx is
// cancelled or the attached script, if any, has finished.
func (s *session) stopWhen(ctx context.Context) func() error {
	return func() error {
		if ctx.Err() != nil {
			return ebiten.Termination
		}
		if s.runner != nil && s.runner.Done() {
			return ebiten.Termination
		}
		return nil
	}
}

func runHero(ctx context.Context, path string, opts runOptions) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	s, err := newSession(logger, path)
	if err != nil {
		return err
	}
	defer func() { s.view.Unmount() }()
	s.scene.SetDebugMode(opts.debug)

	if opts.watch {
		if err := s.watch(opts.interval); err != nil {
			return err
		}
	}
	if opts.script != "" {
		if err := s.attachScript(opts.script, opts.shotsDir); err != nil {
			return err
		}
	}

	s.scene.SetUpdateFunc(s.stopWhen(ctx))

	p.done(fmt.Sprintf("Loaded %s", path))
	w := s.doc.Window
	if err := hero.Run(s.scene, hero.RunConfig{
		Title:     w.Title,
		Width:     w.Width,
		Height:    w.Height,
		Resizable: w.Resizable || opts.resizable,
		ShowFPS:   opts.showFPS,
	}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.script != "" {
		printSuccess(os.Stdout, "script finished")
		printFile(os.Stdout, s.scene.ScreenshotDir)
	}
	return nil
}
