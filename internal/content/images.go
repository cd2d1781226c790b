package content

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/webp" // register decoder

	"github.com/phanxgames/hero"
)

// placeholderSize is the edge of generated placeholder images in pixels.
const placeholderSize = 256

// Resolver loads image files relative to a base directory and caches the
// result per reference. Files that fail to load are replaced by a
// placeholder so the hero keeps its layout.
type Resolver struct {
	dir    string
	logger *log.Logger
	cache  map[hero.ImageRef]*ebiten.Image
}

// NewResolver creates a Resolver for paths relative to dir. A nil logger
// uses log.Default().
func NewResolver(dir string, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{dir: dir, logger: logger, cache: make(map[hero.ImageRef]*ebiten.Image)}
}

// Resolve implements hero.ImageResolver.
func (r *Resolver) Resolve(ref hero.ImageRef) *ebiten.Image {
	if img, ok := r.cache[ref]; ok {
		return img
	}
	src, err := DecodeFile(r.path(ref))
	if err != nil {
		r.logger.Warn("image load failed, using placeholder", "ref", string(ref), "err", err)
		src = Placeholder(ref, placeholderSize)
	}
	img := ebiten.NewImageFromImage(src)
	r.cache[ref] = img
	return img
}

// Forget drops every cached image so the next Resolve reads from disk.
func (r *Resolver) Forget() {
	for ref, img := range r.cache {
		img.Deallocate()
		delete(r.cache, ref)
	}
}

func (r *Resolver) path(ref hero.ImageRef) string {
	p := string(ref)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.dir, p)
}

// DecodeFile decodes a PNG, JPEG or WebP file.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Placeholder draws a size×size tile whose hue is derived from ref, so the
// same reference always gets the same color.
func Placeholder(ref hero.ImageRef, size int) *image.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ref))
	sum := h.Sum32()
	base := color.NRGBA{R: uint8(sum >> 16), G: uint8(sum >> 8), B: uint8(sum), A: 255}

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	border := max(size/32, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := base
			if x < border || y < border || x >= size-border || y >= size-border {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
