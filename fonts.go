package hero

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce    sync.Once
	fontRegular *text.GoTextFaceSource
	fontBold    *text.GoTextFaceSource
	fontErr     error
)

// DefaultFont returns the bundled Go font at the given size. Bold selects Go
// Bold, used for the section letter.
func DefaultFont(size float64, bold bool) (*TTFFont, error) {
	fontOnce.Do(func() {
		fontRegular, fontErr = parseFace(goregular.TTF)
		if fontErr != nil {
			return
		}
		fontBold, fontErr = parseFace(gobold.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	if bold {
		return newTTFFont(fontBold, size), nil
	}
	return newTTFFont(fontRegular, size), nil
}

func parseFace(data []byte) (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("hero: parse bundled font: %w", err)
	}
	return src, nil
}
