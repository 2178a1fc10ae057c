// Package fonts provides the typeface used for raster output.
//
// The bold Go font is compiled into golang.org/x/image, so rendering needs no
// system fonts. It covers the Greek block, which the default alphabet uses.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// Family is the font-family list written into SVG output.
const Family = `'Times New Roman', Times, serif`

var (
	boldFont     *truetype.Font
	boldFontErr  error
	boldFontOnce sync.Once
)

// Bold returns the parsed bold typeface. Parsing happens once.
func Bold() (*truetype.Font, error) {
	boldFontOnce.Do(func() {
		boldFont, boldFontErr = truetype.Parse(gobold.TTF)
	})
	return boldFont, boldFontErr
}

// BoldFace returns a face of the bold typeface at size points for the
// given resolution.
func BoldFace(size, dpi float64) (font.Face, error) {
	f, err := Bold()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: dpi, Hinting: font.HintingFull}), nil
}
