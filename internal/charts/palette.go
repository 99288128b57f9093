package charts

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorWhite     = drawing.Color{R: 255, G: 255, B: 255, A: 255}
	colorBlack     = drawing.Color{R: 0, G: 0, B: 0, A: 255}
	colorGray      = drawing.Color{R: 128, G: 128, B: 128, A: 255}
	colorTextGray  = drawing.Color{R: 90, G: 90, B: 90, A: 255}
	colorAthlete   = drawing.ColorFromHex("C40B71")
	colorRed       = drawing.Color{R: 255, G: 0, B: 0, A: 255}
	colorOrange    = drawing.Color{R: 255, G: 165, B: 0, A: 255}
	colorYellow    = drawing.Color{R: 255, G: 255, B: 0, A: 255}
	colorGreen     = drawing.Color{R: 0, G: 128, B: 0, A: 255}
	colorBlue      = drawing.Color{R: 0, G: 0, B: 255, A: 255}
	colorLightBlue = drawing.Color{R: 173, G: 216, B: 230, A: 255}
	colorLightGrn  = drawing.Color{R: 144, G: 238, B: 144, A: 255}
)

// set1 is the ColorBrewer Set1 qualitative palette.
var set1 = []drawing.Color{
	drawing.ColorFromHex("e41a1c"),
	drawing.ColorFromHex("377eb8"),
	drawing.ColorFromHex("4daf4a"),
	drawing.ColorFromHex("984ea3"),
	drawing.ColorFromHex("ff7f00"),
	drawing.ColorFromHex("ffff33"),
	drawing.ColorFromHex("a65628"),
	drawing.ColorFromHex("f781bf"),
	drawing.ColorFromHex("999999"),
}

// paletteColor returns the palette entry for the i-th distinct name, cycling.
func paletteColor(i int) drawing.Color {
	return set1[i%len(set1)]
}

// withAlpha returns c with the given opacity in [0, 1].
func withAlpha(c drawing.Color, alpha float64) drawing.Color {
	return c.WithAlpha(uint8(alpha*255 + 0.5))
}

// blendOverWhite flattens a translucent colour onto a white background, so
// nested bands painted on top of each other keep their own tint.
func blendOverWhite(c drawing.Color, alpha float64) drawing.Color {
	mix := func(v uint8) uint8 {
		return uint8(float64(v)*alpha + 255*(1-alpha) + 0.5)
	}
	return drawing.Color{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: 255}
}
