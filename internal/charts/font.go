package charts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	fontOnce sync.Once
	font     *truetype.Font
	fontErr  error
)

// defaultFont is the font embedded in go-chart, parsed once.
func defaultFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		font, fontErr = chart.GetDefaultFont()
	})
	return font, fontErr
}

// drawCenteredText draws s centred on (x, y).
func drawCenteredText(r chart.Renderer, f *truetype.Font, s string, size float64, color drawing.Color, x, y int) {
	r.SetFont(f)
	r.SetFontSize(size)
	r.SetFontColor(color)
	tb := r.MeasureText(s)
	r.Text(s, x-tb.Width()/2, y+tb.Height()/2)
}
