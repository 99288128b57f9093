package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/2beens/hrvreport/internal/telemetry/metrics"
	"github.com/2beens/hrvreport/internal/telemetry/tracing"
	"github.com/2beens/hrvreport/pkg"

	"github.com/go-pdf/fpdf"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// fpdfMeasurer measures with the core font metrics of the document being built.
type fpdfMeasurer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (m fpdfMeasurer) StringWidth(s string, f Font) float64 {
	m.pdf.SetFont(f.Family, f.Style, f.Size)
	return m.pdf.GetStringWidth(m.tr(s))
}

type Assembler struct {
	metricsManager *metrics.Manager
}

// NewAssembler creates an assembler. metricsManager may be nil.
func NewAssembler(metricsManager *metrics.Manager) *Assembler {
	return &Assembler{
		metricsManager: metricsManager,
	}
}

type pdfWriter struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	images map[string]string
	// placeholders drawn because an image was rejected by the writer
	rejected int
}

func newPDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// Assemble lays out and writes the report to outputPath, creating parent
// directories. Nothing is left at outputPath when writing fails.
func (a *Assembler) Assemble(ctx context.Context, rc Context, outputPath string) (_ string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "report.assemble")
	span.SetAttributes(
		attribute.Int("athletes.count", len(rc.Athletes)),
		attribute.String("report.path", outputPath),
	)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if outputPath == "" {
		return "", fmt.Errorf("report output path is empty")
	}

	rc.ResolveImages()

	pdf := newPDF()
	pdf.SetTitle(FormatDateFR(rc.Date)+" - "+firstLine(rc.title()), true)
	pdf.SetCreator("hrvreport", true)
	pdf.SetCreationDate(rc.Date)

	w := &pdfWriter{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		images: map[string]string{},
	}
	pages := Layout(rc, fpdfMeasurer{pdf: pdf, tr: w.tr})
	for _, page := range pages {
		w.page(page)
	}
	if err := pdf.Error(); err != nil {
		return "", fmt.Errorf("build pdf: %w", err)
	}

	placeholders := w.rejected + countPlaceholders(pages)
	if placeholders > 0 {
		log.Debugf("report %s drawn with %d image placeholders", outputPath, placeholders)
		if a.metricsManager != nil {
			a.metricsManager.CounterPlaceholderAssets.Add(float64(placeholders))
		}
	}

	err = pkg.WriteFileAtomic(outputPath, func(f *os.File) error {
		return pdf.Output(f)
	})
	if err != nil {
		return "", fmt.Errorf("write report %s: %w", outputPath, err)
	}

	log.Debugf("report with %d pages written to %s", pdf.PageCount(), outputPath)
	return outputPath, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func countPlaceholders(pages []Page) int {
	n := 0
	for _, p := range pages {
		for _, e := range p.Elements {
			if s, ok := e.(Shape); ok && s.Kind == ShapeRoundedRect && s.Fill != nil && *s.Fill == colorPlaceholder {
				n++
			}
		}
	}
	return n
}

func (w *pdfWriter) page(p Page) {
	w.pdf.AddPage()
	for _, e := range p.Elements {
		switch el := e.(type) {
		case Text:
			w.text(el)
		case Shape:
			w.shape(el)
		case Image:
			w.image(el)
		}
	}
}

func (w *pdfWriter) text(t Text) {
	w.pdf.SetFont(t.Font.Family, t.Font.Style, t.Font.Size)
	w.pdf.SetTextColor(t.Color.R, t.Color.G, t.Color.B)
	s := w.tr(t.Content)
	x := t.X
	if t.Align == AlignCenter {
		x -= w.pdf.GetStringWidth(s) / 2
	}
	w.pdf.Text(x, t.Y, s)
}

func (w *pdfWriter) shape(s Shape) {
	style := ""
	if s.Fill != nil {
		w.pdf.SetFillColor(s.Fill.R, s.Fill.G, s.Fill.B)
		style += "F"
	}
	if s.Stroke != nil {
		w.pdf.SetDrawColor(s.Stroke.R, s.Stroke.G, s.Stroke.B)
		w.pdf.SetLineWidth(s.LineWidth)
		style += "D"
	}
	if style == "" {
		return
	}

	switch s.Kind {
	case ShapeRect:
		w.pdf.Rect(s.X, s.Y, s.W, s.H, style)
	case ShapeRoundedRect:
		w.pdf.RoundedRect(s.X, s.Y, s.W, s.H, s.Radius, "1234", style)
	case ShapeCircle:
		w.pdf.Circle(s.X, s.Y, s.Radius, style)
	case ShapeLine:
		w.pdf.Line(s.X, s.Y, s.X2, s.Y2)
	}
}

func (w *pdfWriter) image(img Image) {
	name, ok := w.images[img.Asset.Path]
	if !ok {
		name = "img" + strconv.Itoa(len(w.images))
		w.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(img.Asset.Data))
		if !w.pdf.Ok() {
			log.Warnf("image %s rejected by pdf writer, using placeholder: %s", img.Asset.Path, w.pdf.Error())
			w.pdf.ClearError()
			name = ""
		}
		w.images[img.Asset.Path] = name
	}

	if name == "" {
		w.rejected++
		for _, e := range placeholder(img.X, img.Y, img.W, img.H, img.Role) {
			switch el := e.(type) {
			case Shape:
				w.shape(el)
			case Text:
				w.text(el)
			}
		}
		return
	}

	w.pdf.ImageOptions(name, img.X, img.Y, img.W, img.H, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}
