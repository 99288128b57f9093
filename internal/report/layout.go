package report

import (
	"math"
	"strings"
	"time"

	"github.com/2beens/hrvreport/internal/athletes"
	"github.com/2beens/hrvreport/internal/reference"
)

// A4 portrait, in points.
const (
	PageWidth  = 595.28
	PageHeight = 841.89

	cm     = 28.3465
	margin = 1.5 * cm

	DefaultTitle = "HRV Report\nHeart Rate Variability"
)

type Color struct {
	R, G, B int
}

var (
	ColorBlack       = Color{0, 0, 0}
	ColorRed         = Color{255, 0, 0}
	ColorGreen       = Color{0, 128, 0}
	ColorOrange      = Color{255, 165, 0}
	ColorGray        = Color{128, 128, 128}
	colorDivider     = Color{153, 153, 153}
	colorPlaceholder = Color{230, 230, 230}
	colorCard        = Color{247, 247, 247}
)

type Font struct {
	Family string
	// "" regular, "B" bold
	Style string
	Size  float64
}

var (
	fontTitle       = Font{"Helvetica", "B", 16}
	fontDate        = Font{"Helvetica", "", 10}
	fontLegendTitle = Font{"Helvetica", "B", 12}
	fontChip        = Font{"Helvetica", "", 10}
	fontCardTitle   = Font{"Helvetica", "B", 10}
	fontCardValue   = Font{"Helvetica", "B", 14}
	fontBlockTitle  = Font{"Helvetica", "B", 11}
	fontStatus      = Font{"Helvetica", "B", 12}
	fontComment     = Font{"Helvetica", "", 11}
	fontWarning     = Font{"Helvetica", "B", 10}
	fontCaption     = Font{"Helvetica", "", 8}
)

// TextMeasurer gives the rendered width of s in points.
type TextMeasurer interface {
	StringWidth(s string, f Font) float64
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Element is something drawn at an absolute position on a page. Y grows
// downwards from the top of the page.
type Element interface {
	role() string
}

// Text is anchored on its baseline. With AlignCenter, X is the centre.
type Text struct {
	X, Y    float64
	Content string
	Font    Font
	Color   Color
	Align   Align
	Role    string
}

type Image struct {
	X, Y, W, H float64
	Asset      Asset
	Role       string
}

type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeRoundedRect
	// X, Y is the centre
	ShapeCircle
	// from X, Y to X2, Y2
	ShapeLine
)

type Shape struct {
	Kind       ShapeKind
	X, Y, W, H float64
	X2, Y2     float64
	Radius     float64
	Fill       *Color
	Stroke     *Color
	LineWidth  float64
	Role       string
}

func (t Text) role() string  { return t.Role }
func (i Image) role() string { return i.Role }
func (s Shape) role() string { return s.Role }

type Page struct {
	Elements []Element
}

func (p *Page) add(elements ...Element) {
	p.Elements = append(p.Elements, elements...)
}

// Find returns the elements drawn for role, in paint order.
func (p Page) Find(role string) []Element {
	var found []Element
	for _, e := range p.Elements {
		if e.role() == role {
			found = append(found, e)
		}
	}
	return found
}

// Texts returns the content of every text element on the page.
func (p Page) Texts() []string {
	var texts []string
	for _, e := range p.Elements {
		if t, ok := e.(Text); ok {
			texts = append(texts, t.Content)
		}
	}
	return texts
}

// Context is everything one report is made of.
type Context struct {
	Date  time.Time
	Title string
	// chart paths attached
	Athletes          []athletes.Record
	Reference         reference.Table
	OverviewChartPath string
	Assets            Assets

	images map[string]Asset
}

// ResolveImages loads the chart images referenced by the context, each path once.
func (rc *Context) ResolveImages() {
	if rc.images == nil {
		rc.images = map[string]Asset{}
	}
	paths := []string{rc.OverviewChartPath}
	for _, a := range rc.Athletes {
		paths = append(paths, a.ChartLeftPath, a.ChartRightPath)
	}
	for _, p := range paths {
		if _, done := rc.images[p]; done {
			continue
		}
		rc.images[p] = LoadAsset(p)
	}
}

func (rc Context) image(path string) Asset {
	if a, ok := rc.images[path]; ok {
		return a
	}
	return Placeholder(path, "not resolved")
}

func (rc Context) title() string {
	if strings.TrimSpace(rc.Title) == "" {
		return DefaultTitle
	}
	return rc.Title
}

func colorPtr(c Color) *Color {
	return &c
}

// imageOrPlaceholder fits a loaded asset inside the box keeping its aspect
// ratio, or draws the grey "image" placeholder over the whole box.
func imageOrPlaceholder(a Asset, x, y, w, h float64, role string) []Element {
	if !a.Loaded() {
		return placeholder(x, y, w, h, role)
	}

	scale := math.Min(w/float64(a.Width), h/float64(a.Height))
	iw, ih := float64(a.Width)*scale, float64(a.Height)*scale
	return []Element{Image{
		X:     x + (w-iw)/2,
		Y:     y + (h-ih)/2,
		W:     iw,
		H:     ih,
		Asset: a,
		Role:  role,
	}}
}

func placeholder(x, y, w, h float64, role string) []Element {
	return []Element{
		Shape{Kind: ShapeRoundedRect, X: x, Y: y, W: w, H: h, Radius: 6, Fill: colorPtr(colorPlaceholder), Role: role},
		Text{X: x + w/2, Y: y + h/2 + 4, Content: "image", Font: fontCaption, Color: ColorBlack, Align: AlignCenter, Role: role + "-caption"},
	}
}

// iconOrCircle draws the icon, or a filled circle of the given colour when
// the icon is a placeholder.
func iconOrCircle(a Asset, x, y, size float64, color Color, role string) []Element {
	if a.Loaded() {
		return imageOrPlaceholder(a, x, y, size, size, role)
	}
	return []Element{Shape{
		Kind:   ShapeCircle,
		X:      x + size/2,
		Y:      y + size/2,
		Radius: size / 2,
		Fill:   colorPtr(color),
		Role:   role,
	}}
}

// Layout places every element of the report. One cover page, then one page
// per athlete in the given order.
func Layout(rc Context, m TextMeasurer) []Page {
	pages := []Page{coverPage(rc)}
	for _, a := range rc.Athletes {
		pages = append(pages, athletePage(rc, a, m))
	}
	return pages
}

const (
	logoSize       = 2.2 * cm
	titleLeading   = 18
	overviewHeight = 15 * cm
	chipSize       = 14
)

func coverPage(rc Context) Page {
	var p Page

	p.add(imageOrPlaceholder(rc.Assets.LeftLogo, margin, margin, logoSize, logoSize, "logo-left")...)
	p.add(imageOrPlaceholder(rc.Assets.RightLogo, PageWidth-margin-logoSize, margin, logoSize, logoSize, "logo-right")...)

	textY := margin + logoSize/2
	lines := strings.Split(rc.title(), "\n")
	for i, line := range lines {
		p.add(Text{X: PageWidth / 2, Y: textY + float64(i*titleLeading), Content: line, Font: fontTitle, Color: ColorBlack, Align: AlignCenter, Role: "title"})
	}
	dateY := textY + float64(len(lines)*titleLeading) + 10
	p.add(Text{X: PageWidth / 2, Y: dateY, Content: FormatDateFR(rc.Date), Font: fontDate, Color: ColorBlack, Align: AlignCenter, Role: "date"})

	chartTop := math.Max(margin+3.2*cm+40, dateY+12)
	chartW := PageWidth - 2*margin
	p.add(imageOrPlaceholder(rc.image(rc.OverviewChartPath), margin, chartTop, chartW, overviewHeight, "overview-chart")...)

	chartBottom := chartTop + overviewHeight
	p.add(Shape{Kind: ShapeLine, X: margin, Y: chartBottom + 20, X2: PageWidth - margin, Y2: chartBottom + 20, Stroke: colorPtr(ColorGray), LineWidth: 0.5, Role: "divider"})

	p.add(Text{X: margin * 2, Y: chartBottom + 1.8*cm, Content: "Legend:", Font: fontLegendTitle, Color: ColorBlack, Role: "legend-title"})

	chipY := chartBottom + 3.1*cm - chipSize
	chips := []struct {
		x     float64
		color Color
		label string
		icon  Asset
		role  string
	}{
		{margin, ColorRed, "Menstrual cycle", rc.Assets.Menstruation, "legend-menstruation"},
		{margin + 6*cm, ColorGreen, "OK", rc.Assets.OK, "legend-ok"},
		{margin + 10.5*cm, ColorOrange, "Vigilance", rc.Assets.Vigilance, "legend-vigilance"},
		{margin + 15*cm, ColorRed, "Danger", rc.Assets.Danger, "legend-danger"},
	}
	for _, chip := range chips {
		p.add(iconOrCircle(chip.icon, chip.x, chipY, chipSize, chip.color, chip.role)...)
		p.add(Text{X: chip.x + chipSize + 6, Y: chipY + chipSize/2 + 3, Content: chip.label, Font: fontChip, Color: ColorBlack, Role: chip.role + "-label"})
	}

	return p
}

const (
	cardHeight    = 1.8 * cm
	cardColumnGap = 0.8 * cm
	cardRowGap    = 0.4 * cm
	cardIconSize  = 22

	chartsHeight = 6.5 * cm
	chartsGap    = 0.6 * cm

	blockHeight     = 4 * cm
	blockLeftWidth  = 4.5 * cm
	statusIconSize  = 40
	commentLeading  = 13
	warningIconSize = 16
)

type status struct {
	label string
	color Color
	icon  Asset
}

func statusFor(r athletes.Recommendation, assets Assets) status {
	switch athletes.ParseRecommendation(string(r)) {
	case athletes.RecommendationVigilance:
		return status{"Vigilance", ColorOrange, assets.Vigilance}
	case athletes.RecommendationDanger:
		return status{"Danger", ColorRed, assets.Danger}
	default:
		return status{"OK", ColorGreen, assets.OK}
	}
}

func card(x, y, w float64, title, value string, icon Asset, role string) []Element {
	elements := []Element{
		Shape{Kind: ShapeRoundedRect, X: x, Y: y, W: w, H: cardHeight, Radius: 10, Fill: colorPtr(colorCard), Role: role},
		Text{X: x + 10, Y: y + 16, Content: title, Font: fontCardTitle, Color: ColorBlack, Role: role + "-title"},
	}
	elements = append(elements, imageOrPlaceholder(icon, x+w-cardIconSize-8, y+8, cardIconSize, cardIconSize, role+"-icon")...)
	elements = append(elements, Text{X: x + w/2, Y: y + 0.75*cardHeight, Content: value, Font: fontCardValue, Color: ColorBlack, Align: AlignCenter, Role: role + "-value"})
	return elements
}

func metricValue(a athletes.Record, m athletes.Metric) any {
	if v, ok := a.Value(m); ok {
		return v
	}
	return "n/a"
}

func athletePage(rc Context, a athletes.Record, m TextMeasurer) Page {
	var p Page

	p.add(Text{X: margin, Y: margin + 10, Content: "Individual report for " + a.DisplayName(), Font: fontTitle, Color: ColorBlack, Role: "title"})
	p.add(Text{X: margin, Y: margin + 26, Content: FormatDateFR(rc.Date), Font: fontDate, Color: ColorBlack, Role: "date"})

	// three columns of cards
	top := margin + 26 + 2*cm
	colW := (PageWidth - 2*margin - 2*cardColumnGap) / 3
	col := func(i int) float64 {
		return margin + float64(i)*(colW+cardColumnGap)
	}
	secondRow := top + cardHeight + cardRowGap

	cards := []struct {
		x, y   float64
		metric athletes.Metric
		suffix string
		icon   Asset
	}{
		{col(0), top, athletes.MetricHRSupine, "", rc.Assets.Heart},
		{col(0), secondRow, athletes.MetricHRStanding, "", rc.Assets.Heart},
		{col(1), top, athletes.MetricReserve, "%", rc.Assets.Reserve},
		{col(1), secondRow, athletes.MetricRegeneration, "%", rc.Assets.Regeneration},
		{col(2), top, athletes.MetricEffort, "%", rc.Assets.Effort},
	}
	for _, c := range cards {
		value := FormatCardValue(metricValue(a, c.metric), c.suffix)
		p.add(card(c.x, c.y, colW, c.metric.Label(), value, c.icon, "card-"+string(c.metric))...)
	}

	// radar and triangle side by side
	chartsTop := top + 2*cardHeight + 2*cm
	chartsW := (PageWidth - 2*margin - chartsGap) / 2
	p.add(imageOrPlaceholder(rc.image(a.ChartLeftPath), margin, chartsTop, chartsW, chartsHeight, "chart-left")...)
	p.add(imageOrPlaceholder(rc.image(a.ChartRightPath), margin+chartsW+chartsGap, chartsTop, chartsW, chartsHeight, "chart-right")...)

	// recommendation block
	blockTop := chartsTop + chartsHeight + 0.5*cm
	blockW := PageWidth - 2*margin
	p.add(Shape{Kind: ShapeRoundedRect, X: margin, Y: blockTop, W: blockW, H: blockHeight, Radius: 12, Fill: colorPtr(colorCard), Stroke: colorPtr(ColorBlack), LineWidth: 1, Role: "recommendation-block"})
	p.add(Text{X: margin + 0.6*cm, Y: blockTop + 16, Content: "Recommendations", Font: fontBlockTitle, Color: ColorBlack, Role: "recommendation-title"})

	rightX := margin + blockLeftWidth + 0.3*cm
	p.add(Shape{Kind: ShapeLine, X: rightX, Y: blockTop + 0.5*cm, X2: rightX, Y2: blockTop + blockHeight - 0.5*cm, Stroke: colorPtr(colorDivider), LineWidth: 1, Role: "recommendation-divider"})

	st := statusFor(a.Recommendation, rc.Assets)
	p.add(iconOrCircle(st.icon, margin+(blockLeftWidth-statusIconSize)/2, blockTop+(blockHeight-statusIconSize)/2, statusIconSize, st.color, "status-icon")...)
	p.add(Text{X: margin + blockLeftWidth/2, Y: blockTop + blockHeight - 0.4*cm, Content: st.label, Font: fontStatus, Color: ColorBlack, Align: AlignCenter, Role: "status-label"})

	commentX := rightX + 0.5*cm
	commentW := PageWidth - commentX - margin
	lines := WrapText(strings.TrimSpace(a.Comment), commentW-10, func(s string) float64 {
		return m.StringWidth(s, fontComment)
	})
	for i, line := range TruncateLines(lines, MaxCommentLines) {
		p.add(Text{X: commentX, Y: blockTop + 18 + float64(i*commentLeading), Content: line, Font: fontComment, Color: ColorBlack, Role: "comment"})
	}

	if a.Menstruation {
		center := margin + blockW/2
		iconTop := blockTop + blockHeight - 4 - warningIconSize
		p.add(iconOrCircle(rc.Assets.Menstruation, center-75, iconTop, warningIconSize, ColorRed, "menstruation-icon")...)
		p.add(Text{X: center + 10, Y: blockTop + blockHeight - 9, Content: "Warning: menstruation", Font: fontWarning, Color: ColorRed, Align: AlignCenter, Role: "menstruation-warning"})
	}

	return p
}
