package report

import (
	"unicode/utf8"

	"donation-report/src/pkg/canvas"
)

// A4 portrait, millimetres.
const (
	PageWidth     = 210.0
	PageHeight    = 297.0
	Margin        = 14.0
	ContentWidth  = PageWidth - 2*Margin
	ContentBottom = 280.0
	FooterY       = 290.0

	headerBarHeight  = 14.0
	summaryBoxHeight = 14.0
	summaryBoxGap    = 4.0
	blockSpacing     = 6.0
)

var (
	colorPrimary         = canvas.Color{R: 37, G: 99, B: 235}
	colorSuccess         = canvas.Color{R: 37, G: 160, B: 100}
	colorDanger          = canvas.Color{R: 220, G: 53, B: 69}
	colorWarning         = canvas.Color{R: 200, G: 140, B: 0}
	colorCover           = canvas.Color{R: 30, G: 136, B: 56}
	colorChart           = canvas.Color{R: 111, G: 66, B: 193}
	colorFooterFill      = canvas.Color{R: 240, G: 240, B: 240}
	colorStripe          = canvas.Color{R: 248, G: 249, B: 250}
	colorBorder          = canvas.Color{R: 200, G: 200, B: 200}
	colorPlaceholderFill = canvas.Color{R: 245, G: 245, B: 245}
	colorPlaceholderText = canvas.Color{R: 150, G: 150, B: 150}
	colorCaption         = canvas.Color{R: 100, G: 100, B: 100}
	colorText            = canvas.Color{R: 33, G: 37, B: 41}
)

/*
composer is the drawing state handed to every renderer: the surface, the
shared cursor and the "Printed: ..." stamp. It lives for a single Generate call.
*/
type composer struct {
	surface canvas.Canvas
	cursor  *Cursor
	printed string
	images  int
}

func newComposer(surface canvas.Canvas, cursor *Cursor, printed string) *composer {
	return &composer{surface: surface, cursor: cursor, printed: printed}
}

func (c *composer) newPage() {
	c.surface.AddPage()
	c.cursor.Page = c.surface.PageCount()
	c.cursor.Y = Margin
}

// ensureSpace breaks the page when height does not fit above the footer. Reports whether it did.
func (c *composer) ensureSpace(height float64) bool {
	if c.cursor.Y+height <= ContentBottom {
		return false
	}
	c.newPage()
	return true
}

func (c *composer) text(x, y float64, style canvas.TextStyle, value string) {
	c.surface.Text(x, y, style, value)
}

func (c *composer) headerBar(title string, accent canvas.Color) {
	y := c.cursor.Y
	c.surface.FillRect(Margin, y, ContentWidth, headerBarHeight, accent)
	c.text(Margin+4, y+9, canvas.TextStyle{Size: 12, Bold: true, Color: canvas.White}, title)
	c.text(PageWidth-Margin-4, y+9, canvas.TextStyle{Size: 8, Color: canvas.White, Align: canvas.AlignRight}, c.printed)
	c.cursor.Y += headerBarHeight + blockSpacing
}

type summaryBox struct {
	Label string
	Value string
	Color canvas.Color
}

func (c *composer) summaryBoxes(boxes []summaryBox) {
	c.cards(boxes, summaryBoxHeight, 9)
}

// cards draws coloured call-outs side by side across the content width.
func (c *composer) cards(boxes []summaryBox, height float64, valueSize float64) {
	if len(boxes) == 0 {
		return
	}
	c.ensureSpace(height)

	count := float64(len(boxes))
	width := (ContentWidth - summaryBoxGap*(count-1)) / count
	y := c.cursor.Y
	for i, box := range boxes {
		x := Margin + float64(i)*(width+summaryBoxGap)
		c.surface.FillRect(x, y, width, height, box.Color)
		c.text(x+3, y+5, canvas.TextStyle{Size: 7, Color: canvas.White}, box.Label)
		valueStyle := canvas.TextStyle{Size: valueSize, Bold: true, Color: canvas.White}
		c.text(x+3, y+height-3, valueStyle, fitText(c.surface, valueStyle, box.Value, width-6))
	}
	c.cursor.Y += height + blockSpacing
}

func (c *composer) subheading(title string, color canvas.Color) {
	// keep the heading with at least a header and one row
	c.ensureSpace(8 + 2*rowHeight)
	c.text(Margin, c.cursor.Y+5, canvas.TextStyle{Size: 10, Bold: true, Color: color}, title)
	c.cursor.Y += 8
}

// fitText clips value with "..." until it is no wider than width.
func fitText(surface canvas.Canvas, style canvas.TextStyle, value string, width float64) string {
	if surface.TextWidth(style, value) <= width {
		return value
	}
	runes := []rune(value)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if surface.TextWidth(style, candidate) <= width {
			return candidate
		}
	}
	return ""
}

// truncateHead keeps the first budget runes of value and marks the cut with "...".
func truncateHead(value string, budget int) string {
	if budget <= 0 || utf8.RuneCountInString(value) <= budget {
		return value
	}
	return string([]rune(value)[:budget]) + "..."
}
