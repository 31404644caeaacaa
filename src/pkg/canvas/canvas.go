// Package canvas is the drawing surface the report renderers paint on.
package canvas

import "io"

type Color struct {
	R int
	G int
	B int
}

var (
	White = Color{R: 255, G: 255, B: 255}
	Black = Color{R: 0, G: 0, B: 0}
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type TextStyle struct {
	Size  float64
	Bold  bool
	Color Color
	Align Align
}

/*
Canvas is a page-addressed A4 surface measured in millimetres.

Text is anchored at (x, baseline y); for AlignCenter x is the centre and for
AlignRight x is the right edge. Pages are numbered from 1.
*/
type Canvas interface {
	AddPage()
	PageCount() int
	SetPage(page int)
	FillRect(x, y, w, h float64, fill Color)
	StrokeRect(x, y, w, h float64, stroke Color)
	Text(x, y float64, style TextStyle, text string)
	TextWidth(style TextStyle, text string) float64
	Image(name string, jpeg []byte, x, y, w, h float64) error
	// AutoPrint asks the viewer to open its print dialog when the document is opened.
	AutoPrint()
	Output(w io.Writer) error
}
