package canvas

import (
	"bytes"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
)

const fontFamily = "Helvetica"

// PDF draws on a gofpdf document (A4 portrait, mm, core Helvetica).
type PDF struct {
	doc       *gofpdf.Fpdf
	translate func(string) string
	fontDirty bool
}

func NewPDF(title string) *PDF {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetTitle(title, true)
	doc.SetCreator("donation-report", true)

	return &PDF{
		doc:       doc,
		translate: doc.UnicodeTranslatorFromDescriptor(""), // cp1252
	}
}

// AutoPrint embeds a document-open script that starts the viewer's print dialog.
func (p *PDF) AutoPrint() {
	p.doc.SetJavascript("print(true);")
}

func (p *PDF) AddPage() {
	p.doc.AddPage()
	p.fontDirty = true
}

func (p *PDF) PageCount() int {
	return p.doc.PageCount()
}

func (p *PDF) SetPage(page int) {
	p.doc.SetPage(page)
	// gofpdf skips SetFont when nothing changed, but the target page may have been left on another font
	p.fontDirty = true
}

func (p *PDF) FillRect(x, y, w, h float64, fill Color) {
	p.doc.SetFillColor(fill.R, fill.G, fill.B)
	p.doc.Rect(x, y, w, h, "F")
}

func (p *PDF) StrokeRect(x, y, w, h float64, stroke Color) {
	p.doc.SetDrawColor(stroke.R, stroke.G, stroke.B)
	p.doc.Rect(x, y, w, h, "D")
}

func (p *PDF) Text(x, y float64, style TextStyle, text string) {
	p.applyFont(style)
	p.doc.SetFillColor(style.Color.R, style.Color.G, style.Color.B)
	p.doc.SetTextColor(style.Color.R, style.Color.G, style.Color.B)

	encoded := p.translate(text)
	switch style.Align {
	case AlignCenter:
		x -= p.doc.GetStringWidth(encoded) / 2
	case AlignRight:
		x -= p.doc.GetStringWidth(encoded)
	}
	p.doc.Text(x, y, encoded)
}

func (p *PDF) TextWidth(style TextStyle, text string) float64 {
	p.applyFont(style)
	return p.doc.GetStringWidth(p.translate(text))
}

/*
Image places an already encoded JPEG into the box (x, y, w, h).

A payload gofpdf cannot parse leaves the document usable and returns the error.
*/
func (p *PDF) Image(name string, jpeg []byte, x, y, w, h float64) error {
	options := gofpdf.ImageOptions{ImageType: "JPG", ReadDpi: false}
	p.doc.RegisterImageOptionsReader(name, options, bytes.NewReader(jpeg))
	if p.doc.Err() {
		err := p.doc.Error()
		p.doc.ClearError()
		return fmt.Errorf("register image '%s': %w", name, err)
	}

	p.doc.ImageOptions(name, x, y, w, h, false, options, 0, "")
	if p.doc.Err() {
		err := p.doc.Error()
		p.doc.ClearError()
		return fmt.Errorf("place image '%s': %w", name, err)
	}
	return nil
}

func (p *PDF) Output(w io.Writer) error {
	return p.doc.Output(w)
}

func (p *PDF) applyFont(style TextStyle) {
	fontStyle := ""
	if style.Bold {
		fontStyle = "B"
	}
	if p.fontDirty {
		p.doc.SetFont(fontFamily, fontStyle, style.Size+1)
		p.fontDirty = false
	}
	p.doc.SetFont(fontFamily, fontStyle, style.Size)
}
