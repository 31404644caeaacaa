package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"donation-report/src/pkg/canvas"
)

type drawOp struct {
	Kind  string // fill, stroke, text, image
	Page  int
	X     float64
	Y     float64
	W     float64
	H     float64
	Text  string
	Style canvas.TextStyle
	Color canvas.Color
	Data  []byte
}

// recordingCanvas keeps every drawing call so tests can inspect pages.
type recordingCanvas struct {
	pages      int
	current    int
	ops        []drawOp
	failImages bool
	outputErr  error
	autoPrint  bool
}

func newRecordingCanvas(string) canvas.Canvas {
	return &recordingCanvas{}
}

func (r *recordingCanvas) AddPage() {
	r.pages++
	r.current = r.pages
}

func (r *recordingCanvas) PageCount() int { return r.pages }

func (r *recordingCanvas) AutoPrint() { r.autoPrint = true }

func (r *recordingCanvas) SetPage(page int) { r.current = page }

func (r *recordingCanvas) FillRect(x, y, w, h float64, fill canvas.Color) {
	r.ops = append(r.ops, drawOp{Kind: "fill", Page: r.current, X: x, Y: y, W: w, H: h, Color: fill})
}

func (r *recordingCanvas) StrokeRect(x, y, w, h float64, stroke canvas.Color) {
	r.ops = append(r.ops, drawOp{Kind: "stroke", Page: r.current, X: x, Y: y, W: w, H: h, Color: stroke})
}

func (r *recordingCanvas) Text(x, y float64, style canvas.TextStyle, text string) {
	r.ops = append(r.ops, drawOp{Kind: "text", Page: r.current, X: x, Y: y, Text: text, Style: style, Color: style.Color})
}

func (r *recordingCanvas) TextWidth(style canvas.TextStyle, text string) float64 {
	return float64(utf8.RuneCountInString(text)) * style.Size * 0.18
}

func (r *recordingCanvas) Image(name string, jpeg []byte, x, y, w, h float64) error {
	if r.failImages {
		return fmt.Errorf("cannot embed %s", name)
	}
	r.ops = append(r.ops, drawOp{Kind: "image", Page: r.current, X: x, Y: y, W: w, H: h, Text: name, Data: jpeg})
	return nil
}

func (r *recordingCanvas) Output(w io.Writer) error {
	if r.outputErr != nil {
		return r.outputErr
	}
	_, err := io.WriteString(w, fmt.Sprintf("%%PDF-fake pages=%d ops=%d", r.pages, len(r.ops)))
	return err
}

func (r *recordingCanvas) onPage(page int, kind string) (ops []drawOp) {
	for _, op := range r.ops {
		if op.Page == page && op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

func (r *recordingCanvas) textsOn(page int) (texts []string) {
	for _, op := range r.onPage(page, "text") {
		texts = append(texts, op.Text)
	}
	return texts
}

func (r *recordingCanvas) findText(page int, value string) (drawOp, bool) {
	for _, op := range r.onPage(page, "text") {
		if op.Text == value {
			return op, true
		}
	}
	return drawOp{}, false
}

// pageWith is the first page carrying exactly value, or 0.
func (r *recordingCanvas) pageWith(value string) int {
	for _, op := range r.ops {
		if op.Kind == "text" && op.Text == value {
			return op.Page
		}
	}
	return 0
}

func (r *recordingCanvas) mentions(value string) bool {
	for _, op := range r.ops {
		if op.Kind == "text" && strings.Contains(op.Text, value) {
			return true
		}
	}
	return false
}

func (r *recordingCanvas) cellBorders(page int, geometry gridGeometry) int {
	count := 0
	for _, op := range r.onPage(page, "stroke") {
		if op.W == geometry.CellWidth && op.H == geometry.CellHeight {
			count++
		}
	}
	return count
}
