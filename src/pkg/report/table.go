package report

import (
	"donation-report/src/pkg/canvas"
)

const rowHeight = 7.0

type column struct {
	Title string
	Width float64 // 0 takes the remaining width
	Align canvas.Align
}

type cell struct {
	Text  string
	Color *canvas.Color
}

type table struct {
	Columns []column
	Rows    [][]cell
	Footer  []cell
	Accent  canvas.Color
}

func plain(text string) cell {
	return cell{Text: text}
}

func colored(text string, color canvas.Color) cell {
	return cell{Text: text, Color: &color}
}

func columnWidths(columns []column) []float64 {
	fixed := 0.0
	flexible := 0
	for _, col := range columns {
		if col.Width > 0 {
			fixed += col.Width
		} else {
			flexible++
		}
	}

	widths := make([]float64, len(columns))
	for i, col := range columns {
		widths[i] = col.Width
		if col.Width <= 0 && flexible > 0 {
			widths[i] = (ContentWidth - fixed) / float64(flexible)
		}
	}
	return widths
}

/*
drawTable draws header, body and footer rows at the cursor.

Rows that do not fit continue on a new page under a repeated header. The footer
is always drawn, also for an empty body.
*/
func (c *composer) drawTable(t table) {
	widths := columnWidths(t.Columns)

	c.ensureSpace(2 * rowHeight)
	c.drawHeaderRow(t, widths)

	bodyStyle := canvas.TextStyle{Size: 8, Color: colorText}
	for i, row := range t.Rows {
		if c.ensureSpace(rowHeight) {
			c.drawHeaderRow(t, widths)
		}
		if i%2 == 1 {
			c.surface.FillRect(Margin, c.cursor.Y, ContentWidth, rowHeight, colorStripe)
		}
		c.drawCells(t.Columns, widths, row, bodyStyle)
		c.cursor.Y += rowHeight
	}

	if c.ensureSpace(rowHeight) {
		c.drawHeaderRow(t, widths)
	}
	c.surface.FillRect(Margin, c.cursor.Y, ContentWidth, rowHeight, colorFooterFill)
	c.drawCells(t.Columns, widths, t.Footer, canvas.TextStyle{Size: 8, Bold: true, Color: colorText})
	c.cursor.Y += rowHeight
	c.surface.StrokeRect(Margin, c.cursor.Y-rowHeight, ContentWidth, rowHeight, colorBorder)
	c.cursor.Y += blockSpacing
}

func (c *composer) drawHeaderRow(t table, widths []float64) {
	c.surface.FillRect(Margin, c.cursor.Y, ContentWidth, rowHeight, t.Accent)
	header := make([]cell, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = plain(col.Title)
	}
	c.drawCells(t.Columns, widths, header, canvas.TextStyle{Size: 8, Bold: true, Color: canvas.White})
	c.cursor.Y += rowHeight
}

func (c *composer) drawCells(columns []column, widths []float64, cells []cell, base canvas.TextStyle) {
	x := Margin
	for i, col := range columns {
		if i >= len(cells) {
			break
		}
		style := base
		style.Align = col.Align
		if cells[i].Color != nil {
			style.Color = *cells[i].Color
		}

		anchor := x + 2
		switch col.Align {
		case canvas.AlignCenter:
			anchor = x + widths[i]/2
		case canvas.AlignRight:
			anchor = x + widths[i] - 2
		}
		value := fitText(c.surface, style, cells[i].Text, widths[i]-4)
		c.text(anchor, c.cursor.Y+4.8, style, value)
		x += widths[i]
	}
}
