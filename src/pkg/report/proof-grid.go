package report

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/canvas"
	"donation-report/src/pkg/money"
)

const (
	gridGap            = 6.0
	gridHeaderHeight   = 32.0
	gridTitleBarHeight = 18.0
	cellPadding        = 4.0
	cellLabelHeight    = 7.0
	cellInfoHeight     = 16.0
	captionReserve     = 4.0

	imageUnavailable = "[image unavailable]"
)

type gridGeometry struct {
	Columns    int
	Rows       int
	CellWidth  float64
	CellHeight float64
}

func newGridGeometry(columns int, rows int) gridGeometry {
	columns = max(1, columns)
	rows = max(1, rows)
	return gridGeometry{
		Columns:    columns,
		Rows:       rows,
		CellWidth:  (PageWidth - 2*Margin - float64(columns-1)*gridGap) / float64(columns),
		CellHeight: (PageHeight - Margin - gridHeaderHeight - Margin - float64(rows-1)*gridGap) / float64(rows),
	}
}

func (g gridGeometry) PerPage() int {
	return g.Columns * g.Rows
}

// cellOrigin is the top-left corner of cell index, counted row-major.
func (g gridGeometry) cellOrigin(index int) (x float64, y float64) {
	column := index % g.Columns
	row := index / g.Columns
	x = Margin + float64(column)*(g.CellWidth+gridGap)
	y = Margin + gridHeaderHeight + float64(row)*(g.CellHeight+gridGap)
	return x, y
}

// paginate splits items into consecutive pages of size, keeping order. Only the last page may be short.
func paginate[T any](items []T, size int) (pages [][]T) {
	if size <= 0 {
		return nil
	}
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		pages = append(pages, items[start:end])
	}
	return pages
}

/*
fitToBox scales an image of imageWidth x imageHeight pixels into the box,
keeping the aspect ratio, and centres it.
*/
func fitToBox(imageWidth int, imageHeight int, boxWidth float64, boxHeight float64) (width, height, offsetX, offsetY float64) {
	if imageWidth <= 0 || imageHeight <= 0 || boxWidth <= 0 || boxHeight <= 0 {
		return 0, 0, 0, 0
	}
	scale := min(boxWidth/float64(imageWidth), boxHeight/float64(imageHeight))
	width = float64(imageWidth) * scale
	height = float64(imageHeight) * scale
	return width, height, (boxWidth - width) / 2, (boxHeight - height) / 2
}

// documentFileName is the last path segment of rawURL, or "file" when there is none.
func documentFileName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	candidate := rawURL
	if err == nil {
		candidate = parsed.Path
	}
	name := path.Base(strings.TrimRight(candidate, "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

// proofRecords keeps the transactions of one direction that carry an attachment, in input order.
func proofRecords(transactions []Transaction, direction Direction) (records []Transaction) {
	for _, tx := range transactions {
		if tx.Direction == direction && tx.Attachment != nil {
			records = append(records, tx)
		}
	}
	return records
}

type proofGrid struct {
	fetcher           ImageFetcher
	geometry          gridGeometry
	descriptionBudget int
}

/*
renderProofGrid lays out one card per record, Columns x Rows per page, each
invocation on its own fresh pages.

Images are fetched one at a time and each fetch completes before the next
card is drawn. A failed fetch becomes a placeholder and never stops the grid.
*/
func (c *composer) renderProofGrid(ctx context.Context, grid proofGrid, label string, direction Direction, accent canvas.Color, records []Transaction) (e *xerr.Error) {
	pages := paginate(records, grid.geometry.PerPage())
	for pageIndex, items := range pages {
		c.newPage()
		c.proofTitleBar(label, accent, pageIndex+1, len(pages))
		tl.Log(tl.Verbose, palette.Cyan, "Proof grid '%s' page %v of %v (%v cards)", label, pageIndex+1, len(pages), len(items))

		for cellIndex := 0; cellIndex < grid.geometry.PerPage(); cellIndex++ {
			x, y := grid.geometry.cellOrigin(cellIndex)
			if cellIndex >= len(items) {
				c.surface.StrokeRect(x, y, grid.geometry.CellWidth, grid.geometry.CellHeight, colorBorder)
				continue
			}
			e = c.drawProofCard(ctx, grid, x, y, items[cellIndex], accent)
			if e != nil {
				return e
			}
		}
		c.cursor.Y = PageHeight - Margin
	}
	return nil
}

func (c *composer) proofTitleBar(label string, accent canvas.Color, page int, pages int) {
	c.surface.FillRect(Margin, Margin, ContentWidth, gridTitleBarHeight, accent)
	c.text(Margin+4, Margin+8, canvas.TextStyle{Size: 12, Bold: true, Color: canvas.White}, label)
	c.text(Margin+4, Margin+14, canvas.TextStyle{Size: 8, Color: canvas.White}, c.printed)
	c.text(
		PageWidth-Margin-4, Margin+11,
		canvas.TextStyle{Size: 9, Bold: true, Color: canvas.White, Align: canvas.AlignRight},
		fmt.Sprintf("page %d of %d", page, pages),
	)
}

func (c *composer) drawProofCard(ctx context.Context, grid proofGrid, x float64, y float64, tx Transaction, accent canvas.Color) (e *xerr.Error) {
	date, err := money.ParseDate(tx.Date)
	if err != nil {
		return xerr.NewError(err, "parse transaction date", fmt.Sprintf("transaction '%s'", tx.ID))
	}

	width := grid.geometry.CellWidth
	height := grid.geometry.CellHeight
	innerWidth := width - 2*cellPadding

	c.surface.StrokeRect(x, y, width, height, colorBorder)

	// label strip
	c.surface.FillRect(x, y, width, cellLabelHeight, accent)
	labelStyle := canvas.TextStyle{Size: 7, Bold: true, Color: canvas.White}
	label := fmt.Sprintf("%s | %s", tx.Direction.Label(), tx.CategoryOrDefault())
	c.text(x+2, y+5, labelStyle, fitText(c.surface, labelStyle, label, width-4))

	infoY := y + 10
	descriptionStyle := canvas.TextStyle{Size: 8, Bold: true, Color: colorText}
	description := truncateHead(tx.Description, grid.descriptionBudget)
	c.text(x+cellPadding, infoY+3, descriptionStyle, fitText(c.surface, descriptionStyle, description, innerWidth))
	detailStyle := canvas.TextStyle{Size: 7.5, Color: colorCaption}
	c.text(x+cellPadding, infoY+8, detailStyle, money.DateShort(date)+"  |  "+money.Rupiah(tx.Amount))

	boxY := infoY + cellInfoHeight
	boxHeight := y + height - cellPadding - boxY
	attachment := tx.Attachment
	if attachment.Caption != "" {
		boxHeight -= captionReserve
	}

	switch attachment.MediaType {
	case MediaImage:
		c.drawProofImage(ctx, grid.fetcher, tx, x+cellPadding, boxY, innerWidth, boxHeight)
	default:
		c.placeholder(x+cellPadding, boxY, innerWidth, boxHeight, "Document: "+documentFileName(attachment.URL))
	}

	if attachment.Caption != "" {
		captionStyle := canvas.TextStyle{Size: 7, Color: colorCaption}
		c.text(x+cellPadding, y+height-3, captionStyle, fitText(c.surface, captionStyle, "Note: "+attachment.Caption, innerWidth))
	}
	return nil
}

func (c *composer) drawProofImage(ctx context.Context, fetcher ImageFetcher, tx Transaction, x, y, width, height float64) {
	payload := fetcher.Fetch(ctx, tx.Attachment.URL)
	if payload == nil {
		c.placeholder(x, y, width, height, imageUnavailable)
		return
	}

	drawWidth, drawHeight, offsetX, offsetY := fitToBox(payload.Width, payload.Height, width, height)
	c.images++
	name := fmt.Sprintf("proof-%s-%d", tx.Direction, c.images)
	err := c.surface.Image(name, payload.Data, x+offsetX, y+offsetY, drawWidth, drawHeight)
	if err != nil {
		tl.Log(tl.Warning, palette.Yellow, "Unable to embed image '%s' for transaction '%s': '%s'", tx.Attachment.URL, tx.ID, err)
		c.placeholder(x, y, width, height, imageUnavailable)
	}
}

func (c *composer) placeholder(x, y, width, height float64, message string) {
	c.surface.FillRect(x, y, width, height, colorPlaceholderFill)
	c.surface.StrokeRect(x, y, width, height, colorBorder)
	style := canvas.TextStyle{Size: 8, Color: colorPlaceholderText, Align: canvas.AlignCenter}
	c.text(x+width/2, y+height/2, style, fitText(c.surface, style, message, width-4))
}
