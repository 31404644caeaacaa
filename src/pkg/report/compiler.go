package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/canvas"
	"donation-report/src/pkg/money"
)

type stageKind int

const (
	stageCover stageKind = iota
	stageFundSources
	stageTransactions
	stageProofInflow
	stageProofOutflow
	stageBudget
	stageCharts
)

type stage struct {
	kind    stageKind
	title   string
	records []Transaction // proof stages only
}

/*
Compiler turns a Bundle into a finished PDF.

Every Generate call builds its own canvas and cursor, so one Compiler can
serve concurrent calls as long as Fetcher is safe for concurrent use.
*/
type Compiler struct {
	Fetcher   ImageFetcher
	Config    Config
	Now       func() time.Time
	NewCanvas func(title string) canvas.Canvas
	// AutoPrint makes the viewer open its print dialog; set for the print-preview sink.
	AutoPrint bool
}

func NewCompiler(fetcher ImageFetcher, cfg Config) *Compiler {
	return &Compiler{
		Fetcher: fetcher,
		Config:  cfg,
		Now:     time.Now,
		NewCanvas: func(title string) canvas.Canvas {
			return canvas.NewPDF(title)
		},
	}
}

// plan lists the stages in their fixed order; proof stages without records are left out.
func (c *Compiler) plan(bundle Bundle) (stages []stage) {
	stages = append(stages,
		stage{kind: stageCover, title: "Cover"},
		stage{kind: stageFundSources, title: "Fund Sources"},
		stage{kind: stageTransactions, title: "Transactions"},
	)
	stages = append(stages, proofStages(bundle)...)
	return append(stages,
		stage{kind: stageBudget, title: "Budget per Section"},
		stage{kind: stageCharts, title: "Charts & Proportions"},
	)
}

func proofStages(bundle Bundle) (stages []stage) {
	if records := proofRecords(bundle.Transactions, Inflow); len(records) > 0 {
		stages = append(stages, stage{kind: stageProofInflow, title: "Proof of Payment: Inflow", records: records})
	}
	if records := proofRecords(bundle.Transactions, Outflow); len(records) > 0 {
		stages = append(stages, stage{kind: stageProofOutflow, title: "Proof of Payment: Outflow", records: records})
	}
	return stages
}

/*
Generate renders every stage and returns the finished PDF bytes.

Nothing is returned unless the whole document, page numbers included, was
built. A malformed record aborts the run with the error.
*/
func (c *Compiler) Generate(ctx context.Context, bundle Bundle) (document []byte, e *xerr.Error) {
	title := strings.TrimSpace(fmt.Sprintf("%s %s %s", c.Config.Title, c.Config.EventName, bundle.ReportYear))
	return c.compile(ctx, title, bundle, c.plan(bundle))
}

/*
GenerateSection renders a standalone print of one section: no cover, the
same renderers and the same page-number pass as the full report.

The transactions print carries both tables followed by the proof grids of
each direction that has attachments.
*/
func (c *Compiler) GenerateSection(ctx context.Context, section Section, bundle Bundle) (document []byte, e *xerr.Error) {
	stages, e := sectionPlan(section, bundle)
	if e != nil {
		return nil, e
	}
	title := strings.TrimSpace(fmt.Sprintf("%s %s %s", stages[0].title, c.Config.EventName, bundle.ReportYear))
	return c.compile(ctx, title, bundle, stages)
}

// compile renders stages in order; a leading cover gets the contents of the stages after it.
func (c *Compiler) compile(ctx context.Context, title string, bundle Bundle, stages []stage) (document []byte, e *xerr.Error) {
	now := c.Now()
	surface := c.NewCanvas(title)
	cursor := &Cursor{}
	page := newComposer(surface, cursor, "Printed: "+money.DateLong(now))
	grid := proofGrid{
		fetcher:           c.Fetcher,
		geometry:          newGridGeometry(c.Config.GridColumns, c.Config.GridRows),
		descriptionBudget: c.Config.DescriptionBudget,
	}

	var contents []string
	if len(stages) > 0 && stages[0].kind == stageCover {
		for _, st := range stages[1:] {
			contents = append(contents, st.title)
		}
	}

	var tocBaselines []float64
	startPages := make([]int, len(stages))
	for i, st := range stages {
		err := ctx.Err()
		if err != nil {
			return nil, xerr.NewError(err, "report generation cancelled", st.title)
		}

		tl.Log(tl.Info1, palette.Blue, "Rendering %s", st.title)
		startPages[i] = surface.PageCount() + 1
		switch st.kind {
		case stageCover:
			tocBaselines, e = page.renderCover(c.Config, bundle, now, contents)
		case stageFundSources:
			e = page.renderFundSources(st.title, bundle.FundSources)
		case stageTransactions:
			e = page.renderTransactions(st.title, bundle.Transactions)
		case stageProofInflow:
			e = page.renderProofGrid(ctx, grid, st.title, Inflow, colorSuccess, st.records)
		case stageProofOutflow:
			e = page.renderProofGrid(ctx, grid, st.title, Outflow, colorDanger, st.records)
		case stageBudget:
			e = page.renderBudget(st.title, bundle.BudgetLines)
		case stageCharts:
			e = page.renderCharts(st.title, bundle.Chart)
		}
		if e != nil {
			tl.Log(tl.Error, palette.RedBold, "Failed rendering %s: '%s'", st.title, e)
			return nil, e
		}
	}

	page.stampContents(tocBaselines, startPages[1:])
	page.stampPageNumbers()
	if c.AutoPrint {
		surface.AutoPrint()
	}

	var buffer bytes.Buffer
	err := surface.Output(&buffer)
	if err != nil {
		return nil, xerr.NewError(err, "write PDF output", title)
	}

	tl.Log(
		tl.Info, palette.Green, "Generated %s with %v pages (%v bytes)",
		title, surface.PageCount(), buffer.Len(),
	)
	return buffer.Bytes(), nil
}

// GenerateFullReport generates the document and hands it to sink only when it is complete.
func (c *Compiler) GenerateFullReport(ctx context.Context, bundle Bundle, sink Sink) (e *xerr.Error) {
	document, e := c.Generate(ctx, bundle)
	if e != nil {
		return e
	}
	return deliver(sink, DocumentName(bundle.ReportYear, uuid.New()), document)
}

// GenerateSectionReport is GenerateFullReport for a single section print.
func (c *Compiler) GenerateSectionReport(ctx context.Context, section Section, bundle Bundle, sink Sink) (e *xerr.Error) {
	document, e := c.GenerateSection(ctx, section, bundle)
	if e != nil {
		return e
	}
	return deliver(sink, SectionDocumentName(section, bundle.ReportYear, uuid.New()), document)
}

func deliver(sink Sink, name string, document []byte) (e *xerr.Error) {
	e = sink.Deliver(name, document)
	if e != nil {
		tl.Log(tl.Error, palette.RedBold, "Sink refused report '%s': '%s'", name, e)
		return e
	}

	tl.Log(tl.Notice, palette.GreenBold, "Delivered report '%s'", name)
	return nil
}

// DocumentName is "donation-report-<year>-<first 8 chars of id>.pdf" with the year reduced to a safe token.
func DocumentName(reportYear string, id uuid.UUID) string {
	return fmt.Sprintf("donation-report-%s-%s.pdf", safeYear(reportYear), id.String()[:8])
}

// SectionDocumentName is "donation-report-<section>-<year>-<first 8 chars of id>.pdf".
func SectionDocumentName(section Section, reportYear string, id uuid.UUID) string {
	return fmt.Sprintf("donation-report-%s-%s-%s.pdf", section, safeYear(reportYear), id.String()[:8])
}

func safeYear(reportYear string) string {
	year := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return r
		}
		return '-'
	}, strings.TrimSpace(reportYear))
	if year == "" {
		return "undated"
	}
	return year
}

// stampContents writes each section's first page next to its contents row on the cover.
func (c *composer) stampContents(baselines []float64, startPages []int) {
	if len(baselines) == 0 {
		return
	}
	c.surface.SetPage(1)
	style := canvas.TextStyle{Size: 10, Color: colorText, Align: canvas.AlignRight}
	for i, baseline := range baselines {
		if i >= len(startPages) {
			break
		}
		c.text(PageWidth-Margin-4, baseline, style, fmt.Sprintf("%d", startPages[i]))
	}
}

// stampPageNumbers runs after all content exists: "Page i / N" needs the final count.
func (c *composer) stampPageNumbers() {
	total := c.surface.PageCount()
	style := canvas.TextStyle{Size: 8, Color: colorCaption, Align: canvas.AlignCenter}
	for i := 1; i <= total; i++ {
		c.surface.SetPage(i)
		c.text(PageWidth/2, FooterY, style, fmt.Sprintf("Page %d / %d", i, total))
	}
}
