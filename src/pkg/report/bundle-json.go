package report

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/money"
)

// looseAmount accepts 1550000, 1550000.0 and "1550000"; anything else is 0.
type looseAmount int64

func (a *looseAmount) UnmarshalJSON(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*a = looseAmount(money.AmountOrZero(text))
		return nil
	}
	*a = looseAmount(money.AmountOrZero(string(trimmed)))
	return nil
}

type fundSourceDocument struct {
	ID                string      `json:"id"`
	DisplayName       string      `json:"display_name"`
	ContributedAmount looseAmount `json:"contributed_amount"`
}

type attachmentDocument struct {
	URL       string `json:"url"`
	MediaType string `json:"media_type"`
	Caption   string `json:"caption"`
}

type transactionDocument struct {
	ID          string              `json:"id"`
	Date        string              `json:"date"`
	Description string              `json:"description"`
	Direction   string              `json:"direction"`
	Amount      looseAmount         `json:"amount"`
	Category    string              `json:"category"`
	Attachment  *attachmentDocument `json:"attachment"`
}

type budgetLineDocument struct {
	SectionName    string      `json:"section_name"`
	BudgetedAmount looseAmount `json:"budgeted_amount"`
	RealizedAmount looseAmount `json:"realized_amount"`
}

type budgetSectionDocument struct {
	Name   string      `json:"name"`
	Budget looseAmount `json:"budget"`
}

type seriesDocument struct {
	Name  string      `json:"name"`
	Value looseAmount `json:"value"`
}

type chartDocument struct {
	TotalInflow      looseAmount      `json:"total_inflow"`
	TotalOutflow     looseAmount      `json:"total_outflow"`
	SectionBreakdown []seriesDocument `json:"section_breakdown"`
	SourceBreakdown  []seriesDocument `json:"source_breakdown"`
}

type bundleDocument struct {
	ReportYear     string                  `json:"report_year"`
	TargetDonation looseAmount             `json:"target_donation"`
	FundSources    []fundSourceDocument    `json:"fund_sources"`
	Transactions   []transactionDocument   `json:"transactions"`
	BudgetLines    []budgetLineDocument    `json:"budget_lines"`
	BudgetSections []budgetSectionDocument `json:"budget_sections"`
	Chart          *chartDocument          `json:"chart"`
}

/*
DecodeBundle reads a bundle JSON document and prepares it for compilation.

Amounts may be numbers or numeric strings. Directions accept "inflow"/"outflow"
as well as "masuk"/"keluar". Budget lines and the chart aggregate are derived
from "budget_sections" and the transactions when they are not given.
*/
func DecodeBundle(r io.Reader) (bundle Bundle, e *xerr.Error) {
	bundle, sections, e := ParseBundle(r)
	if e != nil {
		return bundle, e
	}

	e = bundle.Prepare(sections)
	if e != nil {
		return bundle, e
	}

	tl.Log(
		tl.Verbose, palette.Cyan, "Decoded bundle for year '%s': %v fund sources, %v transactions, %v budget lines",
		bundle.ReportYear, len(bundle.FundSources), len(bundle.Transactions), len(bundle.BudgetLines),
	)
	return bundle, nil
}

/*
ParseBundle is the JSON half of DecodeBundle: it maps the document onto a
Bundle and its budget sections without validating or preparing the records.

An error here means the document itself is unreadable; record problems only
surface from Prepare.
*/
func ParseBundle(r io.Reader) (bundle Bundle, sections []BudgetSection, e *xerr.Error) {
	var document bundleDocument
	err := json.NewDecoder(r).Decode(&document)
	if err != nil {
		return bundle, nil, xerr.NewError(err, "decode bundle JSON", nil)
	}

	bundle = Bundle{
		ReportYear:     document.ReportYear,
		TargetDonation: int64(document.TargetDonation),
	}
	for _, source := range document.FundSources {
		bundle.FundSources = append(bundle.FundSources, FundSource{
			ID:                source.ID,
			DisplayName:       source.DisplayName,
			ContributedAmount: int64(source.ContributedAmount),
		})
	}
	for _, tx := range document.Transactions {
		bundle.Transactions = append(bundle.Transactions, tx.toTransaction())
	}
	for _, line := range document.BudgetLines {
		bundle.BudgetLines = append(bundle.BudgetLines, BudgetLine{
			SectionName:    line.SectionName,
			BudgetedAmount: int64(line.BudgetedAmount),
			RealizedAmount: int64(line.RealizedAmount),
		})
	}
	if document.Chart != nil {
		bundle.Chart = ChartAggregate{
			TotalInflow:      int64(document.Chart.TotalInflow),
			TotalOutflow:     int64(document.Chart.TotalOutflow),
			SectionBreakdown: toSeries(document.Chart.SectionBreakdown),
			SourceBreakdown:  toSeries(document.Chart.SourceBreakdown),
		}
	}
	for _, section := range document.BudgetSections {
		sections = append(sections, BudgetSection{Name: section.Name, Budget: int64(section.Budget)})
	}

	return bundle, sections, nil
}

// LoadBundle opens path and decodes it with DecodeBundle.
func LoadBundle(path string) (bundle Bundle, e *xerr.Error) {
	file, err := os.Open(path)
	if err != nil {
		return bundle, xerr.NewError(err, "open bundle file", path)
	}
	defer file.Close()

	return DecodeBundle(file)
}

func (t transactionDocument) toTransaction() Transaction {
	tx := Transaction{
		ID:          t.ID,
		Date:        t.Date,
		Description: t.Description,
		Direction:   normalizeDirection(t.Direction),
		Amount:      int64(t.Amount),
		Category:    t.Category,
	}
	if t.Attachment != nil && strings.TrimSpace(t.Attachment.URL) != "" {
		mediaType := MediaDocument
		if strings.EqualFold(strings.TrimSpace(t.Attachment.MediaType), string(MediaImage)) {
			mediaType = MediaImage
		}
		tx.Attachment = &Attachment{
			URL:       strings.TrimSpace(t.Attachment.URL),
			MediaType: mediaType,
			Caption:   t.Attachment.Caption,
		}
	}
	return tx
}

// Unknown values pass through unchanged and fail later as malformed records.
func normalizeDirection(raw string) Direction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "inflow", "masuk":
		return Inflow
	case "outflow", "keluar":
		return Outflow
	}
	return Direction(raw)
}

func toSeries(documents []seriesDocument) (series []Series) {
	for _, document := range documents {
		series = append(series, Series{Name: document.Name, Value: int64(document.Value)})
	}
	return series
}
