package report

const DefaultCategory = "Lainnya"

type FundSource struct {
	ID                string `json:"id"`
	DisplayName       string `json:"display_name"`
	ContributedAmount int64  `json:"contributed_amount"`
}

type Direction string

const (
	Inflow  Direction = "inflow"
	Outflow Direction = "outflow"
)

// Label is the human name used in table titles and proof cards.
func (d Direction) Label() string {
	switch d {
	case Inflow:
		return "Inflow"
	case Outflow:
		return "Outflow"
	}
	return string(d)
}

func (d Direction) valid() bool {
	return d == Inflow || d == Outflow
}

type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaDocument MediaType = "document"
)

type Attachment struct {
	URL       string    `json:"url"`
	MediaType MediaType `json:"media_type"`
	Caption   string    `json:"caption,omitempty"`
}

/*
Transaction is one money movement as handed over by the bookkeeping side.

Date is "2006-01-02" or RFC3339. Amount is whole rupiah and must not be negative.
An empty Category is shown as DefaultCategory; a nil Attachment means no proof.
*/
type Transaction struct {
	ID          string      `json:"id"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Direction   Direction   `json:"direction"`
	Amount      int64       `json:"amount"`
	Category    string      `json:"category,omitempty"`
	Attachment  *Attachment `json:"attachment,omitempty"`
}

func (t Transaction) CategoryOrDefault() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

type BudgetLine struct {
	SectionName    string `json:"section_name"`
	BudgetedAmount int64  `json:"budgeted_amount"`
	RealizedAmount int64  `json:"realized_amount"`
}

// BudgetSection is a spending section with its ceiling, before realization is known.
type BudgetSection struct {
	Name   string `json:"name"`
	Budget int64  `json:"budget"`
}

type Series struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type ChartAggregate struct {
	TotalInflow      int64    `json:"total_inflow"`
	TotalOutflow     int64    `json:"total_outflow"`
	SectionBreakdown []Series `json:"section_breakdown"`
	SourceBreakdown  []Series `json:"source_breakdown"`
}

func (c ChartAggregate) empty() bool {
	return c.TotalInflow == 0 && c.TotalOutflow == 0 && len(c.SectionBreakdown) == 0 && len(c.SourceBreakdown) == 0
}

// Bundle is the full in-memory snapshot a report is compiled from.
type Bundle struct {
	ReportYear     string         `json:"report_year"`
	TargetDonation int64          `json:"target_donation"`
	FundSources    []FundSource   `json:"fund_sources"`
	Transactions   []Transaction  `json:"transactions"`
	BudgetLines    []BudgetLine   `json:"budget_lines"`
	Chart          ChartAggregate `json:"chart"`
}

// Cursor is the drawing position while a document is composed. One per Generate call.
type Cursor struct {
	Page int
	Y    float64
}
