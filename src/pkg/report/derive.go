package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/money"
)

// DeriveBudgetLines sums outflows per section; realized is matched on category name.
func DeriveBudgetLines(sections []BudgetSection, transactions []Transaction) []BudgetLine {
	realized := map[string]int64{}
	for _, tx := range transactions {
		if tx.Direction == Outflow {
			realized[tx.CategoryOrDefault()] += tx.Amount
		}
	}

	lines := make([]BudgetLine, 0, len(sections))
	for _, section := range sections {
		lines = append(lines, BudgetLine{
			SectionName:    section.Name,
			BudgetedAmount: section.Budget,
			RealizedAmount: realized[section.Name],
		})
	}
	return lines
}

/*
DeriveChartAggregate builds the chart numbers from the raw records.

Section breakdown groups outflows by category, source breakdown lists fund
sources that contributed anything. Both are sorted by value, largest first.
*/
func DeriveChartAggregate(sources []FundSource, transactions []Transaction) (chart ChartAggregate) {
	perSection := map[string]int64{}
	var sectionOrder []string
	for _, tx := range transactions {
		switch tx.Direction {
		case Inflow:
			chart.TotalInflow += tx.Amount
		case Outflow:
			chart.TotalOutflow += tx.Amount
			category := tx.CategoryOrDefault()
			if _, seen := perSection[category]; !seen {
				sectionOrder = append(sectionOrder, category)
			}
			perSection[category] += tx.Amount
		}
	}

	for _, name := range sectionOrder {
		chart.SectionBreakdown = append(chart.SectionBreakdown, Series{Name: name, Value: perSection[name]})
	}
	for _, source := range sources {
		if source.ContributedAmount > 0 {
			chart.SourceBreakdown = append(chart.SourceBreakdown, Series{Name: source.DisplayName, Value: source.ContributedAmount})
		}
	}

	sortSeriesDescending(chart.SectionBreakdown)
	sortSeriesDescending(chart.SourceBreakdown)
	return chart
}

func sortSeriesDescending(series []Series) {
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Value > series[j].Value
	})
}

// SortNewestFirst orders transactions by date, newest first, keeping input order for equal dates.
func SortNewestFirst(transactions []Transaction) (e *xerr.Error) {
	dates := make(map[string]time.Time, len(transactions))
	for _, tx := range transactions {
		parsed, err := money.ParseDate(tx.Date)
		if err != nil {
			return xerr.NewError(err, "parse transaction date", fmt.Sprintf("transaction '%s'", tx.ID))
		}
		dates[tx.Date] = parsed
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return dates[transactions[i].Date].After(dates[transactions[j].Date])
	})
	return nil
}

/*
Prepare applies the record defaults and fills whatever the caller left out.

  - Empty categories become DefaultCategory.
  - Transactions are sorted newest first.
  - Budget lines are derived from sections when none were given.
  - The chart aggregate is derived when it is empty.
*/
func (b *Bundle) Prepare(sections []BudgetSection) (e *xerr.Error) {
	for i := range b.Transactions {
		b.Transactions[i].Category = b.Transactions[i].CategoryOrDefault()
	}

	e = SortNewestFirst(b.Transactions)
	if e != nil {
		return e
	}

	if len(b.BudgetLines) == 0 && len(sections) > 0 {
		b.BudgetLines = DeriveBudgetLines(sections, b.Transactions)
	}
	if b.Chart.empty() {
		b.Chart = DeriveChartAggregate(b.FundSources, b.Transactions)
	}
	return nil
}
