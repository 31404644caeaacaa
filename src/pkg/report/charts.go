package report

import (
	"fmt"
	"strconv"

	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/canvas"
	"donation-report/src/pkg/money"
)

var seriesColumns = []column{
	{Title: "No", Width: 10, Align: canvas.AlignCenter},
	{Title: "Name"},
	{Title: "Amount", Width: 35, Align: canvas.AlignRight},
	{Title: "Share", Width: 22, Align: canvas.AlignCenter},
}

// seriesTable prints every item with its one-decimal share of the series sum.
func seriesTable(series []Series, accent canvas.Color) (section sectionTable, e *xerr.Error) {
	section.table = table{Columns: seriesColumns, Accent: accent}
	for _, item := range series {
		if item.Value < 0 {
			return section, xerr.NewError(fmt.Errorf("value is %d", item.Value), "negative chart value", fmt.Sprintf("series item '%s'", item.Name))
		}
		section.total += item.Value
	}

	for i, item := range series {
		section.table.Rows = append(section.table.Rows, []cell{
			plain(strconv.Itoa(i + 1)),
			plain(item.Name),
			plain(money.Rupiah(item.Value)),
			plain(money.Proportion(item.Value, section.total)),
		})
		section.amounts = append(section.amounts, item.Value)
	}

	share := "100%"
	if section.total == 0 {
		share = "0%"
	}
	section.table.Footer = []cell{plain(""), plain("Total"), plain(money.Rupiah(section.total)), plain(share)}
	return section, nil
}

func (c *composer) renderCharts(title string, chart ChartAggregate) (e *xerr.Error) {
	sections, e := seriesTable(chart.SectionBreakdown, colorChart)
	if e != nil {
		return e
	}
	sources, e := seriesTable(chart.SourceBreakdown, colorPrimary)
	if e != nil {
		return e
	}

	balance := chart.TotalInflow - chart.TotalOutflow
	c.newPage()
	c.headerBar(title, colorChart)
	c.summaryBoxes([]summaryBox{
		{Label: "Total inflow", Value: money.Rupiah(chart.TotalInflow), Color: colorSuccess},
		{Label: "Total outflow", Value: money.Rupiah(chart.TotalOutflow), Color: colorDanger},
		{Label: balanceLabel(balance), Value: money.Rupiah(absolute(balance)), Color: signColor(balance)},
	})

	c.subheading("Spending per section", colorChart)
	c.drawTable(sections.table)
	c.subheading("Donations per source", colorPrimary)
	c.drawTable(sources.table)
	return nil
}
