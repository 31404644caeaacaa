package report

import (
	"fmt"
	"strconv"

	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/canvas"
	"donation-report/src/pkg/money"
)

var fundSourceColumns = []column{
	{Title: "No", Width: 12, Align: canvas.AlignCenter},
	{Title: "Fund source"},
	{Title: "Amount", Width: 40, Align: canvas.AlignRight},
}

// sectionTable is a table plus the numbers its rows and footer were printed from.
type sectionTable struct {
	table   table
	amounts []int64
	total   int64
}

func fundSourceTable(sources []FundSource) (section sectionTable, e *xerr.Error) {
	section.table = table{Columns: fundSourceColumns, Accent: colorPrimary}
	for i, source := range sources {
		if source.ContributedAmount < 0 {
			return section, xerr.NewError(
				fmt.Errorf("contributed amount is %d", source.ContributedAmount),
				"negative fund source amount", fmt.Sprintf("fund source '%s'", source.ID),
			)
		}
		section.table.Rows = append(section.table.Rows, []cell{
			plain(strconv.Itoa(i + 1)),
			plain(source.DisplayName),
			plain(money.Rupiah(source.ContributedAmount)),
		})
		section.amounts = append(section.amounts, source.ContributedAmount)
		section.total += source.ContributedAmount
	}

	section.table.Footer = []cell{plain(""), plain("Total"), plain(money.Rupiah(section.total))}
	return section, nil
}

func (c *composer) renderFundSources(title string, sources []FundSource) (e *xerr.Error) {
	section, e := fundSourceTable(sources)
	if e != nil {
		return e
	}

	c.newPage()
	c.headerBar(title, colorPrimary)
	c.summaryBoxes([]summaryBox{
		{Label: "Total fund sources", Value: money.Rupiah(section.total), Color: colorPrimary},
		{Label: "Number of sources", Value: strconv.Itoa(len(sources)), Color: colorSuccess},
	})
	c.drawTable(section.table)
	return nil
}
