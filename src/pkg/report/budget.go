package report

import (
	"fmt"
	"strconv"

	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/canvas"
	"donation-report/src/pkg/money"
)

var budgetColumns = []column{
	{Title: "No", Width: 10, Align: canvas.AlignCenter},
	{Title: "Section"},
	{Title: "Budget", Width: 28, Align: canvas.AlignRight},
	{Title: "Realized", Width: 28, Align: canvas.AlignRight},
	{Title: "Remaining", Width: 26, Align: canvas.AlignRight},
	{Title: "%", Width: 14, Align: canvas.AlignCenter},
}

type budgetTable struct {
	table    table
	budgets  []int64
	realized []int64
	totals   BudgetLine
}

func budgetLineTable(lines []BudgetLine) (section budgetTable, e *xerr.Error) {
	section.table = table{Columns: budgetColumns, Accent: colorWarning}
	section.totals.SectionName = "Total"

	for i, line := range lines {
		if line.BudgetedAmount < 0 || line.RealizedAmount < 0 {
			return section, xerr.NewError(
				fmt.Errorf("budgeted %d, realized %d", line.BudgetedAmount, line.RealizedAmount),
				"negative budget amount", fmt.Sprintf("section '%s'", line.SectionName),
			)
		}
		section.table.Rows = append(section.table.Rows, budgetRow(strconv.Itoa(i+1), line))
		section.budgets = append(section.budgets, line.BudgetedAmount)
		section.realized = append(section.realized, line.RealizedAmount)
		section.totals.BudgetedAmount += line.BudgetedAmount
		section.totals.RealizedAmount += line.RealizedAmount
	}

	section.table.Footer = budgetRow("", section.totals)
	return section, nil
}

func budgetRow(number string, line BudgetLine) []cell {
	percent := line.Percentage()
	return []cell{
		plain(number),
		plain(line.SectionName),
		plain(money.Rupiah(line.BudgetedAmount)),
		plain(money.Rupiah(line.RealizedAmount)),
		colored(money.Rupiah(line.Remaining()), signColor(line.Remaining())),
		colored(fmt.Sprintf("%d%%", percent), usageColor(percent)),
	}
}

func (c *composer) renderBudget(title string, lines []BudgetLine) (e *xerr.Error) {
	section, e := budgetLineTable(lines)
	if e != nil {
		return e
	}

	remaining := section.totals.Remaining()
	c.newPage()
	c.headerBar(title, colorWarning)
	c.summaryBoxes([]summaryBox{
		{Label: "Total budget", Value: money.Rupiah(section.totals.BudgetedAmount), Color: colorPrimary},
		{Label: "Total realized", Value: money.Rupiah(section.totals.RealizedAmount), Color: colorWarning},
		{Label: "Remaining", Value: money.Rupiah(remaining), Color: signColor(remaining)},
	})
	c.drawTable(section.table)
	return nil
}
