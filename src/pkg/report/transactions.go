package report

import (
	"fmt"
	"strconv"

	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/canvas"
	"donation-report/src/pkg/money"
)

var transactionColumns = []column{
	{Title: "No", Width: 10, Align: canvas.AlignCenter},
	{Title: "Date", Width: 25},
	{Title: "Description"},
	{Title: "Category", Width: 35},
	{Title: "Amount", Width: 32, Align: canvas.AlignRight},
	{Title: "Proof", Width: 14, Align: canvas.AlignCenter},
}

type transactionTotals struct {
	Inflow  int64
	Outflow int64
}

func (t transactionTotals) Balance() int64 {
	return t.Inflow - t.Outflow
}

// checkTransaction rejects the records that cannot be printed: bad direction, negative amount, bad date.
func checkTransaction(tx Transaction) (e *xerr.Error) {
	where := fmt.Sprintf("transaction '%s'", tx.ID)
	if !tx.Direction.valid() {
		return xerr.NewError(fmt.Errorf("direction is '%s'", tx.Direction), "unknown transaction direction", where)
	}
	if tx.Amount < 0 {
		return xerr.NewError(fmt.Errorf("amount is %d", tx.Amount), "negative transaction amount", where)
	}
	_, err := money.ParseDate(tx.Date)
	if err != nil {
		return xerr.NewError(err, "parse transaction date", where)
	}
	return nil
}

/*
transactionTables splits the records into one table per direction, each with
its own footer total, in input order.
*/
func transactionTables(transactions []Transaction) (inflow sectionTable, outflow sectionTable, totals transactionTotals, e *xerr.Error) {
	inflow.table = table{Columns: transactionColumns, Accent: colorSuccess}
	outflow.table = table{Columns: transactionColumns, Accent: colorDanger}

	for _, tx := range transactions {
		e = checkTransaction(tx)
		if e != nil {
			return inflow, outflow, totals, e
		}

		target := &inflow
		if tx.Direction == Outflow {
			target = &outflow
		}
		date, _ := money.ParseDate(tx.Date)
		proof := "-"
		if tx.Attachment != nil {
			proof = "Yes"
		}
		target.table.Rows = append(target.table.Rows, []cell{
			plain(strconv.Itoa(len(target.table.Rows) + 1)),
			plain(money.DateShort(date)),
			plain(tx.Description),
			plain(tx.CategoryOrDefault()),
			plain(money.Rupiah(tx.Amount)),
			plain(proof),
		})
		target.amounts = append(target.amounts, tx.Amount)
		target.total += tx.Amount
	}

	for _, section := range []*sectionTable{&inflow, &outflow} {
		section.table.Footer = []cell{plain(""), plain(""), plain("Total"), plain(""), plain(money.Rupiah(section.total)), plain("")}
	}
	totals = transactionTotals{Inflow: inflow.total, Outflow: outflow.total}
	return inflow, outflow, totals, nil
}

func (c *composer) renderTransactions(title string, transactions []Transaction) (e *xerr.Error) {
	inflow, outflow, totals, e := transactionTables(transactions)
	if e != nil {
		return e
	}

	balance := totals.Balance()
	c.newPage()
	c.headerBar(title, colorSuccess)
	c.summaryBoxes([]summaryBox{
		{Label: "Total inflow", Value: money.Rupiah(totals.Inflow), Color: colorSuccess},
		{Label: "Total outflow", Value: money.Rupiah(totals.Outflow), Color: colorDanger},
		{Label: balanceLabel(balance), Value: money.Rupiah(absolute(balance)), Color: signColor(balance)},
	})

	c.subheading(Inflow.Label(), colorSuccess)
	c.drawTable(inflow.table)

	c.newPage()
	c.subheading(Outflow.Label(), colorDanger)
	c.drawTable(outflow.table)
	return nil
}
