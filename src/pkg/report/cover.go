package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/canvas"
	"donation-report/src/pkg/money"
)

const coverBandHeight = 62.0

/*
renderCover draws the title band, the headline cards and the table of contents.

It returns the baseline of every contents row so the page numbers can be
filled in once the whole document exists.
*/
func (c *composer) renderCover(cfg Config, bundle Bundle, now time.Time, contents []string) (tocBaselines []float64, e *xerr.Error) {
	sources, e := fundSourceTable(bundle.FundSources)
	if e != nil {
		return nil, e
	}
	_, _, totals, e := transactionTables(bundle.Transactions)
	if e != nil {
		return nil, e
	}

	c.newPage()
	c.surface.FillRect(0, 0, PageWidth, coverBandHeight, colorCover)
	center := PageWidth / 2
	c.text(center, 24, canvas.TextStyle{Size: 22, Bold: true, Color: canvas.White, Align: canvas.AlignCenter}, cfg.Title)
	c.text(center, 36, canvas.TextStyle{Size: 14, Color: canvas.White, Align: canvas.AlignCenter}, strings.TrimSpace(cfg.EventName+" "+bundle.ReportYear))
	c.text(center, 46, canvas.TextStyle{Size: 10, Color: canvas.White, Align: canvas.AlignCenter}, cfg.OrganizationName)
	c.text(center, 56, canvas.TextStyle{Size: 8, Color: canvas.White, Align: canvas.AlignCenter}, "Printed: "+money.DateWithWeekday(now))
	c.cursor.Y = coverBandHeight + 12

	percent, status := achievement(sources.total, bundle.TargetDonation)
	c.cards([]summaryBox{
		{Label: "Donation target", Value: money.Rupiah(bundle.TargetDonation), Color: colorPrimary},
		{Label: "Realized donation", Value: money.Rupiah(sources.total), Color: colorSuccess},
		{Label: "Status", Value: fmt.Sprintf("%d%% %s", percent, status), Color: statusColor(percent)},
	}, 22, 11)

	balance := totals.Balance()
	c.cards([]summaryBox{
		{Label: "Total inflow", Value: money.Rupiah(totals.Inflow), Color: colorSuccess},
		{Label: "Total outflow", Value: money.Rupiah(totals.Outflow), Color: colorDanger},
		{Label: balanceLabel(balance), Value: money.Rupiah(absolute(balance)), Color: signColor(balance)},
	}, 18, 10)

	c.cursor.Y += 4
	c.text(Margin, c.cursor.Y+6, canvas.TextStyle{Size: 12, Bold: true, Color: colorText}, "Contents")
	c.cursor.Y += 12
	entryStyle := canvas.TextStyle{Size: 10, Color: colorText}
	for i, title := range contents {
		baseline := c.cursor.Y + 5
		c.text(Margin+4, baseline, entryStyle, fmt.Sprintf("%d. %s", i+1, title))
		tocBaselines = append(tocBaselines, baseline)
		c.cursor.Y += 8
	}
	return tocBaselines, nil
}

func statusColor(percent int64) canvas.Color {
	switch {
	case percent >= 100:
		return colorSuccess
	case percent >= 50:
		return colorWarning
	}
	return colorDanger
}
