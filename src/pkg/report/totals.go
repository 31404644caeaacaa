package report

import (
	"donation-report/src/pkg/canvas"
	"donation-report/src/pkg/money"
)

/*
Percentage is realized against budget, rounded to a whole percent.

A line without a budget reads 100 as soon as anything was spent and 0
otherwise, so catch-all sections show up as fully used.
*/
func (l BudgetLine) Percentage() int64 {
	if l.BudgetedAmount > 0 {
		return money.Percent(l.RealizedAmount, l.BudgetedAmount)
	}
	if l.RealizedAmount > 0 {
		return 100
	}
	return 0
}

func (l BudgetLine) Remaining() int64 {
	return l.BudgetedAmount - l.RealizedAmount
}

// usageColor tiers a budget percentage: over 100 alert, from 75 warning, else normal.
func usageColor(percent int64) canvas.Color {
	switch {
	case percent > 100:
		return colorDanger
	case percent >= 75:
		return colorWarning
	}
	return colorSuccess
}

func signColor(amount int64) canvas.Color {
	if amount < 0 {
		return colorDanger
	}
	return colorSuccess
}

// balanceLabel names a balance by its sign; the amount itself is shown unsigned.
func balanceLabel(balance int64) string {
	if balance < 0 {
		return "Deficit"
	}
	return "Surplus"
}

func absolute(amount int64) int64 {
	if amount < 0 {
		return -amount
	}
	return amount
}

// achievement is realized against target capped at 100, with its status label.
func achievement(realized int64, target int64) (percent int64, status string) {
	percent = min(100, money.Percent(realized, target))
	switch {
	case percent >= 100:
		return percent, "Achieved"
	case percent >= 50:
		return percent, "On track"
	}
	return percent, "Needs attention"
}
