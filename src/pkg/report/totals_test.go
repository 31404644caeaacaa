package report

import (
	"fmt"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donation-report/src/pkg/money"
)

func sum(values []int64) (total int64) {
	for _, v := range values {
		total += v
	}
	return total
}

// footerMatches checks the footer shows Rupiah of the sum of the row amounts it was built from.
func footerMatches(section sectionTable, amounts []int64, amountColumn int) bool {
	if len(section.table.Rows) != len(amounts) || section.total != sum(amounts) || sum(section.amounts) != section.total {
		return false
	}
	for i, row := range section.table.Rows {
		if row[amountColumn].Text != money.Rupiah(amounts[i]) {
			return false
		}
	}
	return section.table.Footer[amountColumn].Text == money.Rupiah(section.total)
}

func TestFooterTotalsEqualLineItems(t *testing.T) {
	config := &quick.Config{MaxCount: 200}

	t.Run("fund sources", func(t *testing.T) {
		property := func(raw []uint32) bool {
			var sources []FundSource
			var amounts []int64
			for i, value := range raw {
				sources = append(sources, FundSource{ID: fmt.Sprint(i), DisplayName: "source", ContributedAmount: int64(value)})
				amounts = append(amounts, int64(value))
			}
			section, e := fundSourceTable(sources)
			return e == nil && footerMatches(section, amounts, 2)
		}
		require.NoError(t, quick.Check(property, config))
	})

	t.Run("transactions", func(t *testing.T) {
		property := func(raw []uint32, outflowMask []bool) bool {
			var transactions []Transaction
			var inflowAmounts, outflowAmounts []int64
			for i, value := range raw {
				direction := Inflow
				if i < len(outflowMask) && outflowMask[i] {
					direction = Outflow
					outflowAmounts = append(outflowAmounts, int64(value))
				} else {
					inflowAmounts = append(inflowAmounts, int64(value))
				}
				transactions = append(transactions, Transaction{ID: fmt.Sprint(i), Date: "2025-03-15", Direction: direction, Amount: int64(value)})
			}
			inflow, outflow, totals, e := transactionTables(transactions)
			return e == nil &&
				footerMatches(inflow, inflowAmounts, 4) &&
				footerMatches(outflow, outflowAmounts, 4) &&
				totals.Balance() == sum(inflowAmounts)-sum(outflowAmounts)
		}
		require.NoError(t, quick.Check(property, config))
	})

	t.Run("budget", func(t *testing.T) {
		property := func(budgets []uint32, realized []uint32) bool {
			var lines []BudgetLine
			var budgetSum, realizedSum int64
			for i, budget := range budgets {
				line := BudgetLine{SectionName: fmt.Sprint(i), BudgetedAmount: int64(budget)}
				if i < len(realized) {
					line.RealizedAmount = int64(realized[i])
				}
				budgetSum += line.BudgetedAmount
				realizedSum += line.RealizedAmount
				lines = append(lines, line)
			}
			section, e := budgetLineTable(lines)
			if e != nil {
				return false
			}
			footer := section.table.Footer
			return sum(section.budgets) == budgetSum &&
				sum(section.realized) == realizedSum &&
				footer[2].Text == money.Rupiah(budgetSum) &&
				footer[3].Text == money.Rupiah(realizedSum) &&
				footer[4].Text == money.Rupiah(budgetSum-realizedSum)
		}
		require.NoError(t, quick.Check(property, config))
	})

	t.Run("chart series", func(t *testing.T) {
		property := func(raw []uint32) bool {
			var series []Series
			var amounts []int64
			for i, value := range raw {
				series = append(series, Series{Name: fmt.Sprint(i), Value: int64(value)})
				amounts = append(amounts, int64(value))
			}
			section, e := seriesTable(series, colorChart)
			return e == nil && footerMatches(section, amounts, 2)
		}
		require.NoError(t, quick.Check(property, config))
	})
}

func TestEmptySectionsKeepZeroFooter(t *testing.T) {
	sources, e := fundSourceTable(nil)
	require.Nil(t, e)
	assert.Empty(t, sources.table.Rows)
	assert.Equal(t, "Rp 0", sources.table.Footer[2].Text)

	inflow, outflow, totals, e := transactionTables(nil)
	require.Nil(t, e)
	assert.Equal(t, "Rp 0", inflow.table.Footer[4].Text)
	assert.Equal(t, "Rp 0", outflow.table.Footer[4].Text)
	assert.Equal(t, int64(0), totals.Balance())

	budget, e := budgetLineTable(nil)
	require.Nil(t, e)
	assert.Equal(t, "Rp 0", budget.table.Footer[2].Text)
	assert.Equal(t, "0%", budget.table.Footer[5].Text)

	series, e := seriesTable(nil, colorChart)
	require.Nil(t, e)
	assert.Equal(t, "Rp 0", series.table.Footer[2].Text)
	assert.Equal(t, "0%", series.table.Footer[3].Text)
}

func TestBudgetPercentageSentinel(t *testing.T) {
	tests := []struct {
		name string
		line BudgetLine
		want int64
	}{
		{name: "no budget, spent", line: BudgetLine{BudgetedAmount: 0, RealizedAmount: 200000}, want: 100},
		{name: "no budget, nothing spent", line: BudgetLine{BudgetedAmount: 0, RealizedAmount: 0}, want: 0},
		{name: "half used", line: BudgetLine{BudgetedAmount: 1000000, RealizedAmount: 500000}, want: 50},
		{name: "rounded", line: BudgetLine{BudgetedAmount: 3, RealizedAmount: 2}, want: 67},
		{name: "overspent", line: BudgetLine{BudgetedAmount: 100000, RealizedAmount: 150000}, want: 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.line.Percentage())
		})
	}
}

func TestUsageColorTiers(t *testing.T) {
	assert.Equal(t, colorDanger, usageColor(101))
	assert.Equal(t, colorWarning, usageColor(100))
	assert.Equal(t, colorWarning, usageColor(75))
	assert.Equal(t, colorSuccess, usageColor(74))
	assert.Equal(t, colorSuccess, usageColor(0))
}

func TestCatchAllSectionWithoutBudget(t *testing.T) {
	section, e := budgetLineTable([]BudgetLine{{SectionName: "Lainnya", BudgetedAmount: 0, RealizedAmount: 200000}})
	require.Nil(t, e)

	row := section.table.Rows[0]
	assert.Equal(t, "Lainnya", row[1].Text)
	assert.Equal(t, "100%", row[5].Text)
	assert.Equal(t, "-Rp 200.000", row[4].Text)
	require.NotNil(t, row[4].Color)
	assert.Equal(t, colorDanger, *row[4].Color)
	assert.Equal(t, int64(-200000), section.totals.Remaining())
}

func TestSeriesProportionZeroGuard(t *testing.T) {
	section, e := seriesTable([]Series{{Name: "Konsumsi", Value: 0}, {Name: "Dekorasi", Value: 0}}, colorChart)
	require.Nil(t, e)
	for _, row := range section.table.Rows {
		assert.Equal(t, "0%", row[3].Text)
	}
	assert.Equal(t, "0%", section.table.Footer[3].Text)

	section, e = seriesTable([]Series{{Name: "A", Value: 1}, {Name: "B", Value: 2}}, colorChart)
	require.Nil(t, e)
	assert.Equal(t, "33.3%", section.table.Rows[0][3].Text)
	assert.Equal(t, "66.7%", section.table.Rows[1][3].Text)
	assert.Equal(t, "100%", section.table.Footer[3].Text)
}

func TestBalanceAndAchievementLabels(t *testing.T) {
	assert.Equal(t, "Surplus", balanceLabel(0))
	assert.Equal(t, "Surplus", balanceLabel(1250000))
	assert.Equal(t, "Deficit", balanceLabel(-1))

	percent, status := achievement(2000000, 1000000)
	assert.Equal(t, int64(100), percent)
	assert.Equal(t, "Achieved", status)

	percent, status = achievement(500000, 1000000)
	assert.Equal(t, int64(50), percent)
	assert.Equal(t, "On track", status)

	percent, status = achievement(100, 0)
	assert.Equal(t, int64(0), percent)
	assert.Equal(t, "Needs attention", status)
}

func TestMalformedRecordsAreRejected(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
	}{
		{name: "negative amount", tx: Transaction{ID: "t1", Date: "2025-03-15", Direction: Inflow, Amount: -5}},
		{name: "bad date", tx: Transaction{ID: "t2", Date: "15/03/2025", Direction: Inflow, Amount: 5}},
		{name: "unknown direction", tx: Transaction{ID: "t3", Date: "2025-03-15", Direction: "sideways", Amount: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, e := transactionTables([]Transaction{tt.tx})
			assert.NotNil(t, e)
		})
	}

	_, e := fundSourceTable([]FundSource{{ID: "f1", ContributedAmount: -1}})
	assert.NotNil(t, e)
	_, e = budgetLineTable([]BudgetLine{{SectionName: "Ops", BudgetedAmount: -1}})
	assert.NotNil(t, e)
	_, e = seriesTable([]Series{{Name: "x", Value: -1}}, colorChart)
	assert.NotNil(t, e)
}
