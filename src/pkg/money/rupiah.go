package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Read-only after init; message.Printer carries no per-call state.
var indonesianPrinter = message.NewPrinter(language.Indonesian)

/*
Rupiah formats a whole-rupiah amount the way id-ID renders IDR with zero
fraction digits.

Example:

	1550000 -> "Rp 1.550.000"
	-200000 -> "-Rp 200.000"
*/
func Rupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	return sign + "Rp " + GroupDigits(amount)
}

/*
GroupDigits groups a non-negative integer with the Indonesian thousands separator.
*/
func GroupDigits(value int64) string {
	return indonesianPrinter.Sprintf("%d", value)
}

/*
AmountOrZero parses a raw amount coming from loosely typed input.

Anything that is not a number, or does not fit in int64, resolves to 0;
fractional rupiah are truncated.
*/
func AmountOrZero(raw string) int64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}

	value, parseErr := decimal.NewFromString(trimmed)
	if parseErr != nil {
		return 0
	}

	whole := value.Truncate(0).BigInt()
	if !whole.IsInt64() {
		return 0
	}
	return whole.Int64()
}

/*
Percent returns part/whole*100 rounded to the nearest integer, or 0 when whole is 0.
*/
func Percent(part int64, whole int64) int64 {
	if whole == 0 {
		return 0
	}

	ratio := decimal.NewFromInt(part).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(whole))
	return ratio.Round(0).IntPart()
}

/*
Proportion renders value/sum as a percentage with one decimal place.

A zero sum renders "0%" so an empty series never shows NaN.

Example:

	Proportion(1, 3) -> "33.3%"
	Proportion(5, 0) -> "0%"
*/
func Proportion(value int64, sum int64) string {
	if sum == 0 {
		return "0%"
	}

	share := decimal.NewFromInt(value).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(sum))
	return share.StringFixed(1) + "%"
}
