package money

import (
	"fmt"
	"strings"
	"time"
)

var longMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var shortMonths = [...]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

var weekdays = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

/*
ParseDate parses a record date.

Accepted layouts, in order:
- 2006-01-02
- RFC3339
- 2006-01-02 15:04:05
*/
func ParseDate(raw string) (parsed time.Time, err error) {
	trimmed := strings.TrimSpace(raw)
	candidates := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02 15:04:05",
	}

	for _, layout := range candidates {
		value, parseErr := time.Parse(layout, trimmed)
		if parseErr == nil {
			return value, nil
		}
	}

	return parsed, fmt.Errorf("unrecognized date '%s'", raw)
}

// DateShort renders "15 Mar 2025".
func DateShort(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

// DateLong renders "15 Maret 2025".
func DateLong(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), longMonths[t.Month()-1], t.Year())
}

// DateWithWeekday renders "Sabtu, 15 Maret 2025".
func DateWithWeekday(t time.Time) string {
	return weekdays[t.Weekday()] + ", " + DateLong(t)
}
