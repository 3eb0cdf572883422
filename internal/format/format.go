// Package format renders amounts and dates for display, Vietnamese style.
//
// Amounts are whole đồng: every value is rounded up (ceiling) exactly once, here,
// so computed totals and displayed totals agree.
package format

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone database for images without /usr/share/zoneinfo

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/htn0810/Bill-Sharing/internal/calculator"
)

// CurrencySuffix follows the amount, separated by a no-break space.
const CurrencySuffix = "\u00a0₫"

// DefaultTimezone is used when no location is configured.
const DefaultTimezone = "Asia/Ho_Chi_Minh"

// Currency formats d as VND: ceiling to a whole đồng, "." as thousands separator.
//
//	Currency(1000000)  -> "1.000.000 ₫"
//	Currency(999999.4) -> "1.000.000 ₫"
//	Currency(-50.3)    -> "-50 ₫"
//
// Grouping works on the full-precision integer, so values past int64 are not truncated.
func Currency(d decimal.Decimal) string {
	return strings.ReplaceAll(humanize.BigComma(d.Ceil().BigInt()), ",", ".") + CurrencySuffix
}

// ParseCurrency reads an amount back from a display string. Everything except
// digits and a leading minus sign is ignored, so the output of Currency parses to
// the whole-đồng value it shows.
func ParseCurrency(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return decimal.Zero, fmt.Errorf("%w: %q", calculator.ErrInvalidAmount, s)
	}

	v, err := decimal.NewFromString(digits.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", calculator.ErrInvalidAmount, s)
	}
	if negative {
		v = v.Neg()
	}
	return v, nil
}

// Formatter renders dates in a fixed location.
type Formatter struct {
	loc *time.Location
}

// NewFormatter returns a Formatter for loc. A nil loc means UTC.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{loc: loc}
}

// LoadFormatter resolves a time zone name and returns a Formatter for it.
func LoadFormatter(name string) (*Formatter, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}
	return NewFormatter(loc), nil
}

// Location returns the formatter's time zone.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Date returns the long-form date, e.g. "19 tháng 10, 2026".
func (f *Formatter) Date(t time.Time) string {
	t = t.In(f.loc)
	return fmt.Sprintf("%d tháng %d, %d", t.Day(), int(t.Month()), t.Year())
}

// CalendarDate formats a date-only value without shifting it into the
// formatter's zone, so a date stays the same day everywhere.
func (f *Formatter) CalendarDate(t time.Time) string {
	return fmt.Sprintf("%d tháng %d, %d", t.Day(), int(t.Month()), t.Year())
}

// DateTime returns "HH:MM - <date>", e.g. "14:05 - 19 tháng 10, 2026".
func (f *Formatter) DateTime(t time.Time) string {
	t = t.In(f.loc)
	return fmt.Sprintf("%02d:%02d - %s", t.Hour(), t.Minute(), f.Date(t))
}
