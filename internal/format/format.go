// Package format renders numbers and dates for display.
package format

import (
	"fmt"
	"math"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/aristath/tradebook/internal/domain"
)

// Placeholder is shown for absent values.
const Placeholder = "-"

// Formatter holds the display currency and date layout.
type Formatter struct {
	currency   string
	dateLayout string
}

// New creates a formatter. currency is an ISO 4217 code; unknown codes fall
// back to the code itself as grapheme, which is how go-money handles them.
func New(currency, dateLayout string) Formatter {
	if currency == "" {
		currency = money.INR
	}
	if dateLayout == "" {
		dateLayout = "02/01/2006"
	}
	return Formatter{currency: currency, dateLayout: dateLayout}
}

// Currency formats v in the configured currency, e.g. ₹1,000.00.
func (f Formatter) Currency(v float64) string {
	cur := *money.New(0, f.currency).Currency()
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// CurrencyOrDash formats v, or the placeholder when v is not positive.
func (f Formatter) CurrencyOrDash(v float64) string {
	if v > 0 {
		return f.Currency(v)
	}
	return Placeholder
}

// Integer groups thousands.
func Integer(n int) string {
	return humanize.Comma(int64(n))
}

// Percent renders a percentage with two decimals.
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return fmt.Sprintf("%.2f%%", v)
}

// Date renders d, or the placeholder when absent.
func (f Formatter) Date(d domain.Date) string {
	if d.IsZero() {
		return Placeholder
	}
	return d.Format(f.dateLayout)
}

// DaysBetween is the ceiling number of whole days between two instants,
// regardless of order.
func DaysBetween(from, to time.Time) int {
	diff := to.Sub(from)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}
