package render

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	printer  = message.NewPrinter(language.English)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// Money renders a price with two decimals: $1,234.50, -$5.00.
func Money(d decimal.Decimal) string {
	s, neg := grouped(d, 2, false)
	if neg {
		return "-$" + s
	}
	return "$" + s
}

// Amount renders a cash-flow figure with thousands separators and at most
// three fraction digits: 1,000,000 or -2,500.125.
func Amount(d decimal.Decimal) string {
	s, neg := grouped(d, 3, true)
	if neg {
		return "-" + s
	}
	return s
}

// Percent renders an already-scaled percentage with two decimals.
func Percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

// Verbatim renders a backend-supplied parameter exactly as received.
func Verbatim(d decimal.Decimal) string {
	return d.String()
}

// grouped rounds |d| to places and groups its integer digits. The digits come
// from the decimal itself, never a float. trim drops trailing fraction zeros.
// Integer parts beyond int64 are left ungrouped.
func grouped(d decimal.Decimal, places int32, trim bool) (string, bool) {
	r := d.Round(places)
	abs := r.Abs()

	s := abs.StringFixed(places)
	if trim {
		s = abs.String()
	}
	whole, frac, _ := strings.Cut(s, ".")
	if ip := abs.Truncate(0); ip.LessThanOrEqual(maxInt64) {
		whole = printer.Sprint(number.Decimal(ip.IntPart()))
	}
	if frac != "" {
		whole += "." + frac
	}
	return whole, r.Sign() < 0
}
