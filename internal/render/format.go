package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/guregu/null/v5"
	"github.com/shopspring/decimal"
)

// Money formats d as $1,234.56.
func Money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + grouped(d.Abs())
	}
	return "$" + grouped(d)
}

// grouped renders a non-negative decimal with thousands separators and two places.
func grouped(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return fixed
	}
	return humanize.Comma(n) + "." + frac
}

// Price formats a raw API price without rounding it.
func Price(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// OptionalPrice formats p, or "-" when the API did not report it.
func OptionalPrice(p null.Float) string {
	if !p.Valid {
		return "-"
	}
	return Price(p.Float64)
}

// Volume formats a traded volume with thousands separators.
func Volume(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}
