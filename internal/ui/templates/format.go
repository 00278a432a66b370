package templates

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	riskHighPct     = 10.0
	riskElevatedPct = 5.0
)

// Money formats v with thousands separators and two decimals, prefixed by
// the currency code.
func Money(currency string, v float64) string {
	return strings.TrimSpace(currency + " " + Number(v))
}

func Number(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func Count(n int) string {
	return humanize.Comma(int64(n))
}

func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// RiskLevel classifies a percentage for badge styling. It is used for a
// customer's revenue share as well as refund and late-delivery rates.
func RiskLevel(pct float64) string {
	switch {
	case pct > riskHighPct:
		return "high"
	case pct > riskElevatedPct:
		return "elevated"
	default:
		return "normal"
	}
}

func sign(v float64) string {
	if v < 0 {
		return "negative"
	}
	return "positive"
}
