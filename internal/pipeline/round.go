package pipeline

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundTo rounds half away from zero on the decimal representation, so 2.675
// becomes 2.68 rather than the binary-float 2.67.
func roundTo(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func round2(v float64) float64 {
	return roundTo(v, 2)
}

// percent returns 100*part/whole rounded to 2 places, or 0 when whole is 0.
func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return round2(part / whole * 100)
}

// perUnit returns total/n rounded to 2 places, or 0 when n is 0.
func perUnit(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return round2(total / float64(n))
}

func mean(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
