package loader

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"order-insights/internal/models"
)

// Table is a raw, string-typed view of one sheet: a header row and the data
// rows beneath it. Rows may be ragged until normalized.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of the first column named col, or -1.
func (t Table) Index(col string) int {
	return slices.Index(t.Columns, col)
}

// aliases is keyed by the squashed header (see squash).
var aliases = map[string]string{
	"orderid":              models.ColOrderID,
	"ordernumber":          models.ColOrderID,
	"orderno":              models.ColOrderID,
	"customerid":           models.ColCustomerID,
	"customernumber":       models.ColCustomerID,
	"customer":             models.ColCustomer,
	"customername":         models.ColCustomer,
	"company":              models.ColCompany,
	"companyname":          models.ColCompany,
	"vendors":              models.ColVendor,
	"vendor":               models.ColVendor,
	"vendorname":           models.ColVendor,
	"totalrevenue":         models.ColTotalRevenue,
	"revenue":              models.ColTotalRevenue,
	"gm1":                  models.ColGM1,
	"grossmargin1":         models.ColGM1,
	"gm2":                  models.ColGM2,
	"grossmargin2":         models.ColGM2,
	"discount":             models.ColDiscount,
	"discountamount":       models.ColDiscount,
	"refundamount":         models.ColRefundAmount,
	"refund":               models.ColRefundAmount,
	"deliveryfee":          models.ColDeliveryFee,
	"vendordeliveryfee":    models.ColVendorDeliveryFee,
	"smartlogisticscost":   models.ColSmartLogisticsCost,
	"commissionincurrency": models.ColCommission,
	"commission":           models.ColCommission,
	"totalitems":           models.ColTotalItems,
	"items":                models.ColTotalItems,
	"itemcount":            models.ColTotalItems,
	"status":               models.ColStatus,
	"orderstatus":          models.ColStatus,
	"deliverystatus":       models.ColDeliveryStatus,
}

func squash(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '.':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

func fallbackName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// CanonicalColumn maps a header to its canonical name. Unknown headers are
// trimmed, lower-cased and have spaces replaced with underscores.
func CanonicalColumn(name string) string {
	if canonical, ok := aliases[squash(name)]; ok {
		return canonical
	}
	return fallbackName(name)
}

// renameColumns canonicalizes every header while keeping names unique: the
// first column claiming a canonical name wins, later ones get a numeric
// suffix.
func renameColumns(columns []string) []string {
	out := make([]string, len(columns))
	seen := make(map[string]bool, len(columns))
	for i, col := range columns {
		name := CanonicalColumn(col)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if seen[name] {
			base := fallbackName(col)
			if base == "" {
				base = fmt.Sprintf("column_%d", i+1)
			}
			name = base
			for n := 2; seen[name]; n++ {
				name = fmt.Sprintf("%s_%d", base, n)
			}
		}
		seen[name] = true
		out[i] = name
	}
	return out
}

// ParseNumber parses a numeric cell. Anything that is not a finite number
// yields 0.
func ParseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Normalize returns a new table with canonical column names, trimmed cells,
// numeric columns rewritten as plain decimal text and excluded statuses
// removed. The status cell is kept verbatim so only an exact "cancelled" or
// "rejected" drops a row. Normalizing a normalized table returns an equal
// table.
func Normalize(t Table) Table {
	cols := renameColumns(t.Columns)
	out := Table{
		Columns: cols,
		Rows:    make([][]string, 0, len(t.Rows)),
	}

	var numeric []int
	for i, col := range cols {
		if slices.Contains(models.NumericColumns, col) {
			numeric = append(numeric, i)
		}
	}
	statusIdx := out.Index(models.ColStatus)

	for _, raw := range t.Rows {
		row := make([]string, len(cols))
		for i := range row {
			switch {
			case i >= len(raw):
			case i == statusIdx:
				row[i] = raw[i]
			default:
				row[i] = strings.TrimSpace(raw[i])
			}
		}
		for _, i := range numeric {
			row[i] = formatNumber(ParseNumber(row[i]))
		}
		if statusIdx >= 0 && models.IsExcludedStatus(row[statusIdx]) {
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
