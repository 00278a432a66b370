package pipeline

import (
	"cmp"
	"slices"

	"order-insights/internal/models"
)

// DefaultTopN bounds the ranked customer and vendor tables.
const DefaultTopN = 20

const (
	BandNone                   = "none"
	BandUnconcentrated         = "unconcentrated"
	BandModeratelyConcentrated = "moderately_concentrated"
	BandHighlyConcentrated     = "highly_concentrated"
)

// summaryTopN is the number of leading customers in ConcentrationSummary.
const summaryTopN = 3

type customerKey struct {
	company    string
	customerID string
	customer   string
}

// groupCustomers aggregates orders per (company, customer id, customer name)
// in first-appearance order. Orders with an empty key part are not grouped.
func groupCustomers(orders []models.Order) []*models.CustomerConcentration {
	index := make(map[customerKey]*models.CustomerConcentration)
	var groups []*models.CustomerConcentration

	for _, o := range orders {
		if o.Company == "" || o.CustomerID == "" || o.Customer == "" {
			continue
		}
		key := customerKey{o.Company, o.CustomerID, o.Customer}
		g := index[key]
		if g == nil {
			g = &models.CustomerConcentration{
				Company:    o.Company,
				CustomerID: o.CustomerID,
				Customer:   o.Customer,
			}
			index[key] = g
			groups = append(groups, g)
		}
		g.OrderCount++
		g.TotalRevenue += o.TotalRevenue
		g.TotalGM1 += o.GM1
	}
	return groups
}

func sumRevenue(orders []models.Order) float64 {
	var total float64
	for _, o := range orders {
		total += o.TotalRevenue
	}
	return total
}

// Concentration ranks customer groups by revenue, highest first. Equal
// revenues keep the order in which the groups first appear. A limit <= 0
// returns every group.
func Concentration(orders []models.Order, limit int) []models.CustomerConcentration {
	total := sumRevenue(orders)
	groups := groupCustomers(orders)

	result := make([]models.CustomerConcentration, 0, len(groups))
	for _, g := range groups {
		c := *g
		c.PctOfTotalRevenue = percent(c.TotalRevenue, total)
		c.AvgOrderValue = perUnit(c.TotalRevenue, c.OrderCount)
		result = append(result, c)
	}

	slices.SortStableFunc(result, func(a, b models.CustomerConcentration) int {
		return cmp.Compare(b.TotalRevenue, a.TotalRevenue)
	})
	return truncate(result, limit)
}

// ConcentrationSummarize reports the revenue share of the top customers and
// the Herfindahl-Hirschman index over every customer group.
func ConcentrationSummarize(orders []models.Order) models.ConcentrationSummary {
	groups := groupCustomers(orders)
	summary := models.ConcentrationSummary{
		TopN:   summaryTopN,
		Band:   BandNone,
		Groups: len(groups),
	}

	var total float64
	revenues := make([]float64, 0, len(groups))
	for _, g := range groups {
		total += g.TotalRevenue
		revenues = append(revenues, g.TotalRevenue)
	}
	if total == 0 {
		return summary
	}

	slices.SortFunc(revenues, func(a, b float64) int { return cmp.Compare(b, a) })

	var top, hhi float64
	for i, r := range revenues {
		share := r / total
		if i < summaryTopN {
			top += share
		}
		hhi += share * share
	}

	summary.TopNSharePct = round2(top * 100)
	summary.HHI = roundTo(hhi, 4)
	switch {
	case hhi < 0.15:
		summary.Band = BandUnconcentrated
	case hhi < 0.25:
		summary.Band = BandModeratelyConcentrated
	default:
		summary.Band = BandHighlyConcentrated
	}
	return summary
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
