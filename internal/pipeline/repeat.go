package pipeline

import (
	"order-insights/internal/models"
)

const (
	SegmentOneTime      = "1 - One-time"
	SegmentLowRepeat    = "2-5 - Low Repeat"
	SegmentMediumRepeat = "6-10 - Medium Repeat"
	SegmentHighRepeat   = "11-20 - High Repeat"
	SegmentVeryHigh     = "21+ - Very High Repeat"
)

// RepeatLabels lists the repeat segments from least to most loyal.
var RepeatLabels = []string{
	SegmentOneTime,
	SegmentLowRepeat,
	SegmentMediumRepeat,
	SegmentHighRepeat,
	SegmentVeryHigh,
}

// RepeatSegmentFor classifies a customer by lifetime order count.
func RepeatSegmentFor(orderCount int) string {
	switch {
	case orderCount <= 1:
		return SegmentOneTime
	case orderCount <= 5:
		return SegmentLowRepeat
	case orderCount <= 10:
		return SegmentMediumRepeat
	case orderCount <= 20:
		return SegmentHighRepeat
	default:
		return SegmentVeryHigh
	}
}

type customerTotals struct {
	orders  int
	revenue float64
	gm1     float64
}

// RepeatBehavior buckets customers by how often they ordered. Every segment
// is returned, in RepeatLabels order, even when it holds no customers.
func RepeatBehavior(orders []models.Order) []models.RepeatSegment {
	byCustomer := make(map[string]*customerTotals)
	var seen []string
	for _, o := range orders {
		if o.CustomerID == "" {
			continue
		}
		c := byCustomer[o.CustomerID]
		if c == nil {
			c = &customerTotals{}
			byCustomer[o.CustomerID] = c
			seen = append(seen, o.CustomerID)
		}
		c.orders++
		c.revenue += o.TotalRevenue
		c.gm1 += o.GM1
	}

	segments := make(map[string]*models.RepeatSegment, len(RepeatLabels))
	result := make([]models.RepeatSegment, len(RepeatLabels))
	for i, label := range RepeatLabels {
		result[i].Segment = label
		segments[label] = &result[i]
	}

	for _, id := range seen {
		c := byCustomer[id]
		s := segments[RepeatSegmentFor(c.orders)]
		s.CustomerCount++
		s.OrderCount += c.orders
		s.TotalRevenue += c.revenue
		s.TotalGM1 += c.gm1
	}

	for i := range result {
		result[i].AvgRevenuePerCustomer = perUnit(result[i].TotalRevenue, result[i].CustomerCount)
	}
	return result
}
