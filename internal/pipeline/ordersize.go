package pipeline

import (
	"order-insights/internal/models"
)

const (
	SizeMicro      = "1. < 50 (Micro)"
	SizeSmall      = "2. 50-150 (Small)"
	SizeMedium     = "3. 150-300 (Medium)"
	SizeLarge      = "4. 300-500 (Large)"
	SizeVeryLarge  = "5. 500-1000 (V.Large)"
	SizeEnterprise = "6. 1000+ (Enterprise)"
)

// OrderSizeLabels lists the order-size bins in ascending size. The numeric
// prefix keeps lexical order equal to size order.
var OrderSizeLabels = []string{
	SizeMicro,
	SizeSmall,
	SizeMedium,
	SizeLarge,
	SizeVeryLarge,
	SizeEnterprise,
}

// OrderSizeSegmentFor bins an order revenue. Lower bounds are inclusive,
// upper bounds exclusive; anything below 50 (negatives included) is micro.
func OrderSizeSegmentFor(revenue float64) string {
	switch {
	case revenue < 50:
		return SizeMicro
	case revenue < 150:
		return SizeSmall
	case revenue < 300:
		return SizeMedium
	case revenue < 500:
		return SizeLarge
	case revenue < 1000:
		return SizeVeryLarge
	default:
		return SizeEnterprise
	}
}

// AnnotateOrderSize returns a new slice pairing each order with its size bin.
func AnnotateOrderSize(orders []models.Order) []models.SizedOrder {
	sized := make([]models.SizedOrder, len(orders))
	for i, o := range orders {
		sized[i] = models.SizedOrder{Order: o, Segment: OrderSizeSegmentFor(o.TotalRevenue)}
	}
	return sized
}

// OrderSizeSegments aggregates orders per size bin. All bins are returned in
// OrderSizeLabels order.
func OrderSizeSegments(orders []models.Order) []models.OrderSizeSegment {
	result := make([]models.OrderSizeSegment, len(OrderSizeLabels))
	bins := make(map[string]*models.OrderSizeSegment, len(OrderSizeLabels))
	for i, label := range OrderSizeLabels {
		result[i].Segment = label
		bins[label] = &result[i]
	}

	items := make(map[string]float64, len(OrderSizeLabels))
	for _, o := range AnnotateOrderSize(orders) {
		b := bins[o.Segment]
		b.OrderCount++
		b.TotalRevenue += o.TotalRevenue
		b.TotalGM1 += o.GM1
		items[o.Segment] += o.TotalItems
	}

	for i := range result {
		s := &result[i]
		s.AvgItems = mean(items[s.Segment], s.OrderCount)
		s.AvgRevenue = perUnit(s.TotalRevenue, s.OrderCount)
		s.MarginPct = percent(s.TotalGM1, s.TotalRevenue)
	}
	return result
}
