package pipeline

import (
	"cmp"
	"slices"

	"order-insights/internal/models"
)

// VendorPerformance ranks vendors by revenue. Late deliveries are counted
// separately and joined onto the vendor rows; vendors without a late
// delivery get 0. Orders without a vendor are not ranked.
func VendorPerformance(orders []models.Order, limit int) []models.VendorPerformance {
	index := make(map[string]*models.VendorPerformance)
	var vendors []*models.VendorPerformance
	late := make(map[string]int)

	for _, o := range orders {
		if o.Vendor == "" {
			continue
		}
		v := index[o.Vendor]
		if v == nil {
			v = &models.VendorPerformance{Vendor: o.Vendor}
			index[o.Vendor] = v
			vendors = append(vendors, v)
		}
		v.OrderCount++
		v.TotalRevenue += o.TotalRevenue
		v.TotalGM1 += o.GM1
		v.TotalCommission += o.Commission
		if o.HasRefund() {
			v.RefundCount++
		}
		if o.IsLate() {
			late[o.Vendor]++
		}
	}

	result := make([]models.VendorPerformance, 0, len(vendors))
	for _, v := range vendors {
		p := *v
		p.AvgRevenuePerOrder = perUnit(p.TotalRevenue, p.OrderCount)
		p.MarginPct = percent(p.TotalGM1, p.TotalRevenue)
		p.LateDeliveries = late[p.Vendor]
		result = append(result, p)
	}

	slices.SortStableFunc(result, func(a, b models.VendorPerformance) int {
		return cmp.Compare(b.TotalRevenue, a.TotalRevenue)
	})
	return truncate(result, limit)
}
