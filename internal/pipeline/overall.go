package pipeline

import (
	"order-insights/internal/models"
)

// Overall computes the headline metrics of the whole table. Distinct counts
// ignore empty identifiers.
func Overall(orders []models.Order) models.OverallMetrics {
	customers := make(map[string]struct{})
	companies := make(map[string]struct{})
	vendors := make(map[string]struct{})

	var m models.OverallMetrics
	for _, o := range orders {
		m.TotalRevenue += o.TotalRevenue
		m.TotalGM1 += o.GM1
		m.TotalGM2 += o.GM2
		m.TotalDiscounts += o.Discount
		m.TotalRefunds += o.RefundAmount

		if o.CustomerID != "" {
			customers[o.CustomerID] = struct{}{}
		}
		if o.Company != "" {
			companies[o.Company] = struct{}{}
		}
		if o.Vendor != "" {
			vendors[o.Vendor] = struct{}{}
		}
	}

	m.TotalOrders = len(orders)
	m.UniqueCustomers = len(customers)
	m.UniqueCompanies = len(companies)
	m.UniqueVendors = len(vendors)
	m.AvgRevenuePerOrder = mean(m.TotalRevenue, m.TotalOrders)
	m.AvgGM1PerOrder = mean(m.TotalGM1, m.TotalOrders)
	m.GM1MarginPct = percent(m.TotalGM1, m.TotalRevenue)
	return m
}
