package pipeline

import (
	"order-insights/internal/models"
)

func Logistics(orders []models.Order) models.LogisticsMetrics {
	var m models.LogisticsMetrics
	var revenue float64
	for _, o := range orders {
		m.DeliveryFeeCharged += o.DeliveryFee
		m.VendorDeliveryCost += o.VendorDeliveryFee
		m.SmartLogisticsCost += o.SmartLogisticsCost
		revenue += o.TotalRevenue
	}
	m.NetMargin = m.DeliveryFeeCharged - m.VendorDeliveryCost - m.SmartLogisticsCost
	m.NetMarginPctOfRevenue = percent(m.NetMargin, revenue)
	return m
}
