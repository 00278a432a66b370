package pipeline

import (
	"order-insights/internal/models"
)

// OperationalRiskMetrics counts refunds and delivery outcomes. A table
// without delivery status yields zero late and on-time deliveries.
func OperationalRiskMetrics(orders []models.Order) models.OperationalRisk {
	r := models.OperationalRisk{TotalOrders: len(orders)}
	for _, o := range orders {
		r.TotalRefundAmount += o.RefundAmount
		if o.HasRefund() {
			r.OrdersWithRefunds++
		}
		switch {
		case o.IsLate():
			r.LateDeliveries++
		case o.IsOnTime():
			r.OnTimeDeliveries++
		}
	}

	total := float64(r.TotalOrders)
	r.RefundRatePct = percent(float64(r.OrdersWithRefunds), total)
	r.LateDeliveryRatePct = percent(float64(r.LateDeliveries), total)
	r.OnTimeDeliveryRatePct = percent(float64(r.OnTimeDeliveries), total)
	return r
}
