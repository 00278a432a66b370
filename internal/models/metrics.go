package models

type OverallMetrics struct {
	TotalOrders        int     `json:"total_orders"`
	UniqueCustomers    int     `json:"unique_customers"`
	UniqueCompanies    int     `json:"unique_companies"`
	UniqueVendors      int     `json:"unique_vendors"`
	TotalRevenue       float64 `json:"total_revenue"`
	AvgRevenuePerOrder float64 `json:"avg_revenue_per_order"`
	TotalGM1           float64 `json:"total_gm1"`
	TotalGM2           float64 `json:"total_gm2"`
	AvgGM1PerOrder     float64 `json:"avg_gm1_per_order"`
	TotalDiscounts     float64 `json:"total_discounts"`
	TotalRefunds       float64 `json:"total_refunds"`
	GM1MarginPct       float64 `json:"gm1_margin_pct"`
}

type CustomerConcentration struct {
	Company           string  `json:"company"`
	CustomerID        string  `json:"customerid"`
	Customer          string  `json:"customer"`
	OrderCount        int     `json:"order_count"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalGM1          float64 `json:"gm_1"`
	PctOfTotalRevenue float64 `json:"pct_of_total_revenue"`
	AvgOrderValue     float64 `json:"avg_order_value"`
}

// ConcentrationSummary describes how revenue is spread across all customer
// groups, not only the ones kept in the top list.
type ConcentrationSummary struct {
	TopN         int     `json:"top_n"`
	TopNSharePct float64 `json:"top_n_share_pct"`
	HHI          float64 `json:"hhi"`
	Band         string  `json:"band"`
	Groups       int     `json:"groups"`
}

type RepeatSegment struct {
	Segment               string  `json:"segment"`
	CustomerCount         int     `json:"customer_count"`
	OrderCount            int     `json:"order_count"`
	TotalRevenue          float64 `json:"total_revenue"`
	TotalGM1              float64 `json:"gm_1"`
	AvgRevenuePerCustomer float64 `json:"avg_revenue_per_customer"`
}

type VendorPerformance struct {
	Vendor             string  `json:"vendors"`
	OrderCount         int     `json:"order_count"`
	TotalRevenue       float64 `json:"total_revenue"`
	TotalGM1           float64 `json:"gm_1"`
	TotalCommission    float64 `json:"commission_in_currency"`
	RefundCount        int     `json:"refund_count"`
	AvgRevenuePerOrder float64 `json:"avg_revenue_per_order"`
	MarginPct          float64 `json:"margin_pct"`
	LateDeliveries     int     `json:"late_deliveries"`
}

// SizedOrder is an order annotated with its order-size segment label.
type SizedOrder struct {
	Order
	Segment string
}

type OrderSizeSegment struct {
	Segment      string  `json:"order_segment"`
	OrderCount   int     `json:"order_count"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalGM1     float64 `json:"gm_1"`
	AvgItems     float64 `json:"totalitems"`
	AvgRevenue   float64 `json:"avg_revenue"`
	MarginPct    float64 `json:"margin_pct"`
}

type LogisticsMetrics struct {
	DeliveryFeeCharged    float64 `json:"delivery_fee_charged"`
	VendorDeliveryCost    float64 `json:"vendor_delivery_cost"`
	SmartLogisticsCost    float64 `json:"smart_logistics_cost"`
	NetMargin             float64 `json:"net_margin"`
	NetMarginPctOfRevenue float64 `json:"net_margin_pct_of_revenue"`
}

type OperationalRisk struct {
	TotalOrders           int     `json:"total_orders"`
	OrdersWithRefunds     int     `json:"orders_with_refunds"`
	RefundRatePct         float64 `json:"refund_rate_pct"`
	TotalRefundAmount     float64 `json:"total_refund_amount"`
	LateDeliveries        int     `json:"late_deliveries"`
	OnTimeDeliveries      int     `json:"on_time_deliveries"`
	LateDeliveryRatePct   float64 `json:"late_delivery_rate_pct"`
	OnTimeDeliveryRatePct float64 `json:"on_time_delivery_rate_pct"`
}
