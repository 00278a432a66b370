package models

// Canonical column names of the normalized order table.
const (
	ColOrderID            = "orderid"
	ColCustomerID         = "customerid"
	ColCustomer           = "customer"
	ColCompany            = "company"
	ColVendor             = "vendors"
	ColTotalRevenue       = "total_revenue"
	ColGM1                = "gm_1"
	ColGM2                = "gm_2"
	ColDiscount           = "discount"
	ColRefundAmount       = "refund_amount"
	ColDeliveryFee        = "deliveryfee"
	ColVendorDeliveryFee  = "vendor_delivery_fee"
	ColSmartLogisticsCost = "smartlogistics_cost"
	ColCommission         = "commission_in_currency"
	ColTotalItems         = "totalitems"
	ColStatus             = "status"
	ColDeliveryStatus     = "delivery_status"
)

// NumericColumns are coerced to numbers during normalization.
var NumericColumns = []string{
	ColTotalRevenue,
	ColGM1,
	ColGM2,
	ColDiscount,
	ColRefundAmount,
	ColDeliveryFee,
	ColVendorDeliveryFee,
	ColSmartLogisticsCost,
	ColCommission,
	ColTotalItems,
}

// CanonicalColumns lists every column the decoder understands.
var CanonicalColumns = []string{
	ColOrderID,
	ColCustomerID,
	ColCustomer,
	ColCompany,
	ColVendor,
	ColTotalRevenue,
	ColGM1,
	ColGM2,
	ColDiscount,
	ColRefundAmount,
	ColDeliveryFee,
	ColVendorDeliveryFee,
	ColSmartLogisticsCost,
	ColCommission,
	ColTotalItems,
	ColStatus,
	ColDeliveryStatus,
}

// Status and delivery tokens. Matching is exact and case-sensitive.
const (
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"

	DeliveryLate   = "red"
	DeliveryOnTime = "green"
)

// IsExcludedStatus reports whether an order with this status is dropped
// before aggregation.
func IsExcludedStatus(status string) bool {
	return status == StatusCancelled || status == StatusRejected
}

type Order struct {
	OrderID            string
	CustomerID         string
	Customer           string
	Company            string
	Vendor             string
	TotalRevenue       float64
	GM1                float64
	GM2                float64
	Discount           float64
	RefundAmount       float64
	DeliveryFee        float64
	VendorDeliveryFee  float64
	SmartLogisticsCost float64
	Commission         float64
	TotalItems         float64
	Status             string
	DeliveryStatus     string
}

func (o Order) HasRefund() bool { return o.RefundAmount > 0 }

func (o Order) IsLate() bool { return o.DeliveryStatus == DeliveryLate }

func (o Order) IsOnTime() bool { return o.DeliveryStatus == DeliveryOnTime }
