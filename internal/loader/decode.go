package loader

import (
	"context"
	"slices"

	"order-insights/internal/models"
)

// Schema records which canonical columns a normalized table carries.
type Schema struct {
	Present []string `json:"present"`
	Missing []string `json:"missing"`
}

func (s Schema) Has(col string) bool {
	return slices.Contains(s.Present, col)
}

func DescribeSchema(t Table) Schema {
	var s Schema
	for _, col := range models.CanonicalColumns {
		if t.Index(col) >= 0 {
			s.Present = append(s.Present, col)
		} else {
			s.Missing = append(s.Missing, col)
		}
	}
	return s
}

// Decode turns a normalized table into typed orders. Missing columns decode
// to zero values.
func Decode(t Table) []models.Order {
	idx := make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		if _, ok := idx[col]; !ok {
			idx[col] = i
		}
	}

	orders := make([]models.Order, 0, len(t.Rows))
	for _, row := range t.Rows {
		str := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		num := func(col string) float64 {
			return ParseNumber(str(col))
		}

		orders = append(orders, models.Order{
			OrderID:            str(models.ColOrderID),
			CustomerID:         str(models.ColCustomerID),
			Customer:           str(models.ColCustomer),
			Company:            str(models.ColCompany),
			Vendor:             str(models.ColVendor),
			TotalRevenue:       num(models.ColTotalRevenue),
			GM1:                num(models.ColGM1),
			GM2:                num(models.ColGM2),
			Discount:           num(models.ColDiscount),
			RefundAmount:       num(models.ColRefundAmount),
			DeliveryFee:        num(models.ColDeliveryFee),
			VendorDeliveryFee:  num(models.ColVendorDeliveryFee),
			SmartLogisticsCost: num(models.ColSmartLogisticsCost),
			Commission:         num(models.ColCommission),
			TotalItems:         num(models.ColTotalItems),
			Status:             str(models.ColStatus),
			DeliveryStatus:     str(models.ColDeliveryStatus),
		})
	}
	return orders
}

// Dataset is the normalized result of one load.
type Dataset struct {
	Path     string
	Table    Table
	Orders   []models.Order
	Schema   Schema
	RawRows  int
	Excluded int
}

// Load reads, normalizes and decodes the source at path.
func Load(ctx context.Context, path string, opts Options) (*Dataset, error) {
	raw, err := Read(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	table := Normalize(raw)
	return &Dataset{
		Path:     path,
		Table:    table,
		Orders:   Decode(table),
		Schema:   DescribeSchema(table),
		RawRows:  len(raw.Rows),
		Excluded: len(raw.Rows) - len(table.Rows),
	}, nil
}
