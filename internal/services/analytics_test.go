package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"order-insights/internal/loader"
	"order-insights/internal/models"
)

const ordersCSV = `orderid,customerid,customer,company,vendors,total_revenue,gm_1,refund_amount,status,delivery_status
O1,C1,Alice,Acme,V1,100,10,0,Delivered,green
O2,C1,Alice,Acme,V1,50,5,0,Delivered,red
O3,C2,Bob,Beta,V2,850,50,20,Delivered,green
O4,C2,Bob,Beta,V2,999,99,0,cancelled,green
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testOrders() []models.Order {
	return []models.Order{
		{OrderID: "O1", CustomerID: "C1", Customer: "Alice", Company: "Acme", Vendor: "V1", TotalRevenue: 100, GM1: 10, DeliveryStatus: "green"},
		{OrderID: "O2", CustomerID: "C1", Customer: "Alice", Company: "Acme", Vendor: "V1", TotalRevenue: 50, GM1: 5, DeliveryStatus: "red"},
		{OrderID: "O3", CustomerID: "C2", Customer: "Bob", Company: "Beta", Vendor: "V2", TotalRevenue: 850, GM1: 50, RefundAmount: 20, DeliveryStatus: "green"},
	}
}

func TestNewAnalytics(t *testing.T) {
	a := NewAnalytics()
	if a == nil {
		t.Fatal("NewAnalytics() returned nil")
	}
	if a.Ready() {
		t.Error("fresh analytics should not be ready")
	}
	if a.Report() == nil {
		t.Fatal("report should be initialized")
	}
	if got := len(a.RepeatBehavior()); got != 5 {
		t.Errorf("empty report should still list 5 repeat segments, got %d", got)
	}
	if got := len(a.Concentration()); got != 0 {
		t.Errorf("empty report should have no concentration rows, got %d", got)
	}
}

func TestAnalytics_SetData(t *testing.T) {
	a := NewAnalytics(WithLogger(quietLogger()))
	a.SetData(testOrders())

	if !a.Ready() {
		t.Error("analytics should be ready after SetData")
	}

	overall := a.Overall()
	if overall.TotalOrders != 3 {
		t.Errorf("TotalOrders = %d, want 3", overall.TotalOrders)
	}
	if overall.TotalRevenue != 1000 {
		t.Errorf("TotalRevenue = %v, want 1000", overall.TotalRevenue)
	}
	if overall.UniqueCustomers != 2 {
		t.Errorf("UniqueCustomers = %d, want 2", overall.UniqueCustomers)
	}

	conc := a.Concentration()
	if len(conc) != 2 || conc[0].CustomerID != "C2" {
		t.Errorf("Concentration() should rank C2 first, got %+v", conc)
	}

	vendors := a.Vendors()
	if len(vendors) != 2 || vendors[0].Vendor != "V2" {
		t.Errorf("Vendors() should rank V2 first, got %+v", vendors)
	}

	risk := a.OperationalRisk()
	if risk.LateDeliveries != 1 || risk.OrdersWithRefunds != 1 {
		t.Errorf("unexpected risk metrics: %+v", risk)
	}
}

func TestAnalytics_Load(t *testing.T) {
	path := writeSource(t, ordersCSV)
	a := NewAnalytics(WithSource(path, ""), WithLogger(quietLogger()))

	if err := a.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !a.Ready() {
		t.Error("analytics should be ready after Load")
	}
	if err := a.LoadErr(); err != nil {
		t.Errorf("LoadErr() = %v, want nil", err)
	}

	if got := a.Overall().TotalOrders; got != 3 {
		t.Errorf("cancelled orders must be excluded, TotalOrders = %d", got)
	}
	stats := a.Stats()
	if stats["excluded_rows"] != 1 {
		t.Errorf("excluded_rows = %v, want 1", stats["excluded_rows"])
	}
}

func TestAnalytics_LoadUsesCache(t *testing.T) {
	path := writeSource(t, ordersCSV)
	a := NewAnalytics(WithSource(path, ""), WithLogger(quietLogger()))
	ctx := context.Background()

	if err := a.Load(ctx); err != nil {
		t.Fatal(err)
	}
	first := a.Report()

	if err := a.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if a.Report() != first {
		t.Error("unchanged source should be served from cache")
	}
	if hits := a.cache.Hits(); hits != 1 {
		t.Errorf("cache hits = %d, want 1", hits)
	}
}

func TestAnalytics_LoadDetectsChangedSource(t *testing.T) {
	path := writeSource(t, ordersCSV)
	a := NewAnalytics(WithSource(path, ""), WithLogger(quietLogger()))
	ctx := context.Background()

	if err := a.Load(ctx); err != nil {
		t.Fatal(err)
	}

	extra := ordersCSV + "O5,C3,Carol,Gamma,V3,200,20,0,Delivered,green\n"
	if err := os.WriteFile(path, []byte(extra), 0o644); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}

	if err := a.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if got := a.Overall().TotalOrders; got != 4 {
		t.Errorf("changed source should be re-read, TotalOrders = %d", got)
	}
}

func TestAnalytics_Reload(t *testing.T) {
	path := writeSource(t, ordersCSV)
	a := NewAnalytics(WithSource(path, ""), WithLogger(quietLogger()))
	ctx := context.Background()

	if err := a.Load(ctx); err != nil {
		t.Fatal(err)
	}
	first := a.Report()

	if err := a.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	if a.Report() == first {
		t.Error("Reload() should recompute the report")
	}
	if a.Overall() != first.Overall {
		t.Error("Reload() of the same source should produce the same totals")
	}
}

func TestAnalytics_LoadErrors(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "orders.json")
	if err := os.WriteFile(jsonPath, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		source string
	}{
		{"no source", ""},
		{"missing file", filepath.Join(t.TempDir(), "missing.xlsx")},
		{"unsupported format", jsonPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnalytics(WithSource(tt.source, ""), WithLogger(quietLogger()))
			err := a.Load(context.Background())
			if err == nil {
				t.Fatal("Load() should fail")
			}

			var loadErr *loader.LoadError
			if !errors.As(err, &loadErr) {
				t.Errorf("error should wrap *loader.LoadError, got %T", err)
			}
			if a.LoadErr() == nil {
				t.Error("LoadErr() should record the failure")
			}
			if a.Ready() {
				t.Error("analytics should not be ready after a failed load")
			}
		})
	}
}

func TestAnalytics_LoadErrorClearedBySuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	a := NewAnalytics(WithSource(path, ""), WithLogger(quietLogger()))
	ctx := context.Background()

	if err := a.Load(ctx); err == nil {
		t.Fatal("Load() of a missing file should fail")
	}
	if err := os.WriteFile(path, []byte(ordersCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := a.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if a.LoadErr() != nil {
		t.Error("successful reload should clear the load error")
	}
}

func TestAnalytics_ConcurrentAccess(t *testing.T) {
	path := writeSource(t, ordersCSV)
	a := NewAnalytics(WithSource(path, ""), WithLogger(quietLogger()))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := a.Load(context.Background()); err != nil {
				t.Errorf("Load() error = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			_ = a.Overall()
			_ = a.Concentration()
			_ = a.RepeatBehavior()
			_ = a.OrderSizes()
			_ = a.Stats()
		}()
	}
	wg.Wait()

	if got := a.Overall().TotalOrders; got != 3 {
		t.Errorf("TotalOrders = %d, want 3", got)
	}
}

func BenchmarkAnalytics_SetData(b *testing.B) {
	a := NewAnalytics(WithLogger(quietLogger()))
	orders := make([]models.Order, 1000)
	for i := range orders {
		orders[i] = models.Order{
			CustomerID:   string(rune('A' + i%26)),
			Customer:     "Customer",
			Company:      "Company",
			Vendor:       "Vendor",
			TotalRevenue: float64(i),
			GM1:          float64(i) / 10,
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.SetData(orders)
	}
}
