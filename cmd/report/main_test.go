package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersCSV = `Order ID,Customer ID,Customer,Company,Vendor,Total Revenue,GM1,Refund Amount,Delivery Fee,Vendor Delivery Fee,SmartLogistics Cost,Status,Delivery Status
O1,C1,Alice,Acme,V1,100,10,0,5,3,1,Delivered,green
O2,C1,Alice,Acme,V1,50,5,0,5,3,1,Delivered,red
O3,C2,Bob,Beta,V2,850,50,20,0,0,0,Delivered,green
O4,C3,Carol,Gamma,V3,400,40,0,0,0,0,rejected,green
`

func writeOrders(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(ordersCSV), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReport_JSON(t *testing.T) {
	out, err := execute(t, "--file", writeOrders(t), "--format", "json")
	require.NoError(t, err)

	var report struct {
		Overall struct {
			TotalOrders  int     `json:"total_orders"`
			TotalRevenue float64 `json:"total_revenue"`
		} `json:"overall"`
		Logistics struct {
			NetMargin float64 `json:"net_margin"`
		} `json:"logistics"`
		RecordCount int `json:"record_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, 3, report.Overall.TotalOrders, "rejected orders are dropped")
	assert.Equal(t, 1000.0, report.Overall.TotalRevenue)
	assert.InDelta(t, 2.0, report.Logistics.NetMargin, 1e-9)
}

func TestReport_Text(t *testing.T) {
	out, err := execute(t, "-f", writeOrders(t), "--currency", "USD")
	require.NoError(t, err)

	assert.Contains(t, out, "BUSINESS OVERVIEW")
	assert.Contains(t, out, "USD 1,000.00")
	assert.Contains(t, out, "VENDOR PERFORMANCE")
	assert.Contains(t, out, "OPERATIONAL RISK")
}

func TestReport_EnvironmentDefaults(t *testing.T) {
	t.Setenv("DATA_FILE", writeOrders(t))
	t.Setenv("REPORT_CURRENCY", "EUR")
	t.Setenv("REPORT_TOP_N", "1")

	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "EUR 1,000.00")
	assert.NotContains(t, out, "Alice", "top 1 lists only the largest customer")

	out, err = execute(t, "--currency", "USD")
	require.NoError(t, err)
	assert.Contains(t, out, "USD 1,000.00", "flags override the environment")
}

func TestReport_InvalidConfig(t *testing.T) {
	t.Setenv("REPORT_TOP_N", "-3")

	_, err := execute(t, "--file", writeOrders(t))
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestReport_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"--file", filepath.Join(t.TempDir(), "missing.xlsx")}},
		{"bad format", []string{"--file", writeOrders(t), "--format", "xml"}},
		{"bad top", []string{"--file", writeOrders(t), "--top", "0"}},
		{"unexpected arg", []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
