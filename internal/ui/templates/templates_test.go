package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-insights/internal/models"
)

func mustRender(t *testing.T, c templ.Component) string {
	t.Helper()
	html, err := RenderString(context.Background(), c)
	require.NoError(t, err)
	return html
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "MYR 1,234.50", Money("MYR", 1234.5))
	assert.Equal(t, "-12.00", Money("", -12))
	assert.Equal(t, "1,000,000", Count(1000000))
	assert.Equal(t, "33.33%", Percent(33.333))

	assert.Equal(t, "normal", RiskLevel(5))
	assert.Equal(t, "elevated", RiskLevel(5.01))
	assert.Equal(t, "elevated", RiskLevel(10))
	assert.Equal(t, "high", RiskLevel(10.5))
}

func TestDashboard(t *testing.T) {
	html := mustRender(t, Dashboard(DashboardProps{Source: "Order_Data.xlsx", RecordCount: 3}))

	assert.Contains(t, html, "<title>Order Insights</title>")
	assert.Contains(t, html, "datastar")
	for _, s := range Sections {
		assert.Contains(t, html, s.Title)
		assert.Contains(t, html, `id="`+s.ContentID()+`"`)
		assert.Contains(t, html, s.Endpoint)
	}
	assert.NotContains(t, html, `id="load-error"`)
}

func TestDashboard_LoadError(t *testing.T) {
	html := mustRender(t, Dashboard(DashboardProps{
		LoadError: `load "missing.xlsx": open: no such file`,
		LoadHint:  "Set DATA_FILE to the order export.",
	}))

	assert.Contains(t, html, `id="load-error"`)
	assert.Contains(t, html, "missing.xlsx")
	assert.Contains(t, html, "Set DATA_FILE")
}

func TestConcentration(t *testing.T) {
	rows := []models.CustomerConcentration{
		{Company: "Beta", CustomerID: "C2", Customer: "Bob", OrderCount: 1, TotalRevenue: 850, PctOfTotalRevenue: 85},
		{Company: "Acme & Sons", CustomerID: "C1", Customer: "<Alice>", OrderCount: 2, TotalRevenue: 150, PctOfTotalRevenue: 15},
	}
	summary := models.ConcentrationSummary{TopN: 3, TopNSharePct: 100, HHI: 0.745, Band: "highly_concentrated", Groups: 2}

	html := mustRender(t, Concentration(rows, summary, "MYR"))

	assert.True(t, strings.HasPrefix(html, `<div id="concentration-content">`))
	assert.Contains(t, html, "MYR 850.00")
	assert.Contains(t, html, "85.00%")
	assert.Contains(t, html, "HHI 0.7450 (highly_concentrated)")
	assert.Contains(t, html, "&lt;Alice&gt;", "customer names are escaped")
	assert.NotContains(t, html, "<Alice>")
	assert.Less(t, strings.Index(html, "Bob"), strings.Index(html, "Alice"))
}

func TestConcentration_ShareBadges(t *testing.T) {
	rows := []models.CustomerConcentration{
		{Company: "Beta", Customer: "Bob", TotalRevenue: 850, PctOfTotalRevenue: 85},
		{Company: "Acme", Customer: "Alice", TotalRevenue: 80, PctOfTotalRevenue: 8},
		{Company: "Gamma", Customer: "Carol", TotalRevenue: 70, PctOfTotalRevenue: 3},
	}

	html := mustRender(t, Concentration(rows, models.ConcentrationSummary{}, "MYR"))

	assert.Contains(t, html, `<span class="badge badge-high">85.00%</span>`)
	assert.Contains(t, html, `<span class="badge badge-elevated">8.00%</span>`)
	assert.Contains(t, html, `<span class="badge badge-normal">3.00%</span>`)
}

func TestConcentration_Empty(t *testing.T) {
	html := mustRender(t, Concentration(nil, models.ConcentrationSummary{}, "MYR"))
	assert.Contains(t, html, "No customer orders")
}

func TestOperationalRisk_Badges(t *testing.T) {
	html := mustRender(t, OperationalRisk(models.OperationalRisk{
		TotalOrders:         100,
		RefundRatePct:       12,
		LateDeliveryRatePct: 6,
	}, "MYR"))

	assert.Contains(t, html, "badge-high")
	assert.Contains(t, html, "badge-elevated")
}

func TestLogistics_NegativeMargin(t *testing.T) {
	html := mustRender(t, Logistics(models.LogisticsMetrics{NetMargin: -12, NetMarginPctOfRevenue: -4}, "MYR"))

	assert.Contains(t, html, "negative")
	assert.Contains(t, html, "MYR -12.00")
	assert.Contains(t, html, "-4.00%")
}

func TestSectionFragments(t *testing.T) {
	tests := []struct {
		id string
		c  templ.Component
	}{
		{"overview", Overview(models.OverallMetrics{TotalOrders: 3}, "MYR")},
		{"repeat-behavior", RepeatBehavior([]models.RepeatSegment{{Segment: "One-time"}}, "MYR")},
		{"vendors", Vendors([]models.VendorPerformance{{Vendor: "V1"}}, "MYR")},
		{"order-segments", OrderSegments([]models.OrderSizeSegment{{Segment: "Small"}}, "MYR")},
		{"logistics", Logistics(models.LogisticsMetrics{}, "MYR")},
		{"operational-risk", OperationalRisk(models.OperationalRisk{}, "MYR")},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			html := mustRender(t, tt.c)
			assert.True(t, strings.HasPrefix(html, `<div id="`+tt.id+`-content"`), html)
		})
	}
}

func TestLoadError(t *testing.T) {
	html := mustRender(t, LoadError("vendors-content", "boom", "check the file"))

	assert.True(t, strings.HasPrefix(html, `<div id="vendors-content" class="load-error">`))
	assert.Contains(t, html, "boom")
	assert.Contains(t, html, "check the file")
}
