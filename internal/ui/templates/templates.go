// Package templates renders the dashboard page and the section fragments
// that the SSE handlers patch into it.
package templates

import (
	"context"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"order-insights/internal/models"
)

const DefaultTitle = "Order Insights"

// Section is one dashboard panel. Its fragment replaces the element with
// ID ContentID.
type Section struct {
	ID       string
	Title    string
	Endpoint string
}

func (s Section) ContentID() string {
	return s.ID + "-content"
}

var Sections = []Section{
	{ID: "overview", Title: "Business Overview", Endpoint: "/sse/overview"},
	{ID: "concentration", Title: "Customer Concentration", Endpoint: "/sse/concentration"},
	{ID: "repeat-behavior", Title: "Repeat Customer Behavior", Endpoint: "/sse/repeat-behavior"},
	{ID: "vendors", Title: "Vendor Performance", Endpoint: "/sse/vendors"},
	{ID: "order-segments", Title: "Order Size Segments", Endpoint: "/sse/order-segments"},
	{ID: "logistics", Title: "Logistics Economics", Endpoint: "/sse/logistics"},
	{ID: "operational-risk", Title: "Operational Risk", Endpoint: "/sse/operational-risk"},
}

var views = template.Must(template.New("views").Funcs(template.FuncMap{
	"money": Money,
	"num":   Number,
	"count": Count,
	"pct":   Percent,
	"risk":  RiskLevel,
	"sign":  sign,
	"inc":   func(i int) int { return i + 1 },
}).Parse(dashboardView + sectionViews))

func render(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return views.ExecuteTemplate(w, name, data)
	})
}

// RenderString renders c into a string, for use as an SSE patch payload.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

type DashboardProps struct {
	Title       string
	Source      string
	RecordCount int
	LoadError   string
	LoadHint    string
}

func Dashboard(props DashboardProps) templ.Component {
	if props.Title == "" {
		props.Title = DefaultTitle
	}
	return render("dashboard", struct {
		DashboardProps
		Sections []Section
	}{props, Sections})
}

func Overview(m models.OverallMetrics, currency string) templ.Component {
	return render("overview", struct {
		Metrics  models.OverallMetrics
		Currency string
	}{m, currency})
}

func Concentration(rows []models.CustomerConcentration, summary models.ConcentrationSummary, currency string) templ.Component {
	return render("concentration", struct {
		Rows     []models.CustomerConcentration
		Summary  models.ConcentrationSummary
		Currency string
	}{rows, summary, currency})
}

func RepeatBehavior(rows []models.RepeatSegment, currency string) templ.Component {
	return render("repeat-behavior", struct {
		Rows     []models.RepeatSegment
		Currency string
	}{rows, currency})
}

func Vendors(rows []models.VendorPerformance, currency string) templ.Component {
	return render("vendors", struct {
		Rows     []models.VendorPerformance
		Currency string
	}{rows, currency})
}

func OrderSegments(rows []models.OrderSizeSegment, currency string) templ.Component {
	return render("order-segments", struct {
		Rows     []models.OrderSizeSegment
		Currency string
	}{rows, currency})
}

func Logistics(m models.LogisticsMetrics, currency string) templ.Component {
	return render("logistics", struct {
		Metrics  models.LogisticsMetrics
		Currency string
	}{m, currency})
}

func OperationalRisk(m models.OperationalRisk, currency string) templ.Component {
	return render("operational-risk", struct {
		Metrics  models.OperationalRisk
		Currency string
	}{m, currency})
}

// LoadError replaces the element with ID target by a load failure notice.
func LoadError(target, message, hint string) templ.Component {
	return render("load-error", struct {
		Target  string
		Message string
		Hint    string
	}{target, message, hint})
}
