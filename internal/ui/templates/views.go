package templates

const dashboardView = `{{define "dashboard"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"></script>
<style>
body{font-family:system-ui,sans-serif;margin:0;background:#f5f6f8;color:#1f2933}
header{background:#1f2933;color:#fff;padding:1.5rem 2rem}
header p{margin:.25rem 0 0;color:#cbd2d9}
main{display:grid;gap:1.5rem;padding:1.5rem 2rem}
section{background:#fff;border-radius:8px;padding:1rem 1.5rem;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.kpi-grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(180px,1fr));gap:1rem}
.kpi{display:flex;flex-direction:column}
.kpi-label{font-size:.8rem;color:#616e7c}
.kpi-value{font-size:1.25rem;font-weight:600}
.modern-table{width:100%;border-collapse:collapse}
.modern-table th,.modern-table td{padding:.4rem .6rem;border-bottom:1px solid #e4e7eb;text-align:left}
.num{text-align:right}
.negative{color:#c62828}
.badge{padding:.1rem .5rem;border-radius:999px;font-size:.8rem}
.badge-normal{background:#e3f9e5;color:#1b5e20}
.badge-elevated{background:#fff3c4;color:#8d6e00}
.badge-high{background:#ffe3e3;color:#c62828}
.load-error{border-left:4px solid #c62828;padding:.75rem 1rem;background:#fff5f5}
.hint{color:#616e7c}
</style>
</head>
<body data-signals="{recordCount: {{.RecordCount}}, generatedAt: ''}">
<header>
<h1>{{.Title}}</h1>
<p>Order performance for {{.Source}} &middot; <span data-text="$recordCount"></span> orders</p>
<button data-on:click="@get('/sse/refresh-all')">Refresh</button>
</header>
<main>
{{if .LoadError}}<div id="load-error" class="load-error">
<strong>Order data could not be loaded.</strong>
<p>{{.LoadError}}</p>
<p class="hint">{{.LoadHint}}</p>
</div>{{end}}
{{range .Sections}}<section id="{{.ID}}">
<h2>{{.Title}}</h2>
<div id="{{.ID}}-content" data-init="@get('{{.Endpoint}}')">Loading&hellip;</div>
</section>
{{end}}</main>
</body>
</html>
{{end}}`

const sectionViews = `
{{define "overview"}}<div id="overview-content" class="kpi-grid">
{{with .Metrics}}<div class="kpi"><span class="kpi-label">Total Orders</span><span class="kpi-value">{{count .TotalOrders}}</span></div>
<div class="kpi"><span class="kpi-label">Unique Customers</span><span class="kpi-value">{{count .UniqueCustomers}}</span></div>
<div class="kpi"><span class="kpi-label">Unique Companies</span><span class="kpi-value">{{count .UniqueCompanies}}</span></div>
<div class="kpi"><span class="kpi-label">Unique Vendors</span><span class="kpi-value">{{count .UniqueVendors}}</span></div>
<div class="kpi"><span class="kpi-label">Total Revenue</span><span class="kpi-value">{{money $.Currency .TotalRevenue}}</span></div>
<div class="kpi"><span class="kpi-label">Avg Revenue / Order</span><span class="kpi-value">{{money $.Currency .AvgRevenuePerOrder}}</span></div>
<div class="kpi"><span class="kpi-label">Total GM1</span><span class="kpi-value">{{money $.Currency .TotalGM1}}</span></div>
<div class="kpi"><span class="kpi-label">Total GM2</span><span class="kpi-value">{{money $.Currency .TotalGM2}}</span></div>
<div class="kpi"><span class="kpi-label">Avg GM1 / Order</span><span class="kpi-value">{{money $.Currency .AvgGM1PerOrder}}</span></div>
<div class="kpi"><span class="kpi-label">GM1 Margin</span><span class="kpi-value">{{pct .GM1MarginPct}}</span></div>
<div class="kpi"><span class="kpi-label">Discounts</span><span class="kpi-value">{{money $.Currency .TotalDiscounts}}</span></div>
<div class="kpi"><span class="kpi-label">Refunds</span><span class="kpi-value">{{money $.Currency .TotalRefunds}}</span></div>{{end}}
</div>{{end}}

{{define "concentration"}}<div id="concentration-content">
{{with .Summary}}<p>Top {{.TopN}} groups hold <strong>{{pct .TopNSharePct}}</strong> of revenue across {{count .Groups}} customer groups. HHI {{printf "%.4f" .HHI}} ({{.Band}}).</p>{{end}}
<table class="modern-table">
<thead><tr><th>#</th><th>Company</th><th>Customer</th><th>Customer ID</th><th class="num">Orders</th><th class="num">Revenue</th><th class="num">GM1</th><th class="num">Share</th><th class="num">Avg Order</th></tr></thead>
<tbody>
{{range $i, $c := .Rows}}<tr>
<td>{{inc $i}}</td>
<td>{{$c.Company}}</td>
<td>{{$c.Customer}}</td>
<td>{{$c.CustomerID}}</td>
<td class="num">{{count $c.OrderCount}}</td>
<td class="num"><strong>{{money $.Currency $c.TotalRevenue}}</strong></td>
<td class="num">{{money $.Currency $c.TotalGM1}}</td>
<td class="num"><span class="badge badge-{{risk $c.PctOfTotalRevenue}}">{{pct $c.PctOfTotalRevenue}}</span></td>
<td class="num">{{money $.Currency $c.AvgOrderValue}}</td>
</tr>{{else}}<tr><td colspan="9">No customer orders</td></tr>{{end}}
</tbody>
</table>
</div>{{end}}

{{define "repeat-behavior"}}<div id="repeat-behavior-content">
<table class="modern-table">
<thead><tr><th>Segment</th><th class="num">Customers</th><th class="num">Orders</th><th class="num">Revenue</th><th class="num">GM1</th><th class="num">Avg Revenue / Customer</th></tr></thead>
<tbody>
{{range .Rows}}<tr>
<td>{{.Segment}}</td>
<td class="num">{{count .CustomerCount}}</td>
<td class="num">{{count .OrderCount}}</td>
<td class="num">{{money $.Currency .TotalRevenue}}</td>
<td class="num">{{money $.Currency .TotalGM1}}</td>
<td class="num">{{money $.Currency .AvgRevenuePerCustomer}}</td>
</tr>{{end}}
</tbody>
</table>
</div>{{end}}

{{define "vendors"}}<div id="vendors-content">
<table class="modern-table">
<thead><tr><th>Vendor</th><th class="num">Orders</th><th class="num">Revenue</th><th class="num">GM1</th><th class="num">Commission</th><th class="num">Refunds</th><th class="num">Late</th><th class="num">Avg / Order</th><th class="num">Margin</th></tr></thead>
<tbody>
{{range .Rows}}<tr>
<td>{{.Vendor}}</td>
<td class="num">{{count .OrderCount}}</td>
<td class="num"><strong>{{money $.Currency .TotalRevenue}}</strong></td>
<td class="num">{{money $.Currency .TotalGM1}}</td>
<td class="num">{{money $.Currency .TotalCommission}}</td>
<td class="num">{{count .RefundCount}}</td>
<td class="num">{{count .LateDeliveries}}</td>
<td class="num">{{money $.Currency .AvgRevenuePerOrder}}</td>
<td class="num {{sign .MarginPct}}">{{pct .MarginPct}}</td>
</tr>{{else}}<tr><td colspan="9">No vendor orders</td></tr>{{end}}
</tbody>
</table>
</div>{{end}}

{{define "order-segments"}}<div id="order-segments-content">
<table class="modern-table">
<thead><tr><th>Segment</th><th class="num">Orders</th><th class="num">Revenue</th><th class="num">GM1</th><th class="num">Avg Items</th><th class="num">Avg Revenue</th><th class="num">Margin</th></tr></thead>
<tbody>
{{range .Rows}}<tr>
<td>{{.Segment}}</td>
<td class="num">{{count .OrderCount}}</td>
<td class="num">{{money $.Currency .TotalRevenue}}</td>
<td class="num">{{money $.Currency .TotalGM1}}</td>
<td class="num">{{num .AvgItems}}</td>
<td class="num">{{money $.Currency .AvgRevenue}}</td>
<td class="num {{sign .MarginPct}}">{{pct .MarginPct}}</td>
</tr>{{end}}
</tbody>
</table>
</div>{{end}}

{{define "logistics"}}<div id="logistics-content" class="kpi-grid">
{{with .Metrics}}<div class="kpi"><span class="kpi-label">Delivery Fees Charged</span><span class="kpi-value">{{money $.Currency .DeliveryFeeCharged}}</span></div>
<div class="kpi"><span class="kpi-label">Vendor Delivery Cost</span><span class="kpi-value">{{money $.Currency .VendorDeliveryCost}}</span></div>
<div class="kpi"><span class="kpi-label">Smart Logistics Cost</span><span class="kpi-value">{{money $.Currency .SmartLogisticsCost}}</span></div>
<div class="kpi"><span class="kpi-label">Net Logistics Margin</span><span class="kpi-value {{sign .NetMargin}}">{{money $.Currency .NetMargin}}</span></div>
<div class="kpi"><span class="kpi-label">Net Margin / Revenue</span><span class="kpi-value {{sign .NetMarginPctOfRevenue}}">{{pct .NetMarginPctOfRevenue}}</span></div>{{end}}
</div>{{end}}

{{define "operational-risk"}}<div id="operational-risk-content" class="kpi-grid">
{{with .Metrics}}<div class="kpi"><span class="kpi-label">Orders</span><span class="kpi-value">{{count .TotalOrders}}</span></div>
<div class="kpi"><span class="kpi-label">Orders With Refunds</span><span class="kpi-value">{{count .OrdersWithRefunds}}</span></div>
<div class="kpi"><span class="kpi-label">Refund Rate</span><span class="kpi-value"><span class="badge badge-{{risk .RefundRatePct}}">{{pct .RefundRatePct}}</span></span></div>
<div class="kpi"><span class="kpi-label">Refunded Amount</span><span class="kpi-value">{{money $.Currency .TotalRefundAmount}}</span></div>
<div class="kpi"><span class="kpi-label">Late Deliveries</span><span class="kpi-value">{{count .LateDeliveries}}</span></div>
<div class="kpi"><span class="kpi-label">Late Delivery Rate</span><span class="kpi-value"><span class="badge badge-{{risk .LateDeliveryRatePct}}">{{pct .LateDeliveryRatePct}}</span></span></div>
<div class="kpi"><span class="kpi-label">On-time Rate</span><span class="kpi-value">{{pct .OnTimeDeliveryRatePct}}</span></div>{{end}}
</div>{{end}}

{{define "load-error"}}<div id="{{.Target}}" class="load-error">
<strong>Order data could not be loaded.</strong>
<p>{{.Message}}</p>
<p class="hint">{{.Hint}}</p>
</div>{{end}}
`
