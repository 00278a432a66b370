// Command report loads an order export and prints the business report
// without starting the web server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"order-insights/internal/config"
	"order-insights/internal/errors"
	"order-insights/internal/observability"
	"order-insights/internal/pipeline"
	"order-insights/internal/services"
	"order-insights/internal/ui/templates"
)

type reportFlags struct {
	file     string
	sheet    string
	format   string
	topN     int
	currency string
	timeout  time.Duration
}

// newRootCmd seeds the flag defaults from the same configuration the web
// server reads (CONFIG_FILE, DATA_FILE, REPORT_TOP_N, ...). Explicit flags
// still win.
func newRootCmd() *cobra.Command {
	defaults, cfgErr := config.Load()
	if cfgErr != nil {
		defaults = config.Default()
	}
	flags := reportFlags{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print business metrics for an order export",
		Long: `Loads an .xlsx or .csv order export, drops cancelled and rejected orders,
and prints the overall, customer, vendor, logistics and risk metrics.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			return runReport(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", defaults.Data.SourceFile, "Order export to read (.xlsx or .csv)")
	cmd.Flags().StringVarP(&flags.sheet, "sheet", "s", defaults.Data.Sheet, "Worksheet name (defaults to the first sheet)")
	cmd.Flags().StringVarP(&flags.format, "format", "o", "text", "Output format: text or json")
	cmd.Flags().IntVarP(&flags.topN, "top", "n", defaults.Report.TopN, "Number of customers and vendors to list")
	cmd.Flags().StringVar(&flags.currency, "currency", defaults.Report.Currency, "Currency label for amounts")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", defaults.Data.LoadTimeout, "Maximum time to load the export")

	return cmd
}

func runReport(ctx context.Context, stdout, stderr io.Writer, flags reportFlags) error {
	if flags.format != "text" && flags.format != "json" {
		return fmt.Errorf("unknown format %q, must be text or json", flags.format)
	}
	if flags.topN <= 0 {
		return fmt.Errorf("--top must be positive, got %d", flags.topN)
	}

	logger := observability.NewLoggerTo(stderr, config.LoggerConfig{Level: "warn", Format: "text"})

	analytics := services.NewAnalytics(
		services.WithSource(flags.file, flags.sheet),
		services.WithTopN(flags.topN),
		services.WithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(ctx, flags.timeout)
	defer cancel()

	if err := analytics.Load(ctx); err != nil {
		return fmt.Errorf("%w\n%s", err, errors.LoadHint(err))
	}

	report := analytics.Report()
	if flags.format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return writeText(stdout, report, flags.currency)
}

func writeText(out io.Writer, r *pipeline.Report, currency string) error {
	money := func(v float64) string { return templates.Money(currency, v) }
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	o := r.Overall
	fmt.Fprintln(tw, "BUSINESS OVERVIEW\t")
	fmt.Fprintf(tw, "Total orders\t%s\t\n", templates.Count(o.TotalOrders))
	fmt.Fprintf(tw, "Unique customers\t%s\t\n", templates.Count(o.UniqueCustomers))
	fmt.Fprintf(tw, "Unique companies\t%s\t\n", templates.Count(o.UniqueCompanies))
	fmt.Fprintf(tw, "Unique vendors\t%s\t\n", templates.Count(o.UniqueVendors))
	fmt.Fprintf(tw, "Total revenue\t%s\t\n", money(o.TotalRevenue))
	fmt.Fprintf(tw, "Avg revenue per order\t%s\t\n", money(o.AvgRevenuePerOrder))
	fmt.Fprintf(tw, "Total GM1\t%s\t\n", money(o.TotalGM1))
	fmt.Fprintf(tw, "Total GM2\t%s\t\n", money(o.TotalGM2))
	fmt.Fprintf(tw, "GM1 margin\t%s\t\n", templates.Percent(o.GM1MarginPct))
	fmt.Fprintf(tw, "Total discounts\t%s\t\n", money(o.TotalDiscounts))
	fmt.Fprintf(tw, "Total refunds\t%s\t\n", money(o.TotalRefunds))
	fmt.Fprintln(tw, "\t")

	s := r.ConcentrationSummary
	fmt.Fprintf(tw, "CUSTOMER CONCENTRATION (top %d share %s, HHI %.4f %s)\t\n", s.TopN, templates.Percent(s.TopNSharePct), s.HHI, s.Band)
	fmt.Fprintln(tw, "Company\tCustomer\tOrders\tRevenue\tShare\t")
	for _, c := range r.Concentration {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t\n", c.Company, c.Customer, c.OrderCount, money(c.TotalRevenue), templates.Percent(c.PctOfTotalRevenue))
	}
	fmt.Fprintln(tw, "\t")

	fmt.Fprintln(tw, "REPEAT BEHAVIOR\t")
	fmt.Fprintln(tw, "Segment\tCustomers\tOrders\tRevenue\tPer customer\t")
	for _, seg := range r.RepeatBehavior {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t\n", seg.Segment, seg.CustomerCount, seg.OrderCount, money(seg.TotalRevenue), money(seg.AvgRevenuePerCustomer))
	}
	fmt.Fprintln(tw, "\t")

	fmt.Fprintln(tw, "VENDOR PERFORMANCE\t")
	fmt.Fprintln(tw, "Vendor\tOrders\tRevenue\tMargin\tRefunds\tLate\t")
	for _, v := range r.Vendors {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%d\t\n", v.Vendor, v.OrderCount, money(v.TotalRevenue), templates.Percent(v.MarginPct), v.RefundCount, v.LateDeliveries)
	}
	fmt.Fprintln(tw, "\t")

	fmt.Fprintln(tw, "ORDER SIZE SEGMENTS\t")
	fmt.Fprintln(tw, "Segment\tOrders\tRevenue\tAvg items\tMargin\t")
	for _, seg := range r.OrderSizes {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t\n", seg.Segment, seg.OrderCount, money(seg.TotalRevenue), templates.Number(seg.AvgItems), templates.Percent(seg.MarginPct))
	}
	fmt.Fprintln(tw, "\t")

	l := r.Logistics
	fmt.Fprintln(tw, "LOGISTICS\t")
	fmt.Fprintf(tw, "Delivery fees charged\t%s\t\n", money(l.DeliveryFeeCharged))
	fmt.Fprintf(tw, "Vendor delivery cost\t%s\t\n", money(l.VendorDeliveryCost))
	fmt.Fprintf(tw, "Smart logistics cost\t%s\t\n", money(l.SmartLogisticsCost))
	fmt.Fprintf(tw, "Net logistics margin\t%s\t\n", money(l.NetMargin))
	fmt.Fprintln(tw, "\t")

	k := r.OperationalRisk
	fmt.Fprintln(tw, "OPERATIONAL RISK\t")
	fmt.Fprintf(tw, "Orders with refunds\t%d (%s)\t\n", k.OrdersWithRefunds, templates.Percent(k.RefundRatePct))
	fmt.Fprintf(tw, "Refunded amount\t%s\t\n", money(k.TotalRefundAmount))
	fmt.Fprintf(tw, "Late deliveries\t%d (%s)\t\n", k.LateDeliveries, templates.Percent(k.LateDeliveryRatePct))
	fmt.Fprintf(tw, "On-time deliveries\t%d (%s)\t\n", k.OnTimeDeliveries, templates.Percent(k.OnTimeDeliveryRatePct))

	return tw.Flush()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
