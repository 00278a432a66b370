package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"order-insights/internal/models"
	"order-insights/internal/observability"
)

const maxWorkers = 4

// Report bundles every aggregate the dashboard shows. It is computed from
// scratch for each dataset and never modified afterwards.
type Report struct {
	Overall              models.OverallMetrics          `json:"overall"`
	Concentration        []models.CustomerConcentration `json:"concentration"`
	ConcentrationSummary models.ConcentrationSummary    `json:"concentration_summary"`
	RepeatBehavior       []models.RepeatSegment         `json:"repeat_behavior"`
	Vendors              []models.VendorPerformance     `json:"vendors"`
	OrderSizes           []models.OrderSizeSegment      `json:"order_segments"`
	Logistics            models.LogisticsMetrics        `json:"logistics"`
	OperationalRisk      models.OperationalRisk         `json:"operational_risk"`
	RecordCount          int                            `json:"record_count"`
	GeneratedAt          time.Time                      `json:"generated_at"`
}

type Options struct {
	// TopN bounds the concentration and vendor rankings. Zero means DefaultTopN.
	TopN   int
	Logger *slog.Logger
}

// Empty returns the report of a dataset without orders. Segment lists are
// still fully populated with zero rows.
func Empty() *Report {
	return &Report{
		Overall:              Overall(nil),
		Concentration:        Concentration(nil, DefaultTopN),
		ConcentrationSummary: ConcentrationSummarize(nil),
		RepeatBehavior:       RepeatBehavior(nil),
		Vendors:              VendorPerformance(nil, DefaultTopN),
		OrderSizes:           OrderSizeSegments(nil),
		Logistics:            Logistics(nil),
		OperationalRisk:      OperationalRiskMetrics(nil),
		GeneratedAt:          time.Now().UTC(),
	}
}

// Run evaluates all aggregations over orders. The stages share the read-only
// slice and run concurrently; each writes only its own Report field.
func Run(ctx context.Context, orders []models.Order, opts Options) (*Report, error) {
	topN := opts.TopN
	if topN == 0 {
		topN = DefaultTopN
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, span := observability.StartSpan(ctx, "pipeline.run")
	span.SetTag("records", fmt.Sprint(len(orders)))
	defer span.End(logger)

	report := &Report{RecordCount: len(orders)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	stage := func(name string, fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, s := observability.StartSpan(gctx, "pipeline."+name)
			fn()
			s.End(logger)
			return nil
		})
	}

	stage("overall", func() { report.Overall = Overall(orders) })
	stage("concentration", func() {
		report.Concentration = Concentration(orders, topN)
		report.ConcentrationSummary = ConcentrationSummarize(orders)
	})
	stage("repeat_behavior", func() { report.RepeatBehavior = RepeatBehavior(orders) })
	stage("vendors", func() { report.Vendors = VendorPerformance(orders, topN) })
	stage("order_sizes", func() { report.OrderSizes = OrderSizeSegments(orders) })
	stage("logistics", func() { report.Logistics = Logistics(orders) })
	stage("operational_risk", func() { report.OperationalRisk = OperationalRiskMetrics(orders) })

	if err := g.Wait(); err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("run pipeline: %w", err)
	}
	report.GeneratedAt = time.Now().UTC()
	return report, nil
}
