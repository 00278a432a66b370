package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"order-insights/internal/loader"
	"order-insights/internal/models"
	"order-insights/internal/observability"
	"order-insights/internal/pipeline"
)

var ErrNoSource = errors.New("no data source configured")

// Analytics is the entry point of the pipeline: it loads the order source,
// keeps the current report and serves read-only views of it.
type Analytics struct {
	mu      sync.RWMutex
	current *snapshot
	ready   bool
	loadErr error

	path   string
	sheet  string
	topN   int
	cache  *Cache
	loads  singleflight.Group
	logger *slog.Logger
}

type Option func(*Analytics)

func WithSource(path, sheet string) Option {
	return func(a *Analytics) {
		a.path = path
		a.sheet = sheet
	}
}

func WithTopN(n int) Option {
	return func(a *Analytics) { a.topN = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Analytics) { a.logger = logger }
}

func NewAnalytics(opts ...Option) *Analytics {
	a := &Analytics{
		topN:   pipeline.DefaultTopN,
		cache:  NewCache(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.current = &snapshot{report: pipeline.Empty(), dataset: &loader.Dataset{}}
	return a
}

func (a *Analytics) pipelineOptions() pipeline.Options {
	return pipeline.Options{TopN: a.topN, Logger: a.logger}
}

// Load makes the configured source the current dataset. An unchanged source
// is served from the cache without being read again.
func (a *Analytics) Load(ctx context.Context) error {
	if a.path == "" {
		return a.fail(&loader.LoadError{Op: "configure", Err: ErrNoSource})
	}

	key, err := fingerprintOf(a.path, a.sheet)
	if err != nil {
		return a.fail(err)
	}

	if snap, ok := a.cache.get(key); ok {
		a.setCurrent(snap)
		a.logger.Info("loaded from cache", "source", a.path, "records", snap.report.RecordCount)
		return nil
	}

	v, err, shared := a.loads.Do(key.String(), func() (any, error) {
		return a.build(ctx, key)
	})
	if err != nil {
		return a.fail(err)
	}

	snap := v.(*snapshot)
	a.setCurrent(snap)
	if shared {
		a.logger.Debug("load shared with concurrent caller", "source", a.path)
	}
	return nil
}

// Reload drops the cached snapshot and reads the source again.
func (a *Analytics) Reload(ctx context.Context) error {
	a.cache.Invalidate()
	return a.Load(ctx)
}

func (a *Analytics) build(ctx context.Context, key fingerprint) (*snapshot, error) {
	ctx, span := observability.StartSpan(ctx, "analytics.load")
	span.SetTag("source", key.Path)
	defer span.End(a.logger)

	start := time.Now()
	a.logger.Info("processing order source", "filename", key.Path, "sheet", key.Sheet)

	ds, err := loader.Load(ctx, key.Path, loader.Options{Sheet: key.Sheet})
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	if len(ds.Schema.Missing) > 0 {
		a.logger.Warn("order source is missing columns, affected metrics default to zero",
			"missing", ds.Schema.Missing)
	}

	report, err := pipeline.Run(ctx, ds.Orders, a.pipelineOptions())
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	snap := &snapshot{key: key, dataset: ds, report: report, loadedAt: time.Now()}
	a.cache.put(snap)

	duration := time.Since(start)
	a.logger.Info("order source processed",
		"records", len(ds.Orders),
		"excluded", ds.Excluded,
		"duration", duration,
		"rate", fmt.Sprintf("%.0f records/sec", float64(ds.RawRows)/duration.Seconds()))

	return snap, nil
}

func (a *Analytics) fail(err error) error {
	a.mu.Lock()
	a.loadErr = err
	a.mu.Unlock()

	a.logger.Error("failed to load order data", "source", a.path, "error", err)
	return fmt.Errorf("load orders: %w", err)
}

func (a *Analytics) setCurrent(s *snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = s
	a.ready = true
	a.loadErr = nil
}

// SetData replaces the current dataset with already-normalized orders.
func (a *Analytics) SetData(orders []models.Order) {
	report, err := pipeline.Run(context.Background(), orders, a.pipelineOptions())
	if err != nil {
		a.logger.Error("failed to compute report", "error", err)
		return
	}
	a.setCurrent(&snapshot{
		dataset:  &loader.Dataset{Orders: orders, RawRows: len(orders)},
		report:   report,
		loadedAt: time.Now(),
	})
}

// Ready reports whether a dataset has been loaded successfully.
func (a *Analytics) Ready() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ready
}

// LoadErr returns the error of the last failed load, or nil.
func (a *Analytics) LoadErr() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loadErr
}

func (a *Analytics) Source() string {
	return a.path
}

func (a *Analytics) Report() *pipeline.Report {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current.report
}

func (a *Analytics) Overall() models.OverallMetrics {
	return a.Report().Overall
}

func (a *Analytics) Concentration() []models.CustomerConcentration {
	return a.Report().Concentration
}

func (a *Analytics) ConcentrationSummary() models.ConcentrationSummary {
	return a.Report().ConcentrationSummary
}

func (a *Analytics) RepeatBehavior() []models.RepeatSegment {
	return a.Report().RepeatBehavior
}

func (a *Analytics) Vendors() []models.VendorPerformance {
	return a.Report().Vendors
}

func (a *Analytics) OrderSizes() []models.OrderSizeSegment {
	return a.Report().OrderSizes
}

func (a *Analytics) Logistics() models.LogisticsMetrics {
	return a.Report().Logistics
}

func (a *Analytics) OperationalRisk() models.OperationalRisk {
	return a.Report().OperationalRisk
}

// Utility method for monitoring
func (a *Analytics) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := map[string]any{
		"source":         a.path,
		"sheet":          a.sheet,
		"ready":          a.ready,
		"record_count":   a.current.report.RecordCount,
		"raw_rows":       a.current.dataset.RawRows,
		"excluded_rows":  a.current.dataset.Excluded,
		"loaded_at":      a.current.loadedAt,
		"generated_at":   a.current.report.GeneratedAt,
		"customers":      a.current.report.Overall.UniqueCustomers,
		"vendors":        a.current.report.Overall.UniqueVendors,
		"cache_hits":     a.cache.Hits(),
		"cache_misses":   a.cache.Misses(),
		"missing_fields": a.current.dataset.Schema.Missing,
	}
	if a.loadErr != nil {
		stats["load_error"] = a.loadErr.Error()
	}
	return stats
}
