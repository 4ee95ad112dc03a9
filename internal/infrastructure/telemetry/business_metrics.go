package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when an instrument set is built without a meter
var ErrMeterNil = errors.New("meter cannot be nil")

// ReportDurationBuckets are the report computation boundaries in seconds
var ReportDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

var (
	attrReportKind      = attribute.Key("report_kind")
	attrCacheResult     = attribute.Key("cache_result")
	attrTransactionKind = attribute.Key("transaction_kind")
)

// BusinessMetrics tracks dashboard and ledger activity: reports computed,
// report cache lookups and recorded cash flow.
type BusinessMetrics struct {
	reportComputed     metric.Int64Counter
	reportDuration     metric.Float64Histogram
	cacheLookups       metric.Int64Counter
	transactionTotal   metric.Int64Counter
	transactionCentavo metric.Int64Counter
}

// NewBusinessMetrics creates the business instruments on meter
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, fmt.Errorf("NewBusinessMetrics: %w", ErrMeterNil)
	}

	bm := &BusinessMetrics{}
	var err error
	if bm.reportComputed, err = meter.Int64Counter("salon_report_computed_total",
		metric.WithDescription("Reports computed from the ledger, by kind"),
		metric.WithUnit("{report}")); err != nil {
		return nil, fmt.Errorf("failed to create report counter: %w", err)
	}
	if bm.reportDuration, err = meter.Float64Histogram("salon_report_compute_duration_seconds",
		metric.WithDescription("Time spent loading data and computing a report"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(ReportDurationBuckets...)); err != nil {
		return nil, fmt.Errorf("failed to create report duration histogram: %w", err)
	}
	if bm.cacheLookups, err = meter.Int64Counter("salon_report_cache_lookup_total",
		metric.WithDescription("Report cache lookups by result"),
		metric.WithUnit("{lookup}")); err != nil {
		return nil, fmt.Errorf("failed to create cache lookup counter: %w", err)
	}
	if bm.transactionTotal, err = meter.Int64Counter("salon_transaction_recorded_total",
		metric.WithDescription("Ledger transactions recorded, by kind"),
		metric.WithUnit("{transaction}")); err != nil {
		return nil, fmt.Errorf("failed to create transaction counter: %w", err)
	}
	if bm.transactionCentavo, err = meter.Int64Counter("salon_transaction_amount_total",
		metric.WithDescription("Recorded transaction amounts in centavos, by kind"),
		metric.WithUnit("{centavo}")); err != nil {
		return nil, fmt.Errorf("failed to create transaction amount counter: %w", err)
	}
	return bm, nil
}

// RecordReportComputed counts a report built from repository data
func (bm *BusinessMetrics) RecordReportComputed(ctx context.Context, kind string, elapsed time.Duration) {
	attrs := metric.WithAttributes(attrReportKind.String(kind))
	bm.reportComputed.Add(ctx, 1, attrs)
	bm.reportDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordCacheLookup counts a report cache hit or miss
func (bm *BusinessMetrics) RecordCacheLookup(ctx context.Context, kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	bm.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attrReportKind.String(kind),
		attrCacheResult.String(result),
	))
}

// RecordTransaction counts a recorded ENTRADA or SAIDA and its amount
func (bm *BusinessMetrics) RecordTransaction(ctx context.Context, kind string, amount decimal.Decimal) {
	attrs := metric.WithAttributes(attrTransactionKind.String(kind))
	bm.transactionTotal.Add(ctx, 1, attrs)
	// counters are monotonic
	if centavos := amount.Shift(2).Round(0).IntPart(); centavos > 0 {
		bm.transactionCentavo.Add(ctx, centavos, attrs)
	}
}
