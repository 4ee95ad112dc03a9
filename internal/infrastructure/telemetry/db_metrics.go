package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBDurationBuckets are the query latency boundaries in seconds
var DBDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

const defaultSlowQueryThreshold = 200 * time.Millisecond

var (
	attrDBOperation = attribute.Key("db_operation")
	attrDBTable     = attribute.Key("db_table")
	attrDBState     = attribute.Key("state")
)

// DBMetrics holds the database client instruments. Pool gauges are
// observed from sql.DB stats at collection time.
type DBMetrics struct {
	queryTotal     metric.Int64Counter
	queryDuration  metric.Float64Histogram
	slowQueryTotal metric.Int64Counter
	registration   metric.Registration
	slowThreshold  time.Duration
}

// NewDBMetrics creates the query instruments and the pool gauges for sqlDB
func NewDBMetrics(meter metric.Meter, sqlDB *sql.DB, slowThreshold time.Duration) (*DBMetrics, error) {
	if meter == nil {
		return nil, fmt.Errorf("NewDBMetrics: %w", ErrMeterNil)
	}
	if slowThreshold <= 0 {
		slowThreshold = defaultSlowQueryThreshold
	}

	m := &DBMetrics{slowThreshold: slowThreshold}
	var err error
	if m.queryTotal, err = meter.Int64Counter("db_query_total",
		metric.WithDescription("Total number of database queries by operation type"),
		metric.WithUnit("{query}")); err != nil {
		return nil, fmt.Errorf("failed to create query counter: %w", err)
	}
	if m.queryDuration, err = meter.Float64Histogram("db_query_duration_seconds",
		metric.WithDescription("Database query latency distribution in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DBDurationBuckets...)); err != nil {
		return nil, fmt.Errorf("failed to create query duration histogram: %w", err)
	}
	if m.slowQueryTotal, err = meter.Int64Counter("db_slow_query_total",
		metric.WithDescription("Queries slower than the slow query threshold, by table"),
		metric.WithUnit("{query}")); err != nil {
		return nil, fmt.Errorf("failed to create slow query counter: %w", err)
	}

	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Number of connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create pool gauge: %w", err)
	}
	maxOpen, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum number of open connections"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create pool max gauge: %w", err)
	}
	if sqlDB != nil {
		m.registration, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
			stats := sqlDB.Stats()
			o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
			o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(attrDBState.String("idle")))
			o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(attrDBState.String("in_use")))
			o.ObserveInt64(connections, int64(stats.OpenConnections), metric.WithAttributes(attrDBState.String("open")))
			return nil
		}, connections, maxOpen)
		if err != nil {
			return nil, fmt.Errorf("failed to register pool callback: %w", err)
		}
	}
	return m, nil
}

// RecordQuery records one finished query
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, elapsed time.Duration) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}
	attrs := metric.WithAttributes(attrDBOperation.String(operation))
	m.queryTotal.Add(ctx, 1, attrs)
	m.queryDuration.Record(ctx, elapsed.Seconds(), attrs)

	if elapsed > m.slowThreshold {
		if table == "" {
			table = "unknown"
		}
		m.slowQueryTotal.Add(ctx, 1, metric.WithAttributes(attrDBTable.String(table)))
	}
}

// Stop unregisters the pool gauges. Safe to call more than once.
func (m *DBMetrics) Stop() error {
	if m == nil || m.registration == nil {
		return nil
	}
	err := m.registration.Unregister()
	m.registration = nil
	return err
}

type dbMetricsContextKey struct{}

// dbMetricsPlugin times every gorm operation and feeds DBMetrics
type dbMetricsPlugin struct {
	metrics *DBMetrics
}

func (p *dbMetricsPlugin) Name() string {
	return "db_metrics"
}

func (p *dbMetricsPlugin) Initialize(db *gorm.DB) error {
	before := func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		db.Statement.Context = context.WithValue(ctx, dbMetricsContextKey{}, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			ctx := db.Statement.Context
			if ctx == nil {
				return
			}
			start, ok := ctx.Value(dbMetricsContextKey{}).(time.Time)
			if !ok {
				return
			}
			op := operation
			if op == "" {
				op = detectOperationType(db.Statement.SQL.String())
			}
			p.metrics.RecordQuery(ctx, op, db.Statement.Table, time.Since(start))
		}
	}

	cb := db.Callback()
	registrations := []error{
		cb.Create().Before("gorm:create").Register("db_metrics:before_create", before),
		cb.Query().Before("gorm:query").Register("db_metrics:before_query", before),
		cb.Update().Before("gorm:update").Register("db_metrics:before_update", before),
		cb.Delete().Before("gorm:delete").Register("db_metrics:before_delete", before),
		cb.Row().Before("gorm:row").Register("db_metrics:before_row", before),
		cb.Raw().Before("gorm:raw").Register("db_metrics:before_raw", before),
		cb.Create().After("gorm:create").Register("db_metrics:after_create", after("INSERT")),
		cb.Query().After("gorm:query").Register("db_metrics:after_query", after("SELECT")),
		cb.Update().After("gorm:update").Register("db_metrics:after_update", after("UPDATE")),
		cb.Delete().After("gorm:delete").Register("db_metrics:after_delete", after("DELETE")),
		cb.Row().After("gorm:row").Register("db_metrics:after_row", after("")),
		cb.Raw().After("gorm:raw").Register("db_metrics:after_raw", after("")),
	}
	for _, err := range registrations {
		if err != nil {
			return err
		}
	}
	return nil
}

func detectOperationType(query string) string {
	query = strings.ToUpper(strings.TrimSpace(query))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(query, op) {
			return op
		}
	}
	return "OTHER"
}

// RegisterDBMetrics creates the database instruments on meter and installs
// the query timing plugin on db. Call Stop on shutdown.
func RegisterDBMetrics(db *gorm.DB, meter metric.Meter, slowThreshold time.Duration, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	m, err := NewDBMetrics(meter, sqlDB, slowThreshold)
	if err != nil {
		return nil, err
	}
	if err := db.Use(&dbMetricsPlugin{metrics: m}); err != nil {
		_ = m.Stop()
		return nil, fmt.Errorf("failed to register db metrics plugin: %w", err)
	}
	logger.Info("Database metrics registered", zap.Duration("slow_query_threshold", m.slowThreshold))
	return m, nil
}
