package telemetry

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBMetrics holds the database client instruments.
type DBMetrics struct {
	queryTotal      *Counter
	queryDuration   *Histogram
	slowQueryTotal  *Counter
	slowQueryThresh time.Duration
}

// NewDBMetrics creates the query instruments and, when sqlDB is not nil, an
// observable gauge reporting connection pool usage at collection time.
func NewDBMetrics(meter metric.Meter, sqlDB *sql.DB, slowQueryThresh time.Duration) (*DBMetrics, error) {
	if slowQueryThresh <= 0 {
		slowQueryThresh = DefaultSlowQueryThreshold
	}

	queryTotal, err := NewCounter(meter, "db_query_total", "Total number of database queries by operation", "{query}")
	if err != nil {
		return nil, err
	}
	queryDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency distribution in seconds",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	slowQueryTotal, err := NewCounter(meter, "db_slow_query_total", "Total number of slow database queries", "{query}")
	if err != nil {
		return nil, err
	}

	if sqlDB != nil {
		_, err = meter.Int64ObservableGauge("db_pool_connections",
			metric.WithDescription("Number of connections in the pool by state"),
			metric.WithUnit("{connection}"),
			metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
				stats := sqlDB.Stats()
				o.Observe(int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
				o.Observe(int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
				o.Observe(int64(stats.MaxOpenConnections), metric.WithAttributes(AttrDBState.String("max")))
				return nil
			}),
		)
		if err != nil {
			return nil, err
		}
	}

	return &DBMetrics{
		queryTotal:      queryTotal,
		queryDuration:   queryDuration,
		slowQueryTotal:  slowQueryTotal,
		slowQueryThresh: slowQueryThresh,
	}, nil
}

// RecordQuery records one completed statement.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, duration time.Duration) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}
	m.queryTotal.Inc(ctx, AttrDBOperation.String(operation))
	m.queryDuration.RecordDuration(ctx, duration, AttrDBOperation.String(operation))

	if duration > m.slowQueryThresh {
		if table == "" {
			table = "unknown"
		}
		m.slowQueryTotal.Inc(ctx, AttrDBTable.String(table))
	}
}

// Name implements gorm.Plugin.
func (m *DBMetrics) Name() string {
	return "db_metrics"
}

// Initialize implements gorm.Plugin.
func (m *DBMetrics) Initialize(db *gorm.DB) error {
	return registerAround(db, "db_metrics", markQueryStart, m.afterQuery)
}

func (m *DBMetrics) afterQuery(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	elapsed, _ := queryElapsed(db)
	m.RecordQuery(ctx, operationOf(db.Statement.SQL.String()), db.Statement.Table, elapsed)
}

func operationOf(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}

// RegisterDBMetrics installs query and pool metrics on db. It is a no-op
// when the meter provider is disabled.
func RegisterDBMetrics(db *gorm.DB, mp *MeterProvider, slowQueryThresh time.Duration, logger *zap.Logger) error {
	if mp == nil || !mp.IsEnabled() {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	m, err := NewDBMetrics(mp.Meter("db.client"), sqlDB, slowQueryThresh)
	if err != nil {
		return err
	}
	if err := db.Use(m); err != nil {
		return err
	}
	if logger != nil {
		logger.Info("Database metrics registered", zap.Duration("slow_query_threshold", m.slowQueryThresh))
	}
	return nil
}
