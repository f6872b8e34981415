package db

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"minitweet/pkg/logger"
	"minitweet/pkg/metrics"
)

type queryStartKey struct{}

type queryStart struct {
	at  time.Time
	sql string
}

// QueryTracer records every query duration and warns about slow queries.
type QueryTracer struct {
	logger        *zap.Logger
	slowThreshold time.Duration
}

// NewQueryTracer returns a pgx.QueryTracer; zero threshold means 100ms.
func NewQueryTracer(logger *zap.Logger, slowThreshold time.Duration) *QueryTracer {
	if slowThreshold == 0 {
		slowThreshold = 100 * time.Millisecond
	}
	return &QueryTracer{
		logger:        logger,
		slowThreshold: slowThreshold,
	}
}

var _ pgx.QueryTracer = (*QueryTracer)(nil)

// TraceQueryStart 查询开始时的钩子
func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: time.Now(), sql: data.SQL})
}

// TraceQueryEnd 查询结束时的钩子
func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}

	duration := time.Since(start.at)
	metrics.RecordDBQueryDuration(operation(start.sql), duration)

	if duration <= t.slowThreshold {
		return
	}

	sql := strings.Join(strings.Fields(start.sql), " ")
	if len(sql) > 200 {
		sql = sql[:200] + "..."
	}

	logger.WithTrace(ctx, t.logger).Warn("slow-query",
		zap.String("sql", sql),
		zap.Duration("took", duration),
		zap.String("command_tag", data.CommandTag.String()),
		zap.Error(data.Err),
	)
	metrics.IncrementSlowQuery()
}

// operation returns the lower-cased leading SQL keyword.
func operation(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
