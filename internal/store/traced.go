package store

import (
	"context"
	"time"

	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/metrics"
	"github.com/flexprice/invoice-dashboard/internal/sentry"
)

// TracedClient wraps a Client with logging, metrics and Sentry spans
type TracedClient struct {
	Client
	logger *logger.Logger
	sentry *sentry.Service
}

// NewTracedClient creates a new traced client
func NewTracedClient(c Client, logger *logger.Logger, sentry *sentry.Service) *TracedClient {
	return &TracedClient{
		Client: c,
		logger: logger,
		sentry: sentry,
	}
}

// callTracer records one store call
type callTracer struct {
	logger *logger.Logger
	op     string
	table  string
	detail string
	start  time.Time
	finish func(error)
}

func (tc *TracedClient) trace(ctx context.Context, op, table, detail string) (context.Context, *callTracer) {
	span, spanCtx := tc.sentry.StartStoreSpan(ctx, op, table, map[string]interface{}{
		"detail": detail,
	})
	return spanCtx, &callTracer{
		logger: tc.logger,
		op:     op,
		table:  table,
		detail: detail,
		start:  time.Now(),
		finish: func(err error) { sentry.FinishSpan(span, err) },
	}
}

// Done logs the call completion
func (ct *callTracer) Done(err error) {
	duration := time.Since(ct.start)
	metrics.StoreRequestDuration.WithLabelValues(ct.op, ct.table).Observe(duration.Seconds())
	ct.finish(err)

	fields := []interface{}{
		"op", ct.op,
		"table", ct.table,
		"duration_ms", duration.Milliseconds(),
		"detail", ct.detail,
	}
	if err != nil {
		metrics.StoreRequestsTotal.WithLabelValues(ct.op, ct.table, "error").Inc()
		fields = append(fields, "error", err.Error())
		ct.logger.Errorw("store call failed", fields...)
		return
	}
	metrics.StoreRequestsTotal.WithLabelValues(ct.op, ct.table, "ok").Inc()
	ct.logger.Debugw("store call completed", fields...)
}

func (tc *TracedClient) Select(ctx context.Context, q *Query) (*Result, error) {
	ctx, tracer := tc.trace(ctx, "select", q.Table, q.String())
	res, err := tc.Client.Select(ctx, q)
	tracer.Done(err)
	return res, err
}

func (tc *TracedClient) Insert(ctx context.Context, table string, record Record) error {
	ctx, tracer := tc.trace(ctx, "insert", table, "")
	err := tc.Client.Insert(ctx, table, record)
	tracer.Done(err)
	return err
}

func (tc *TracedClient) Update(ctx context.Context, table string, m Match, record Record) error {
	ctx, tracer := tc.trace(ctx, "update", table, m.Column)
	err := tc.Client.Update(ctx, table, m, record)
	tracer.Done(err)
	return err
}

func (tc *TracedClient) Delete(ctx context.Context, table string, m Match) (int, error) {
	ctx, tracer := tc.trace(ctx, "delete", table, m.Column)
	n, err := tc.Client.Delete(ctx, table, m)
	tracer.Done(err)
	return n, err
}
