package service

import (
	"context"

	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/flexprice/invoice-dashboard/internal/metrics"
	"github.com/flexprice/invoice-dashboard/internal/types"
)

// fetchError maps a failed read to a FetchError carrying only message.
// The cause is logged and reported, never returned. Validation errors
// pass through unchanged.
func (p ServiceParams) fetchError(ctx context.Context, op, message string, err error) error {
	return p.boundary(ctx, op, message, err, ierr.ErrFetch, ierr.ErrCodeFetch)
}

// persistenceError maps a failed write to a PersistenceError carrying
// only message
func (p ServiceParams) persistenceError(ctx context.Context, op, message string, err error) error {
	return p.boundary(ctx, op, message, err, ierr.ErrPersistence, ierr.ErrCodePersistence)
}

func (p ServiceParams) boundary(ctx context.Context, op, message string, err error, kind error, code string) error {
	if ierr.IsValidation(err) {
		metrics.GatewayFailuresTotal.WithLabelValues(op, ierr.ErrCodeValidation).Inc()
		return err
	}

	p.Logger.Errorw(message,
		"operation", op,
		"error", err,
		"request_id", types.GetRequestID(ctx),
	)
	p.Sentry.CaptureException(ctx, op, err)
	metrics.GatewayFailuresTotal.WithLabelValues(op, code).Inc()

	return ierr.NewError(message).
		WithHint(message).
		Mark(kind)
}
