package repository

import (
	"context"

	"github.com/flexprice/invoice-dashboard/internal/config"
	"github.com/flexprice/invoice-dashboard/internal/domain/customer"
	"github.com/flexprice/invoice-dashboard/internal/domain/invoice"
	"github.com/flexprice/invoice-dashboard/internal/domain/revenue"
	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/flexprice/invoice-dashboard/internal/httpclient"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/repository/remote"
	"github.com/flexprice/invoice-dashboard/internal/sentry"
	"github.com/flexprice/invoice-dashboard/internal/store"
	"github.com/flexprice/invoice-dashboard/internal/store/postgres"
	"github.com/flexprice/invoice-dashboard/internal/store/supabase"
	"github.com/flexprice/invoice-dashboard/internal/types"
	"go.uber.org/fx"
)

// NewStoreClient creates the remote data client for the configured
// backend. It is created once and shared by every repository.
func NewStoreClient(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	logger *logger.Logger,
	sentry *sentry.Service,
) (store.Client, error) {
	var client store.Client

	switch cfg.Store.Backend {
	case types.StoreBackendSupabase:
		http := httpclient.NewClient(httpclient.ClientConfig{Timeout: cfg.Supabase.Timeout})
		c, err := supabase.NewClient(cfg, http, logger)
		if err != nil {
			return nil, err
		}
		client = c
	case types.StoreBackendPostgres:
		db, err := postgres.NewDB(cfg, logger)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				db.Close()
				return nil
			},
		})
		client = postgres.NewClient(db)
	default:
		return nil, ierr.NewError("unknown store backend").
			WithHintf("Unsupported store backend %q", cfg.Store.Backend).
			Mark(ierr.ErrSystem)
	}

	logger.Infow("store client ready", "backend", cfg.Store.Backend)
	return store.NewTracedClient(client, logger, sentry), nil
}

func NewInvoiceRepository(client store.Client, logger *logger.Logger) invoice.Repository {
	return remote.NewInvoiceRepository(client, logger)
}

func NewCustomerRepository(client store.Client, logger *logger.Logger) customer.Repository {
	return remote.NewCustomerRepository(client, logger)
}

func NewRevenueRepository(client store.Client, logger *logger.Logger) revenue.Repository {
	return remote.NewRevenueRepository(client, logger)
}
