package service

import (
	"github.com/flexprice/invoice-dashboard/internal/cache"
	"github.com/flexprice/invoice-dashboard/internal/config"
	"github.com/flexprice/invoice-dashboard/internal/domain/customer"
	"github.com/flexprice/invoice-dashboard/internal/domain/invoice"
	"github.com/flexprice/invoice-dashboard/internal/domain/revenue"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/sentry"
	"github.com/flexprice/invoice-dashboard/internal/types"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Sentry *sentry.Service
	Clock  types.Clock

	// Cached views and their invalidation
	Cache cache.Cache
	Views cache.ViewInvalidator

	// Repositories
	InvoiceRepo  invoice.Repository
	CustomerRepo customer.Repository
	RevenueRepo  revenue.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	sentry *sentry.Service,
	viewCache cache.Cache,
	views cache.ViewInvalidator,
	invoiceRepo invoice.Repository,
	customerRepo customer.Repository,
	revenueRepo revenue.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		Sentry:       sentry,
		Clock:        types.SystemClock,
		Cache:        viewCache,
		Views:        views,
		InvoiceRepo:  invoiceRepo,
		CustomerRepo: customerRepo,
		RevenueRepo:  revenueRepo,
	}
}
