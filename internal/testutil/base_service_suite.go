package testutil

import (
	"context"
	"time"

	"github.com/flexprice/invoice-dashboard/internal/cache"
	"github.com/flexprice/invoice-dashboard/internal/config"
	"github.com/flexprice/invoice-dashboard/internal/domain/customer"
	"github.com/flexprice/invoice-dashboard/internal/domain/invoice"
	"github.com/flexprice/invoice-dashboard/internal/domain/revenue"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/repository/remote"
	"github.com/flexprice/invoice-dashboard/internal/store"
	"github.com/flexprice/invoice-dashboard/internal/types"
	"github.com/flexprice/invoice-dashboard/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	InvoiceRepo  invoice.Repository
	CustomerRepo customer.Repository
	RevenueRepo  revenue.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites.
// Repositories are the real ones running against an in-memory store.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	store  *InMemoryStore
	stores Stores
	cache  *cache.InMemoryCache
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo
	cfg.Cache.Enabled = true
	cfg.Cache.TTL = time.Minute
	cfg.Sentry.Enabled = false
	s.config = cfg
	s.logger = logger.NewNoopLogger()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.now = time.Date(2024, 3, 14, 22, 30, 0, 0, time.UTC)
	s.store = NewInMemoryStore()
	s.cache = cache.NewInMemoryCache(s.config, s.logger)
	s.stores = Stores{
		InvoiceRepo:  remote.NewInvoiceRepository(s.store, s.logger),
		CustomerRepo: remote.NewCustomerRepository(s.store, s.logger),
		RevenueRepo:  remote.NewRevenueRepository(s.store, s.logger),
	}
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.store.Clear()
	s.cache.Flush(s.ctx)
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStore returns the in-memory store behind every repository
func (s *BaseServiceTestSuite) GetStore() *InMemoryStore {
	return s.store
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetCache returns the view cache
func (s *BaseServiceTestSuite) GetCache() *cache.InMemoryCache {
	return s.cache
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the fixed test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// GetClock returns a clock frozen at GetNow
func (s *BaseServiceTestSuite) GetClock() types.Clock {
	return func() time.Time { return s.now }
}

// SeedCustomer stores a customer and returns it
func (s *BaseServiceTestSuite) SeedCustomer(id, name, email string) *customer.Customer {
	c := &customer.Customer{
		ID:       id,
		Name:     name,
		Email:    email,
		ImageURL: "/customers/" + id + ".png",
	}
	s.store.Seed(types.TableCustomers, store.Row{
		"id":        c.ID,
		"name":      c.Name,
		"email":     c.Email,
		"image_url": c.ImageURL,
	})
	return c
}

// SeedInvoice stores an invoice with an amount in cents and returns it
func (s *BaseServiceTestSuite) SeedInvoice(id, customerID string, cents int64, status types.InvoiceStatus, date string) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:         id,
		CustomerID: customerID,
		Amount:     cents,
		Status:     status,
		Date:       date,
	}
	s.store.Seed(types.TableInvoices, store.Row{
		"id":          inv.ID,
		"customer_id": inv.CustomerID,
		"amount":      inv.Amount,
		"status":      inv.Status.String(),
		"date":        inv.Date,
	})
	return inv
}
