package service

import (
	"context"

	"github.com/flexprice/invoice-dashboard/internal/api/dto"
	"github.com/flexprice/invoice-dashboard/internal/cache"
	"github.com/flexprice/invoice-dashboard/internal/domain/customer"
	"github.com/flexprice/invoice-dashboard/internal/domain/invoice"
	"github.com/flexprice/invoice-dashboard/internal/domain/revenue"
	"github.com/flexprice/invoice-dashboard/internal/types"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

// DashboardService runs the reads behind the dashboard pages. Every remote
// failure is returned as a FetchError with a fixed message.
type DashboardService interface {
	FetchRevenue(ctx context.Context) ([]revenue.Revenue, error)
	FetchLatestInvoices(ctx context.Context) ([]*dto.LatestInvoiceResponse, error)
	FetchFilteredInvoices(ctx context.Context, query string, page int) ([]*dto.InvoiceTableResponse, error)
	FetchInvoicesPages(ctx context.Context, query string) (int, error)
	// FetchInvoiceByID returns nil without error when no invoice has id
	FetchInvoiceByID(ctx context.Context, id string) (*dto.InvoiceFormResponse, error)
	FetchCustomers(ctx context.Context) ([]*dto.CustomerFieldResponse, error)
	FetchCardData(ctx context.Context) (*dto.CardDataResponse, error)
	FetchFilteredCustomers(ctx context.Context, query string) ([]*dto.CustomerTableResponse, error)
}

type dashboardService struct {
	ServiceParams
}

func NewDashboardService(params ServiceParams) DashboardService {
	return &dashboardService{
		ServiceParams: params,
	}
}

func (s *dashboardService) FetchRevenue(ctx context.Context) ([]revenue.Revenue, error) {
	rows, err := s.RevenueRepo.List(ctx)
	if err != nil {
		return nil, s.fetchError(ctx, "fetch_revenue", "Failed to fetch revenue data.", err)
	}
	if rows == nil {
		rows = []revenue.Revenue{}
	}
	return rows, nil
}

func (s *dashboardService) FetchLatestInvoices(ctx context.Context) ([]*dto.LatestInvoiceResponse, error) {
	invoices, err := s.InvoiceRepo.ListLatest(ctx, types.LatestInvoicesLimit)
	if err != nil {
		return nil, s.fetchError(ctx, "fetch_latest_invoices", "Failed to fetch the latest invoices.", err)
	}
	return lo.Map(invoices, func(inv *invoice.InvoiceWithCustomer, _ int) *dto.LatestInvoiceResponse {
		return dto.NewLatestInvoiceResponse(inv)
	}), nil
}

func (s *dashboardService) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]*dto.InvoiceTableResponse, error) {
	filter := types.NewInvoiceFilter(query, page)
	if err := filter.Validate(); err != nil {
		return nil, s.fetchError(ctx, "fetch_filtered_invoices", "Failed to fetch invoices.", err)
	}

	key := cache.ViewKey(types.ViewInvoices, "list", filter.Query, filter.Page)
	if cached, ok := s.Cache.Get(ctx, key); ok {
		if rows, ok := cached.([]*dto.InvoiceTableResponse); ok {
			return rows, nil
		}
	}

	invoices, err := s.InvoiceRepo.ListFiltered(ctx, filter)
	if err != nil {
		return nil, s.fetchError(ctx, "fetch_filtered_invoices", "Failed to fetch invoices.", err)
	}

	rows := lo.Map(invoices, func(inv *invoice.InvoiceWithCustomer, _ int) *dto.InvoiceTableResponse {
		return dto.NewInvoiceTableResponse(inv)
	})
	s.Cache.Set(ctx, key, rows, 0)
	return rows, nil
}

func (s *dashboardService) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	filter := types.NewInvoiceFilter(query, 1)

	key := cache.ViewKey(types.ViewInvoices, "pages", filter.Query)
	if cached, ok := s.Cache.Get(ctx, key); ok {
		if pages, ok := cached.(int); ok {
			return pages, nil
		}
	}

	count, err := s.InvoiceRepo.CountFiltered(ctx, filter.Query)
	if err != nil {
		return 0, s.fetchError(ctx, "fetch_invoices_pages", "Failed to fetch total number of invoices.", err)
	}

	pages := types.TotalPages(count)
	s.Cache.Set(ctx, key, pages, 0)
	return pages, nil
}

func (s *dashboardService) FetchInvoiceByID(ctx context.Context, id string) (*dto.InvoiceFormResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		if invoice.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, s.fetchError(ctx, "fetch_invoice_by_id", "Failed to fetch invoice.", err)
	}
	return dto.NewInvoiceFormResponse(inv), nil
}

func (s *dashboardService) FetchCustomers(ctx context.Context) ([]*dto.CustomerFieldResponse, error) {
	fields, err := s.CustomerRepo.ListFields(ctx)
	if err != nil {
		return nil, s.fetchError(ctx, "fetch_customers", "Failed to fetch all customers.", err)
	}
	return lo.Map(fields, func(f *customer.Field, _ int) *dto.CustomerFieldResponse {
		return dto.NewCustomerFieldResponse(f)
	}), nil
}

// FetchCardData reads the invoice count, the customer count and the
// status totals concurrently. The first failure cancels the others.
func (s *dashboardService) FetchCardData(ctx context.Context) (*dto.CardDataResponse, error) {
	var (
		invoiceCount  int
		customerCount int
		totals        invoice.Totals
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		n, err := s.InvoiceRepo.Count(ctx)
		invoiceCount = n
		return err
	})
	p.Go(func(ctx context.Context) error {
		n, err := s.CustomerRepo.Count(ctx)
		customerCount = n
		return err
	})
	p.Go(func(ctx context.Context) error {
		amounts, err := s.InvoiceRepo.ListAmounts(ctx)
		for _, a := range amounts {
			totals.Add(a)
		}
		return err
	})

	if err := p.Wait(); err != nil {
		return nil, s.fetchError(ctx, "fetch_card_data", "Failed to fetch card data.", err)
	}

	return &dto.CardDataResponse{
		NumberOfInvoices:     invoiceCount,
		NumberOfCustomers:    customerCount,
		TotalPaidInvoices:    types.FormatCurrency(totals.Paid),
		TotalPendingInvoices: types.FormatCurrency(totals.Pending),
	}, nil
}

func (s *dashboardService) FetchFilteredCustomers(ctx context.Context, query string) ([]*dto.CustomerTableResponse, error) {
	customers, err := s.CustomerRepo.Search(ctx, query)
	if err != nil {
		return nil, s.fetchError(ctx, "fetch_filtered_customers", "Failed to fetch customer table.", err)
	}
	if len(customers) == 0 {
		return []*dto.CustomerTableResponse{}, nil
	}

	ids := lo.Map(customers, func(c *customer.Customer, _ int) string { return c.ID })
	amounts, err := s.InvoiceRepo.ListAmounts(ctx, ids...)
	if err != nil {
		return nil, s.fetchError(ctx, "fetch_filtered_customers", "Failed to fetch customer table.", err)
	}

	byCustomer := lo.GroupBy(amounts, func(a *invoice.AmountSummary) string { return a.CustomerID })
	return lo.Map(customers, func(c *customer.Customer, _ int) *dto.CustomerTableResponse {
		var totals invoice.Totals
		for _, a := range byCustomer[c.ID] {
			totals.Add(a)
		}
		return dto.NewCustomerTableResponse(c, totals)
	}), nil
}
