package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/flexprice/invoice-dashboard/internal/api/dto"
	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/flexprice/invoice-dashboard/internal/repository/remote"
	"github.com/flexprice/invoice-dashboard/internal/store"
	"github.com/flexprice/invoice-dashboard/internal/testutil"
	"github.com/flexprice/invoice-dashboard/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  DashboardService
	invoices InvoiceService
}

func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceSuite))
}

func (s *DashboardServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestParams(&s.BaseServiceTestSuite)
	s.service = NewDashboardService(params)
	s.invoices = NewInvoiceService(params)
}

// seedThirteen stores 13 invoices, one per day of January 2023, spread
// over three customers
func (s *DashboardServiceSuite) seedThirteen() {
	s.SeedCustomer("c1", "Lee Robinson", "lee@robinson.com")
	s.SeedCustomer("c2", "Delba de Oliveira", "delba@oliveira.com")
	s.SeedCustomer("c3", "Evil Rabbit", "evil@rabbit.com")

	owners := []string{"c1", "c2", "c3"}
	for i := 1; i <= 13; i++ {
		status := types.InvoiceStatusPending
		if i%2 == 0 {
			status = types.InvoiceStatusPaid
		}
		s.SeedInvoice(
			fmt.Sprintf("inv_%02d", i),
			owners[(i-1)%3],
			int64(i*1000),
			status,
			fmt.Sprintf("2023-01-%02d", i),
		)
	}
}

func (s *DashboardServiceSuite) TestFetchRevenue() {
	rows, err := s.service.FetchRevenue(s.GetContext())
	s.Require().NoError(err)
	s.NotNil(rows)
	s.Empty(rows)

	s.GetStore().Seed(types.TableRevenue,
		store.Row{"month": "Jan", "revenue": 2000},
		store.Row{"month": "Feb", "revenue": 1800},
	)
	rows, err = s.service.FetchRevenue(s.GetContext())
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("Jan", rows[0]["month"])
	s.Equal(1800, rows[1]["revenue"])
}

func (s *DashboardServiceSuite) TestFetchFailuresUseFixedMessages() {
	cause := errors.New("FATAL: password authentication failed")
	s.GetStore().FailOn("select", "", cause)

	check := func(err error, message string) {
		s.Require().Error(err)
		s.True(ierr.IsFetch(err))
		s.Equal(message, ierr.DisplayMessage(err))
		s.NotContains(err.Error(), "password")
	}

	_, err := s.service.FetchRevenue(s.GetContext())
	check(err, "Failed to fetch revenue data.")
	_, err = s.service.FetchLatestInvoices(s.GetContext())
	check(err, "Failed to fetch the latest invoices.")
	_, err = s.service.FetchFilteredInvoices(s.GetContext(), "", 1)
	check(err, "Failed to fetch invoices.")
	_, err = s.service.FetchInvoicesPages(s.GetContext(), "")
	check(err, "Failed to fetch total number of invoices.")
	_, err = s.service.FetchInvoiceByID(s.GetContext(), "inv_1")
	check(err, "Failed to fetch invoice.")
	_, err = s.service.FetchCustomers(s.GetContext())
	check(err, "Failed to fetch all customers.")
	_, err = s.service.FetchCardData(s.GetContext())
	check(err, "Failed to fetch card data.")
	_, err = s.service.FetchFilteredCustomers(s.GetContext(), "")
	check(err, "Failed to fetch customer table.")
}

func (s *DashboardServiceSuite) TestFetchLatestInvoices() {
	s.seedThirteen()
	// no customer row, dropped by the inner join
	s.SeedInvoice("inv_orphan", "c404", 500, types.InvoiceStatusPaid, "2023-02-01")

	latest, err := s.service.FetchLatestInvoices(s.GetContext())
	s.Require().NoError(err)
	s.Require().Len(latest, 5)

	s.Equal([]string{"inv_13", "inv_12", "inv_11", "inv_10", "inv_09"},
		lo.Map(latest, func(r *dto.LatestInvoiceResponse, _ int) string { return r.ID }))
	s.Equal("$130.00", latest[0].Amount)
	s.Equal("Lee Robinson", latest[0].Name)
	s.Equal("lee@robinson.com", latest[0].Email)

	q := s.GetStore().LastQuery()
	s.Equal(types.TableInvoices, q.Table)
	s.Require().NotNil(q.Join)
	s.True(q.Join.Inner)
	s.Equal(types.TableCustomers, q.Join.Table)
	s.Equal(&store.Range{Offset: 0, Limit: 5}, q.Range)
	s.Equal([]store.Order{{Column: "date", Desc: true}}, q.Orders)
}

func (s *DashboardServiceSuite) TestFilteredInvoicesPageWindow() {
	s.seedThirteen()

	for page := 1; page <= 4; page++ {
		rows, err := s.service.FetchFilteredInvoices(s.GetContext(), "", page)
		s.Require().NoError(err)

		q := s.GetStore().LastQuery()
		s.Equal(&store.Range{Offset: (page - 1) * 6, Limit: 6}, q.Range, "page %d", page)
		s.Empty(q.Or)

		want := lo.Clamp(13-(page-1)*6, 0, 6)
		s.Len(rows, want, "page %d", page)
	}

	rows, err := s.service.FetchFilteredInvoices(s.GetContext(), "", 1)
	s.Require().NoError(err)
	s.Equal("inv_13", rows[0].ID)
	s.Equal("$130.00", rows[0].Amount)
	s.Equal("2023-01-13", rows[0].Date)
	s.Equal(types.InvoiceStatusPending, rows[0].Status)
}

func (s *DashboardServiceSuite) TestFilteredInvoicesMatchCustomerNameOrEmail() {
	s.seedThirteen()

	byName, err := s.service.FetchFilteredInvoices(s.GetContext(), "ROBINSON", 1)
	s.Require().NoError(err)
	s.NotEmpty(byName)
	for _, r := range byName {
		s.Equal("Lee Robinson", r.Name)
	}

	q := s.GetStore().LastQuery()
	s.Require().Len(q.Or, 2)
	for _, f := range q.Or {
		s.Equal(types.TableCustomers, f.Table)
		s.Equal(store.OpILike, f.Op)
		s.Equal("%ROBINSON%", f.Value)
	}
	s.ElementsMatch([]string{"name", "email"}, lo.Map(q.Or, func(f store.Filter, _ int) string { return f.Column }))
	s.Empty(q.Filters)

	byEmail, err := s.service.FetchFilteredInvoices(s.GetContext(), "oliveira.com", 1)
	s.Require().NoError(err)
	s.NotEmpty(byEmail)
	for _, r := range byEmail {
		s.Equal("delba@oliveira.com", r.Email)
	}

	none, err := s.service.FetchFilteredInvoices(s.GetContext(), "nobody", 1)
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *DashboardServiceSuite) TestFilteredInvoicesRejectsPageOutOfRange() {
	tests := []struct {
		name string
		page int
	}{
		{"zero", 0},
		{"negative", -1},
		{"past last page", types.MaxPage + 1},
		{"max int", math.MaxInt},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.FetchFilteredInvoices(s.GetContext(), "", tt.page)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
			s.Nil(s.GetStore().LastQuery())
		})
	}
}

func (s *DashboardServiceSuite) TestFilteredInvoicesLastPageIsEmpty() {
	s.seedThirteen()

	rows, err := s.service.FetchFilteredInvoices(s.GetContext(), "", types.MaxPage)
	s.Require().NoError(err)
	s.Empty(rows)

	q := s.GetStore().LastQuery()
	s.Require().NotNil(q.Range)
	s.Equal((types.MaxPage-1)*types.ItemsPerPage, q.Range.Offset)
}

func (s *DashboardServiceSuite) TestFetchInvoicesPages() {
	s.seedThirteen()

	pages, err := s.service.FetchInvoicesPages(s.GetContext(), "")
	s.Require().NoError(err)
	s.Equal(3, pages)

	q := s.GetStore().LastQuery()
	s.True(q.CountOnly)
	s.Empty(q.Or)
}

func (s *DashboardServiceSuite) TestInvoicesPagesShrinkWithSpecificity() {
	s.seedThirteen()
	for i := 14; i <= 30; i++ {
		s.SeedInvoice(fmt.Sprintf("inv_%02d", i), "c1", 100, types.InvoiceStatusPaid, fmt.Sprintf("2023-02-%02d", i-13))
	}

	queries := []string{"", "e", "lee", "lee robinson", "lee robinson!"}
	previous := -1
	for _, q := range queries {
		pages, err := s.service.FetchInvoicesPages(s.GetContext(), q)
		s.Require().NoError(err)
		if previous >= 0 {
			s.LessOrEqual(pages, previous, "query %q", q)
		}
		previous = pages
	}
	s.Equal(0, previous)
}

func (s *DashboardServiceSuite) TestPagesCountSamePredicateAsList() {
	s.seedThirteen()

	_, err := s.service.FetchFilteredInvoices(s.GetContext(), "rabbit.com", 1)
	s.Require().NoError(err)
	listOr := s.GetStore().LastQuery().Or

	_, err = s.service.FetchInvoicesPages(s.GetContext(), "rabbit.com")
	s.Require().NoError(err)
	s.Equal(listOr, s.GetStore().LastQuery().Or)
}

func (s *DashboardServiceSuite) TestInvoiceViewsAreCachedUntilMutation() {
	s.seedThirteen()
	ctx := s.GetContext()

	pages, err := s.service.FetchInvoicesPages(ctx, "")
	s.Require().NoError(err)
	s.Equal(3, pages)

	// a direct write bypasses invalidation, so the cached count is served
	for i := 14; i <= 19; i++ {
		s.SeedInvoice(fmt.Sprintf("inv_%02d", i), "c1", 100, types.InvoiceStatusPaid, "2023-03-01")
	}
	pages, err = s.service.FetchInvoicesPages(ctx, "")
	s.Require().NoError(err)
	s.Equal(3, pages)

	_, err = s.invoices.CreateInvoice(ctx, dto.InvoiceFormRequest{CustomerID: "c1", Amount: "1", Status: "paid"})
	s.Require().NoError(err)

	pages, err = s.service.FetchInvoicesPages(ctx, "")
	s.Require().NoError(err)
	s.Equal(4, pages)
}

func (s *DashboardServiceSuite) TestFetchInvoiceByIDRoundTrip() {
	s.SeedCustomer("c1", "Lee Robinson", "lee@robinson.com")

	_, err := s.invoices.CreateInvoice(s.GetContext(), dto.InvoiceFormRequest{
		CustomerID: "c1",
		Amount:     "42.50",
		Status:     "pending",
	})
	s.Require().NoError(err)

	rows := s.GetStore().Rows(types.TableInvoices)
	s.Require().Len(rows, 1)
	s.Equal(int64(4250), rows[0]["amount"])

	inv, err := s.service.FetchInvoiceByID(s.GetContext(), rows[0]["id"].(string))
	s.Require().NoError(err)
	s.Require().NotNil(inv)
	s.True(decimal.RequireFromString("42.5").Equal(inv.Amount), "got %s", inv.Amount)
	s.Equal("c1", inv.CustomerID)
	s.Equal(types.InvoiceStatusPending, inv.Status)
	s.Equal("2024-03-14", inv.Date)
}

func (s *DashboardServiceSuite) TestFetchInvoiceByIDMissing() {
	inv, err := s.service.FetchInvoiceByID(s.GetContext(), "inv_missing")
	s.NoError(err)
	s.Nil(inv)
}

func (s *DashboardServiceSuite) TestFetchCustomers() {
	fields, err := s.service.FetchCustomers(s.GetContext())
	s.Require().NoError(err)
	s.NotNil(fields)
	s.Empty(fields)

	s.seedThirteen()
	fields, err = s.service.FetchCustomers(s.GetContext())
	s.Require().NoError(err)
	s.Equal([]string{"Delba de Oliveira", "Evil Rabbit", "Lee Robinson"},
		lo.Map(fields, func(f *dto.CustomerFieldResponse, _ int) string { return f.Name }))
	s.Equal("c2", fields[0].ID)
}

func (s *DashboardServiceSuite) TestFetchCardData() {
	s.seedThirteen()

	cards, err := s.service.FetchCardData(s.GetContext())
	s.Require().NoError(err)
	s.Equal(13, cards.NumberOfInvoices)
	s.Equal(3, cards.NumberOfCustomers)
	// paid: days 2,4,...,12 -> 42,000 cents; pending: 1,3,...,13 -> 49,000 cents
	s.Equal("$420.00", cards.TotalPaidInvoices)
	s.Equal("$490.00", cards.TotalPendingInvoices)
}

func (s *DashboardServiceSuite) TestFetchCardDataFailsWhenOneReadFails() {
	s.seedThirteen()
	s.GetStore().FailOn("select", types.TableCustomers, errors.New("boom"))

	cards, err := s.service.FetchCardData(s.GetContext())
	s.Nil(cards)
	s.Require().Error(err)
	s.True(ierr.IsFetch(err))
}

func (s *DashboardServiceSuite) TestFetchFilteredCustomers() {
	s.seedThirteen()
	s.SeedCustomer("c4", "Amy Burns", "amy@burns.com")

	rows, err := s.service.FetchFilteredCustomers(s.GetContext(), "")
	s.Require().NoError(err)
	s.Require().Len(rows, 4)
	s.Equal("Amy Burns", rows[0].Name)
	s.Equal(0, rows[0].TotalInvoices)
	s.Equal("$0.00", rows[0].TotalPaid)

	lee, ok := lo.Find(rows, func(r *dto.CustomerTableResponse) bool { return r.ID == "c1" })
	s.Require().True(ok)
	// c1 owns days 1,4,7,10,13
	s.Equal(5, lee.TotalInvoices)
	s.Equal("$140.00", lee.TotalPaid)
	s.Equal("$210.00", lee.TotalPending)

	rows, err = s.service.FetchFilteredCustomers(s.GetContext(), "rabbit")
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal("Evil Rabbit", rows[0].Name)

	q := s.GetStore().LastQuery()
	s.Require().Len(q.Filters, 1)
	s.Equal(store.OpIn, q.Filters[0].Op)
	s.Equal([]string{"c3"}, q.Filters[0].Value)

	rows, err = s.service.FetchFilteredCustomers(s.GetContext(), "nobody")
	s.Require().NoError(err)
	s.NotNil(rows)
	s.Empty(rows)
}

// countlessStore drops the count from every result, like a backend that
// answered without a usable Content-Range
type countlessStore struct {
	*testutil.InMemoryStore
}

func (c countlessStore) Select(ctx context.Context, q *store.Query) (*store.Result, error) {
	res, err := c.InMemoryStore.Select(ctx, q)
	if res != nil {
		res.Count = nil
	}
	return res, err
}

func (s *DashboardServiceSuite) TestMissingCountIsFetchError() {
	s.seedThirteen()
	params := newTestParams(&s.BaseServiceTestSuite)
	params.InvoiceRepo = remote.NewInvoiceRepository(countlessStore{s.GetStore()}, s.GetLogger())

	_, err := NewDashboardService(params).FetchInvoicesPages(s.GetContext(), "")
	s.Require().Error(err)
	s.True(ierr.IsFetch(err))
	s.Equal("Failed to fetch total number of invoices.", ierr.DisplayMessage(err))
}
