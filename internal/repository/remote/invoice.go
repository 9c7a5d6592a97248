package remote

import (
	"context"

	"github.com/flexprice/invoice-dashboard/internal/domain/invoice"
	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/store"
	"github.com/flexprice/invoice-dashboard/internal/types"
)

var (
	invoiceColumns = []string{"id", "customer_id", "amount", "status", "date"}
	listColumns    = []string{"id", "amount", "date", "status"}
	joinColumns    = []string{"name", "email", "image_url"}
)

type invoiceRepository struct {
	client store.Client
	log    *logger.Logger
}

func NewInvoiceRepository(client store.Client, log *logger.Logger) invoice.Repository {
	return &invoiceRepository{
		client: client,
		log:    log,
	}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	r.log.Debugw("creating invoice",
		"customer_id", inv.CustomerID,
		"amount", inv.Amount,
		"status", inv.Status,
	)

	return r.client.Insert(ctx, types.TableInvoices, store.Record{
		"customer_id": inv.CustomerID,
		"amount":      inv.Amount,
		"status":      inv.Status.String(),
		"date":        inv.Date,
	})
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	r.log.Debugw("updating invoice",
		"invoice_id", inv.ID,
		"customer_id", inv.CustomerID,
	)

	return r.client.Update(ctx, types.TableInvoices, store.MatchID(inv.ID), store.Record{
		"customer_id": inv.CustomerID,
		"amount":      inv.Amount,
		"status":      inv.Status.String(),
	})
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) (int, error) {
	r.log.Debugw("deleting invoice", "invoice_id", id)
	return r.client.Delete(ctx, types.TableInvoices, store.MatchID(id))
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	q := store.From(types.TableInvoices).
		Select(invoiceColumns...).
		Where("id", store.OpEq, id)

	var invoices []*invoice.Invoice
	if err := r.selectInto(ctx, q, &invoices); err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, ierr.WithError(invoice.ErrInvoiceNotFound).
			WithReportableDetails(map[string]any{
				"invoice_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return invoices[0], nil
}

func (r *invoiceRepository) ListLatest(ctx context.Context, limit int) ([]*invoice.InvoiceWithCustomer, error) {
	q := store.From(types.TableInvoices).
		Select("amount", "id").
		InnerJoin(types.TableCustomers, "customer_id", "name", "image_url", "email").
		OrderBy("date", true).
		Limit(limit)

	var invoices []*invoice.InvoiceWithCustomer
	if err := r.selectInto(ctx, q, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) ListFiltered(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.InvoiceWithCustomer, error) {
	window := filter.Window()
	q := matchCustomer(
		store.From(types.TableInvoices).
			Select(listColumns...).
			InnerJoin(types.TableCustomers, "customer_id", joinColumns...),
		filter.Query,
	).
		OrderBy("date", true).
		Window(window.Offset, window.Limit)

	var invoices []*invoice.InvoiceWithCustomer
	if err := r.selectInto(ctx, q, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) CountFiltered(ctx context.Context, query string) (int, error) {
	q := matchCustomer(
		store.From(types.TableInvoices).
			Select("id").
			InnerJoin(types.TableCustomers, "customer_id", "name"),
		query,
	).OnlyCount()
	return r.count(ctx, q)
}

func (r *invoiceRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, store.From(types.TableInvoices).Select("id").OnlyCount())
}

func (r *invoiceRepository) ListAmounts(ctx context.Context, customerIDs ...string) ([]*invoice.AmountSummary, error) {
	q := store.From(types.TableInvoices).Select("customer_id", "amount", "status")
	if len(customerIDs) > 0 {
		q = q.Where("customer_id", store.OpIn, customerIDs)
	}

	var amounts []*invoice.AmountSummary
	if err := r.selectInto(ctx, q, &amounts); err != nil {
		return nil, err
	}
	return amounts, nil
}

func (r *invoiceRepository) selectInto(ctx context.Context, q *store.Query, dest any) error {
	res, err := r.client.Select(ctx, q)
	if err != nil {
		return err
	}
	if err := res.Decode(dest); err != nil {
		return ierr.WithError(err).
			WithHint("Unexpected invoice data").
			Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *invoiceRepository) count(ctx context.Context, q *store.Query) (int, error) {
	res, err := r.client.Select(ctx, q)
	if err != nil {
		return 0, err
	}
	total, err := res.TotalCount()
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Unexpected invoice count").
			Mark(ierr.ErrSystem)
	}
	return total, nil
}

// matchCustomer restricts q to invoices whose customer name or email
// contains query. An empty query leaves q unrestricted.
func matchCustomer(q *store.Query, query string) *store.Query {
	if query == "" {
		return q
	}
	return q.WhereAny(types.TableCustomers, nameOrEmail(query)...)
}

func nameOrEmail(query string) []store.Filter {
	pattern := store.Contains(query)
	return []store.Filter{
		{Column: "name", Op: store.OpILike, Value: pattern},
		{Column: "email", Op: store.OpILike, Value: pattern},
	}
}
