package remote

import (
	"context"
	"strings"

	"github.com/flexprice/invoice-dashboard/internal/domain/customer"
	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/store"
	"github.com/flexprice/invoice-dashboard/internal/types"
)

type customerRepository struct {
	client store.Client
	log    *logger.Logger
}

func NewCustomerRepository(client store.Client, log *logger.Logger) customer.Repository {
	return &customerRepository{
		client: client,
		log:    log,
	}
}

func (r *customerRepository) ListFields(ctx context.Context) ([]*customer.Field, error) {
	q := store.From(types.TableCustomers).
		Select("id", "name").
		OrderBy("name", false)

	res, err := r.client.Select(ctx, q)
	if err != nil {
		return nil, err
	}

	fields := []*customer.Field{}
	if err := res.Decode(&fields); err != nil {
		return nil, decodeError(err)
	}
	return fields, nil
}

func (r *customerRepository) Search(ctx context.Context, query string) ([]*customer.Customer, error) {
	query = strings.TrimSpace(query)
	r.log.Debugw("searching customers", "query", query)

	q := store.From(types.TableCustomers).
		Select("id", "name", "email", "image_url")
	if query != "" {
		q = q.WhereAny("", nameOrEmail(query)...)
	}
	q = q.OrderBy("name", false)

	res, err := r.client.Select(ctx, q)
	if err != nil {
		return nil, err
	}

	customers := []*customer.Customer{}
	if err := res.Decode(&customers); err != nil {
		return nil, decodeError(err)
	}
	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context) (int, error) {
	res, err := r.client.Select(ctx, store.From(types.TableCustomers).Select("id").OnlyCount())
	if err != nil {
		return 0, err
	}
	total, err := res.TotalCount()
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Unexpected customer count").
			Mark(ierr.ErrSystem)
	}
	return total, nil
}

func decodeError(err error) error {
	return ierr.WithError(err).
		WithHint("Unexpected customer data").
		Mark(ierr.ErrSystem)
}
