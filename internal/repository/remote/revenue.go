package remote

import (
	"context"

	"github.com/flexprice/invoice-dashboard/internal/domain/revenue"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/store"
	"github.com/flexprice/invoice-dashboard/internal/types"
	"github.com/samber/lo"
)

type revenueRepository struct {
	client store.Client
	log    *logger.Logger
}

func NewRevenueRepository(client store.Client, log *logger.Logger) revenue.Repository {
	return &revenueRepository{
		client: client,
		log:    log,
	}
}

// List returns every revenue row as the store returned it
func (r *revenueRepository) List(ctx context.Context) ([]revenue.Revenue, error) {
	res, err := r.client.Select(ctx, store.From(types.TableRevenue))
	if err != nil {
		return nil, err
	}

	return lo.Map(res.Rows, func(row store.Row, _ int) revenue.Revenue {
		return revenue.Revenue(row)
	}), nil
}
