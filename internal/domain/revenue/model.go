package revenue

import "context"

// Revenue is a pre-aggregated revenue row, passed through untouched
type Revenue map[string]any

// Repository reads the revenue collection
type Repository interface {
	List(ctx context.Context) ([]Revenue, error)
}
