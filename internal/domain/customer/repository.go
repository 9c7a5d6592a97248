package customer

import "context"

// Repository defines the read-only customer operations
type Repository interface {
	// ListFields returns id and name of every customer ordered by name
	ListFields(ctx context.Context) ([]*Field, error)

	// Search returns customers whose name or email contains query,
	// ordered by name. An empty query returns every customer.
	Search(ctx context.Context, query string) ([]*Customer, error)

	// Count returns the number of customers
	Count(ctx context.Context) (int, error)
}
