package invoice

import (
	"context"

	"github.com/flexprice/invoice-dashboard/internal/types"
)

// Repository defines the invoice operations run against the remote store
type Repository interface {
	// Create inserts a new invoice; the store assigns its ID
	Create(ctx context.Context, inv *Invoice) error

	// Update overwrites customer, amount and status of the invoice with inv.ID
	Update(ctx context.Context, inv *Invoice) error

	// Delete removes the invoice and returns the number of rows removed
	Delete(ctx context.Context, id string) (int, error)

	// Get retrieves an invoice by ID; returns ErrInvoiceNotFound when absent
	Get(ctx context.Context, id string) (*Invoice, error)

	// ListLatest returns the most recent invoices by date
	ListLatest(ctx context.Context, limit int) ([]*InvoiceWithCustomer, error)

	// ListFiltered returns one page of invoices matching the filter
	ListFiltered(ctx context.Context, filter *types.InvoiceFilter) ([]*InvoiceWithCustomer, error)

	// CountFiltered returns the number of invoices matching the query
	CountFiltered(ctx context.Context, query string) (int, error)

	// Count returns the number of invoices
	Count(ctx context.Context) (int, error)

	// ListAmounts returns amount and status of every invoice, optionally
	// restricted to the given customers
	ListAmounts(ctx context.Context, customerIDs ...string) ([]*AmountSummary, error)
}
