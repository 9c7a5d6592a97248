package invoice

import (
	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
)

// ErrInvoiceNotFound is returned when no invoice has the requested ID
var ErrInvoiceNotFound = ierr.NewError("invoice not found").
	WithHint("Invoice not found").
	Mark(ierr.ErrNotFound)

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return ierr.IsNotFound(err)
}
