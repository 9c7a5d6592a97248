package invoice

import (
	"github.com/flexprice/invoice-dashboard/internal/types"
)

// Invoice is a row of the invoices collection. Amount is held in cents.
type Invoice struct {
	ID         string              `mapstructure:"id"`
	CustomerID string              `mapstructure:"customer_id"`
	Amount     int64               `mapstructure:"amount"`
	Status     types.InvoiceStatus `mapstructure:"status"`
	Date       string              `mapstructure:"date"`
}

// InvoiceWithCustomer is an invoice inner-joined with the customer
// fields shown next to it in lists
type InvoiceWithCustomer struct {
	ID       string              `mapstructure:"id"`
	Amount   int64               `mapstructure:"amount"`
	Status   types.InvoiceStatus `mapstructure:"status"`
	Date     string              `mapstructure:"date"`
	Name     string              `mapstructure:"name"`
	Email    string              `mapstructure:"email"`
	ImageURL string              `mapstructure:"image_url"`
}

// AmountSummary is the amount and status of an invoice, used for totals
type AmountSummary struct {
	CustomerID string              `mapstructure:"customer_id"`
	Amount     int64               `mapstructure:"amount"`
	Status     types.InvoiceStatus `mapstructure:"status"`
}

// Totals holds summed amounts in cents per status
type Totals struct {
	Count   int
	Paid    int64
	Pending int64
}

// Add folds one invoice into the totals
func (t *Totals) Add(s *AmountSummary) {
	t.Count++
	switch s.Status {
	case types.InvoiceStatusPaid:
		t.Paid += s.Amount
	case types.InvoiceStatusPending:
		t.Pending += s.Amount
	}
}
