package dto

import (
	"github.com/flexprice/invoice-dashboard/internal/domain/customer"
	"github.com/flexprice/invoice-dashboard/internal/domain/invoice"
	"github.com/flexprice/invoice-dashboard/internal/types"
)

// CustomerFieldResponse is a customer option of the invoice form
type CustomerFieldResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewCustomerFieldResponse(f *customer.Field) *CustomerFieldResponse {
	return &CustomerFieldResponse{ID: f.ID, Name: f.Name}
}

// CustomerTableResponse is a row of the customers table with formatted
// invoice totals
type CustomerTableResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int    `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}

func NewCustomerTableResponse(c *customer.Customer, totals invoice.Totals) *CustomerTableResponse {
	return &CustomerTableResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		ImageURL:      c.ImageURL,
		TotalInvoices: totals.Count,
		TotalPending:  types.FormatCurrency(totals.Pending),
		TotalPaid:     types.FormatCurrency(totals.Paid),
	}
}
