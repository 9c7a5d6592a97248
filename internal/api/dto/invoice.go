package dto

import (
	"strings"

	"github.com/flexprice/invoice-dashboard/internal/domain/invoice"
	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/flexprice/invoice-dashboard/internal/types"
	"github.com/flexprice/invoice-dashboard/internal/validator"
	"github.com/shopspring/decimal"
)

// InvoiceFormRequest is the invoice form as submitted. Every field arrives
// as a string and is coerced during validation.
type InvoiceFormRequest struct {
	CustomerID string `form:"customerId" json:"customerId" validate:"required"`
	Amount     string `form:"amount" json:"amount" validate:"required,decimal"`
	Status     string `form:"status" json:"status" validate:"required,oneof=pending paid"`
}

// Validate checks the form and returns the amount in dollars
func (r *InvoiceFormRequest) Validate() (decimal.Decimal, error) {
	r.CustomerID = strings.TrimSpace(r.CustomerID)
	r.Amount = strings.TrimSpace(r.Amount)
	r.Status = strings.TrimSpace(r.Status)

	if err := validator.ValidateRequest(r); err != nil {
		return decimal.Zero, err
	}

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return decimal.Zero, invalidAmount(err, "must be greater than or equal to 0")
	}
	if amount.IsNegative() {
		return decimal.Zero, invalidAmount(nil, "must be greater than or equal to 0")
	}
	if amount.GreaterThan(types.MaxDollars) {
		return decimal.Zero, invalidAmount(nil, "must be at most "+types.FormatDollars(types.MaxDollars))
	}
	return amount, nil
}

// ToInvoice builds the stored invoice from a validated form
func (r *InvoiceFormRequest) ToInvoice(amount decimal.Decimal) *invoice.Invoice {
	return &invoice.Invoice{
		CustomerID: r.CustomerID,
		Amount:     types.DollarsToCents(amount),
		Status:     types.InvoiceStatus(r.Status),
	}
}

func invalidAmount(cause error, reason string) error {
	b := ierr.NewError("invalid invoice amount")
	if cause != nil {
		b = ierr.WithError(cause)
	}
	return b.WithHint("Invalid fields. Failed to submit the form.").
		WithFieldErrors(map[string]string{
			"amount": reason,
		}).
		Mark(ierr.ErrValidation)
}

// LatestInvoiceResponse is a row of the dashboard's latest invoices card
type LatestInvoiceResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
	Amount   string `json:"amount"`
}

func NewLatestInvoiceResponse(inv *invoice.InvoiceWithCustomer) *LatestInvoiceResponse {
	return &LatestInvoiceResponse{
		ID:       inv.ID,
		Name:     inv.Name,
		Email:    inv.Email,
		ImageURL: inv.ImageURL,
		Amount:   types.FormatCurrency(inv.Amount),
	}
}

// InvoiceTableResponse is a row of the filtered invoices table
type InvoiceTableResponse struct {
	ID       string              `json:"id"`
	Amount   string              `json:"amount"`
	Date     string              `json:"date"`
	Status   types.InvoiceStatus `json:"status"`
	Name     string              `json:"name"`
	Email    string              `json:"email"`
	ImageURL string              `json:"image_url"`
}

func NewInvoiceTableResponse(inv *invoice.InvoiceWithCustomer) *InvoiceTableResponse {
	return &InvoiceTableResponse{
		ID:       inv.ID,
		Amount:   types.FormatCurrency(inv.Amount),
		Date:     inv.Date,
		Status:   inv.Status,
		Name:     inv.Name,
		Email:    inv.Email,
		ImageURL: inv.ImageURL,
	}
}

// InvoiceFormResponse is an invoice as loaded into the edit form, with
// the amount in dollars
type InvoiceFormResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Amount     decimal.Decimal     `json:"amount"`
	Status     types.InvoiceStatus `json:"status"`
	Date       string              `json:"date"`
}

func NewInvoiceFormResponse(inv *invoice.Invoice) *InvoiceFormResponse {
	return &InvoiceFormResponse{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     types.CentsToDollars(inv.Amount),
		Status:     inv.Status,
		Date:       inv.Date,
	}
}

// InvoicePagesResponse is the page count of a filtered invoice list
type InvoicePagesResponse struct {
	TotalPages int `json:"total_pages"`
}
