package types

import (
	"strings"

	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
)

// InvoiceFilter carries the search box and page number of the invoice list
type InvoiceFilter struct {
	Query string `form:"query" json:"query"`
	Page  int    `form:"page,default=1" json:"page"`
}

// NewInvoiceFilter trims the query; an empty query matches every invoice
func NewInvoiceFilter(query string, page int) *InvoiceFilter {
	return &InvoiceFilter{
		Query: strings.TrimSpace(query),
		Page:  page,
	}
}

func (f *InvoiceFilter) Validate() error {
	if f.Page < 1 {
		return ierr.NewError("page must be at least 1").
			WithHint("Invalid page number").
			WithReportableDetails(map[string]any{
				"page": f.Page,
			}).
			Mark(ierr.ErrValidation)
	}
	if f.Page > MaxPage {
		return ierr.NewError("page out of range").
			WithHintf("Page must be at most %d", MaxPage).
			WithReportableDetails(map[string]any{
				"page": f.Page,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// HasQuery reports whether a search predicate should be applied
func (f *InvoiceFilter) HasQuery() bool {
	return f.Query != ""
}

// Window returns the row range for the filter's page
func (f *InvoiceFilter) Window() PageWindow {
	return NewPageWindow(f.Page)
}

// CustomerFilter carries the search box of the customers table
type CustomerFilter struct {
	Query string `form:"query" json:"query"`
}
