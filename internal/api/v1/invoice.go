package v1

import (
	"net/http"

	"github.com/flexprice/invoice-dashboard/internal/api/dto"
	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/service"
	"github.com/flexprice/invoice-dashboard/internal/types"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	service   service.InvoiceService
	dashboard service.DashboardService
	log       *logger.Logger
}

func NewInvoiceHandler(
	service service.InvoiceService,
	dashboard service.DashboardService,
	log *logger.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		service:   service,
		dashboard: dashboard,
		log:       log,
	}
}

// @Summary Create an invoice
// @Description Create an invoice from the invoice form and redirect to the invoice list
// @Tags Invoices
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param invoice body dto.InvoiceFormRequest true "Invoice"
// @Success 303
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req dto.InvoiceFormRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(invalidRequest(err))
		return
	}

	resp, err := h.service.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	respondMutation(c, resp)
}

// @Summary Update an invoice
// @Description Update customer, amount and status of an invoice
// @Tags Invoices
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Invoice ID"
// @Param invoice body dto.InvoiceFormRequest true "Invoice"
// @Success 303
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var req dto.InvoiceFormRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(invalidRequest(err))
		return
	}

	resp, err := h.service.UpdateInvoice(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	respondMutation(c, resp)
}

// @Summary Delete an invoice
// @Description Delete an invoice. Deleting a missing invoice succeeds.
// @Tags Invoices
// @Param id path string true "Invoice ID"
// @Success 204
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	resp, err := h.service.DeleteInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	respondMutation(c, resp)
}

// @Summary Get an invoice
// @Description Get an invoice for the edit form, amount in dollars
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceFormResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.dashboard.FetchInvoiceByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if resp == nil {
		c.Error(ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			WithReportableDetails(map[string]any{
				"invoice_id": id,
			}).
			Mark(ierr.ErrNotFound))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List invoices
// @Description One page of invoices whose customer name or email matches query
// @Tags Invoices
// @Produce json
// @Param query query string false "Search"
// @Param page query int false "Page, from 1"
// @Success 200 {object} dto.ListResponse[dto.InvoiceTableResponse]
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var filter types.InvoiceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(invalidRequest(err))
		return
	}

	rows, err := h.dashboard.FetchFilteredInvoices(c.Request.Context(), filter.Query, filter.Page)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(rows))
}

// @Summary Count invoice pages
// @Description Number of pages of invoices matching query
// @Tags Invoices
// @Produce json
// @Param query query string false "Search"
// @Success 200 {object} dto.InvoicePagesResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/pages [get]
func (h *InvoiceHandler) GetInvoicesPages(c *gin.Context) {
	pages, err := h.dashboard.FetchInvoicesPages(c.Request.Context(), c.Query("query"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.InvoicePagesResponse{TotalPages: pages})
}

// @Summary Latest invoices
// @Description The five most recent invoices
// @Tags Invoices
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.LatestInvoiceResponse]
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/latest [get]
func (h *InvoiceHandler) GetLatestInvoices(c *gin.Context) {
	rows, err := h.dashboard.FetchLatestInvoices(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(rows))
}

// respondMutation applies the side effects of a successful write
func respondMutation(c *gin.Context, resp *dto.MutationResponse) {
	if resp.HasRedirect() {
		c.Redirect(http.StatusSeeOther, resp.Redirect)
		return
	}
	c.Status(http.StatusNoContent)
}

func invalidRequest(err error) error {
	return ierr.WithError(err).
		WithHint("Invalid request format").
		Mark(ierr.ErrValidation)
}
