package v1

import (
	"net/http"

	"github.com/flexprice/invoice-dashboard/internal/api/dto"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/service"
	"github.com/flexprice/invoice-dashboard/internal/types"
	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	dashboard service.DashboardService
	log       *logger.Logger
}

func NewCustomerHandler(dashboard service.DashboardService, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		dashboard: dashboard,
		log:       log,
	}
}

// @Summary List customers
// @Description Id and name of every customer, for the invoice form
// @Tags Customers
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.CustomerFieldResponse]
// @Failure 500 {object} ierr.ErrorResponse
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	rows, err := h.dashboard.FetchCustomers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(rows))
}

// @Summary Customers table
// @Description Customers matching query with their invoice totals
// @Tags Customers
// @Produce json
// @Param query query string false "Search"
// @Success 200 {object} dto.ListResponse[dto.CustomerTableResponse]
// @Failure 500 {object} ierr.ErrorResponse
// @Router /customers/table [get]
func (h *CustomerHandler) GetCustomersTable(c *gin.Context) {
	var filter types.CustomerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(invalidRequest(err))
		return
	}

	rows, err := h.dashboard.FetchFilteredCustomers(c.Request.Context(), filter.Query)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(rows))
}
