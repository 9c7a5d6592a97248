package middleware

import (
	ierr "github.com/flexprice/invoice-dashboard/internal/errors"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware renders the last error a handler attached
// to the context. Only hints and reportable details reach the client.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)
		if status >= 500 {
			log.Errorw("request failed",
				"error", err,
				"status", status,
				"path", c.FullPath(),
				"request_id", types.GetRequestID(c.Request.Context()),
			)
		}

		c.JSON(status, ierr.ErrorResponse{
			Success: false,
			Error: ierr.ErrorDetail{
				Display: ierr.DisplayMessage(err),
				Details: ierr.ReportableDetails(err),
			},
		})
	}
}
