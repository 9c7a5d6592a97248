package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound    = New(ErrCodeNotFound, "resource not found")
	ErrValidation  = New(ErrCodeValidation, "validation error")
	ErrPersistence = New(ErrCodePersistence, "persistence error")
	ErrFetch       = New(ErrCodeFetch, "fetch error")
	ErrHTTPClient  = New(ErrCodeHTTPClient, "http client error")
	ErrDatabase    = New(ErrCodeDatabase, "database error")
	ErrSystem      = New(ErrCodeSystemError, "system error")
	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrHTTPClient:  http.StatusInternalServerError,
		ErrDatabase:    http.StatusInternalServerError,
		ErrPersistence: http.StatusInternalServerError,
		ErrFetch:       http.StatusInternalServerError,
		ErrNotFound:    http.StatusNotFound,
		ErrValidation:  http.StatusBadRequest,
		ErrSystem:      http.StatusInternalServerError,
	}
)

const (
	ErrCodeHTTPClient  = "http_client_error"
	ErrCodeSystemError = "system_error"
	ErrCodeNotFound    = "not_found"
	ErrCodeValidation  = "validation_error"
	ErrCodePersistence = "persistence_error"
	ErrCodeFetch       = "fetch_error"
	ErrCodeDatabase    = "database_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// New creates a new InternalError
func New(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsPersistence checks if an error is a failed remote write
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// IsFetch checks if an error is a failed remote read
func IsFetch(err error) bool {
	return errors.Is(err, ErrFetch)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

// IsSystem checks if an error is an internal invariant failure
func IsSystem(err error) bool {
	return errors.Is(err, ErrSystem)
}

// IsDatabase checks if an error is a database error
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// DisplayMessage returns the first non-empty hint attached to err,
// falling back to a generic message
func DisplayMessage(err error) string {
	// GetAllHints is a post-order traversal
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return "An unexpected error occurred"
}

// ReportableDetails collects the details attached with
// WithReportableDetails. Later keys overwrite earlier ones.
func ReportableDetails(err error) map[string]any {
	details := make(map[string]any)
	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			jsonStr, ok := strings.CutPrefix(payload, safeDetailsPrefix)
			if !ok {
				continue
			}
			var parsed map[string]any
			if err := json.Unmarshal([]byte(jsonStr), &parsed); err == nil {
				for k, v := range parsed {
					details[k] = v
				}
			}
		}
	}
	return details
}
