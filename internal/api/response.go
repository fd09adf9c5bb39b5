package api

import (
	"errors"
	"net/http"

	"budgetwise/pkg/budgetwise"
)

// ErrorResponse is the structured error body of every failed request.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
}

// writeErrorResponse writes an error response, mapping structured business
// errors onto HTTP status codes.
func writeErrorResponse(w http.ResponseWriter, httpStatus int, err error) {
	response := ErrorResponse{
		Code:    httpStatus,
		Message: err.Error(),
	}

	var bwErr *budgetwise.Error
	if errors.As(err, &bwErr) {
		response.ErrorCode = string(bwErr.Code)
		httpStatus = mapErrorCodeToHTTPStatus(bwErr.Code)
		response.Code = httpStatus
	}

	if setter, ok := w.(interface{ SetErrorMessage(string) }); ok {
		setter.SetErrorMessage(response.Message)
	}
	writeJSON(w, httpStatus, response)
}

// mapErrorCodeToHTTPStatus maps business error codes to HTTP status codes.
func mapErrorCodeToHTTPStatus(code budgetwise.ErrorCode) int {
	switch code {
	case budgetwise.ErrCodeInvalidInput, budgetwise.ErrCodeValidation:
		return http.StatusBadRequest
	case budgetwise.ErrCodeNotFound:
		return http.StatusNotFound
	case budgetwise.ErrCodeMalformedContext:
		return http.StatusUnprocessableEntity
	case budgetwise.ErrCodeDatabase, budgetwise.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
