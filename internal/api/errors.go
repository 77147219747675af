package api

import (
	"errors"
	"net/http"

	"sheetdesk/internal/domain"
)

// Error codes carried in the API error envelope.
const (
	codeWorkbookNotFound = "workbook_not_found"
	codeCorruptWorkbook  = "corrupt_workbook"
	codeSheetNotFound    = "sheet_not_found"
	codeValidationFailed = "validation_failed"
	codeWriteFailed      = "write_failed"
	codeInternal         = "internal_error"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// errorCodeFromDomainError maps a domain error to an HTTP status and a
// stable error code. Unknown errors map to 500 internal_error.
func errorCodeFromDomainError(err error) (int, string) {
	var workbookNotFound *domain.WorkbookNotFoundError
	var corrupt *domain.CorruptWorkbookError
	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	var write *domain.WorkbookWriteError

	switch {
	case errors.As(err, &workbookNotFound):
		return http.StatusNotFound, codeWorkbookNotFound
	case errors.As(err, &corrupt):
		return http.StatusUnprocessableEntity, codeCorruptWorkbook
	case errors.As(err, &notFound):
		return http.StatusNotFound, codeSheetNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest, codeValidationFailed
	case errors.As(err, &write):
		return http.StatusInternalServerError, codeWriteFailed
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, code := errorCodeFromDomainError(err)
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: err.Error()}})
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}
