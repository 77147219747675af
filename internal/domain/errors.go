// Package domain defines core types, interfaces, and errors for the workbook service.
package domain

import "fmt"

// WorkbookNotFoundError indicates the workbook file does not exist on disk.
type WorkbookNotFoundError struct {
	Path    string
	Message string
}

func (e *WorkbookNotFoundError) Error() string { return e.Message }

// CorruptWorkbookError indicates the workbook file exists but cannot be
// parsed as a spreadsheet.
type CorruptWorkbookError struct {
	Path    string
	Message string
}

func (e *CorruptWorkbookError) Error() string { return e.Message }

// WorkbookWriteError indicates a failure while persisting the workbook.
type WorkbookWriteError struct {
	Message string
}

func (e *WorkbookWriteError) Error() string { return e.Message }

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrWorkbookNotFound creates a WorkbookNotFoundError for the given path.
// The message carries the remediation users see verbatim.
func ErrWorkbookNotFound(path string) *WorkbookNotFoundError {
	return &WorkbookNotFoundError{
		Path:    path,
		Message: fmt.Sprintf("workbook file %q does not exist: create the file or point WORKBOOK_PATH at an existing .xlsx file", path),
	}
}

// ErrCorruptWorkbook creates a CorruptWorkbookError for the given path.
// The message carries the remediation users see verbatim.
func ErrCorruptWorkbook(path string) *CorruptWorkbookError {
	return &CorruptWorkbookError{
		Path:    path,
		Message: fmt.Sprintf("workbook file %q is not a readable spreadsheet: re-export it as .xlsx from your spreadsheet application and try again", path),
	}
}

// ErrWorkbookWrite creates a WorkbookWriteError with a formatted message.
func ErrWorkbookWrite(format string, args ...interface{}) *WorkbookWriteError {
	return &WorkbookWriteError{Message: fmt.Sprintf(format, args...)}
}

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
