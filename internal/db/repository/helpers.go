package repository

import (
	"database/sql"
	"errors"

	"sheetdesk/internal/domain"
)

// mapDBError converts driver-level failures into domain errors where a
// clean mapping exists and returns the raw error otherwise.
func mapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Message: "resource not found"}
	}
	return err
}
