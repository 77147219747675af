package domain

import "time"

// Activity log actions.
const (
	ActivityActionSheetViewed = "SHEET_VIEWED"
	ActivityActionRowAppended = "ROW_APPENDED"
)

// ActivityEntry represents a single activity log record.
type ActivityEntry struct {
	ID        string
	Action    string // "SHEET_VIEWED", "ROW_APPENDED"
	SheetName string
	Detail    string
	RowCount  int
	CreatedAt time.Time
}
