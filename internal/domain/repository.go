package domain

import "context"

// DefaultActivityLimit is the page size used when a caller asks for the
// recent activity feed without an explicit limit.
const DefaultActivityLimit = 50

// MaxActivityLimit caps how many activity entries one call may return.
const MaxActivityLimit = 500

// ClampActivityLimit normalizes a requested feed size into [1, MaxActivityLimit],
// substituting the default for zero or negative values.
func ClampActivityLimit(limit int) int {
	if limit <= 0 {
		return DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		return MaxActivityLimit
	}
	return limit
}

// ActivityRepository provides operations for activity log entries.
type ActivityRepository interface {
	Insert(ctx context.Context, e *ActivityEntry) error
	ListRecent(ctx context.Context, limit int) ([]ActivityEntry, error)
}
