package service

import (
	"context"

	"sheetdesk/internal/domain"
)

// ActivityService provides read access to the activity feed.
type ActivityService struct {
	repo domain.ActivityRepository
}

// NewActivityService creates a new ActivityService.
func NewActivityService(repo domain.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Recent returns the newest entries first. limit is clamped by the
// repository; zero means the default page size.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	return s.repo.ListRecent(ctx, limit)
}
