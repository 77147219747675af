// Package app wires the workbook accessor, repositories, and services from
// the dependencies main() provides.
package app

import (
	"database/sql"
	"log/slog"

	"sheetdesk/internal/config"
	"sheetdesk/internal/db/repository"
	"sheetdesk/internal/domain"
	"sheetdesk/internal/service"
	"sheetdesk/internal/workbook"
)

// Deps holds the external dependencies that main() must provide: config,
// database handles for the activity log, and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups the service pointers the HTTP handlers need.
type Services struct {
	Sheets   *service.SheetService
	Activity *service.ActivityService
}

// App holds the fully wired application.
type App struct {
	Services Services
	Accessor domain.WorkbookAccessor
}

// New wires repositories and services from the provided deps. Activity
// inserts go through the write pool, the activity feed reads from the
// read pool.
func New(deps Deps) *App {
	accessor := workbook.NewAccessor(deps.Cfg.WorkbookPath, deps.Logger)

	activityLog := repository.NewActivityRepo(deps.WriteDB)
	activityFeed := repository.NewActivityRepo(deps.ReadDB)

	return &App{
		Services: Services{
			Sheets:   service.NewSheetService(accessor, activityLog, deps.Logger),
			Activity: service.NewActivityService(activityFeed),
		},
		Accessor: accessor,
	}
}
