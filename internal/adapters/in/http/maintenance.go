package http

import (
	"net/http"
	"time"

	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/application/usecases/queries"
	"textile/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// GetStatistics handles GET /api/v1/stats.
func (s *Server) GetStatistics(ctx echo.Context) error {
	stats, err := s.queries.GetStatistics.Handle(ctx.Request().Context(), queries.NewGetStatisticsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toStatistics(stats))
}

// CleanOrphanedObjects handles POST /api/v1/maintenance/orphaned-objects.
// Without remove it only reports what would be deleted.
func (s *Server) CleanOrphanedObjects(ctx echo.Context) error {
	var body servers.OrphanCleanup
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var minAge time.Duration
	if body.MinAgeHours != nil {
		minAge = time.Duration(*body.MinAgeHours) * time.Hour
	}

	cmd, err := commands.NewCleanOrphanedObjectsCommand(body.Remove, minAge, actorFrom(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	report, err := s.commands.CleanOrphanedObjects.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	orphans := report.Orphans
	if orphans == nil {
		orphans = []string{}
	}
	if body.Remove {
		s.logger.Info("orphaned objects removed", "count", report.Removed, "actor", cmd.Actor())
	}

	return ctx.JSON(http.StatusOK, servers.OrphanReport{
		Scanned: report.Scanned,
		Orphans: orphans,
		Removed: report.Removed,
	})
}
