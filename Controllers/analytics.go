package Controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"TintTrack/Analytics"
	"TintTrack/Models"
)

// AnalyticsController handles metric aggregation endpoints.
type AnalyticsController struct {
	DB *gorm.DB
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// rangeFromQuery reads the shared date filter query params.
func rangeFromQuery(c *fiber.Ctx) Analytics.DateRange {
	return Analytics.DateRange{
		Mode: c.Query("mode", Analytics.RangeAll),
		From: c.Query("from"),
		To:   c.Query("to"),
	}
}

// inRangeJobIDs returns the ids of jobs inside the resolved range, or all
// jobs when the filter is inert.
func (a *AnalyticsController) inRangeJobs(resolved Analytics.ResolvedRange) ([]Models.JobEntry, error) {
	query := a.DB.Model(&Models.JobEntry{})
	if resolved.Applied {
		query = query.Where("date BETWEEN ? AND ?", resolved.From, resolved.To)
	}
	var jobs []Models.JobEntry
	err := query.Find(&jobs).Error
	return jobs, err
}

// Dashboard returns the range-filtered shop summary.
func (a *AnalyticsController) Dashboard(ctx *fiber.Ctx) error {
	resolved := rangeFromQuery(ctx).Resolve(time.Now())

	jobs, err := a.inRangeJobs(resolved)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve jobs"})
	}

	jobIDs := make([]uint, len(jobs))
	for i, job := range jobs {
		jobIDs[i] = job.ID
	}

	var redos []Models.RedoEntry
	var assignments []Models.JobInstaller
	if len(jobIDs) > 0 {
		if err := a.DB.Where("job_entry_id IN ?", jobIDs).Find(&redos).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve redo entries"})
		}
		if err := a.DB.Where("job_entry_id IN ?", jobIDs).Find(&assignments).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve installer assignments"})
		}
	}

	metrics := Analytics.ComputeDashboard(jobs, redos, assignments)

	return ctx.JSON(fiber.Map{
		"metrics":        metrics,
		"filter_applied": resolved.Applied,
		"range":          resolved,
	})
}

// TimePerformance returns installers ranked by average minutes per window.
func (a *AnalyticsController) TimePerformance(ctx *fiber.Ctx) error {
	resolved := rangeFromQuery(ctx).Resolve(time.Now())

	jobs, err := a.inRangeJobs(resolved)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve jobs"})
	}

	var entries []Models.InstallerTimeEntry
	if len(jobs) > 0 {
		jobIDs := make([]uint, len(jobs))
		for i, job := range jobs {
			jobIDs[i] = job.ID
		}
		if err := a.DB.Where("job_entry_id IN ?", jobIDs).Order("id ASC").Find(&entries).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve time entries"})
		}
	}

	users, err := a.usersFor(entries)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve installers"})
	}

	return ctx.JSON(fiber.Map{
		"performance":    Analytics.ComputeTimePerformance(entries, users),
		"filter_applied": resolved.Applied,
	})
}

// MyPerformance returns the ranked performance rows for the logged-in user
// only, so installers can read their own numbers without the manager gate.
func (a *AnalyticsController) MyPerformance(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals("user").(Models.User)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthenticated"})
	}

	resolved := rangeFromQuery(ctx).Resolve(time.Now())

	jobs, err := a.inRangeJobs(resolved)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve jobs"})
	}

	var entries []Models.InstallerTimeEntry
	if len(jobs) > 0 {
		jobIDs := make([]uint, len(jobs))
		for i, job := range jobs {
			jobIDs[i] = job.ID
		}
		if err := a.DB.Where("job_entry_id IN ? AND user_id = ?", jobIDs, user.ID).
			Order("id ASC").Find(&entries).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve time entries"})
		}
	}

	users := map[uint]Models.User{user.ID: user}
	rows := Analytics.ComputeTimePerformance(entries, users)

	return ctx.JSON(fiber.Map{
		"performance":    rows,
		"filter_applied": resolved.Applied,
	})
}

// JobCosts returns the labor and material breakdown for one job.
func (a *AnalyticsController) JobCosts(ctx *fiber.Ctx) error {
	var job Models.JobEntry
	if err := a.DB.First(&job, ctx.Params("id")).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
	}

	var entries []Models.InstallerTimeEntry
	if err := a.DB.Where("job_entry_id = ?", job.ID).Find(&entries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve time entries"})
	}

	var redos []Models.RedoEntry
	if err := a.DB.Where("job_entry_id = ?", job.ID).Find(&redos).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve redo entries"})
	}

	users, err := a.usersFor(entries)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve installers"})
	}

	return ctx.JSON(Analytics.ComputeJobCost(job, entries, users, redos))
}

// usersFor loads the users referenced by a set of time entries, soft-deleted
// installers included, since historical jobs still reference them.
func (a *AnalyticsController) usersFor(entries []Models.InstallerTimeEntry) (map[uint]Models.User, error) {
	ids := make([]uint, 0, len(entries))
	seen := make(map[uint]bool)
	for _, entry := range entries {
		if !seen[entry.UserID] {
			seen[entry.UserID] = true
			ids = append(ids, entry.UserID)
		}
	}

	users := make(map[uint]Models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var rows []Models.User
	if err := a.DB.Unscoped().Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, user := range rows {
		users[user.ID] = user
	}
	return users, nil
}
