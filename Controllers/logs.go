package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"TintTrack/Models"
)

// GetLogs returns the persisted request audit trail, newest first. Manager
// only.
func GetLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}

	query := Models.DB.Model(&Models.RequestLog{})
	if path := c.Query("path"); path != "" {
		query = query.Where("path LIKE ?", "%"+path+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var logs []Models.RequestLog
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&logs).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  logs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetLogStats summarizes traffic by path and status class.
func GetLogStats(c *fiber.Ctx) error {
	type PathStat struct {
		Path         string  `json:"path"`
		Count        int64   `json:"count"`
		AvgLatencyMs float64 `json:"avg_latency_ms"`
		Errors       int64   `json:"errors"`
	}

	var stats []PathStat
	err := Models.DB.Raw(`
		SELECT
			path,
			COUNT(*) as count,
			AVG(latency_ms) as avg_latency_ms,
			SUM(CASE WHEN status >= 400 THEN 1 ELSE 0 END) as errors
		FROM request_logs
		WHERE deleted_at IS NULL
		GROUP BY path
		ORDER BY count DESC
		LIMIT 25
	`).Scan(&stats).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(stats)
}
