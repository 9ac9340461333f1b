package Reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"TintTrack/Analytics"
	"TintTrack/Models"
)

// ReportController serves spreadsheet exports of the cost data.
type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

var jobCostHeaders = []string{
	"Job Number", "Date", "Vehicle", "Total Sqft",
	"Film Cost", "Redo Material Cost", "Labor Cost", "Total Cost", "Redos",
}

// JobCostReport streams an xlsx with one row per in-range job and its cost
// breakdown.
func (r *ReportController) JobCostReport(ctx *fiber.Ctx) error {
	resolved := Analytics.DateRange{
		Mode: ctx.Query("mode", Analytics.RangeAll),
		From: ctx.Query("from"),
		To:   ctx.Query("to"),
	}.Resolve(time.Now())

	query := r.DB.Model(&Models.JobEntry{})
	if resolved.Applied {
		query = query.Where("date BETWEEN ? AND ?", resolved.From, resolved.To)
	}

	var jobs []Models.JobEntry
	if err := query.
		Preload("TimeEntries").
		Preload("Redos").
		Order("date ASC").
		Find(&jobs).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve jobs"})
	}

	users, err := r.allUsers()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve users"})
	}

	buffer, err := buildJobCostWorkbook(jobs, users)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("Failed to build report: %v", err)})
	}

	filename := fmt.Sprintf("job_costs_%s.xlsx", time.Now().Format("20060102_150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	ctx.Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	return ctx.Send(buffer.Bytes())
}

func (r *ReportController) allUsers() (map[uint]Models.User, error) {
	var rows []Models.User
	if err := r.DB.Unscoped().Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make(map[uint]Models.User, len(rows))
	for _, user := range rows {
		users[user.ID] = user
	}
	return users, nil
}

func buildJobCostWorkbook(jobs []Models.JobEntry, users map[uint]Models.User) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	sheetName := "Job Costs"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range jobCostHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err == nil {
		lastCell, _ := excelize.CoordinatesToCellName(len(jobCostHeaders), 1)
		f.SetCellStyle(sheetName, "A1", lastCell, headerStyle)
	}

	for rowIdx, job := range jobs {
		breakdown := Analytics.ComputeJobCost(job, job.TimeEntries, users, job.Redos)
		vehicle := fmt.Sprintf("%d %s %s", job.VehicleYear, job.VehicleMake, job.VehicleModel)

		values := []interface{}{
			job.JobNumber,
			job.Date,
			vehicle,
			job.TotalSqft,
			breakdown.FilmCost,
			breakdown.RedoMaterialCost,
			breakdown.TotalLaborCost,
			breakdown.TotalJobCost,
			len(job.Redos),
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range jobCostHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
