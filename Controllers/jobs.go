package Controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"TintTrack/Analytics"
	"TintTrack/Models"
	"TintTrack/validation"
)

// PhotoDir is where job photos land. Overridden from config at startup.
var PhotoDir = "JobPhotos"

type jobEntryValidation struct {
	JobNumber string `validate:"required"`
	Date      string `validate:"required"`
}

// CreateJob records a job and all of its children in one transaction.
// Dimension sqft and per-dimension cost are derived here and stored as
// snapshots.
func CreateJob(c *fiber.Ctx) error {
	var req Models.JobEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if messages := validation.Struct(jobEntryValidation{JobNumber: req.JobNumber, Date: req.Date}); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}
	if !Analytics.ValidDate(req.Date) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	job := Models.JobEntry{
		JobNumber:       req.JobNumber,
		Date:            req.Date,
		VehicleYear:     req.VehicleYear,
		VehicleMake:     req.VehicleMake,
		VehicleModel:    req.VehicleModel,
		FilmCost:        req.FilmCost,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}

	tx := Models.DB.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": tx.Error.Error()})
	}

	if err := tx.Create(&job).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Job number already exists"})
	}

	if err := createJobChildren(tx, &job, req); err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	reloadJob(&job)
	return c.Status(fiber.StatusCreated).JSON(job)
}

// createJobChildren inserts dimensions, installer assignments and time
// entries, then writes the derived total sqft back onto the parent.
func createJobChildren(tx *gorm.DB, job *Models.JobEntry, req Models.JobEntryRequest) error {
	var totalSqft float64
	for _, dim := range req.Dimensions {
		sqft := Models.SquareFeet(dim.LengthInches, dim.WidthInches)
		dimension := Models.JobDimension{
			JobEntryID:   job.ID,
			LengthInches: dim.LengthInches,
			WidthInches:  dim.WidthInches,
			Sqft:         sqft,
			FilmID:       dim.FilmID,
		}
		if dim.FilmID != nil {
			var film Models.Film
			if err := tx.First(&film, *dim.FilmID).Error; err != nil {
				return fmt.Errorf("film %d not found", *dim.FilmID)
			}
			dimension.Cost = sqft * film.CostPerSqft
		}
		if err := tx.Create(&dimension).Error; err != nil {
			return err
		}
		totalSqft += sqft
	}

	for _, assignment := range req.Installers {
		jobInstaller := Models.JobInstaller{
			JobEntryID:          job.ID,
			UserID:              assignment.UserID,
			TimeVarianceMinutes: assignment.TimeVarianceMinutes,
		}
		if err := tx.Create(&jobInstaller).Error; err != nil {
			return err
		}
	}

	for _, entry := range req.TimeEntries {
		timeEntry := Models.InstallerTimeEntry{
			JobEntryID:       job.ID,
			UserID:           entry.UserID,
			WindowsCompleted: entry.WindowsCompleted,
			TimeMinutes:      entry.TimeMinutes,
		}
		if err := tx.Create(&timeEntry).Error; err != nil {
			return err
		}
	}

	job.TotalSqft = totalSqft
	return tx.Model(job).Update("total_sqft", totalSqft).Error
}

func reloadJob(job *Models.JobEntry) {
	Models.DB.
		Preload("Dimensions").
		Preload("Installers.User").
		Preload("Redos.User").
		Preload("TimeEntries.User").
		Preload("Photos").
		First(job, job.ID)
}

// GetJob fetches one job with all children.
func GetJob(c *fiber.Ctx) error {
	id := c.Params("id")
	var job Models.JobEntry
	if err := Models.DB.
		Preload("Dimensions").
		Preload("Installers.User").
		Preload("Redos.User").
		Preload("TimeEntries.User").
		Preload("Photos").
		First(&job, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
	}
	return c.JSON(job)
}

// GetAllJobs lists jobs newest first with pagination and the shared date
// filter.
func GetAllJobs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	resolved := rangeFromQuery(c).Resolve(time.Now())
	query := Models.DB.Model(&Models.JobEntry{})
	if resolved.Applied {
		query = query.Where("date BETWEEN ? AND ?", resolved.From, resolved.To)
	}

	var total int64
	query.Count(&total)

	var jobs []Models.JobEntry
	err := query.
		Preload("Installers.User").
		Order("date DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":           jobs,
		"filter_applied": resolved.Applied,
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// UpdateJob replaces the job and its dimension/assignment/time-entry children.
// Redos and photos are managed through their own endpoints and survive.
func UpdateJob(c *fiber.Ctx) error {
	id := c.Params("id")
	var job Models.JobEntry
	if err := Models.DB.First(&job, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
	}

	var req Models.JobEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !Analytics.ValidDate(req.Date) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	tx := Models.DB.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": tx.Error.Error()})
	}

	job.JobNumber = req.JobNumber
	job.Date = req.Date
	job.VehicleYear = req.VehicleYear
	job.VehicleMake = req.VehicleMake
	job.VehicleModel = req.VehicleModel
	job.FilmCost = req.FilmCost
	job.StartTime = req.StartTime
	job.EndTime = req.EndTime
	job.DurationMinutes = req.DurationMinutes
	job.Notes = req.Notes

	if err := tx.Save(&job).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	for _, child := range []interface{}{&Models.JobDimension{}, &Models.JobInstaller{}, &Models.InstallerTimeEntry{}} {
		if err := tx.Unscoped().Where("job_entry_id = ?", job.ID).Delete(child).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	if err := createJobChildren(tx, &job, req); err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	reloadJob(&job)
	return c.JSON(job)
}

// DeleteJob removes a job; children go with it through the FK cascade.
func DeleteJob(c *fiber.Ctx) error {
	id := c.Params("id")
	var job Models.JobEntry
	if err := Models.DB.First(&job, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
	}

	if err := Models.DB.Select(
		"Dimensions", "Installers", "Redos", "TimeEntries", "Photos",
	).Delete(&job).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Job deleted successfully"})
}

// AddRedo records a rework event. The material cost snapshot is priced at the
// job's effective cost per square foot at the time the redo is recorded.
func AddRedo(c *fiber.Ctx) error {
	id := c.Params("id")
	var job Models.JobEntry
	if err := Models.DB.First(&job, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
	}

	var req Models.RedoEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !Models.ValidPart(req.Part) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid window part"})
	}

	sqft := Models.SquareFeet(req.LengthInches, req.WidthInches)
	redo := Models.RedoEntry{
		JobEntryID:   job.ID,
		UserID:       req.UserID,
		Part:         req.Part,
		LengthInches: req.LengthInches,
		WidthInches:  req.WidthInches,
		Sqft:         sqft,
		TimeMinutes:  req.TimeMinutes,
		MaterialCost: Analytics.RedoMaterialCost(job, []Models.RedoEntry{{Sqft: sqft}}),
	}

	if err := Models.DB.Create(&redo).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(redo)
}

// DeleteRedo removes a redo entry from a job.
func DeleteRedo(c *fiber.Ctx) error {
	var redo Models.RedoEntry
	if err := Models.DB.
		Where("job_entry_id = ?", c.Params("id")).
		First(&redo, c.Params("redoId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Redo entry not found"})
	}

	Models.DB.Delete(&redo)
	return c.JSON(fiber.Map{"message": "Redo entry deleted successfully"})
}

// AddTimeEntry allocates windows and minutes to an installer on a job.
func AddTimeEntry(c *fiber.Ctx) error {
	id := c.Params("id")
	var job Models.JobEntry
	if err := Models.DB.First(&job, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
	}

	var req Models.InstallerTimeEntryInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user Models.User
	if err := Models.DB.First(&user, req.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Installer not found"})
	}

	entry := Models.InstallerTimeEntry{
		JobEntryID:       job.ID,
		UserID:           req.UserID,
		WindowsCompleted: req.WindowsCompleted,
		TimeMinutes:      req.TimeMinutes,
	}
	if err := Models.DB.Create(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// UploadJobPhoto stores a before/after shot and a 320px thumbnail next to it.
func UploadJobPhoto(c *fiber.Ctx) error {
	id := c.Params("id")
	var job Models.JobEntry
	if err := Models.DB.First(&job, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
	}

	kind := c.FormValue("kind", "after")
	if kind != "before" && kind != "after" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "kind must be before or after"})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No photo provided"})
	}

	if err := os.MkdirAll(PhotoDir, 0755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	name := fmt.Sprintf("job%d_%s_%d%s", job.ID, kind, time.Now().UnixNano(), filepath.Ext(file.Filename))
	path := filepath.Join(PhotoDir, name)
	if err := c.SaveFile(file, path); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save photo"})
	}

	img, err := imaging.Open(path)
	if err != nil {
		os.Remove(path)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is not a valid image"})
	}
	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	thumbPath := filepath.Join(PhotoDir, "thumb_"+name)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save thumbnail"})
	}

	photo := Models.JobPhoto{
		JobEntryID: job.ID,
		Kind:       kind,
		Path:       path,
		ThumbPath:  thumbPath,
	}
	if err := Models.DB.Create(&photo).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(photo)
}
