package Models

import (
	"gorm.io/gorm"
)

// WindowsPerVehicle is the fixed window count per job: windshield,
// back windshield, 4 rollups and the quarter glass. It is the success-rate
// denominator regardless of how many surfaces were actually measured.
const WindowsPerVehicle = 7

// Window part identifiers for redo entries.
const (
	PartWindshield     = "windshield"
	PartBackWindshield = "back_windshield"
	PartRollups        = "rollups"
	PartQuarter        = "quarter"
)

func ValidPart(part string) bool {
	switch part {
	case PartWindshield, PartBackWindshield, PartRollups, PartQuarter:
		return true
	}
	return false
}

// SquareFeet converts inch dimensions to square feet. Stored sqft columns are
// derived with this helper and must stay consistent with their inputs.
func SquareFeet(lengthInches, widthInches float64) float64 {
	return lengthInches * widthInches / 144
}

// JobEntry is one vehicle job. Dates are stored as "2006-01-02" strings so
// range filters compare lexicographically. FilmCost and the sqft columns are
// snapshots taken at write time; they are never recomputed when film pricing
// changes later.
type JobEntry struct {
	gorm.Model
	JobNumber       string  `json:"job_number" gorm:"size:50;not null;uniqueIndex"`
	Date            string  `json:"date" gorm:"size:10;not null;index"`
	VehicleYear     int     `json:"vehicle_year"`
	VehicleMake     string  `json:"vehicle_make" gorm:"size:100"`
	VehicleModel    string  `json:"vehicle_model" gorm:"size:100"`
	TotalSqft       float64 `json:"total_sqft"`
	FilmCost        float64 `json:"film_cost"`
	StartTime       string  `json:"start_time" gorm:"size:5"`
	EndTime         string  `json:"end_time" gorm:"size:5"`
	DurationMinutes int     `json:"duration_minutes"`
	Notes           string  `json:"notes" gorm:"type:text"`

	// Relationships
	Dimensions  []JobDimension       `json:"dimensions,omitempty" gorm:"foreignKey:JobEntryID;constraint:OnDelete:CASCADE"`
	Installers  []JobInstaller       `json:"installers,omitempty" gorm:"foreignKey:JobEntryID;constraint:OnDelete:CASCADE"`
	Redos       []RedoEntry          `json:"redos,omitempty" gorm:"foreignKey:JobEntryID;constraint:OnDelete:CASCADE"`
	TimeEntries []InstallerTimeEntry `json:"time_entries,omitempty" gorm:"foreignKey:JobEntryID;constraint:OnDelete:CASCADE"`
	Photos      []JobPhoto           `json:"photos,omitempty" gorm:"foreignKey:JobEntryID;constraint:OnDelete:CASCADE"`
}

// JobDimension is one measured surface on a job.
type JobDimension struct {
	gorm.Model
	JobEntryID   uint    `json:"job_entry_id" gorm:"not null;index"`
	LengthInches float64 `json:"length_inches" gorm:"not null"`
	WidthInches  float64 `json:"width_inches" gorm:"not null"`
	Sqft         float64 `json:"sqft" gorm:"not null"`
	FilmID       *uint   `json:"film_id"`
	Cost         float64 `json:"cost"`
}

// JobInstaller joins a job and an installer with the signed minutes the
// installer ran over or under the target duration.
type JobInstaller struct {
	gorm.Model
	JobEntryID          uint `json:"job_entry_id" gorm:"not null;index"`
	UserID              uint `json:"user_id" gorm:"not null;index"`
	TimeVarianceMinutes int  `json:"time_variance_minutes"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// RedoEntry is a rework event on one window part. MaterialCost is the
// snapshot taken when the redo was recorded.
type RedoEntry struct {
	gorm.Model
	JobEntryID   uint    `json:"job_entry_id" gorm:"not null;index"`
	UserID       uint    `json:"user_id" gorm:"not null;index"`
	Part         string  `json:"part" gorm:"size:20;not null"`
	LengthInches float64 `json:"length_inches"`
	WidthInches  float64 `json:"width_inches"`
	Sqft         float64 `json:"sqft"`
	MaterialCost float64 `json:"material_cost"`
	TimeMinutes  int     `json:"time_minutes"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// InstallerTimeEntry allocates windows completed and minutes worked to one
// installer on one job. It is the basis for efficiency and labor cost.
type InstallerTimeEntry struct {
	gorm.Model
	JobEntryID       uint `json:"job_entry_id" gorm:"not null;index"`
	UserID           uint `json:"user_id" gorm:"not null;index"`
	WindowsCompleted int  `json:"windows_completed"`
	TimeMinutes      int  `json:"time_minutes"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// JobPhoto stores before/after documentation shots with a generated thumbnail.
type JobPhoto struct {
	gorm.Model
	JobEntryID uint   `json:"job_entry_id" gorm:"not null;index"`
	Kind       string `json:"kind" gorm:"size:10;not null"` // "before" or "after"
	Path       string `json:"path" gorm:"size:500;not null"`
	ThumbPath  string `json:"thumb_path" gorm:"size:500"`
}

// JobEntryRequest is the write shape for creating or replacing a job with its
// children in one request.
type JobEntryRequest struct {
	JobNumber       string                    `json:"job_number"`
	Date            string                    `json:"date"`
	VehicleYear     int                       `json:"vehicle_year"`
	VehicleMake     string                    `json:"vehicle_make"`
	VehicleModel    string                    `json:"vehicle_model"`
	FilmCost        float64                   `json:"film_cost"`
	StartTime       string                    `json:"start_time"`
	EndTime         string                    `json:"end_time"`
	DurationMinutes int                       `json:"duration_minutes"`
	Notes           string                    `json:"notes"`
	Dimensions      []JobDimensionRequest     `json:"dimensions"`
	Installers      []JobInstallerRequest     `json:"installers"`
	TimeEntries     []InstallerTimeEntryInput `json:"time_entries"`
}

type JobDimensionRequest struct {
	LengthInches float64 `json:"length_inches"`
	WidthInches  float64 `json:"width_inches"`
	FilmID       *uint   `json:"film_id"`
}

type JobInstallerRequest struct {
	UserID              uint `json:"user_id"`
	TimeVarianceMinutes int  `json:"time_variance_minutes"`
}

type InstallerTimeEntryInput struct {
	UserID           uint `json:"user_id"`
	WindowsCompleted int  `json:"windows_completed"`
	TimeMinutes      int  `json:"time_minutes"`
}

type RedoEntryRequest struct {
	UserID       uint    `json:"user_id"`
	Part         string  `json:"part"`
	LengthInches float64 `json:"length_inches"`
	WidthInches  float64 `json:"width_inches"`
	TimeMinutes  int     `json:"time_minutes"`
}
