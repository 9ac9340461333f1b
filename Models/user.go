package Models

import (
	"gorm.io/gorm"
)

// Role constants used across the API. Managers can do everything,
// data entry staff record jobs and inventory, installers read their own numbers.
const (
	RoleManager   = "manager"
	RoleInstaller = "installer"
	RoleDataEntry = "data_entry"
)

type User struct {
	gorm.Model
	FirstName  string  `json:"first_name" gorm:"size:100;not null"`
	LastName   string  `json:"last_name" gorm:"size:100;not null"`
	Email      string  `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Password   []byte  `json:"-"`
	Role       string  `json:"role" gorm:"size:20;not null;default:installer;index"`
	HourlyRate float64 `json:"hourly_rate"`

	// Relationships
	JobAssignments []JobInstaller       `json:"job_assignments,omitempty" gorm:"foreignKey:UserID"`
	TimeEntries    []InstallerTimeEntry `json:"time_entries,omitempty" gorm:"foreignKey:UserID"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleManager, RoleInstaller, RoleDataEntry:
		return true
	}
	return false
}

// InstallerRef is the slim user shape embedded in analytics responses.
type InstallerRef struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (u User) Ref() InstallerRef {
	return InstallerRef{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
