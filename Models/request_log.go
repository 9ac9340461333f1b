package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RequestLog is the persisted audit trail for API requests. The request body
// is kept as raw JSON so manager tooling can inspect what was submitted.
type RequestLog struct {
	gorm.Model
	Method      string         `json:"method" gorm:"size:10;not null"`
	Path        string         `json:"path" gorm:"size:500;not null;index"`
	Status      int            `json:"status" gorm:"index"`
	LatencyMs   int64          `json:"latency_ms"`
	IP          string         `json:"ip" gorm:"size:45"`
	UserID      *uint          `json:"user_id" gorm:"index"`
	Username    string         `json:"username" gorm:"size:255"`
	RequestBody datatypes.JSON `json:"request_body,omitempty"`
	Error       string         `json:"error,omitempty" gorm:"type:text"`
}
