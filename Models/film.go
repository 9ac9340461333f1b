package Models

import (
	"gorm.io/gorm"
)

// Film catalog entry. Films are deactivated rather than deleted so that
// historical job dimensions keep a valid reference.
type Film struct {
	gorm.Model
	Name        string  `json:"name" gorm:"size:255;not null;uniqueIndex"`
	Type        string  `json:"type" gorm:"size:100"`
	CostPerSqft float64 `json:"cost_per_sqft" gorm:"not null"`
	Active      bool    `json:"active" gorm:"default:true;index"`

	Inventory *FilmInventory `json:"inventory,omitempty" gorm:"foreignKey:FilmID"`
}

// FilmInventory tracks current stock for one film, in square feet.
type FilmInventory struct {
	gorm.Model
	FilmID       uint    `json:"film_id" gorm:"not null;uniqueIndex"`
	CurrentStock float64 `json:"current_stock" gorm:"not null;default:0"`
	MinimumStock float64 `json:"minimum_stock" gorm:"not null;default:0"`
}

// Inventory transaction types.
const (
	TxnAddition   = "addition"
	TxnDeduction  = "deduction"
	TxnAdjustment = "adjustment"
)

// InventoryTransaction is an immutable ledger row. PreviousStock and NewStock
// snapshot the stock level around the movement for auditability; rows are
// never updated after creation.
type InventoryTransaction struct {
	gorm.Model
	FilmID        uint    `json:"film_id" gorm:"not null;index"`
	JobEntryID    *uint   `json:"job_entry_id" gorm:"index"`
	Type          string  `json:"type" gorm:"size:20;not null"`
	Quantity      float64 `json:"quantity" gorm:"not null"`
	PreviousStock float64 `json:"previous_stock" gorm:"not null"`
	NewStock      float64 `json:"new_stock" gorm:"not null"`
	Notes         string  `json:"notes" gorm:"type:text"`

	Film Film `json:"film,omitempty" gorm:"foreignKey:FilmID"`
}

func ValidTransactionType(t string) bool {
	switch t {
	case TxnAddition, TxnDeduction, TxnAdjustment:
		return true
	}
	return false
}
