package Controllers

import (
	"github.com/gofiber/fiber/v2"

	"TintTrack/Models"
	"TintTrack/validation"
)

type TransactionInput struct {
	Type       string  `json:"type" validate:"required,oneof=addition deduction adjustment"`
	Quantity   float64 `json:"quantity" validate:"required,gt=0"`
	JobEntryID *uint   `json:"job_entry_id"`
	Notes      string  `json:"notes"`
}

// ApplyTransaction appends a ledger row and moves the stock level in one
// database transaction, so two concurrent deductions against the same film
// cannot both read stale stock.
func ApplyTransaction(c *fiber.Ctx) error {
	filmID, err := parseFilmID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid film ID"})
	}

	var input TransactionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validation.Struct(input); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	var film Models.Film
	if err := Models.DB.First(&film, filmID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Film not found"})
	}

	tx := Models.DB.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": tx.Error.Error()})
	}

	var inventory Models.FilmInventory
	if err := tx.Where("film_id = ?", filmID).First(&inventory).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Inventory record not found"})
	}

	previous := inventory.CurrentStock
	var next float64
	switch input.Type {
	case Models.TxnAddition:
		next = previous + input.Quantity
	case Models.TxnDeduction:
		next = previous - input.Quantity
		if next < 0 {
			tx.Rollback()
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Insufficient stock"})
		}
	case Models.TxnAdjustment:
		// Quantity is the corrected absolute stock level.
		next = input.Quantity
	}

	transaction := Models.InventoryTransaction{
		FilmID:        uint(filmID),
		JobEntryID:    input.JobEntryID,
		Type:          input.Type,
		Quantity:      input.Quantity,
		PreviousStock: previous,
		NewStock:      next,
		Notes:         input.Notes,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record transaction"})
	}
	if err := tx.Model(&inventory).Update("current_stock", next).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update stock"})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(transaction)
}

// GetFilmTransactions lists the ledger for one film, newest first.
func GetFilmTransactions(c *fiber.Ctx) error {
	filmID, err := parseFilmID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid film ID"})
	}

	var film Models.Film
	if err := Models.DB.First(&film, filmID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Film not found"})
	}

	var transactions []Models.InventoryTransaction
	if err := Models.DB.Where("film_id = ?", filmID).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve transactions"})
	}

	return c.JSON(transactions)
}

// GetLowStock lists films at or below their minimum stock threshold.
func GetLowStock(c *fiber.Ctx) error {
	type LowStockRow struct {
		FilmID       uint    `json:"film_id"`
		Name         string  `json:"name"`
		CurrentStock float64 `json:"current_stock"`
		MinimumStock float64 `json:"minimum_stock"`
	}

	var rows []LowStockRow
	err := Models.DB.Raw(`
		SELECT
			f.id AS film_id,
			f.name,
			i.current_stock,
			i.minimum_stock
		FROM films f
		JOIN film_inventories i ON i.film_id = f.id
		WHERE f.active = true
		AND f.deleted_at IS NULL
		AND i.current_stock <= i.minimum_stock
		ORDER BY i.current_stock ASC
	`).Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(rows)
}
