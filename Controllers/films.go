package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"TintTrack/Models"
	"TintTrack/validation"
)

type FilmInput struct {
	Name         string  `json:"name" validate:"required"`
	Type         string  `json:"type"`
	CostPerSqft  float64 `json:"cost_per_sqft" validate:"gte=0"`
	MinimumStock float64 `json:"minimum_stock" validate:"gte=0"`
}

// GetAllFilms lists films. Pass ?active=true to hide deactivated ones.
func GetAllFilms(c *fiber.Ctx) error {
	query := Models.DB.Preload("Inventory")
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}

	var films []Models.Film
	if err := query.Order("name ASC").Find(&films).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(films)
}

// GetFilm fetches a single film with its inventory.
func GetFilm(c *fiber.Ctx) error {
	id := c.Params("id")
	var film Models.Film
	if err := Models.DB.Preload("Inventory").First(&film, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Film not found"})
	}
	return c.JSON(film)
}

// CreateFilm adds a film and its empty inventory record.
func CreateFilm(c *fiber.Ctx) error {
	var input FilmInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validation.Struct(input); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	film := Models.Film{
		Name:        input.Name,
		Type:        input.Type,
		CostPerSqft: input.CostPerSqft,
		Active:      true,
	}

	tx := Models.DB.Begin()
	if err := tx.Create(&film).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Film name already exists"})
	}
	inventory := Models.FilmInventory{
		FilmID:       film.ID,
		MinimumStock: input.MinimumStock,
	}
	if err := tx.Create(&inventory).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create inventory record"})
	}
	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	Models.DB.Preload("Inventory").First(&film, film.ID)
	return c.Status(fiber.StatusCreated).JSON(film)
}

// UpdateFilm edits catalog fields. Cost changes apply to future jobs only;
// stored job snapshots are left alone.
func UpdateFilm(c *fiber.Ctx) error {
	id := c.Params("id")
	var film Models.Film
	if err := Models.DB.First(&film, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Film not found"})
	}

	var input FilmInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validation.Struct(input); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	updates := map[string]interface{}{
		"name":          input.Name,
		"type":          input.Type,
		"cost_per_sqft": input.CostPerSqft,
	}
	Models.DB.Model(&film).Updates(updates)
	Models.DB.Model(&Models.FilmInventory{}).
		Where("film_id = ?", film.ID).
		Update("minimum_stock", input.MinimumStock)

	Models.DB.Preload("Inventory").First(&film, film.ID)
	return c.JSON(film)
}

// DeactivateFilm hides a film from selection. Films referenced by historical
// dimensions are never hard deleted.
func DeactivateFilm(c *fiber.Ctx) error {
	id := c.Params("id")
	var film Models.Film
	if err := Models.DB.First(&film, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Film not found"})
	}

	Models.DB.Model(&film).Update("active", false)
	return c.JSON(fiber.Map{"message": "Film deactivated successfully"})
}

// ReactivateFilm puts a film back into selection.
func ReactivateFilm(c *fiber.Ctx) error {
	id := c.Params("id")
	var film Models.Film
	if err := Models.DB.First(&film, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Film not found"})
	}

	Models.DB.Model(&film).Update("active", true)
	return c.JSON(fiber.Map{"message": "Film reactivated successfully"})
}

func parseFilmID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	return uint(id), err
}
