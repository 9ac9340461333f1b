package Controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TintTrack/Models"
)

func createFilm(t *testing.T, name string) Models.Film {
	t.Helper()
	film := Models.Film{Name: name, Type: "ceramic", CostPerSqft: 2.0, Active: true}
	require.NoError(t, Models.DB.Create(&film).Error)
	require.NoError(t, Models.DB.Create(&Models.FilmInventory{FilmID: film.ID, MinimumStock: 50}).Error)
	return film
}

func txnPath(film Models.Film) string {
	return fmt.Sprintf("/api/films/%d/transactions", film.ID)
}

func TestApplyTransactionLedger(t *testing.T) {
	app := setupTest(t)
	film := createFilm(t, "Carbon 20")

	resp, raw := doJSON(t, app, "POST", txnPath(film), map[string]interface{}{
		"type":     Models.TxnAddition,
		"quantity": 100.0,
		"notes":    "initial roll delivery",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := asMap(t, raw)
	assert.Equal(t, 0.0, body["previous_stock"])
	assert.Equal(t, 100.0, body["new_stock"])

	resp, raw = doJSON(t, app, "POST", txnPath(film), map[string]interface{}{
		"type":     Models.TxnDeduction,
		"quantity": 30.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body = asMap(t, raw)
	assert.Equal(t, 100.0, body["previous_stock"])
	assert.Equal(t, 70.0, body["new_stock"])

	var inventory Models.FilmInventory
	require.NoError(t, Models.DB.Where("film_id = ?", film.ID).First(&inventory).Error)
	assert.Equal(t, 70.0, inventory.CurrentStock)

	var ledgerCount int64
	Models.DB.Model(&Models.InventoryTransaction{}).Where("film_id = ?", film.ID).Count(&ledgerCount)
	assert.Equal(t, int64(2), ledgerCount)
}

func TestApplyTransactionRejectsOverdraw(t *testing.T) {
	app := setupTest(t)
	film := createFilm(t, "Carbon 35")

	resp, _ := doJSON(t, app, "POST", txnPath(film), map[string]interface{}{
		"type":     Models.TxnDeduction,
		"quantity": 10.0,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Rejected movements must leave no ledger row and no stock change.
	var ledgerCount int64
	Models.DB.Model(&Models.InventoryTransaction{}).Where("film_id = ?", film.ID).Count(&ledgerCount)
	assert.Zero(t, ledgerCount)

	var inventory Models.FilmInventory
	require.NoError(t, Models.DB.Where("film_id = ?", film.ID).First(&inventory).Error)
	assert.Equal(t, 0.0, inventory.CurrentStock)
}

func TestApplyTransactionAdjustmentSetsAbsoluteLevel(t *testing.T) {
	app := setupTest(t)
	film := createFilm(t, "Ceramic 50")
	Models.DB.Model(&Models.FilmInventory{}).Where("film_id = ?", film.ID).Update("current_stock", 80)

	resp, raw := doJSON(t, app, "POST", txnPath(film), map[string]interface{}{
		"type":     Models.TxnAdjustment,
		"quantity": 62.5,
		"notes":    "cycle count correction",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := asMap(t, raw)
	assert.Equal(t, 80.0, body["previous_stock"])
	assert.Equal(t, 62.5, body["new_stock"])
}

func TestApplyTransactionValidation(t *testing.T) {
	app := setupTest(t)
	film := createFilm(t, "Ceramic 70")

	resp, _ := doJSON(t, app, "POST", txnPath(film), map[string]interface{}{
		"type":     "transfer",
		"quantity": 10.0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", txnPath(film), map[string]interface{}{
		"type": Models.TxnAddition,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "zero quantity rejected")
}

func TestLowStockReport(t *testing.T) {
	app := setupTest(t)
	low := createFilm(t, "Low Film")
	stocked := createFilm(t, "Stocked Film")
	Models.DB.Model(&Models.FilmInventory{}).Where("film_id = ?", low.ID).Update("current_stock", 10)
	Models.DB.Model(&Models.FilmInventory{}).Where("film_id = ?", stocked.ID).Update("current_stock", 500)

	resp, raw := doJSON(t, app, "GET", "/api/inventory/low-stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []struct {
		FilmID       uint    `json:"film_id"`
		CurrentStock float64 `json:"current_stock"`
	}
	decodeInto(t, raw, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, low.ID, rows[0].FilmID)
}

func TestDeactivateFilmKeepsRecord(t *testing.T) {
	app := setupTest(t)
	film := createFilm(t, "Retired Film")

	resp, _ := doJSON(t, app, "PUT", fmt.Sprintf("/api/films/%d/deactivate", film.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reloaded Models.Film
	require.NoError(t, Models.DB.First(&reloaded, film.ID).Error, "film must survive deactivation")
	assert.False(t, reloaded.Active)
}
