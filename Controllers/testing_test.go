package Controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"TintTrack/Models"
)

// setupTest points Models.DB at a fresh in-memory database and returns an app
// with the handlers mounted without the auth middleware; role gating is
// covered separately.
func setupTest(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	db.Exec("PRAGMA foreign_keys = ON")
	Models.Migrate(db)
	Models.DB = db

	app := fiber.New()

	app.Post("/api/films", CreateFilm)
	app.Get("/api/films", GetAllFilms)
	app.Put("/api/films/:id/deactivate", DeactivateFilm)
	app.Post("/api/films/:id/transactions", ApplyTransaction)
	app.Get("/api/films/:id/transactions", GetFilmTransactions)
	app.Get("/api/inventory/low-stock", GetLowStock)

	app.Post("/api/jobs", CreateJob)
	app.Get("/api/jobs", GetAllJobs)
	app.Get("/api/jobs/:id", GetJob)
	app.Delete("/api/jobs/:id", DeleteJob)
	app.Post("/api/jobs/:id/redos", AddRedo)
	app.Post("/api/jobs/:id/time-entries", AddTimeEntry)

	analytics := NewAnalyticsController(db)
	app.Get("/api/analytics/dashboard", analytics.Dashboard)
	app.Get("/api/analytics/time-performance", analytics.TimePerformance)
	app.Get("/api/analytics/jobs/:id/costs", analytics.JobCosts)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func asMap(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func decodeInto(t *testing.T, raw []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

var installerSeq atomic.Uint64

func createInstaller(t *testing.T, rate float64) Models.User {
	t.Helper()
	user := Models.User{
		FirstName:  "Test",
		LastName:   "Installer",
		Email:      fmt.Sprintf("installer%d@shop.test", installerSeq.Add(1)),
		Role:       Models.RoleInstaller,
		HourlyRate: rate,
	}
	require.NoError(t, Models.DB.Create(&user).Error)
	return user
}
