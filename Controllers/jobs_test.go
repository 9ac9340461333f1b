package Controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TintTrack/Models"
)

func TestCreateJobWithChildren(t *testing.T) {
	app := setupTest(t)
	installer := createInstaller(t, 22)
	film := createFilm(t, "Job Film")

	resp, raw := doJSON(t, app, "POST", "/api/jobs", map[string]interface{}{
		"job_number":    "J-2024-001",
		"date":          "2024-03-10",
		"vehicle_year":  2021,
		"vehicle_make":  "Honda",
		"vehicle_model": "Civic",
		"film_cost":     180.0,
		"dimensions": []map[string]interface{}{
			{"length_inches": 36.0, "width_inches": 24.0, "film_id": film.ID},
			{"length_inches": 48.0, "width_inches": 30.0},
		},
		"installers": []map[string]interface{}{
			{"user_id": installer.ID, "time_variance_minutes": -5},
		},
		"time_entries": []map[string]interface{}{
			{"user_id": installer.ID, "windows_completed": 7, "time_minutes": 150},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	body := asMap(t, raw)

	// 36*24/144 + 48*30/144 = 6 + 10
	assert.InDelta(t, 16.0, body["total_sqft"].(float64), 0.001)

	var job Models.JobEntry
	require.NoError(t, Models.DB.Preload("Dimensions").Preload("Installers").Preload("TimeEntries").
		Where("job_number = ?", "J-2024-001").First(&job).Error)
	require.Len(t, job.Dimensions, 2)
	assert.InDelta(t, 6.0, job.Dimensions[0].Sqft, 0.001)
	assert.InDelta(t, 12.0, job.Dimensions[0].Cost, 0.001, "6 sqft at the film's $2/sqft")
	require.Len(t, job.Installers, 1)
	require.Len(t, job.TimeEntries, 1)
}

func TestCreateJobDuplicateNumber(t *testing.T) {
	app := setupTest(t)

	payload := map[string]interface{}{"job_number": "J-DUP", "date": "2024-03-10"}
	resp, _ := doJSON(t, app, "POST", "/api/jobs", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/jobs", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateJobRejectsBadDate(t *testing.T) {
	app := setupTest(t)

	resp, _ := doJSON(t, app, "POST", "/api/jobs", map[string]interface{}{
		"job_number": "J-BAD", "date": "03/10/2024",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddRedoSnapshotsMaterialCost(t *testing.T) {
	app := setupTest(t)
	installer := createInstaller(t, 20)

	job := Models.JobEntry{JobNumber: "J-REDO", Date: "2024-03-11", TotalSqft: 100, FilmCost: 200}
	require.NoError(t, Models.DB.Create(&job).Error)

	resp, raw := doJSON(t, app, "POST", fmt.Sprintf("/api/jobs/%d/redos", job.ID), map[string]interface{}{
		"user_id":       installer.ID,
		"part":          Models.PartWindshield,
		"length_inches": 60.0,
		"width_inches":  24.0,
		"time_minutes":  35,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := asMap(t, raw)

	// 60*24/144 = 10 sqft at the job's $2/sqft
	assert.InDelta(t, 10.0, body["sqft"].(float64), 0.001)
	assert.InDelta(t, 20.0, body["material_cost"].(float64), 0.001)
}

func TestAddRedoRejectsUnknownPart(t *testing.T) {
	app := setupTest(t)
	installer := createInstaller(t, 20)

	job := Models.JobEntry{JobNumber: "J-PART", Date: "2024-03-11"}
	require.NoError(t, Models.DB.Create(&job).Error)

	resp, _ := doJSON(t, app, "POST", fmt.Sprintf("/api/jobs/%d/redos", job.ID), map[string]interface{}{
		"user_id": installer.ID,
		"part":    "sunroof",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteJobCascades(t *testing.T) {
	app := setupTest(t)
	installer := createInstaller(t, 20)

	job := Models.JobEntry{JobNumber: "J-DEL", Date: "2024-03-12"}
	require.NoError(t, Models.DB.Create(&job).Error)
	require.NoError(t, Models.DB.Create(&Models.RedoEntry{JobEntryID: job.ID, UserID: installer.ID, Part: Models.PartQuarter}).Error)
	require.NoError(t, Models.DB.Create(&Models.InstallerTimeEntry{JobEntryID: job.ID, UserID: installer.ID, TimeMinutes: 30}).Error)

	resp, _ := doJSON(t, app, "DELETE", fmt.Sprintf("/api/jobs/%d", job.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var redoCount, entryCount int64
	Models.DB.Model(&Models.RedoEntry{}).Where("job_entry_id = ?", job.ID).Count(&redoCount)
	Models.DB.Model(&Models.InstallerTimeEntry{}).Where("job_entry_id = ?", job.ID).Count(&entryCount)
	assert.Zero(t, redoCount)
	assert.Zero(t, entryCount)
}

func TestGetAllJobsDateFilter(t *testing.T) {
	app := setupTest(t)
	for i, date := range []string{"2024-01-05", "2024-02-05", "2024-03-05"} {
		job := Models.JobEntry{JobNumber: fmt.Sprintf("J-F%d", i), Date: date}
		require.NoError(t, Models.DB.Create(&job).Error)
	}

	resp, raw := doJSON(t, app, "GET", "/api/jobs?mode=custom&from=2024-02-01&to=2024-02-28", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := asMap(t, raw)
	assert.Equal(t, true, body["filter_applied"])
	assert.Len(t, body["data"].([]interface{}), 1)

	// Half-open custom range is inert and behaves like "all".
	resp, raw = doJSON(t, app, "GET", "/api/jobs?mode=custom&from=2024-02-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = asMap(t, raw)
	assert.Equal(t, false, body["filter_applied"])
	assert.Len(t, body["data"].([]interface{}), 3)
}
