package Analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TintTrack/Models"
)

func TestComputeJobCostLaborOnly(t *testing.T) {
	installer := Models.User{HourlyRate: 20, FirstName: "Sam"}
	installer.ID = 1
	users := map[uint]Models.User{1: installer}

	job := Models.JobEntry{}
	job.ID = 5

	entries := []Models.InstallerTimeEntry{
		{JobEntryID: 5, UserID: 1, TimeMinutes: 90, WindowsCompleted: 7},
	}

	breakdown := ComputeJobCost(job, entries, users, nil)

	require.Len(t, breakdown.LaborCosts, 1)
	assert.InDelta(t, 30.0, breakdown.LaborCosts[0].LaborCost, 0.001, "90/60*20")
	assert.InDelta(t, 30.0, breakdown.TotalLaborCost, 0.001)
	assert.InDelta(t, 20.0, breakdown.LaborCosts[0].HourlyRate, 0.001)
}

func TestComputeJobCostNoTimeEntries(t *testing.T) {
	breakdown := ComputeJobCost(Models.JobEntry{}, nil, nil, nil)

	assert.Equal(t, 0.0, breakdown.TotalLaborCost)
	assert.NotNil(t, breakdown.LaborCosts)
	assert.Empty(t, breakdown.LaborCosts)
}

func TestRedoMaterialCostAtJobRate(t *testing.T) {
	// $200 film over 100 sqft puts the job at $2/sqft, so a 10 sqft redo
	// costs $20 and total material is $220.
	job := Models.JobEntry{TotalSqft: 100, FilmCost: 200}
	redos := []Models.RedoEntry{
		{Sqft: 10, Part: Models.PartWindshield},
	}

	assert.InDelta(t, 20.0, RedoMaterialCost(job, redos), 0.001)

	breakdown := ComputeJobCost(job, nil, nil, redos)
	assert.InDelta(t, 220.0, breakdown.TotalMaterial, 0.001)
	assert.InDelta(t, 220.0, breakdown.TotalJobCost, 0.001)
}

func TestRedoMaterialCostZeroSqft(t *testing.T) {
	redos := []Models.RedoEntry{
		{Sqft: 12, Part: Models.PartRollups},
		{Sqft: 3, Part: Models.PartQuarter},
	}

	job := Models.JobEntry{TotalSqft: 0, FilmCost: 150}
	assert.Equal(t, 0.0, RedoMaterialCost(job, redos), "undefined cost per sqft is 0, not an error")
}

func TestComputeJobCostCombined(t *testing.T) {
	a := Models.User{HourlyRate: 18}
	a.ID = 1
	b := Models.User{HourlyRate: 24}
	b.ID = 2
	users := map[uint]Models.User{1: a, 2: b}

	job := Models.JobEntry{TotalSqft: 80, FilmCost: 160} // $2/sqft
	entries := []Models.InstallerTimeEntry{
		{UserID: 1, TimeMinutes: 60},
		{UserID: 2, TimeMinutes: 30},
	}
	redos := []Models.RedoEntry{{Sqft: 5}}

	breakdown := ComputeJobCost(job, entries, users, redos)

	assert.InDelta(t, 30.0, breakdown.TotalLaborCost, 0.001) // 18 + 12
	assert.InDelta(t, 10.0, breakdown.RedoMaterialCost, 0.001)
	assert.InDelta(t, 170.0, breakdown.TotalMaterial, 0.001)
	assert.InDelta(t, 200.0, breakdown.TotalJobCost, 0.001)
}

func TestStoredSqftMatchesFormula(t *testing.T) {
	// The stored sqft column is redundant for query speed; the formula stays
	// the source of truth.
	dim := Models.JobDimension{LengthInches: 36, WidthInches: 24}
	dim.Sqft = Models.SquareFeet(dim.LengthInches, dim.WidthInches)

	assert.InDelta(t, 6.0, dim.Sqft, 0.0001)
	assert.InDelta(t, dim.LengthInches*dim.WidthInches/144, dim.Sqft, 0.0001)
}
