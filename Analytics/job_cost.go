package Analytics

import (
	"TintTrack/Models"
)

// InstallerLaborCost is one installer's share of a job's labor.
type InstallerLaborCost struct {
	Installer   Models.InstallerRef `json:"installer"`
	TimeMinutes int                 `json:"time_minutes"`
	HourlyRate  float64             `json:"hourly_rate"`
	LaborCost   float64             `json:"labor_cost"`
}

// JobCostBreakdown is the full cost picture for one job. FilmCost is the
// snapshot stored on the job, RedoMaterialCost is redo consumption priced at
// the job's effective cost per square foot.
type JobCostBreakdown struct {
	JobEntryID       uint                 `json:"job_entry_id"`
	LaborCosts       []InstallerLaborCost `json:"labor_costs"`
	TotalLaborCost   float64              `json:"total_labor_cost"`
	FilmCost         float64              `json:"film_cost"`
	RedoMaterialCost float64              `json:"redo_material_cost"`
	TotalMaterial    float64              `json:"total_material_cost"`
	TotalJobCost     float64              `json:"total_job_cost"`
}

// ComputeJobCost derives labor and material cost for one job from its time
// entries and redos. A job with no time entries costs 0 labor; a job with
// zero or unset total sqft has an undefined cost per square foot, so redo
// material is treated as 0 rather than an error.
func ComputeJobCost(job Models.JobEntry, timeEntries []Models.InstallerTimeEntry, users map[uint]Models.User, redos []Models.RedoEntry) JobCostBreakdown {
	breakdown := JobCostBreakdown{
		JobEntryID: job.ID,
		LaborCosts: []InstallerLaborCost{},
		FilmCost:   job.FilmCost,
	}

	for _, entry := range timeEntries {
		user := users[entry.UserID]
		cost := InstallerLaborCost{
			Installer:   user.Ref(),
			TimeMinutes: entry.TimeMinutes,
			HourlyRate:  user.HourlyRate,
			LaborCost:   roundMoney(float64(entry.TimeMinutes) / 60 * user.HourlyRate),
		}
		if cost.Installer.ID == 0 {
			cost.Installer.ID = entry.UserID
		}
		breakdown.LaborCosts = append(breakdown.LaborCosts, cost)
		breakdown.TotalLaborCost += cost.LaborCost
	}
	breakdown.TotalLaborCost = roundMoney(breakdown.TotalLaborCost)

	breakdown.RedoMaterialCost = RedoMaterialCost(job, redos)
	breakdown.TotalMaterial = roundMoney(breakdown.FilmCost + breakdown.RedoMaterialCost)
	breakdown.TotalJobCost = roundMoney(breakdown.TotalLaborCost + breakdown.TotalMaterial)

	return breakdown
}

// RedoMaterialCost prices redo consumption at the job's effective cost per
// square foot (film cost over total sqft), not the film's current list price,
// so it reflects what the job actually spent.
func RedoMaterialCost(job Models.JobEntry, redos []Models.RedoEntry) float64 {
	if job.TotalSqft == 0 {
		return 0
	}
	costPerSqft := job.FilmCost / job.TotalSqft

	var total float64
	for _, redo := range redos {
		total += redo.Sqft * costPerSqft
	}
	return roundMoney(total)
}
