package Analytics

import (
	"sort"

	"TintTrack/Models"
)

// Efficiency bands by average minutes per window. Classification only; the
// numeric output is never altered by the band.
const (
	EfficiencyHigh   = "high"
	EfficiencyMedium = "medium"
	EfficiencyLow    = "low"
)

// InstallerPerformance is one row of the time-performance ranking.
type InstallerPerformance struct {
	Installer        Models.InstallerRef `json:"installer"`
	TotalMinutes     int                 `json:"total_minutes"`
	TotalWindows     int                 `json:"total_windows"`
	AvgTimePerWindow float64             `json:"avg_time_per_window"`
	JobCount         int                 `json:"job_count"`
	Efficiency       string              `json:"efficiency"`
}

// ComputeTimePerformance groups time entries per installer and ranks
// ascending by average minutes per window, so the most efficient installer
// comes first. Ties keep the order installers first appeared in the input.
func ComputeTimePerformance(entries []Models.InstallerTimeEntry, users map[uint]Models.User) []InstallerPerformance {
	type accumulator struct {
		minutes int
		windows int
		jobs    map[uint]bool
	}

	totals := make(map[uint]*accumulator)
	var order []uint
	for _, entry := range entries {
		acc, exists := totals[entry.UserID]
		if !exists {
			acc = &accumulator{jobs: make(map[uint]bool)}
			totals[entry.UserID] = acc
			order = append(order, entry.UserID)
		}
		acc.minutes += entry.TimeMinutes
		acc.windows += entry.WindowsCompleted
		acc.jobs[entry.JobEntryID] = true
	}

	performances := make([]InstallerPerformance, 0, len(order))
	for _, userID := range order {
		acc := totals[userID]
		perf := InstallerPerformance{
			Installer:    users[userID].Ref(),
			TotalMinutes: acc.minutes,
			TotalWindows: acc.windows,
			JobCount:     len(acc.jobs),
		}
		if perf.Installer.ID == 0 {
			perf.Installer.ID = userID
		}
		if acc.windows > 0 {
			perf.AvgTimePerWindow = roundMoney(float64(acc.minutes) / float64(acc.windows))
		}
		perf.Efficiency = EfficiencyBand(perf.AvgTimePerWindow)
		performances = append(performances, perf)
	}

	sort.SliceStable(performances, func(i, j int) bool {
		return performances[i].AvgTimePerWindow < performances[j].AvgTimePerWindow
	})

	return performances
}

// EfficiencyBand classifies an average time per window.
func EfficiencyBand(avgTimePerWindow float64) string {
	switch {
	case avgTimePerWindow <= 20:
		return EfficiencyHigh
	case avgTimePerWindow <= 30:
		return EfficiencyMedium
	}
	return EfficiencyLow
}
