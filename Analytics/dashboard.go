package Analytics

import (
	"math"

	"TintTrack/Models"
)

// DashboardMetrics is the summary the dashboard renders for a date range.
// NoData distinguishes "nothing recorded in this range" from a range with
// activity; rate metrics fall back to neutral values instead of dividing by
// zero.
type DashboardMetrics struct {
	TotalVehicles    int     `json:"total_vehicles"`
	TotalRedos       int     `json:"total_redos"`
	TotalWindows     int     `json:"total_windows"`
	SuccessRate      int     `json:"success_rate"`
	AvgTimeVariance  float64 `json:"avg_time_variance"`
	ActiveInstallers int     `json:"active_installers"`
	NoData           bool    `json:"no_data"`
}

// ComputeDashboard reduces in-range jobs and their redo and assignment rows
// into the dashboard summary. The caller is responsible for having filtered
// all three slices to the same date range.
func ComputeDashboard(jobs []Models.JobEntry, redos []Models.RedoEntry, assignments []Models.JobInstaller) DashboardMetrics {
	metrics := DashboardMetrics{
		TotalVehicles: len(jobs),
		TotalRedos:    len(redos),
		TotalWindows:  len(jobs) * Models.WindowsPerVehicle,
	}

	if metrics.TotalWindows == 0 {
		metrics.SuccessRate = 100
		metrics.NoData = true
		return metrics
	}

	rate := float64(metrics.TotalWindows-metrics.TotalRedos) / float64(metrics.TotalWindows) * 100
	metrics.SuccessRate = int(math.Round(rate))

	if len(assignments) > 0 {
		var varianceSum int
		seen := make(map[uint]bool)
		for _, assignment := range assignments {
			varianceSum += assignment.TimeVarianceMinutes
			seen[assignment.UserID] = true
		}
		metrics.AvgTimeVariance = roundMoney(float64(varianceSum) / float64(len(assignments)))
		metrics.ActiveInstallers = len(seen)
	}

	return metrics
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
