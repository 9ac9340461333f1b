package Models

// Operation names gate what each role may do. The set for a role is computed
// once at login and returned to the client; handlers enforce the same mapping
// through the auth middleware instead of scattered role checks.
const (
	OpManageUsers     = "manage_users"
	OpManageFilms     = "manage_films"
	OpManageInventory = "manage_inventory"
	OpRecordJobs      = "record_jobs"
	OpViewDashboard   = "view_dashboard"
	OpViewOwnStats    = "view_own_stats"
	OpExportReports   = "export_reports"
)

// AllowedOperations maps a role to its operation set. Unknown roles get
// nothing.
func AllowedOperations(role string) []string {
	switch role {
	case RoleManager:
		return []string{
			OpManageUsers,
			OpManageFilms,
			OpManageInventory,
			OpRecordJobs,
			OpViewDashboard,
			OpViewOwnStats,
			OpExportReports,
		}
	case RoleDataEntry:
		return []string{
			OpRecordJobs,
			OpManageInventory,
			OpViewOwnStats,
		}
	case RoleInstaller:
		return []string{
			OpViewOwnStats,
		}
	}
	return nil
}

// RoleAllows reports whether the role's operation set contains op.
func RoleAllows(role, op string) bool {
	for _, allowed := range AllowedOperations(role) {
		if allowed == op {
			return true
		}
	}
	return false
}
