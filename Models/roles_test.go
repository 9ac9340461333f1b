package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedOperationsManager(t *testing.T) {
	ops := AllowedOperations(RoleManager)
	assert.Contains(t, ops, OpManageUsers)
	assert.Contains(t, ops, OpManageFilms)
	assert.Contains(t, ops, OpViewDashboard)
	assert.Contains(t, ops, OpExportReports)
}

func TestAllowedOperationsDataEntry(t *testing.T) {
	ops := AllowedOperations(RoleDataEntry)
	assert.Contains(t, ops, OpRecordJobs)
	assert.Contains(t, ops, OpManageInventory)
	assert.NotContains(t, ops, OpManageUsers)
	assert.NotContains(t, ops, OpViewDashboard)
}

func TestAllowedOperationsInstaller(t *testing.T) {
	ops := AllowedOperations(RoleInstaller)
	assert.Equal(t, []string{OpViewOwnStats}, ops)
}

func TestAllowedOperationsUnknownRole(t *testing.T) {
	assert.Nil(t, AllowedOperations("intern"))
}

func TestRoleAllows(t *testing.T) {
	assert.True(t, RoleAllows(RoleManager, OpManageFilms))
	assert.True(t, RoleAllows(RoleDataEntry, OpRecordJobs))
	assert.False(t, RoleAllows(RoleInstaller, OpRecordJobs))
	assert.False(t, RoleAllows("", OpViewOwnStats))
}
