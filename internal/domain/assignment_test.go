package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignmentStatusTransitions(t *testing.T) {
	assert.True(t, AssignmentScheduled.CanTransitionTo(AssignmentCompleted))
	assert.True(t, AssignmentScheduled.CanTransitionTo(AssignmentLate))

	// completed và late là trạng thái cuối
	assert.False(t, AssignmentCompleted.CanTransitionTo(AssignmentScheduled))
	assert.False(t, AssignmentCompleted.CanTransitionTo(AssignmentLate))
	assert.False(t, AssignmentLate.CanTransitionTo(AssignmentScheduled))
	assert.False(t, AssignmentLate.CanTransitionTo(AssignmentCompleted))

	assert.False(t, AssignmentScheduled.CanTransitionTo(AssignmentScheduled))
}

func TestAssignmentStatusValid(t *testing.T) {
	assert.True(t, AssignmentScheduled.Valid())
	assert.True(t, AssignmentCompleted.Valid())
	assert.True(t, AssignmentLate.Valid())
	assert.False(t, AssignmentStatus("cancelled").Valid())
}

func TestRoleDisplayName(t *testing.T) {
	assert.Equal(t, "Nhân viên kho", RoleWarehouse.DisplayName())
	assert.Equal(t, "Nhân viên bán hàng", RoleSales.DisplayName())
	assert.Equal(t, "Thu ngân", RoleCashier.DisplayName())
	assert.Equal(t, "Quản lý", RoleManager.DisplayName())
}
