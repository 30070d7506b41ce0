package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkingHours(t *testing.T) {
	st := &ShiftTemplate{StartTime: "08:00", EndTime: "12:00"}
	assert.Equal(t, 4.0, st.WorkingHours())

	st = &ShiftTemplate{StartTime: "13:30", EndTime: "16:15"}
	assert.Equal(t, 2.75, st.WorkingHours())

	st = &ShiftTemplate{StartTime: "8h", EndTime: "12:00"}
	assert.Equal(t, 0.0, st.WorkingHours())
}

func TestRequiredFor(t *testing.T) {
	st := &ShiftTemplate{
		Requirements: []RoleRequirement{
			{Role: RoleWarehouse, Required: 1},
			{Role: RoleSales, Required: 2},
		},
	}

	assert.Equal(t, int32(1), st.RequiredFor(RoleWarehouse))
	assert.Equal(t, int32(2), st.RequiredFor(RoleSales))
	assert.Equal(t, int32(0), st.RequiredFor(RoleCashier))
}

func TestNewWeekRange(t *testing.T) {
	week := NewWeekRange(NewDate(2025, time.June, 2))
	assert.Equal(t, "02-06-2025", week.Start.String())
	assert.Equal(t, "08-06-2025", week.End.String())
	assert.Equal(t, "02-06-2025 - 08-06-2025", week.Label)
}
