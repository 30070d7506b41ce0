package schedule

import (
	"testing"
	"time"

	"github.com/minimart-vn/backoffice/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignment(staffID int64, role domain.Role, date domain.Date, shiftID int64) *domain.Assignment {
	return &domain.Assignment{
		StaffID:         staffID,
		StaffRole:       role,
		WorkDate:        date,
		ShiftTemplateID: shiftID,
		Status:          domain.AssignmentScheduled,
	}
}

func TestEvaluate(t *testing.T) {
	morning := &domain.ShiftTemplate{
		ID:        1,
		Name:      "Ca sáng",
		StartTime: "08:00",
		EndTime:   "12:00",
		Requirements: []domain.RoleRequirement{
			{Role: domain.RoleWarehouse, Required: 2},
			{Role: domain.RoleSales, Required: 1},
		},
	}
	day := domain.NewDate(2025, time.June, 2)

	t.Run("thiếu người", func(t *testing.T) {
		ledger := []*domain.Assignment{
			assignment(1, domain.RoleWarehouse, day, 1),
		}

		counts := Evaluate(morning, day, ledger)
		require.Len(t, counts, 2)

		assert.Equal(t, domain.RoleWarehouse, counts[0].Role)
		assert.Equal(t, int32(2), counts[0].Required)
		assert.Equal(t, int32(1), counts[0].Assigned)
		assert.Equal(t, int32(1), counts[0].Shortfall)
		assert.Equal(t, int32(0), counts[0].Surplus)
	})

	t.Run("thừa người", func(t *testing.T) {
		ledger := []*domain.Assignment{
			assignment(1, domain.RoleWarehouse, day, 1),
			assignment(2, domain.RoleWarehouse, day, 1),
			assignment(3, domain.RoleWarehouse, day, 1),
		}

		counts := Evaluate(morning, day, ledger)
		assert.Equal(t, int32(0), counts[0].Shortfall)
		assert.Equal(t, int32(1), counts[0].Surplus)
	})

	t.Run("bỏ qua ngày và ca khác", func(t *testing.T) {
		ledger := []*domain.Assignment{
			assignment(1, domain.RoleWarehouse, day, 1),
			assignment(2, domain.RoleWarehouse, day.AddDays(1), 1), // ngày khác
			assignment(3, domain.RoleWarehouse, day, 2),            // ca khác
		}

		counts := Evaluate(morning, day, ledger)
		assert.Equal(t, int32(1), counts[0].Assigned)
	})

	t.Run("vai trò không có trong yêu cầu không xuất hiện", func(t *testing.T) {
		ledger := []*domain.Assignment{
			assignment(1, domain.RoleCashier, day, 1),
		}

		counts := Evaluate(morning, day, ledger)
		require.Len(t, counts, 2)
		for _, c := range counts {
			assert.NotEqual(t, domain.RoleCashier, c.Role)
		}
	})
}
