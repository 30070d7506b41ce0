package schedule

import (
	"testing"
	"time"

	"github.com/minimart-vn/backoffice/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCountForWeek(t *testing.T) {
	// tuần 02-06 đến 08-06-2025 (thứ Hai - Chủ Nhật)
	monday := domain.NewDate(2025, time.June, 2)

	ledger := []*domain.Assignment{
		assignment(1, domain.RoleSales, monday, 1),
		assignment(1, domain.RoleSales, monday.AddDays(2), 1),
		assignment(1, domain.RoleSales, monday.AddDays(6), 2),  // Chủ Nhật vẫn trong tuần
		assignment(1, domain.RoleSales, monday.AddDays(-1), 1), // Chủ Nhật tuần trước
		assignment(1, domain.RoleSales, monday.AddDays(7), 1),  // thứ Hai tuần sau
		assignment(2, domain.RoleSales, monday, 1),             // nhân viên khác
	}

	assert.Equal(t, int32(3), CountForWeek(1, monday, ledger))
	// đếm từ bất kỳ ngày nào trong tuần cũng cho cùng kết quả
	assert.Equal(t, int32(3), CountForWeek(1, monday.AddDays(4), ledger))
	assert.Equal(t, int32(1), CountForWeek(2, monday, ledger))
	assert.Equal(t, int32(0), CountForWeek(3, monday, ledger))
}

func TestExceedsWeeklyCap(t *testing.T) {
	assert.False(t, ExceedsWeeklyCap(4, 6))
	assert.False(t, ExceedsWeeklyCap(5, 6))
	assert.True(t, ExceedsWeeklyCap(6, 6))
	assert.True(t, ExceedsWeeklyCap(7, 6))
}
