package schedule

import (
	"github.com/minimart-vn/backoffice/backend/internal/domain"
)

// CountForWeek đếm số ca của một nhân viên trong tuần (thứ Hai - Chủ Nhật)
// chứa ngày day. Bản ghi của nhân viên khác hoặc ngoài tuần đều bị bỏ qua.
func CountForWeek(staffID int64, day domain.Date, assignments []*domain.Assignment) int32 {
	week := WeekOf(day)

	var count int32
	for _, a := range assignments {
		if a.StaffID == staffID && week.Contains(a.WorkDate) {
			count++
		}
	}

	return count
}

// ExceedsWeeklyCap cho biết việc thêm một ca nữa có vượt giới hạn tuần hay không.
// Giới hạn là cảnh báo mềm: người gọi phải yêu cầu xác nhận thay vì từ chối.
func ExceedsWeeklyCap(currentCount, cap int32) bool {
	return currentCount+1 > cap
}
