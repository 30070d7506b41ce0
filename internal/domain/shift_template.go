package domain

import (
	"time"
)

// ClockLayout là định dạng giờ bắt đầu / kết thúc của ca (HH:MM)
const ClockLayout = "15:04"

// RoleRequirement: số nhân viên cần có của một vai trò trong một ca
type RoleRequirement struct {
	Role     Role  `json:"role"`
	Required int32 `json:"required"`
}

type ShiftTemplate struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	StartTime    string            `json:"startTime"` // HH:MM
	EndTime      string            `json:"endTime"`   // HH:MM
	Requirements []RoleRequirement `json:"requirements"`
	DisplayOrder int32             `json:"displayOrder"`
	CreatedAt    time.Time         `json:"createdAt"`
	Version      int32             `json:"-"`
}

// WorkingHours trả về số giờ làm việc của ca (có phần lẻ).
// Nếu giờ không hợp lệ thì trả về 0, việc kiểm tra định dạng do tầng validate đảm nhiệm.
func (st *ShiftTemplate) WorkingHours() float64 {
	start, err := time.Parse(ClockLayout, st.StartTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse(ClockLayout, st.EndTime)
	if err != nil {
		return 0
	}
	return end.Sub(start).Minutes() / 60
}

// RequiredFor trả về số nhân viên cần có của một vai trò trong ca này
func (st *ShiftTemplate) RequiredFor(role Role) int32 {
	for _, req := range st.Requirements {
		if req.Role == role {
			return req.Required
		}
	}
	return 0
}
