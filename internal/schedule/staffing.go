package schedule

import (
	"github.com/minimart-vn/backoffice/backend/internal/domain"
)

// Evaluate so sánh nhân sự đã phân với yêu cầu của mẫu ca cho một ngày.
// assignments có thể chứa bản ghi của ngày / ca khác, hàm sẽ tự lọc.
// Kết quả giữ nguyên thứ tự vai trò khai báo trong mẫu ca.
func Evaluate(tmpl *domain.ShiftTemplate, date domain.Date, assignments []*domain.Assignment) []domain.StaffingCount {
	assignedByRole := make(map[domain.Role]int32)
	for _, a := range assignments {
		if a.ShiftTemplateID != tmpl.ID || !a.WorkDate.Equal(date.Time) {
			continue
		}
		assignedByRole[a.StaffRole]++
	}

	counts := make([]domain.StaffingCount, 0, len(tmpl.Requirements))
	for _, req := range tmpl.Requirements {
		assigned := assignedByRole[req.Role]
		counts = append(counts, domain.StaffingCount{
			Role:      req.Role,
			Required:  req.Required,
			Assigned:  assigned,
			Shortfall: max(0, req.Required-assigned),
			Surplus:   max(0, assigned-req.Required),
		})
	}

	return counts
}
