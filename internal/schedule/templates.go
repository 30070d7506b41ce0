package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/minimart-vn/backoffice/backend/internal/domain"
)

// ValidateTemplate kiểm tra một mẫu ca trước khi thêm hoặc cập nhật:
// tên không rỗng, giờ đúng định dạng HH:MM, giờ bắt đầu phải trước giờ kết thúc,
// và khung giờ [start, end) không được trùng với bất kỳ mẫu ca nào khác.
// Khi cập nhật, existing vẫn chứa chính mẫu ca đang sửa và được bỏ qua theo ID.
func ValidateTemplate(candidate *domain.ShiftTemplate, existing []*domain.ShiftTemplate) error {
	if strings.TrimSpace(candidate.Name) == "" {
		return fmt.Errorf("tên ca không được để trống")
	}

	start, err := time.Parse(domain.ClockLayout, candidate.StartTime)
	if err != nil {
		return fmt.Errorf("giờ bắt đầu của ca %q không đúng định dạng HH:MM", candidate.Name)
	}
	end, err := time.Parse(domain.ClockLayout, candidate.EndTime)
	if err != nil {
		return fmt.Errorf("giờ kết thúc của ca %q không đúng định dạng HH:MM", candidate.Name)
	}
	if !start.Before(end) {
		return fmt.Errorf("giờ bắt đầu của ca %q phải trước giờ kết thúc", candidate.Name)
	}

	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}

		otherStart, err := time.Parse(domain.ClockLayout, other.StartTime)
		if err != nil {
			return fmt.Errorf("giờ bắt đầu của ca %q không đúng định dạng HH:MM", other.Name)
		}
		otherEnd, err := time.Parse(domain.ClockLayout, other.EndTime)
		if err != nil {
			return fmt.Errorf("giờ kết thúc của ca %q không đúng định dạng HH:MM", other.Name)
		}

		if start.Before(otherEnd) && otherStart.Before(end) {
			return fmt.Errorf("khung giờ của ca %q trùng với ca %q (%s - %s)", candidate.Name, other.Name, other.StartTime, other.EndTime)
		}
	}

	return nil
}
