package domain

import "fmt"

// WeekRange là một tuần từ thứ Hai đến Chủ Nhật (bao gồm hai đầu).
// Luôn được tính lại từ (tháng, năm) hoặc từ một ngày bất kỳ, không lưu trữ.
type WeekRange struct {
	Start Date   `json:"start"`
	End   Date   `json:"end"`
	Label string `json:"label"`
}

func NewWeekRange(start Date) WeekRange {
	end := start.AddDays(6)
	return WeekRange{
		Start: start,
		End:   end,
		Label: fmt.Sprintf("%s - %s", start.String(), end.String()),
	}
}

// Contains kiểm tra xem ngày d có nằm trong tuần này hay không
func (w WeekRange) Contains(d Date) bool {
	return d.InRange(w.Start, w.End)
}
