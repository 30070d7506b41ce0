// Package schedule chứa phần lõi thuần của nghiệp vụ xếp ca: chia tháng thành
// các tuần, kiểm tra trùng giờ giữa các mẫu ca, đếm ca trong tuần và so sánh
// nhân sự đã phân với yêu cầu của ca. Các hàm trong package này không có side
// effect, handler gọi chúng trước khi chạm vào repository.
package schedule

import (
	"time"

	"github.com/minimart-vn/backoffice/backend/internal/domain"
)

// WeekOf trả về tuần (thứ Hai - Chủ Nhật) chứa ngày d
func WeekOf(d domain.Date) domain.WeekRange {
	// time.Weekday coi Chủ Nhật là 0, cần quy về số ngày tính từ thứ Hai
	offset := (int(d.Weekday()) + 6) % 7
	return domain.NewWeekRange(d.AddDays(-offset))
}

// WeeksInMonth chia một tháng thành các tuần liên tiếp bắt đầu từ thứ Hai.
// Tuần đầu và tuần cuối có thể lấn sang tháng trước / tháng sau để giữ
// các tuần luôn thẳng hàng thứ Hai.
func WeeksInMonth(month time.Month, year int) []domain.WeekRange {
	firstDay := domain.NewDate(year, month, 1)
	lastDay := domain.DateOf(firstDay.AddDate(0, 1, -1))

	weeks := make([]domain.WeekRange, 0, 6)
	week := WeekOf(firstDay)
	for !week.Start.After(lastDay.Time) {
		weeks = append(weeks, week)
		week = domain.NewWeekRange(week.Start.AddDays(7))
	}

	return weeks
}
