package schedule

import (
	"testing"
	"time"

	"github.com/minimart-vn/backoffice/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name      string
		day       domain.Date
		wantStart domain.Date
	}{
		{"thứ Hai giữ nguyên", domain.NewDate(2025, time.March, 3), domain.NewDate(2025, time.March, 3)},
		{"thứ Tư lùi về thứ Hai", domain.NewDate(2025, time.March, 5), domain.NewDate(2025, time.March, 3)},
		{"Chủ Nhật lùi về thứ Hai đầu tuần", domain.NewDate(2025, time.March, 9), domain.NewDate(2025, time.March, 3)},
		{"lùi sang tháng trước", domain.NewDate(2025, time.May, 1), domain.NewDate(2025, time.April, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := WeekOf(tt.day)
			assert.True(t, week.Start.Equal(tt.wantStart.Time), "start = %s", week.Start)
			assert.True(t, week.End.Equal(tt.wantStart.AddDays(6).Time), "end = %s", week.End)
			assert.True(t, week.Contains(tt.day))
		})
	}
}

func TestWeeksInMonth(t *testing.T) {
	for year := 2024; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			weeks := WeeksInMonth(month, year)
			require.NotEmpty(t, weeks)

			for i, week := range weeks {
				// mỗi tuần bắt đầu vào thứ Hai và dài đúng 7 ngày
				assert.Equal(t, time.Monday, week.Start.Weekday())
				assert.True(t, week.End.Equal(week.Start.AddDays(6).Time))

				// các tuần cách nhau đúng 7 ngày
				if i > 0 {
					assert.True(t, week.Start.Equal(weeks[i-1].Start.AddDays(7).Time))
				}
			}

			// mọi ngày trong tháng đều thuộc đúng một tuần
			lastDay := domain.DateOf(domain.NewDate(year, month, 1).AddDate(0, 1, -1))
			for d := domain.NewDate(year, month, 1); !d.After(lastDay.Time); d = d.AddDays(1) {
				covered := 0
				for _, week := range weeks {
					if week.Contains(d) {
						covered++
					}
				}
				assert.Equal(t, 1, covered, "ngày %s", d)
			}
		}
	}
}

func TestWeeksInMonthLabels(t *testing.T) {
	weeks := WeeksInMonth(time.February, 2025)
	require.NotEmpty(t, weeks)
	assert.Equal(t, "27-01-2025 - 02-02-2025", weeks[0].Label)
}
