package schedule

import (
	"testing"

	"github.com/minimart-vn/backoffice/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tmpl(id int64, name, start, end string) *domain.ShiftTemplate {
	return &domain.ShiftTemplate{ID: id, Name: name, StartTime: start, EndTime: end}
}

func TestValidateTemplate(t *testing.T) {
	existing := []*domain.ShiftTemplate{
		tmpl(1, "Ca sáng", "08:00", "12:00"),
		tmpl(2, "Ca chiều", "13:00", "17:00"),
	}

	t.Run("ca hợp lệ không trùng giờ", func(t *testing.T) {
		assert.NoError(t, ValidateTemplate(tmpl(0, "Ca tối", "18:00", "22:00"), existing))
	})

	t.Run("ca nối tiếp sát giờ vẫn hợp lệ", func(t *testing.T) {
		// [start, end) nên 12:00-13:00 không trùng với ca sáng kết thúc lúc 12:00
		assert.NoError(t, ValidateTemplate(tmpl(0, "Ca trưa", "12:00", "13:00"), existing))
	})

	t.Run("tên rỗng", func(t *testing.T) {
		assert.Error(t, ValidateTemplate(tmpl(0, "   ", "18:00", "22:00"), existing))
	})

	t.Run("giờ sai định dạng", func(t *testing.T) {
		assert.Error(t, ValidateTemplate(tmpl(0, "Ca lạ", "8h00", "12:00"), existing))
	})

	t.Run("giờ bắt đầu không trước giờ kết thúc", func(t *testing.T) {
		assert.Error(t, ValidateTemplate(tmpl(0, "Ca ngược", "12:00", "08:00"), existing))
		assert.Error(t, ValidateTemplate(tmpl(0, "Ca rỗng", "12:00", "12:00"), existing))
	})

	t.Run("trùng giờ với ca đã có", func(t *testing.T) {
		err := ValidateTemplate(tmpl(0, "Ca giữa", "11:00", "14:00"), existing)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "trùng")
	})

	t.Run("cập nhật bỏ qua chính mình", func(t *testing.T) {
		// sửa ca sáng thành 08:30-12:00, chỉ so với ca chiều
		assert.NoError(t, ValidateTemplate(tmpl(1, "Ca sáng", "08:30", "12:00"), existing))
	})

	t.Run("cập nhật vẫn so với ca khác", func(t *testing.T) {
		assert.Error(t, ValidateTemplate(tmpl(1, "Ca sáng", "08:00", "13:30"), existing))
	})
}

// Kịch bản đầy đủ: hai ca sáng / chiều đã cấu hình, thêm ca giữa 11:00-14:00
// phải bị từ chối vì trùng cả hai.
func TestValidateTemplateMiddayRejected(t *testing.T) {
	morning := tmpl(1, "Ca sáng", "08:00", "12:00")
	morning.Requirements = []domain.RoleRequirement{
		{Role: domain.RoleWarehouse, Required: 1},
		{Role: domain.RoleSales, Required: 2},
	}
	afternoon := tmpl(2, "Ca chiều", "13:00", "17:00")
	afternoon.Requirements = []domain.RoleRequirement{
		{Role: domain.RoleWarehouse, Required: 1},
		{Role: domain.RoleSales, Required: 1},
	}

	existing := []*domain.ShiftTemplate{morning, afternoon}

	err := ValidateTemplate(tmpl(0, "Ca giữa", "11:00", "14:00"), existing)
	require.Error(t, err)

	// trùng với từng ca khi xét riêng lẻ
	assert.Error(t, ValidateTemplate(tmpl(0, "Ca giữa", "11:00", "14:00"), existing[:1]))
	assert.Error(t, ValidateTemplate(tmpl(0, "Ca giữa", "11:00", "14:00"), existing[1:]))
}
