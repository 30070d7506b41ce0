package domain

// Settings là cấu hình chung của cửa hàng, chỉ có một bản ghi duy nhất.
type Settings struct {
	// Số ca tối đa một nhân viên được phân trong một tuần (thứ Hai - Chủ Nhật).
	// Vượt giới hạn chỉ là cảnh báo mềm, người quản lý có thể xác nhận để bỏ qua.
	WeeklyShiftCap int32 `json:"weeklyShiftCap"`
	Version        int32 `json:"-"`
}
