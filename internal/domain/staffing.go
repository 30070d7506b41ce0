package domain

// StaffingCount là ảnh chụp nhân sự của một (ngày, ca) cho một vai trò:
// số người cần có theo mẫu ca so với số người đã được phân.
// Luôn được tính lại từ sổ phân ca, không lưu trữ.
type StaffingCount struct {
	Role      Role  `json:"role"`
	Required  int32 `json:"required"`
	Assigned  int32 `json:"assigned"`
	Shortfall int32 `json:"shortfall"` // thiếu
	Surplus   int32 `json:"surplus"`   // thừa
}
