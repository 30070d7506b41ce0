package domain

import (
	"time"
)

type Role string

const (
	RoleWarehouse Role = "warehouse"
	RoleSales     Role = "sales"
	RoleCashier   Role = "cashier"
	RoleManager   Role = "manager"
)

// DisplayName trả về nhãn hiển thị tiếng Việt của vai trò.
// Trạng thái nghiệp vụ luôn là enum đóng, nhãn hiển thị chỉ dùng ở biên.
func (r Role) DisplayName() string {
	switch r {
	case RoleWarehouse:
		return "Nhân viên kho"
	case RoleSales:
		return "Nhân viên bán hàng"
	case RoleCashier:
		return "Thu ngân"
	case RoleManager:
		return "Quản lý"
	default:
		return string(r)
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleWarehouse, RoleSales, RoleCashier, RoleManager:
		return true
	default:
		return false
	}
}

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "fulltime"
	EmploymentPartTime EmploymentType = "parttime"
)

func (e EmploymentType) DisplayName() string {
	switch e {
	case EmploymentFullTime:
		return "Toàn thời gian"
	case EmploymentPartTime:
		return "Bán thời gian"
	default:
		return string(e)
	}
}

type Staff struct {
	ID             int64          `json:"id"`
	Username       string         `json:"username"`
	PasswordHash   string         `json:"-"`
	FullName       string         `json:"fullName"`
	Email          string         `json:"email"`
	Role           Role           `json:"role"`
	EmploymentType EmploymentType `json:"employmentType"`
	IsActive       bool           `json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
	Version        int32          `json:"-"`
}
