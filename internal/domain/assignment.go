package domain

import (
	"time"
)

type AssignmentStatus string

const (
	AssignmentScheduled AssignmentStatus = "scheduled"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentLate      AssignmentStatus = "late"
)

func (s AssignmentStatus) DisplayName() string {
	switch s {
	case AssignmentScheduled:
		return "Đã xếp lịch"
	case AssignmentCompleted:
		return "Hoàn thành"
	case AssignmentLate:
		return "Đi trễ"
	default:
		return string(s)
	}
}

func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentScheduled, AssignmentCompleted, AssignmentLate:
		return true
	default:
		return false
	}
}

// CanTransitionTo: chỉ cho phép chuyển từ scheduled sang completed hoặc late.
// completed và late là trạng thái cuối, bản ghi chỉ còn giá trị lịch sử.
func (s AssignmentStatus) CanTransitionTo(next AssignmentStatus) bool {
	return s == AssignmentScheduled && (next == AssignmentCompleted || next == AssignmentLate)
}

// Assignment là một bản ghi phân ca: một nhân viên vào một (ngày, ca).
// FullName / Role / EmploymentType được sao chép từ hồ sơ nhân viên tại thời điểm phân ca.
type Assignment struct {
	ID              int64            `json:"id"`
	StaffID         int64            `json:"staffID"`
	StaffFullName   string           `json:"staffFullName"`
	StaffRole       Role             `json:"staffRole"`
	EmploymentType  EmploymentType   `json:"employmentType"`
	WorkDate        Date             `json:"workDate"`
	ShiftTemplateID int64            `json:"shiftTemplateID"`
	Status          AssignmentStatus `json:"status"`
	Notes           string           `json:"notes"`
	CreatedAt       time.Time        `json:"createdAt"`
	Version         int32            `json:"-"`
}
