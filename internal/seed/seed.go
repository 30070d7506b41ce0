package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/minimart-vn/backoffice/backend/internal/config"
	"github.com/minimart-vn/backoffice/backend/internal/domain"
	"github.com/minimart-vn/backoffice/backend/internal/repository"
	"github.com/minimart-vn/backoffice/backend/internal/schedule"
	"github.com/minimart-vn/backoffice/backend/internal/utils"
)

// DefaultShiftTemplates là bộ ca mặc định của cửa hàng
var DefaultShiftTemplates = []domain.ShiftTemplate{
	{
		Name:      "Ca sáng",
		StartTime: "08:00",
		EndTime:   "12:00",
		Requirements: []domain.RoleRequirement{
			{Role: domain.RoleWarehouse, Required: 1},
			{Role: domain.RoleSales, Required: 2},
			{Role: domain.RoleCashier, Required: 1},
		},
	},
	{
		Name:      "Ca chiều",
		StartTime: "13:00",
		EndTime:   "17:00",
		Requirements: []domain.RoleRequirement{
			{Role: domain.RoleWarehouse, Required: 1},
			{Role: domain.RoleSales, Required: 1},
			{Role: domain.RoleCashier, Required: 1},
		},
	},
	{
		Name:      "Ca tối",
		StartTime: "18:00",
		EndTime:   "22:00",
		Requirements: []domain.RoleRequirement{
			{Role: domain.RoleSales, Required: 2},
			{Role: domain.RoleCashier, Required: 1},
		},
	},
}

// SeedStaffs tạo n nhân viên ngẫu nhiên dùng chung một mật khẩu từ config
func SeedStaffs(cfg *config.Config, repo *repository.Repository, n int) {
	created := 0
	for i := 0; i < n; i++ {
		staff, err := utils.GenerateRandomStaff(cfg.Seed.Staff.Password, cfg.Email.StaffDomain)
		if err != nil {
			slog.Error("không thể sinh nhân viên ngẫu nhiên", "error", err)
			continue
		}

		if err := repo.CreateStaff(staff); err != nil {
			// trùng username / email thì bỏ qua bản ghi này
			slog.Warn("không thể thêm nhân viên", "username", staff.Username, "error", err)
			continue
		}
		created++
	}

	slog.Info("đã thêm nhân viên ngẫu nhiên", "count", created)
}

// SeedShiftTemplates tạo bộ ca mặc định nếu chưa có
func SeedShiftTemplates(repo *repository.Repository) {
	existing, err := repo.GetAllShiftTemplates()
	if err != nil {
		slog.Error("không thể đọc danh sách ca", "error", err)
		return
	}

	for _, tmpl := range DefaultShiftTemplates {
		st := tmpl

		if err := schedule.ValidateTemplate(&st, existing); err != nil {
			slog.Warn("bỏ qua ca mặc định", "name", st.Name, "reason", err)
			continue
		}

		if err := repo.CreateShiftTemplate(&st); err != nil {
			slog.Error("không thể thêm ca", "name", st.Name, "error", err)
			continue
		}

		existing = append(existing, &st)
		slog.Info("đã thêm ca", "name", st.Name)
	}
}

// SeedAssignments phân ca ngẫu nhiên cho tháng hiện tại, tôn trọng ràng buộc
// không trùng (nhân viên, ngày, ca) và giới hạn số ca mỗi tuần.
func SeedAssignments(repo *repository.Repository) {
	staffs, err := repo.GetAllStaffs()
	if err != nil {
		slog.Error("không thể đọc danh sách nhân viên", "error", err)
		return
	}
	templates, err := repo.GetAllShiftTemplates()
	if err != nil {
		slog.Error("không thể đọc danh sách ca", "error", err)
		return
	}
	settings, err := repo.GetSettings()
	if err != nil {
		slog.Error("không thể đọc cấu hình", "error", err)
		return
	}
	if len(staffs) == 0 || len(templates) == 0 {
		slog.Error("cần có nhân viên và ca làm việc trước khi phân ca")
		return
	}

	now := time.Now()
	weeks := schedule.WeeksInMonth(now.Month(), now.Year())

	created := 0
	for _, week := range weeks {
		for d := week.Start; !d.After(week.End.Time); d = d.AddDays(1) {
			for _, tmpl := range templates {
				for _, req := range tmpl.Requirements {
					// phân đúng số người cần có cho từng vai trò
					for i := int32(0); i < req.Required; i++ {
						staff := staffs[rand.Intn(len(staffs))]
						if staff.Role != req.Role || !staff.IsActive {
							continue
						}

						weekAssignments, err := repo.GetAssignmentsByStaff(staff.ID, week.Start, week.End)
						if err != nil {
							slog.Error("không thể đọc phân ca trong tuần", "error", err)
							continue
						}
						count := schedule.CountForWeek(staff.ID, d, weekAssignments)
						if schedule.ExceedsWeeklyCap(count, settings.WeeklyShiftCap) {
							continue
						}

						a := &domain.Assignment{
							StaffID:         staff.ID,
							WorkDate:        d,
							ShiftTemplateID: tmpl.ID,
							Status:          domain.AssignmentScheduled,
						}
						if err := repo.CreateAssignment(a); err != nil {
							// trùng (nhân viên, ngày, ca) thì bỏ qua
							continue
						}
						created++
					}
				}
			}
		}
	}

	slog.Info("đã phân ca ngẫu nhiên cho tháng hiện tại", "count", created)
}
