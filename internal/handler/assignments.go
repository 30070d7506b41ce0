package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/minimart-vn/backoffice/backend/internal/domain"
	"github.com/minimart-vn/backoffice/backend/internal/schedule"
)

// assignmentWarnings là dữ liệu kèm theo phản hồi yêu cầu xác nhận:
// các cảnh báo mềm mà người quản lý có thể bỏ qua bằng confirmed = true
type assignmentWarnings struct {
	RequiresConfirmation bool                   `json:"requiresConfirmation"`
	Warnings             []string               `json:"warnings"`
	WeeklyCount          int32                  `json:"weeklyCount"`
	WeeklyCap            int32                  `json:"weeklyCap"`
	Staffing             []domain.StaffingCount `json:"staffing"`
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StaffID         int64  `json:"staffID" validate:"required"`
		Date            string `json:"date" validate:"required"`
		ShiftTemplateID int64  `json:"shiftTemplateID" validate:"required"`
		Confirmed       bool   `json:"confirmed"`
		Note            string `json:"note"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	workDate, err := domain.ParseDate(req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	staff, err := h.repository.GetStaffByID(req.StaffID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "nhân viên không tồn tại")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if !staff.IsActive {
		h.errorResponse(w, r, "nhân viên đã nghỉ việc, không thể phân ca")
		return
	}

	tmpl, err := h.repository.GetShiftTemplate(req.ShiftTemplateID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "ca làm việc không tồn tại")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// kiểm tra giới hạn số ca trong tuần (thứ Hai - Chủ Nhật chứa ngày được phân)
	settings, err := h.repository.GetSettings()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	week := schedule.WeekOf(workDate)
	weekAssignments, err := h.repository.GetAssignmentsByStaff(staff.ID, week.Start, week.End)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	weeklyCount := schedule.CountForWeek(staff.ID, workDate, weekAssignments)

	// kiểm tra nhân sự của (ngày, ca) so với yêu cầu của mẫu ca
	dayAssignments, err := h.repository.GetAssignmentsInRange(workDate, workDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	staffing := schedule.Evaluate(tmpl, workDate, dayAssignments)

	warnings := make([]string, 0, 2)
	if schedule.ExceedsWeeklyCap(weeklyCount, settings.WeeklyShiftCap) {
		warnings = append(warnings, fmt.Sprintf("nhân viên %s đã có %d ca trong tuần %s (giới hạn %d ca/tuần)", staff.FullName, weeklyCount, week.Label, settings.WeeklyShiftCap))
	}
	roleRequired := false
	for _, count := range staffing {
		if count.Role != staff.Role {
			continue
		}
		roleRequired = true
		if count.Assigned >= count.Required {
			warnings = append(warnings, fmt.Sprintf("ca %s ngày %s đã đủ %s (cần %d, đã phân %d)", tmpl.Name, workDate, count.Role.DisplayName(), count.Required, count.Assigned))
		}
	}
	// vai trò không có trong yêu cầu của ca coi như cần 0 người, phân vào là thừa
	if !roleRequired {
		warnings = append(warnings, fmt.Sprintf("ca %s không yêu cầu %s, phân thêm sẽ bị thừa người", tmpl.Name, staff.Role.DisplayName()))
	}

	// cảnh báo mềm: chưa xác nhận thì dừng lại chờ người quản lý quyết định
	if len(warnings) > 0 && !req.Confirmed {
		h.confirmationResponse(w, r, "cần xác nhận trước khi phân ca", assignmentWarnings{
			RequiresConfirmation: true,
			Warnings:             warnings,
			WeeklyCount:          weeklyCount,
			WeeklyCap:            settings.WeeklyShiftCap,
			Staffing:             staffing,
		})
		return
	}

	notes := req.Note
	if len(warnings) > 0 {
		// lưu lại việc người quản lý đã bỏ qua cảnh báo, kèm lý do nếu có
		notes = strings.TrimSpace(fmt.Sprintf("[đã xác nhận vượt cảnh báo] %s", req.Note))
	}

	a := &domain.Assignment{
		StaffID:         staff.ID,
		StaffFullName:   staff.FullName,
		StaffRole:       staff.Role,
		EmploymentType:  staff.EmploymentType,
		WorkDate:        workDate,
		ShiftTemplateID: tmpl.ID,
		Status:          domain.AssignmentScheduled,
		Notes:           notes,
	}

	if err := h.repository.CreateAssignment(a); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "assignments_staff_id_work_date_shift_template_id_key":
				h.errorResponse(w, r, "nhân viên đã được phân vào ca này rồi")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// gửi mail báo lịch làm việc cho nhân viên
	mailMessage := domain.MailMessage{
		Type: "assignment_created",
		To:   staff.Email,
		Data: domain.AssignmentMailData{
			FullName:  staff.FullName,
			ShiftName: tmpl.Name,
			StartTime: tmpl.StartTime,
			EndTime:   tmpl.EndTime,
			WorkDate:  workDate.String(),
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// đọc lại sổ phân ca của ngày này để client thay toàn bộ state cũ
	dayAssignments, err = h.repository.GetAssignmentsInRange(workDate, workDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "phân ca thành công", map[string]any{
		"assignment":  a,
		"assignments": dayAssignments,
		"staffing":    schedule.Evaluate(tmpl, workDate, dayAssignments),
	})
}

func (h *Handler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	startParam := r.URL.Query().Get("start")
	endParam := r.URL.Query().Get("end")

	start, err := domain.ParseDate(startParam)
	if err != nil {
		h.errorResponse(w, r, "tham số start không hợp lệ, cần định dạng dd-MM-yyyy")
		return
	}
	end, err := domain.ParseDate(endParam)
	if err != nil {
		h.errorResponse(w, r, "tham số end không hợp lệ, cần định dạng dd-MM-yyyy")
		return
	}
	if end.Before(start.Time) {
		h.errorResponse(w, r, "ngày kết thúc không được trước ngày bắt đầu")
		return
	}

	// lọc thêm theo nhân viên nếu có staffID
	if staffIDParam := r.URL.Query().Get("staffID"); staffIDParam != "" {
		staffID, err := strconv.ParseInt(staffIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "tham số staffID không hợp lệ")
			return
		}

		assignments, err := h.repository.GetAssignmentsByStaff(staffID, start, end)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		h.successResponse(w, r, "lấy danh sách phân ca thành công", assignments)
		return
	}

	assignments, err := h.repository.GetAssignmentsInRange(start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lấy danh sách phân ca thành công", assignments)
}

func (h *Handler) UpdateAssignmentStatus(w http.ResponseWriter, r *http.Request) {
	a := r.Context().Value(AssignmentCtx).(*domain.Assignment)

	var req struct {
		Status string  `json:"status" validate:"required,oneof=completed late"`
		Notes  *string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	next := domain.AssignmentStatus(req.Status)
	if !a.Status.CanTransitionTo(next) {
		h.errorResponse(w, r, fmt.Sprintf("không thể chuyển trạng thái từ %q sang %q", a.Status.DisplayName(), next.DisplayName()))
		return
	}

	a.Status = next
	if req.Notes != nil {
		a.Notes = *req.Notes
	}

	if err := h.repository.UpdateAssignment(a); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "vui lòng thử lại")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "cập nhật trạng thái thành công", a)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	a := r.Context().Value(AssignmentCtx).(*domain.Assignment)

	if err := h.repository.DeleteAssignment(a.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "bản ghi phân ca không tồn tại")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "xoá phân ca thành công", nil)
}
