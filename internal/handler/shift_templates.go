package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/minimart-vn/backoffice/backend/internal/domain"
	"github.com/minimart-vn/backoffice/backend/internal/schedule"
)

func (h *Handler) GetAllShiftTemplates(w http.ResponseWriter, r *http.Request) {
	sts, err := h.repository.GetAllShiftTemplates()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lấy danh sách ca làm việc thành công", sts)
}

type shiftTemplateRequirement struct {
	Role     string `json:"role" validate:"required,oneof=warehouse sales cashier manager"`
	Required int32  `json:"required" validate:"required,gte=1"`
}

func requirementsFromRequest(reqs []shiftTemplateRequirement) []domain.RoleRequirement {
	requirements := make([]domain.RoleRequirement, 0, len(reqs))
	for _, req := range reqs {
		requirements = append(requirements, domain.RoleRequirement{
			Role:     domain.Role(req.Role),
			Required: req.Required,
		})
	}
	return requirements
}

func (h *Handler) CreateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string                     `json:"name" validate:"required"`
		StartTime    string                     `json:"startTime" validate:"required"`
		EndTime      string                     `json:"endTime" validate:"required"`
		Requirements []shiftTemplateRequirement `json:"requirements" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	st := &domain.ShiftTemplate{
		Name:         req.Name,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Requirements: requirementsFromRequest(req.Requirements),
	}

	// kiểm tra giờ hợp lệ và không trùng khung giờ với các ca đã có
	existing, err := h.repository.GetAllShiftTemplates()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := schedule.ValidateTemplate(st, existing); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateShiftTemplate(st); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shift_templates_name_key":
				h.errorResponse(w, r, "tên ca đã tồn tại")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "tạo ca làm việc thành công", st)
}

func (h *Handler) GetShiftTemplate(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	h.successResponse(w, r, "lấy ca làm việc thành công", st)
}

func (h *Handler) UpdateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	var req struct {
		Name         *string                    `json:"name"`
		StartTime    *string                    `json:"startTime"`
		EndTime      *string                    `json:"endTime"`
		Requirements []shiftTemplateRequirement `json:"requirements" validate:"omitempty,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.StartTime != nil {
		st.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		st.EndTime = *req.EndTime
	}
	if req.Requirements != nil {
		st.Requirements = requirementsFromRequest(req.Requirements)
	}

	// ca đang sửa được bỏ qua trong kiểm tra trùng giờ theo ID
	existing, err := h.repository.GetAllShiftTemplates()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := schedule.ValidateTemplate(st, existing); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateShiftTemplate(st); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shift_templates_name_key":
				h.errorResponse(w, r, "tên ca đã tồn tại")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "vui lòng thử lại")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "cập nhật ca làm việc thành công", st)
}

func (h *Handler) DeleteShiftTemplate(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	// cửa hàng phải còn ít nhất một ca làm việc
	count, err := h.repository.CountShiftTemplates()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if count <= 1 {
		h.errorResponse(w, r, "phải giữ lại ít nhất một ca làm việc")
		return
	}

	if err := h.repository.DeleteShiftTemplate(st.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "assignments_shift_template_id_fkey":
				h.errorResponse(w, r, "ca làm việc đã có nhân viên được phân, không thể xoá")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "ca làm việc không tồn tại")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "xoá ca làm việc thành công", nil)
}

func (h *Handler) ReorderShiftTemplate(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	var req struct {
		Direction string `json:"direction" validate:"required,oneof=up down"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	var offset int32 = 1
	if req.Direction == "up" {
		offset = -1
	}

	if err := h.repository.SwapShiftTemplateOrder(st.ID, offset); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// trả lại danh sách mới sau khi đổi thứ tự
	sts, err := h.repository.GetAllShiftTemplates()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "đổi thứ tự ca làm việc thành công", sts)
}
