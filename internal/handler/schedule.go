package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/minimart-vn/backoffice/backend/internal/domain"
	"github.com/minimart-vn/backoffice/backend/internal/schedule"
)

func (h *Handler) GetWeeksInMonth(w http.ResponseWriter, r *http.Request) {
	monthParam := r.URL.Query().Get("month")
	yearParam := r.URL.Query().Get("year")

	month, err := strconv.Atoi(monthParam)
	if err != nil || month < 1 || month > 12 {
		h.errorResponse(w, r, "tham số month không hợp lệ (1-12)")
		return
	}
	year, err := strconv.Atoi(yearParam)
	if err != nil || year < 1 {
		h.errorResponse(w, r, "tham số year không hợp lệ")
		return
	}

	weeks := schedule.WeeksInMonth(time.Month(month), year)

	h.successResponse(w, r, "lấy danh sách tuần thành công", weeks)
}

func (h *Handler) GetStaffing(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	templateIDParam := r.URL.Query().Get("shiftTemplateID")

	date, err := domain.ParseDate(dateParam)
	if err != nil {
		h.errorResponse(w, r, "tham số date không hợp lệ, cần định dạng dd-MM-yyyy")
		return
	}
	templateID, err := strconv.ParseInt(templateIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "tham số shiftTemplateID không hợp lệ")
		return
	}

	tmpl, err := h.repository.GetShiftTemplate(templateID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "ca làm việc không tồn tại")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	assignments, err := h.repository.GetAssignmentsInRange(date, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lấy tình trạng nhân sự thành công", schedule.Evaluate(tmpl, date, assignments))
}
