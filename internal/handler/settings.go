package handler

import (
	"net/http"
)

func (h *Handler) GetWeeklyCap(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repository.GetSettings()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lấy giới hạn ca mỗi tuần thành công", settings)
}

func (h *Handler) UpdateWeeklyCap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WeeklyShiftCap int32 `json:"weeklyShiftCap" validate:"required,gte=1,lte=21"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	settings, err := h.repository.GetSettings()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	settings.WeeklyShiftCap = req.WeeklyShiftCap

	if err := h.repository.UpdateSettings(settings); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "cập nhật giới hạn ca mỗi tuần thành công", settings)
}
