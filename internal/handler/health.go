package handler

import "net/http"

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"sessions": h.sessions.Len(),
	}

	if h.repository != nil {
		n, err := h.repository.CountCalendarDays(r.Context())
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		data["calendarDays"] = n
	}

	h.successResponse(w, r, "ok", data)
}
