package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/theme"
)

type themeView struct {
	Theme domain.Theme `json:"theme"`
	Label string       `json:"label"`
}

func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SystemDark *bool `json:"systemDark"`
	}

	if err := h.readJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}

	// the page reports matchMedia, the client hint covers scripted clients
	systemDark := theme.SystemDark(r)
	if req.SystemDark != nil {
		systemDark = *req.SystemDark
	}

	next := h.themes.Toggle(r.Context(), subject(r.Context()).String(), systemDark)
	h.successResponse(w, r, next.Label(), themeView{Theme: next, Label: next.Label()})
}
