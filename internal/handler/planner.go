package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/planner"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/utils"
)

type summaryView struct {
	FullCount     int             `json:"fullCount"`
	HalfCount     int             `json:"halfCount"`
	UsedDays      decimal.Decimal `json:"usedDays"`
	RemainingDays decimal.Decimal `json:"remainingDays"`
	Text          string          `json:"text"`
}

func newSummaryView(s domain.Summary) summaryView {
	return summaryView{
		FullCount:     s.FullCount,
		HalfCount:     s.HalfCount,
		UsedDays:      s.UsedDays,
		RemainingDays: s.RemainingDays,
		Text:          s.Text(),
	}
}

type planView struct {
	Settings planner.Settings `json:"settings"`
	Columns  int              `json:"columns"`
	Focus    int              `json:"focus"`
	Cells    []planner.Cell   `json:"cells"`
	Summary  summaryView      `json:"summary"`
}

func newPlanView(p *planner.Session) planView {
	return planView{
		Settings: p.Settings(),
		Columns:  p.Columns(),
		Focus:    p.FocusIndex(),
		Cells:    p.Cells(),
		Summary:  newSummaryView(p.Summary()),
	}
}

type cellUpdate struct {
	Cell         planner.Cell `json:"cell"`
	Summary      summaryView  `json:"summary"`
	Announcement string       `json:"announcement"`
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	var view planView
	h.sessions.With(subject(r.Context()), func(p *planner.Session) {
		view = newPlanView(p)
	})

	h.successResponse(w, r, "plan fetched", view)
}

// SubmitPlan reads the settings form. Nothing in it is rejected: bad dates
// give an empty grid and a bad quota counts as zero.
func (h *Handler) SubmitPlan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	settings := planner.Settings{
		Start:           utils.ParseFormDate(r.PostForm.Get("start")),
		End:             utils.ParseFormDate(r.PostForm.Get("end")),
		Quota:           utils.ParseQuota(r.PostForm.Get("quota")),
		WeekdaysOnly:    utils.ParseFormFlag(r.PostForm.Get("weekdaysOnly")),
		ExcludeHolidays: utils.ParseFormFlag(r.PostForm.Get("excludeHolidays")),
	}

	var view planView
	h.sessions.With(subject(r.Context()), func(p *planner.Session) {
		p.Submit(settings)
		view = newPlanView(p)
	})

	if wantsJSON(r) {
		h.successResponse(w, r, "settings applied", view)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) ResetPlan(w http.ResponseWriter, r *http.Request) {
	var view planView
	h.sessions.With(subject(r.Context()), func(p *planner.Session) {
		p.Reset()
		view = newPlanView(p)
	})

	if wantsJSON(r) {
		h.successResponse(w, r, "selection cleared", view)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) ToggleDay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date  string `json:"-" validate:"required,datetime=2006-01-02"`
		Shift bool   `json:"shift"`
	}

	// an empty body is a plain click
	if err := h.readJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}
	req.Date = chi.URLParam(r, "date")
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := domain.ParseDateKey(req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var (
		update cellUpdate
		found  bool
	)
	h.sessions.With(subject(r.Context()), func(p *planner.Session) {
		var cell planner.Cell
		cell, found = p.Activate(date, req.Shift)
		update = cellUpdate{
			Cell:         cell,
			Summary:      newSummaryView(p.Summary()),
			Announcement: planner.Announce(date, cell.State),
		}
	})

	if !found {
		h.errorResponse(w, r, http.StatusNotFound, "date is not part of the current calendar")
		return
	}

	h.successResponse(w, r, update.Announcement, update)
}

type keyUpdate struct {
	planner.KeyResult
	Summary      *summaryView `json:"summary,omitempty"`
	Announcement string       `json:"announcement,omitempty"`
}

func (h *Handler) HandleKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index *int   `json:"index" validate:"required,min=0"`
		Key   string `json:"key" validate:"required,max=16"`
		Shift bool   `json:"shift"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	var update keyUpdate
	h.sessions.With(subject(r.Context()), func(p *planner.Session) {
		update.KeyResult = p.HandleKey(*req.Index, req.Key, req.Shift)
		if update.Activated {
			summary := newSummaryView(p.Summary())
			update.Summary = &summary
			update.Announcement = planner.Announce(update.Cell.Date, update.Cell.State)
		}
	})

	h.successResponse(w, r, "key handled", update)
}
