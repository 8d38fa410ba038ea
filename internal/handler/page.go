package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/planner"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/theme"
)

//go:embed templates/planner.html
var templateFS embed.FS

const displayLayout = "02-01-2006"

func parsePageTemplate() (*template.Template, error) {
	return template.New("planner.html").ParseFS(templateFS, "templates/planner.html")
}

type pageData struct {
	CSRFField      template.HTML
	CSRFToken      string
	Theme          domain.Theme
	ThemeLabel     string
	StartValue     string
	EndValue       string
	QuotaValue     string
	Settings       planner.Settings
	Columns        int
	Cells          []planner.Cell
	Summary        summaryView
	Today          string
	EndOfYear      string
	SharingEnabled bool
}

func formValue(k domain.DateKey) string {
	if k.IsZero() {
		return ""
	}
	return k.String()
}

func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	id := subject(r.Context())

	var view planView
	h.sessions.With(id, func(p *planner.Session) {
		view = newPlanView(p)
	})

	today := domain.Today()
	selectedTheme := h.themes.Get(r.Context(), id.String())

	data := pageData{
		CSRFField:      csrf.TemplateField(r),
		CSRFToken:      csrf.Token(r),
		Theme:          selectedTheme,
		ThemeLabel:     selectedTheme.Label(),
		StartValue:     formValue(view.Settings.Start),
		EndValue:       formValue(view.Settings.End),
		QuotaValue:     view.Settings.Quota.String(),
		Settings:       view.Settings,
		Columns:        view.Columns,
		Cells:          view.Cells,
		Summary:        view.Summary,
		Today:          today.Time().Format(displayLayout),
		EndOfYear:      today.EndOfYear().Time().Format(displayLayout),
		SharingEnabled: h.mailChannel != nil,
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Accept-CH", theme.ClientHintHeader)
	w.Header().Set("Vary", theme.ClientHintHeader)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
