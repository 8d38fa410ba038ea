package mailer

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

var ErrUnsupportedType = errors.New("unsupported mail type")

type kind struct {
	template string
	subject  string
	data     func() any
}

var kinds = map[string]kind{
	domain.MailTypePlanSummary: {
		template: "plan_summary_email.html",
		subject:  "Leave planner - your plan",
		data:     func() any { return &domain.PlanSummaryMailData{} },
	},
}

// Composer turns queued messages into mails. Templates are parsed once.
type Composer struct {
	from      string
	templates map[string]*template.Template
}

func NewComposer(from, templateDir string) (*Composer, error) {
	c := &Composer{from: from, templates: make(map[string]*template.Template, len(kinds))}
	for mailType, k := range kinds {
		tmpl, err := template.ParseFiles(filepath.Join(templateDir, k.template))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", mailType, err)
		}
		c.templates[mailType] = tmpl
	}
	return c, nil
}

// Compose decodes a queue body and builds the mail for it.
func (c *Composer) Compose(body []byte) (*mail.Msg, error) {
	var message struct {
		Type string          `json:"type"`
		To   string          `json:"to"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &message); err != nil {
		return nil, fmt.Errorf("failed to decode mail message: %w", err)
	}

	k, ok := kinds[message.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, message.Type)
	}

	data := k.data()
	if err := json.Unmarshal(message.Data, data); err != nil {
		return nil, fmt.Errorf("failed to decode %s data: %w", message.Type, err)
	}

	m := mail.NewMsg()
	if err := m.From(c.from); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := m.To(message.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	m.Subject(k.subject)
	if err := m.SetBodyHTMLTemplate(c.templates[message.Type], data); err != nil {
		return nil, fmt.Errorf("failed to render body: %w", err)
	}

	return m, nil
}
