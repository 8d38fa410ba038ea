package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/planner"
)

func dateStrings(days []domain.DateKey) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.String())
	}
	return out
}

func planSummaryMailData(p *planner.Session) domain.PlanSummaryMailData {
	settings := p.Settings()
	summary := p.Summary()

	return domain.PlanSummaryMailData{
		Start:         settings.Start.String(),
		End:           settings.End.String(),
		Quota:         settings.Quota.String(),
		Summary:       summary.Text(),
		RemainingDays: summary.RemainingDays.String(),
		FullDays:      dateStrings(p.Selected(domain.SelectionFull)),
		HalfDays:      dateStrings(p.Selected(domain.SelectionHalf)),
	}
}

// SharePlan queues an email with the current selection for the mail worker.
func (h *Handler) SharePlan(w http.ResponseWriter, r *http.Request) {
	if h.mailChannel == nil {
		h.errorResponse(w, r, http.StatusServiceUnavailable, "sharing by email is not enabled")
		return
	}

	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	var data domain.PlanSummaryMailData
	h.sessions.With(subject(r.Context()), func(p *planner.Session) {
		data = planSummaryMailData(p)
	})

	if len(data.FullDays)+len(data.HalfDays) == 0 {
		h.errorResponse(w, r, http.StatusUnprocessableEntity, "select at least one day before sharing")
		return
	}

	mailMessage := domain.MailMessage{
		Type: domain.MailTypePlanSummary,
		To:   req.Email,
		Data: data,
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
		h.config.RabbitMQ.Queue,
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

	h.successResponse(w, r, "the plan summary will be sent by email", nil)
}
