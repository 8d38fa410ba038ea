package handler

import (
	"context"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gorilla/csrf"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/repository"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/session"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/theme"
)

// MailPublisher is the part of *amqp.Channel the handler uses.
type MailPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	translator  ut.Translator
	sessions    *session.Manager
	issuer      *session.Issuer
	themes      *theme.Preferences
	repository  *repository.Repository
	mailChannel MailPublisher
	page        *template.Template
	csrfKey     []byte

	Mux *chi.Mux
}

// NewHandler wires the HTTP layer. repo and mailCh may be nil when the
// database or the mail queue is not configured.
func NewHandler(cfg *config.Config, sessions *session.Manager, issuer *session.Issuer, themes *theme.Preferences, repo *repository.Repository, mailCh MailPublisher) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	page, err := parsePageTemplate()
	if err != nil {
		return nil, err
	}

	csrfKey, err := session.DeriveKey(cfg.Session.Secret, session.KeyPurposeCSRF)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		translator:  trans,
		sessions:    sessions,
		issuer:      issuer,
		themes:      themes,
		repository:  repo,
		mailChannel: mailCh,
		page:        page,
		csrfKey:     csrfKey,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) production() bool {
	return h.config.Environment == "production"
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/healthz", h.Healthz)

	h.Mux.Group(func(r chi.Router) {
		if h.config.Session.CSRF {
			if !h.production() {
				r.Use(h.plaintextHTTP)
			}
			r.Use(csrf.Protect(
				h.csrfKey,
				csrf.Secure(h.production()),
				csrf.Path("/"),
				csrf.ErrorHandler(http.HandlerFunc(h.csrfFailed)),
			))
		}
		r.Use(h.identify)

		r.Get("/", h.GetPage)
		r.Route("/plan", func(r chi.Router) {
			r.Post("/", h.SubmitPlan)
			r.Post("/reset", h.ResetPlan)
		})

		r.Route("/api", func(r chi.Router) {
			r.Route("/plan", func(r chi.Router) {
				r.Get("/", h.GetPlan)
				r.Post("/days/{date}/toggle", h.ToggleDay)
				r.Post("/keys", h.HandleKey)
				r.Post("/share", h.SharePlan)
			})
			r.Post("/theme", h.ToggleTheme)
		})
	})
}
