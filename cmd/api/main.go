package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/calendar"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/handler"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/planner"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/repository"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/session"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/theme"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return
	}

	/**********************************************
	 * database (optional, holds the calendar dataset)
	 **********************************************/
	var repo *repository.Repository
	if cfg.Database.DSN != "" {
		dbpool, err := sql.Open("pgx", cfg.Database.DSN)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			return
		}
		defer dbpool.Close()

		dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
		defer cancel()

		// sql.Open does not connect, ping to fail early
		if err := dbpool.PingContext(ctx); err != nil {
			logger.Error("failed to connect to database", "error", err)
			return
		}

		repo = repository.NewRepository(cfg, dbpool)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Error("failed to create schema", "error", err)
			return
		}
	}

	/**********************************************
	 * calendar
	 **********************************************/
	var loadFromDatabase calendar.DatasetLoader
	if repo != nil {
		loadFromDatabase = repo.GetAllCalendarDays
	}
	annotator := calendar.Build(context.Background(), cfg, loadFromDatabase)

	/**********************************************
	 * rabbitmq (optional, plan sharing)
	 **********************************************/
	var mailCh handler.MailPublisher
	if cfg.SharingEnabled() {
		conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			return
		}
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			logger.Error("failed to open channel", "error", err)
			return
		}
		defer ch.Close()

		_, err = ch.QueueDeclare(
			cfg.RabbitMQ.Queue,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			logger.Error("failed to declare queue", "error", err)
			return
		}

		mailCh = ch
	}

	/**********************************************
	 * redis (optional, theme preferences)
	 **********************************************/
	var themeStore theme.Store = theme.NewMemoryStore()
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       0,
		})
		defer rdb.Close()

		themeStore = theme.NewRedisStore(rdb, time.Duration(cfg.Redis.OperationTimeout)*time.Second)
	}

	/**********************************************
	 * planner sessions
	 **********************************************/
	tokenKey, err := session.DeriveKey(cfg.Session.Secret, session.KeyPurposeToken)
	if err != nil {
		logger.Error("failed to derive session key", "error", err)
		return
	}
	issuer := session.NewIssuer(tokenKey, cfg.Session.CookieName, time.Duration(cfg.Session.Expiration)*time.Second, cfg.Environment == "production")

	options := planner.Options{
		EnforceYearEndBoundary: cfg.Planner.EnforceYearEndBoundary,
		MaxRangeDays:           cfg.Planner.MaxRangeDays,
		Columns:                cfg.Planner.Columns,
		WeekdaysOnly:           cfg.Planner.WeekdaysOnly,
		Labels: planner.Labels{
			RegionA: cfg.Calendar.RegionALabel,
			RegionB: cfg.Calendar.RegionBLabel,
		},
	}
	idleTimeout := time.Duration(cfg.Session.IdleTimeout) * time.Second
	sessions := session.NewManager(func() *planner.Session {
		return planner.NewSession(annotator, options)
	}, idleTimeout)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	if idleTimeout > 0 {
		go sessions.Run(janitorCtx, max(idleTimeout/4, time.Minute))
	}

	/**********************************************
	 * handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, sessions, issuer, theme.NewPreferences(themeStore), repo, mailCh)
	if err != nil {
		logger.Error("failed to create handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * HTTP server
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port, "sources", cfg.Calendar.Sources)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("shutting down server...")
	stopJanitor()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}
