package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/calendar"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/repository"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var file string
	var year int

	flag.IntVar(&op, "op", 0, "operation (1: import CSV file, 2: import Belgian public holidays, 3: import calendar dataset file)")
	flag.StringVar(&file, "file", "", "file to import for op 1 and 3")
	flag.IntVar(&year, "year", time.Now().Year(), "year for op 2")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.Database.DSN == "" {
		logger.Error("DATABASE_DSN is required")
		os.Exit(1)
	}

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

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("failed to create schema", "error", err)
		return
	}

	var days []domain.CalendarDay
	switch op {
	case 0:
		slog.Error("no operation given")
		return
	case 1:
		if file == "" {
			slog.Error("-file is required")
			return
		}
		days, err = seed.ReadCSVFile(file)
	case 2:
		days = seed.PublicHolidays(calendar.NewHolidayAnnotator(), year)
	case 3:
		if file == "" {
			slog.Error("-file is required")
			return
		}
		days, err = calendar.LoadDatasetFile(file)
	default:
		slog.Error("unknown operation", slog.Int("op", op))
		return
	}
	if err != nil {
		slog.Error("failed to read calendar days", slog.String("error", err.Error()))
		return
	}

	if err := seed.Import(context.Background(), repo, days); err != nil {
		slog.Error("import failed", slog.String("error", err.Error()))
	}
}
