package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
)

func (r *Repository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
		CREATE TABLE IF NOT EXISTS calendar_days (
			date DATE PRIMARY KEY,
			is_holiday BOOLEAN NOT NULL DEFAULT FALSE,
			is_region_a BOOLEAN NOT NULL DEFAULT FALSE,
			is_region_b BOOLEAN NOT NULL DEFAULT FALSE,
			note TEXT NOT NULL DEFAULT ''
		)
	`

	_, err := r.dbpool.ExecContext(ctx, query)
	return err
}

func (r *Repository) GetAllCalendarDays(ctx context.Context) ([]domain.CalendarDay, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
		SELECT date, is_holiday, is_region_a, is_region_b, note
		FROM calendar_days
		ORDER BY date
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]domain.CalendarDay, 0)
	for rows.Next() {
		var (
			date time.Time
			day  domain.CalendarDay
		)

		dst := []any{
			&date,
			&day.Annotation.IsHoliday,
			&day.Annotation.IsRegionA,
			&day.Annotation.IsRegionB,
			&day.Annotation.Note,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		// DATE columns come back as UTC midnight, read the calendar date as is
		day.Date = domain.DateKeyFromTime(date)
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return days, nil
}

// UpsertCalendarDays writes all days in one transaction. Flags are ORed into
// an existing row, a non-empty note replaces the stored one.
func (r *Repository) UpsertCalendarDays(ctx context.Context, days []domain.CalendarDay) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO calendar_days (date, is_holiday, is_region_a, is_region_b, note)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date) DO UPDATE SET
			is_holiday = calendar_days.is_holiday OR EXCLUDED.is_holiday,
			is_region_a = calendar_days.is_region_a OR EXCLUDED.is_region_a,
			is_region_b = calendar_days.is_region_b OR EXCLUDED.is_region_b,
			note = COALESCE(NULLIF(EXCLUDED.note, ''), calendar_days.note)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, day := range days {
		a := day.Annotation
		if _, err := stmt.ExecContext(ctx, day.Date.String(), a.IsHoliday, a.IsRegionA, a.IsRegionB, a.Note); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) DeleteCalendarDaysBetween(ctx context.Context, from, to domain.DateKey) (int64, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `DELETE FROM calendar_days WHERE date BETWEEN $1 AND $2`

	result, err := r.dbpool.ExecContext(ctx, query, from.String(), to.String())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *Repository) CountCalendarDays(ctx context.Context) (int64, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	var n int64
	if err := r.dbpool.QueryRowContext(ctx, `SELECT COUNT(*) FROM calendar_days`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
