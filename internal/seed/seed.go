package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/calendar"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/utils"
)

// CSV columns; the header row is required, column order is free.
const (
	ColumnDate    = "date"
	ColumnHoliday = "holiday"
	ColumnRegionA = "region_a"
	ColumnRegionB = "region_b"
	ColumnNote    = "note"
)

var requiredColumns = []string{ColumnDate}

type Writer interface {
	UpsertCalendarDays(ctx context.Context, days []domain.CalendarDay) error
}

// ReadCSV reads a calendar dataset exported from a spreadsheet. Rows with an
// unreadable date or without any flag are skipped.
func ReadCSV(r io.Reader) ([]domain.CalendarDay, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
	}
	for _, column := range requiredColumns {
		if !slices.Contains(headers, column) {
			return nil, fmt.Errorf("missing column %q", column)
		}
	}

	days := make([]domain.CalendarDay, 0)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		record := make(map[string]string, len(headers))
		for i, value := range row {
			if i < len(headers) {
				record[headers[i]] = value
			}
		}

		date, err := domain.ParseDateKey(record[ColumnDate])
		if err != nil {
			slog.Warn("row skipped", "line", line, "error", err)
			continue
		}

		annotation := domain.DayAnnotation{
			IsHoliday: utils.ParseFormFlag(record[ColumnHoliday]),
			IsRegionA: utils.ParseFormFlag(record[ColumnRegionA]),
			IsRegionB: utils.ParseFormFlag(record[ColumnRegionB]),
			Note:      strings.TrimSpace(record[ColumnNote]),
		}
		if !annotation.IsHoliday && !annotation.IsRegionA && !annotation.IsRegionB {
			slog.Warn("row without flags skipped", "line", line, "date", date)
			continue
		}

		days = append(days, domain.CalendarDay{Date: date, Annotation: annotation})
	}

	return days, nil
}

func ReadCSVFile(path string) ([]domain.CalendarDay, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// PublicHolidays lists the days of year that the annotator marks as a
// holiday.
func PublicHolidays(annotator calendar.Annotator, year int) []domain.CalendarDay {
	days := make([]domain.CalendarDay, 0)
	first := domain.NewDateKey(year, 1, 1)
	for d := first; d.Year == year; d = d.AddDays(1) {
		if a := annotator.Annotate(d); a.IsHoliday {
			days = append(days, domain.CalendarDay{Date: d, Annotation: a})
		}
	}
	return days
}

func Import(ctx context.Context, w Writer, days []domain.CalendarDay) error {
	if len(days) == 0 {
		slog.Warn("nothing to import")
		return nil
	}

	if err := w.UpsertCalendarDays(ctx, days); err != nil {
		return fmt.Errorf("failed to import calendar days: %w", err)
	}

	slog.Info("calendar days imported", "count", len(days), "from", days[0].Date, "to", days[len(days)-1].Date)
	return nil
}
