package calendar

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
)

const (
	flagHoliday = "holiday"
	flagRegionA = "region-a"
	flagRegionB = "region-b"
)

// DatasetAnnotator answers from a fixed dataset keyed by date. Dates outside
// the dataset are plain workdays.
type DatasetAnnotator struct {
	days map[domain.DateKey]domain.DayAnnotation
}

func NewDatasetAnnotator(days []domain.CalendarDay) *DatasetAnnotator {
	d := &DatasetAnnotator{days: make(map[domain.DateKey]domain.DayAnnotation, len(days))}
	for _, day := range days {
		d.days[day.Date] = d.days[day.Date].Merge(day.Annotation)
	}
	return d
}

func (d *DatasetAnnotator) Annotate(date domain.DateKey) domain.DayAnnotation {
	return d.days[date]
}

func (d *DatasetAnnotator) Len() int {
	return len(d.days)
}

// LoadDatasetFile reads a dataset file, see ParseDataset for the format.
func LoadDatasetFile(path string) ([]domain.CalendarDay, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open calendar dataset: %w", err)
	}
	defer file.Close()

	days, err := ParseDataset(file)
	if err != nil {
		return nil, err
	}

	slog.Info("calendar dataset loaded", "file", path, "days", len(days))
	return days, nil
}

// ParseDataset reads one day per line:
//
//	YYYY-MM-DD flag[,flag...] [note]
//
// Fields are separated by any run of spaces or tabs. Flags are holiday, region-a and region-b. Blank lines and lines starting
// with # are ignored; malformed lines are skipped with a warning.
func ParseDataset(r io.Reader) ([]domain.CalendarDay, error) {
	scanner := bufio.NewScanner(r)
	days := make([]domain.CalendarDay, 0)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		dateField, rest := cutField(line)
		flagsField, note := cutField(rest)
		if flagsField == "" {
			slog.Warn("invalid calendar line", "line", lineNo, "content", line)
			continue
		}

		date, err := domain.ParseDateKey(dateField)
		if err != nil {
			slog.Warn("invalid calendar date", "line", lineNo, "error", err)
			continue
		}

		annotation, err := parseFlags(flagsField)
		if err != nil {
			slog.Warn("invalid calendar flags", "line", lineNo, "error", err)
			continue
		}
		annotation.Note = note

		days = append(days, domain.CalendarDay{Date: date, Annotation: annotation})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading calendar dataset: %w", err)
	}

	return days, nil
}

// cutField splits s at the first run of whitespace. The remainder keeps its
// inner spacing.
func cutField(s string) (field, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func parseFlags(s string) (domain.DayAnnotation, error) {
	var a domain.DayAnnotation
	for _, flag := range strings.Split(s, ",") {
		switch strings.TrimSpace(flag) {
		case flagHoliday:
			a.IsHoliday = true
		case flagRegionA:
			a.IsRegionA = true
		case flagRegionB:
			a.IsRegionB = true
		default:
			return domain.DayAnnotation{}, fmt.Errorf("unknown flag %q", flag)
		}
	}
	return a, nil
}
