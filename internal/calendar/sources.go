package calendar

import (
	"context"
	"log/slog"

	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
)

// DatasetLoader fetches a dataset from an external store such as the database.
type DatasetLoader func(ctx context.Context) ([]domain.CalendarDay, error)

// Build assembles the annotator for the configured sources. A source that
// fails to load is logged and left out; with nothing left the stub is used.
func Build(ctx context.Context, cfg *config.Config, database DatasetLoader) Annotator {
	annotators := make([]Annotator, 0, len(cfg.Calendar.Sources))

	for _, source := range cfg.Calendar.Sources {
		switch source {
		case config.SourceStub:
			annotators = append(annotators, StubAnnotator{})
		case config.SourceBelgium:
			annotators = append(annotators, NewHolidayAnnotator())
		case config.SourceFile:
			days, err := LoadDatasetFile(cfg.Calendar.File)
			if err != nil {
				slog.Warn("calendar file source skipped", "error", err)
				continue
			}
			annotators = append(annotators, NewDatasetAnnotator(days))
		case config.SourceDatabase:
			if database == nil {
				slog.Warn("calendar database source skipped", "error", "no database configured")
				continue
			}
			days, err := database(ctx)
			if err != nil {
				slog.Warn("calendar database source skipped", "error", err)
				continue
			}
			slog.Info("calendar dataset loaded from database", "days", len(days))
			annotators = append(annotators, NewDatasetAnnotator(days))
		}
	}

	switch len(annotators) {
	case 0:
		return StubAnnotator{}
	case 1:
		return annotators[0]
	default:
		return NewCompositeAnnotator(annotators...)
	}
}
