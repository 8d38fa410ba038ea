package planner

import (
	"log/slog"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/calendar"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
)

// Settings is one submission of the settings form.
type Settings struct {
	Start           domain.DateKey  `json:"start"`
	End             domain.DateKey  `json:"end"`
	Quota           decimal.Decimal `json:"quota"`
	WeekdaysOnly    bool            `json:"weekdaysOnly"`
	ExcludeHolidays bool            `json:"excludeHolidays"`
}

type Options struct {
	// EnforceYearEndBoundary pins the end of every range to 31 December of
	// the start year.
	EnforceYearEndBoundary bool
	// MaxRangeDays caps the number of calendar days in a range; 0 disables
	// the cap.
	MaxRangeDays int
	Columns      int
	WeekdaysOnly bool
	Labels       Labels
	// Now defaults to time.Now.
	Now func() time.Time
}

// Session is one user's planner: settings, selections and the rendered grid.
// It is not safe for concurrent use.
type Session struct {
	annotator calendar.Annotator
	options   Options

	store    *SelectionStore
	view     *CalendarView
	settings Settings
}

// NewSession starts with the range from today until the end of the year and
// a zero quota.
func NewSession(annotator calendar.Annotator, opts Options) *Session {
	if annotator == nil {
		annotator = calendar.StubAnnotator{}
	}
	if opts.Columns <= 0 {
		opts.Columns = DefaultColumns
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	store := NewSelectionStore()
	s := &Session{
		annotator: annotator,
		options:   opts,
		store:     store,
		view:      NewCalendarView(annotator, store, opts.Labels),
	}

	s.Submit(s.DefaultSettings())
	return s
}

func (s *Session) today() domain.DateKey {
	return domain.DateKeyFromTime(s.options.Now())
}

func (s *Session) DefaultSettings() Settings {
	today := s.today()
	return Settings{
		Start:        today,
		End:          today.EndOfYear(),
		Quota:        decimal.Zero,
		WeekdaysOnly: s.options.WeekdaysOnly,
	}
}

// Submit applies new settings and rebuilds the grid. Selections survive.
// The applied settings are returned, after the year-end and range-length
// rules have been enforced.
func (s *Session) Submit(settings Settings) Settings {
	settings.Quota = domain.NormalizeQuota(settings.Quota)

	if s.options.EnforceYearEndBoundary && !settings.Start.IsZero() {
		settings.End = settings.Start.EndOfYear()
	}

	if limit := s.options.MaxRangeDays; limit > 0 && !settings.Start.IsZero() && !settings.End.IsZero() {
		if last := settings.Start.AddDays(limit - 1); settings.End.After(last) {
			slog.Warn("date range truncated", "start", settings.Start, "end", settings.End, "maxDays", limit)
			settings.End = last
		}
	}

	s.settings = settings

	days := Enumerate(settings.Start, settings.End, settings.WeekdaysOnly)
	if settings.ExcludeHolidays {
		days = slices.DeleteFunc(days, func(d domain.DateKey) bool {
			return s.annotator.Annotate(d).IsHoliday
		})
	}
	s.view.Rebuild(days, s.today())

	return s.settings
}

func (s *Session) Settings() Settings {
	return s.settings
}

// Activate toggles the cell for key. Dates outside the grid are ignored.
func (s *Session) Activate(key domain.DateKey, shift bool) (Cell, bool) {
	index, ok := s.view.IndexOf(key)
	if !ok {
		return Cell{}, false
	}
	s.view.Focus(index)
	return s.view.Activate(index, shift)
}

type KeyResult struct {
	Focus     int   `json:"focus"`
	Activated bool  `json:"activated"`
	Cell      *Cell `json:"cell,omitempty"`
}

// HandleKey processes a key press on the cell at index. Enter and Space
// toggle it, navigation keys move focus, anything else is ignored.
func (s *Session) HandleKey(index int, key string, shift bool) KeyResult {
	if s.view.Len() == 0 {
		return KeyResult{}
	}

	switch {
	case IsActivationKey(key):
		cell, ok := s.view.Activate(index, shift)
		if !ok {
			return KeyResult{Focus: s.view.FocusIndex()}
		}
		s.view.Focus(index)
		return KeyResult{Focus: s.view.FocusIndex(), Activated: true, Cell: &cell}
	case IsNavigationKey(key):
		next := Move(index, key, s.view.Len(), s.options.Columns)
		return KeyResult{Focus: s.view.Focus(next)}
	default:
		return KeyResult{Focus: s.view.FocusIndex()}
	}
}

// Reset drops every selection and re-derives the grid.
func (s *Session) Reset() {
	s.store.Clear()
	s.view.Refresh()
}

func (s *Session) Summary() domain.Summary {
	return Summarize(s.store.Snapshot(), s.settings.Quota)
}

func (s *Session) Cells() []Cell {
	return s.view.Cells()
}

func (s *Session) Columns() int {
	return s.options.Columns
}

func (s *Session) FocusIndex() int {
	return s.view.FocusIndex()
}

// Selected lists the days holding state in date order.
func (s *Session) Selected(state domain.SelectionState) []domain.DateKey {
	days := make([]domain.DateKey, 0)
	for day, st := range s.store.Snapshot() {
		if st == state {
			days = append(days, day)
		}
	}
	slices.SortFunc(days, domain.DateKey.Compare)
	return days
}
