package planner

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
)

func day(s string) domain.DateKey {
	k, err := domain.ParseDateKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

func TestEnumerate(t *testing.T) {
	tests := []struct {
		name         string
		start, end   string
		weekdaysOnly bool
		want         []string
	}{
		{
			name:         "working week",
			start:        "2025-06-02",
			end:          "2025-06-06",
			weekdaysOnly: true,
			want:         []string{"2025-06-02", "2025-06-03", "2025-06-04", "2025-06-05", "2025-06-06"},
		},
		{
			name:         "weekend skipped",
			start:        "2025-06-06",
			end:          "2025-06-09",
			weekdaysOnly: true,
			want:         []string{"2025-06-06", "2025-06-09"},
		},
		{
			name:  "weekend kept",
			start: "2025-06-06",
			end:   "2025-06-09",
			want:  []string{"2025-06-06", "2025-06-07", "2025-06-08", "2025-06-09"},
		},
		{
			name:         "single weekday",
			start:        "2025-06-04",
			end:          "2025-06-04",
			weekdaysOnly: true,
			want:         []string{"2025-06-04"},
		},
		{
			name:         "single saturday filtered",
			start:        "2025-06-07",
			end:          "2025-06-07",
			weekdaysOnly: true,
			want:         []string{},
		},
		{
			name:  "inverted range",
			start: "2025-06-06",
			end:   "2025-06-02",
			want:  []string{},
		},
		{
			name:  "across new year",
			start: "2025-12-31",
			end:   "2026-01-01",
			want:  []string{"2025-12-31", "2026-01-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Enumerate(day(tt.start), day(tt.end), tt.weekdaysOnly)
			strs := make([]string, 0, len(got))
			for _, d := range got {
				strs = append(strs, d.String())
			}
			assert.Equal(t, tt.want, strs)
		})
	}
}

func TestEnumerateZeroDates(t *testing.T) {
	assert.Empty(t, Enumerate(domain.DateKey{}, day("2025-06-06"), true))
	assert.Empty(t, Enumerate(day("2025-06-02"), domain.DateKey{}, true))
}

func TestEnumerateCountsWeekdays(t *testing.T) {
	start := day("2025-01-01")
	for length := 0; length < 60; length++ {
		end := start.AddDays(length)

		want := 0
		for d := start; !d.After(end); d = d.AddDays(1) {
			if !d.IsWeekend() {
				want++
			}
		}

		got := Enumerate(start, end, true)
		require.Len(t, got, want, "range of %d days", length+1)
		for _, d := range got {
			assert.False(t, d.IsWeekend())
		}
	}
}

func TestSelectionStoreToggle(t *testing.T) {
	k := day("2025-06-02")

	t.Run("double activation clears", func(t *testing.T) {
		for _, kind := range []domain.SelectionState{domain.SelectionFull, domain.SelectionHalf} {
			s := NewSelectionStore()
			assert.Equal(t, kind, s.Toggle(k, kind))
			assert.Equal(t, domain.SelectionNone, s.Toggle(k, kind))
			assert.Equal(t, domain.SelectionNone, s.Get(k))
			assert.Equal(t, 0, s.Len())
		}
	})

	t.Run("switching kind replaces", func(t *testing.T) {
		s := NewSelectionStore()
		s.Toggle(k, domain.SelectionFull)
		assert.Equal(t, domain.SelectionHalf, s.Toggle(k, domain.SelectionHalf))
		assert.Equal(t, domain.SelectionHalf, s.Get(k))
	})

	t.Run("none request is a no-op", func(t *testing.T) {
		s := NewSelectionStore()
		s.Set(k, domain.SelectionFull)
		assert.Equal(t, domain.SelectionFull, s.Toggle(k, domain.SelectionNone))
	})
}

func TestSelectionStoreSetClearSnapshot(t *testing.T) {
	s := NewSelectionStore()
	a, b := day("2025-06-02"), day("2025-06-03")

	assert.Equal(t, domain.SelectionNone, s.Get(a))

	s.Set(a, domain.SelectionFull)
	s.Set(b, domain.SelectionHalf)
	s.Set(b, domain.SelectionNone)
	assert.Equal(t, 1, s.Len())

	snap := s.Snapshot()
	snap[b] = domain.SelectionFull
	assert.Equal(t, domain.SelectionNone, s.Get(b), "snapshot must not alias the store")

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, domain.SelectionNone, s.Get(a))
}

func TestSummarize(t *testing.T) {
	s := NewSelectionStore()
	s.Toggle(day("2025-06-02"), domain.SelectionFull)
	s.Toggle(day("2025-06-03"), domain.SelectionHalf)

	quota := decimal.NewFromInt(10)
	got := Summarize(s.Snapshot(), quota)

	assert.Equal(t, 1, got.FullCount)
	assert.Equal(t, 1, got.HalfCount)
	assert.True(t, got.UsedDays.Equal(decimal.RequireFromString("1.5")), got.UsedDays.String())
	assert.True(t, got.RemainingDays.Equal(decimal.RequireFromString("8.5")), got.RemainingDays.String())
	assert.Equal(t, "Selected: 1 full day(s), 1 half day(s) — total 1.5 day(s).", got.Text())

	again := Summarize(s.Snapshot(), quota)
	assert.Equal(t, got.Text(), again.Text())
	assert.True(t, got.RemainingDays.Equal(again.RemainingDays))
}

func TestSummarizeNeverNegative(t *testing.T) {
	s := NewSelectionStore()
	start := day("2025-06-02")
	for i := 0; i < 5; i++ {
		s.Toggle(start.AddDays(i), domain.SelectionFull)
	}

	for _, q := range []string{"0", "2", "4.5", "5", "-3"} {
		got := Summarize(s.Snapshot(), decimal.RequireFromString(q))
		assert.False(t, got.RemainingDays.IsNegative(), "quota %s", q)
	}

	assert.True(t, Summarize(s.Snapshot(), decimal.NewFromInt(7)).RemainingDays.Equal(decimal.NewFromInt(2)))
	assert.True(t, Summarize(nil, decimal.Zero).UsedDays.IsZero())
}

func TestMove(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		key     string
		total   int
		columns int
		want    int
	}{
		{"home goes to row start", 3, KeyHome, 20, 7, 0},
		{"home on second row", 9, KeyHome, 20, 7, 7},
		{"left clamps at zero", 0, KeyArrowLeft, 20, 7, 0},
		{"left", 5, KeyArrowLeft, 20, 7, 4},
		{"right", 5, KeyArrowRight, 20, 7, 6},
		{"right clamps at last", 19, KeyArrowRight, 20, 7, 19},
		{"right does not wrap rows", 6, KeyArrowRight, 20, 7, 7},
		{"up", 9, KeyArrowUp, 20, 7, 2},
		{"up clamps", 3, KeyArrowUp, 20, 7, 0},
		{"down", 2, KeyArrowDown, 20, 7, 9},
		{"down clamps", 15, KeyArrowDown, 20, 7, 19},
		{"end of row", 8, KeyEnd, 20, 7, 13},
		{"end of short last row", 15, KeyEnd, 20, 7, 19},
		{"page down", 0, KeyPageDown, 40, 7, 28},
		{"page down clamps", 10, KeyPageDown, 20, 7, 19},
		{"page up", 30, KeyPageUp, 40, 7, 2},
		{"page up clamps", 10, KeyPageUp, 20, 7, 0},
		{"unknown key", 4, "Tab", 20, 7, 4},
		{"empty grid", 0, KeyArrowRight, 0, 7, 0},
		{"default columns", 10, KeyArrowUp, 20, 0, 3},
		{"index out of range is clamped first", 25, KeyArrowLeft, 20, 7, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Move(tt.index, tt.key, tt.total, tt.columns))
		})
	}
}

func TestDeriveVisual(t *testing.T) {
	holiday := domain.DayAnnotation{IsHoliday: true}
	overlap := domain.DayAnnotation{IsRegionA: true, IsRegionB: true}

	tests := []struct {
		name       string
		state      domain.SelectionState
		annotation domain.DayAnnotation
		kind       VisualKind
		classes    []string
		pressed    bool
	}{
		{"plain", domain.SelectionNone, domain.DayAnnotation{}, VisualPlain, []string{"day", "day--workday"}, false},
		{"full", domain.SelectionFull, domain.DayAnnotation{}, VisualFull, []string{"day", "day--workday", "day--full"}, true},
		{"half", domain.SelectionHalf, domain.DayAnnotation{}, VisualHalf, []string{"day", "day--workday", "day--half"}, true},
		{"holiday", domain.SelectionNone, holiday, VisualHoliday, []string{"day", "day--holiday"}, false},
		{"selected holiday keeps holiday kind", domain.SelectionFull, holiday, VisualHoliday, []string{"day", "day--holiday", "day--full"}, true},
		{"overlap", domain.SelectionNone, overlap, VisualPlain, []string{"day", "day--workday", "day--region-a", "day--region-b", "day--overlap"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveVisual(tt.state, tt.annotation)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.classes, got.Classes)
			assert.Equal(t, tt.pressed, got.Pressed)
			assert.Equal(t, tt.pressed, got.Selected)
			assert.Equal(t, got, DeriveVisual(tt.state, tt.annotation))
		})
	}
}

func TestAnnounce(t *testing.T) {
	k := day("2025-06-02")
	assert.Equal(t, "Full day set on 2025-06-02.", Announce(k, domain.SelectionFull))
	assert.Equal(t, "Half day set on 2025-06-02.", Announce(k, domain.SelectionHalf))
	assert.Equal(t, "No selection set on 2025-06-02.", Announce(k, domain.SelectionNone))
}

func fixedNow(s string) func() time.Time {
	return func() time.Time { return day(s).Time().Add(10 * time.Hour) }
}
