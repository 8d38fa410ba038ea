package planner

import "github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"

// Enumerate lists every date from start to end inclusive, skipping Saturdays
// and Sundays when weekdaysOnly is set. An inverted or unresolved range gives
// an empty slice.
func Enumerate(start, end domain.DateKey, weekdaysOnly bool) []domain.DateKey {
	days := make([]domain.DateKey, 0)
	if start.IsZero() || end.IsZero() || start.After(end) {
		return days
	}

	for d := start; !d.After(end); d = d.AddDays(1) {
		if weekdaysOnly && d.IsWeekend() {
			continue
		}
		days = append(days, d)
	}

	return days
}
