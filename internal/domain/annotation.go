package domain

// DayAnnotation is derived calendar data for a single date. The user never
// mutates it.
type DayAnnotation struct {
	IsHoliday bool   `json:"isHoliday"`
	IsRegionA bool   `json:"isRegionA"`
	IsRegionB bool   `json:"isRegionB"`
	Note      string `json:"note,omitempty"`
}

// Overlap reports a day that falls in the school holidays of both regions.
func (a DayAnnotation) Overlap() bool {
	return a.IsRegionA && a.IsRegionB
}

func (a DayAnnotation) IsZero() bool {
	return !a.IsHoliday && !a.IsRegionA && !a.IsRegionB && a.Note == ""
}

// Merge ORs the flags; the receiver's note wins when both carry one.
func (a DayAnnotation) Merge(other DayAnnotation) DayAnnotation {
	merged := DayAnnotation{
		IsHoliday: a.IsHoliday || other.IsHoliday,
		IsRegionA: a.IsRegionA || other.IsRegionA,
		IsRegionB: a.IsRegionB || other.IsRegionB,
		Note:      a.Note,
	}
	if merged.Note == "" {
		merged.Note = other.Note
	}
	return merged
}

type CalendarDay struct {
	Date       DateKey       `json:"date"`
	Annotation DayAnnotation `json:"annotation"`
}
