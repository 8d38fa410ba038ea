package calendar

import (
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/be"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
)

// HolidayAnnotator marks Belgian public holidays.
type HolidayAnnotator struct {
	calendar *cal.BusinessCalendar
}

func NewHolidayAnnotator() *HolidayAnnotator {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(be.Holidays...)
	return &HolidayAnnotator{calendar: c}
}

func (h *HolidayAnnotator) Annotate(date domain.DateKey) domain.DayAnnotation {
	actual, _, holiday := h.calendar.IsHoliday(date.Time())
	if !actual || holiday == nil {
		return domain.DayAnnotation{}
	}
	return domain.DayAnnotation{IsHoliday: true, Note: holiday.Name}
}
