package planner

import (
	"fmt"
	"strings"

	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/calendar"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
)

type VisualKind string

const (
	VisualPlain   VisualKind = "plain"
	VisualHoliday VisualKind = "holiday"
	VisualFull    VisualKind = "full"
	VisualHalf    VisualKind = "half"
)

// VisualSpec is everything a renderer needs to draw one cell.
type VisualSpec struct {
	Kind     VisualKind `json:"kind"`
	Classes  []string   `json:"classes"`
	Pressed  bool       `json:"pressed"`
	Selected bool       `json:"selected"`
}

func (v VisualSpec) Class() string {
	return strings.Join(v.Classes, " ")
}

// DeriveVisual maps a selection state and an annotation to the cell's look.
// Holidays keep the holiday kind whatever the selection; pressed and selected
// still follow the state.
func DeriveVisual(state domain.SelectionState, annotation domain.DayAnnotation) VisualSpec {
	visual := VisualSpec{
		Kind:     VisualPlain,
		Classes:  []string{"day"},
		Pressed:  state != domain.SelectionNone,
		Selected: state != domain.SelectionNone,
	}

	if annotation.IsHoliday {
		visual.Kind = VisualHoliday
		visual.Classes = append(visual.Classes, "day--holiday")
	} else {
		visual.Classes = append(visual.Classes, "day--workday")
	}
	if annotation.IsRegionA {
		visual.Classes = append(visual.Classes, "day--region-a")
	}
	if annotation.IsRegionB {
		visual.Classes = append(visual.Classes, "day--region-b")
	}
	if annotation.Overlap() {
		visual.Classes = append(visual.Classes, "day--overlap")
	}

	switch state {
	case domain.SelectionFull:
		if !annotation.IsHoliday {
			visual.Kind = VisualFull
		}
		visual.Classes = append(visual.Classes, "day--full")
	case domain.SelectionHalf:
		if !annotation.IsHoliday {
			visual.Kind = VisualHalf
		}
		visual.Classes = append(visual.Classes, "day--half")
	}

	return visual
}

// Labels are the texts used in day descriptions.
type Labels struct {
	Holiday string
	Overlap string
	RegionA string
	RegionB string
}

var DefaultLabels = Labels{
	Holiday: "public holiday",
	Overlap: "overlapping school holidays",
	RegionA: "Flemish school holiday",
	RegionB: "Walloon school holiday",
}

func (l Labels) withDefaults() Labels {
	if l.Holiday == "" {
		l.Holiday = DefaultLabels.Holiday
	}
	if l.Overlap == "" {
		l.Overlap = DefaultLabels.Overlap
	}
	if l.RegionA == "" {
		l.RegionA = DefaultLabels.RegionA
	}
	if l.RegionB == "" {
		l.RegionB = DefaultLabels.RegionB
	}
	return l
}

// Cell is one rendered day. Date is its identity; the rest is derived.
type Cell struct {
	Index       int                   `json:"index"`
	Date        domain.DateKey        `json:"date"`
	Label       string                `json:"label"`
	Annotation  domain.DayAnnotation  `json:"annotation"`
	State       domain.SelectionState `json:"state"`
	Visual      VisualSpec            `json:"visual"`
	Description string                `json:"description"`
	TabIndex    int                   `json:"tabIndex"`
	Current     bool                  `json:"current"`
}

// CalendarView projects a list of days onto cells and keeps them in sync
// with the selection store.
type CalendarView struct {
	annotator calendar.Annotator
	store     *SelectionStore
	labels    Labels

	today domain.DateKey
	cells []Cell
	index map[domain.DateKey]int
	focus int
}

func NewCalendarView(annotator calendar.Annotator, store *SelectionStore, labels Labels) *CalendarView {
	return &CalendarView{
		annotator: annotator,
		store:     store,
		labels:    labels.withDefaults(),
		cells:     make([]Cell, 0),
		index:     make(map[domain.DateKey]int),
	}
}

// Rebuild throws away every cell and renders days from scratch. Focus goes
// back to the first cell.
func (v *CalendarView) Rebuild(days []domain.DateKey, today domain.DateKey) {
	v.today = today
	v.cells = make([]Cell, 0, len(days))
	v.index = make(map[domain.DateKey]int, len(days))
	v.focus = 0

	for i, day := range days {
		annotation := v.annotator.Annotate(day)
		v.cells = append(v.cells, Cell{
			Index:       i,
			Date:        day,
			Label:       fmt.Sprint(day.Day),
			Annotation:  annotation,
			Description: v.Describe(day, annotation),
			Current:     day == today,
			TabIndex:    -1,
		})
		v.index[day] = i
		v.derive(i)
	}

	if len(v.cells) > 0 {
		v.cells[0].TabIndex = 0
	}
}

// Refresh re-derives every cell from the store, e.g. after a reset.
func (v *CalendarView) Refresh() {
	for i := range v.cells {
		v.derive(i)
	}
}

func (v *CalendarView) derive(i int) {
	cell := &v.cells[i]
	cell.State = v.store.Get(cell.Date)
	cell.Visual = DeriveVisual(cell.State, cell.Annotation)
}

// Activate toggles the cell at index, Half with shift held and Full without,
// and re-derives only that cell.
func (v *CalendarView) Activate(index int, shift bool) (Cell, bool) {
	if index < 0 || index >= len(v.cells) {
		return Cell{}, false
	}

	kind := domain.SelectionFull
	if shift {
		kind = domain.SelectionHalf
	}
	v.store.Toggle(v.cells[index].Date, kind)
	v.derive(index)

	return v.cells[index], true
}

// Focus makes index the grid's only tab stop. Out-of-range indexes are
// ignored.
func (v *CalendarView) Focus(index int) int {
	if index < 0 || index >= len(v.cells) || index == v.focus {
		return v.focus
	}

	v.cells[v.focus].TabIndex = -1
	v.cells[index].TabIndex = 0
	v.focus = index

	return v.focus
}

func (v *CalendarView) FocusIndex() int {
	return v.focus
}

func (v *CalendarView) IndexOf(key domain.DateKey) (int, bool) {
	i, ok := v.index[key]
	return i, ok
}

func (v *CalendarView) Cell(index int) (Cell, bool) {
	if index < 0 || index >= len(v.cells) {
		return Cell{}, false
	}
	return v.cells[index], true
}

// Cells returns a copy of the rendered cells.
func (v *CalendarView) Cells() []Cell {
	cells := make([]Cell, len(v.cells))
	copy(cells, v.cells)
	return cells
}

func (v *CalendarView) Len() int {
	return len(v.cells)
}

// Describe formats a day for screen readers, e.g.
// "25-12-2025 (public holiday: Kerstmis)".
func (v *CalendarView) Describe(key domain.DateKey, annotation domain.DayAnnotation) string {
	base := fmt.Sprintf("%02d-%02d-%04d", key.Day, int(key.Month), key.Year)

	tags := make([]string, 0, 2)
	if annotation.IsHoliday {
		tags = append(tags, v.labels.Holiday)
	}
	switch {
	case annotation.Overlap():
		tags = append(tags, v.labels.Overlap)
	case annotation.IsRegionA:
		tags = append(tags, v.labels.RegionA)
	case annotation.IsRegionB:
		tags = append(tags, v.labels.RegionB)
	}

	if len(tags) == 0 {
		return base
	}
	if annotation.Note != "" {
		tags[0] += ": " + annotation.Note
	}
	return base + " (" + strings.Join(tags, ", ") + ")"
}

// Announce is the live-region message after a toggle.
func Announce(key domain.DateKey, state domain.SelectionState) string {
	switch state {
	case domain.SelectionFull:
		return "Full day set on " + key.String() + "."
	case domain.SelectionHalf:
		return "Half day set on " + key.String() + "."
	default:
		return "No selection set on " + key.String() + "."
	}
}
