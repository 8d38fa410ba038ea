package calendar

import "github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"

// CompositeAnnotator ORs the flags of every annotator; the first note wins.
type CompositeAnnotator struct {
	annotators []Annotator
}

func NewCompositeAnnotator(annotators ...Annotator) *CompositeAnnotator {
	return &CompositeAnnotator{annotators: annotators}
}

func (c *CompositeAnnotator) Annotate(date domain.DateKey) domain.DayAnnotation {
	var result domain.DayAnnotation
	for _, a := range c.annotators {
		result = result.Merge(a.Annotate(date))
	}
	return result
}

func (c *CompositeAnnotator) Len() int {
	return len(c.annotators)
}
