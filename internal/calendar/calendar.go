package calendar

import "github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"

// Annotator classifies a date as holiday / regional school holiday / plain
// workday. Implementations are pure and must return the zero annotation for
// dates they know nothing about instead of failing.
type Annotator interface {
	Annotate(date domain.DateKey) domain.DayAnnotation
}

// AnnotatorFunc adapts a plain function to the Annotator interface.
type AnnotatorFunc func(date domain.DateKey) domain.DayAnnotation

func (f AnnotatorFunc) Annotate(date domain.DateKey) domain.DayAnnotation {
	return f(date)
}

// StubAnnotator flags nothing. It is the default until a real dataset is
// configured.
type StubAnnotator struct{}

func (StubAnnotator) Annotate(domain.DateKey) domain.DayAnnotation {
	return domain.DayAnnotation{}
}
