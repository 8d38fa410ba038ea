package domain

import "fmt"

type SelectionState int

const (
	SelectionNone SelectionState = iota
	SelectionFull
	SelectionHalf
)

func (s SelectionState) String() string {
	switch s {
	case SelectionFull:
		return "full"
	case SelectionHalf:
		return "half"
	default:
		return "none"
	}
}

func ParseSelectionState(s string) (SelectionState, error) {
	switch s {
	case "", "none":
		return SelectionNone, nil
	case "full":
		return SelectionFull, nil
	case "half":
		return SelectionHalf, nil
	default:
		return SelectionNone, fmt.Errorf("unknown selection state %q", s)
	}
}

func (s SelectionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SelectionState) UnmarshalText(text []byte) error {
	parsed, err := ParseSelectionState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
