package planner

const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyPageUp     = "PageUp"
	KeyPageDown   = "PageDown"
	KeyEnter      = "Enter"
	KeySpace      = " "
)

const (
	DefaultColumns = 7
	pageRows       = 4
)

// IsNavigationKey reports whether Move knows the key.
func IsNavigationKey(key string) bool {
	switch key {
	case KeyArrowLeft, KeyArrowRight, KeyArrowUp, KeyArrowDown, KeyHome, KeyEnd, KeyPageUp, KeyPageDown:
		return true
	default:
		return false
	}
}

// IsActivationKey reports whether the key toggles the focused cell.
func IsActivationKey(key string) bool {
	return key == KeyEnter || key == KeySpace
}

// Move computes the focus index after a key press on a grid of total cells.
// The result is clamped to [0, total-1] and never wraps; an empty grid gives
// 0 and unknown keys keep the current index.
func Move(index int, key string, total, columns int) int {
	if total <= 0 {
		return 0
	}
	if columns <= 0 {
		columns = DefaultColumns
	}
	index = clamp(index, 0, total-1)

	next := index
	switch key {
	case KeyArrowLeft:
		next = index - 1
	case KeyArrowRight:
		next = index + 1
	case KeyArrowUp:
		next = index - columns
	case KeyArrowDown:
		next = index + columns
	case KeyHome:
		next = index / columns * columns
	case KeyEnd:
		next = index/columns*columns + columns - 1
	case KeyPageUp:
		next = index - columns*pageRows
	case KeyPageDown:
		next = index + columns*pageRows
	}

	return clamp(next, 0, total-1)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
