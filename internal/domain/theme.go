package domain

type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeAuto, ThemeLight, ThemeDark:
		return Theme(s), true
	default:
		return ThemeAuto, false
	}
}

func (t Theme) Label() string {
	if t == ThemeAuto {
		return "Mode: automatic"
	}
	return "Mode: " + string(t)
}
