package domain

import (
	"fmt"
	"strings"
	"time"
)

const DateKeyLayout = "2006-01-02"

// DateKey is a calendar date without a time component. Two keys are equal iff
// their YYYY-MM-DD forms are equal, so the struct is safe to use as a map key.
type DateKey struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDateKey(year int, month time.Month, day int) DateKey {
	return DateKeyFromTime(time.Date(year, month, day, 0, 0, 0, 0, time.Local))
}

// DateKeyFromTime takes the date as seen on t's own calendar.
func DateKeyFromTime(t time.Time) DateKey {
	y, m, d := t.Date()
	return DateKey{Year: y, Month: m, Day: d}
}

func ParseDateKey(s string) (DateKey, error) {
	t, err := time.ParseInLocation(DateKeyLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return DateKey{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateKeyFromTime(t), nil
}

func Today() DateKey {
	return DateKeyFromTime(time.Now())
}

func (k DateKey) IsZero() bool {
	return k == DateKey{}
}

// Time returns local midnight of the date.
func (k DateKey) Time() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.Local)
}

func (k DateKey) AddDays(n int) DateKey {
	return DateKeyFromTime(time.Date(k.Year, k.Month, k.Day+n, 0, 0, 0, 0, time.Local))
}

func (k DateKey) Weekday() time.Weekday {
	return k.Time().Weekday()
}

func (k DateKey) IsWeekend() bool {
	wd := k.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (k DateKey) Compare(other DateKey) int {
	switch {
	case k.Year != other.Year:
		return cmpInt(k.Year, other.Year)
	case k.Month != other.Month:
		return cmpInt(int(k.Month), int(other.Month))
	default:
		return cmpInt(k.Day, other.Day)
	}
}

func (k DateKey) Before(other DateKey) bool {
	return k.Compare(other) < 0
}

func (k DateKey) After(other DateKey) bool {
	return k.Compare(other) > 0
}

// EndOfYear is 31 December of the key's year.
func (k DateKey) EndOfYear() DateKey {
	return DateKey{Year: k.Year, Month: time.December, Day: 31}
}

func (k DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// MarshalText writes the zero key as an empty string.
func (k DateKey) MarshalText() ([]byte, error) {
	if k.IsZero() {
		return []byte{}, nil
	}
	return []byte(k.String()), nil
}

func (k *DateKey) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = DateKey{}
		return nil
	}
	parsed, err := ParseDateKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
