package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Summary struct {
	FullCount     int             `json:"fullCount"`
	HalfCount     int             `json:"halfCount"`
	UsedDays      decimal.Decimal `json:"usedDays"`
	RemainingDays decimal.Decimal `json:"remainingDays"`
}

// Text is the sentence shown under the calendar.
func (s Summary) Text() string {
	return fmt.Sprintf("Selected: %d full day(s), %d half day(s) — total %s day(s).", s.FullCount, s.HalfCount, s.UsedDays.String())
}
