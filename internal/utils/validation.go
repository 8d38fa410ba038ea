package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
)

const maxQuotaLength = 16

// ParseQuota reads a leave allowance as typed in a form. Both "4.5" and the
// Belgian "4,5" are accepted and the result is floored to half days.
// Anything unreadable, negative, in exponent notation or above
// domain.MaxQuota is zero.
func ParseQuota(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || len(s) > maxQuotaLength || strings.ContainsAny(s, "eE") {
		return decimal.Zero
	}

	quota, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return domain.NormalizeQuota(quota)
}

// ParseFormDate returns the zero DateKey for anything that is not YYYY-MM-DD,
// which the planner treats as an unresolved range.
func ParseFormDate(s string) domain.DateKey {
	k, err := domain.ParseDateKey(s)
	if err != nil {
		return domain.DateKey{}
	}
	return k
}

// ParseFormFlag reads a checkbox value; browsers send "on" for a ticked box
// and nothing otherwise.
func ParseFormFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes", "y", "x":
		return true
	default:
		return false
	}
}

// ParseDateList reads a comma separated list of dates. Unlike the form
// helpers it is strict, every entry must parse.
func ParseDateList(s string) ([]domain.DateKey, error) {
	days := make([]domain.DateKey, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		k, err := domain.ParseDateKey(part)
		if err != nil {
			return nil, fmt.Errorf("invalid date in list: %w", err)
		}
		days = append(days, k)
	}
	return days, nil
}
