package planner

import (
	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
)

var halfDay = decimal.New(5, -1)

// Summarize counts the selections and compares them against the quota.
// Remaining days never go below zero; a negative quota counts as zero.
func Summarize(snapshot map[domain.DateKey]domain.SelectionState, quota decimal.Decimal) domain.Summary {
	summary := domain.Summary{}
	for _, state := range snapshot {
		switch state {
		case domain.SelectionFull:
			summary.FullCount++
		case domain.SelectionHalf:
			summary.HalfCount++
		}
	}

	if quota.IsNegative() {
		quota = decimal.Zero
	}

	summary.UsedDays = decimal.NewFromInt(int64(summary.FullCount)).Add(halfDay.Mul(decimal.NewFromInt(int64(summary.HalfCount))))
	summary.RemainingDays = decimal.Max(decimal.Zero, quota.Sub(summary.UsedDays))

	return summary
}
