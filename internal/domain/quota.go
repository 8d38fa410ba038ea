package domain

import "github.com/shopspring/decimal"

// MaxQuota is the largest allowance the planner accepts, in days.
var MaxQuota = decimal.NewFromInt(1000)

// NormalizeQuota floors q to half-day granularity. Negative values and
// anything above MaxQuota become zero.
func NormalizeQuota(q decimal.Decimal) decimal.Decimal {
	// the exponent bounds the work done by the comparisons below
	if exp := q.Exponent(); exp > 3 || exp < -16 {
		return decimal.Zero
	}
	if q.IsNegative() || q.GreaterThan(MaxQuota) {
		return decimal.Zero
	}
	return q.Mul(decimal.NewFromInt(2)).Floor().Div(decimal.NewFromInt(2))
}
