package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DateKey
		wantErr bool
	}{
		{"plain date", "2025-06-02", DateKey{2025, time.June, 2}, false},
		{"surrounding spaces", " 2025-12-31 ", DateKey{2025, time.December, 31}, false},
		{"leap day", "2024-02-29", DateKey{2024, time.February, 29}, false},
		{"not a leap year", "2025-02-29", DateKey{}, true},
		{"wrong layout", "02-06-2025", DateKey{}, true},
		{"empty", "", DateKey{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateKey(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateKeyStringRoundTrip(t *testing.T) {
	k := NewDateKey(2025, time.March, 9)
	assert.Equal(t, "2025-03-09", k.String())

	parsed, err := ParseDateKey(k.String())
	require.NoError(t, err)
	assert.Equal(t, k, parsed)
}

func TestDateKeyAddDays(t *testing.T) {
	k := NewDateKey(2024, time.December, 30)
	assert.Equal(t, "2025-01-02", k.AddDays(3).String())
	assert.Equal(t, "2024-02-29", NewDateKey(2024, time.March, 1).AddDays(-1).String())
}

func TestDateKeyWeekend(t *testing.T) {
	assert.False(t, NewDateKey(2025, time.June, 6).IsWeekend()) // Friday
	assert.True(t, NewDateKey(2025, time.June, 7).IsWeekend())  // Saturday
	assert.True(t, NewDateKey(2025, time.June, 8).IsWeekend())  // Sunday
	assert.Equal(t, time.Monday, NewDateKey(2025, time.June, 2).Weekday())
}

func TestDateKeyCompare(t *testing.T) {
	a := NewDateKey(2025, time.June, 2)
	b := NewDateKey(2025, time.June, 3)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, NewDateKey(2024, time.December, 31).Before(NewDateKey(2025, time.January, 1)))
	assert.Equal(t, "2025-12-31", a.EndOfYear().String())
}

func TestDateKeyJSONMapKey(t *testing.T) {
	data, err := json.Marshal(map[DateKey]SelectionState{
		NewDateKey(2025, time.June, 2): SelectionHalf,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"2025-06-02":"half"}`, string(data))

	var back map[DateKey]SelectionState
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, SelectionHalf, back[NewDateKey(2025, time.June, 2)])
}

func TestDateKeyZeroJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Start DateKey `json:"start"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":""}`, string(data))

	var back struct {
		Start DateKey `json:"start"`
	}
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Start.IsZero())
}

func TestSummaryText(t *testing.T) {
	s := Summary{
		FullCount:     1,
		HalfCount:     1,
		UsedDays:      decimal.RequireFromString("1.5"),
		RemainingDays: decimal.RequireFromString("8.5"),
	}
	assert.Equal(t, "Selected: 1 full day(s), 1 half day(s) — total 1.5 day(s).", s.Text())

	s = Summary{FullCount: 2, UsedDays: decimal.NewFromInt(2)}
	assert.Equal(t, "Selected: 2 full day(s), 0 half day(s) — total 2 day(s).", s.Text())
}

func TestAnnotationMerge(t *testing.T) {
	a := DayAnnotation{IsHoliday: true, Note: "Kerstmis"}
	b := DayAnnotation{IsRegionA: true, IsRegionB: true, Note: "Kerstvakantie"}

	merged := a.Merge(b)
	assert.True(t, merged.IsHoliday)
	assert.True(t, merged.Overlap())
	assert.Equal(t, "Kerstmis", merged.Note)
	assert.True(t, DayAnnotation{}.IsZero())
}

func TestParseTheme(t *testing.T) {
	theme, ok := ParseTheme("dark")
	assert.True(t, ok)
	assert.Equal(t, ThemeDark, theme)

	theme, ok = ParseTheme("purple")
	assert.False(t, ok)
	assert.Equal(t, ThemeAuto, theme)
	assert.Equal(t, "Mode: automatic", ThemeAuto.Label())
	assert.Equal(t, "Mode: light", ThemeLight.Label())
}

func TestNormalizeQuota(t *testing.T) {
	tests := []struct {
		name  string
		input decimal.Decimal
		want  string
	}{
		{"whole days", decimal.NewFromInt(12), "12"},
		{"half day kept", decimal.RequireFromString("2.5"), "2.5"},
		{"floored to half days", decimal.RequireFromString("2.9"), "2.5"},
		{"negative", decimal.NewFromInt(-1), "0"},
		{"cap", MaxQuota, "1000"},
		{"above cap", MaxQuota.Add(decimal.NewFromInt(1)), "0"},
		{"huge exponent", decimal.New(1, 20000000), "0"},
		{"tiny exponent", decimal.New(1, -20000000), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeQuota(tt.input).String())
		})
	}
}
