package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
)

func TestParseQuota(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10", "10"},
		{" 4.5 ", "4.5"},
		{"4,5", "4.5"},
		{"", "0"},
		{"ten", "0"},
		{"-3", "0"},
		{"0.5", "0.5"},
		{"4.3", "4"},
		{"4.75", "4.5"},
		{"1000", "1000"},
		{"1e9", "0"},
		{"1E2", "0"},
		{"1e20000000", "0"},
		{"1000.5", "0"},
		{"99999999999999999999", "0"},
		{"0." + strings.Repeat("0", 40) + "1", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuota(tt.input).String())
		})
	}
}

func TestParseFormDate(t *testing.T) {
	assert.Equal(t, domain.NewDateKey(2025, time.June, 2), ParseFormDate("2025-06-02"))
	assert.True(t, ParseFormDate("").IsZero())
	assert.True(t, ParseFormDate("06/02/2025").IsZero())
}

func TestParseFormFlag(t *testing.T) {
	for _, v := range []string{"on", "true", "1", "YES"} {
		assert.True(t, ParseFormFlag(v), v)
	}
	for _, v := range []string{"", "off", "false", "0"} {
		assert.False(t, ParseFormFlag(v), v)
	}
}

func TestParseDateList(t *testing.T) {
	days, err := ParseDateList("2025-06-02, 2025-06-03,,")
	require.NoError(t, err)
	assert.Equal(t, []domain.DateKey{
		domain.NewDateKey(2025, time.June, 2),
		domain.NewDateKey(2025, time.June, 3),
	}, days)

	days, err = ParseDateList("")
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = ParseDateList("2025-06-02,tomorrow")
	assert.Error(t, err)
}
