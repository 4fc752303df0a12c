package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"plain integer", "15340", 15340},
		{"thousands separator", "15,340", 15340},
		{"surrounding whitespace", "  420 ", 420},
		{"no-break space separator", "15\u00a0340", 15340},
		{"narrow no-break space separator", "15\u202f340", 15340},
		{"suppressed count placeholder", "--", 2},
		{"placeholder with whitespace", " -- ", 2},
		{"blank", "", 0},
		{"whitespace only", "   ", 0},
		{"unparsable text", "n/a", 0},
		{"decimal truncates toward zero", "12.9", 12},
		{"negative decimal truncates toward zero", "-3.7", -3},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeValue(tt.raw))
		})
	}
}

func TestParsePeriod(t *testing.T) {
	y, m, err := ParsePeriod("2018")
	require.NoError(t, err)
	assert.Equal(t, 2018, y)
	assert.Zero(t, m)

	y, m, err = ParsePeriod("2021-03")
	require.NoError(t, err)
	assert.Equal(t, 2021, y)
	assert.Equal(t, 3, m)

	for _, bad := range []string{"", "20x8", "2018-13", "2018-1", "total"} {
		_, _, err := ParsePeriod(bad)
		assert.Error(t, err, "label %q", bad)
	}
}
