package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want Period
	}{
		{"weekly", Weekly},
		{"Monthly", Monthly},
		{" yearly ", Yearly},
		{"", Monthly},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParsePeriod(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}

	_, err := ParsePeriod("daily")
	assert.True(t, errors.Is(err, ErrUnknownPeriod))
}

func TestToDisplay(t *testing.T) {
	assert.Equal(t, 100.0, ToDisplay(400, Weekly))
	assert.Equal(t, 400.0, ToDisplay(400, Monthly))
	assert.Equal(t, 4800.0, ToDisplay(400, Yearly))
}

func TestToCanonical(t *testing.T) {
	assert.Equal(t, 400.0, ToCanonical(100, Weekly))
	assert.Equal(t, 400.0, ToCanonical(400, Monthly))
	assert.Equal(t, 400.0, ToCanonical(4800, Yearly))
}

func TestPeriodRoundTrip(t *testing.T) {
	for _, x := range []float64{0, 1, 120, 333.33, 5000} {
		assert.Equal(t, x, ToDisplay(ToCanonical(x, Monthly), Monthly))
		assert.InDelta(t, x, ToDisplay(ToCanonical(x, Yearly), Yearly), 1e-9)
	}
}

func TestWeeklyConversionUsesFourWeekMonth(t *testing.T) {
	monthly := 1300.0

	// 固定 4 周/月：周额正好是月额的 0.25，换回时乘 4
	weekly := ToDisplay(monthly, Weekly)
	assert.Equal(t, 325.0, weekly)
	assert.Equal(t, 0.25, weekly/monthly)
	assert.Equal(t, 4.0, ToCanonical(weekly, Weekly)/weekly)

	// 与真实的 52/12 周/月不一致
	realWeekly := monthly * 12 / 52
	assert.Equal(t, 300.0, realWeekly)
	assert.NotEqual(t, realWeekly, weekly)
	assert.InDelta(t, 52.0/48.0, weekly/realWeekly, 1e-12)
}
