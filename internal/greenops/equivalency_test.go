package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name          string
		kg            float64
		wantMiles     float64
		wantSeedlings float64
		wantIsEmpty   bool
		wantErr       error
	}{
		{
			name:          "150kg reference value",
			kg:            150,
			wantMiles:     781.25, // 150 / 0.192
			wantSeedlings: 2.5,    // 150 / 60
		},
		{
			name:          "exactly at threshold",
			kg:            1,
			wantMiles:     5.208333,
			wantSeedlings: 0.016667,
		},
		{
			name:        "below threshold returns empty",
			kg:          0.5,
			wantIsEmpty: true,
		},
		{
			name:        "zero returns empty",
			kg:          0,
			wantIsEmpty: true,
		},
		{
			name:    "negative value",
			kg:      -1,
			wantErr: ErrNegativeValue,
		},
		{
			name:    "NaN",
			kg:      math.NaN(),
			wantErr: ErrCalculationOverflow,
		},
		{
			name:    "infinity",
			kg:      math.Inf(1),
			wantErr: ErrCalculationOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.kg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, got.IsEmpty)
				return
			}
			require.NoError(t, err)

			if tt.wantIsEmpty {
				assert.True(t, got.IsEmpty)
				assert.Empty(t, got.Results)
				return
			}

			require.Len(t, got.Results, 3)
			assert.Equal(t, EquivalencyMilesDriven, got.Results[0].Type)
			assert.InDelta(t, tt.wantMiles, got.Results[0].Value, tt.wantMiles*0.01)
			assert.Equal(t, EquivalencyTreeSeedlings, got.Results[2].Type)
			assert.InDelta(t, tt.wantSeedlings, got.Results[2].Value, tt.wantSeedlings*0.01)
			assert.Contains(t, got.DisplayText, "Equivalent to driving")
		})
	}
}

func TestCalculate_DisplayText(t *testing.T) {
	got, err := Calculate(11850)
	require.NoError(t, err)

	// 11850 / 0.192 = 61718.75, 11850 / 60 = 197.5
	assert.Equal(t, "Equivalent to driving ~61,719 miles or planting ~198 tree seedlings", got.DisplayText)
	assert.Equal(t, "~1.4 million", got.Results[1].FormattedValue)
}

func TestDescribe(t *testing.T) {
	assert.Empty(t, Describe(0))
	assert.Empty(t, Describe(-5))
	assert.Equal(t,
		"Equivalent to driving ~5.2 million miles or planting ~16,667 tree seedlings",
		Describe(1_000_000))
}

func TestEquivalencyType_String(t *testing.T) {
	assert.Equal(t, "MilesDriven", EquivalencyMilesDriven.String())
	assert.Equal(t, "SmartphonesCharged", EquivalencySmartphonesCharged.String())
	assert.Equal(t, "TreeSeedlings", EquivalencyTreeSeedlings.String())
	assert.Equal(t, "EquivalencyType(9)", EquivalencyType(9).String())
}

func BenchmarkCalculate(b *testing.B) {
	for b.Loop() {
		_, _ = Calculate(150)
	}
}
