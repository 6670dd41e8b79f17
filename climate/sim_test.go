package climate

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateLengthAndYears(t *testing.T) {
	for _, horizon := range []int{MinHorizonYears, 80, MaxHorizonYears} {
		p := Defaults()
		p.HorizonYears = horizon

		res := Simulate(p)
		require.Len(t, res, horizon+1)

		for i, rec := range res {
			assert.Equal(t, BaseYear+i, rec.Year)
		}
	}
}

func TestSimulateTempMonotonic(t *testing.T) {
	res := Simulate(Defaults())
	for i := 1; i < len(res); i++ {
		assert.GreaterOrEqual(t, res[i].TempAnomalyC, res[i-1].TempAnomalyC)
	}
}

func TestSimulateTempApproachesAsymptote(t *testing.T) {
	p := Defaults()
	p.HorizonYears = MaxHorizonYears

	asymptote := TempAsymptote(p.CO2PPM)
	final := Simulate(p).Final()

	// exp(-120/25) leaves less than 1% of the asymptote unrealized
	assert.InDelta(t, asymptote, final.TempAnomalyC, asymptote*0.01)
	assert.LessOrEqual(t, final.TempAnomalyC, asymptote)
}

func TestSimulateRisksBounded(t *testing.T) {
	corners := []Parameters{
		{MinHorizonYears, MinCO2PPM, MinRainfallChangePct, MinGreenInfraPct, MinUrbanizationPct},
		{MaxHorizonYears, MaxCO2PPM, MaxRainfallChangePct, MaxGreenInfraPct, MaxUrbanizationPct},
		{MaxHorizonYears, MaxCO2PPM, MinRainfallChangePct, MinGreenInfraPct, MaxUrbanizationPct},
		{MaxHorizonYears, MinCO2PPM, MaxRainfallChangePct, MaxGreenInfraPct, MinUrbanizationPct},
		{MinHorizonYears, MaxCO2PPM, MaxRainfallChangePct, MinGreenInfraPct, MaxUrbanizationPct},
	}

	rnd := rand.New(rand.NewChaCha8([32]byte{7}))
	for range 50 {
		corners = append(corners, Parameters{
			HorizonYears:      MinHorizonYears + rnd.IntN(MaxHorizonYears-MinHorizonYears+1),
			CO2PPM:            MinCO2PPM + rnd.IntN(MaxCO2PPM-MinCO2PPM+1),
			RainfallChangePct: MinRainfallChangePct + rnd.IntN(MaxRainfallChangePct-MinRainfallChangePct+1),
			GreenInfraPct:     rnd.IntN(MaxGreenInfraPct + 1),
			UrbanizationPct:   rnd.IntN(MaxUrbanizationPct + 1),
		})
	}

	for _, p := range corners {
		res := Simulate(p)
		for _, rec := range res {
			assert.GreaterOrEqual(t, rec.FloodRisk, 0.0, "params %+v year %d", p, rec.Year)
			assert.Less(t, rec.FloodRisk, 100.0, "params %+v year %d", p, rec.Year)
			assert.GreaterOrEqual(t, rec.DroughtRisk, 0.0, "params %+v year %d", p, rec.Year)
			assert.Less(t, rec.DroughtRisk, 100.0, "params %+v year %d", p, rec.Year)
		}
	}
}

func TestSimulateDeterministic(t *testing.T) {
	p := Parameters{HorizonYears: 60, CO2PPM: 600, RainfallChangePct: -10, GreenInfraPct: 35, UrbanizationPct: 70}
	assert.Equal(t, Simulate(p), Simulate(p))
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		in       Parameters
		expected Parameters
	}{
		{
			name:     "in domain untouched",
			in:       Defaults(),
			expected: Defaults(),
		},
		{
			name:     "all below",
			in:       Parameters{HorizonYears: 0, CO2PPM: 100, RainfallChangePct: -90, GreenInfraPct: -5, UrbanizationPct: -5},
			expected: Parameters{HorizonYears: 20, CO2PPM: 280, RainfallChangePct: -30, GreenInfraPct: 0, UrbanizationPct: 0},
		},
		{
			name:     "all above",
			in:       Parameters{HorizonYears: 500, CO2PPM: 2000, RainfallChangePct: 90, GreenInfraPct: 150, UrbanizationPct: 150},
			expected: Parameters{HorizonYears: 120, CO2PPM: 900, RainfallChangePct: 50, GreenInfraPct: 100, UrbanizationPct: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.in))
		})
	}
}

func TestFinalEmptyResult(t *testing.T) {
	assert.Equal(t, Record{}, Result{}.Final())
}

func TestPresetParameters(t *testing.T) {
	tests := []struct {
		preset   Preset
		expected Parameters
	}{
		{PresetBusiness, Parameters{80, 650, 10, 10, 65}},
		{PresetGreen, Parameters{80, 380, 5, 70, 30}},
		{PresetUrban, Parameters{80, 520, 15, 15, 85}},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			p, ok := PresetParameters(tt.preset)
			require.True(t, ok)
			assert.Equal(t, tt.expected, p)
		})
	}

	_, ok := PresetParameters("doom")
	assert.False(t, ok)
}
