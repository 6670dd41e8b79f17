// Package climate holds the simulation model: a closed-form mapping from
// five tunable parameters to per-year warming, flood and drought proxies.
// It is not a calibrated climate model; the constants are fixed so that the
// curves respond believably to the controls.
package climate

import "math"

// BaseYear is the calendar year at offset zero.
const BaseYear = 2025

// Domain bounds for each parameter. These are enforced at the boundary
// (sliders, request clamping); Simulate assumes in-domain input.
const (
	MinHorizonYears = 20
	MaxHorizonYears = 120

	MinCO2PPM = 280
	MaxCO2PPM = 900

	MinRainfallChangePct = -30
	MaxRainfallChangePct = 50

	MinGreenInfraPct = 0
	MaxGreenInfraPct = 100

	MinUrbanizationPct = 0
	MaxUrbanizationPct = 100
)

// Model calibration constants. Not user-configurable.
const (
	preindustrialCO2PPM   = 280.0
	co2Sensitivity        = 1.2
	warmingTimescaleYears = 25.0

	baseRunoff            = 0.6
	imperviousRunoffGain  = 1.2
	greenRunoffReduction  = 0.55
	warmingRunoffCoupling = 0.08
	floodSaturationRate   = 0.9

	evapDemandCoupling    = 0.18
	greenDroughtRelief    = 0.15
	droughtSaturationRate = 0.8
)

type Parameters struct {
	// HorizonYears is the number of simulated years beyond BaseYear.
	HorizonYears int `json:"horizonYears"`
	// CO2PPM is the atmospheric CO2 concentration held for the whole run.
	CO2PPM int `json:"co2Ppm"`
	// RainfallChangePct shifts annual rainfall relative to today.
	RainfallChangePct int `json:"rainfallChangePct"`
	// GreenInfraPct is green-infrastructure coverage.
	GreenInfraPct int `json:"greenInfraPct"`
	// UrbanizationPct is the impervious surface share.
	UrbanizationPct int `json:"urbanizationPct"`
}

// Defaults returns the parameter set every session starts from.
func Defaults() Parameters {
	return Parameters{
		HorizonYears:      80,
		CO2PPM:            450,
		RainfallChangePct: 10,
		GreenInfraPct:     20,
		UrbanizationPct:   40,
	}
}

// Clamp returns p with every field forced into its domain. The model itself
// never validates; callers feeding it untrusted values clamp first.
func Clamp(p Parameters) Parameters {
	p.HorizonYears = min(max(p.HorizonYears, MinHorizonYears), MaxHorizonYears)
	p.CO2PPM = min(max(p.CO2PPM, MinCO2PPM), MaxCO2PPM)
	p.RainfallChangePct = min(max(p.RainfallChangePct, MinRainfallChangePct), MaxRainfallChangePct)
	p.GreenInfraPct = min(max(p.GreenInfraPct, MinGreenInfraPct), MaxGreenInfraPct)
	p.UrbanizationPct = min(max(p.UrbanizationPct, MinUrbanizationPct), MaxUrbanizationPct)
	return p
}

// Record is one simulated year.
type Record struct {
	Year         int     `json:"year"`
	TempAnomalyC float64 `json:"tempAnomalyC"`
	FloodRisk    float64 `json:"floodRisk"`
	DroughtRisk  float64 `json:"droughtRisk"`
}

// Result is the full run, ordered by year, HorizonYears+1 records long.
type Result []Record

// Final returns the end-of-horizon record.
func (r Result) Final() Record {
	if len(r) == 0 {
		return Record{}
	}
	return r[len(r)-1]
}

// Simulate runs the model. Pure and deterministic: the same parameters
// always produce the same records.
//
// Warming follows an exponential-saturation curve toward a log-CO2
// asymptote. Runoff scales with rainfall and imperviousness, is damped by
// green infrastructure, and couples weakly to warming. Evaporative demand
// grows with warming. Both risk proxies map their index through
// 100*(1-exp(-k*x)), which keeps them inside [0,100) for any finite input.
func Simulate(p Parameters) Result {
	tempAsymptote := co2Sensitivity * math.Log(float64(p.CO2PPM)/preindustrialCO2PPM)

	rainfallFactor := 1 + float64(p.RainfallChangePct)/100
	impervious := float64(p.UrbanizationPct) / 100
	green := float64(p.GreenInfraPct) / 100

	runoffIndex := rainfallFactor * (baseRunoff + imperviousRunoffGain*impervious) * (1 - greenRunoffReduction*green)

	records := make(Result, p.HorizonYears+1)
	for t := 0; t <= p.HorizonYears; t++ {
		temp := tempAsymptote * (1 - math.Exp(-float64(t)/warmingTimescaleYears))

		runoff := runoffIndex * (1 + warmingRunoffCoupling*temp)
		evap := 1 + evapDemandCoupling*temp
		droughtIndex := (evap / rainfallFactor) * (1 - greenDroughtRelief*green)

		records[t] = Record{
			Year:         BaseYear + t,
			TempAnomalyC: temp,
			FloodRisk:    100 * (1 - math.Exp(-floodSaturationRate*runoff)),
			DroughtRisk:  100 * (1 - math.Exp(-droughtSaturationRate*droughtIndex)),
		}
	}
	return records
}

// TempAsymptote returns the long-run warming plateau for a CO2 level.
func TempAsymptote(co2PPM int) float64 {
	return co2Sensitivity * math.Log(float64(co2PPM)/preindustrialCO2PPM)
}
