package climate

// Preset names a quick-scenario parameter bundle.
type Preset string

const (
	PresetBusiness Preset = "business"
	PresetGreen    Preset = "green"
	PresetUrban    Preset = "urban"
)

var presets = map[Preset]Parameters{
	PresetBusiness: {HorizonYears: 80, CO2PPM: 650, RainfallChangePct: 10, GreenInfraPct: 10, UrbanizationPct: 65},
	PresetGreen:    {HorizonYears: 80, CO2PPM: 380, RainfallChangePct: 5, GreenInfraPct: 70, UrbanizationPct: 30},
	PresetUrban:    {HorizonYears: 80, CO2PPM: 520, RainfallChangePct: 15, GreenInfraPct: 15, UrbanizationPct: 85},
}

// PresetParameters returns the bundle for name, reporting whether it exists.
func PresetParameters(name Preset) (Parameters, bool) {
	p, ok := presets[name]
	return p, ok
}

// Presets lists the available preset names in a stable order.
func Presets() []Preset {
	return []Preset{PresetBusiness, PresetGreen, PresetUrban}
}
