// Package model contains domain models passed between layers.
package model

// MeasurementUnit selects the unit system used for weight and height.
type MeasurementUnit int

// Supported unit systems.
const (
	Metric MeasurementUnit = iota
	Imperial
)

// String returns the textual form used by forms, the API and the CLI.
func (u MeasurementUnit) String() string {
	switch u {
	case Metric:
		return "metric"
	case Imperial:
		return "imperial"
	default:
		return "unknown"
	}
}

// UnitLabels holds the display labels for a unit system.
type UnitLabels struct {
	Unit              string `json:"unit"`
	Weight            string `json:"weight"`
	Height            string `json:"height"`
	Combined          string `json:"combined"`
	WeightPlaceholder string `json:"weightPlaceholder"`
	HeightPlaceholder string `json:"heightPlaceholder"`
}

var (
	metricLabels = UnitLabels{
		Unit:              "metric",
		Weight:            "kg",
		Height:            "cm",
		Combined:          "kg/cm",
		WeightPlaceholder: "e.g. 65",
		HeightPlaceholder: "e.g. 175",
	}
	imperialLabels = UnitLabels{
		Unit:              "imperial",
		Weight:            "lb",
		Height:            "in",
		Combined:          "lb/in",
		WeightPlaceholder: "e.g. 150",
		HeightPlaceholder: "e.g. 70",
	}
)

// Labels returns the labels for u. Unknown values fall back to imperial.
func (u MeasurementUnit) Labels() UnitLabels {
	if u == Metric {
		return metricLabels
	}
	return imperialLabels
}

// UnitFromLabel maps a combined label such as "kg/cm" back to its unit system.
func UnitFromLabel(label string) (MeasurementUnit, bool) {
	switch label {
	case metricLabels.Combined:
		return Metric, true
	case imperialLabels.Combined:
		return Imperial, true
	default:
		return 0, false
	}
}
