package model

import "time"

// HistoryEntry is one persisted computation. The JSON field names are the
// persisted wire format and must not change.
type HistoryEntry struct {
	BMI        float64 `json:"bmi"`
	Category   string  `json:"category"`
	TS         int64   `json:"ts"` // milliseconds since epoch
	UnitLabel  string  `json:"unitLabel"`
	Weight     float64 `json:"weight"` // raw input, not normalized
	Height     float64 `json:"height"` // raw input, not normalized
	WeightUnit string  `json:"weightUnit"`
	HeightUnit string  `json:"heightUnit"`
}

// NewHistoryEntry builds an entry for a successful computation at time at.
func NewHistoryEntry(unit MeasurementUnit, weight, height, bmi float64, category string, at time.Time) HistoryEntry {
	labels := unit.Labels()
	return HistoryEntry{
		BMI:        bmi,
		Category:   category,
		TS:         at.UnixMilli(),
		UnitLabel:  labels.Combined,
		Weight:     weight,
		Height:     height,
		WeightUnit: labels.Weight,
		HeightUnit: labels.Height,
	}
}

// Unit derives the unit system from the stored combined label.
func (e HistoryEntry) Unit() (MeasurementUnit, bool) {
	return UnitFromLabel(e.UnitLabel)
}

// Time returns the creation time of the entry.
func (e HistoryEntry) Time() time.Time {
	return time.UnixMilli(e.TS)
}
