// Package bmi computes Body Mass Index values and categories from raw form input.
package bmi

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/fitcheck/internal/domain/model"
)

// Formula and threshold constants.
const (
	imperialFactor = 703
	cmPerMeter     = 100
	roundingScale  = 10

	underweightBelow = 18.5
	normalBelow      = 25
	overweightBelow  = 30
)

// Category is the coarse BMI classification.
type Category string

// Categories in ascending BMI order.
const (
	Underweight Category = "Underweight"
	Normal      Category = "Normal"
	Overweight  Category = "Overweight"
	Obese       Category = "Obese"
)

// Result is a successful computation.
type Result struct {
	BMI      float64  `json:"bmi"`
	Category Category `json:"category"`
	Weight   float64  `json:"weight"`
	Height   float64  `json:"height"`
}

// ParseUnit converts "metric" or "imperial" (case-insensitive) to a unit system.
func ParseUnit(s string) (model.MeasurementUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metric":
		return model.Metric, nil
	case "imperial":
		return model.Imperial, nil
	default:
		return 0, ErrUnknownUnit
	}
}

// ParseNumber trims s and accepts a comma as decimal separator.
// The second return value is false when s is not a finite number.
func ParseNumber(s string) (float64, bool) {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) {
		return 0, false
	}
	return v, true
}

// Compute validates the raw weight and height text and returns the rounded
// BMI with its category. Rules are checked in order and the first failure wins.
func Compute(unit model.MeasurementUnit, rawWeight, rawHeight string) (Result, error) {
	weight, ok := ParseNumber(rawWeight)
	if !ok || weight <= 0 {
		return Result{}, ErrInvalidWeight
	}
	height, ok := ParseNumber(rawHeight)
	if !ok || height <= 0 {
		return Result{}, ErrInvalidHeight
	}

	value := ratio(unit, weight, height)
	if !finite(value) || value <= 0 {
		return Result{}, ErrComputationFailed
	}
	// Scaling can overflow or underflow to zero; stored entries must stay positive and finite.
	value = Round(value)
	if !finite(value) || value <= 0 {
		return Result{}, ErrComputationFailed
	}

	return Result{
		BMI:      value,
		Category: Categorize(value),
		Weight:   weight,
		Height:   height,
	}, nil
}

func ratio(unit model.MeasurementUnit, weight, height float64) float64 {
	if unit == model.Metric {
		meters := height / cmPerMeter
		return weight / (meters * meters)
	}
	return (weight / (height * height)) * imperialFactor
}

// Round rounds to one decimal place, half away from zero.
func Round(v float64) float64 {
	return math.Round(v*roundingScale) / roundingScale
}

// Categorize maps a BMI to its category. Lower bounds are inclusive.
func Categorize(v float64) Category {
	switch {
	case v < underweightBelow:
		return Underweight
	case v < normalBelow:
		return Normal
	case v < overweightBelow:
		return Overweight
	default:
		return Obese
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
