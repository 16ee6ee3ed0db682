package bodymetrics

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	KgPerLb   = 0.453592
	CmPerInch = 2.54
	MPerInch  = 0.0254
)

type WeightUnit string

const (
	Kilograms WeightUnit = "kg"
	Pounds    WeightUnit = "lbs"
)

type HeightUnit string

const (
	Centimeters HeightUnit = "cm"
	Inches      HeightUnit = "inches"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ErrInvalidInput is returned when a measurement or the result is not a positive finite number,
// no result is computed then.
var ErrInvalidInput = errors.New("invalid input")

func ParseWeightUnit(s string) (WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "kg", "kgs":
		return Kilograms, nil
	case "lb", "lbs":
		return Pounds, nil
	}
	return "", fmt.Errorf("unknown weight unit %q: %w", s, ErrInvalidInput)
}

func ParseHeightUnit(s string) (HeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cm":
		return Centimeters, nil
	case "in", "inch", "inches":
		return Inches, nil
	}
	return "", fmt.Errorf("unknown height unit %q: %w", s, ErrInvalidInput)
}

// ParseGender maps anything but "female" to Male, same as the calculator form does.
func ParseGender(s string) Gender {
	if strings.EqualFold(strings.TrimSpace(s), string(Female)) {
		return Female
	}
	return Male
}

func LbsToKg(lbs float64) float64 {
	return lbs * KgPerLb
}

func KgToLbs(kg float64) float64 {
	return kg / KgPerLb
}

func InchesToCm(inches float64) float64 {
	return inches * CmPerInch
}

func CmToInches(cm float64) float64 {
	return cm / CmPerInch
}

func WeightInKg(weight float64, unit WeightUnit) float64 {
	if unit == Pounds {
		return LbsToKg(weight)
	}
	return weight
}

func HeightInMeters(height float64, unit HeightUnit) float64 {
	if unit == Inches {
		return height * MPerInch
	}
	return height / 100
}

func HeightInCm(height float64, unit HeightUnit) float64 {
	if unit == Inches {
		return InchesToCm(height)
	}
	return height
}

// usable reports whether every value is a positive, finite number.
func usable(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return false
		}
	}
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
