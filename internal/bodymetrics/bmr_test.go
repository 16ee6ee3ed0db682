package bodymetrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMR(t *testing.T) {
	male, err := BMR(30, Male, 70, Kilograms, 175, Centimeters)
	require.NoError(t, err)
	// 700 + 1093.75 - 150 + 5
	assert.Equal(t, 1649, male.BMR)

	female, err := BMR(30, Female, 70, Kilograms, 175, Centimeters)
	require.NoError(t, err)
	assert.Equal(t, 1483, female.BMR)

	assert.Equal(t, 166, male.BMR-female.BMR)
}

func TestBMR_Imperial(t *testing.T) {
	metric, err := BMR(40, Male, 80, Kilograms, 180, Centimeters)
	require.NoError(t, err)

	imperial, err := BMR(40, Male, KgToLbs(80), Pounds, CmToInches(180), Inches)
	require.NoError(t, err)

	assert.Equal(t, metric.BMR, imperial.BMR)
}

func TestBMR_InvalidInput(t *testing.T) {
	_, err := BMR(0, Male, 70, Kilograms, 175, Centimeters)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = BMR(30, Female, 0, Kilograms, 175, Centimeters)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = BMR(30, Female, 70, Kilograms, 0, Inches)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBMR_NonFiniteInput(t *testing.T) {
	testCases := []struct {
		name       string
		weight     float64
		weightUnit WeightUnit
		height     float64
	}{
		{name: "weight overflows", weight: 1e308, weightUnit: Kilograms, height: 175},
		{name: "pounds overflow", weight: math.MaxFloat64, weightUnit: Pounds, height: 175},
		{name: "finite but out of int range", weight: 1e300, weightUnit: Kilograms, height: 175},
		{name: "nan weight", weight: math.NaN(), weightUnit: Kilograms, height: 175},
		{name: "nan height", weight: 70, weightUnit: Kilograms, height: math.NaN()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := BMR(30, Male, tc.weight, tc.weightUnit, tc.height, Centimeters)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, BMRResult{}, res)
		})
	}
}
