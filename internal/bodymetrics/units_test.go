package bodymetrics

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversions_RoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := gofakeit.Float64Range(0.1, 500)
		assert.InDelta(t, v, KgToLbs(LbsToKg(v)), 1e-9)
		assert.InDelta(t, v, CmToInches(InchesToCm(v)), 1e-9)
	}
}

func TestConversions(t *testing.T) {
	assert.InDelta(t, 45.3592, LbsToKg(100), 1e-9)
	assert.InDelta(t, 25.4, InchesToCm(10), 1e-9)
	assert.InDelta(t, 1.75, HeightInMeters(175, Centimeters), 1e-9)
	assert.InDelta(t, 1.778, HeightInMeters(70, Inches), 1e-9)
	assert.InDelta(t, 177.8, HeightInCm(70, Inches), 1e-9)
	assert.InDelta(t, 70.0, WeightInKg(70, Kilograms), 1e-9)
}

func TestParseUnits(t *testing.T) {
	wu, err := ParseWeightUnit("LBS")
	require.NoError(t, err)
	assert.Equal(t, Pounds, wu)

	wu, err = ParseWeightUnit("")
	require.NoError(t, err)
	assert.Equal(t, Kilograms, wu)

	_, err = ParseWeightUnit("stone")
	assert.ErrorIs(t, err, ErrInvalidInput)

	hu, err := ParseHeightUnit("inches")
	require.NoError(t, err)
	assert.Equal(t, Inches, hu)

	_, err = ParseHeightUnit("feet")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, Female, ParseGender(" Female "))
	assert.Equal(t, Male, ParseGender("other"))
}
