package bodymetrics

import "math"

type BMRInput struct {
	Name       string     `json:"name"`
	Age        int        `json:"age"`
	Gender     string     `json:"gender"`
	Weight     float64    `json:"weight"`
	WeightUnit WeightUnit `json:"weight_unit"`
	Height     float64    `json:"height"`
	HeightUnit HeightUnit `json:"height_unit"`
}

type BMRResult struct {
	BMR int `json:"bmr"`
}

// BMR computes the basal metabolic rate in kcal/day with the Mifflin-St Jeor equation.
func BMR(
	age int,
	gender Gender,
	weight float64,
	weightUnit WeightUnit,
	height float64,
	heightUnit HeightUnit,
) (BMRResult, error) {
	kg := WeightInKg(weight, weightUnit)
	cm := HeightInCm(height, heightUnit)
	if age <= 0 || !usable(kg, cm) {
		return BMRResult{}, ErrInvalidInput
	}

	result := 10*kg + 6.25*cm - 5*float64(age)
	if gender == Female {
		result -= 161
	} else {
		result += 5
	}

	// keeps the int conversion in range
	if !usable(result) || result > math.MaxInt32 {
		return BMRResult{}, ErrInvalidInput
	}

	return BMRResult{BMR: int(math.Round(result))}, nil
}
