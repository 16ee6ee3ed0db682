package bodymetrics

const (
	CategoryUnderweight = "Underweight"
	CategoryNormal      = "Normal weight"
	CategoryOverweight  = "Overweight"
	CategoryObese       = "Obese"
)

type BMIInput struct {
	Name       string     `json:"name"`
	Gender     string     `json:"gender"`
	Weight     float64    `json:"weight"`
	WeightUnit WeightUnit `json:"weight_unit"`
	Height     float64    `json:"height"`
	HeightUnit HeightUnit `json:"height_unit"`
}

type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

// BMI normalizes the input to kilograms and meters and returns the index rounded to two decimals.
func BMI(weight float64, weightUnit WeightUnit, height float64, heightUnit HeightUnit) (BMIResult, error) {
	kg := WeightInKg(weight, weightUnit)
	m := HeightInMeters(height, heightUnit)
	if !usable(kg, m) {
		return BMIResult{}, ErrInvalidInput
	}

	raw := kg / (m * m)
	if !usable(raw) {
		return BMIResult{}, ErrInvalidInput
	}
	bmi := round2(raw)
	return BMIResult{
		BMI:      bmi,
		Category: BMICategory(bmi),
	}, nil
}

// BMICategory classifies an already rounded BMI value.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}
