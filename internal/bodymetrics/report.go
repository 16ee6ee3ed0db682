package bodymetrics

import (
	"fmt"
	"strconv"
	"strings"
)

const notAvailable = "N/A"

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BMIReport renders the downloadable text summary of a BMI calculation.
func BMIReport(in BMIInput, res BMIResult) string {
	var sb strings.Builder
	sb.WriteString("BMI Calculation Result\n\n")
	fmt.Fprintf(&sb, "Name: %s\n", orNA(in.Name))
	fmt.Fprintf(&sb, "Gender: %s\n", orNA(in.Gender))
	fmt.Fprintf(&sb, "Weight: %s %s\n", formatNumber(in.Weight), in.WeightUnit)
	fmt.Fprintf(&sb, "Height: %s %s\n", formatNumber(in.Height), in.HeightUnit)
	fmt.Fprintf(&sb, "BMI: %s\n", formatNumber(res.BMI))
	fmt.Fprintf(&sb, "Category: %s\n\n", res.Category)
	sb.WriteString("Note: BMI is a screening tool and does not directly assess body fat.\n")
	return sb.String()
}

// BMRReport renders the downloadable text summary of a BMR calculation.
func BMRReport(in BMRInput, res BMRResult) string {
	var sb strings.Builder
	sb.WriteString("BMR Calculation Result\n\n")
	fmt.Fprintf(&sb, "Name: %s\n", orNA(in.Name))
	fmt.Fprintf(&sb, "Age: %d years\n", in.Age)
	fmt.Fprintf(&sb, "Weight: %s %s\n", formatNumber(in.Weight), in.WeightUnit)
	fmt.Fprintf(&sb, "Height: %s %s\n", formatNumber(in.Height), in.HeightUnit)
	fmt.Fprintf(&sb, "Gender: %s\n", orNA(in.Gender))
	fmt.Fprintf(&sb, "BMR: %d kcal/day\n\n", res.BMR)
	sb.WriteString("Note: This is the minimum energy your body needs at complete rest.\n")
	return sb.String()
}
