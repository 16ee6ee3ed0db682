package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2beens/aitrainer/internal/bodymetrics"
)

func bmiCmd() *cobra.Command {
	var in bodymetrics.BMIInput
	var weightUnit, heightUnit string
	cmd := &cobra.Command{
		Use:   "bmi",
		Short: "Calculate the body mass index (offline)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			wu, err := bodymetrics.ParseWeightUnit(weightUnit)
			if err != nil {
				return err
			}
			hu, err := bodymetrics.ParseHeightUnit(heightUnit)
			if err != nil {
				return err
			}
			in.WeightUnit, in.HeightUnit = wu, hu

			res, err := bodymetrics.BMI(in.Weight, in.WeightUnit, in.Height, in.HeightUnit)
			if err != nil {
				return fmt.Errorf("weight and height must be positive numbers")
			}
			color.New(categoryColor(res.Category)).Printf("BMI %.2f, %s\n\n", res.BMI, res.Category)
			fmt.Print(bodymetrics.BMIReport(in, res))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "name for the report")
	cmd.Flags().StringVar(&in.Gender, "gender", "", "gender for the report")
	cmd.Flags().Float64Var(&in.Weight, "weight", 0, "weight")
	cmd.Flags().StringVar(&weightUnit, "weight-unit", "kg", "kg or lbs")
	cmd.Flags().Float64Var(&in.Height, "height", 0, "height")
	cmd.Flags().StringVar(&heightUnit, "height-unit", "cm", "cm or inches")
	return cmd
}

func categoryColor(category string) color.Attribute {
	switch category {
	case bodymetrics.CategoryNormal:
		return color.FgGreen
	case bodymetrics.CategoryObese:
		return color.FgRed
	default:
		return color.FgYellow
	}
}

func bmrCmd() *cobra.Command {
	var in bodymetrics.BMRInput
	var weightUnit, heightUnit string
	cmd := &cobra.Command{
		Use:   "bmr",
		Short: "Calculate the basal metabolic rate (offline)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			wu, err := bodymetrics.ParseWeightUnit(weightUnit)
			if err != nil {
				return err
			}
			hu, err := bodymetrics.ParseHeightUnit(heightUnit)
			if err != nil {
				return err
			}
			in.WeightUnit, in.HeightUnit = wu, hu
			in.Gender = string(bodymetrics.ParseGender(in.Gender))

			res, err := bodymetrics.BMR(in.Age, bodymetrics.Gender(in.Gender), in.Weight, in.WeightUnit, in.Height, in.HeightUnit)
			if err != nil {
				return fmt.Errorf("age, weight and height must be positive numbers")
			}
			color.Green("BMR %d kcal/day", res.BMR)
			fmt.Println()
			fmt.Print(bodymetrics.BMRReport(in, res))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "name for the report")
	cmd.Flags().IntVar(&in.Age, "age", 0, "age in years")
	cmd.Flags().StringVar(&in.Gender, "gender", "male", "male or female")
	cmd.Flags().Float64Var(&in.Weight, "weight", 0, "weight")
	cmd.Flags().StringVar(&weightUnit, "weight-unit", "kg", "kg or lbs")
	cmd.Flags().Float64Var(&in.Height, "height", 0, "height")
	cmd.Flags().StringVar(&heightUnit, "height-unit", "cm", "cm or inches")
	return cmd
}
