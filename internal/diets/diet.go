package diets

import (
	"errors"
	"strings"
	"time"

	"github.com/2beens/aitrainer/internal/coachai"
)

var ErrInvalidDiet = errors.New("invalid diet request")

type Diet struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	Name             string    `json:"name"`
	Age              int       `json:"age"`
	Weight           int       `json:"weight"`
	WeightUnit       string    `json:"weight_unit"`
	Height           int       `json:"height"`
	HeightUnit       string    `json:"height_unit"`
	BloodGroup       string    `json:"blood_group"`
	FitnessGoal      string    `json:"fitness_goal"`
	MedicalCondition string    `json:"medical_condition"`
	DietPreference   string    `json:"diet_preference"`
	DietPlan         string    `json:"diet_plan"`
	CreatedAt        time.Time `json:"created_at"`
}

type DietCreate struct {
	Name             string `json:"name"`
	Age              int    `json:"age"`
	Weight           int    `json:"weight"`
	WeightUnit       string `json:"weight_unit"`
	Height           int    `json:"height"`
	HeightUnit       string `json:"height_unit"`
	BloodGroup       string `json:"blood_group"`
	FitnessGoal      string `json:"fitness_goal"`
	MedicalCondition string `json:"medical_condition"`
	DietPreference   string `json:"diet_preference"`
}

func (dc DietCreate) Validate() error {
	if strings.TrimSpace(dc.Name) == "" {
		return errors.Join(ErrInvalidDiet, errors.New("name empty"))
	}
	if dc.Age <= 0 || dc.Weight <= 0 || dc.Height <= 0 {
		return errors.Join(ErrInvalidDiet, errors.New("age, weight and height must be positive"))
	}
	if dc.WeightUnit == "" || dc.HeightUnit == "" {
		return errors.Join(ErrInvalidDiet, errors.New("units empty"))
	}
	if dc.FitnessGoal == "" || dc.DietPreference == "" {
		return errors.Join(ErrInvalidDiet, errors.New("fitness goal or diet preference empty"))
	}
	return nil
}

func (dc DietCreate) Profile() coachai.Profile {
	return coachai.Profile{
		Name:             dc.Name,
		Age:              dc.Age,
		Weight:           dc.Weight,
		WeightUnit:       dc.WeightUnit,
		Height:           dc.Height,
		HeightUnit:       dc.HeightUnit,
		BloodGroup:       dc.BloodGroup,
		FitnessGoal:      dc.FitnessGoal,
		MedicalCondition: dc.MedicalCondition,
		Preference:       dc.DietPreference,
	}
}

func (dc DietCreate) ToDiet(userID int, plan string) Diet {
	return Diet{
		UserID:           userID,
		Name:             dc.Name,
		Age:              dc.Age,
		Weight:           dc.Weight,
		WeightUnit:       dc.WeightUnit,
		Height:           dc.Height,
		HeightUnit:       dc.HeightUnit,
		BloodGroup:       dc.BloodGroup,
		FitnessGoal:      dc.FitnessGoal,
		MedicalCondition: dc.MedicalCondition,
		DietPreference:   dc.DietPreference,
		DietPlan:         plan,
	}
}
