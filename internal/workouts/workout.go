package workouts

import (
	"errors"
	"strings"
	"time"

	"github.com/2beens/aitrainer/internal/coachai"
)

var ErrInvalidWorkout = errors.New("invalid workout request")

type Workout struct {
	ID                int       `json:"id"`
	UserID            int       `json:"user_id"`
	Name              string    `json:"name"`
	Age               int       `json:"age"`
	Weight            int       `json:"weight"`
	WeightUnit        string    `json:"weight_unit"`
	Height            int       `json:"height"`
	HeightUnit        string    `json:"height_unit"`
	BloodGroup        string    `json:"blood_group"`
	FitnessGoal       string    `json:"fitness_goal"`
	MedicalCondition  string    `json:"medical_condition"`
	WorkoutPreference string    `json:"workout_preference"`
	WorkoutPlan       string    `json:"workout_plan"`
	CreatedAt         time.Time `json:"created_at"`
}

// WorkoutCreate is the workout form as submitted by the client.
type WorkoutCreate struct {
	Name              string `json:"name"`
	Age               int    `json:"age"`
	Weight            int    `json:"weight"`
	WeightUnit        string `json:"weight_unit"`
	Height            int    `json:"height"`
	HeightUnit        string `json:"height_unit"`
	BloodGroup        string `json:"blood_group"`
	FitnessGoal       string `json:"fitness_goal"`
	MedicalCondition  string `json:"medical_condition"`
	WorkoutPreference string `json:"workout_preference"`
}

func (wc WorkoutCreate) Validate() error {
	if strings.TrimSpace(wc.Name) == "" {
		return errors.Join(ErrInvalidWorkout, errors.New("name empty"))
	}
	if wc.Age <= 0 || wc.Weight <= 0 || wc.Height <= 0 {
		return errors.Join(ErrInvalidWorkout, errors.New("age, weight and height must be positive"))
	}
	if wc.WeightUnit == "" || wc.HeightUnit == "" {
		return errors.Join(ErrInvalidWorkout, errors.New("units empty"))
	}
	if wc.FitnessGoal == "" || wc.WorkoutPreference == "" {
		return errors.Join(ErrInvalidWorkout, errors.New("fitness goal or workout preference empty"))
	}
	return nil
}

func (wc WorkoutCreate) Profile() coachai.Profile {
	return coachai.Profile{
		Name:             wc.Name,
		Age:              wc.Age,
		Weight:           wc.Weight,
		WeightUnit:       wc.WeightUnit,
		Height:           wc.Height,
		HeightUnit:       wc.HeightUnit,
		BloodGroup:       wc.BloodGroup,
		FitnessGoal:      wc.FitnessGoal,
		MedicalCondition: wc.MedicalCondition,
		Preference:       wc.WorkoutPreference,
	}
}

func (wc WorkoutCreate) ToWorkout(userID int, plan string) Workout {
	return Workout{
		UserID:            userID,
		Name:              wc.Name,
		Age:               wc.Age,
		Weight:            wc.Weight,
		WeightUnit:        wc.WeightUnit,
		Height:            wc.Height,
		HeightUnit:        wc.HeightUnit,
		BloodGroup:        wc.BloodGroup,
		FitnessGoal:       wc.FitnessGoal,
		MedicalCondition:  wc.MedicalCondition,
		WorkoutPreference: wc.WorkoutPreference,
		WorkoutPlan:       plan,
	}
}

// WorkoutMemory is a stored workout together with its plan broken down into exercises.
type WorkoutMemory struct {
	Workout
	NormalizedExercises []Exercise `json:"normalized_exercises"`
}
