package client

import (
	"encoding/json"
	"time"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type SignupRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Username  *string `json:"username,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	ZipCode   *string `json:"zip_code,omitempty"`
	Country   *string `json:"country,omitempty"`
}

type User struct {
	ID           int     `json:"id"`
	Email        string  `json:"email"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Username     *string `json:"username"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	ZipCode      *string `json:"zip_code"`
	Country      *string `json:"country"`
	ProfileImage *string `json:"profile_image"`
}

// AdminUser is the admin listing view, it carries the role and sign up time as well.
type AdminUser struct {
	User
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileUpdate only sends the fields that are set.
type ProfileUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Username  *string `json:"username,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	ZipCode   *string `json:"zip_code,omitempty"`
	Country   *string `json:"country,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// PlanForm holds the profile attributes shared by the workout and diet forms.
type PlanForm struct {
	Name             string `json:"name"`
	Age              int    `json:"age"`
	Weight           int    `json:"weight"`
	WeightUnit       string `json:"weight_unit"`
	Height           int    `json:"height"`
	HeightUnit       string `json:"height_unit"`
	BloodGroup       string `json:"blood_group"`
	FitnessGoal      string `json:"fitness_goal"`
	MedicalCondition string `json:"medical_condition"`
}

type WorkoutForm struct {
	PlanForm
	WorkoutPreference string `json:"workout_preference"`
}

type DietForm struct {
	PlanForm
	DietPreference string `json:"diet_preference"`
}

type Workout struct {
	ID                int       `json:"id"`
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

func (w Workout) EntryID() int              { return w.ID }
func (w Workout) EntryGoal() string         { return w.FitnessGoal }
func (w Workout) EntryCreatedAt() time.Time { return w.CreatedAt }

type Exercise struct {
	Name string  `json:"name"`
	Sets *int    `json:"sets"`
	Reps *int    `json:"reps"`
	Rest *string `json:"rest"`
}

type WorkoutMemory struct {
	Workout
	NormalizedExercises []Exercise `json:"normalized_exercises"`
}

type Insights struct {
	Coach    string   `json:"coach"`
	Title    string   `json:"title"`
	Warmup   []string `json:"warmup"`
	Workout  []string `json:"workout"`
	Recovery []string `json:"recovery"`
}

type InsightsResponse struct {
	Insights Insights `json:"insights"`
	Saved    bool     `json:"saved"`
}

type Diet struct {
	ID               int       `json:"id"`
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

func (d Diet) EntryID() int              { return d.ID }
func (d Diet) EntryGoal() string         { return d.FitnessGoal }
func (d Diet) EntryCreatedAt() time.Time { return d.CreatedAt }

type Tips struct {
	Warmup    []string  `json:"warmup"`
	Workout   []string  `json:"workout"`
	Recovery  []string  `json:"recovery"`
	CreatedAt time.Time `json:"created_at"`
}

type SavedTips struct {
	ID        int             `json:"id"`
	WorkoutID *int            `json:"workout_id"`
	Tips      json.RawMessage `json:"tips"`
	CreatedAt time.Time       `json:"created_at"`
}

type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type BMIRequest struct {
	Name       string  `json:"name,omitempty"`
	Gender     string  `json:"gender,omitempty"`
	Weight     float64 `json:"weight"`
	WeightUnit string  `json:"weight_unit"`
	Height     float64 `json:"height"`
	HeightUnit string  `json:"height_unit"`
}

type BMIResponse struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
	Report   string  `json:"report"`
}

type BMRRequest struct {
	Name       string  `json:"name,omitempty"`
	Age        int     `json:"age"`
	Gender     string  `json:"gender"`
	Weight     float64 `json:"weight"`
	WeightUnit string  `json:"weight_unit"`
	Height     float64 `json:"height"`
	HeightUnit string  `json:"height_unit"`
}

type BMRResponse struct {
	BMR    int    `json:"bmr"`
	Report string `json:"report"`
}
