package coachai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	PurposeWorkoutPlan = "workout_plan"
	PurposeDietPlan    = "diet_plan"
	PurposeTips        = "workout_tips"
)

// ErrUnparsableTips means the model did not answer with the requested JSON document.
var ErrUnparsableTips = errors.New("ai response could not be parsed")

// Profile is the user data a plan is tailored to.
type Profile struct {
	Name             string
	Age              int
	Weight           int
	WeightUnit       string
	Height           int
	HeightUnit       string
	BloodGroup       string
	FitnessGoal      string
	MedicalCondition string
	// Preference is the workout style for workout plans and the diet type for diet plans.
	Preference string
}

type Tips struct {
	Warmup   []string `json:"warmup"`
	Workout  []string `json:"workout"`
	Recovery []string `json:"recovery"`
}

func writeProfile(sb *strings.Builder, p Profile, preferenceLabel string) {
	sb.WriteString("User Information:\n")
	fmt.Fprintf(sb, "Name: %s\n", p.Name)
	fmt.Fprintf(sb, "Age: %d\n", p.Age)
	fmt.Fprintf(sb, "Weight: %d %s\n", p.Weight, p.WeightUnit)
	fmt.Fprintf(sb, "Height: %d %s\n", p.Height, p.HeightUnit)
	fmt.Fprintf(sb, "Blood Group: %s\n\n", p.BloodGroup)
	fmt.Fprintf(sb, "Fitness Goal: %s\n", p.FitnessGoal)
	fmt.Fprintf(sb, "Medical Condition: %s\n", p.MedicalCondition)
	fmt.Fprintf(sb, "%s: %s\n\n", preferenceLabel, p.Preference)
}

func WorkoutPlanPrompt(p Profile) string {
	var sb strings.Builder
	sb.WriteString("Create a personalized workout plan.\n\n")
	writeProfile(&sb, p, "Workout Preference")
	sb.WriteString("Instructions:\n")
	sb.WriteString("- Create a 3 to 5 day workout plan\n")
	sb.WriteString("- Include exercise name, sets, and reps\n")
	sb.WriteString("- Keep it beginner friendly and safe\n")
	sb.WriteString("- Add warm-up and cool-down advice\n")
	sb.WriteString("- Simple, clean text format\n")
	return sb.String()
}

func DietPlanPrompt(p Profile) string {
	var sb strings.Builder
	sb.WriteString("Create a personalized diet plan.\n\n")
	writeProfile(&sb, p, "Diet Preference")
	sb.WriteString("Instructions:\n")
	sb.WriteString("- Create a 7-day diet plan\n")
	sb.WriteString("- Include breakfast, lunch, dinner, and snacks\n")
	sb.WriteString("- Mention portion sizes\n")
	sb.WriteString("- Add hydration tips\n")
	sb.WriteString("- Keep it healthy, realistic, and beginner friendly\n")
	sb.WriteString("- Simple, clean text format\n")
	return sb.String()
}

func TipsPrompt(workoutPlan string) string {
	return `You are an AI fitness coach.

Generate workout tips in JSON ONLY.

Rules:
- Exactly 3 tips for warmup
- Exactly 3 tips for workout
- Exactly 3 tips for recovery
- Each tip must be a short sentence
- Use simple language
- No emojis
- No markdown
- No headings
- No extra text

Output format:
{
  "warmup": ["...", "...", "..."],
  "workout": ["...", "...", "..."],
  "recovery": ["...", "...", "..."]
}

Workout plan:
` + workoutPlan + "\n"
}

// WorkoutFailureText is stored as the plan body when the workout plan could not be generated.
func WorkoutFailureText(err error) string {
	return fmt.Sprintf("AI workout generation failed. Reason: %s", err)
}

func DietFailureText(err error) string {
	return fmt.Sprintf("AI diet generation failed. Reason: %s", err)
}

// GenerateWorkoutPlan returns the generated plan. On failure the error is returned together
// with the failure text, which callers store in place of the plan.
func (c *Client) GenerateWorkoutPlan(ctx context.Context, p Profile) (string, error) {
	plan, err := c.Complete(ctx, PurposeWorkoutPlan, WorkoutPlanPrompt(p), planTemperature)
	if err != nil {
		return WorkoutFailureText(err), err
	}
	return plan, nil
}

func (c *Client) GenerateDietPlan(ctx context.Context, p Profile) (string, error) {
	plan, err := c.Complete(ctx, PurposeDietPlan, DietPlanPrompt(p), planTemperature)
	if err != nil {
		return DietFailureText(err), err
	}
	return plan, nil
}

// GenerateTips asks for warmup, workout and recovery tips for the given plan.
// Lists are returned as the model sent them, callers trim them.
func (c *Client) GenerateTips(ctx context.Context, workoutPlan string) (*Tips, error) {
	content, err := c.Complete(ctx, PurposeTips, TipsPrompt(workoutPlan), tipsTemperature)
	if err != nil {
		return nil, err
	}

	var tips Tips
	if err := json.Unmarshal([]byte(content), &tips); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnparsableTips, err)
	}
	return &tips, nil
}
