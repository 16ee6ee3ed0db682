package workouts

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	CoachAria  = "Aria"
	CoachAtlas = "Atlas"

	InsightsTitle = "AI Training Insight"

	// how many recent workouts the insights are computed over
	InsightsWindow = 10

	frequentThreshold   = 4
	consistentThreshold = 2
)

const (
	noDataWarmup     = "Log more workouts to unlock personalized insights."
	fallbackWarmup   = "Always include 5–10 minutes of warm-up before heavy exercises."
	fallbackWorkout  = "Your workout variety is balanced. Maintain consistent intensity."
	fallbackRecovery = "Recovery balance looks healthy. Continue monitoring fatigue levels."
)

type Insights struct {
	Coach    string   `json:"coach"`
	Title    string   `json:"title"`
	Warmup   []string `json:"warmup"`
	Workout  []string `json:"workout"`
	Recovery []string `json:"recovery"`
}

// GenerateInsights derives coaching hints from how often exercises repeat across
// the given normalized workouts. Exercise names are compared case-insensitively.
func GenerateInsights(normalized [][]Exercise) Insights {
	if len(normalized) == 0 {
		return Insights{
			Coach:    CoachAria,
			Title:    InsightsTitle,
			Warmup:   []string{noDataWarmup},
			Workout:  []string{},
			Recovery: []string{},
		}
	}

	// names in order of first appearance, so the output is stable
	var names []string
	frequency := make(map[string]int)
	for _, exercises := range normalized {
		for _, ex := range exercises {
			if ex.Name == "" {
				continue
			}
			name := strings.ToLower(ex.Name)
			if _, seen := frequency[name]; !seen {
				names = append(names, name)
			}
			frequency[name]++
		}
	}

	warmup := make([]string, 0)
	workout := make([]string, 0)
	recovery := make([]string, 0)
	for _, name := range names {
		count := frequency[name]
		switch {
		case count >= frequentThreshold:
			recovery = append(recovery, fmt.Sprintf(
				"%s appears very frequently. Consider adding rest or reducing volume.", titleCase(name),
			))
		case count >= consistentThreshold:
			workout = append(workout, fmt.Sprintf(
				"%s shows consistent training. Progressive overload is recommended.", titleCase(name),
			))
		}
	}

	if len(warmup) == 0 {
		warmup = append(warmup, fallbackWarmup)
	}
	if len(workout) == 0 {
		workout = append(workout, fallbackWorkout)
	}
	if len(recovery) == 0 {
		recovery = append(recovery, fallbackRecovery)
	}

	coach := CoachAria
	if len(recovery) > len(workout) {
		coach = CoachAtlas
	}

	return Insights{
		Coach:    coach,
		Title:    InsightsTitle,
		Warmup:   warmup,
		Workout:  workout,
		Recovery: recovery,
	}
}

// titleCase upper-cases every letter that follows a character without case and lower-cases
// the rest, so "push-ups 3x10" becomes "Push-Ups 3X10".
func titleCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	prevCased := false
	for _, r := range s {
		if prevCased {
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(unicode.ToTitle(r))
		}
		prevCased = unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
	}
	return sb.String()
}
