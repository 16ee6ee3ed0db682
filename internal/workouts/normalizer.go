package workouts

import "strings"

// Exercise is one line of a generated plan. Plans are free text, so sets, reps
// and rest are not extracted and stay null.
type Exercise struct {
	Name string  `json:"name"`
	Sets *int    `json:"sets"`
	Reps *int    `json:"reps"`
	Rest *string `json:"rest"`
}

// NormalizePlan turns every non-blank line of the plan into an exercise.
func NormalizePlan(plan string) []Exercise {
	exercises := make([]Exercise, 0)
	for _, line := range strings.Split(plan, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		exercises = append(exercises, Exercise{Name: line})
	}
	return exercises
}
