package tips

import (
	"encoding/json"
	"errors"
	"time"
)

const maxTipsPerList = 3

var (
	ErrNoWorkout   = errors.New("no workout found")
	ErrInvalidTips = errors.New("tips must be a JSON object")
)

type TipsResponse struct {
	Warmup    []string  `json:"warmup"`
	Workout   []string  `json:"workout"`
	Recovery  []string  `json:"recovery"`
	CreatedAt time.Time `json:"created_at"`
}

type SaveTipsRequest struct {
	Tips json.RawMessage `json:"tips"`
}

// TipHistory is a set of tips the user chose to keep. WorkoutID is the workout that was
// the latest one when the tips were saved, nil if there was none or it was deleted since.
type TipHistory struct {
	ID        int             `json:"id"`
	UserID    int             `json:"user_id"`
	WorkoutID *int            `json:"workout_id"`
	Tips      json.RawMessage `json:"tips"`
	CreatedAt time.Time       `json:"created_at"`
}

func firstN(list []string, n int) []string {
	if list == nil {
		return []string{}
	}
	if len(list) > n {
		return list[:n]
	}
	return list
}

// validTipsObject reports whether raw holds a JSON object.
func validTipsObject(raw json.RawMessage) bool {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	return obj != nil
}
