package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentDeletes bounds the in-flight requests of a batch delete.
const maxConcurrentDeletes = 8

func (c *Client) GenerateWorkout(ctx context.Context, form WorkoutForm) (*Workout, error) {
	var workout Workout
	if err := c.sendJSON(ctx, http.MethodPost, "/workouts/generate", form, &workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

func (c *Client) Workouts(ctx context.Context) ([]Workout, error) {
	var workouts []Workout
	if err := c.getJSON(ctx, "/workouts", nil, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (c *Client) WorkoutsMemory(ctx context.Context) ([]WorkoutMemory, error) {
	var memory []WorkoutMemory
	if err := c.getJSON(ctx, "/workouts/memory", nil, &memory); err != nil {
		return nil, err
	}
	return memory, nil
}

func (c *Client) WorkoutInsights(ctx context.Context) (*InsightsResponse, error) {
	var resp InsightsResponse
	if err := c.getJSON(ctx, "/workouts/insights", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteWorkout(ctx context.Context, id int) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/workouts/" + strconv.Itoa(id)}, nil)
}

// DeleteWorkouts deletes the workouts concurrently. It returns the ids that were deleted
// and the combined errors of the ones that were not.
func (c *Client) DeleteWorkouts(ctx context.Context, ids []int) ([]int, error) {
	return c.deleteAll(ctx, ids, c.DeleteWorkout)
}

func (c *Client) GenerateDiet(ctx context.Context, form DietForm) (*Diet, error) {
	var diet Diet
	if err := c.sendJSON(ctx, http.MethodPost, "/diet/generate", form, &diet); err != nil {
		return nil, err
	}
	return &diet, nil
}

func (c *Client) Diets(ctx context.Context) ([]Diet, error) {
	var diets []Diet
	if err := c.getJSON(ctx, "/diets", nil, &diets); err != nil {
		return nil, err
	}
	return diets, nil
}

func (c *Client) DeleteDiet(ctx context.Context, id int) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/diets/" + strconv.Itoa(id)}, nil)
}

func (c *Client) DeleteDiets(ctx context.Context, ids []int) ([]int, error) {
	return c.deleteAll(ctx, ids, c.DeleteDiet)
}

// deleteAll issues one independent request per id. A failed delete does not cancel the others.
func (c *Client) deleteAll(ctx context.Context, ids []int, deleteFunc func(ctx context.Context, id int) error) ([]int, error) {
	var (
		mu      sync.Mutex
		deleted []int
		errs    error
	)

	var g errgroup.Group
	g.SetLimit(maxConcurrentDeletes)
	for _, id := range ids {
		g.Go(func() error {
			err := deleteFunc(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("delete %d: %w", id, err))
				return nil
			}
			deleted = append(deleted, id)
			return nil
		})
	}
	_ = g.Wait()

	return deleted, errs
}

func (c *Client) WorkoutTips(ctx context.Context, regenerate bool) (*Tips, error) {
	var query url.Values
	if regenerate {
		query = url.Values{"regenerate": []string{"true"}}
	}
	var tips Tips
	if err := c.getJSON(ctx, "/workout-tips", query, &tips); err != nil {
		return nil, err
	}
	return &tips, nil
}

func (c *Client) SaveTips(ctx context.Context, tips Tips) (*SavedTips, error) {
	var saved SavedTips
	payload := struct {
		Tips Tips `json:"tips"`
	}{Tips: tips}
	if err := c.sendJSON(ctx, http.MethodPost, "/workout-history/save-tips", payload, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) TipsHistory(ctx context.Context) ([]SavedTips, error) {
	var history []SavedTips
	if err := c.getJSON(ctx, "/workout-tips/history", nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}
