//go:build integration

package test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/2beens/aitrainer/internal/history"
	"github.com/2beens/aitrainer/pkg/client"
)

func testPlanForm(goal string) client.PlanForm {
	return client.PlanForm{
		Name:             gofakeit.Name(),
		Age:              30,
		Weight:           70,
		WeightUnit:       "kg",
		Height:           175,
		HeightUnit:       "cm",
		BloodGroup:       "A+",
		FitnessGoal:      goal,
		MedicalCondition: "none",
	}
}

func (s *IntegrationTestSuite) TestWorkoutsFlow() {
	ctx := context.Background()
	c := s.newLoggedInClient(ctx, strings.ToLower(gofakeit.Email()))

	// tips need a workout first
	_, err := c.WorkoutTips(ctx, false)
	s.True(client.IsNotFound(err), "%v", err)

	insightsResp, err := c.WorkoutInsights(ctx)
	s.Require().NoError(err)
	s.Equal("Aria", insightsResp.Insights.Coach)
	s.Equal([]string{"Log more workouts to unlock personalized insights."}, insightsResp.Insights.Warmup)

	var ids []int
	for _, goal := range []string{"Weight loss", "Muscle gain"} {
		w, err := c.GenerateWorkout(ctx, client.WorkoutForm{
			PlanForm:          testPlanForm(goal),
			WorkoutPreference: "gym",
		})
		s.Require().NoError(err)
		s.Equal(fakeWorkoutPlan, w.WorkoutPlan)
		s.Equal(goal, w.FitnessGoal)
		ids = append(ids, w.ID)
	}

	workouts, err := c.Workouts(ctx)
	s.Require().NoError(err)
	s.Require().Len(workouts, 2)
	// newest first
	s.Equal(ids[1], workouts[0].ID)

	groups := history.GroupByDay(workouts, time.Now())
	s.Require().Len(groups, 1)
	s.Equal("Today", groups[0].Label)
	s.Equal([]string{history.AllGoals, "Muscle gain", "Weight loss"}, history.Goals(workouts))

	memory, err := c.WorkoutsMemory(ctx)
	s.Require().NoError(err)
	s.Require().Len(memory, 2)
	s.Require().Len(memory[0].NormalizedExercises, 3)
	s.Equal("Squats 3x10", memory[0].NormalizedExercises[0].Name)
	s.Nil(memory[0].NormalizedExercises[0].Sets)

	insightsResp, err = c.WorkoutInsights(ctx)
	s.Require().NoError(err)
	s.True(insightsResp.Saved)
	s.Equal("AI Training Insight", insightsResp.Insights.Title)
	s.Contains(insightsResp.Insights.Workout, "Squats 3X10 shows consistent training. Progressive overload is recommended.")

	tips, err := c.WorkoutTips(ctx, false)
	s.Require().NoError(err)
	s.Equal([]string{"w1", "w2", "w3"}, tips.Warmup)
	s.Equal([]string{"x1", "x2"}, tips.Workout)
	s.Len(tips.Recovery, 3)

	cached, err := c.WorkoutTips(ctx, false)
	s.Require().NoError(err)
	s.True(tips.CreatedAt.Equal(cached.CreatedAt))

	saved, err := c.SaveTips(ctx, *tips)
	s.Require().NoError(err)
	s.Require().NotNil(saved.WorkoutID)
	s.Equal(ids[1], *saved.WorkoutID)

	tipsHistory, err := c.TipsHistory(ctx)
	s.Require().NoError(err)
	s.Require().Len(tipsHistory, 1)
	var savedTips client.Tips
	s.Require().NoError(json.Unmarshal(tipsHistory[0].Tips, &savedTips))
	s.Equal(tips.Warmup, savedTips.Warmup)

	deleted, err := c.DeleteWorkouts(ctx, []int{ids[0], ids[1], 987654})
	slices.Sort(deleted)
	s.Equal([]int{ids[0], ids[1]}, deleted)
	s.Require().Error(err)
	s.True(client.IsNotFound(err), "%v", err)

	workouts, err = c.Workouts(ctx)
	s.Require().NoError(err)
	s.Empty(workouts)
}

func (s *IntegrationTestSuite) TestWorkoutsAreScopedToOwner() {
	ctx := context.Background()
	owner := s.newLoggedInClient(ctx, strings.ToLower(gofakeit.Email()))
	stranger := s.newLoggedInClient(ctx, strings.ToLower(gofakeit.Email()))

	w, err := owner.GenerateWorkout(ctx, client.WorkoutForm{
		PlanForm:          testPlanForm("Endurance"),
		WorkoutPreference: "home",
	})
	s.Require().NoError(err)

	others, err := stranger.Workouts(ctx)
	s.Require().NoError(err)
	s.Empty(others)

	err = stranger.DeleteWorkout(ctx, w.ID)
	s.True(client.IsNotFound(err), "%v", err)

	s.NoError(owner.DeleteWorkout(ctx, w.ID))
}

func (s *IntegrationTestSuite) TestDietsFlow() {
	ctx := context.Background()
	c := s.newLoggedInClient(ctx, strings.ToLower(gofakeit.Email()))

	_, err := c.GenerateDiet(ctx, client.DietForm{PlanForm: testPlanForm("Weight loss")})
	var apiErr *client.APIError
	s.Require().True(errors.As(err, &apiErr), "%v", err)
	s.Equal(http.StatusBadRequest, apiErr.StatusCode)

	var ids []int
	for range 3 {
		d, err := c.GenerateDiet(ctx, client.DietForm{
			PlanForm:       testPlanForm("Weight loss"),
			DietPreference: "vegetarian",
		})
		s.Require().NoError(err)
		s.Equal(fakeDietPlan, d.DietPlan)
		ids = append(ids, d.ID)
	}

	diets, err := c.Diets(ctx)
	s.Require().NoError(err)
	s.Len(diets, 3)

	deleted, err := c.DeleteDiets(ctx, ids[:2])
	s.Require().NoError(err)
	s.Len(deleted, 2)

	diets, err = c.Diets(ctx)
	s.Require().NoError(err)
	s.Require().Len(diets, 1)
	s.Equal(ids[2], diets[0].ID)
}
