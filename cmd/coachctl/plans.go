package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2beens/aitrainer/internal/history"
	"github.com/2beens/aitrainer/pkg/client"
)

func addPlanFormFlags(cmd *cobra.Command, form *client.PlanForm) {
	cmd.Flags().StringVar(&form.Name, "name", "", "your name")
	cmd.Flags().IntVar(&form.Age, "age", 0, "age in years")
	cmd.Flags().IntVar(&form.Weight, "weight", 0, "weight")
	cmd.Flags().StringVar(&form.WeightUnit, "weight-unit", "kg", "kg or lbs")
	cmd.Flags().IntVar(&form.Height, "height", 0, "height")
	cmd.Flags().StringVar(&form.HeightUnit, "height-unit", "cm", "cm or inches")
	cmd.Flags().StringVar(&form.BloodGroup, "blood-group", "", "blood group")
	cmd.Flags().StringVar(&form.FitnessGoal, "goal", "", "fitness goal")
	cmd.Flags().StringVar(&form.MedicalCondition, "medical-condition", "", "medical conditions, if any")
}

func addSelectionFlags(cmd *cobra.Command, flags *selectionFlags, goal *string) {
	cmd.Flags().IntSliceVar(&flags.ids, "id", nil, "record id to toggle (repeatable)")
	cmd.Flags().StringSliceVar(&flags.days, "day", nil, `day group to toggle, e.g. "Today" or "Jan 2, 2026" (repeatable)`)
	cmd.Flags().BoolVar(&flags.all, "all", false, "select every listed record")
	cmd.Flags().StringVar(goal, "goal", history.AllGoals, "only consider records with this goal")
}

func (a *app) workoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Generate and browse workout plans",
	}

	var form client.WorkoutForm
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new workout plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlags(cmd, "name", "age", "weight", "height", "goal", "preference"); err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			workout, err := a.api.GenerateWorkout(ctx, form)
			if err != nil {
				return err
			}
			printHeader("Workout #%d for %s", workout.ID, workout.Name)
			fmt.Println(workout.WorkoutPlan)
			return nil
		},
	}
	addPlanFormFlags(generate, &form.PlanForm)
	generate.Flags().StringVar(&form.WorkoutPreference, "preference", "", "workout preference, e.g. gym or home")

	var goal string
	list := &cobra.Command{
		Use:   "list",
		Short: "List past workouts grouped by day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			workouts, err := a.api.Workouts(ctx)
			if err != nil {
				return err
			}
			printGoals(workouts)
			printGrouped(history.FilterByGoal(workouts, goal), time.Now(), func(w client.Workout) string {
				return fmt.Sprintf("#%-5d %-12s %s", w.ID, w.FitnessGoal, firstLine(w.WorkoutPlan, 60))
			})
			return nil
		},
	}
	list.Flags().StringVar(&goal, "goal", history.AllGoals, "only show workouts with this goal")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a past workout plan and its exercises",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id: %s", args[0])
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			memory, err := a.api.WorkoutsMemory(ctx)
			if err != nil {
				return err
			}
			for _, m := range memory {
				if m.ID != id {
					continue
				}
				printHeader("Workout #%d, %s, %s", m.ID, m.FitnessGoal, m.CreatedAt.Local().Format(time.DateTime))
				fmt.Println(m.WorkoutPlan)
				fmt.Printf("\n%d exercises\n", len(m.NormalizedExercises))
				return nil
			}
			return fmt.Errorf("workout %d not found", id)
		},
	}

	insights := &cobra.Command{
		Use:   "insights",
		Short: "Coaching insights over the recent workouts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			resp, err := a.api.WorkoutInsights(ctx)
			if err != nil {
				return err
			}
			printHeader("%s, by coach %s", resp.Insights.Title, resp.Insights.Coach)
			printTipList("warm-up", resp.Insights.Warmup)
			printTipList("workout", resp.Insights.Workout)
			printTipList("recovery", resp.Insights.Recovery)
			return nil
		},
	}

	var sel selectionFlags
	var delGoal string
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete the selected workouts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sel.empty() {
				return fmt.Errorf("select something with --id, --day or --all")
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			workouts, err := a.api.Workouts(ctx)
			if err != nil {
				return err
			}
			return deleteSelected(ctx, history.FilterByGoal(workouts, delGoal), sel, a.api.DeleteWorkouts)
		},
	}
	addSelectionFlags(del, &sel, &delGoal)

	cmd.AddCommand(generate, list, show, insights, del)
	return cmd
}

func (a *app) dietCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diet",
		Short: "Generate and browse diet plans",
	}

	var form client.DietForm
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new diet plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlags(cmd, "name", "age", "weight", "height", "goal", "preference"); err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			diet, err := a.api.GenerateDiet(ctx, form)
			if err != nil {
				return err
			}
			printHeader("Diet #%d for %s", diet.ID, diet.Name)
			fmt.Println(diet.DietPlan)
			return nil
		},
	}
	addPlanFormFlags(generate, &form.PlanForm)
	generate.Flags().StringVar(&form.DietPreference, "preference", "", "diet preference, e.g. vegetarian")

	var goal string
	list := &cobra.Command{
		Use:   "list",
		Short: "List past diets grouped by day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			diets, err := a.api.Diets(ctx)
			if err != nil {
				return err
			}
			printGoals(diets)
			printGrouped(history.FilterByGoal(diets, goal), time.Now(), func(d client.Diet) string {
				return fmt.Sprintf("#%-5d %-12s %s", d.ID, d.FitnessGoal, firstLine(d.DietPlan, 60))
			})
			return nil
		},
	}
	list.Flags().StringVar(&goal, "goal", history.AllGoals, "only show diets with this goal")

	var sel selectionFlags
	var delGoal string
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete the selected diets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sel.empty() {
				return fmt.Errorf("select something with --id, --day or --all")
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			diets, err := a.api.Diets(ctx)
			if err != nil {
				return err
			}
			return deleteSelected(ctx, history.FilterByGoal(diets, delGoal), sel, a.api.DeleteDiets)
		},
	}
	addSelectionFlags(del, &sel, &delGoal)

	cmd.AddCommand(generate, list, del)
	return cmd
}

func deleteSelected[T history.Entry](
	ctx context.Context,
	entries []T,
	sel selectionFlags,
	deleteFunc func(ctx context.Context, ids []int) ([]int, error),
) error {
	ids, err := selectEntries(entries, sel, time.Now())
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		color.Yellow("nothing selected")
		return nil
	}

	deleted, err := deleteFunc(ctx, ids)
	if len(deleted) > 0 {
		printOK("deleted %d of %d", len(deleted), len(ids))
	}
	remaining := history.Without(entries, deleted)
	fmt.Printf("%d records left in this listing\n", len(remaining))
	return err
}
