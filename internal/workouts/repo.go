package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aitrainer/internal/telemetry/tracing"
)

var ErrWorkoutNotFound = errors.New("workout not found")

const workoutColumns = `
	id, user_id, name, age, weight, weight_unit, height, height_unit, blood_group,
	fitness_goal, medical_condition, workout_preference, COALESCE(workout_plan, ''), created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanWorkout(row pgx.Row) (*Workout, error) {
	w := &Workout{}
	err := row.Scan(
		&w.ID, &w.UserID, &w.Name, &w.Age, &w.Weight, &w.WeightUnit, &w.Height, &w.HeightUnit, &w.BloodGroup,
		&w.FitnessGoal, &w.MedicalCondition, &w.WorkoutPreference, &w.WorkoutPlan, &w.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx, `
		INSERT INTO workouts (
			user_id, name, age, weight, weight_unit, height, height_unit, blood_group,
			fitness_goal, medical_condition, workout_preference, workout_plan
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`,
		workout.UserID, workout.Name, workout.Age, workout.Weight, workout.WeightUnit,
		workout.Height, workout.HeightUnit, workout.BloodGroup, workout.FitnessGoal,
		workout.MedicalCondition, workout.WorkoutPreference, workout.WorkoutPlan,
	).Scan(&workout.ID, &workout.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

// ListByUser returns the user's workouts, newest first. A limit <= 0 returns all of them.
func (r *Repo) ListByUser(ctx context.Context, userID, limit int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("limit", limit))

	var limitArg *int
	if limit > 0 {
		limitArg = &limit
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limitArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]Workout, 0)
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}

func (r *Repo) Latest(ctx context.Context, userID int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	w, err := scanWorkout(r.db.QueryRow(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Delete removes the workout only if it belongs to the given user.
func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("workout.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// ListAll returns every stored workout, oldest first. Used by the backup export.
func (r *Repo) ListAll(ctx context.Context) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT `+workoutColumns+` FROM workouts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]Workout, 0)
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}

type InsightsRepo struct {
	db *pgxpool.Pool
}

func NewInsightsRepo(db *pgxpool.Pool) *InsightsRepo {
	return &InsightsRepo{
		db: db,
	}
}

// Add stores the computed insights, source tells what they were computed from.
func (r *InsightsRepo) Add(ctx context.Context, userID int, source string, insights Insights) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.insights.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	insightsJson, err := json.Marshal(insights)
	if err != nil {
		return 0, fmt.Errorf("marshal insights: %w", err)
	}

	var id int
	err = r.db.QueryRow(ctx, `
		INSERT INTO ai_insights (user_id, source, insights)
		VALUES ($1, $2, $3)
		RETURNING id
	`, userID, source, insightsJson).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}
