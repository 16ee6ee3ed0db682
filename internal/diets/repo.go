package diets

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aitrainer/internal/telemetry/tracing"
)

var ErrDietNotFound = errors.New("diet not found")

const dietColumns = `
	id, user_id, name, age, weight, weight_unit, height, height_unit, blood_group,
	fitness_goal, medical_condition, diet_preference, COALESCE(diet_plan, ''), created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, diet Diet) (_ *Diet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.diets.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx, `
		INSERT INTO diets (
			user_id, name, age, weight, weight_unit, height, height_unit, blood_group,
			fitness_goal, medical_condition, diet_preference, diet_plan
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`,
		diet.UserID, diet.Name, diet.Age, diet.Weight, diet.WeightUnit,
		diet.Height, diet.HeightUnit, diet.BloodGroup, diet.FitnessGoal,
		diet.MedicalCondition, diet.DietPreference, diet.DietPlan,
	).Scan(&diet.ID, &diet.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &diet, nil
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]Diet, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	diets := make([]Diet, 0)
	for rows.Next() {
		var d Diet
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.Name, &d.Age, &d.Weight, &d.WeightUnit, &d.Height, &d.HeightUnit, &d.BloodGroup,
			&d.FitnessGoal, &d.MedicalCondition, &d.DietPreference, &d.DietPlan, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan diet: %w", err)
		}
		diets = append(diets, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return diets, nil
}

// ListByUser returns the user's diets, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID int) (_ []Diet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.diets.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	return r.list(ctx, `
		SELECT `+dietColumns+`
		FROM diets
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
}

func (r *Repo) ListAll(ctx context.Context) (_ []Diet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.diets.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.list(ctx, `SELECT `+dietColumns+` FROM diets ORDER BY id`)
}

func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.diets.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("diet.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM diets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDietNotFound
	}
	return nil
}

