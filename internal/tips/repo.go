package tips

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aitrainer/internal/telemetry/tracing"
)

type HistoryRepo struct {
	db *pgxpool.Pool
}

func NewHistoryRepo(db *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{
		db: db,
	}
}

func (r *HistoryRepo) Add(ctx context.Context, userID int, workoutID *int, tips json.RawMessage) (_ *TipHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tips.history.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	record := &TipHistory{
		UserID:    userID,
		WorkoutID: workoutID,
		Tips:      tips,
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO workout_tip_history (user_id, workout_id, tips)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, userID, workoutID, []byte(tips)).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListByUser returns the saved tips, newest first.
func (r *HistoryRepo) ListByUser(ctx context.Context, userID int) (_ []TipHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tips.history.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, workout_id, tips, created_at
		FROM workout_tip_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]TipHistory, 0)
	for rows.Next() {
		var h TipHistory
		var tipsBytes []byte
		if err := rows.Scan(&h.ID, &h.UserID, &h.WorkoutID, &tipsBytes, &h.CreatedAt); err != nil {
			return nil, err
		}
		h.Tips = tipsBytes
		history = append(history, h)
	}
	return history, rows.Err()
}
