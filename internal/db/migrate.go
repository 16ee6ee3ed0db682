package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// schema is applied on every startup, so every statement must be idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            SERIAL PRIMARY KEY,
    email         TEXT NOT NULL,
    password      TEXT NOT NULL,
    first_name    TEXT,
    last_name     TEXT,
    username      TEXT,
    phone         TEXT,
    address       TEXT,
    zip_code      TEXT,
    country       TEXT,
    profile_image TEXT,
    role          TEXT NOT NULL DEFAULT 'user',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT users_email_key UNIQUE (email),
    CONSTRAINT users_username_key UNIQUE (username)
);

CREATE TABLE IF NOT EXISTS workouts (
    id                 SERIAL PRIMARY KEY,
    user_id            INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name               TEXT NOT NULL,
    age                INTEGER NOT NULL,
    weight             INTEGER NOT NULL,
    weight_unit        TEXT NOT NULL,
    height             INTEGER NOT NULL,
    height_unit        TEXT NOT NULL,
    blood_group        TEXT NOT NULL,
    fitness_goal       TEXT NOT NULL,
    medical_condition  TEXT NOT NULL,
    workout_preference TEXT NOT NULL,
    workout_plan       TEXT,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS diets (
    id                SERIAL PRIMARY KEY,
    user_id           INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name              TEXT NOT NULL,
    age               INTEGER NOT NULL,
    weight            INTEGER NOT NULL,
    weight_unit       TEXT NOT NULL,
    height            INTEGER NOT NULL,
    height_unit       TEXT NOT NULL,
    blood_group       TEXT NOT NULL,
    fitness_goal      TEXT NOT NULL,
    medical_condition TEXT NOT NULL,
    diet_preference   TEXT NOT NULL,
    diet_plan         TEXT,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS workout_tip_history (
    id         SERIAL PRIMARY KEY,
    user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    workout_id INTEGER REFERENCES workouts(id) ON DELETE SET NULL,
    tips       JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ai_insights (
    id         SERIAL PRIMARY KEY,
    user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    source     TEXT NOT NULL,
    insights   JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_workouts_user_created ON workouts(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_diets_user_created ON diets(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_tip_history_user_created ON workout_tip_history(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_ai_insights_user ON ai_insights(user_id);
`

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Migrate creates the tables and indexes if they are missing.
func Migrate(ctx context.Context, db execer) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
