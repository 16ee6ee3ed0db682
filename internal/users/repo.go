package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aitrainer/internal/auth"
	"github.com/2beens/aitrainer/internal/telemetry/tracing"
	"github.com/2beens/aitrainer/pkg"
)

const userColumns = `id, email, password, first_name, last_name, username, phone,
	address, zip_code, country, profile_image, role, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Username, &u.Phone,
		&u.Address, &u.ZipCode, &u.Country, &u.ProfileImage, &u.Role, &u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// mapUniqueViolation turns the unique constraint errors into the user errors.
func mapUniqueViolation(err error) error {
	constraint, ok := pkg.UniqueViolationConstraint(err)
	if !ok {
		return err
	}
	switch constraint {
	case "users_email_key":
		return ErrEmailTaken
	case "users_username_key":
		return ErrUsernameTaken
	default:
		return err
	}
}

func (r *Repo) Add(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	created, err := scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (
			email, password, first_name, last_name, username, phone,
			address, zip_code, country, profile_image
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+userColumns,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Username, user.Phone,
		user.Address, user.ZipCode, user.Country, user.ProfileImage,
	))
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return created, nil
}

func (r *Repo) ByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.by_email")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *Repo) ByID(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.by_id")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *Repo) Update(ctx context.Context, id int, update UserUpdate) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	updated, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			username = COALESCE($4, username),
			phone = COALESCE($5, phone),
			address = COALESCE($6, address),
			zip_code = COALESCE($7, zip_code),
			country = COALESCE($8, country),
			profile_image = COALESCE($9, profile_image)
		WHERE id = $1
		RETURNING `+userColumns,
		id, update.FirstName, update.LastName, update.Username, update.Phone,
		update.Address, update.ZipCode, update.Country, update.ProfileImage,
	))
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return updated, nil
}

func (r *Repo) UpdatePassword(ctx context.Context, id int, passwordHash string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update_password")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `UPDATE users SET password = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) SetProfileImage(ctx context.Context, id int, imageURL string) (*User, error) {
	return r.Update(ctx, id, UserUpdate{ProfileImage: &imageURL})
}

func (r *Repo) List(ctx context.Context) (_ []User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// IdentityByEmail resolves the access token subject into the caller identity.
func (r *Repo) IdentityByEmail(ctx context.Context, email string) (*auth.Identity, error) {
	var identity auth.Identity
	err := r.db.QueryRow(ctx, `SELECT id, email, role FROM users WHERE email = $1`, email).
		Scan(&identity.UserID, &identity.Email, &identity.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, auth.ErrUnknownIdentity
	}
	if err != nil {
		return nil, err
	}
	return &identity, nil
}
