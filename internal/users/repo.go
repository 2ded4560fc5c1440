package users

import (
	"context"
	"errors"

	"github.com/2beens/fitcoach/internal/checkins/recap"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrUserNotFound = errors.New("user not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", user.Username))

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO app_user
				(username, password_hash, display_name, goal, age, sex, height_cm, weight_kg,
				 timezone, training_days, gym_access, equipment, experience,
				 macro_calories, macro_protein, macro_carbs, macro_fat, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			RETURNING id;`,
		user.Username, user.PasswordHash, user.DisplayName, user.Goal, user.Age, user.Sex,
		user.HeightCm, user.WeightKg, user.Timezone, user.TrainingDays, user.GymAccess,
		user.Equipment, user.Experience,
		user.Macros.Calories, user.Macros.Protein, user.Macros.Carbs, user.Macros.Fat,
		user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("user.id", id))

	user.ID = id
	return &user, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		userSelectColumns+`WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	users, err := rows2users(rows)
	if err != nil {
		return nil, err
	}

	if len(users) != 1 {
		return nil, ErrUserNotFound
	}

	return &users[0], nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByUsername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", username))

	rows, err := r.db.Query(
		ctx,
		userSelectColumns+`WHERE username = $1;`,
		username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	users, err := rows2users(rows)
	if err != nil {
		return nil, err
	}

	if len(users) != 1 {
		return nil, ErrUserNotFound
	}

	return &users[0], nil
}

// GetCredentials is the narrow lookup the auth layer uses on login.
func (r *Repo) GetCredentials(ctx context.Context, username string) (userID int, passwordHash string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getCredentials")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`SELECT id, password_hash FROM app_user WHERE username = $1;`,
		username,
	).Scan(&userID, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", ErrUserNotFound
		}
		return 0, "", err
	}

	return userID, passwordHash, nil
}

func (r *Repo) Update(ctx context.Context, user *User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", user.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE app_user SET
				display_name = $1, goal = $2, age = $3, sex = $4, height_cm = $5, weight_kg = $6,
				timezone = $7, training_days = $8, gym_access = $9, equipment = $10, experience = $11,
				macro_calories = $12, macro_protein = $13, macro_carbs = $14, macro_fat = $15
			WHERE id = $16;`,
		user.DisplayName, user.Goal, user.Age, user.Sex, user.HeightCm, user.WeightKg,
		user.Timezone, user.TrainingDays, user.GymAccess, user.Equipment, user.Experience,
		user.Macros.Calories, user.Macros.Protein, user.Macros.Carbs, user.Macros.Fat,
		user.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

const userSelectColumns = `
	SELECT
		id, username, password_hash, display_name, goal, age, sex, height_cm, weight_kg,
		timezone, training_days, gym_access, equipment, experience,
		macro_calories, macro_protein, macro_carbs, macro_fat, created_at
	FROM app_user
	`

func rows2users(rows pgx.Rows) ([]User, error) {
	var users []User
	for rows.Next() {
		var user User
		var goal string
		if err := rows.Scan(
			&user.ID, &user.Username, &user.PasswordHash, &user.DisplayName, &goal,
			&user.Age, &user.Sex, &user.HeightCm, &user.WeightKg,
			&user.Timezone, &user.TrainingDays, &user.GymAccess, &user.Equipment, &user.Experience,
			&user.Macros.Calories, &user.Macros.Protein, &user.Macros.Carbs, &user.Macros.Fat,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		user.Goal = recap.Goal(goal)
		users = append(users, user)
	}
	return users, nil
}
