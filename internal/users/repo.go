package users

import (
	"context"
	"errors"
	"time"

	"github.com/fitvibe/fitvibe/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, username, passwordHash string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user := &User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO users (username, password_hash, created_at)
			VALUES ($1, $2, $3)
		RETURNING id;`,
		user.Username, user.PasswordHash, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	return user, nil
}

func (r *Repo) GetByID(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByID")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	var user User
	err = r.db.QueryRow(
		ctx,
		`SELECT id, username, password_hash, created_at, last_quote_generated_at
			FROM users WHERE id = $1;`,
		id,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.LastQuoteGeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByUsername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var user User
	err = r.db.QueryRow(
		ctx,
		`SELECT id, username, password_hash, created_at, last_quote_generated_at
			FROM users WHERE username = $1;`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.LastQuoteGeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Repo) GetMetrics(ctx context.Context, userID int) (_ *Metrics, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getMetrics")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var (
		metrics  Metrics
		rawGoals []string
	)
	err = r.db.QueryRow(
		ctx,
		`SELECT user_id, gender, weight_kg, height_cm, date_of_birth, activity_level, goals
			FROM user_metrics WHERE user_id = $1;`,
		userID,
	).Scan(
		&metrics.UserID, &metrics.Gender, &metrics.WeightKg, &metrics.HeightCm,
		&metrics.DateOfBirth, &metrics.ActivityLevel, &rawGoals,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMetricsNotFound
	}
	if err != nil {
		return nil, err
	}

	metrics.Goals = make([]Goal, len(rawGoals))
	for i, g := range rawGoals {
		metrics.Goals[i] = Goal(g)
	}

	return &metrics, nil
}

func (r *Repo) UpsertMetrics(ctx context.Context, metrics *Metrics) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.upsertMetrics")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", metrics.UserID))

	rawGoals := make([]string, len(metrics.Goals))
	for i, g := range metrics.Goals {
		rawGoals[i] = string(g)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_metrics
				(user_id, gender, weight_kg, height_cm, date_of_birth, activity_level, goals)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id) DO UPDATE SET
				gender = $2, weight_kg = $3, height_cm = $4,
				date_of_birth = $5, activity_level = $6, goals = $7;`,
		metrics.UserID, metrics.Gender, metrics.WeightKg, metrics.HeightCm,
		metrics.DateOfBirth, metrics.ActivityLevel, rawGoals,
	)
	return err
}

// SetLastQuoteGeneratedAt commits the quote timestamp only when the stored
// value still equals the one the caller observed before generating. A lost
// compare-and-set means a concurrent request won the window in between.
func (r *Repo) SetLastQuoteGeneratedAt(
	ctx context.Context,
	userID int,
	generatedAt time.Time,
	observed *time.Time,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.setLastQuoteGeneratedAt")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE users SET last_quote_generated_at = $2
			WHERE id = $1 AND last_quote_generated_at IS NOT DISTINCT FROM $3;`,
		userID, generatedAt, observed,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}
