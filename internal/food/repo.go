package food

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitvibe/fitvibe/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Add(ctx context.Context, food Food) (_ *Food, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "food.repo.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`INSERT INTO food (user_id, name, type, category, calories, protein, carbs, fats, sodium, sugar, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id`,
		food.UserID, food.Name, food.Type, food.Category,
		food.Macros.Calories, food.Macros.Protein, food.Macros.Carbs,
		food.Macros.Fats, food.Macros.Sodium, food.Macros.Sugar,
		food.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, errors.New("unexpected error, food id not returned")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	food.ID = id
	return &food, nil
}

func (r *Repo) ListForUser(ctx context.Context, userID int) (_ []Food, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "food.repo.listForUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, type, category, calories, protein, carbs, fats, sodium, sugar, created_at
			FROM food
			WHERE user_id = $1
			ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query food: %w", err)
	}
	defer rows.Close()

	var foods []Food
	for rows.Next() {
		var f Food
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.Name, &f.Type, &f.Category,
			&f.Macros.Calories, &f.Macros.Protein, &f.Macros.Carbs,
			&f.Macros.Fats, &f.Macros.Sodium, &f.Macros.Sugar,
			&f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}

	span.SetStatus(codes.Ok, fmt.Sprintf("listed %d food entries", len(foods)))

	return foods, nil
}

func (r *Repo) Delete(ctx context.Context, id, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "food.repo.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	result, err := r.db.Exec(ctx,
		`DELETE FROM food WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrFoodNotFound
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrFoodNotFound
	}

	return nil
}
