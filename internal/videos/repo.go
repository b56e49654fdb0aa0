package videos

import (
	"context"
	"fmt"

	"github.com/fitvibe/fitvibe/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ListByCategory(ctx context.Context, category string) (_ []Video, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "videos.repo.listByCategory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, title, category, url, created_at
			FROM videos
			WHERE category = $1
			ORDER BY title`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	return scanVideos(rows, span)
}

func (r *Repo) SearchByTitle(ctx context.Context, title string) (_ []Video, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "videos.repo.searchByTitle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, title, category, url, created_at
			FROM videos
			WHERE title ILIKE '%' || $1 || '%'
			ORDER BY title`,
		title,
	)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	return scanVideos(rows, span)
}

func scanVideos(rows pgx.Rows, span trace.Span) ([]Video, error) {
	var videos []Video
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Category, &v.URL, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}

	span.SetStatus(codes.Ok, fmt.Sprintf("listed %d videos", len(videos)))

	return videos, nil
}
