package progress

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrPhotoNotFound = errors.New("photo not found")

type ListPhotosParams struct {
	UserID   int
	Type     string
	Category string
	From     *time.Time
	To       *time.Time
	Limit    int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, photo Photo) (_ *Photo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", photo.UserID))
	span.SetAttributes(attribute.String("photo.type", photo.Type))

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO progress_photo
				(user_id, filename, path, content_type, size, photo_type, tags, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id;`,
		photo.UserID, photo.Filename, photo.Path, photo.ContentType,
		photo.Size, photo.Type, photo.Tags, photo.CreatedAt,
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

	photo.ID = id
	photo.decorate()
	return &photo, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Photo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		photoSelectColumns+`WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	photos, err := rows2photos(rows)
	if err != nil {
		return nil, err
	}

	if len(photos) != 1 {
		return nil, ErrPhotoNotFound
	}

	return &photos[0], nil
}

func (r *Repo) ListAll(ctx context.Context, params ListPhotosParams) (_ []Photo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID))
	span.SetAttributes(attribute.String("photo.type", params.Type))
	span.SetAttributes(attribute.String("photo.category", params.Category))

	categoryTag := ""
	if params.Category != "" {
		categoryTag = categoryTagPrefix + params.Category
	}

	rows, err := r.db.Query(
		ctx,
		photoSelectColumns+`
			WHERE user_id = $1
			AND ($2::text = '' OR photo_type = $2)
			AND ($3::text = '' OR $3 = ANY(tags))
			AND ($4::timestamptz IS NULL OR created_at >= $4)
			AND ($5::timestamptz IS NULL OR created_at <= $5)
		ORDER BY created_at DESC
		LIMIT NULLIF($6, 0);`,
		params.UserID, params.Type, categoryTag,
		params.From, params.To,
		params.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rows2photos(rows)
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM progress_photo WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

const photoSelectColumns = `
	SELECT
		id, user_id, filename, path, content_type, size, photo_type, tags, created_at
	FROM progress_photo
	`

func rows2photos(rows pgx.Rows) ([]Photo, error) {
	var photos []Photo
	for rows.Next() {
		var photo Photo
		if err := rows.Scan(
			&photo.ID, &photo.UserID, &photo.Filename, &photo.Path,
			&photo.ContentType, &photo.Size, &photo.Type, &photo.Tags,
			&photo.CreatedAt,
		); err != nil {
			return nil, err
		}
		photo.decorate()
		photos = append(photos, photo)
	}
	return photos, nil
}
