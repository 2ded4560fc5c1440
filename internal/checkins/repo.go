package checkins

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type ListParams struct {
	UserID int
	Page   int
	Size   int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, checkin Checkin) (_ *Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", checkin.UserID))

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO weekly_checkin
				(user_id, checkin_date, weight_lb, photo_ids, notes,
				 raw_summary, parsed_summary, comparison_source, comparison_photo_count,
				 macro_update_suggested, cardio_update_suggested, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id;`,
		checkin.UserID, checkin.Date, checkin.WeightLb, checkin.PhotoIDs, checkin.Notes,
		checkin.RawSummary, checkin.ParsedSummary,
		checkin.ComparisonSource, checkin.ComparisonPhotoCount,
		checkin.MacroUpdateSuggested, checkin.CardioUpdateSuggested,
		checkin.CreatedAt,
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

	span.SetAttributes(attribute.Int("checkin.id", id))

	checkin.ID = id
	return &checkin, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		checkinSelectColumns+`WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	checkins, err := rows2checkins(rows)
	if err != nil {
		return nil, err
	}

	if len(checkins) != 1 {
		return nil, ErrCheckinNotFound
	}

	return &checkins[0], nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Checkin, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID))
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.CheckinsCount(ctx, params)
	if err != nil {
		return nil, -1, err
	}

	if countAll <= limit {
		limit = countAll
		offset = 0
	}

	if countAll-offset < limit {
		offset = countAll - limit
	}

	span.SetAttributes(attribute.Int("count_all", countAll))
	span.SetAttributes(attribute.Int("limit", limit))
	span.SetAttributes(attribute.Int("offset", offset))

	rows, err := r.db.Query(
		ctx,
		checkinSelectColumns+`
			WHERE user_id = $1
			ORDER BY checkin_date DESC, id DESC
			LIMIT $2
			OFFSET $3;`,
		params.UserID, limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	checkins, err := rows2checkins(rows)
	if err != nil {
		return nil, -1, err
	}
	return checkins, countAll, nil
}

func (r *Repo) CheckinsCount(ctx context.Context, params ListParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT COUNT(*) FROM weekly_checkin
			WHERE user_id = $1;
	`,
		params.UserID,
	)
	if err != nil {
		return -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return -1, err
	}

	if rows.Next() {
		var count int
		if err := rows.Scan(&count); err == nil {
			return count, nil
		}
	}

	return -1, errors.New("unexpected error, failed to get check-ins count")
}

// Previous returns the newest check-in of the user dated strictly before the
// given date, or ErrCheckinNotFound when there is none. Recap assembly uses
// it for the week-over-week weight delta.
func (r *Repo) Previous(ctx context.Context, userID int, before time.Time) (_ *Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.previous")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		checkinSelectColumns+`
			WHERE user_id = $1
			AND checkin_date < $2
			ORDER BY checkin_date DESC, id DESC
			LIMIT 1;`,
		userID, before,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	checkins, err := rows2checkins(rows)
	if err != nil {
		return nil, err
	}

	if len(checkins) != 1 {
		return nil, ErrCheckinNotFound
	}

	return &checkins[0], nil
}

func (r *Repo) AttachSummary(ctx context.Context, id int, rawSummary string, parsedSummary json.RawMessage) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.attachSummary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE weekly_checkin SET
				raw_summary = $1, parsed_summary = $2
			WHERE id = $3;`,
		rawSummary, parsedSummary, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCheckinNotFound
	}
	return nil
}

func (r *Repo) AddDaily(ctx context.Context, daily DailyCheckin) (_ *DailyCheckin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.addDaily")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", daily.UserID))

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO daily_checkin
				(user_id, hit_macros, training_status, sleep_quality, coach_response, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		daily.UserID, daily.HitMacros, daily.Training, daily.Sleep,
		daily.CoachResponse, daily.CreatedAt,
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

	daily.ID = id
	return &daily, nil
}

// DailyDays returns the creation timestamps of the user's daily check-ins
// since the given moment, newest first. The streak calculator buckets them
// into local days.
func (r *Repo) DailyDays(ctx context.Context, userID int, since time.Time) (_ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.dailyDays")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT created_at FROM daily_checkin
			WHERE user_id = $1
			AND created_at >= $2
			ORDER BY created_at DESC;`,
		userID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var days []time.Time
	for rows.Next() {
		var createdAt time.Time
		if err := rows.Scan(&createdAt); err != nil {
			return nil, err
		}
		days = append(days, createdAt)
	}
	return days, nil
}

// CheckinUserIDs returns the ids of all users with at least one check-in.
func (r *Repo) CheckinUserIDs(ctx context.Context) (_ []int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.userIDs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT DISTINCT user_id FROM weekly_checkin ORDER BY user_id;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var userIDs []int
	for rows.Next() {
		var userID int
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}
	return userIDs, nil
}

// CreatedSince returns the user's check-ins created after the given moment,
// oldest first. A nil since returns all of them. The Drive backup uses it to
// pick up rows added after the newest backup file.
func (r *Repo) CreatedSince(ctx context.Context, userID int, since *time.Time) (_ []Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkins.createdSince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	if since != nil {
		span.SetAttributes(attribute.String("since", since.String()))
	} else {
		span.SetAttributes(attribute.String("since", "nil"))
	}

	var rows pgx.Rows
	if since != nil {
		rows, err = r.db.Query(
			ctx,
			checkinSelectColumns+`
				WHERE user_id = $1
				AND created_at > $2
				ORDER BY created_at ASC, id ASC;`,
			userID, since,
		)
	} else {
		rows, err = r.db.Query(
			ctx,
			checkinSelectColumns+`
				WHERE user_id = $1
				ORDER BY created_at ASC, id ASC;`,
			userID,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rows2checkins(rows)
}

const checkinSelectColumns = `
	SELECT
		id, user_id, checkin_date, weight_lb, photo_ids, notes,
		raw_summary, parsed_summary, comparison_source, comparison_photo_count,
		macro_update_suggested, cardio_update_suggested, created_at
	FROM weekly_checkin
	`

func rows2checkins(rows pgx.Rows) ([]Checkin, error) {
	var checkins []Checkin
	for rows.Next() {
		var checkin Checkin
		if err := rows.Scan(
			&checkin.ID, &checkin.UserID, &checkin.Date, &checkin.WeightLb,
			&checkin.PhotoIDs, &checkin.Notes,
			&checkin.RawSummary, &checkin.ParsedSummary,
			&checkin.ComparisonSource, &checkin.ComparisonPhotoCount,
			&checkin.MacroUpdateSuggested, &checkin.CardioUpdateSuggested,
			&checkin.CreatedAt,
		); err != nil {
			return nil, err
		}
		checkins = append(checkins, checkin)
	}
	return checkins, nil
}
