package nutrition

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type ListParams struct {
	UserID   int
	MealType MealType
	Page     int
	Size     int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, mealLog MealLog) (_ *MealLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", mealLog.UserID))
	span.SetAttributes(attribute.String("meal.type", string(mealLog.MealType)))

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO meal_log
				(user_id, meal_type, name, calories, protein, carbs, fat, logged_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id;`,
		mealLog.UserID, mealLog.MealType, mealLog.Name,
		mealLog.Calories, mealLog.Protein, mealLog.Carbs, mealLog.Fat,
		mealLog.LoggedAt,
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

	mealLog.ID = id
	return &mealLog, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []MealLog, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID))
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))
	span.SetAttributes(attribute.String("meal.type", string(params.MealType)))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.MealLogsCount(ctx, params)
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
		`
			SELECT
				id, user_id, meal_type, name, calories, protein, carbs, fat, logged_at
			FROM meal_log
				WHERE user_id = $1
				AND ($2::text = '' OR meal_type = $2)
			ORDER BY logged_at DESC
			LIMIT $3
			OFFSET $4;`,
		params.UserID, params.MealType,
		limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	mealLogs, err := rows2mealLogs(rows)
	if err != nil {
		return nil, -1, err
	}
	return mealLogs, countAll, nil
}

func (r *Repo) MealLogsCount(ctx context.Context, params ListParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT COUNT(*) FROM meal_log
			WHERE user_id = $1
			AND ($2::text = '' OR meal_type = $2);
	`,
		params.UserID, params.MealType,
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

	return -1, errors.New("unexpected error, failed to get meal logs count")
}

// DayTotals sums the macros of all meals a user logged in [dayStart, dayEnd).
// Callers compute the bounds in the user's timezone.
func (r *Repo) DayTotals(ctx context.Context, userID int, dayStart, dayEnd time.Time) (_ *DayTotals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.dayTotals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.String("day.start", dayStart.String()))

	var totals DayTotals
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
				COALESCE(SUM(calories), 0),
				COALESCE(SUM(protein), 0),
				COALESCE(SUM(carbs), 0),
				COALESCE(SUM(fat), 0),
				COUNT(*)
			FROM meal_log
				WHERE user_id = $1
				AND logged_at >= $2 AND logged_at < $3;`,
		userID, dayStart, dayEnd,
	).Scan(&totals.Calories, &totals.Protein, &totals.Carbs, &totals.Fat, &totals.Meals)
	if err != nil {
		return nil, err
	}

	return &totals, nil
}

// DayTotalsRow is one local-day bucket out of DayTotalsRange.
type DayTotalsRow struct {
	Day string
	DayTotals
}

// DayTotalsRange buckets a user's meals into local days over [from, to)
// and sums each bucket. Days without meals produce no row.
func (r *Repo) DayTotalsRange(ctx context.Context, userID int, from, to time.Time, timezone string) (_ []DayTotalsRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.dayTotalsRange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.String("timezone", timezone))

	if timezone == "" {
		timezone = "UTC"
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				to_char(logged_at AT TIME ZONE $4, 'YYYY-MM-DD') AS day,
				COALESCE(SUM(calories), 0),
				COALESCE(SUM(protein), 0),
				COALESCE(SUM(carbs), 0),
				COALESCE(SUM(fat), 0),
				COUNT(*)
			FROM meal_log
				WHERE user_id = $1
				AND logged_at >= $2 AND logged_at < $3
			GROUP BY day
			ORDER BY day;`,
		userID, from, to, timezone,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var totals []DayTotalsRow
	for rows.Next() {
		var row DayTotalsRow
		if err := rows.Scan(
			&row.Day, &row.Calories, &row.Protein, &row.Carbs, &row.Fat, &row.Meals,
		); err != nil {
			return nil, err
		}
		totals = append(totals, row)
	}
	return totals, nil
}

func rows2mealLogs(rows pgx.Rows) ([]MealLog, error) {
	var mealLogs []MealLog
	for rows.Next() {
		var mealLog MealLog
		var mealType string
		if err := rows.Scan(
			&mealLog.ID, &mealLog.UserID, &mealType, &mealLog.Name,
			&mealLog.Calories, &mealLog.Protein, &mealLog.Carbs, &mealLog.Fat,
			&mealLog.LoggedAt,
		); err != nil {
			return nil, err
		}
		mealLog.MealType = MealType(mealType)
		mealLogs = append(mealLogs, mealLog)
	}
	return mealLogs, nil
}
