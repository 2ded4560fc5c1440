package generator

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrJobNotFound = errors.New("coach job not found")

const (
	JobStatusRunning   = "running"
	JobStatusSucceeded = "succeeded"
	JobStatusFailed    = "failed"
)

// Job is one generation run, logged for cost tracking and debugging
// of bad coach output.
type Job struct {
	ID        int           `json:"id"`
	UserID    int           `json:"userId"`
	PromptKey string        `json:"promptKey"`
	Status    string        `json:"status"`
	Error     string        `json:"error,omitempty"`
	Latency   time.Duration `json:"latency"`
	CreatedAt time.Time     `json:"createdAt"`
}

type JobsRepo struct {
	db *pgxpool.Pool
}

func NewJobsRepo(db *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{
		db: db,
	}
}

func (r *JobsRepo) Create(ctx context.Context, userID int, promptKey string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.coachjobs.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("prompt_key", promptKey))

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO coach_job (user_id, prompt_key, status, created_at)
			VALUES ($1, $2, $3, $4)
		RETURNING id;`,
		userID, promptKey, JobStatusRunning, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return 0, err
	}

	if !rows.Next() {
		return 0, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int("job.id", id))
	return id, nil
}

func (r *JobsRepo) MarkSucceeded(ctx context.Context, id int, latency time.Duration) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.coachjobs.succeeded")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE coach_job SET status = $1, latency_ms = $2 WHERE id = $3;`,
		JobStatusSucceeded, latency.Milliseconds(), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobsRepo) MarkFailed(ctx context.Context, id int, jobErr error, latency time.Duration) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.coachjobs.failed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	errMsg := ""
	if jobErr != nil {
		errMsg = jobErr.Error()
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE coach_job SET status = $1, error = $2, latency_ms = $3 WHERE id = $4;`,
		JobStatusFailed, errMsg, latency.Milliseconds(), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

// ListRecent returns the newest jobs, for ops introspection.
func (r *JobsRepo) ListRecent(ctx context.Context, limit int) (_ []Job, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.coachjobs.listrecent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, prompt_key, status, COALESCE(error, ''), COALESCE(latency_ms, 0), created_at
			FROM coach_job
			ORDER BY created_at DESC
			LIMIT $1;`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var jobs []Job
	for rows.Next() {
		var job Job
		var latencyMs int64
		if err := rows.Scan(&job.ID, &job.UserID, &job.PromptKey, &job.Status, &job.Error, &latencyMs, &job.CreatedAt); err != nil {
			return nil, err
		}
		job.Latency = time.Duration(latencyMs) * time.Millisecond
		jobs = append(jobs, job)
	}

	if jobs == nil {
		jobs = make([]Job, 0)
	}
	return jobs, nil
}
