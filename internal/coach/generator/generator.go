// Package generator wraps the Gemini API for the two generation paths the
// coach has: short chat replies and weekly check-in analyses. Every run is
// logged as a job row so failures and latency stay visible.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"
)

const (
	promptKeyChat          = "coach_chat"
	promptKeyWeeklyCheckin = "weekly_checkin_analysis"
)

const chatSystemPrompt = `You are FitCoach - a gym buddy who texts quick, punchy advice.

RESPONSE RULES (CRITICAL):
- MAX 18 words. Prefer 1 sentence; 2 sentences allowed only if under 18 words.
- Single response only. No multi-part replies or separate messages.
- NO bullet points, lists, or headers unless explicitly asked.
- Be encouraging but brief - like texting a friend between sets.
- Only fitness/nutrition topics. Politely redirect others.
- For injuries: one brief tip + "see a professional."

CONTEXT: You get a JSON blob with the user profile, macro targets, latest
check-in and today's nutrition totals. Use it, never repeat it back.`

const weeklyCheckinSystemPrompt = `You are FitCoach reviewing a weekly check-in. You get a JSON blob
with the user profile, goal, the current and previous check-in (weight,
photo count) and macro adherence for the week.

Reply with a single JSON object and NOTHING else - no markdown fences,
no prose before or after:
{"improvements": [], "needs_work": [], "photo_notes": [], "photo_focus": [], "targets": [], "summary": ""}

- 2 to 4 short lines per list, plain gym-buddy language.
- "photo_focus" names body areas to watch next time, e.g. "midsection".
- "summary" is at most 3 sentences.
- Never comment on posture, symmetry or camera setup.`

type jobsRepo interface {
	Create(ctx context.Context, userID int, promptKey string) (int, error)
	MarkSucceeded(ctx context.Context, id int, latency time.Duration) error
	MarkFailed(ctx context.Context, id int, jobErr error, latency time.Duration) error
}

// UserContext is the JSON blob sent along with every prompt. Fields the
// caller cannot fill stay nil and marshal to null, the model copes.
type UserContext struct {
	Profile struct {
		Name     string  `json:"name"`
		Age      int     `json:"age,omitempty"`
		Goal     string  `json:"goal"`
		HeightCm float64 `json:"height_cm,omitempty"`
		WeightKg float64 `json:"weight_kg,omitempty"`
	} `json:"profile"`
	MacroTargets  *MacroTargets  `json:"macro_targets"`
	LatestCheckin *CheckinDigest `json:"latest_checkin"`
	TodayTotals   *DayTotals     `json:"today_totals"`
}

type MacroTargets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

type CheckinDigest struct {
	Date       string   `json:"date"`
	WeightLb   *float64 `json:"weight_lb"`
	PhotoCount int      `json:"photo_count"`
	Summary    string   `json:"summary,omitempty"`
}

type DayTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type Generator struct {
	client  *genai.Client
	model   string
	jobs    jobsRepo
	metrics *metrics.Manager
}

func New(
	ctx context.Context,
	apiKey string,
	model string,
	jobs jobsRepo,
	metricsManager *metrics.Manager,
) (*Generator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Generator{
		client:  client,
		model:   model,
		jobs:    jobs,
		metrics: metricsManager,
	}, nil
}

// ChatReply answers one chat message. The returned text is raw model
// output, callers run it through coach.StripMarkdown and coach.TrimReply.
func (g *Generator) ChatReply(ctx context.Context, userID int, message string, userCtx UserContext) (string, error) {
	prompt, err := promptWithContext(message, userCtx)
	if err != nil {
		return "", err
	}
	return g.generate(ctx, userID, promptKeyChat, chatSystemPrompt, prompt)
}

// CheckinSummary produces the raw weekly analysis text for a check-in.
// The recap pipeline parses and sanitizes it, so malformed output here is
// tolerated downstream.
func (g *Generator) CheckinSummary(ctx context.Context, userID int, checkinPayload string, userCtx UserContext) (string, error) {
	prompt, err := promptWithContext(checkinPayload, userCtx)
	if err != nil {
		return "", err
	}
	return g.generate(ctx, userID, promptKeyWeeklyCheckin, weeklyCheckinSystemPrompt, prompt)
}

func (g *Generator) generate(
	ctx context.Context,
	userID int,
	promptKey string,
	systemPrompt string,
	userPrompt string,
) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("prompt_key", promptKey),
		attribute.String("model", g.model),
	)

	jobID, err := g.jobs.Create(ctx, userID, promptKey)
	if err != nil {
		// generation is more important than its bookkeeping
		log.Warnf("coach generate: create job [user %d, %s]: %s", userID, promptKey, err)
		jobID = 0
	}

	startedAt := time.Now()
	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(userPrompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemPrompt}},
			},
		},
	)
	latency := time.Since(startedAt)
	g.metrics.HistCoachGenDuration.Observe(latency.Seconds())

	if err == nil {
		_, err = textFromResponse(resp)
	}
	if err != nil {
		g.metrics.CounterCoachJobs.WithLabelValues(JobStatusFailed).Inc()
		if jobID > 0 {
			if markErr := g.jobs.MarkFailed(ctx, jobID, err, latency); markErr != nil {
				log.Errorf("coach generate: mark job %d failed: %s", jobID, markErr)
			}
		}
		return "", fmt.Errorf("generate content [%s]: %w", promptKey, err)
	}

	g.metrics.CounterCoachJobs.WithLabelValues(JobStatusSucceeded).Inc()
	if jobID > 0 {
		if markErr := g.jobs.MarkSucceeded(ctx, jobID, latency); markErr != nil {
			log.Errorf("coach generate: mark job %d succeeded: %s", jobID, markErr)
		}
	}

	text, _ := textFromResponse(resp)
	log.Tracef("coach generate [%s] for user %d done in %s", promptKey, userID, latency)
	return text, nil
}

func promptWithContext(message string, userCtx UserContext) (string, error) {
	ctxJson, err := json.Marshal(userCtx)
	if err != nil {
		return "", fmt.Errorf("marshal user context: %w", err)
	}
	return fmt.Sprintf("USER CONTEXT:\n%s\n\nMESSAGE:\n%s", ctxJson, message), nil
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content parts in response")
	}
	return candidate.Content.Parts[0].Text, nil
}
