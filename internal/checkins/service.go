package checkins

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitcoach/internal/checkins/recap"
	"github.com/2beens/fitcoach/internal/coach"
	"github.com/2beens/fitcoach/internal/coach/generator"
	"github.com/2beens/fitcoach/internal/prefs"
	"github.com/2beens/fitcoach/internal/progress"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/internal/users"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultRecapCacheSizeMb = 8

	oneHour          = 60 * 60
	recapCacheExpire = oneHour * 1
)

// ErrGeneratorUnavailable is returned by summary regeneration when the
// service runs without a configured model client.
var ErrGeneratorUnavailable = errors.New("coach generation not available")

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=checkins_test

type checkinsRepo interface {
	Add(ctx context.Context, checkin Checkin) (*Checkin, error)
	Get(ctx context.Context, id int) (*Checkin, error)
	List(ctx context.Context, params ListParams) ([]Checkin, int, error)
	Previous(ctx context.Context, userID int, before time.Time) (*Checkin, error)
	AttachSummary(ctx context.Context, id int, rawSummary string, parsedSummary json.RawMessage) error
	AddDaily(ctx context.Context, daily DailyCheckin) (*DailyCheckin, error)
	DailyDays(ctx context.Context, userID int, since time.Time) ([]time.Time, error)
}

type photosLister interface {
	ListAll(ctx context.Context, params progress.ListPhotosParams) ([]progress.Photo, error)
}

type usersRepo interface {
	Get(ctx context.Context, id int) (*users.User, error)
}

type summaryGenerator interface {
	CheckinSummary(ctx context.Context, userID int, checkinPayload string, userCtx generator.UserContext) (string, error)
}

type userContextProvider interface {
	UserContext(ctx context.Context, userID int) (generator.UserContext, error)
}

type SubmitInput struct {
	UserID   int
	Date     time.Time
	WeightLb *float64
	PhotoIDs []int
	Notes    string
}

// AssembledRecap is the client-facing recap of one weekly check-in, either
// built from the coach summary or from the deterministic fallback.
type AssembledRecap struct {
	CheckinID      int                `json:"checkinId"`
	UsedFallback   bool               `json:"usedFallback"`
	Recap          recap.CheckinRecap `json:"recap"`
	CardioSummary  string             `json:"cardioSummary,omitempty"`
	CardioPlan     []string           `json:"cardioPlan,omitempty"`
	Highlights     []string           `json:"highlights"`
	ComparisonText string             `json:"comparisonText"`
}

type DailyResult struct {
	CoachResponse string `json:"coachResponse"`
	StreakSaved   bool   `json:"streakSaved"`
	CurrentStreak *int   `json:"currentStreak,omitempty"`
}

type StreakInfo struct {
	Streak         int  `json:"streak"`
	CompletedToday bool `json:"completedToday"`
}

type Service struct {
	repo        checkinsRepo
	photos      photosLister
	users       usersRepo
	prefsStore  prefs.Store
	generator   summaryGenerator
	userContext userContextProvider
	cache       *freecache.Cache
	metrics     *metrics.Manager
}

func NewService(
	repo checkinsRepo,
	photos photosLister,
	usersRepo usersRepo,
	prefsStore prefs.Store,
	gen summaryGenerator,
	userContext userContextProvider,
	recapCacheSizeMb int,
	metricsManager *metrics.Manager,
) *Service {
	if recapCacheSizeMb < 1 {
		recapCacheSizeMb = defaultRecapCacheSizeMb
	}
	return &Service{
		repo:        repo,
		photos:      photos,
		users:       usersRepo,
		prefsStore:  prefsStore,
		generator:   gen,
		userContext: userContext,
		cache:       freecache.NewCache(recapCacheSizeMb * 1024 * 1024),
		metrics:     metricsManager,
	}
}

// Submit stores a new weekly check-in and, when a model client is
// configured, generates and attaches the coach summary right away.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (_ *Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.checkins.submit")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", in.UserID))

	date := in.Date
	if date.IsZero() {
		loc := s.userLocation(ctx, in.UserID)
		now := time.Now().In(loc)
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	}

	comparison := progress.Comparison{Source: recap.ComparisonSourceNone}
	photos, listErr := s.photos.ListAll(ctx, progress.ListPhotosParams{UserID: in.UserID})
	if listErr != nil {
		// the check-in still goes through, it just loses the photo comparison
		log.Errorf("list photos for check-in comparison, user %d: %s", in.UserID, listErr)
	} else {
		comparison = progress.SelectComparison(photos, date.Format("2006-01-02"))
	}

	// every weekly check-in prompts the coach to revisit macros and cardio
	checkin := Checkin{
		UserID:                in.UserID,
		Date:                  date,
		WeightLb:              in.WeightLb,
		PhotoIDs:              in.PhotoIDs,
		Notes:                 in.Notes,
		ComparisonSource:      comparison.Source,
		ComparisonPhotoCount:  len(comparison.Photos),
		MacroUpdateSuggested:  true,
		CardioUpdateSuggested: true,
		CreatedAt:             time.Now(),
	}

	added, err := s.repo.Add(ctx, checkin)
	if err != nil {
		return nil, fmt.Errorf("add check-in: %w", err)
	}

	s.metrics.CounterCheckins.Inc()

	if s.generator != nil {
		if err := s.generateAndAttach(ctx, added); err != nil {
			// the check-in is saved, the summary can be regenerated later
			log.Errorf("generate summary for check-in %d: %s", added.ID, err)
		}
	}

	return added, nil
}

func (s *Service) GetCheckin(ctx context.Context, id int) (_ *Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.checkins.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	checkin, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get check-in: %w", err)
	}
	return checkin, nil
}

func (s *Service) List(ctx context.Context, params ListParams) (_ []Checkin, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.checkins.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID))

	checkins, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, -1, fmt.Errorf("list check-ins: %w", err)
	}
	return checkins, total, nil
}

// Recap assembles the recap of a check-in. Assembly never fails, a check-in
// without a usable summary gets the deterministic fallback recap.
func (s *Service) Recap(ctx context.Context, checkin *Checkin) *AssembledRecap {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.checkins.recap")
	defer span.End()
	span.SetAttributes(attribute.Int("checkin.id", checkin.ID))

	cacheKey := recapCacheKey(checkin.ID, checkin.RawSummary)
	cached, err := s.cache.Get([]byte(cacheKey))
	if err == nil {
		log.Tracef("found recap for check-in %d in cache", checkin.ID)
		var assembled AssembledRecap
		if err := json.Unmarshal(cached, &assembled); err != nil {
			log.Errorf("failed to unmarshal cached recap for check-in %d: %s", checkin.ID, err)
		} else {
			return &assembled
		}
	} else {
		log.Debugf("recap for check-in %d not found in cache, will assemble", checkin.ID)
	}

	assembled := s.assembleRecap(ctx, checkin)
	s.metrics.CounterRecapsAssembled.Inc()

	assembledBytes, err := json.Marshal(assembled)
	if err != nil {
		log.Errorf("failed to marshal recap for check-in %d: %s", checkin.ID, err)
	} else if err := s.cache.Set([]byte(cacheKey), assembledBytes, recapCacheExpire); err != nil {
		log.Errorf("failed to set recap for check-in %d in cache: %s", checkin.ID, err)
	}

	return assembled
}

func (s *Service) assembleRecap(ctx context.Context, checkin *Checkin) *AssembledRecap {
	var parsed *recap.StructuredSummary
	if len(checkin.ParsedSummary) > 0 {
		var summary recap.StructuredSummary
		if err := json.Unmarshal(checkin.ParsedSummary, &summary); err != nil {
			log.Errorf("unmarshal stored summary of check-in %d: %s", checkin.ID, err)
		} else {
			parsed = &summary
		}
	}

	rec := recap.NewCheckinRecap(checkin.RawSummary, parsed, &recap.Meta{
		ComparisonSource: checkin.ComparisonSource,
	})

	assembled := &AssembledRecap{
		CheckinID:      checkin.ID,
		Recap:          rec,
		Highlights:     rec.Highlights(),
		ComparisonText: recap.CheckinComparisonText(checkin.ComparisonSource),
	}

	if !rec.IsEmpty() {
		return assembled
	}

	fallback := recap.NewFallback(s.fallbackInput(ctx, checkin, rec.PhotoFocus))
	assembled.UsedFallback = true
	assembled.Recap = fallback.Recap()
	assembled.Highlights = fallback.Highlights()
	assembled.CardioSummary = fallback.CardioSummary
	assembled.CardioPlan = fallback.CardioPlan
	s.metrics.CounterRecapFallbacks.Inc()

	return assembled
}

// photoRefs converts photo IDs to the string references the recap
// fallback input expects.
func photoRefs(photoIDs []int) []string {
	if len(photoIDs) == 0 {
		return nil
	}
	refs := make([]string, 0, len(photoIDs))
	for _, id := range photoIDs {
		refs = append(refs, strconv.Itoa(id))
	}
	return refs
}

func (s *Service) fallbackInput(ctx context.Context, checkin *Checkin, focusAreas []string) recap.FallbackInput {
	goal := recap.GoalMaintain
	if user, err := s.users.Get(ctx, checkin.UserID); err != nil {
		log.Errorf("get user %d for recap fallback: %s", checkin.UserID, err)
	} else {
		goal = user.Goal
	}

	input := recap.FallbackInput{
		Goal: goal,
		Current: recap.CheckinSnapshot{
			Weight: checkin.WeightLb,
			Photos: photoRefs(checkin.PhotoIDs),
			Date:   checkin.Date,
		},
		ComparisonPhotoCount: checkin.ComparisonPhotoCount,
		ComparisonSource:     checkin.ComparisonSource,
		FocusAreas:           focusAreas,
	}

	if previous := s.previousOf(ctx, checkin); previous != nil {
		input.Previous = &recap.CheckinSnapshot{
			Weight: previous.WeightLb,
			Photos: photoRefs(previous.PhotoIDs),
			Date:   previous.Date,
		}
	}

	return input
}

// RegenerateSummary re-runs coach summary generation for a check-in and
// stores the result on it.
func (s *Service) RegenerateSummary(ctx context.Context, checkin *Checkin) error {
	if s.generator == nil {
		return ErrGeneratorUnavailable
	}
	return s.generateAndAttach(ctx, checkin)
}

func (s *Service) generateAndAttach(ctx context.Context, checkin *Checkin) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.checkins.generateSummary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("checkin.id", checkin.ID))

	var userCtx generator.UserContext
	if s.userContext != nil {
		uc, ucErr := s.userContext.UserContext(ctx, checkin.UserID)
		if ucErr != nil {
			// generation still runs, the model just gets less context
			log.Errorf("build user context for check-in %d: %s", checkin.ID, ucErr)
		} else {
			userCtx = uc
		}
	}

	payload, err := summaryPayload(checkin, s.previousOf(ctx, checkin))
	if err != nil {
		return fmt.Errorf("marshal check-in payload: %w", err)
	}

	raw, err := s.generator.CheckinSummary(ctx, checkin.UserID, payload, userCtx)
	if err != nil {
		return fmt.Errorf("generate check-in summary: %w", err)
	}

	parsed := extractSummaryJSON(raw)
	if err := s.repo.AttachSummary(ctx, checkin.ID, raw, parsed); err != nil {
		return fmt.Errorf("attach summary to check-in %d: %w", checkin.ID, err)
	}

	checkin.RawSummary = raw
	checkin.ParsedSummary = parsed
	return nil
}

// Daily logs a daily check-in and hands back the canned coach reply. A
// failed insert is not surfaced, the reply still goes out and the day just
// does not count towards the streak.
func (s *Service) Daily(ctx context.Context, userID int, answers coach.DailyAnswers) *DailyResult {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.checkins.daily")
	defer span.End()
	span.SetAttributes(attribute.Int("user.id", userID))

	result := &DailyResult{
		CoachResponse: coach.DailyReply(answers),
	}

	if _, err := s.repo.AddDaily(ctx, DailyCheckin{
		UserID:        userID,
		DailyAnswers:  answers,
		CoachResponse: result.CoachResponse,
		CreatedAt:     time.Now(),
	}); err != nil {
		log.Errorf("save daily check-in for user %d: %s", userID, err)
		return result
	}

	result.StreakSaved = true
	s.metrics.CounterDailyCheckins.Inc()

	streak, err := s.Streak(ctx, userID)
	if err != nil {
		log.Errorf("get streak for user %d: %s", userID, err)
		return result
	}
	result.CurrentStreak = &streak.Streak

	return result
}

func (s *Service) Streak(ctx context.Context, userID int) (_ *StreakInfo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.checkins.streak")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	// the lookback bounds the longest streak the endpoint reports
	since := time.Now().AddDate(0, 0, -366)
	days, err := s.repo.DailyDays(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("get daily check-in days: %w", err)
	}

	streak, completedToday := CurrentStreak(days, time.Now(), s.userLocation(ctx, userID))
	return &StreakInfo{
		Streak:         streak,
		CompletedToday: completedToday,
	}, nil
}

// CheckinDay returns the weekday (0 sunday .. 6 saturday) the user wants to
// do the weekly check-in on. Sunday when nothing is stored.
func (s *Service) CheckinDay(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.checkins.checkinDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	val, err := s.prefsStore.Get(ctx, prefs.CheckinDayKey(userID))
	if err != nil {
		if errors.Is(err, prefs.ErrNotFound) {
			return int(time.Sunday), nil
		}
		return 0, fmt.Errorf("get check-in day: %w", err)
	}

	day, err := strconv.Atoi(val)
	if err != nil {
		log.Errorf("stored check-in day of user %d is not a number: %q", userID, val)
		return int(time.Sunday), nil
	}
	return day, nil
}

func (s *Service) SetCheckinDay(ctx context.Context, userID, day int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.checkins.setCheckinDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.prefsStore.Set(ctx, prefs.CheckinDayKey(userID), strconv.Itoa(day), 0); err != nil {
		return fmt.Errorf("set check-in day: %w", err)
	}
	return nil
}

// previousOf returns the check-in before this one, or nil. Lookups that
// fail only cost the recap its week over week comparison.
func (s *Service) previousOf(ctx context.Context, checkin *Checkin) *Checkin {
	previous, err := s.repo.Previous(ctx, checkin.UserID, checkin.Date)
	if err != nil {
		if !errors.Is(err, ErrCheckinNotFound) {
			log.Errorf("get previous check-in for user %d: %s", checkin.UserID, err)
		}
		return nil
	}
	return previous
}

func (s *Service) userLocation(ctx context.Context, userID int) *time.Location {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		log.Errorf("failed to get user %d for timezone: %s", userID, err)
		return time.UTC
	}
	return user.Location()
}

// checkinPayload is the check-in digest handed to the model as the user
// message of the summary prompt.
type checkinPayload struct {
	Date                 string   `json:"date"`
	WeightLb             *float64 `json:"weight_lb,omitempty"`
	PhotoCount           int      `json:"photo_count"`
	Notes                string   `json:"notes,omitempty"`
	ComparisonSource     string   `json:"comparison_source,omitempty"`
	ComparisonPhotoCount int      `json:"comparison_photo_count,omitempty"`
	PreviousWeightLb     *float64 `json:"previous_weight_lb,omitempty"`
	PreviousDate         string   `json:"previous_date,omitempty"`
}

func summaryPayload(checkin *Checkin, previous *Checkin) (string, error) {
	payload := checkinPayload{
		Date:                 checkin.Date.Format("2006-01-02"),
		WeightLb:             checkin.WeightLb,
		PhotoCount:           len(checkin.PhotoIDs),
		Notes:                checkin.Notes,
		ComparisonSource:     checkin.ComparisonSource,
		ComparisonPhotoCount: checkin.ComparisonPhotoCount,
	}
	if previous != nil {
		payload.PreviousWeightLb = previous.WeightLb
		payload.PreviousDate = previous.Date.Format("2006-01-02")
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(payloadBytes), nil
}

// recapCacheKey folds the summary checksum into the key, attaching a new
// summary makes the cached recap unreachable instead of stale.
func recapCacheKey(checkinID int, rawSummary string) string {
	return fmt.Sprintf("recap::%d::%08x", checkinID, crc32.ChecksumIEEE([]byte(rawSummary)))
}

// extractSummaryJSON pulls the JSON object out of a raw coach summary, or
// returns nil when the text carries none that parses as a summary.
func extractSummaryJSON(raw string) json.RawMessage {
	if recap.ParseRawSummary(raw) == nil {
		return nil
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	return json.RawMessage(raw[start : end+1])
}
