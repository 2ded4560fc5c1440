package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/fitcoach/internal/checkins"
	"github.com/2beens/fitcoach/internal/coach"
)

const defaultRecentCheckins = 5

// checkinsAPI is the slice of the check-ins service the MCP tools need
// (for dependency injection and testing).
type checkinsAPI interface {
	GetCheckin(ctx context.Context, id int) (*checkins.Checkin, error)
	List(ctx context.Context, params checkins.ListParams) (_ []checkins.Checkin, total int, err error)
	Recap(ctx context.Context, checkin *checkins.Checkin) *checkins.AssembledRecap
	Streak(ctx context.Context, userID int) (*checkins.StreakInfo, error)
	Daily(ctx context.Context, userID int, answers coach.DailyAnswers) *checkins.DailyResult
}

// contextService provides fitcoach context data (schema, check-ins, recaps, streak).
// Used by Handler for testability.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	RecentCheckins(ctx context.Context, userID, count int) ([]checkins.Checkin, error)
	CheckinRecap(ctx context.Context, userID, checkinID int) (*checkins.AssembledRecap, error)
	GetStreak(ctx context.Context, userID int) (*checkins.StreakInfo, error)
	LogDaily(ctx context.Context, userID int, answers coach.DailyAnswers) *checkins.DailyResult
}

// ContextService holds dependencies and implements the fitcoach context business logic.
type ContextService struct {
	schema   SchemaRepo
	checkins checkinsAPI
}

// NewContextService builds a ContextService with the given dependencies.
func NewContextService(schemaRepo SchemaRepo, checkinsService checkinsAPI) *ContextService {
	return &ContextService{
		schema:   schemaRepo,
		checkins: checkinsService,
	}
}

// GetSchema returns the DB schema (table names, columns, types) for fitcoach
// tables: app_user, weekly_checkin, daily_checkin, meal_log, progress_photo, coach_job.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetFitcoachColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatFitcoachSchema(cols), nil
}

func formatFitcoachSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Fitcoach DB Schema\n\nNo fitcoach tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Fitcoach DB Schema\n\n")
	b.WriteString("Tables: app_user, weekly_checkin, daily_checkin, meal_log, progress_photo, coach_job (schema: public).\n\n")

	for _, tableName := range tableOrder {
		tableCols := byTable[tableName]
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range tableCols {
			def := "—"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

// RecentCheckins returns the user's latest check-ins, newest first.
func (s *ContextService) RecentCheckins(ctx context.Context, userID, count int) ([]checkins.Checkin, error) {
	if count < 1 {
		count = defaultRecentCheckins
	}
	list, _, err := s.checkins.List(ctx, checkins.ListParams{
		UserID: userID,
		Page:   1,
		Size:   count,
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// CheckinRecap returns the assembled recap of the given check-in. A check-in
// of another user reads as not found.
func (s *ContextService) CheckinRecap(ctx context.Context, userID, checkinID int) (*checkins.AssembledRecap, error) {
	checkin, err := s.checkins.GetCheckin(ctx, checkinID)
	if err != nil {
		return nil, err
	}
	if checkin.UserID != userID {
		return nil, checkins.ErrCheckinNotFound
	}
	return s.checkins.Recap(ctx, checkin), nil
}

// GetStreak returns the user's current daily check-in streak.
func (s *ContextService) GetStreak(ctx context.Context, userID int) (*checkins.StreakInfo, error) {
	return s.checkins.Streak(ctx, userID)
}

// LogDaily stores a daily check-in and returns the coach reply with the
// updated streak.
func (s *ContextService) LogDaily(ctx context.Context, userID int, answers coach.DailyAnswers) *checkins.DailyResult {
	return s.checkins.Daily(ctx, userID, answers)
}
