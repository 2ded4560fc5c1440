package mcp

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with fitcoach tools: schema, recent check-ins,
// check-in recap, streak, daily check-in logging.
// Used by the main backend when mounting MCP at /mcp (internal/server).
func NewServer(pool *pgxpool.Pool, checkinsService checkinsAPI) *mcp.Server {
	svc := NewContextService(NewPoolSchemaRepo(pool), checkinsService)
	h := NewHandler(svc)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "fitcoach-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_fitcoach_context",
		Description: "Returns the DB schema for fitcoach tables (app_user, weekly_checkin, daily_checkin, meal_log, progress_photo, coach_job): table names, columns, types, nullable, default. Use when developing the fitcoach app and you need the actual backend schema.",
	}, h.GetFitcoachContextTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_recent_checkins",
		Description: "Returns the latest weekly check-ins of a user, newest first. Args: user_id; optional: count (default 5). Use when you need weight trend, notes or photo counts from recent weeks.",
	}, h.GetRecentCheckinsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_checkin_recap",
		Description: "Returns the assembled recap of one weekly check-in (improvements, needs work, photo notes, targets, summary, highlights). Args: user_id, checkin_id. Use when you need the coach's take on a specific week.",
	}, h.GetCheckinRecapTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_streak",
		Description: "Returns the user's current daily check-in streak and whether today is already logged. Arg: user_id. Use when you need consistency data.",
	}, h.GetStreakTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "log_daily_checkin",
		Description: "Logs a daily check-in for a user and returns the coach reply plus the updated streak. Args: user_id, hit_macros (bool), training_status (trained|off_day), sleep_quality (good|okay|poor).",
	}, h.LogDailyCheckinTool())

	return s
}
