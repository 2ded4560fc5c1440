package mcp

import (
	"context"
	"encoding/json"

	"github.com/2beens/fitcoach/internal/coach"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
}

// NewHandler builds a handler with the given service.
func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return textResult(string(raw)), nil
}

// GetFitcoachContextTool returns the MCP tool handler for get_fitcoach_context.
func (h *Handler) GetFitcoachContextTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

// RecentCheckinsInput is the input for get_recent_checkins.
type RecentCheckinsInput struct {
	UserID int `json:"user_id" jsonschema:"The fitcoach user id"`
	Count  int `json:"count,omitempty" jsonschema:"How many check-ins to return (default 5)"`
}

// GetRecentCheckinsTool returns the MCP tool handler for get_recent_checkins.
func (h *Handler) GetRecentCheckinsTool() func(context.Context, *mcp.CallToolRequest, RecentCheckinsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RecentCheckinsInput) (*mcp.CallToolResult, any, error) {
		if in.UserID < 1 {
			return errorResult("Invalid user_id: must be positive"), nil, nil
		}
		list, err := h.service.RecentCheckins(ctx, in.UserID, in.Count)
		if err != nil {
			return errorResult("Error listing check-ins: " + err.Error()), nil, nil
		}
		res, err := jsonResult(list)
		if err != nil {
			return errorResult("Error encoding response: " + err.Error()), nil, nil
		}
		return res, nil, nil
	}
}

// CheckinRecapInput is the input for get_checkin_recap.
type CheckinRecapInput struct {
	UserID    int `json:"user_id" jsonschema:"The fitcoach user id"`
	CheckinID int `json:"checkin_id" jsonschema:"The weekly check-in id"`
}

// GetCheckinRecapTool returns the MCP tool handler for get_checkin_recap.
func (h *Handler) GetCheckinRecapTool() func(context.Context, *mcp.CallToolRequest, CheckinRecapInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in CheckinRecapInput) (*mcp.CallToolResult, any, error) {
		if in.UserID < 1 {
			return errorResult("Invalid user_id: must be positive"), nil, nil
		}
		recap, err := h.service.CheckinRecap(ctx, in.UserID, in.CheckinID)
		if err != nil {
			return errorResult("Error fetching recap: " + err.Error()), nil, nil
		}
		res, err := jsonResult(recap)
		if err != nil {
			return errorResult("Error encoding response: " + err.Error()), nil, nil
		}
		return res, nil, nil
	}
}

// StreakInput is the input for get_streak.
type StreakInput struct {
	UserID int `json:"user_id" jsonschema:"The fitcoach user id"`
}

// GetStreakTool returns the MCP tool handler for get_streak.
func (h *Handler) GetStreakTool() func(context.Context, *mcp.CallToolRequest, StreakInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in StreakInput) (*mcp.CallToolResult, any, error) {
		if in.UserID < 1 {
			return errorResult("Invalid user_id: must be positive"), nil, nil
		}
		streak, err := h.service.GetStreak(ctx, in.UserID)
		if err != nil {
			return errorResult("Error fetching streak: " + err.Error()), nil, nil
		}
		res, err := jsonResult(streak)
		if err != nil {
			return errorResult("Error encoding response: " + err.Error()), nil, nil
		}
		return res, nil, nil
	}
}

// LogDailyCheckinInput is the input for log_daily_checkin.
type LogDailyCheckinInput struct {
	UserID         int    `json:"user_id" jsonschema:"The fitcoach user id"`
	HitMacros      bool   `json:"hit_macros" jsonschema:"Whether the user hit their macros today"`
	TrainingStatus string `json:"training_status" jsonschema:"trained or off_day"`
	SleepQuality   string `json:"sleep_quality" jsonschema:"good, okay or poor"`
}

// LogDailyCheckinTool returns the MCP tool handler for log_daily_checkin.
func (h *Handler) LogDailyCheckinTool() func(context.Context, *mcp.CallToolRequest, LogDailyCheckinInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in LogDailyCheckinInput) (*mcp.CallToolResult, any, error) {
		if in.UserID < 1 {
			return errorResult("Invalid user_id: must be positive"), nil, nil
		}
		training, err := coach.ParseTrainingStatus(in.TrainingStatus)
		if err != nil {
			return errorResult("Invalid training_status: use trained or off_day"), nil, nil
		}
		sleep, err := coach.ParseSleepQuality(in.SleepQuality)
		if err != nil {
			return errorResult("Invalid sleep_quality: use good, okay or poor"), nil, nil
		}

		result := h.service.LogDaily(ctx, in.UserID, coach.DailyAnswers{
			HitMacros: in.HitMacros,
			Training:  training,
			Sleep:     sleep,
		})
		res, err := jsonResult(result)
		if err != nil {
			return errorResult("Error encoding response: " + err.Error()), nil, nil
		}
		return res, nil, nil
	}
}
