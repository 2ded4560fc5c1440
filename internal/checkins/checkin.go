// Package checkins owns the weekly and daily check-in flows: storage,
// recap assembly on top of the recap pipeline, the daily streak and
// the check-in day preference.
package checkins

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/2beens/fitcoach/internal/coach"
)

var ErrCheckinNotFound = errors.New("check-in not found")

// Checkin is one weekly check-in row. RawSummary holds whatever the
// coach generation returned; ParsedSummary keeps the embedded JSON
// object when that text decoded cleanly, so the recap pipeline can
// skip re-mining it.
type Checkin struct {
	ID                    int             `json:"id"`
	UserID                int             `json:"userId"`
	Date                  time.Time       `json:"date"`
	WeightLb              *float64        `json:"weightLb,omitempty"`
	PhotoIDs              []int           `json:"photoIds,omitempty"`
	Notes                 string          `json:"notes,omitempty"`
	RawSummary            string          `json:"rawSummary,omitempty"`
	ParsedSummary         json.RawMessage `json:"parsedSummary,omitempty"`
	ComparisonSource      string          `json:"comparisonSource,omitempty"`
	ComparisonPhotoCount  int             `json:"comparisonPhotoCount"`
	MacroUpdateSuggested  bool            `json:"macroUpdateSuggested"`
	CardioUpdateSuggested bool            `json:"cardioUpdateSuggested"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// DailyCheckin is the 3-answer daily check-in that keeps the streak
// alive. The answers embed flat so the JSON matches the submit payload.
type DailyCheckin struct {
	ID     int `json:"id"`
	UserID int `json:"userId"`
	coach.DailyAnswers
	CoachResponse string    `json:"coachResponse"`
	CreatedAt     time.Time `json:"createdAt"`
}
