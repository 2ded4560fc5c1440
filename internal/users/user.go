// Package users owns app accounts: onboarding unit conversions, the
// profile record and the deterministic body-scan estimate.
package users

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitcoach/internal/checkins/recap"
)

type MacroTargets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

type User struct {
	ID           int          `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	DisplayName  string       `json:"displayName"`
	Goal         recap.Goal   `json:"goal"`
	Age          int          `json:"age,omitempty"`
	Sex          string       `json:"sex,omitempty"`
	HeightCm     float64      `json:"heightCm,omitempty"`
	WeightKg     float64      `json:"weightKg,omitempty"`
	Timezone     string       `json:"timezone,omitempty"`
	TrainingDays int          `json:"trainingDays,omitempty"`
	GymAccess    string       `json:"gymAccess,omitempty"`
	Equipment    []string     `json:"equipment,omitempty"`
	Experience   string       `json:"experience,omitempty"`
	Macros       MacroTargets `json:"macros"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Location resolves the user's timezone, UTC when unset or unknown.
func (u *User) Location() *time.Location {
	if u.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Onboarding clients send numbers as strings, garbage becomes nil
// instead of failing the whole signup.

func parseIntField(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &parsed
}

func parseFloatField(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// HeightCm converts feet+inches to centimeters, rounded to 2 decimals.
// Returns nil only when both parts are missing or unparseable.
func HeightCm(feet, inches string) *float64 {
	feetVal := parseIntField(feet)
	inchesVal := parseIntField(inches)
	if feetVal == nil && inchesVal == nil {
		return nil
	}

	f, in := 0, 0
	if feetVal != nil {
		f = *feetVal
	}
	if inchesVal != nil {
		in = *inchesVal
	}

	cm := float64(f)*30.48 + float64(in)*2.54
	cm = math.Round(cm*100) / 100
	return &cm
}

// WeightKg converts pounds to kilograms, rounded to 2 decimals.
func WeightKg(pounds string) *float64 {
	poundsVal := parseFloatField(pounds)
	if poundsVal == nil {
		return nil
	}
	kg := *poundsVal * 0.45359237
	kg = math.Round(kg*100) / 100
	return &kg
}

// EffectiveEquipment resolves what the workout builder can assume:
// home gyms keep whatever the user listed (bodyweight when nothing),
// calisthenics is always bodyweight only, anything else means a full gym.
func EffectiveEquipment(gymAccess string, equipment []string) []string {
	switch gymAccess {
	case "home_gym":
		if len(equipment) > 0 {
			return equipment
		}
		return []string{"bodyweight"}
	case "calisthenics":
		return []string{"bodyweight"}
	}
	return []string{"full gym"}
}
