package nutrition

import (
	"fmt"
	"time"
)

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

func ParseMealType(mealType string) (MealType, error) {
	switch mt := MealType(mealType); mt {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return mt, nil
	default:
		return "", fmt.Errorf("invalid meal type: %s", mealType)
	}
}

type MealLog struct {
	ID       int       `json:"id"`
	UserID   int       `json:"userId"`
	MealType MealType  `json:"mealType"`
	Name     string    `json:"name"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
	LoggedAt time.Time `json:"loggedAt"`
}

// DayTotals aggregates the macros of all meals logged within one day.
// The adherence calculator and the coach prompt context both read it.
type DayTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Meals    int     `json:"meals"`
}
