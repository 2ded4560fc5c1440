package internal

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitcoach/internal/checkins"
	"github.com/2beens/fitcoach/internal/coach/generator"
	"github.com/2beens/fitcoach/internal/nutrition"
	"github.com/2beens/fitcoach/internal/users"
)

type contextUsersRepo interface {
	Get(ctx context.Context, id int) (*users.User, error)
}

type contextCheckinsRepo interface {
	List(ctx context.Context, params checkins.ListParams) ([]checkins.Checkin, int, error)
}

type contextMealsRepo interface {
	DayTotals(ctx context.Context, userID int, dayStart, dayEnd time.Time) (*nutrition.DayTotals, error)
}

// userContextBuilder assembles the per-user blob that goes out with
// every coach prompt: profile and macro targets from the user record,
// the newest check-in, and today's logged meals (today in the user's
// timezone). The profile is mandatory, the rest stays nil when the
// lookup fails or there is nothing to report.
type userContextBuilder struct {
	users    contextUsersRepo
	checkins contextCheckinsRepo
	meals    contextMealsRepo
	now      func() time.Time
}

func newUserContextBuilder(
	usersRepo contextUsersRepo,
	checkinsRepo contextCheckinsRepo,
	mealsRepo contextMealsRepo,
) *userContextBuilder {
	return &userContextBuilder{
		users:    usersRepo,
		checkins: checkinsRepo,
		meals:    mealsRepo,
		now:      time.Now,
	}
}

func (b *userContextBuilder) UserContext(ctx context.Context, userID int) (generator.UserContext, error) {
	user, err := b.users.Get(ctx, userID)
	if err != nil {
		return generator.UserContext{}, fmt.Errorf("get user %d: %w", userID, err)
	}

	var userCtx generator.UserContext
	userCtx.Profile.Name = user.DisplayName
	userCtx.Profile.Age = user.Age
	userCtx.Profile.Goal = string(user.Goal)
	userCtx.Profile.HeightCm = user.HeightCm
	userCtx.Profile.WeightKg = user.WeightKg

	if user.Macros != (users.MacroTargets{}) {
		userCtx.MacroTargets = &generator.MacroTargets{
			Calories: user.Macros.Calories,
			Protein:  user.Macros.Protein,
			Carbs:    user.Macros.Carbs,
			Fat:      user.Macros.Fat,
		}
	}

	latest, _, err := b.checkins.List(ctx, checkins.ListParams{UserID: userID, Page: 1, Size: 1})
	switch {
	case err != nil:
		log.Errorf("user context, list check-ins of user %d: %s", userID, err)
	case len(latest) > 0:
		c := latest[0]
		userCtx.LatestCheckin = &generator.CheckinDigest{
			Date:       c.Date.Format("2006-01-02"),
			WeightLb:   c.WeightLb,
			PhotoCount: len(c.PhotoIDs),
			Summary:    c.RawSummary,
		}
	}

	now := b.now().In(user.Location())
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	totals, err := b.meals.DayTotals(ctx, userID, dayStart, dayStart.Add(24*time.Hour))
	switch {
	case err != nil:
		log.Errorf("user context, day totals of user %d: %s", userID, err)
	case totals.Meals > 0:
		userCtx.TodayTotals = &generator.DayTotals{
			Calories: totals.Calories,
			Protein:  totals.Protein,
			Carbs:    totals.Carbs,
			Fat:      totals.Fat,
		}
	}

	return userCtx, nil
}
