package nutrition

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitcoach/internal/auth"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/internal/users"
	"github.com/2beens/fitcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=nutrition_mocks_test.go -package=nutrition_test

type mealLogsRepo interface {
	Add(ctx context.Context, mealLog MealLog) (*MealLog, error)
	List(ctx context.Context, params ListParams) (_ []MealLog, total int, err error)
	DayTotals(ctx context.Context, userID int, dayStart, dayEnd time.Time) (*DayTotals, error)
}

// usersRepo resolves the timezone meals get bucketed into days with.
// Implemented by users.Repo.
type usersRepo interface {
	Get(ctx context.Context, id int) (*users.User, error)
}

type AddMealLogResponse struct {
	MealLog
	DayTotals *DayTotals `json:"dayTotals"`
}

type ListResponse struct {
	MealLogs []MealLog `json:"mealLogs"`
	Total    int       `json:"total"`
}

type DayTotalsResponse struct {
	Date string `json:"date"`
	DayTotals
}

type Handler struct {
	repo    mealLogsRepo
	users   usersRepo
	metrics *metrics.Manager
}

func NewHandler(
	repo mealLogsRepo,
	users usersRepo,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:    repo,
		users:   users,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/logs", handler.handleAdd).Methods("POST", "OPTIONS").Name("new-meal-log")
	router.HandleFunc("/logs/list/page/{page}/size/{size}", handler.handleList).Methods("GET", "OPTIONS").Name("list-meal-logs")
	router.HandleFunc("/logs/day", handler.handleDayTotals).Methods("GET", "OPTIONS").Name("meal-logs-day")
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var mealLog MealLog
	if err := json.NewDecoder(r.Body).Decode(&mealLog); err != nil {
		log.Tracef("new meal log, unmarshal json params: %s", err)
		http.Error(w, "add meal log failed", http.StatusBadRequest)
		return
	}

	if mealLog.Name == "" {
		http.Error(w, "error, meal name empty", http.StatusBadRequest)
		return
	}
	if _, err := ParseMealType(string(mealLog.MealType)); err != nil {
		http.Error(w, "error, invalid meal type", http.StatusBadRequest)
		return
	}

	mealLog.UserID = userID
	if mealLog.LoggedAt.IsZero() {
		mealLog.LoggedAt = time.Now()
	}

	addedMealLog, err := handler.repo.Add(ctx, mealLog)
	if err != nil {
		log.Errorf("failed to add meal log [%s] for user %d: %s", mealLog.MealType, userID, err)
		http.Error(w, "error, failed to add meal log", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterMealsLogged.Inc()

	addMealLogResponse := AddMealLogResponse{
		MealLog: *addedMealLog,
	}

	dayStart, dayEnd := handler.dayBounds(ctx, userID, addedMealLog.LoggedAt)
	totals, err := handler.repo.DayTotals(ctx, userID, dayStart, dayEnd)
	if err != nil {
		// just log the error, no need to return error to the client
		log.Errorf("failed to get day totals for user %d: %s", userID, err)
	} else {
		addMealLogResponse.DayTotals = totals
	}

	addedMealLogJson, err := json.Marshal(addMealLogResponse)
	if err != nil {
		log.Errorf("failed to marshal new meal log: %s", err)
		http.Error(w, "error, failed to add meal log", http.StatusInternalServerError)
		return
	}

	log.Debugf("new meal log added: %s", addedMealLogJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedMealLogJson, http.StatusCreated)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	pageStr := vars["page"]
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		log.Tracef("handle get meal logs page, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	sizeStr := vars["size"]
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		log.Tracef("handle get meal logs page, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page size (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	var mealType MealType
	if mealTypeStr := r.URL.Query().Get("type"); mealTypeStr != "" {
		mealType, err = ParseMealType(mealTypeStr)
		if err != nil {
			http.Error(w, "failed to parse type param", http.StatusBadRequest)
			return
		}
	}

	mealLogs, total, err := handler.repo.List(ctx, ListParams{
		UserID:   userID,
		MealType: mealType,
		Page:     page,
		Size:     size,
	})
	if err != nil {
		log.Errorf("list meal logs error: %s", err)
		http.Error(w, "failed to get meal logs", http.StatusInternalServerError)
		return
	}

	mealLogsPageResponse := ListResponse{
		MealLogs: mealLogs,
		Total:    total,
	}

	mealLogsPageResponseJson, err := json.Marshal(mealLogsPageResponse)
	if err != nil {
		log.Errorf("marshal meal logs error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, mealLogsPageResponseJson, http.StatusOK)
}

func (handler *Handler) handleDayTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.dayTotals")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	user, err := handler.users.Get(ctx, userID)
	if err != nil {
		log.Errorf("get day totals, failed to get user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	location := user.Location()

	day := time.Now().In(location)
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		day, err = time.ParseInLocation("2006-01-02", dateStr, location)
		if err != nil {
			log.Tracef("handle day totals, from <date> param: %s", err)
			http.Error(w, "parse form error, parameter <date>", http.StatusBadRequest)
			return
		}
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	totals, err := handler.repo.DayTotals(ctx, userID, dayStart, dayEnd)
	if err != nil {
		log.Errorf("failed to get day totals for user %d: %s", userID, err)
		http.Error(w, "failed to get day totals", http.StatusInternalServerError)
		return
	}

	dayTotalsResponse := DayTotalsResponse{
		Date:      dayStart.Format("2006-01-02"),
		DayTotals: *totals,
	}

	dayTotalsResponseJson, err := json.Marshal(dayTotalsResponse)
	if err != nil {
		log.Errorf("marshal day totals error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, dayTotalsResponseJson, http.StatusOK)
}

// dayBounds returns the start and end of the day the given moment falls in,
// in the user's timezone. Falls back to UTC when the user lookup fails.
func (handler *Handler) dayBounds(ctx context.Context, userID int, moment time.Time) (time.Time, time.Time) {
	location := time.UTC
	if user, err := handler.users.Get(ctx, userID); err != nil {
		log.Errorf("day bounds, failed to get user %d: %s", userID, err)
	} else {
		location = user.Location()
	}

	local := moment.In(location)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
	return dayStart, dayStart.AddDate(0, 0, 1)
}
