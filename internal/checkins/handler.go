package checkins

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitcoach/internal/auth"
	"github.com/2beens/fitcoach/internal/coach"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=checkins_test

type checkinsService interface {
	Submit(ctx context.Context, in SubmitInput) (*Checkin, error)
	GetCheckin(ctx context.Context, id int) (*Checkin, error)
	List(ctx context.Context, params ListParams) (_ []Checkin, total int, err error)
	Recap(ctx context.Context, checkin *Checkin) *AssembledRecap
	RegenerateSummary(ctx context.Context, checkin *Checkin) error
	Daily(ctx context.Context, userID int, answers coach.DailyAnswers) *DailyResult
	Streak(ctx context.Context, userID int) (*StreakInfo, error)
	CheckinDay(ctx context.Context, userID int) (int, error)
	SetCheckinDay(ctx context.Context, userID, day int) error
}

type SubmitRequest struct {
	// Date is YYYY-MM-DD, today in the user's timezone when empty.
	Date     string   `json:"date,omitempty"`
	WeightLb *float64 `json:"weightLb,omitempty"`
	PhotoIDs []int    `json:"photoIds,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

type DailyRequest struct {
	HitMacros      bool   `json:"hitMacros"`
	TrainingStatus string `json:"trainingStatus"`
	SleepQuality   string `json:"sleepQuality"`
}

type ListResponse struct {
	Checkins []Checkin `json:"checkins"`
	Total    int       `json:"total"`
}

type CheckinDayRequest struct {
	Day int `json:"day"`
}

type CheckinDayResponse struct {
	Day int `json:"day"`
}

type Handler struct {
	service checkinsService
}

func NewHandler(service checkinsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", handler.handleSubmit).Methods("POST", "OPTIONS").Name("new-checkin")
	router.HandleFunc("/daily", handler.handleDaily).Methods("POST", "OPTIONS").Name("new-daily-checkin")
	router.HandleFunc("/streak", handler.handleStreak).Methods("GET").Name("checkin-streak")
	router.HandleFunc("/settings/day", handler.handleGetCheckinDay).Methods("GET").Name("checkin-day")
	router.HandleFunc("/settings/day", handler.handleSetCheckinDay).Methods("PUT", "OPTIONS").Name("set-checkin-day")
	router.HandleFunc("/list/page/{page}/size/{size}", handler.handleList).Methods("GET", "OPTIONS").Name("list-checkins")
	router.HandleFunc("/{id}/recap", handler.handleRecap).Methods("GET").Name("checkin-recap")
	router.HandleFunc("/{id}/summary", handler.handleRegenerateSummary).Methods("POST", "OPTIONS").Name("regenerate-checkin-summary")
	router.HandleFunc("/{id}", handler.handleGet).Methods("GET").Name("get-checkin")
}

func (handler *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.submit")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var submitReq SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		log.Tracef("new check-in, unmarshal json params: %s", err)
		http.Error(w, "submit check-in failed", http.StatusBadRequest)
		return
	}

	var date time.Time
	if submitReq.Date != "" {
		var err error
		date, err = time.Parse("2006-01-02", submitReq.Date)
		if err != nil {
			log.Tracef("new check-in, from <date> param: %s", err)
			http.Error(w, "parse form error, parameter <date>", http.StatusBadRequest)
			return
		}
	}

	checkin, err := handler.service.Submit(ctx, SubmitInput{
		UserID:   userID,
		Date:     date,
		WeightLb: submitReq.WeightLb,
		PhotoIDs: submitReq.PhotoIDs,
		Notes:    submitReq.Notes,
	})
	if err != nil {
		log.Errorf("failed to submit check-in for user %d: %s", userID, err)
		http.Error(w, "failed to submit check-in", http.StatusInternalServerError)
		return
	}

	checkinJson, err := json.Marshal(checkin)
	if err != nil {
		log.Errorf("failed to marshal new check-in: %s", err)
		http.Error(w, "failed to submit check-in", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, checkinJson, http.StatusCreated)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.get")
	defer span.End()

	checkin, ok := handler.checkinFromVars(ctx, w, r)
	if !ok {
		return
	}

	checkinJson, err := json.Marshal(checkin)
	if err != nil {
		log.Errorf("failed to marshal check-in %d: %s", checkin.ID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, checkinJson, http.StatusOK)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.list")
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
		log.Tracef("handle list check-ins, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	sizeStr := vars["size"]
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		log.Tracef("handle list check-ins, from <size> param: %s", err)
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

	checkins, total, err := handler.service.List(ctx, ListParams{
		UserID: userID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		log.Errorf("list check-ins error: %s", err)
		http.Error(w, "failed to get check-ins", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		Checkins: checkins,
		Total:    total,
	})
	if err != nil {
		log.Errorf("marshal check-ins error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) handleRecap(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.recap")
	defer span.End()

	checkin, ok := handler.checkinFromVars(ctx, w, r)
	if !ok {
		return
	}

	recapJson, err := json.Marshal(handler.service.Recap(ctx, checkin))
	if err != nil {
		log.Errorf("failed to marshal recap of check-in %d: %s", checkin.ID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recapJson, http.StatusOK)
}

func (handler *Handler) handleRegenerateSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.regenerateSummary")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	checkin, ok := handler.checkinFromVars(ctx, w, r)
	if !ok {
		return
	}

	if err := handler.service.RegenerateSummary(ctx, checkin); err != nil {
		if errors.Is(err, ErrGeneratorUnavailable) {
			http.Error(w, "coach generation not available", http.StatusServiceUnavailable)
			return
		}
		log.Errorf("failed to regenerate summary for check-in %d: %s", checkin.ID, err)
		http.Error(w, "failed to regenerate summary", http.StatusInternalServerError)
		return
	}

	checkinJson, err := json.Marshal(checkin)
	if err != nil {
		log.Errorf("failed to marshal check-in %d: %s", checkin.ID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, checkinJson, http.StatusOK)
}

func (handler *Handler) handleDaily(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.daily")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var dailyReq DailyRequest
	if err := json.NewDecoder(r.Body).Decode(&dailyReq); err != nil {
		log.Tracef("new daily check-in, unmarshal json params: %s", err)
		http.Error(w, "daily check-in failed", http.StatusBadRequest)
		return
	}

	training, err := coach.ParseTrainingStatus(dailyReq.TrainingStatus)
	if err != nil {
		http.Error(w, "error, invalid training status", http.StatusBadRequest)
		return
	}
	sleep, err := coach.ParseSleepQuality(dailyReq.SleepQuality)
	if err != nil {
		http.Error(w, "error, invalid sleep quality", http.StatusBadRequest)
		return
	}

	result := handler.service.Daily(ctx, userID, coach.DailyAnswers{
		HitMacros: dailyReq.HitMacros,
		Training:  training,
		Sleep:     sleep,
	})

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal daily check-in result: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) handleStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.streak")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	streak, err := handler.service.Streak(ctx, userID)
	if err != nil {
		log.Errorf("failed to get streak for user %d: %s", userID, err)
		http.Error(w, "failed to get streak", http.StatusInternalServerError)
		return
	}

	streakJson, err := json.Marshal(streak)
	if err != nil {
		log.Errorf("failed to marshal streak: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, streakJson, http.StatusOK)
}

func (handler *Handler) handleGetCheckinDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.getCheckinDay")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	day, err := handler.service.CheckinDay(ctx, userID)
	if err != nil {
		log.Errorf("failed to get check-in day for user %d: %s", userID, err)
		http.Error(w, "failed to get check-in day", http.StatusInternalServerError)
		return
	}

	dayJson, err := json.Marshal(CheckinDayResponse{Day: day})
	if err != nil {
		log.Errorf("failed to marshal check-in day: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, dayJson, http.StatusOK)
}

func (handler *Handler) handleSetCheckinDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.setCheckinDay")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var dayReq CheckinDayRequest
	if err := json.NewDecoder(r.Body).Decode(&dayReq); err != nil {
		log.Tracef("set check-in day, unmarshal json params: %s", err)
		http.Error(w, "set check-in day failed", http.StatusBadRequest)
		return
	}

	if dayReq.Day < int(time.Sunday) || dayReq.Day > int(time.Saturday) {
		http.Error(w, "error, invalid day", http.StatusBadRequest)
		return
	}

	if err := handler.service.SetCheckinDay(ctx, userID, dayReq.Day); err != nil {
		log.Errorf("failed to set check-in day for user %d: %s", userID, err)
		http.Error(w, "failed to set check-in day", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"day":%d}`, dayReq.Day))
}

// checkinFromVars resolves the {id} path variable to the caller's check-in.
// Someone else's check-in reads as not found.
func (handler *Handler) checkinFromVars(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Checkin, bool) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return nil, false
	}

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return nil, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return nil, false
	}

	checkin, err := handler.service.GetCheckin(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCheckinNotFound) {
			http.Error(w, "check-in not found", http.StatusNotFound)
			return nil, false
		}
		log.Errorf("failed to get check-in %d: %s", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}

	if checkin.UserID != userID {
		log.Tracef("user %d tried to access check-in %d of user %d", userID, checkin.ID, checkin.UserID)
		http.Error(w, "check-in not found", http.StatusNotFound)
		return nil, false
	}

	return checkin, true
}
