package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/fitcoach/internal/auth"
	"github.com/2beens/fitcoach/internal/checkins/recap"
	"github.com/2beens/fitcoach/internal/prefs"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const bodyScanCacheTTL = 24 * time.Hour

type usersRepo interface {
	Add(ctx context.Context, user User) (*User, error)
	Get(ctx context.Context, id int) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type SignupRequest struct {
	Username      string   `json:"username"`
	Password      string   `json:"password"`
	DisplayName   string   `json:"displayName"`
	Age           string   `json:"age"`
	Sex           string   `json:"sex"`
	HeightFeet    string   `json:"heightFeet"`
	HeightInches  string   `json:"heightInches"`
	WeightLbs     string   `json:"weightLbs"`
	Goal          string   `json:"goal"`
	TrainingDays  int      `json:"trainingDays"`
	GymAccess     string   `json:"gymAccess"`
	Equipment     []string `json:"equipment"`
	Experience    string   `json:"experience"`
	CheckinDay    string   `json:"checkinDay"`
	Timezone      string   `json:"timezone"`
	MacroCalories string   `json:"macroCalories"`
	MacroProtein  string   `json:"macroProtein"`
	MacroCarbs    string   `json:"macroCarbs"`
	MacroFat      string   `json:"macroFat"`
}

type UpdateRequest struct {
	DisplayName  string   `json:"displayName"`
	Goal         string   `json:"goal"`
	Age          string   `json:"age"`
	HeightFeet   string   `json:"heightFeet"`
	HeightInches string   `json:"heightInches"`
	WeightLbs    string   `json:"weightLbs"`
	TrainingDays *int     `json:"trainingDays"`
	GymAccess    string   `json:"gymAccess"`
	Equipment    []string `json:"equipment"`
	Experience   string   `json:"experience"`
	Timezone     string   `json:"timezone"`
}

type BodyScanResponse struct {
	BodyScan
	Cached bool `json:"cached"`
}

type Handler struct {
	repo     usersRepo
	prefs    prefs.Store
	timezone *TimezoneResolver
}

func NewHandler(repo usersRepo, prefsStore prefs.Store, timezone *TimezoneResolver) *Handler {
	return &Handler{
		repo:     repo,
		prefs:    prefsStore,
		timezone: timezone,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", handler.handleSignup).Methods("POST", "OPTIONS").Name("signup")
	router.HandleFunc("/me", handler.handleGetMe).Methods("GET").Name("get-me")
	router.HandleFunc("/me", handler.handleUpdateMe).Methods("PUT", "OPTIONS").Name("update-me")
	router.HandleFunc("/me/bodyscan", handler.handleBodyScan).Methods("POST", "OPTIONS").Name("body-scan")
}

func (handler *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.signup")
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

	var signupReq SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&signupReq); err != nil {
		log.Tracef("signup, unmarshal json params: %s", err)
		http.Error(w, "signup failed", http.StatusBadRequest)
		return
	}

	if signupReq.Username == "" || signupReq.Password == "" {
		http.Error(w, "error, username or password empty", http.StatusBadRequest)
		return
	}

	goal, err := recap.ParseGoal(signupReq.Goal)
	if err != nil {
		http.Error(w, "error, invalid goal", http.StatusBadRequest)
		return
	}

	if _, err := handler.repo.GetByUsername(ctx, signupReq.Username); err == nil {
		http.Error(w, "error, username taken", http.StatusConflict)
		return
	} else if !errors.Is(err, ErrUserNotFound) {
		log.Errorf("signup, check username [%s]: %s", signupReq.Username, err)
		http.Error(w, "signup failed", http.StatusInternalServerError)
		return
	}

	passwordHash, err := pkg.HashPassword(signupReq.Password)
	if err != nil {
		log.Errorf("signup, hash password: %s", err)
		http.Error(w, "signup failed", http.StatusInternalServerError)
		return
	}

	user := User{
		Username:     signupReq.Username,
		PasswordHash: passwordHash,
		DisplayName:  signupReq.DisplayName,
		Goal:         goal,
		Sex:          signupReq.Sex,
		Timezone:     signupReq.Timezone,
		TrainingDays: signupReq.TrainingDays,
		GymAccess:    signupReq.GymAccess,
		Equipment:    EffectiveEquipment(signupReq.GymAccess, signupReq.Equipment),
		Experience:   signupReq.Experience,
		CreatedAt:    time.Now(),
	}

	if age := parseIntField(signupReq.Age); age != nil {
		user.Age = *age
	}
	if heightCm := HeightCm(signupReq.HeightFeet, signupReq.HeightInches); heightCm != nil {
		user.HeightCm = *heightCm
	}
	if weightKg := WeightKg(signupReq.WeightLbs); weightKg != nil {
		user.WeightKg = *weightKg
	}
	if calories := parseIntField(signupReq.MacroCalories); calories != nil {
		user.Macros.Calories = *calories
	}
	if protein := parseIntField(signupReq.MacroProtein); protein != nil {
		user.Macros.Protein = *protein
	}
	if carbs := parseIntField(signupReq.MacroCarbs); carbs != nil {
		user.Macros.Carbs = *carbs
	}
	if fat := parseIntField(signupReq.MacroFat); fat != nil {
		user.Macros.Fat = *fat
	}

	if user.Timezone == "" && handler.timezone != nil {
		if userIP, ipErr := pkg.ReadUserIP(r); ipErr == nil && userIP != "localhost" {
			tz, tzErr := handler.timezone.TimezoneForIP(userIP)
			if tzErr != nil {
				log.Warnf("signup, resolve timezone for [%s]: %s", userIP, tzErr)
			} else {
				user.Timezone = tz
			}
		}
	}

	addedUser, err := handler.repo.Add(ctx, user)
	if err != nil {
		// the username check above races with concurrent signups
		if pkg.IsUniqueViolationError(err) {
			http.Error(w, "error, username taken", http.StatusConflict)
			return
		}
		log.Errorf("signup, add user [%s]: %s", user.Username, err)
		http.Error(w, "signup failed", http.StatusInternalServerError)
		return
	}

	if signupReq.CheckinDay != "" {
		if err := handler.prefs.Set(ctx, prefs.CheckinDayKey(addedUser.ID), signupReq.CheckinDay, 0); err != nil {
			log.Errorf("signup, store check-in day for user %d: %s", addedUser.ID, err)
		}
	}

	userJson, err := json.Marshal(addedUser)
	if err != nil {
		log.Errorf("signup, marshal user: %s", err)
		http.Error(w, "signup failed", http.StatusInternalServerError)
		return
	}

	log.Tracef("new user signed up: %s [id %d]", addedUser.Username, addedUser.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, userJson, http.StatusCreated)
}

func (handler *Handler) handleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.getMe")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	user, err := handler.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("get user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	userJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("marshal user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, userJson, http.StatusOK)
}

func (handler *Handler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.updateMe")
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

	var updateReq UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		log.Tracef("update user, unmarshal json params: %s", err)
		http.Error(w, "update failed", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("update user, get user %d: %s", userID, err)
		http.Error(w, "update failed", http.StatusInternalServerError)
		return
	}

	// empty fields stay unchanged
	if updateReq.DisplayName != "" {
		user.DisplayName = updateReq.DisplayName
	}
	if updateReq.Goal != "" {
		goal, err := recap.ParseGoal(updateReq.Goal)
		if err != nil {
			http.Error(w, "error, invalid goal", http.StatusBadRequest)
			return
		}
		user.Goal = goal
	}
	if age := parseIntField(updateReq.Age); age != nil {
		user.Age = *age
	}
	if heightCm := HeightCm(updateReq.HeightFeet, updateReq.HeightInches); heightCm != nil {
		user.HeightCm = *heightCm
	}
	if weightKg := WeightKg(updateReq.WeightLbs); weightKg != nil {
		user.WeightKg = *weightKg
	}
	if updateReq.TrainingDays != nil {
		user.TrainingDays = *updateReq.TrainingDays
	}
	if updateReq.GymAccess != "" {
		user.GymAccess = updateReq.GymAccess
		user.Equipment = EffectiveEquipment(updateReq.GymAccess, updateReq.Equipment)
	} else if len(updateReq.Equipment) > 0 {
		user.Equipment = EffectiveEquipment(user.GymAccess, updateReq.Equipment)
	}
	if updateReq.Experience != "" {
		user.Experience = updateReq.Experience
	}
	if updateReq.Timezone != "" {
		user.Timezone = updateReq.Timezone
	}

	if err := handler.repo.Update(ctx, user); err != nil {
		log.Errorf("update user %d: %s", userID, err)
		http.Error(w, "update failed", http.StatusInternalServerError)
		return
	}

	// profile changed, cached body scan is stale now
	if err := handler.prefs.Del(ctx, prefs.BodyScanKey(userID)); err != nil {
		log.Warnf("update user %d, drop cached body scan: %s", userID, err)
	}

	userJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("update user, marshal user %d: %s", userID, err)
		http.Error(w, "update failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, userJson, http.StatusOK)
}

func (handler *Handler) handleBodyScan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.bodyScan")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if cached, err := handler.prefs.Get(ctx, prefs.BodyScanKey(userID)); err == nil {
		var scan BodyScan
		if err := json.Unmarshal([]byte(cached), &scan); err == nil {
			handler.writeBodyScan(w, BodyScanResponse{BodyScan: scan, Cached: true})
			return
		}
		log.Errorf("body scan, unmarshal cached scan for user %d: %s", userID, err)
		// recompute below
	} else if !errors.Is(err, prefs.ErrNotFound) {
		log.Errorf("body scan, read cache for user %d: %s", userID, err)
	}

	user, err := handler.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("body scan, get user %d: %s", userID, err)
		http.Error(w, "body scan failed", http.StatusInternalServerError)
		return
	}

	scan, err := EstimateBodyScan(*user, time.Now())
	if err != nil {
		if errors.Is(err, ErrScanDataMissing) {
			http.Error(w, "error, profile is missing height, weight or age", http.StatusBadRequest)
			return
		}
		log.Errorf("body scan, estimate for user %d: %s", userID, err)
		http.Error(w, "body scan failed", http.StatusInternalServerError)
		return
	}

	scanJson, err := json.Marshal(scan)
	if err != nil {
		log.Errorf("body scan, marshal scan for user %d: %s", userID, err)
		http.Error(w, "body scan failed", http.StatusInternalServerError)
		return
	}
	if err := handler.prefs.Set(ctx, prefs.BodyScanKey(userID), string(scanJson), bodyScanCacheTTL); err != nil {
		log.Errorf("body scan, cache scan for user %d: %s", userID, err)
	}

	handler.writeBodyScan(w, BodyScanResponse{BodyScan: *scan, Cached: false})
}

func (handler *Handler) writeBodyScan(w http.ResponseWriter, resp BodyScanResponse) {
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal body scan response: %s", err)
		http.Error(w, "body scan failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
