package progress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitcoach/internal/auth"
	"github.com/2beens/fitcoach/internal/nutrition"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/internal/users"
	"github.com/2beens/fitcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxUploadedPhotoSize = 1024 * 1024 * 50 // 50 MB

//go:generate mockgen -source=$GOFILE -destination=progress_mocks_test.go -package=progress_test

type photosRepo interface {
	Add(ctx context.Context, photo Photo) (*Photo, error)
	Get(ctx context.Context, id int) (*Photo, error)
	ListAll(ctx context.Context, params ListPhotosParams) ([]Photo, error)
	Delete(ctx context.Context, id int) error
}

type dayTotalsProvider interface {
	DayTotalsRange(ctx context.Context, userID int, from, to time.Time, timezone string) ([]nutrition.DayTotalsRow, error)
}

// usersRepo supplies the macro targets and timezone. Implemented by
// users.Repo.
type usersRepo interface {
	Get(ctx context.Context, id int) (*users.User, error)
}

type DeletePhotoResponse struct {
	DeletedID int `json:"deletedId"`
}

type ListPhotosResponse struct {
	Photos []Photo `json:"photos"`
}

type ComparisonResponse struct {
	Comparison
	PhotoCount int `json:"photoCount"`
}

type AdherenceResponse struct {
	Days []AdherenceDay `json:"days"`
}

type Handler struct {
	repo      photosRepo
	store     *DiskStore
	dayTotals dayTotalsProvider
	users     usersRepo
	metrics   *metrics.Manager
}

func NewHandler(
	repo photosRepo,
	store *DiskStore,
	dayTotals dayTotalsProvider,
	users usersRepo,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:      repo,
		store:     store,
		dayTotals: dayTotals,
		users:     users,
		metrics:   metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/photos", handler.handleUpload).Methods("POST", "OPTIONS").Name("new-progress-photo")
	router.HandleFunc("/photos", handler.handleList).Methods("GET").Name("list-progress-photos")
	router.HandleFunc("/photos/{id}/file", handler.handleGetFile).Methods("GET").Name("progress-photo-file")
	router.HandleFunc("/photos/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("delete-progress-photo")
	router.HandleFunc("/comparison", handler.handleComparison).Methods("GET").Name("progress-comparison")
	router.HandleFunc("/adherence", handler.handleAdherence).Methods("GET").Name("progress-adherence")
}

func (handler *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.upload")
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

	if err := r.ParseMultipartForm(maxUploadedPhotoSize); err != nil {
		log.Errorf("upload photo, parse multipart form: %s", err)
		http.Error(w, "internal error or file too big", http.StatusInternalServerError)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		log.Errorf("upload photo, get file from form: %s", err)
		http.Error(w, "upload photo failed", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Errorf("upload photo, close file: %s", err)
		}
	}()

	photoType := r.FormValue("type")
	if photoType == "" {
		photoType = PhotoTypeCheckin
	}
	category := r.FormValue("category")

	date := r.FormValue("date")
	if date == "" {
		date = time.Now().In(handler.userLocation(ctx, userID)).Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, "parse form error, parameter <date>", http.StatusBadRequest)
		return
	}

	log.Debugf(
		"upload photo, filename: %s, size: %d, content-type: %s",
		header.Filename, header.Size, header.Header["Content-Type"],
	)

	fileType := "unknown"
	if t, ok := header.Header["Content-Type"]; ok {
		if len(t) > 0 {
			fileType = t[0]
		}
	}

	photoPath, err := handler.store.Save(ctx, userID, header.Filename, file)
	if err != nil {
		log.Errorf("upload photo, save file: %s", err)
		http.Error(w, "failed to upload photo", http.StatusInternalServerError)
		return
	}

	addedPhoto, err := handler.repo.Add(ctx, Photo{
		UserID:      userID,
		Filename:    header.Filename,
		Path:        photoPath,
		ContentType: fileType,
		Size:        header.Size,
		Type:        photoType,
		Tags:        BuildTags(category, date),
		CreatedAt:   time.Now(),
	})
	if err != nil {
		log.Errorf("upload photo, store metadata: %s", err)
		if removeErr := handler.store.Remove(ctx, photoPath); removeErr != nil {
			log.Errorf("upload photo, remove file after failed insert: %s", removeErr)
		}
		http.Error(w, "failed to upload photo", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterPhotosUploaded.Inc()

	addedPhotoJson, err := json.Marshal(addedPhoto)
	if err != nil {
		log.Errorf("failed to marshal new photo: %s", err)
		http.Error(w, "failed to upload photo", http.StatusInternalServerError)
		return
	}

	log.Tracef("new progress photo %d: [%s] added", addedPhoto.ID, addedPhoto.Filename)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedPhotoJson, http.StatusCreated)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	params := ListPhotosParams{
		UserID:   userID,
		Type:     r.URL.Query().Get("type"),
		Category: r.URL.Query().Get("category"),
		Limit:    60,
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			http.Error(w, "failed to parse limit param", http.StatusBadRequest)
			return
		}
		params.Limit = limit
	}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			http.Error(w, "parse form error, parameter <from>", http.StatusBadRequest)
			return
		}
		params.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			http.Error(w, "parse form error, parameter <to>", http.StatusBadRequest)
			return
		}
		params.To = &to
	}

	photos, err := handler.repo.ListAll(ctx, params)
	if err != nil {
		log.Errorf("list photos error: %s", err)
		http.Error(w, "failed to get photos", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListPhotosResponse{Photos: photos})
	if err != nil {
		log.Errorf("marshal photos error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) handleGetFile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.getFile")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	photo, ok := handler.photoFromVars(w, r, userID)
	if !ok {
		return
	}

	file, err := handler.store.Open(ctx, photo.Path)
	if err != nil {
		log.Errorf("open photo file [%s]: %s", photo.Path, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	http.ServeContent(w, r, photo.Filename, photo.CreatedAt, file)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	photo, ok := handler.photoFromVars(w, r, userID)
	if !ok {
		return
	}

	log.Debugf("deleting photo %d [%s]", photo.ID, photo.Filename)

	// a row without bytes is fine to clear, bytes without a row are not
	if err := handler.store.Remove(ctx, photo.Path); err != nil {
		log.Errorf("remove photo file [%s]: %s", photo.Path, err)
	}

	if err := handler.repo.Delete(ctx, photo.ID); err != nil {
		log.Errorf("failed to delete photo %d: %s", photo.ID, err)
		http.Error(w, "photo not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeletePhotoResponse{
		DeletedID: photo.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) handleComparison(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.comparison")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().In(handler.userLocation(ctx, userID)).Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, "parse form error, parameter <date>", http.StatusBadRequest)
		return
	}

	photos, err := handler.repo.ListAll(ctx, ListPhotosParams{UserID: userID})
	if err != nil {
		log.Errorf("comparison, list photos error: %s", err)
		http.Error(w, "failed to get photos", http.StatusInternalServerError)
		return
	}

	comparison := SelectComparison(photos, date)
	comparisonJson, err := json.Marshal(ComparisonResponse{
		Comparison: comparison,
		PhotoCount: len(comparison.Photos),
	})
	if err != nil {
		log.Errorf("marshal comparison error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, comparisonJson, http.StatusOK)
}

func (handler *Handler) handleAdherence(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.adherence")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	days := 30
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil {
			http.Error(w, "failed to parse days param", http.StatusBadRequest)
			return
		}
		days = parsed
	}
	if days < 1 {
		days = 1
	}

	user, err := handler.users.Get(ctx, userID)
	if err != nil {
		log.Errorf("adherence, failed to get user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	location := user.Location()
	now := time.Now().In(location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, location)
	from := today.AddDate(0, 0, -(days - 1))
	to := today.AddDate(0, 0, 1)

	totalsRows, err := handler.dayTotals.DayTotalsRange(ctx, userID, from, to, user.Timezone)
	if err != nil {
		log.Errorf("adherence, failed to get day totals for user %d: %s", userID, err)
		http.Error(w, "failed to get day totals", http.StatusInternalServerError)
		return
	}

	adherenceDays := make([]AdherenceDay, 0, len(totalsRows))
	for _, row := range totalsRows {
		adherenceDays = append(adherenceDays, adherenceDay(row.Day, row.DayTotals, user.Macros))
	}

	adherenceJson, err := json.Marshal(AdherenceResponse{Days: adherenceDays})
	if err != nil {
		log.Errorf("marshal adherence error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, adherenceJson, http.StatusOK)
}

// photoFromVars loads the photo from the {id} path variable and checks it
// belongs to the authenticated user. Photos of other users read as not
// found.
func (handler *Handler) photoFromVars(w http.ResponseWriter, r *http.Request, userID int) (*Photo, bool) {
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

	photo, err := handler.repo.Get(r.Context(), id)
	if err != nil && !errors.Is(err, ErrPhotoNotFound) {
		log.Errorf("failed to get photo %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	} else if errors.Is(err, ErrPhotoNotFound) {
		log.Debugf("photo %d not found", id)
		http.Error(w, "photo not found", http.StatusNotFound)
		return nil, false
	}

	if photo.UserID != userID {
		log.Tracef("photo %d belongs to another user, requested by %d", photo.ID, userID)
		http.Error(w, "photo not found", http.StatusNotFound)
		return nil, false
	}

	return photo, true
}

func (handler *Handler) userLocation(ctx context.Context, userID int) *time.Location {
	user, err := handler.users.Get(ctx, userID)
	if err != nil {
		log.Errorf("failed to get user %d for timezone: %s", userID, err)
		return time.UTC
	}
	return user.Location()
}
