package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/2beens/fitcoach/internal/checkins/recap"
	"github.com/2beens/fitcoach/internal/nutrition"
	"github.com/2beens/fitcoach/internal/progress"
	"github.com/2beens/fitcoach/internal/users"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) deleteAllPhotos(ctx context.Context) {
	_, err := s.DB.ExecContext(ctx, "DELETE FROM progress_photo")
	require.NoError(s.T(), err)
}

// uploadPhotoRequest sends a multipart photo upload. Empty form values are
// left out so the handler defaults kick in.
func (s *IntegrationTestSuite) uploadPhotoRequest(
	ctx context.Context,
	token, filename, content string,
	photoType, category, date string,
) progress.Photo {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	fw, err := w.CreateFormFile("photo", filename)
	require.NoError(s.T(), err)
	_, err = io.Copy(fw, strings.NewReader(content))
	require.NoError(s.T(), err)
	if photoType != "" {
		require.NoError(s.T(), w.WriteField("type", photoType))
	}
	if category != "" {
		require.NoError(s.T(), w.WriteField("category", category))
	}
	if date != "" {
		require.NoError(s.T(), w.WriteField("date", date))
	}
	require.NoError(s.T(), w.Close())

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/progress/photos", serverEndpoint), &b)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set(authTokenHeader, token)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var photo progress.Photo
	require.NoError(s.T(), json.Unmarshal(respBytes, &photo))

	return photo
}

func (s *IntegrationTestSuite) listPhotosRequest(ctx context.Context, token, query string) []progress.Photo {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/progress/photos%s", serverEndpoint, query), nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(authTokenHeader, token)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var listResp progress.ListPhotosResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &listResp))

	return listResp.Photos
}

func (s *IntegrationTestSuite) TestProgressPhotos() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.deleteAllPhotos(ctx)
	token := doLogin(ctx, t)

	startingContent := "starting photo bytes"
	starting := s.uploadPhotoRequest(ctx, token, "start-front.jpg", startingContent, "starting", "", "2026-07-01")
	assert.NotZero(t, starting.ID)
	assert.Equal(t, progress.PhotoTypeStarting, starting.Type)
	assert.Equal(t, "start-front.jpg", starting.Filename)
	assert.Equal(t, int64(len(startingContent)), starting.Size)
	assert.Equal(t, "2026-07-01", starting.Date)

	weekOne := s.uploadPhotoRequest(ctx, token, "week1-front.jpg", "week one front", "", "front", "2026-08-10")
	// no type form value, falls back to check-in
	assert.Equal(t, progress.PhotoTypeCheckin, weekOne.Type)
	assert.Equal(t, "front", weekOne.Category)
	assert.Equal(t, "2026-08-10", weekOne.Date)
	assert.Contains(t, weekOne.Tags, "category:front")

	weekTwo := s.uploadPhotoRequest(ctx, token, "week2-front.jpg", "week two front", "checkin", "front", "2026-08-17")
	assert.Equal(t, progress.PhotoTypeCheckin, weekTwo.Type)

	t.Run("list photos", func(t *testing.T) {
		photos := s.listPhotosRequest(ctx, token, "")
		assert.Len(t, photos, 3)

		startingOnly := s.listPhotosRequest(ctx, token, "?type=starting")
		require.Len(t, startingOnly, 1)
		assert.Equal(t, starting.ID, startingOnly[0].ID)

		frontOnly := s.listPhotosRequest(ctx, token, "?category=front")
		assert.Len(t, frontOnly, 2)
	})

	t.Run("photo file round trip", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/progress/photos/%d/file", serverEndpoint, starting.ID), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, startingContent, string(respBytes))
	})

	t.Run("comparison picks the previous check-in", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/progress/comparison?date=2026-08-17", serverEndpoint), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var comparisonResp progress.ComparisonResponse
		require.NoError(t, json.Unmarshal(respBytes, &comparisonResp))
		assert.Equal(t, recap.ComparisonSourcePreviousCheckin, comparisonResp.Source)
		assert.Equal(t, "2026-08-10", comparisonResp.Date)
		assert.Equal(t, 1, comparisonResp.PhotoCount)
		require.Len(t, comparisonResp.Photos, 1)
		assert.Equal(t, weekOne.ID, comparisonResp.Photos[0].ID)
	})

	t.Run("comparison falls back to starting photos", func(t *testing.T) {
		// date before any check-in photo
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/progress/comparison?date=2026-07-15", serverEndpoint), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var comparisonResp progress.ComparisonResponse
		require.NoError(t, json.Unmarshal(respBytes, &comparisonResp))
		assert.Equal(t, recap.ComparisonSourceStartingPhotos, comparisonResp.Source)
		assert.Equal(t, 1, comparisonResp.PhotoCount)
	})

	t.Run("adherence report", func(t *testing.T) {
		s.deleteAllMealLogs(ctx)
		s.addMealLogRequest(ctx, token, nutrition.MealLog{
			MealType: nutrition.MealTypeLunch,
			Name:     "adherence check meal",
			Calories: 840,
			Protein:  60,
			Carbs:    90,
			Fat:      30,
			LoggedAt: time.Now(),
		})

		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/progress/adherence?days=7", serverEndpoint), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var adherenceResp progress.AdherenceResponse
		require.NoError(t, json.Unmarshal(respBytes, &adherenceResp))
		require.Len(t, adherenceResp.Days, 1)

		day := adherenceResp.Days[0]
		// targets come from the macros of the logged-in user
		assert.Equal(t, float64(840), day.Calories.Logged)
		assert.Equal(t, float64(2200), day.Calories.Target)
		assert.Equal(t, float64(38), day.Calories.Percent)
		assert.Equal(t, "-1360", day.Calories.Delta)
		assert.Equal(t, float64(180), day.Protein.Target)
	})

	t.Run("photos of other users stay hidden", func(t *testing.T) {
		otherUsername := fmt.Sprintf("lurker_%d", time.Now().UnixNano())
		s.signupUser(ctx, users.SignupRequest{
			Username:    otherUsername,
			Password:    "lurker-pass",
			DisplayName: gofakeit.Name(),
			Goal:        "maintain",
		})
		otherToken := loginAs(ctx, t, otherUsername, "lurker-pass")

		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/progress/photos/%d/file", serverEndpoint, starting.ID), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(authTokenHeader, otherToken)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "photo not found", strings.TrimSpace(string(respBytes)))
	})

	t.Run("delete photo", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "DELETE", fmt.Sprintf("%s/progress/photos/%d", serverEndpoint, starting.ID), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var deleteResp progress.DeletePhotoResponse
		require.NoError(t, json.Unmarshal(respBytes, &deleteResp))
		assert.Equal(t, starting.ID, deleteResp.DeletedID)

		assert.Empty(t, s.listPhotosRequest(ctx, token, "?type=starting"))
	})
}
