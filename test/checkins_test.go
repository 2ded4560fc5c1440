package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/2beens/fitcoach/internal/checkins"
	"github.com/2beens/fitcoach/internal/users"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) deleteAllCheckins(ctx context.Context) {
	_, err := s.DB.ExecContext(ctx, "DELETE FROM weekly_checkin")
	require.NoError(s.T(), err)
	_, err = s.DB.ExecContext(ctx, "DELETE FROM daily_checkin")
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) submitCheckinRequest(
	ctx context.Context,
	token string,
	submitReq checkins.SubmitRequest,
) checkins.Checkin {
	submitReqJson, err := json.Marshal(submitReq)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/checkins", serverEndpoint),
		bytes.NewReader(submitReqJson),
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authTokenHeader, token)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var addedCheckin checkins.Checkin
	require.NoError(s.T(), json.Unmarshal(respBytes, &addedCheckin))

	return addedCheckin
}

func (s *IntegrationTestSuite) TestCheckinFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.deleteAllCheckins(ctx)
	token := doLogin(ctx, t)

	weightWeekOne := 220.5
	weightWeekTwo := 218.0

	first := s.submitCheckinRequest(ctx, token, checkins.SubmitRequest{
		Date:     "2026-08-10",
		WeightLb: &weightWeekOne,
		Notes:    "felt strong all week",
	})
	assert.NotZero(t, first.ID)
	assert.Equal(t, "2026-08-10", first.Date.Format("2006-01-02"))
	require.NotNil(t, first.WeightLb)
	assert.Equal(t, weightWeekOne, *first.WeightLb)
	assert.Equal(t, "felt strong all week", first.Notes)
	// every weekly check-in prompts the coach to revisit macros and cardio
	assert.True(t, first.MacroUpdateSuggested)
	assert.True(t, first.CardioUpdateSuggested)
	assert.Equal(t, 0, first.ComparisonPhotoCount)
	// no model client in the test server, no generated summary
	assert.Empty(t, first.RawSummary)

	second := s.submitCheckinRequest(ctx, token, checkins.SubmitRequest{
		Date:     "2026-08-17",
		WeightLb: &weightWeekTwo,
	})
	assert.NotZero(t, second.ID)

	t.Run("get check-in", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/checkins/%d", serverEndpoint, first.ID), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var fetched checkins.Checkin
		require.NoError(t, json.Unmarshal(respBytes, &fetched))
		assert.Equal(t, first.ID, fetched.ID)
		assert.Equal(t, first.Notes, fetched.Notes)
		require.NotNil(t, fetched.WeightLb)
		assert.Equal(t, weightWeekOne, *fetched.WeightLb)
	})

	t.Run("list check-ins", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/checkins/list/page/1/size/10", serverEndpoint), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var listResp checkins.ListResponse
		require.NoError(t, json.Unmarshal(respBytes, &listResp))
		assert.Equal(t, 2, listResp.Total)
		require.Len(t, listResp.Checkins, 2)
		// newest first
		assert.Equal(t, second.ID, listResp.Checkins[0].ID)
		assert.Equal(t, first.ID, listResp.Checkins[1].ID)
	})

	t.Run("recap uses the fallback", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/checkins/%d/recap", serverEndpoint, second.ID), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var assembled checkins.AssembledRecap
		require.NoError(t, json.Unmarshal(respBytes, &assembled))
		assert.Equal(t, second.ID, assembled.CheckinID)
		assert.True(t, assembled.UsedFallback)
		assert.NotEmpty(t, assembled.Recap.Summary)
	})

	t.Run("regenerate summary without model client", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/checkins/%d/summary", serverEndpoint, second.ID), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "coach generation not available", strings.TrimSpace(string(respBytes)))
	})

	t.Run("check-ins of other users stay hidden", func(t *testing.T) {
		otherUsername := fmt.Sprintf("peeker_%d", time.Now().UnixNano())
		s.signupUser(ctx, users.SignupRequest{
			Username:    otherUsername,
			Password:    "peeker-pass",
			DisplayName: gofakeit.Name(),
			Goal:        "gainWeight",
		})
		otherToken := loginAs(ctx, t, otherUsername, "peeker-pass")

		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/checkins/%d", serverEndpoint, first.ID), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(authTokenHeader, otherToken)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "check-in not found", strings.TrimSpace(string(respBytes)))
	})

	t.Run("submit without token", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/checkins", serverEndpoint), bytes.NewBufferString("{}"))
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func (s *IntegrationTestSuite) TestDailyCheckinAndStreak() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.deleteAllCheckins(ctx)
	token := doLogin(ctx, t)

	t.Run("daily check-in starts the streak", func(t *testing.T) {
		dailyReqJson, err := json.Marshal(checkins.DailyRequest{
			HitMacros:      true,
			TrainingStatus: "trained",
			SleepQuality:   "good",
		})
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/checkins/daily", serverEndpoint), bytes.NewBuffer(dailyReqJson))
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var dailyResult checkins.DailyResult
		require.NoError(t, json.Unmarshal(respBytes, &dailyResult))
		assert.NotEmpty(t, dailyResult.CoachResponse)
		assert.True(t, dailyResult.StreakSaved)
		require.NotNil(t, dailyResult.CurrentStreak)
		assert.Equal(t, 1, *dailyResult.CurrentStreak)
	})

	t.Run("streak endpoint agrees", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/checkins/streak", serverEndpoint), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var streak checkins.StreakInfo
		require.NoError(t, json.Unmarshal(respBytes, &streak))
		assert.Equal(t, 1, streak.Streak)
		assert.True(t, streak.CompletedToday)
	})

	t.Run("invalid training status", func(t *testing.T) {
		dailyReqJson, err := json.Marshal(checkins.DailyRequest{
			HitMacros:      true,
			TrainingStatus: "crushed it",
			SleepQuality:   "good",
		})
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/checkins/daily", serverEndpoint), bytes.NewBuffer(dailyReqJson))
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "error, invalid training status", strings.TrimSpace(string(respBytes)))
	})

	t.Run("check-in day settings", func(t *testing.T) {
		getDay := func() int {
			req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/checkins/settings/day", serverEndpoint), nil)
			require.NoError(t, err)
			req.Header.Set("User-Agent", "test-agent")
			req.Header.Set(authTokenHeader, token)

			resp, err := s.httpClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			respBytes, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var dayResp checkins.CheckinDayResponse
			require.NoError(t, json.Unmarshal(respBytes, &dayResp))
			return dayResp.Day
		}

		// sunday until the user picks one
		assert.Equal(t, int(time.Sunday), getDay())

		dayReqJson, err := json.Marshal(checkins.CheckinDayRequest{Day: 5})
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(ctx, "PUT", fmt.Sprintf("%s/checkins/settings/day", serverEndpoint), bytes.NewBuffer(dayReqJson))
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 5, getDay())
	})

	t.Run("invalid check-in day", func(t *testing.T) {
		dayReqJson, err := json.Marshal(checkins.CheckinDayRequest{Day: 9})
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(ctx, "PUT", fmt.Sprintf("%s/checkins/settings/day", serverEndpoint), bytes.NewBuffer(dayReqJson))
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "error, invalid day", strings.TrimSpace(string(respBytes)))
	})
}
