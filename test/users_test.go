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

	"github.com/2beens/fitcoach/internal/checkins/recap"
	"github.com/2beens/fitcoach/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestSignupAndProfile() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	username := fmt.Sprintf("mara_%d", time.Now().UnixNano())
	password := "mara-pass-123"

	signupReq := users.SignupRequest{
		Username:      username,
		Password:      password,
		DisplayName:   "Mara",
		Age:           "28",
		Sex:           "female",
		HeightFeet:    "5",
		HeightInches:  "6",
		WeightLbs:     "140",
		Goal:          "maintain",
		TrainingDays:  3,
		GymAccess:     "home_gym",
		Equipment:     []string{"dumbbells", "bands"},
		Experience:    "beginner",
		CheckinDay:    "1",
		Timezone:      "Europe/Berlin",
		MacroCalories: "1900",
		MacroProtein:  "130",
		MacroCarbs:    "180",
		MacroFat:      "60",
	}

	user := s.signupUser(ctx, signupReq)
	assert.Equal(t, username, user.Username)
	assert.Equal(t, "Mara", user.DisplayName)
	assert.Equal(t, recap.GoalMaintain, user.Goal)
	assert.Equal(t, 28, user.Age)
	assert.InDelta(t, 167.64, user.HeightCm, 0.01) // 5 ft 6 in
	assert.InDelta(t, 63.5, user.WeightKg, 0.01)   // 140 lbs
	assert.Equal(t, []string{"dumbbells", "bands"}, user.Equipment)
	assert.Equal(t, users.MacroTargets{Calories: 1900, Protein: 130, Carbs: 180, Fat: 60}, user.Macros)
	assert.Equal(t, "Europe/Berlin", user.Timezone)

	token := loginAs(ctx, t, username, password)

	t.Run("get me", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/users/me", serverEndpoint), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(authTokenHeader, token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		// the password hash must never show up in profile responses
		assert.NotContains(t, strings.ToLower(string(respBytes)), "password")

		var me users.User
		require.NoError(t, json.Unmarshal(respBytes, &me))
		assert.Equal(t, user.ID, me.ID)
		assert.Equal(t, username, me.Username)
	})

	t.Run("get me without token", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/users/me", serverEndpoint), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "no can do", strings.TrimSpace(string(respBytes)))
	})

	t.Run("update me", func(t *testing.T) {
		trainingDays := 4
		updateReqJson, err := json.Marshal(users.UpdateRequest{
			DisplayName:  "Mara L.",
			Goal:         "loseWeight",
			WeightLbs:    "135",
			TrainingDays: &trainingDays,
		})
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(ctx, "PUT", fmt.Sprintf("%s/users/me", serverEndpoint), bytes.NewBuffer(updateReqJson))
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

		var updated users.User
		require.NoError(t, json.Unmarshal(respBytes, &updated))
		assert.Equal(t, "Mara L.", updated.DisplayName)
		assert.Equal(t, recap.GoalLoseWeight, updated.Goal)
		assert.Equal(t, 4, updated.TrainingDays)
		assert.InDelta(t, 61.23, updated.WeightKg, 0.01) // 135 lbs
		// untouched fields stay as they were
		assert.InDelta(t, 167.64, updated.HeightCm, 0.01)
		assert.Equal(t, []string{"dumbbells", "bands"}, updated.Equipment)
	})

	t.Run("body scan", func(t *testing.T) {
		bodyScanRequest := func() users.BodyScanResponse {
			req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/users/me/bodyscan", serverEndpoint), nil)
			require.NoError(t, err)
			req.Header.Set("User-Agent", "test-agent")
			req.Header.Set(authTokenHeader, token)

			resp, err := s.httpClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			respBytes, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var scanResp users.BodyScanResponse
			require.NoError(t, json.Unmarshal(respBytes, &scanResp))
			return scanResp
		}

		first := bodyScanRequest()
		assert.False(t, first.Cached)
		assert.Greater(t, first.BMR, 1000)
		assert.Greater(t, first.TDEE, first.BMR)
		assert.Greater(t, first.BodyFatPct, 3.0)
		assert.Less(t, first.BodyFatPct, 60.0)

		// and the second scan comes from the cache
		second := bodyScanRequest()
		assert.True(t, second.Cached)
		assert.Equal(t, first.BMR, second.BMR)
		assert.Equal(t, first.TDEE, second.TDEE)
		assert.Equal(t, first.BodyFatPct, second.BodyFatPct)
	})

	t.Run("username taken", func(t *testing.T) {
		signupReqJson, err := json.Marshal(signupReq)
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/users", serverEndpoint), bytes.NewBuffer(signupReqJson))
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "error, username taken", strings.TrimSpace(string(respBytes)))
	})

	t.Run("invalid goal", func(t *testing.T) {
		badReq := signupReq
		badReq.Username = fmt.Sprintf("rob_%d", time.Now().UnixNano())
		badReq.Goal = "get-shredded-yesterday"
		badReqJson, err := json.Marshal(badReq)
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/users", serverEndpoint), bytes.NewBuffer(badReqJson))
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "error, invalid goal", strings.TrimSpace(string(respBytes)))
	})
}
