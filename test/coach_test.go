package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/2beens/fitcoach/internal/coach"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) coachChatRequest(
	ctx context.Context,
	token, message string,
) (*http.Response, []byte) {
	chatReqJson, err := json.Marshal(coach.ChatRequest{Message: message})
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/coach/chat", serverEndpoint),
		strings.NewReader(string(chatReqJson)),
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(authTokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	return resp, respBytes
}

func (s *IntegrationTestSuite) TestCoachChatAndLines() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("coach line needs no token", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/coach/line", serverEndpoint), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var line coach.Line
		require.NoError(t, json.Unmarshal(respBytes, &line))
		assert.NotEmpty(t, line.Text)
		assert.NotEmpty(t, line.Mood)
	})

	t.Run("coach line for a mood", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/coach/line/hype", serverEndpoint), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var line coach.Line
		require.NoError(t, json.Unmarshal(respBytes, &line))
		assert.NotEmpty(t, line.Text)
		assert.Equal(t, "hype", line.Mood)
	})

	t.Run("chat without token", func(t *testing.T) {
		resp, respBytes := s.coachChatRequest(ctx, "", "hello coach")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "no can do", strings.TrimSpace(string(respBytes)))
	})

	token := doLogin(ctx, t)

	t.Run("chat falls back to canned lines", func(t *testing.T) {
		// no model client in the test server
		resp, respBytes := s.coachChatRequest(ctx, token, "hello coach")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var chatResp coach.ChatResponse
		require.NoError(t, json.Unmarshal(respBytes, &chatResp))
		assert.NotEmpty(t, chatResp.Reply)
		assert.Nil(t, chatResp.Workout)
	})

	t.Run("chat spots a workout request", func(t *testing.T) {
		message := "build me a leg workout for 30 minutes"
		resp, respBytes := s.coachChatRequest(ctx, token, message)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var chatResp coach.ChatResponse
		require.NoError(t, json.Unmarshal(respBytes, &chatResp))
		assert.Equal(t, "On it. Your workout is ready in the workout view.", chatResp.Reply)
		require.NotNil(t, chatResp.Workout)
		assert.Equal(t, message, chatResp.Workout.Focus)
		assert.Equal(t, []string{"legs"}, chatResp.Workout.MuscleGroups)
		assert.Equal(t, 30, chatResp.Workout.DurationMinutes)
	})

	t.Run("chat with empty message", func(t *testing.T) {
		resp, respBytes := s.coachChatRequest(ctx, token, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "error, message empty", strings.TrimSpace(string(respBytes)))
	})
}
