package coach

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/fitcoach/internal/auth"
	"github.com/2beens/fitcoach/internal/coach/generator"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type chatGenerator interface {
	ChatReply(ctx context.Context, userID int, message string, userCtx generator.UserContext) (string, error)
}

type userContextProvider interface {
	UserContext(ctx context.Context, userID int) (generator.UserContext, error)
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply   string          `json:"reply"`
	Workout *WorkoutRequest `json:"workout,omitempty"`
}

type Handler struct {
	// generator stays nil when no API key is configured, chat then
	// falls back to canned lines
	generator   chatGenerator
	userContext userContextProvider
	lines       *LinesManager
}

func NewHandler(
	gen chatGenerator,
	userContext userContextProvider,
	lines *LinesManager,
) *Handler {
	return &Handler{
		generator:   gen,
		userContext: userContext,
		lines:       lines,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/chat", handler.handleChat).Methods("POST", "OPTIONS").Name("coach-chat")
	router.HandleFunc("/line", handler.handleGetLine).Methods("GET").Name("coach-line")
	router.HandleFunc("/line/{mood}", handler.handleGetLine).Methods("GET").Name("coach-line-mood")
}

func (handler *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.chat")
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

	var chatReq ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&chatReq); err != nil {
		log.Tracef("coach chat, unmarshal json params: %s", err)
		http.Error(w, "chat failed", http.StatusBadRequest)
		return
	}
	if chatReq.Message == "" {
		http.Error(w, "error, message empty", http.StatusBadRequest)
		return
	}

	resp := handler.chatResponse(ctx, userID, chatReq.Message)

	respBytes, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("coach chat, marshal response: %s", err)
		http.Error(w, "chat failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

func (handler *Handler) chatResponse(ctx context.Context, userID int, message string) ChatResponse {
	if IsWorkoutRequest(message) {
		workout := ParseWorkoutRequest(message)
		return ChatResponse{
			Reply:   "On it. Your workout is ready in the workout view.",
			Workout: &workout,
		}
	}

	if handler.generator == nil {
		return ChatResponse{Reply: handler.cannedReply()}
	}

	userCtx, err := handler.userContext.UserContext(ctx, userID)
	if err != nil {
		log.Errorf("coach chat, build user context for user %d: %s", userID, err)
		return ChatResponse{Reply: handler.cannedReply()}
	}

	reply, err := handler.generator.ChatReply(ctx, userID, message, userCtx)
	if err != nil {
		log.Errorf("coach chat, generate reply for user %d: %s", userID, err)
		return ChatResponse{Reply: handler.cannedReply()}
	}

	return ChatResponse{Reply: TrimReply(StripMarkdown(reply))}
}

func (handler *Handler) cannedReply() string {
	if handler.lines == nil {
		return "Coach is catching a breath. Ask me again in a minute."
	}
	return handler.lines.RandomLine().Text
}

func (handler *Handler) handleGetLine(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.getLine")
	defer span.End()

	if handler.lines == nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	vars := mux.Vars(r)
	mood := vars["mood"]

	var line *Line
	if mood != "" {
		line = handler.lines.RandomLineForMood(mood)
	} else {
		line = handler.lines.RandomLine()
	}

	lineBytes, err := json.Marshal(line)
	if err != nil {
		log.Errorf("marshal coach line: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, lineBytes, http.StatusOK)
}
