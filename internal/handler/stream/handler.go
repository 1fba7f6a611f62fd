package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/moodchat/backend/internal/logger"
	"github.com/zhouzirui/moodchat/backend/internal/model/resource"
	chatService "github.com/zhouzirui/moodchat/backend/internal/service/chat"
	"github.com/zhouzirui/moodchat/backend/pkg/utils"
)

// Handler manages turn results delivered via Server-Sent Events
type Handler struct {
	chatSvc *chatService.Service
	notice  resource.Notice
	log     *log.Logger
}

// New creates a new stream handler
func New(chatSvc *chatService.Service, notice resource.Notice) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		notice:  notice,
		log:     logger.For("stream"),
	}
}

// StreamResponse represents a streaming response chunk
type StreamResponse struct {
	SessionID string `json:"sessionId,omitempty"`
	Content   string `json:"content,omitempty"`
	Fallback  bool   `json:"fallback,omitempty"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

// RegisterRoutes 注册 SSE 路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream/{sessionID}", h.handleStream)
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	userMessage := r.URL.Query().Get("message")

	if strings.TrimSpace(userMessage) == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	if err := h.HandleStreamRequest(r.Context(), w, sessionID, userMessage); err != nil {
		h.log.Error("stream request failed", "session", sessionID, "err", err)
	}
}

// HandleStreamRequest runs one turn and reports each stage as an SSE event.
// A crisis notice is written before the reply is generated.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID string, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return errors.New("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	if err := utils.SendSSEEvent(w, flusher, "start", StreamResponse{SessionID: sessionID}); err != nil {
		return err
	}

	crisisHook := chatService.WithCrisisHook(func() {
		if err := utils.SendSSEEvent(w, flusher, "crisis", h.notice); err != nil {
			h.log.Warn("failed to send crisis notice", "session", sessionID, "err", err)
		}
	})

	turn, processed, err := h.chatSvc.Submit(ctx, sessionID, userMessage, crisisHook)
	if err != nil {
		h.sendSSEError(w, flusher, sessionID, err.Error())
		return fmt.Errorf("submit turn: %w", err)
	}
	if !processed {
		return utils.SendSSEEvent(w, flusher, "end", StreamResponse{SessionID: sessionID, Finished: true})
	}

	events := []struct {
		name string
		data any
	}{
		{"message", StreamResponse{SessionID: sessionID, Content: turn.AssistantMessage.Text, Fallback: turn.FallbackUsed}},
		{"mood", turn.Mood},
		{"coping", StreamResponse{SessionID: sessionID, Content: turn.CopingSuggestion}},
		{"end", StreamResponse{SessionID: sessionID, Finished: true}},
	}
	for _, ev := range events {
		if err := utils.SendSSEEvent(w, flusher, ev.name, ev.data); err != nil {
			return fmt.Errorf("send %s event: %w", ev.name, err)
		}
	}

	h.log.Debug("completed stream turn", "session", sessionID, "crisis", turn.CrisisFlagged)
	return nil
}

// sendSSEError sends an error via Server-Sent Events
func (h *Handler) sendSSEError(w http.ResponseWriter, flusher http.Flusher, sessionID, errorMsg string) {
	if err := utils.SendSSEEvent(w, flusher, "error", StreamResponse{SessionID: sessionID, Error: errorMsg}); err != nil {
		h.log.Warn("failed to send error event", "session", sessionID, "err", err)
	}
}
