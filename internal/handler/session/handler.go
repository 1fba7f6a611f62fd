package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/moodchat/backend/internal/model/chat"
	"github.com/zhouzirui/moodchat/backend/internal/model/resource"
	chatService "github.com/zhouzirui/moodchat/backend/internal/service/chat"
	"github.com/zhouzirui/moodchat/backend/pkg/utils"
)

// Handler 会话相关的HTTP处理器
type Handler struct {
	chatSvc *chatService.Service
	notice  resource.Notice
}

// New 创建会话处理器，notice 为危机提示所用的资源
func New(chatSvc *chatService.Service, notice resource.Notice) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		notice:  notice,
	}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Route("/session/{sessionID}", func(sr chi.Router) {
		sr.Get("/", h.handleGetSession)
		sr.Delete("/", h.handleDeleteSession)
		sr.Post("/messages", h.handleSendMessage)
		sr.Post("/reset", h.handleReset)
		sr.Get("/summary", h.handleSummary)
		sr.Get("/mood", h.handleMood)
	})
}

// TurnResponse is the body returned for a processed message.
type TurnResponse struct {
	Turn         chatService.Turn `json:"turn"`
	CrisisNotice *resource.Notice `json:"crisisNotice,omitempty"`
}

// MoodResponse carries the chart data for a session.
type MoodResponse struct {
	MoodHistory []chat.MoodSample        `json:"moodHistory"`
	Trend       []chatService.TrendPoint `json:"trend"`
	CurrentMood *chat.MoodSample         `json:"currentMood,omitempty"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.chatSvc.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSendMessage 处理一轮用户输入，空白输入返回 204
func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	turn, ok, err := h.chatSvc.Submit(r.Context(), chi.URLParam(r, "sessionID"), payload.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := TurnResponse{Turn: turn}
	if turn.CrisisFlagged {
		notice := h.notice
		resp.CrisisNotice = &notice
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.Reset(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.chatSvc.Summary(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleMood(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, MoodResponse{
		MoodHistory: session.MoodHistory,
		Trend:       chatService.Trend(session.MoodHistory),
		CurrentMood: session.CurrentMood(),
	})
}

func respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, chatService.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondError(w, http.StatusInternalServerError, err.Error())
}
