package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/moodchat/backend/internal/logger"
	"github.com/zhouzirui/moodchat/backend/internal/model/resource"
	chatservice "github.com/zhouzirui/moodchat/backend/internal/service/chat"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

// Handler WebSocket会话处理器，同一连接上的消息按顺序处理
type Handler struct {
	chatSvc  *chatservice.Service
	notice   resource.Notice
	upgrader websocket.Upgrader
	log      *log.Logger
}

// New 创建WebSocket处理器
func New(chatSvc *chatservice.Service, notice resource.Notice) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		notice:  notice,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: logger.For("ws"),
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
}

// TextMessage 文本消息
type TextMessage struct {
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// connection serialises writes; the ping loop uses WriteControl which is
// safe to call concurrently.
type connection struct {
	conn      *websocket.Conn
	sessionID string
	log       *log.Logger
}

func (c *connection) send(kind string, data interface{}) {
	msg := outgoingMessage{
		Type:      kind,
		SessionID: c.sessionID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteJSON(msg); err != nil {
		c.log.Warn("write failed", "type", kind, "err", err)
	}
}

func (c *connection) sendError(message string) {
	c.send("error", map[string]string{"message": message})
}

// handleWebSocket 处理WebSocket连接
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	h.log.Info("new connection", "session", sessionID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	go pingLoop(ctx, conn)

	c := &connection{conn: conn, sessionID: sessionID, log: h.log}
	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("read error", "session", sessionID, "err", err)
			}
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		if msg.SessionID != "" && msg.SessionID != sessionID {
			c.sendError("session mismatch")
			continue
		}

		h.handleMessage(ctx, c, &msg)
	}
}

func (h *Handler) handleMessage(ctx context.Context, c *connection, msg *inboundMessage) {
	switch msg.Type {
	case "text":
		h.handleText(ctx, c, msg.Data)
	case "reset":
		session, err := h.chatSvc.Reset(ctx, c.sessionID)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.send("reset", session)
	case "summary":
		summary, err := h.chatSvc.Summary(ctx, c.sessionID)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.send("summary", summary)
	default:
		c.sendError("unsupported message type: " + msg.Type)
	}
}

func (h *Handler) handleText(ctx context.Context, c *connection, raw json.RawMessage) {
	var text TextMessage
	if err := json.Unmarshal(raw, &text); err != nil {
		c.sendError("invalid text payload")
		return
	}

	crisisHook := chatservice.WithCrisisHook(func() {
		c.send("crisis", h.notice)
	})

	turn, ok, err := h.chatSvc.Submit(ctx, c.sessionID, text.Text, crisisHook)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	if !ok {
		return
	}

	c.send("reply", map[string]any{
		"text":     turn.AssistantMessage.Text,
		"fallback": turn.FallbackUsed,
	})
	c.send("mood", turn.Mood)
	c.send("coping", map[string]string{"text": turn.CopingSuggestion})
}

// pingLoop 定期发送ping消息
func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
