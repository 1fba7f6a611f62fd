package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/moodchat/backend/internal/model/chat"
	"github.com/zhouzirui/moodchat/backend/internal/model/resource"
	"github.com/zhouzirui/moodchat/backend/internal/service/ai"
	chatservice "github.com/zhouzirui/moodchat/backend/internal/service/chat"
)

type cannedResponder struct{}

func (cannedResponder) Generate(context.Context, string, []chat.Message) ai.Reply {
	return ai.Reply{Text: "I'm listening."}
}

type received struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func dial(t *testing.T) (*websocket.Conn, *chatservice.Service, string) {
	t.Helper()
	chatSvc := chatservice.NewService(chatservice.NewOrchestrator(cannedResponder{}))
	notice, ok := resource.Resolve(resource.NewMemoryStore(resource.Seed()), "ke")
	require.True(t, ok)

	r := chi.NewRouter()
	New(chatSvc, notice).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	session, err := chatSvc.CreateSession(context.Background())
	require.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + session.ID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, chatSvc, session.ID
}

func readN(t *testing.T, conn *websocket.Conn, n int) []received {
	t.Helper()
	out := make([]received, 0, n)
	for i := 0; i < n; i++ {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg received
		require.NoError(t, conn.ReadJSON(&msg))
		out = append(out, msg)
	}
	return out
}

func types(msgs []received) []string {
	names := make([]string, len(msgs))
	for i, m := range msgs {
		names[i] = m.Type
	}
	return names
}

func TestTextTurn(t *testing.T) {
	conn, chatSvc, sessionID := dial(t)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "text", "data": map[string]string{"text": "I feel amazing today!"}}))
	msgs := readN(t, conn, 3)
	assert.Equal(t, []string{"reply", "mood", "coping"}, types(msgs))

	var mood chat.MoodSample
	require.NoError(t, json.Unmarshal(msgs[1].Data, &mood))
	assert.Equal(t, "Very Positive", string(mood.Category))

	session, err := chatSvc.GetSession(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Len(t, session.Messages, 2)
}

func TestCrisisTurnSendsNoticeFirst(t *testing.T) {
	conn, _, _ := dial(t)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "text", "data": map[string]string{"text": "I want to kill myself"}}))
	msgs := readN(t, conn, 4)
	assert.Equal(t, []string{"crisis", "reply", "mood", "coping"}, types(msgs))

	var notice resource.Notice
	require.NoError(t, json.Unmarshal(msgs[0].Data, &notice))
	assert.Equal(t, "ke", notice.Locale)
}

func TestSummaryAndReset(t *testing.T) {
	conn, _, _ := dial(t)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "text", "data": map[string]string{"text": "I am happy"}}))
	readN(t, conn, 3)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "summary"}))
	msg := readN(t, conn, 1)[0]
	require.Equal(t, "summary", msg.Type)
	var summary chatservice.Summary
	require.NoError(t, json.Unmarshal(msg.Data, &summary))
	assert.Equal(t, 1, summary.TotalMessages)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "reset"}))
	msg = readN(t, conn, 1)[0]
	require.Equal(t, "reset", msg.Type)
	var session chat.Session
	require.NoError(t, json.Unmarshal(msg.Data, &session))
	assert.Empty(t, session.Messages)
}

func TestUnsupportedAndBlankMessages(t *testing.T) {
	conn, _, _ := dial(t)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "text", "data": map[string]string{"text": "  "}}))
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "audio"}))

	msg := readN(t, conn, 1)[0]
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, string(msg.Data), "unsupported message type")
}

func TestUnknownSessionRejected(t *testing.T) {
	chatSvc := chatservice.NewService(chatservice.NewOrchestrator(cannedResponder{}))
	r := chi.NewRouter()
	New(chatSvc, resource.Seed()[0]).RegisterRoutes(r)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ws/missing", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
