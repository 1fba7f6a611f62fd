package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/moodchat/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/moodchat/backend/internal/model/chat"
	"github.com/zhouzirui/moodchat/backend/internal/model/resource"
	"github.com/zhouzirui/moodchat/backend/internal/service/ai"
	chatservice "github.com/zhouzirui/moodchat/backend/internal/service/chat"
)

type cannedResponder struct{}

func (cannedResponder) Generate(context.Context, string, []chat.Message) ai.Reply {
	return ai.Reply{Text: "I'm here with you."}
}

func setupRouter(t *testing.T) (*chi.Mux, *chatservice.Service) {
	t.Helper()
	chatSvc := chatservice.NewService(chatservice.NewOrchestrator(cannedResponder{}))
	notice, ok := resource.Resolve(resource.NewMemoryStore(resource.Seed()), "ke")
	require.True(t, ok)

	r := chi.NewRouter()
	New(chatSvc, notice).RegisterRoutes(r)
	return r, chatSvc
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func createSession(t *testing.T, r http.Handler) chat.Session {
	t.Helper()
	resp := do(r, http.MethodPost, "/session", "")
	require.Equal(t, http.StatusCreated, resp.Code)

	var session chat.Session
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &session))
	require.NotEmpty(t, session.ID)
	return session
}

func TestCreateAndGetSession(t *testing.T) {
	r, _ := setupRouter(t)
	session := createSession(t, r)

	resp := do(r, http.MethodGet, "/session/"+session.ID, "")
	require.Equal(t, http.StatusOK, resp.Code)

	var got chat.Session
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, session.ID, got.ID)
}

func TestSendMessageReturnsTurn(t *testing.T) {
	r, _ := setupRouter(t)
	session := createSession(t, r)

	resp := do(r, http.MethodPost, "/session/"+session.ID+"/messages", `{"text":"I feel amazing today!"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var body TurnResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.False(t, body.Turn.CrisisFlagged)
	assert.Nil(t, body.CrisisNotice)
	assert.Equal(t, sentiment.VeryPositive, body.Turn.Mood.Category)
	assert.Equal(t, "I'm here with you.", body.Turn.AssistantMessage.Text)
	assert.NotEmpty(t, body.Turn.CopingSuggestion)
}

func TestSendMessageCrisisIncludesNotice(t *testing.T) {
	r, _ := setupRouter(t)
	session := createSession(t, r)

	resp := do(r, http.MethodPost, "/session/"+session.ID+"/messages", `{"text":"I want to kill myself"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var body TurnResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Turn.CrisisFlagged)
	require.NotNil(t, body.CrisisNotice)
	assert.Equal(t, "ke", body.CrisisNotice.Locale)

	emergency, ok := body.CrisisNotice.Channel(resource.Emergency)
	require.True(t, ok)
	assert.Contains(t, emergency.Contact, "999")
}

func TestSendMessageBlankIsNoContent(t *testing.T) {
	r, chatSvc := setupRouter(t)
	session := createSession(t, r)

	resp := do(r, http.MethodPost, "/session/"+session.ID+"/messages", `{"text":"   "}`)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	got, err := chatSvc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Messages)
}

func TestSendMessageInvalidBody(t *testing.T) {
	r, _ := setupRouter(t)
	session := createSession(t, r)

	req := httptest.NewRequest(http.MethodPost, "/session/"+session.ID+"/messages", bytes.NewReader([]byte("{")))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/session/missing", ""},
		{http.MethodDelete, "/session/missing", ""},
		{http.MethodPost, "/session/missing/messages", `{"text":"hi"}`},
		{http.MethodPost, "/session/missing/reset", ""},
		{http.MethodGet, "/session/missing/summary", ""},
		{http.MethodGet, "/session/missing/mood", ""},
	} {
		resp := do(r, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, resp.Code, "%s %s", tc.method, tc.path)
	}
}

func TestSummaryMoodAndReset(t *testing.T) {
	r, _ := setupRouter(t)
	session := createSession(t, r)
	base := "/session/" + session.ID

	for _, text := range []string{"I am happy", "I feel sad"} {
		require.Equal(t, http.StatusOK, do(r, http.MethodPost, base+"/messages", `{"text":"`+text+`"}`).Code)
	}

	resp := do(r, http.MethodGet, base+"/summary", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var summary chatservice.Summary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.TotalMessages)
	assert.True(t, summary.HasData)

	resp = do(r, http.MethodGet, base+"/mood", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var mood MoodResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &mood))
	assert.Len(t, mood.MoodHistory, 2)
	require.Len(t, mood.Trend, 2)
	assert.Equal(t, 2, mood.Trend[1].Index)
	require.NotNil(t, mood.CurrentMood)
	assert.Equal(t, "I feel sad", mood.CurrentMood.SourceText)

	resp = do(r, http.MethodPost, base+"/reset", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var fresh chat.Session
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fresh))
	assert.Empty(t, fresh.Messages)
	assert.Empty(t, fresh.MoodHistory)

	resp = do(r, http.MethodGet, base+"/summary", "")
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &summary))
	assert.Equal(t, 0, summary.TotalMessages)
	assert.Equal(t, chatservice.NoData, summary.OverallMood)
}

func TestDeleteSession(t *testing.T) {
	r, _ := setupRouter(t)
	session := createSession(t, r)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/session/"+session.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/session/"+session.ID, "").Code)
}
