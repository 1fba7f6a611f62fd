package chat_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/moodchat/backend/internal/model/chat"
	"github.com/zhouzirui/moodchat/backend/internal/service/ai"
	chatservice "github.com/zhouzirui/moodchat/backend/internal/service/chat"
)

type echoResponder struct{}

func (echoResponder) Generate(_ context.Context, message string, _ []chat.Message) ai.Reply {
	return ai.Reply{Text: "heard: " + message}
}

func newService() *chatservice.Service {
	return chatservice.NewService(chatservice.NewOrchestrator(echoResponder{}))
}

func TestServiceGetSession(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)

	got, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Empty(t, got.Messages)
}

func TestServiceGetSessionNotFound(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, chatservice.ErrSessionNotFound)

	_, _, err = svc.Submit(ctx, "missing", "hello")
	assert.ErrorIs(t, err, chatservice.ErrSessionNotFound)

	_, err = svc.Reset(ctx, "missing")
	assert.ErrorIs(t, err, chatservice.ErrSessionNotFound)

	_, err = svc.Summary(ctx, "missing")
	assert.ErrorIs(t, err, chatservice.ErrSessionNotFound)

	assert.ErrorIs(t, svc.DeleteSession(ctx, "missing"), chatservice.ErrSessionNotFound)
}

func TestServiceSnapshotIsDetached(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, ok, err := svc.Submit(ctx, session.ID, "I feel amazing today!")
	require.NoError(t, err)
	require.True(t, ok)

	snapshot, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, snapshot.Messages, 2)
	snapshot.Messages[0].Text = "tampered"
	snapshot.MoodHistory = nil

	again, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "I feel amazing today!", again.Messages[0].Text)
	assert.Len(t, again.MoodHistory, 1)
}

func TestServiceSubmitBlank(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, ok, err := svc.Submit(ctx, session.ID, "   ")
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Messages)
}

func TestServiceResetAndSummary(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	for _, text := range []string{"I am happy", "I feel sad"} {
		_, _, err := svc.Submit(ctx, session.ID, text)
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalMessages)
	assert.True(t, summary.HasData)

	fresh, err := svc.Reset(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, fresh.ID)
	assert.Empty(t, fresh.Messages)
	assert.Empty(t, fresh.MoodHistory)

	summary, err = svc.Summary(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalMessages)
	assert.Equal(t, chatservice.NoData, summary.OverallMood)
}

func TestServiceDeleteAndList(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	b, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{a.ID, b.ID}, svc.ListSessions(ctx))

	require.NoError(t, svc.DeleteSession(ctx, a.ID))
	assert.Equal(t, []string{b.ID}, svc.ListSessions(ctx))

	_, err = svc.GetSession(ctx, a.ID)
	assert.ErrorIs(t, err, chatservice.ErrSessionNotFound)
}

func TestServiceConcurrentSubmitsKeepInvariants(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	sessions := make([]chat.Session, 3)
	for i := range sessions {
		s, err := svc.CreateSession(ctx)
		require.NoError(t, err)
		sessions[i] = s
	}

	const perSession = 25
	var wg sync.WaitGroup
	for _, s := range sessions {
		for i := 0; i < perSession; i++ {
			wg.Add(1)
			go func(id string, i int) {
				defer wg.Done()
				_, _, _ = svc.Submit(ctx, id, fmt.Sprintf("turn %d", i))
			}(s.ID, i)
		}
	}
	wg.Wait()

	for _, s := range sessions {
		got, err := svc.GetSession(ctx, s.ID)
		require.NoError(t, err)
		assert.Len(t, got.MoodHistory, perSession)
		require.Len(t, got.Messages, 2*perSession)
		for i := 0; i < len(got.Messages); i += 2 {
			assert.Equal(t, chat.SenderUser, got.Messages[i].Sender)
			assert.Equal(t, chat.SenderAssistant, got.Messages[i+1].Sender)
			assert.Equal(t, "heard: "+got.Messages[i].Text, got.Messages[i+1].Text)
		}
	}
}
