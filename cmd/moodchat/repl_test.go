package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/moodchat/backend/internal/model/chat"
	"github.com/zhouzirui/moodchat/backend/internal/model/resource"
	"github.com/zhouzirui/moodchat/backend/internal/service/ai"
	chatservice "github.com/zhouzirui/moodchat/backend/internal/service/chat"
)

type cannedResponder struct{}

func (cannedResponder) Generate(context.Context, string, []chat.Message) ai.Reply {
	return ai.Reply{Text: "I hear you."}
}

func runScript(t *testing.T, script string) string {
	t.Helper()
	notice, ok := resource.Resolve(resource.NewMemoryStore(resource.Seed()), "ke")
	require.True(t, ok)

	var out bytes.Buffer
	r := &repl{
		orch:   chatservice.NewOrchestrator(cannedResponder{}),
		notice: notice,
		in:     strings.NewReader(script),
		out:    &out,
	}
	require.NoError(t, r.run(context.Background()))
	return out.String()
}

func TestREPLTurnAndSummary(t *testing.T) {
	out := runScript(t, "I feel amazing today!\n/summary\n/quit\n")

	assert.Contains(t, out, "I hear you.")
	assert.Contains(t, out, "Very Positive")
	assert.Contains(t, out, "messages: 1")
	assert.NotContains(t, out, "Crisis Alert")
}

func TestREPLCrisisNoticeBeforeReply(t *testing.T) {
	out := runScript(t, "I want to kill myself\n")

	crisisAt := strings.Index(out, "Crisis Alert")
	replyAt := strings.Index(out, "I hear you.")
	require.GreaterOrEqual(t, crisisAt, 0)
	require.GreaterOrEqual(t, replyAt, 0)
	assert.Less(t, crisisAt, replyAt)
	assert.Contains(t, out, "999")
}

func TestREPLResetAndEmptySummary(t *testing.T) {
	out := runScript(t, "I am happy\n/reset\n/summary\n")

	assert.Contains(t, out, "Conversation cleared.")
	assert.Contains(t, out, "messages: 0")
	assert.Contains(t, out, "overall mood: "+chatservice.NoData)
}

func TestREPLResourcesAndBlankLines(t *testing.T) {
	out := runScript(t, "\n   \n/resources\n")

	assert.Contains(t, out, "Crisis Alert")
	assert.NotContains(t, out, "I hear you.")
}
