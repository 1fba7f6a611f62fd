package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/zhouzirui/moodchat/backend/internal/analysis/coping"
	"github.com/zhouzirui/moodchat/backend/internal/analysis/crisis"
	"github.com/zhouzirui/moodchat/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/moodchat/backend/internal/logger"
	"github.com/zhouzirui/moodchat/backend/internal/model/chat"
	"github.com/zhouzirui/moodchat/backend/internal/service/ai"
)

// Responder produces the assistant reply for a user message. *ai.Generator
// satisfies it; tests substitute a double.
type Responder interface {
	Generate(ctx context.Context, message string, history []chat.Message) ai.Reply
}

// Turn summarises what happened during one user turn.
type Turn struct {
	CrisisFlagged    bool            `json:"crisisFlagged"`
	UserMessage      chat.Message    `json:"userMessage"`
	AssistantMessage chat.Message    `json:"assistantMessage"`
	Mood             chat.MoodSample `json:"mood"`
	CopingSuggestion string          `json:"copingSuggestion"`
	FallbackUsed     bool            `json:"fallbackUsed"`
}

type turnConfig struct {
	onCrisis func()
}

// TurnOption customises a single RunTurn call.
type TurnOption func(*turnConfig)

// WithCrisisHook registers fn to run as soon as the message is flagged, before
// the reply is generated. It fires on every flagged turn.
func WithCrisisHook(fn func()) TurnOption {
	return func(c *turnConfig) {
		c.onCrisis = fn
	}
}

// Orchestrator runs the per-turn pipeline over an explicitly passed session.
// It holds no session state itself; callers serialise access per session.
type Orchestrator struct {
	responder Responder
	now       func() time.Time
	log       *log.Logger
}

// NewOrchestrator wires the reply generator into the turn pipeline.
func NewOrchestrator(responder Responder) *Orchestrator {
	return &Orchestrator{
		responder: responder,
		now:       func() time.Time { return time.Now().UTC() },
		log:       logger.For("chat"),
	}
}

// RunTurn processes one user message. Blank input is ignored and reported
// with ok == false; nothing is appended and the responder is not called.
func (o *Orchestrator) RunTurn(ctx context.Context, session *chat.Session, text string, opts ...TurnOption) (turn Turn, ok bool) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, false
	}

	var cfg turnConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	turn.CrisisFlagged = crisis.Detect(text)
	if turn.CrisisFlagged {
		o.log.Warn("crisis language detected", "session", session.ID)
		if cfg.onCrisis != nil {
			cfg.onCrisis()
		}
	}

	history := session.Messages
	turn.UserMessage = chat.Message{Sender: chat.SenderUser, Text: text, Timestamp: o.now()}
	session.Messages = append(session.Messages, turn.UserMessage)

	scored := sentiment.Classify(text)

	// history 是追加用户消息之前的切片，不包含本轮消息。
	reply := o.responder.Generate(ctx, text, history[:len(history):len(history)])
	turn.FallbackUsed = reply.Fallback

	turn.AssistantMessage = chat.Message{Sender: chat.SenderAssistant, Text: reply.Text, Timestamp: o.now()}
	session.Messages = append(session.Messages, turn.AssistantMessage)

	turn.Mood = chat.MoodSample{
		SourceText:   text,
		Category:     scored.Category,
		Polarity:     scored.Polarity,
		Subjectivity: scored.Subjectivity,
		Color:        scored.Color,
		Timestamp:    turn.UserMessage.Timestamp,
	}
	session.MoodHistory = append(session.MoodHistory, turn.Mood)

	turn.CopingSuggestion = coping.Select(turn.Mood.Category, turn.Mood.Polarity)
	session.LatestCopingSuggestion = turn.CopingSuggestion

	o.log.Info("turn recorded",
		"session", session.ID,
		"category", turn.Mood.Category,
		"polarity", turn.Mood.Polarity,
		"crisis", turn.CrisisFlagged,
		"fallback", turn.FallbackUsed,
	)
	return turn, true
}

// Reset clears the session's log, mood history and suggestion and restarts
// its clock. The whole value is replaced in one assignment.
func (o *Orchestrator) Reset(session *chat.Session) {
	*session = *chat.NewSession(session.ID, o.now())
}
