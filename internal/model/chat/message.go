package chat

import (
	"time"

	"github.com/zhouzirui/moodchat/backend/internal/analysis/sentiment"
)

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one immutable entry of the session log.
type Message struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// MoodSample records the sentiment of a single user turn.
type MoodSample struct {
	SourceText   string             `json:"sourceText"`
	Category     sentiment.Category `json:"category"`
	Polarity     float64            `json:"polarity"`
	Subjectivity float64            `json:"subjectivity"`
	Color        sentiment.Color    `json:"color"`
	Timestamp    time.Time          `json:"timestamp"`
}
