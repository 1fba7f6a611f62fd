package chat

import "time"

// Session captures one anonymous conversation and its mood trail.
type Session struct {
	ID                     string       `json:"id"`
	Messages               []Message    `json:"messages"`
	MoodHistory            []MoodSample `json:"moodHistory"`
	LatestCopingSuggestion string       `json:"latestCopingSuggestion"`
	StartedAt              time.Time    `json:"startedAt"`
}

// NewSession returns an empty session started at the given instant.
func NewSession(id string, startedAt time.Time) *Session {
	return &Session{
		ID:          id,
		Messages:    make([]Message, 0, 16),
		MoodHistory: make([]MoodSample, 0, 8),
		StartedAt:   startedAt,
	}
}

// Clone returns a deep copy that shares no slices with s.
func (s Session) Clone() Session {
	s.Messages = append([]Message(nil), s.Messages...)
	s.MoodHistory = append([]MoodSample(nil), s.MoodHistory...)
	return s
}

// UserTurns counts messages sent by the user.
func (s Session) UserTurns() int {
	count := 0
	for _, msg := range s.Messages {
		if msg.Sender == SenderUser {
			count++
		}
	}
	return count
}

// CurrentMood returns the most recent mood sample, if any.
func (s Session) CurrentMood() *MoodSample {
	if len(s.MoodHistory) == 0 {
		return nil
	}
	latest := s.MoodHistory[len(s.MoodHistory)-1]
	return &latest
}
