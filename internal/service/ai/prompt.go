package ai

import "github.com/zhouzirui/moodchat/backend/internal/model/chat"

// SystemPrompt defines the assistant persona sent ahead of every conversation.
const SystemPrompt = `You are a compassionate and knowledgeable mental health support chatbot. Your role is to:
1. Provide empathetic, non-judgmental responses
2. Offer general mental health support and coping strategies
3. Encourage users to seek professional help when necessary
4. Never provide medical diagnoses or replace professional therapy
5. Use active listening techniques and validate feelings
6. Suggest practical coping mechanisms when relevant
7. Be supportive and encouraging while maintaining appropriate boundaries
8. Maintain user privacy and confidentiality at all times
9. Use clear, simple language to ensure understanding
10. Be aware of cultural sensitivities and adapt responses accordingly

Remember: if someone expresses suicidal thoughts or immediate danger, encourage them to seek emergency help or contact a mental health professional immediately.`

// Role is the speaker tag understood by the completion backends.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged prompt message.
type Turn struct {
	Role    Role
	Content string
}

// roleFor maps a log sender to a prompt role. Anything that is not the
// assistant is treated as the user.
func roleFor(sender chat.Sender) Role {
	if sender == chat.SenderAssistant {
		return RoleAssistant
	}
	return RoleUser
}

// buildTurns keeps the most recent limit history messages, oldest first, and
// appends the current user message.
func buildTurns(history []chat.Message, message string, limit int) []Turn {
	startIdx := 0
	if len(history) > limit {
		startIdx = len(history) - limit
	}

	turns := make([]Turn, 0, len(history)-startIdx+1)
	for _, msg := range history[startIdx:] {
		turns = append(turns, Turn{Role: roleFor(msg.Sender), Content: msg.Text})
	}
	return append(turns, Turn{Role: RoleUser, Content: message})
}
