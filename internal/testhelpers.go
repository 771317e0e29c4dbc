package internal

import (
	"time"
)

// CreateTestConversation builds a greeting-seeded conversation with one
// user/assistant exchange appended.
func CreateTestConversation() []Message {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []Message{
		NewAssistantMessage("Hi! I'm ChatterBot. Ask me anything.", base.Format(time.RFC3339), ""),
		NewUserMessage("Hello, how are you?", base.Add(time.Minute)),
		NewAssistantMessage("I'm doing well, thank you!", base.Add(2*time.Minute).Format(time.RFC3339), "llama3"),
	}
}

// CreateTestTranscript builds a transcript around the test conversation.
func CreateTestTranscript() *Transcript {
	return &Transcript{
		SavedAt:  time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC).Format(time.RFC3339),
		Server:   "http://localhost:8000",
		Messages: CreateTestConversation(),
	}
}

// CreateTestTranscriptWithMessages builds a transcript with custom messages.
func CreateTestTranscriptWithMessages(messages []Message) *Transcript {
	return &Transcript{
		SavedAt:  time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC).Format(time.RFC3339),
		Server:   "http://localhost:8000",
		Messages: messages,
	}
}
