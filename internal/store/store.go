package store

import "statusplay/internal/models"

// Key names mirror the legacy browser localStorage layout so exported
// data stays readable across versions.
const usernameKey = "padel_username"

// ChatKey derives the storage key for a team's chat log
func ChatKey(team string) string {
	return "chat_" + team
}

// Store is the local key-value persistence layer: the last-known display
// name and one JSON-encoded chat log per team. Chat logs are bounded;
// appending past the limit evicts the oldest messages.
type Store interface {
	Username() (string, error)
	SetUsername(name string) error
	ClearUsername() error

	ChatLog(team string) ([]models.ChatMessage, error)
	SaveChatLog(team string, msgs []models.ChatMessage) error
	AppendChat(team string, msg models.ChatMessage) ([]models.ChatMessage, error)

	Close() error
}

// clampChat drops the oldest messages so the log stays within limit
func clampChat(msgs []models.ChatMessage, limit int) []models.ChatMessage {
	if limit > 0 && len(msgs) > limit {
		return msgs[len(msgs)-limit:]
	}
	return msgs
}
