package store

import (
	"sync"

	"statusplay/internal/models"
)

// MemoryStore implements Store with in-process maps. It is the default
// driver for development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	username string
	hasUser  bool
	chat     map[string][]models.ChatMessage
	limit    int
}

// NewMemoryStore creates an in-memory store with the given chat log limit
func NewMemoryStore(chatLimit int) *MemoryStore {
	return &MemoryStore{
		chat:  make(map[string][]models.ChatMessage),
		limit: chatLimit,
	}
}

func (m *MemoryStore) Username() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.hasUser {
		return "", nil
	}
	return m.username, nil
}

func (m *MemoryStore) SetUsername(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.username = name
	m.hasUser = true
	return nil
}

func (m *MemoryStore) ClearUsername() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.username = ""
	m.hasUser = false
	return nil
}

func (m *MemoryStore) ChatLog(team string) ([]models.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msgs := m.chat[ChatKey(team)]
	out := make([]models.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (m *MemoryStore) SaveChatLog(team string, msgs []models.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]models.ChatMessage, len(msgs))
	copy(stored, msgs)
	m.chat[ChatKey(team)] = clampChat(stored, m.limit)
	return nil
}

func (m *MemoryStore) AppendChat(team string, msg models.ChatMessage) ([]models.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := ChatKey(team)
	msgs := clampChat(append(m.chat[key], msg), m.limit)
	m.chat[key] = msgs

	out := make([]models.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
