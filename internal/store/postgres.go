package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"statusplay/internal/models"
)

// PostgresStore implements Store against a shared Postgres instance so a
// user's chat history and last login survive dashboard redeployments
type PostgresStore struct {
	db    *sql.DB
	limit int
}

// NewPostgresStore connects to Postgres and ensures the schema
func NewPostgresStore(connString string, chatLimit int) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresStore{db: db, limit: chatLimit}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *PostgresStore) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *PostgresStore) put(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	return err
}

func (s *PostgresStore) Username() (string, error) {
	name, _, err := s.get(usernameKey)
	return name, err
}

func (s *PostgresStore) SetUsername(name string) error {
	return s.put(usernameKey, name)
}

func (s *PostgresStore) ClearUsername() error {
	_, err := s.db.Exec(`DELETE FROM kv_store WHERE key = $1`, usernameKey)
	return err
}

func (s *PostgresStore) ChatLog(team string) ([]models.ChatMessage, error) {
	value, ok, err := s.get(ChatKey(team))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.ChatMessage{}, nil
	}

	var msgs []models.ChatMessage
	if err := json.Unmarshal([]byte(value), &msgs); err != nil {
		return nil, fmt.Errorf("corrupt chat log for team %s: %w", team, err)
	}
	return msgs, nil
}

func (s *PostgresStore) SaveChatLog(team string, msgs []models.ChatMessage) error {
	data, err := json.Marshal(clampChat(msgs, s.limit))
	if err != nil {
		return err
	}
	return s.put(ChatKey(team), string(data))
}

func (s *PostgresStore) AppendChat(team string, msg models.ChatMessage) ([]models.ChatMessage, error) {
	msgs, err := s.ChatLog(team)
	if err != nil {
		return nil, err
	}
	msgs = clampChat(append(msgs, msg), s.limit)
	if err := s.SaveChatLog(team, msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
