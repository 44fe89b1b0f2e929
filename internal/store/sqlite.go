package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"statusplay/internal/models"
)

// SQLiteStore implements Store on a single key-value table, keeping the
// on-disk layout as close to the browser localStorage model as possible
type SQLiteStore struct {
	db    *sql.DB
	limit int
}

// NewSQLiteStore opens (or creates) the store file and ensures the schema
func NewSQLiteStore(dbPath string, chatLimit int) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db, limit: chatLimit}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteStore) put(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (s *SQLiteStore) Username() (string, error) {
	name, _, err := s.get(usernameKey)
	return name, err
}

func (s *SQLiteStore) SetUsername(name string) error {
	return s.put(usernameKey, name)
}

func (s *SQLiteStore) ClearUsername() error {
	_, err := s.db.Exec(`DELETE FROM kv_store WHERE key = ?`, usernameKey)
	return err
}

func (s *SQLiteStore) ChatLog(team string) ([]models.ChatMessage, error) {
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

func (s *SQLiteStore) SaveChatLog(team string, msgs []models.ChatMessage) error {
	data, err := json.Marshal(clampChat(msgs, s.limit))
	if err != nil {
		return err
	}
	return s.put(ChatKey(team), string(data))
}

func (s *SQLiteStore) AppendChat(team string, msg models.ChatMessage) ([]models.ChatMessage, error) {
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

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
