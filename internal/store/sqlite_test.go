package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"statusplay/internal/models"
)

func openSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.sqlite"), 5)
	if err != nil {
		t.Fatalf("NewSQLiteStore() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteUsernameRoundTrip(t *testing.T) {
	s := openSQLite(t)

	if name, err := s.Username(); err != nil || name != "" {
		t.Fatalf("fresh store should have no username, got %q / %v", name, err)
	}

	if err := s.SetUsername("Ana"); err != nil {
		t.Fatal(err)
	}
	if name, _ := s.Username(); name != "Ana" {
		t.Errorf("expected Ana, got %q", name)
	}

	// Overwrite, then clear
	if err := s.SetUsername("Bilal"); err != nil {
		t.Fatal(err)
	}
	if name, _ := s.Username(); name != "Bilal" {
		t.Errorf("expected Bilal, got %q", name)
	}
	if err := s.ClearUsername(); err != nil {
		t.Fatal(err)
	}
	if name, _ := s.Username(); name != "" {
		t.Errorf("username should be cleared, got %q", name)
	}
}

func TestSQLiteChatLogPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.sqlite")

	s, err := NewSQLiteStore(path, 5)
	if err != nil {
		t.Fatal(err)
	}

	msg := models.ChatMessage{ID: "1", User: "Ana", Text: "hello", Time: "07:00 PM"}
	if _, err := s.AppendChat("Falcons", msg); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen the same file and read the log back
	s, err = NewSQLiteStore(path, 5)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	msgs, err := s.ChatLog("Falcons")
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || msgs[0].Text != "hello" {
		t.Errorf("chat log should survive reopen, got %+v", msgs)
	}
}

func TestSQLiteChatEviction(t *testing.T) {
	s := openSQLite(t)

	for i := 0; i < 8; i++ {
		msg := models.ChatMessage{ID: fmt.Sprint(i), User: "Ana", Text: fmt.Sprintf("msg %d", i)}
		if _, err := s.AppendChat("Falcons", msg); err != nil {
			t.Fatal(err)
		}
	}

	msgs, err := s.ChatLog("Falcons")
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 5 {
		t.Fatalf("log should be capped at 5, got %d", len(msgs))
	}
	if msgs[0].Text != "msg 3" || msgs[4].Text != "msg 7" {
		t.Errorf("oldest messages should be evicted first, got %q..%q", msgs[0].Text, msgs[4].Text)
	}
}

func TestSQLiteTeamIsolation(t *testing.T) {
	s := openSQLite(t)

	s.AppendChat("Falcons", models.ChatMessage{ID: "1", User: "Ana", Text: "falcons only"})
	s.AppendChat("Kings", models.ChatMessage{ID: "2", User: "Zara", Text: "kings only"})

	falcons, _ := s.ChatLog("Falcons")
	kings, _ := s.ChatLog("Kings")
	if len(falcons) != 1 || len(kings) != 1 {
		t.Fatalf("expected 1 message per team, got %d / %d", len(falcons), len(kings))
	}
	if falcons[0].Text == kings[0].Text {
		t.Error("team logs must not bleed into each other")
	}
}
