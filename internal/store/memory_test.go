package store

import (
	"fmt"
	"testing"

	"statusplay/internal/models"
)

func TestMemoryStoreUsername(t *testing.T) {
	s := NewMemoryStore(200)

	name, err := s.Username()
	if err != nil {
		t.Fatalf("Username() failed: %v", err)
	}
	if name != "" {
		t.Errorf("fresh store should have no username, got %q", name)
	}

	if err := s.SetUsername("Ana"); err != nil {
		t.Fatalf("SetUsername() failed: %v", err)
	}
	name, _ = s.Username()
	if name != "Ana" {
		t.Errorf("expected Ana, got %q", name)
	}

	if err := s.ClearUsername(); err != nil {
		t.Fatalf("ClearUsername() failed: %v", err)
	}
	name, _ = s.Username()
	if name != "" {
		t.Errorf("username should be cleared, got %q", name)
	}
}

func TestMemoryStoreChatPerTeam(t *testing.T) {
	s := NewMemoryStore(200)

	_, err := s.AppendChat("Falcons", models.ChatMessage{User: "Ana", Text: "hi", Time: "08:00 PM"})
	if err != nil {
		t.Fatalf("AppendChat() failed: %v", err)
	}

	falcons, _ := s.ChatLog("Falcons")
	if len(falcons) != 1 || falcons[0].Text != "hi" {
		t.Errorf("unexpected Falcons log: %+v", falcons)
	}

	// Other teams must not see the message
	kings, _ := s.ChatLog("Kings")
	if len(kings) != 0 {
		t.Errorf("Kings log should be empty, got %+v", kings)
	}
}

func TestMemoryStoreChatLimit(t *testing.T) {
	s := NewMemoryStore(5)

	for i := 0; i < 12; i++ {
		_, err := s.AppendChat("Falcons", models.ChatMessage{
			User: "Ana",
			Text: fmt.Sprintf("msg %d", i),
		})
		if err != nil {
			t.Fatalf("AppendChat() failed at %d: %v", i, err)
		}
	}

	msgs, _ := s.ChatLog("Falcons")
	if len(msgs) != 5 {
		t.Fatalf("expected log capped at 5, got %d", len(msgs))
	}
	if msgs[0].Text != "msg 7" || msgs[4].Text != "msg 11" {
		t.Errorf("oldest messages should be evicted first, got %+v", msgs)
	}
}

func TestMemoryStoreSaveChatLogCopies(t *testing.T) {
	s := NewMemoryStore(200)

	in := []models.ChatMessage{{User: "Ana", Text: "original"}}
	if err := s.SaveChatLog("Falcons", in); err != nil {
		t.Fatalf("SaveChatLog() failed: %v", err)
	}

	in[0].Text = "mutated"

	out, _ := s.ChatLog("Falcons")
	if out[0].Text != "original" {
		t.Error("store must not alias caller-owned slices")
	}
}
