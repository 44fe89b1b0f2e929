package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"statusplay/internal/app"
	"statusplay/internal/config"
	"statusplay/internal/logger"
	"statusplay/internal/mocks"
	"statusplay/internal/models"
	"statusplay/internal/pubsub"
	"statusplay/internal/store"
)

func init() {
	logger.Init("error")
}

func testSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Stats: models.Stats{
			MyTeam: &models.Team{Name: "Falcons", Rank: 2, Wins: 5},
		},
		Teams: []models.Team{
			{Name: "Falcons", Rank: 2, Wins: 5},
			{Name: "Kings", Rank: 1, Wins: 7},
		},
		Players:       []models.Player{{Name: "Ana", Status: models.PresenceIn}},
		ActivePlayers: 1,
		TotalPlayers:  1,
	}
}

func testHandlers(be *mocks.MockBackend) (*APIHandlers, *app.App) {
	cfg := &config.Config{
		PollInterval:     time.Hour,
		ChatHistoryLimit: 200,
		PresenceFailure:  config.PresenceSilent,
	}
	ps := pubsub.New()
	a := app.New(cfg, be, store.NewMemoryStore(200), ps, nil)
	return NewAPIHandlers(a, ps), a
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestGetPageBeforeLogin(t *testing.T) {
	h, _ := testHandlers(mocks.NewMockBackend(testSnapshot()))

	req := httptest.NewRequest(http.MethodGet, "/api/page", nil)
	w := httptest.NewRecorder()
	h.GetPage(w, req)

	var resp struct {
		LoggedIn bool `json:"loggedIn"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.LoggedIn {
		t.Error("page should report logged out before login")
	}
}

func TestLoginThenGetPage(t *testing.T) {
	h, a := testHandlers(mocks.NewMockBackend(testSnapshot()))
	defer a.Logout()

	w := postJSON(t, h.Login, "/api/login", `{"name": "Ana"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/page", nil)
	pw := httptest.NewRecorder()
	h.GetPage(pw, req)

	var resp struct {
		LoggedIn bool   `json:"loggedIn"`
		Title    string `json:"title"`
		User     string `json:"user"`
		View     string `json:"view"`
	}
	if err := json.Unmarshal(pw.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.LoggedIn || resp.User != "Ana" {
		t.Errorf("expected logged-in page for Ana, got %+v", resp)
	}
	if resp.View != "dashboard" || resp.Title != "Dashboard Preview" {
		t.Errorf("fresh session should start on the dashboard, got %+v", resp)
	}
}

func TestLoginRejectsBlankName(t *testing.T) {
	be := mocks.NewMockBackend(testSnapshot())
	h, _ := testHandlers(be)

	w := postJSON(t, h.Login, "/api/login", `{"name": "   "}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank name should be rejected with 400, got %d", w.Code)
	}
	if be.Fetches() != 0 {
		t.Error("rejected login must not reach the backend")
	}
}

func TestLoginRejectsGet(t *testing.T) {
	h, _ := testHandlers(mocks.NewMockBackend(testSnapshot()))

	req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestSwitchViewEndpoint(t *testing.T) {
	h, a := testHandlers(mocks.NewMockBackend(testSnapshot()))
	defer a.Logout()

	postJSON(t, h.Login, "/api/login", `{"name": "Ana"}`)

	w := postJSON(t, h.SwitchView, "/api/view", `{"view": "courts"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("switch failed: %d %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["title"] != "Court Status" {
		t.Errorf("expected Court Status title, got %q", resp["title"])
	}
}

func TestSwitchViewUnknownIDFallsBackTitle(t *testing.T) {
	h, a := testHandlers(mocks.NewMockBackend(testSnapshot()))
	defer a.Logout()

	postJSON(t, h.Login, "/api/login", `{"name": "Ana"}`)

	w := postJSON(t, h.SwitchView, "/api/view", `{"view": "bogus"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("switch failed: %d %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["title"] != "StatusPlay" {
		t.Errorf("unknown view should fall back to the product title, got %q", resp["title"])
	}
}

func TestSwitchViewConcurrentWithLogout(t *testing.T) {
	h, _ := testHandlers(mocks.NewMockBackend(testSnapshot()))

	postJSON(t, h.Login, "/api/login", `{"name": "Ana"}`)

	// Logout mid-flight must surface as 401, never a panic
	done := make(chan struct{})
	go func() {
		postJSON(t, h.Logout, "/api/logout", `{}`)
		close(done)
	}()

	for i := 0; i < 50; i++ {
		w := postJSON(t, h.SwitchView, "/api/view", `{"view": "courts"}`)
		if w.Code != http.StatusOK && w.Code != http.StatusUnauthorized {
			t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
		}
	}
	<-done
}

func TestSwitchViewRequiresLogin(t *testing.T) {
	h, _ := testHandlers(mocks.NewMockBackend(testSnapshot()))

	w := postJSON(t, h.SwitchView, "/api/view", `{"view": "courts"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 before login, got %d", w.Code)
	}
}

func TestSetPresenceValidatesStatus(t *testing.T) {
	h, a := testHandlers(mocks.NewMockBackend(testSnapshot()))
	defer a.Logout()

	postJSON(t, h.Login, "/api/login", `{"name": "Ana"}`)

	w := postJSON(t, h.SetPresence, "/api/presence", `{"status": "maybe"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid status should be rejected with 400, got %d", w.Code)
	}

	w = postJSON(t, h.SetPresence, "/api/presence", `{"status": "in"}`)
	if w.Code != http.StatusOK {
		t.Errorf("valid status should succeed, got %d %s", w.Code, w.Body.String())
	}
}

func TestSendChatEndpoint(t *testing.T) {
	h, a := testHandlers(mocks.NewMockBackend(testSnapshot()))
	defer a.Logout()

	postJSON(t, h.Login, "/api/login", `{"name": "Ana"}`)

	w := postJSON(t, h.SendChatMessage, "/api/chat/send", `{"text": "anyone up for doubles?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("chat send failed: %d %s", w.Code, w.Body.String())
	}
}

func TestListViews(t *testing.T) {
	h, _ := testHandlers(mocks.NewMockBackend(testSnapshot()))

	req := httptest.NewRequest(http.MethodGet, "/api/views", nil)
	w := httptest.NewRecorder()
	h.ListViews(w, req)

	var resp []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp) != 8 {
		t.Fatalf("expected 8 views, got %d", len(resp))
	}
	if resp[0].ID != "dashboard" || resp[0].Title != "Dashboard Preview" {
		t.Errorf("unexpected first view: %+v", resp[0])
	}
}

func TestEventsSSEStreamsToast(t *testing.T) {
	be := mocks.NewMockBackend(testSnapshot())
	h, a := testHandlers(be)
	defer a.Logout()

	postJSON(t, h.Login, "/api/login", `{"name": "Ana"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.EventsSSE(w, req)
		close(done)
	}()

	// Let the handler subscribe before publishing
	time.Sleep(30 * time.Millisecond)
	a.RequestTeamChange()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SSE handler did not exit on context cancel")
	}

	body := w.Body.String()
	if !strings.Contains(body, `{"type":"connected"}`) {
		t.Error("stream should open with a connected message")
	}
	if !strings.Contains(body, "toast") {
		t.Errorf("published toast should appear on the stream, got %q", body)
	}
}
