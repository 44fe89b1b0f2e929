package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"statusplay/internal/app"
	"statusplay/internal/logger"
	"statusplay/internal/models"
	"statusplay/internal/pubsub"
	"statusplay/internal/state"
	"statusplay/internal/views"
)

// APIHandlers provides the HTTP API for the dashboard page
type APIHandlers struct {
	app    *app.App
	pubsub *pubsub.PubSub
}

// NewAPIHandlers creates API handlers around the orchestrator
func NewAPIHandlers(a *app.App, ps *pubsub.PubSub) *APIHandlers {
	return &APIHandlers{
		app:    a,
		pubsub: ps,
	}
}

// pageEnvelope is the page model plus the login indicator the client
// needs to decide between the login prompt and the dashboard
type pageEnvelope struct {
	LoggedIn bool `json:"loggedIn"`
	views.PageData
}

// GetPage returns the assembled page: title, active view and every
// rendered section
func (h *APIHandlers) GetPage(w http.ResponseWriter, r *http.Request) {
	router := h.app.Router()
	if router == nil {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pageEnvelope{LoggedIn: false})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pageEnvelope{LoggedIn: true, PageData: router.Page()})
}

// Login starts a session for the submitted display name
func (h *APIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.app.Login(r.Context(), req.Name); err != nil {
		if errors.Is(err, app.ErrEmptyName) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// Logout ends the session
func (h *APIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.app.Logout(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// SwitchView activates a different view
func (h *APIHandlers) SwitchView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		View string `json:"view"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.app.SwitchView(req.View); err != nil {
		writeAppError(w, err)
		return
	}

	// Title comes from the static map, not a second router fetch that a
	// concurrent logout could nil out
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"view": req.View, "title": views.TitleFor(req.View)})
}

// SetPresence marks the user in or out
func (h *APIHandlers) SetPresence(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status := models.Presence(req.Status)
	if status != models.PresenceIn && status != models.PresenceOut {
		http.Error(w, fmt.Sprintf("invalid status %q (valid: in, out)", req.Status), http.StatusBadRequest)
		return
	}

	if err := h.app.SetPresence(r.Context(), status); err != nil {
		writeAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// SaveProfile persists the user's contact details
func (h *APIHandlers) SaveProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.Profile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.app.SaveProfile(r.Context(), req); err != nil {
		writeAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// SendChatMessage appends a chat message to the team log
func (h *APIHandlers) SendChatMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.app.SendChat(req.Text); err != nil {
		writeAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// RequestTeamChange files a team change request
func (h *APIHandlers) RequestTeamChange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.app.RequestTeamChange(); err != nil {
		writeAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// RefreshNow kicks an immediate poll outside the ambient cadence
func (h *APIHandlers) RefreshNow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.app.PollNow()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// EventsSSE provides Server-Sent Events for realtime updates
func (h *APIHandlers) EventsSSE(w http.ResponseWriter, r *http.Request) {
	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Subscribe to events
	eventChan := h.pubsub.Subscribe()
	defer h.pubsub.Unsubscribe(eventChan)

	// Send initial connection message
	fmt.Fprintf(w, "data: {\"type\":\"connected\"}\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	// Listen for events
	for {
		select {
		case event := <-eventChan:
			data, _ := json.Marshal(event)
			fmt.Fprintf(w, "data: %s\n\n", data)
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		case <-r.Context().Done():
			logger.Debug("SSE client disconnected")
			return
		case <-time.After(30 * time.Second):
			// Send keepalive ping
			fmt.Fprintf(w, ": keepalive\n\n")
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}
	}
}

// ListViews returns the known view ids and their titles so clients can
// build navigation without hardcoding the map
func (h *APIHandlers) ListViews(w http.ResponseWriter, r *http.Request) {
	order := []string{
		state.ViewDashboard, state.ViewProfile, state.ViewMyTeam,
		state.ViewTeamChat, state.ViewCourts, state.ViewTournaments,
		state.ViewInfo, state.ViewSettings,
	}

	type viewInfo struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	out := make([]viewInfo, 0, len(order))
	for _, id := range order {
		out = append(out, viewInfo{ID: id, Title: views.TitleFor(id)})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrNotLoggedIn):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}
