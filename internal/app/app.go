package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"statusplay/internal/backend"
	"statusplay/internal/config"
	"statusplay/internal/logger"
	"statusplay/internal/models"
	"statusplay/internal/poller"
	"statusplay/internal/pubsub"
	"statusplay/internal/state"
	"statusplay/internal/store"
	"statusplay/internal/views"
)

var (
	// ErrEmptyName rejects a login with a blank display name before any
	// network traffic happens
	ErrEmptyName = errors.New("player name must not be empty")
	// ErrNotLoggedIn is returned by session-bound actions before login
	ErrNotLoggedIn = errors.New("no active session")
)

// Backend is the upstream club API surface the app depends on
type Backend interface {
	FetchSnapshot(ctx context.Context, user string) (*models.Snapshot, error)
	SetPresence(ctx context.Context, user string, status models.Presence) (*backend.PresenceResult, error)
	SaveProfile(ctx context.Context, user string, profile models.Profile) error
}

// Occupancy tracks court utilization history
type Occupancy interface {
	RecordOccupancy(ctx context.Context, cs models.CourtStatus) error
	PeakNote(ctx context.Context) (string, error)
}

// App orchestrates the dashboard lifecycle: login and logout, the
// ambient poll loop, user actions, and event fan-out to live clients.
// One App serves one logged-in user at a time.
type App struct {
	cfg       *config.Config
	client    Backend
	store     store.Store
	events    *pubsub.PubSub
	occupancy Occupancy

	mu      sync.RWMutex
	session *state.Session
	router  *views.Router
	poll    *poller.Poller
}

// New wires the orchestrator. occupancy may be nil when no tracker is
// configured.
func New(cfg *config.Config, client Backend, st store.Store, events *pubsub.PubSub, occupancy Occupancy) *App {
	return &App{
		cfg:       cfg,
		client:    client,
		store:     st,
		events:    events,
		occupancy: occupancy,
	}
}

// Login starts a session for the given display name: the name is
// persisted, the first snapshot is fetched synchronously so the page
// never shows an empty dashboard, and the ambient poll loop starts.
// A blank name is rejected without touching the network.
func (a *App) Login(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	if err := a.store.SetUsername(name); err != nil {
		return fmt.Errorf("failed to persist username: %w", err)
	}

	session := state.NewSession(name)
	router := views.NewRouter(session, a.store, a.cfg.PollInterval, string(a.cfg.PresenceFailure))

	a.mu.Lock()
	if a.poll != nil {
		a.poll.Stop()
	}
	a.session = session
	a.router = router
	a.poll = poller.New(a.cfg.PollInterval, a.tick)
	a.mu.Unlock()

	logger.Info("User logged in", "user", name)

	a.tick(ctx)
	a.poll.Start()
	return nil
}

// Resume restores the previous session when a username survives in the
// store, returning the name it resumed with ("" when there is none)
func (a *App) Resume(ctx context.Context) (string, error) {
	name, err := a.store.Username()
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", nil
	}
	return name, a.Login(ctx, name)
}

// Logout tears the session down: the poll loop stops and the persisted
// username is cleared so the next visit starts at the login prompt
func (a *App) Logout() error {
	a.mu.Lock()
	if a.poll != nil {
		a.poll.Stop()
	}
	user := ""
	if a.session != nil {
		user = a.session.User()
	}
	a.session = nil
	a.router = nil
	a.poll = nil
	a.mu.Unlock()

	if err := a.store.ClearUsername(); err != nil {
		return fmt.Errorf("failed to clear username: %w", err)
	}
	logger.Info("User logged out", "user", user)
	return nil
}

// User returns the logged-in display name, or "" before login
func (a *App) User() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return ""
	}
	return a.session.User()
}

// Router exposes the view router for the HTTP layer, nil before login
func (a *App) Router() *views.Router {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.router
}

// SwitchView activates a view and announces the change
func (a *App) SwitchView(viewID string) error {
	router := a.Router()
	if router == nil {
		return ErrNotLoggedIn
	}
	router.SwitchView(viewID)
	a.events.Publish(pubsub.ViewSwitched(viewID, router.Title()))
	return nil
}

// PollNow requests an immediate refresh outside the poll cadence
func (a *App) PollNow() {
	a.mu.RLock()
	poll := a.poll
	a.mu.RUnlock()
	if poll != nil {
		poll.PollNow()
	}
}

// SetPresence marks the user in or out. On success a confirmation toast
// goes out and a refresh is kicked so the roster updates within one
// round trip. Failure handling follows the configured policy: "silent"
// logs only, "toast" tells the user the action did not stick.
func (a *App) SetPresence(ctx context.Context, status models.Presence) error {
	a.mu.RLock()
	session := a.session
	a.mu.RUnlock()
	if session == nil {
		return ErrNotLoggedIn
	}

	result, err := a.client.SetPresence(ctx, session.User(), status)
	if err != nil {
		logger.Warn("Presence update failed", "user", session.User(), "status", status, "error", err)
		if a.cfg.PresenceFailure == config.PresenceToast {
			a.events.Publish(pubsub.Toast("Could not update your status. Please try again."))
		}
		return err
	}

	msg := "You Checked Out"
	if status == models.PresenceIn {
		msg = "You're confirmed! 🎾"
		if result.Team != "" {
			msg = fmt.Sprintf("You're confirmed! 🎾 Team: %s", result.Team)
		}
	}
	a.events.Publish(pubsub.Event{
		Type: pubsub.TypePresence,
		Payload: map[string]interface{}{
			"user":   session.User(),
			"status": string(status),
			"team":   result.Team,
		},
	})
	a.events.Publish(pubsub.Toast(msg))

	a.PollNow()
	return nil
}

// SaveProfile persists the user's contact details upstream. The success
// toast is withheld on failure.
func (a *App) SaveProfile(ctx context.Context, profile models.Profile) error {
	a.mu.RLock()
	session := a.session
	a.mu.RUnlock()
	if session == nil {
		return ErrNotLoggedIn
	}

	if err := a.client.SaveProfile(ctx, session.User(), profile); err != nil {
		logger.Warn("Profile save failed", "user", session.User(), "error", err)
		return err
	}

	a.events.Publish(pubsub.Toast("✅ Profile Updated Successfully!"))
	a.PollNow()
	return nil
}

// SendChat appends a message to the team's chat log and re-renders the
// chat view. Blank messages are ignored without error. Sending requires
// a team assignment.
func (a *App) SendChat(text string) error {
	a.mu.RLock()
	session := a.session
	router := a.router
	a.mu.RUnlock()
	if session == nil {
		return ErrNotLoggedIn
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	snap := session.Snapshot()
	if snap == nil || snap.Stats.MyTeam == nil {
		logger.Warn("Chat message dropped, no team assigned", "user", session.User())
		return nil
	}
	team := snap.Stats.MyTeam.Name

	msg := models.ChatMessage{
		ID:   uuid.NewString(),
		User: session.User(),
		Text: text,
		Time: time.Now().Format("03:04 PM"),
	}

	if _, err := a.store.AppendChat(team, msg); err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}

	router.RenderView(state.ViewTeamChat)

	a.events.Publish(pubsub.Event{
		Type: pubsub.TypeChatMessage,
		Payload: map[string]interface{}{
			"team": team,
			"user": msg.User,
			"text": msg.Text,
			"time": msg.Time,
		},
	})

	a.PollNow()
	return nil
}

// RequestTeamChange files a team change request. The club backend has no
// endpoint for this yet, so the request only surfaces the acknowledgement.
func (a *App) RequestTeamChange() error {
	a.mu.RLock()
	session := a.session
	a.mu.RUnlock()
	if session == nil {
		return ErrNotLoggedIn
	}

	logger.Info("Team change requested", "user", session.User())
	a.events.Publish(pubsub.Toast("⚠️ Team change request submitted! Coordinator will review."))
	return nil
}

// tick runs one poll cycle. The sequence number is issued before the
// fetch goes out so a response that arrives after a fresher one has been
// applied is discarded instead of rolling the dashboard back.
func (a *App) tick(ctx context.Context) {
	a.mu.RLock()
	session := a.session
	router := a.router
	a.mu.RUnlock()
	if session == nil {
		return
	}

	seq := session.NextSeq()

	snap, err := a.client.FetchSnapshot(ctx, session.User())
	if err != nil {
		logger.Warn("Snapshot fetch failed, skipping tick", "error", err)
		return
	}

	res := session.ReconcileSeq(snap, seq)
	switch {
	case res.Stale:
		logger.Debug("Discarded stale snapshot", "seq", seq)
	case res.Changed:
		router.RenderAll()
		a.events.Publish(pubsub.SnapshotChanged(snap.TotalPlayers, snap.ActivePlayers))
		a.recordOccupancy(ctx, snap, router)
	default:
		if session.View() != state.ViewDashboard {
			router.RenderActive()
		}
	}
}

func (a *App) recordOccupancy(ctx context.Context, snap *models.Snapshot, router *views.Router) {
	if a.occupancy == nil {
		return
	}
	if err := a.occupancy.RecordOccupancy(ctx, snap.CourtStatus); err != nil {
		logger.Warn("Failed to record court occupancy", "error", err)
		return
	}
	if note, err := a.occupancy.PeakNote(ctx); err == nil {
		router.SetPeakNote(note)
	}
}
