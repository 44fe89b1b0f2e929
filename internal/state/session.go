package state

import (
	"reflect"
	"sync"

	"statusplay/internal/models"
)

// View identifiers for every named screen of the dashboard
const (
	ViewDashboard   = "dashboard"
	ViewProfile     = "profile"
	ViewMyTeam      = "my-team"
	ViewTeamChat    = "team-chat"
	ViewCourts      = "courts"
	ViewTournaments = "tournaments"
	ViewInfo        = "info"
	ViewSettings    = "settings"
)

// ReconcileResult reports the outcome of applying a polled snapshot
type ReconcileResult struct {
	// Changed is true when the snapshot differs structurally from the
	// last applied one and has replaced it
	Changed bool
	// Stale is true when the snapshot was fetched before the currently
	// applied one and was discarded
	Stale bool
}

// Session owns the client-side view state for one logged-in user: the
// display name, the active view and the last applied snapshot. It is
// constructed at login and discarded at logout; nothing here is global.
type Session struct {
	mu   sync.RWMutex
	user string
	view string
	last *models.Snapshot

	nextSeq    uint64
	appliedSeq uint64
}

// NewSession creates a session for the given display name, starting on
// the dashboard view with no snapshot held
func NewSession(user string) *Session {
	return &Session{
		user: user,
		view: ViewDashboard,
	}
}

// User returns the logged-in display name
func (s *Session) User() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// View returns the currently active view id
func (s *Session) View() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView records the active view id
func (s *Session) SetView(view string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}

// Snapshot returns the last applied snapshot, or nil before the first
// successful poll. Callers must treat it as read-only; it is replaced,
// never mutated in place.
func (s *Session) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// NextSeq issues a monotonic sequence number. The poller tags each fetch
// before it goes out so late responses can be told apart from fresh ones.
func (s *Session) NextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// Reconcile applies a snapshot with an implicitly issued sequence number
func (s *Session) Reconcile(snap *models.Snapshot) ReconcileResult {
	return s.ReconcileSeq(snap, s.NextSeq())
}

// ReconcileSeq compares the snapshot against the last applied one using
// full structural equality. If it differs, it becomes the new snapshot
// and Changed is reported; the caller must then re-render every
// view-dependent surface. If it is deep-equal, Changed is false and the
// caller re-renders only the active non-dashboard view. Snapshots
// fetched before the currently applied one are discarded as stale and
// never overwrite fresher data.
func (s *Session) ReconcileSeq(snap *models.Snapshot, seq uint64) ReconcileResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.appliedSeq {
		return ReconcileResult{Stale: true}
	}
	s.appliedSeq = seq

	if reflect.DeepEqual(s.last, snap) {
		return ReconcileResult{}
	}

	s.last = snap
	return ReconcileResult{Changed: true}
}
