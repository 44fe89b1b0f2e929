package views

import (
	"html/template"
	"sync"
	"time"

	"statusplay/internal/logger"
	"statusplay/internal/state"
	"statusplay/internal/store"
)

// DefaultTitle is shown for unmapped view ids
const DefaultTitle = "StatusPlay"

// titles maps view ids to the displayed page title
var titles = map[string]string{
	state.ViewDashboard:   "Dashboard Preview",
	state.ViewProfile:     "My Pro Profile",
	state.ViewMyTeam:      "My Squad",
	state.ViewTeamChat:    "Team Chat",
	state.ViewCourts:      "Court Status",
	state.ViewTournaments: "Tournaments",
	state.ViewInfo:        "Team Rankings",
	state.ViewSettings:    "Settings",
}

// TitleFor returns the display title for a view id, falling back to
// DefaultTitle for unknown ids
func TitleFor(viewID string) string {
	if t, ok := titles[viewID]; ok {
		return t
	}
	return DefaultTitle
}

// Section is one view's slot in the rendered page
type Section struct {
	Hidden bool          `json:"hidden"`
	HTML   template.HTML `json:"html"`
}

// Router owns the visible page: which section is shown, the page title
// and the rendered fragment per view. Each renderer mutates only its own
// section.
type Router struct {
	mu       sync.RWMutex
	session  *state.Session
	store    store.Store
	sections map[string]*Section
	title    string

	renderers map[string]Renderer

	// Settings/info view inputs
	pollInterval   time.Duration
	presencePolicy string
	peakNote       string
}

// NewRouter creates the router with every view registered. The dashboard
// section starts visible, matching the session's default view.
func NewRouter(session *state.Session, st store.Store, pollInterval time.Duration, presencePolicy string) *Router {
	r := &Router{
		session:        session,
		store:          st,
		sections:       make(map[string]*Section),
		title:          titles[state.ViewDashboard],
		pollInterval:   pollInterval,
		presencePolicy: presencePolicy,
	}

	r.renderers = map[string]Renderer{
		state.ViewDashboard:   r.renderDashboard,
		state.ViewProfile:     r.renderProfile,
		state.ViewMyTeam:      r.renderMyTeam,
		state.ViewTeamChat:    r.renderTeamChat,
		state.ViewCourts:      r.renderCourts,
		state.ViewTournaments: r.renderTournaments,
		state.ViewInfo:        r.renderInfo,
		state.ViewSettings:    r.renderSettings,
	}

	for id := range r.renderers {
		r.sections[id] = &Section{Hidden: id != state.ViewDashboard}
	}
	return r
}

// SetPeakNote updates the occupancy note shown on the rankings view.
// The poller goroutine writes it while HTTP-driven renders read it, so
// access goes through r.mu.
func (r *Router) SetPeakNote(note string) {
	r.mu.Lock()
	r.peakNote = note
	r.mu.Unlock()
}

func (r *Router) currentPeakNote() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.peakNote
}

// SwitchView activates a view: records it on the session, hides all
// sections, shows the target, sets the title and re-renders the view
// immediately from the held snapshot without waiting for the next poll.
// Unknown ids leave every section hidden with the default title.
// Switching to the same view twice is idempotent.
func (r *Router) SwitchView(viewID string) {
	r.session.SetView(viewID)

	r.mu.Lock()
	for _, s := range r.sections {
		s.Hidden = true
	}
	if s, ok := r.sections[viewID]; ok {
		s.Hidden = false
	}
	if title, ok := titles[viewID]; ok {
		r.title = title
	} else {
		r.title = DefaultTitle
	}
	r.mu.Unlock()

	if snap := r.session.Snapshot(); snap != nil {
		r.RenderView(viewID)
	}
}

// RenderView runs the renderer for one view against the held snapshot
// and installs the fragment into that view's section. Unknown ids and a
// missing snapshot are no-ops.
func (r *Router) RenderView(viewID string) {
	renderer, ok := r.renderers[viewID]
	if !ok {
		return
	}
	snap := r.session.Snapshot()
	if snap == nil {
		return
	}

	ctx := Context{User: r.session.User(), View: viewID}
	html, err := renderer(snap, ctx)
	if err != nil {
		logger.Error("Render failed", "view", viewID, "error", err)
		return
	}

	r.mu.Lock()
	r.sections[viewID].HTML = html
	r.mu.Unlock()
}

// RenderAll re-renders every view-dependent surface after a snapshot
// change: the dashboard (quick stats, roster, charts) plus the active
// view
func (r *Router) RenderAll() {
	r.RenderView(state.ViewDashboard)
	if active := r.session.View(); active != state.ViewDashboard {
		r.RenderView(active)
	}
}

// RenderActive re-renders only the active view. Used when a poll brought
// no data change but the active non-dashboard view still needs its
// per-render side effects.
func (r *Router) RenderActive() {
	r.RenderView(r.session.View())
}

// Title returns the current page title
func (r *Router) Title() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.title
}

// Section returns a copy of one view's section state
func (r *Router) Section(viewID string) (Section, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sections[viewID]
	if !ok {
		return Section{}, false
	}
	return *s, true
}

// Page assembles the full page model for the HTTP layer
func (r *Router) Page() PageData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page := PageData{
		Title:    r.title,
		User:     r.session.User(),
		View:     r.session.View(),
		Sections: make(map[string]Section, len(r.sections)),
	}
	for id, s := range r.sections {
		page.Sections[id] = *s
	}
	return page
}

// PageData is the assembled page handed to HTTP clients
type PageData struct {
	Title    string             `json:"title"`
	User     string             `json:"user"`
	View     string             `json:"view"`
	Sections map[string]Section `json:"sections"`
}
