package views

import (
	"bytes"
	"encoding/json"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"statusplay/internal/charts"
	"statusplay/internal/models"
)

// Context carries the per-render view state every renderer receives
// alongside the snapshot
type Context struct {
	User string
	View string
}

// Renderer produces the HTML fragment for one view's section. Renderers
// are idempotent: the same (snapshot, context) yields the same fragment,
// and repeated calls never accumulate content. Control markup is rebuilt
// on every call so actions always reference the current user and data.
type Renderer func(snap *models.Snapshot, ctx Context) (template.HTML, error)

func execute(t *template.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

type rosterRow struct {
	Name   string
	Status string
	In     bool
	IsMe   bool
}

func (r *Router) renderDashboard(snap *models.Snapshot, ctx Context) (template.HTML, error) {
	roster := make([]rosterRow, 0, len(snap.Players))
	meIn := false
	for _, p := range snap.Players {
		isMe := strings.EqualFold(p.Name, ctx.User)
		if isMe && p.Status == models.PresenceIn {
			meIn = true
		}
		roster = append(roster, rosterRow{
			Name:   p.Name,
			Status: strings.ToUpper(string(p.Status)),
			In:     p.Status == models.PresenceIn,
			IsMe:   isMe,
		})
	}

	courtsJSON, err := json.Marshal(charts.CourtStatusBars(snap))
	if err != nil {
		return "", err
	}
	teamsJSON, err := json.Marshal(charts.TeamDistribution(snap))
	if err != nil {
		return "", err
	}

	return execute(dashboardTmpl, map[string]any{
		"TotalPlayers":  snap.TotalPlayers,
		"Weather":       snap.Stats.Weather,
		"NextMatch":     snap.Stats.NextMatch,
		"WaitingList":   snap.Stats.WaitingList,
		"ManOfTheMatch": snap.Stats.ManOfTheMatch,
		"Discount":      snap.Stats.Discount,
		"Roster":        roster,
		"MeIn":          meIn,
		"CourtsJSON":    string(courtsJSON),
		"TeamsJSON":     string(teamsJSON),
	})
}

func (r *Router) renderProfile(snap *models.Snapshot, ctx Context) (template.HTML, error) {
	me := snap.FindPlayer(ctx.User)
	if me == nil {
		return template.HTML(""), nil
	}

	teamName := "No Team"
	if snap.Stats.MyTeam != nil {
		teamName = snap.Stats.MyTeam.Name
	}

	var profile models.Profile
	if me.Profile != nil {
		profile = *me.Profile
	}

	return execute(profileTmpl, map[string]any{
		"Name":     me.Name,
		"Points":   me.Points,
		"Skill":    me.Skill(),
		"TeamName": teamName,
		"User":     ctx.User,
		"Email":    profile.Email,
		"Phone":    profile.Phone,
		"Slots":    profile.Slots,
	})
}

func (r *Router) renderMyTeam(snap *models.Snapshot, ctx Context) (template.HTML, error) {
	team := snap.Stats.MyTeam
	if team == nil {
		return execute(myTeamTmpl, map[string]any{"HasTeam": false})
	}

	return execute(myTeamTmpl, map[string]any{
		"HasTeam":    true,
		"Name":       team.Name,
		"Rank":       team.Rank,
		"Wins":       team.Wins,
		"Difficulty": team.Level(),
		"NextMatch":  team.NextMatch,
		"Members":    team.Members,
		"User":       ctx.User,
	})
}

type chatRow struct {
	User string
	Text string
	Time string
	Mine bool
}

func (r *Router) renderTeamChat(snap *models.Snapshot, ctx Context) (template.HTML, error) {
	team := snap.Stats.MyTeam
	if team == nil {
		return execute(teamChatTmpl, map[string]any{"HasTeam": false})
	}

	msgs, err := r.store.ChatLog(team.Name)
	if err != nil {
		return "", err
	}

	// First render of an empty team log seeds the placeholder history
	// and persists it, so later renders see it as real messages
	if len(msgs) == 0 {
		msgs = seedChat(team.Name)
		if err := r.store.SaveChatLog(team.Name, msgs); err != nil {
			return "", err
		}
	}

	rows := make([]chatRow, 0, len(msgs))
	for _, m := range msgs {
		rows = append(rows, chatRow{
			User: m.User,
			Text: m.Text,
			Time: m.Time,
			Mine: strings.EqualFold(m.User, ctx.User),
		})
	}

	return execute(teamChatTmpl, map[string]any{
		"HasTeam":  true,
		"Team":     team.Name,
		"User":     ctx.User,
		"Messages": rows,
	})
}

// seedChat builds the fixed placeholder history shown before a team has
// any real messages
func seedChat(team string) []models.ChatMessage {
	now := time.Now().Format("03:04 PM")
	texts := []string{
		"Welcome to the " + team + " team chat! 🎾",
		"Match schedules are posted every Monday.",
		"Remember to mark yourself IN before the cutoff.",
		"Who's up for a practice session this week?",
	}

	msgs := make([]models.ChatMessage, 0, len(texts))
	for _, text := range texts {
		msgs = append(msgs, models.ChatMessage{
			ID:   uuid.NewString(),
			User: "Coordinator",
			Text: text,
			Time: now,
		})
	}
	return msgs
}

type courtRow struct {
	models.Court
	Free bool
}

func (r *Router) renderCourts(snap *models.Snapshot, ctx Context) (template.HTML, error) {
	rows := make([]courtRow, 0, len(snap.Stats.DetailedCourts))
	for _, c := range snap.Stats.DetailedCourts {
		c.Status = strings.ToUpper(c.Status)
		rows = append(rows, courtRow{Court: c, Free: c.Status == "FREE"})
	}
	return execute(courtsTmpl, map[string]any{"Courts": rows})
}

func (r *Router) renderTournaments(snap *models.Snapshot, ctx Context) (template.HTML, error) {
	return execute(tournamentsTmpl, map[string]any{
		"Tournaments": snap.Stats.Tournaments,
	})
}

type rankingRow struct {
	Rank       int
	Name       string
	Wins       int
	Difficulty models.Difficulty
	Mine       bool
}

func (r *Router) renderInfo(snap *models.Snapshot, ctx Context) (template.HTML, error) {
	myTeam := ""
	if snap.Stats.MyTeam != nil {
		myTeam = snap.Stats.MyTeam.Name
	}

	rows := make([]rankingRow, 0, len(snap.Teams))
	for _, t := range snap.Teams {
		rows = append(rows, rankingRow{
			Rank:       t.Rank,
			Name:       t.Name,
			Wins:       t.Wins,
			Difficulty: t.Level(),
			Mine:       t.Name == myTeam,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rank < rows[j].Rank })

	return execute(infoTmpl, map[string]any{
		"Teams":    rows,
		"PeakNote": r.currentPeakNote(),
	})
}

func (r *Router) renderSettings(snap *models.Snapshot, ctx Context) (template.HTML, error) {
	return execute(settingsTmpl, map[string]any{
		"User":           ctx.User,
		"PollInterval":   r.pollInterval.String(),
		"PresencePolicy": r.presencePolicy,
	})
}
