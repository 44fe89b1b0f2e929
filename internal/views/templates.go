package views

import "html/template"

var (
	dashboardTmpl = template.Must(template.New("dashboard").Parse(`
<div class="quick-stats">
	<div class="stat-card"><span class="stat-label">Players Today</span><span class="stat-value" id="total-players-val">{{.TotalPlayers}}</span></div>
	<div class="stat-card"><span class="stat-label">Weather</span><span class="stat-value" id="weather-temp-val">{{.Weather.Temp}}</span><span id="weather-cond-val">{{.Weather.Condition}}</span></div>
	<div class="stat-card"><span class="stat-label">Next Match</span><span class="stat-value" id="next-match-time">{{.NextMatch.Time}}</span><span id="next-match-teams">{{.NextMatch.Teams}}</span></div>
	<div class="stat-card"><span class="stat-label">Waiting List</span><span class="stat-value" id="wait-count">{{.WaitingList}}</span></div>
</div>
<div class="highlight-row">
	<div id="motm-card"><span id="motm-name">{{.ManOfTheMatch.Name}}</span><span id="motm-points">{{.ManOfTheMatch.Points}} Pts</span></div>
	<div id="discount-banner">{{.Discount}}</div>
</div>
<div id="roster-list">
{{range .Roster}}	<div class="list-item"><span>{{.Name}}{{if .IsMe}} (You){{end}}</span><span class="status-badge {{if .In}}badge-in{{else}}badge-out{{end}}">{{.Status}}</span></div>
{{end}}</div>
<div class="presence-controls">
	<button id="btn-in" data-action="presence-in" class="{{if .MeIn}}active{{else}}dimmed{{end}}">I'm In</button>
	<button id="btn-out" data-action="presence-out" class="{{if .MeIn}}dimmed{{else}}active{{end}}">I'm Out</button>
</div>
<canvas id="courtsChart" data-chart='{{.CourtsJSON}}'></canvas>
<canvas id="teamsChart" data-chart='{{.TeamsJSON}}'></canvas>
`))

	profileTmpl = template.Must(template.New("profile").Parse(`
<h2 id="profile-name">{{.Name}}</h2>
<div id="profile-stats-section" class="stats-grid">
	<div class="stat-card"><span class="stat-label">Total Points</span><span class="stat-value">{{.Points}}</span></div>
	<div class="stat-card"><span class="stat-label">Skill Level</span><span class="stat-value">{{.Skill}}</span></div>
	<div class="stat-card"><span class="stat-label">Current Team</span><span class="stat-value">{{.TeamName}}</span></div>
</div>
<form class="profile-form" data-action="save-profile" data-user="{{.User}}">
	<input id="profile-email" name="email" value="{{.Email}}">
	<input id="profile-phone" name="phone" value="{{.Phone}}">
	<input id="profile-slots" name="slots" value="{{.Slots}}">
	<button id="save-profile-btn" type="submit">Save Profile</button>
</form>
`))

	myTeamTmpl = template.Must(template.New("my-team").Parse(`
{{if .HasTeam}}<h2 id="team-name-big">{{.Name}}</h2>
<div class="team-stats">
	<span id="team-rank">#{{.Rank}}</span>
	<span id="team-wins">{{.Wins}}</span>
	<span id="team-difficulty">{{.Difficulty}}</span>
	<span id="team-next-match">{{.NextMatch}}</span>
</div>
<div id="team-roster-list">
{{range .Members}}	<div class="member-card"><strong>{{.}}</strong></div>
{{end}}</div>
<button id="request-team-change-btn" data-action="team-change" data-user="{{.User}}">Request Team Change</button>
{{else}}<p class="empty-note">You are not assigned to a team yet.</p>
{{end}}`))

	teamChatTmpl = template.Must(template.New("team-chat").Parse(`
{{if .HasTeam}}<div id="chat-messages">
{{range .Messages}}	<div class="chat-msg{{if .Mine}} mine{{end}}"><strong>{{.User}}</strong><span class="chat-time">{{.Time}}</span><div>{{.Text}}</div></div>
{{end}}</div>
<form data-action="send-chat" data-team="{{.Team}}" data-user="{{.User}}">
	<input id="chat-input" name="text" placeholder="Message {{.Team}}...">
	<button id="send-chat-btn" type="submit">Send</button>
</form>
{{else}}<p class="empty-note">You are not assigned to a team yet.</p>
{{end}}`))

	courtsTmpl = template.Must(template.New("courts").Parse(`
<div id="courts-grid-container">
{{range .Courts}}	<div class="court-card {{if .Free}}court-free{{else}}court-busy{{end}}">
		<h3>Court {{.ID}}</h3>
		<p>{{.Type}}</p>
		<div class="court-status">{{.Status}}</div>
		<p>Next Slot: {{.NextSlot}}</p>
		{{if .Waiting}}<p>Waiting: {{.Waiting}}</p>{{end}}
	</div>
{{end}}</div>
`))

	tournamentsTmpl = template.Must(template.New("tournaments").Parse(`
<div id="tournaments-list">
{{range .Tournaments}}	<div class="tournament-card">
		<div><h3>{{.Name}}</h3><p>Stage: {{.Stage}}</p></div>
		<div class="prize"><div>{{.Prize}}</div><div>Grand Prize</div></div>
	</div>
{{end}}</div>
`))

	infoTmpl = template.Must(template.New("info").Parse(`
<table id="rankings-table">
	<tr><th>Rank</th><th>Team</th><th>Wins</th><th>Difficulty</th></tr>
{{range .Teams}}	<tr{{if .Mine}} class="my-team-row"{{end}}><td>#{{.Rank}}</td><td>{{.Name}}</td><td>{{.Wins}}</td><td>{{.Difficulty}}</td></tr>
{{end}}</table>
{{if .PeakNote}}<p id="peak-note">{{.PeakNote}}</p>{{end}}
`))

	settingsTmpl = template.Must(template.New("settings").Parse(`
<div id="settings-panel">
	<div class="setting-row"><span>Logged in as</span><span id="user-display-name">{{.User}}</span></div>
	<div class="setting-row"><span>Refresh rate</span><span>{{.PollInterval}}</span></div>
	<div class="setting-row"><span>Presence failure handling</span><span>{{.PresencePolicy}}</span></div>
	<button id="logout-btn" data-action="logout">Log Out</button>
</div>
`))
)
