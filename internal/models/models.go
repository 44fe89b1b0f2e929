package models

import "strings"

// Presence represents a player's in/out status for the current play session
type Presence string

const (
	PresenceIn  Presence = "in"
	PresenceOut Presence = "out"
)

// SkillLevel represents the player skill rating
type SkillLevel string

const (
	SkillBeginner SkillLevel = "Beginner"
	SkillEasy     SkillLevel = "Easy"
	SkillMedium   SkillLevel = "Medium"
	SkillHard     SkillLevel = "Hard"
	SkillExpert   SkillLevel = "Expert"
)

// Difficulty represents a team's bracket difficulty
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Profile holds the free-form contact fields a player can save
type Profile struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Slots string `json:"slots"`
}

// Player represents a club member in the session roster.
// Name is the identity key and is matched case-insensitively; two players
// sharing a name collide. The backend issues no stable identifier.
type Player struct {
	Name       string     `json:"name"`
	Status     Presence   `json:"status"`
	Points     int        `json:"points"`
	SkillLevel SkillLevel `json:"skill_level,omitempty"`
	Profile    *Profile   `json:"profile,omitempty"`
	JoinedAt   string     `json:"joinedAt,omitempty"`
}

// Skill returns the player's skill level, falling back to Beginner
func (p Player) Skill() SkillLevel {
	if p.SkillLevel == "" {
		return SkillBeginner
	}
	return p.SkillLevel
}

// Team represents a club team. Name is unique within a snapshot.
type Team struct {
	Name       string     `json:"name"`
	Rank       int        `json:"rank"`
	Wins       int        `json:"wins"`
	Members    []string   `json:"members,omitempty"`
	NextMatch  string     `json:"nextMatch,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

// Level returns the team's difficulty, falling back to Medium
func (t Team) Level() Difficulty {
	if t.Difficulty == "" {
		return DifficultyMedium
	}
	return t.Difficulty
}

// Weather holds current conditions at the club
type Weather struct {
	Condition string `json:"condition"`
	Temp      string `json:"temp"`
	Wind      string `json:"wind"`
}

// NextMatch describes the upcoming featured match
type NextMatch struct {
	Teams string `json:"teams"`
	Time  string `json:"time"`
	Court string `json:"court"`
}

// ManOfTheMatch is the current featured player
type ManOfTheMatch struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	Avatar string `json:"avatar"`
}

// Court is one physical court with live status
type Court struct {
	ID       int    `json:"id"`
	Type     string `json:"type"` // "Indoor" or "Outdoor"
	Status   string `json:"status"`
	Waiting  int    `json:"waiting"`
	NextSlot string `json:"nextSlot"`
}

// Tournament is one running or upcoming tournament
type Tournament struct {
	Name  string `json:"name"`
	Stage string `json:"stage"`
	Prize string `json:"prize"`
}

// CourtGroup aggregates counts for one court category
type CourtGroup struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

// CourtStatus aggregates court availability across the club
type CourtStatus struct {
	Indoor    CourtGroup `json:"indoor"`
	Outdoor   CourtGroup `json:"outdoor"`
	Total     int        `json:"total"`
	Available int        `json:"available"`
}

// Stats is the aggregate block the backend computes per dashboard fetch
type Stats struct {
	Weather        Weather       `json:"weather"`
	NextMatch      NextMatch     `json:"nextMatch"`
	ManOfTheMatch  ManOfTheMatch `json:"manOfTheMatch"`
	Discount       string        `json:"discount"`
	WaitingList    int           `json:"waitingList"`
	DetailedCourts []Court       `json:"detailedCourts"`
	Tournaments    []Tournament  `json:"tournaments"`
	MyTeam         *Team         `json:"myTeam"`
}

// Snapshot is one complete server-reported system state. It is produced
// wholesale by the backend client and replaced atomically on reconcile;
// partial-field updates are never applied.
type Snapshot struct {
	Stats         Stats       `json:"stats"`
	CourtStatus   CourtStatus `json:"courtStatus"`
	Teams         []Team      `json:"teams"`
	Players       []Player    `json:"players"`
	ActivePlayers int         `json:"activePlayers"`
	TotalPlayers  int         `json:"totalPlayers"`
}

// FindPlayer returns the roster row for the given display name,
// matched case-insensitively, or nil if absent
func (s *Snapshot) FindPlayer(name string) *Player {
	for i := range s.Players {
		if strings.EqualFold(s.Players[i].Name, name) {
			return &s.Players[i]
		}
	}
	return nil
}

// ChatMessage is one persisted team chat entry
type ChatMessage struct {
	ID   string `json:"id,omitempty"`
	User string `json:"user"`
	Text string `json:"text"`
	Time string `json:"time"`
}
