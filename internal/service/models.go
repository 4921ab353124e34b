package service

import (
	"time"

	"github.com/fortuna/courtside/internal/espn"
	"github.com/fortuna/courtside/internal/stats"
)

// CardTeam is one side of a game card
type CardTeam struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Logo         string `json:"logo,omitempty"`
	Score        string `json:"score,omitempty"`
	Record       string `json:"record,omitempty"`
	Rank         int    `json:"rank,omitempty"`
	Winner       *bool  `json:"winner,omitempty"`
}

// GameCard is the display shape of one event
type GameCard struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	ShortName  string     `json:"shortName"`
	Date       time.Time  `json:"date"`
	State      string     `json:"state"`
	Status     string     `json:"status"`
	Venue      espn.Venue `json:"venue"`
	Broadcasts []string   `json:"broadcasts"`
	Home       *CardTeam  `json:"home,omitempty"`
	Away       *CardTeam  `json:"away,omitempty"`
}

func newGameCard(ev espn.ScheduleEvent) GameCard {
	card := GameCard{
		ID:         ev.ID,
		Name:       ev.Name,
		ShortName:  ev.ShortName,
		Date:       ev.Date,
		State:      ev.Status.State,
		Status:     ev.Status.Label(),
		Venue:      ev.Venue,
		Broadcasts: ev.Broadcasts,
	}
	if card.Broadcasts == nil {
		card.Broadcasts = []string{}
	}
	for _, c := range ev.Competitors {
		team := &CardTeam{
			ID:           c.Team.ID,
			Name:         c.Team.DisplayName,
			Abbreviation: c.Team.Abbreviation,
			Logo:         c.Team.Logo,
			Score:        c.ScoreDisplay(),
			Record:       c.Record,
			Rank:         c.Rank,
			Winner:       c.Winner,
		}
		if c.HomeAway == "away" {
			card.Away = team
		} else if card.Home == nil {
			card.Home = team
		} else {
			card.Away = team
		}
	}
	return card
}

func gameCards(events []espn.ScheduleEvent) []GameCard {
	cards := make([]GameCard, 0, len(events))
	for _, ev := range events {
		cards = append(cards, newGameCard(ev))
	}
	return cards
}

// TeamView is the team summary header
type TeamView struct {
	Available   bool      `json:"available"`
	Team        espn.Team `json:"team"`
	SeasonYear  int       `json:"seasonYear"`
	SeasonLabel string    `json:"seasonLabel"`
}

// LiveGame is a game card with the box-score team lines known so far
type LiveGame struct {
	GameCard
	HomeStats *stats.TeamStatLine `json:"homeStats,omitempty"`
	AwayStats *stats.TeamStatLine `json:"awayStats,omitempty"`
}

// Where the games of a LiveView came from
const (
	LiveSourceScoreboard = "live"
	LiveSourceToday      = "today"
	LiveSourceNext       = "next"
	LiveSourceRecent     = "recent"
	LiveSourceNone       = "none"
)

// LiveView is one live-score snapshot
type LiveView struct {
	TeamID    string     `json:"teamId"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Source    string     `json:"source"`
	Games     []LiveGame `json:"games"`
}

// ScheduleView is a season's games
type ScheduleView struct {
	SeasonYear  int        `json:"seasonYear"`
	SeasonLabel string     `json:"seasonLabel"`
	Games       []GameCard `json:"games"`
}

// PlayerCard is a roster entry with its resolved season line
type PlayerCard struct {
	espn.Athlete
	Season stats.SeasonLine `json:"season"`
}

// PositionGroup holds the players sharing a position abbreviation
type PositionGroup struct {
	Position string       `json:"position"`
	Players  []PlayerCard `json:"players"`
}

// RosterView is the roster grouped by position
type RosterView struct {
	SeasonYear     int             `json:"seasonYear"`
	SeasonLabel    string          `json:"seasonLabel"`
	GamesCompleted int             `json:"gamesCompleted"`
	Groups         []PositionGroup `json:"groups"`
}

// GameResult is a completed game reconciled from the tracked team's side
type GameResult struct {
	Game            GameCard            `json:"game"`
	Outcome         stats.Outcome       `json:"outcome"`
	Label           string              `json:"label"`
	HasScores       bool                `json:"hasScores"`
	TeamScore       string              `json:"teamScore,omitempty"`
	OpponentScore   string              `json:"opponentScore,omitempty"`
	Opponent        espn.TeamRef        `json:"opponent"`
	HomeAway        string              `json:"homeAway"`
	TeamStats       *stats.TeamStatLine `json:"teamStats,omitempty"`
	OpponentStats   *stats.TeamStatLine `json:"opponentStats,omitempty"`
	Players         []stats.PlayerLine  `json:"players"`
	OpponentPlayers []stats.PlayerLine  `json:"opponentPlayers"`
}

// HistoryView is one season's results
type HistoryView struct {
	StartYear   int          `json:"startYear"`
	SeasonLabel string       `json:"seasonLabel"`
	Years       []int        `json:"years"`
	Wins        int          `json:"wins"`
	Losses      int          `json:"losses"`
	WinPct      *float64     `json:"winPct"`
	Results     []GameResult `json:"results"`
	Upcoming    []GameCard   `json:"upcoming"`
}

// GameView is a single game's detail
type GameView struct {
	Available bool        `json:"available"`
	Result    *GameResult `json:"result,omitempty"`
}
