package stats

// Outcome of a completed game from the tracked team's point of view
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeWin
	OutcomeLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// Label is the short form shown next to a result
func (o Outcome) Label() string {
	switch o {
	case OutcomeWin:
		return "W"
	case OutcomeLoss:
		return "L"
	default:
		return "TBD"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Side is what is known about one competitor of a game. BoxScore comes from
// the game summary and wins over the lighter Schedule score when present.
type Side struct {
	Winner   *bool
	Schedule Score
	BoxScore Score
}

func (s Side) score() Score {
	if s.BoxScore != nil {
		if _, absent := s.BoxScore.(ScoreAbsent); !absent {
			return s.BoxScore
		}
	}
	if s.Schedule == nil {
		return ScoreAbsent{}
	}
	return s.Schedule
}

// Result of reconciling a game
type Result struct {
	Outcome       Outcome `json:"outcome"`
	HasScores     bool    `json:"hasScores"`
	TeamScore     string  `json:"teamScore,omitempty"`
	OpponentScore string  `json:"opponentScore,omitempty"`
}

// DetermineOutcome decides a game for team against opp. An explicit winner
// flag on the team is trusted as is; otherwise the higher numeric score wins
// and a tie or a missing score leaves the outcome unknown.
func DetermineOutcome(team, opp Side) Result {
	ts := ResolveScore(team.score())
	os := ResolveScore(opp.score())

	res := Result{HasScores: ts.Display != "" && os.Display != ""}
	if res.HasScores {
		res.TeamScore = ts.Display
		res.OpponentScore = os.Display
	}

	switch {
	case team.Winner != nil:
		if *team.Winner {
			res.Outcome = OutcomeWin
		} else {
			res.Outcome = OutcomeLoss
		}
	case res.HasScores && ts.Numeric && os.Numeric:
		if ts.Value > os.Value {
			res.Outcome = OutcomeWin
		} else if ts.Value < os.Value {
			res.Outcome = OutcomeLoss
		}
	}
	return res
}
