// Package summary condenses a scoring result into the per-team tallies shown
// on the game-over screen.
package summary

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aatrey56/hoops-draft/internal/model"
	"github.com/aatrey56/hoops-draft/internal/scoring"
)

type AttributeLabel struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type TeamSummary struct {
	Participant int     `json:"participant"`
	Name        string  `json:"name"`
	Score       int     `json:"score"`
	Won         int     `json:"won"`
	Lost        int     `json:"lost"`
	Tied        int     `json:"tied"`
	Players     int     `json:"players"`
	Unresolved  int     `json:"unresolved"`
	IsWinner    bool    `json:"is_winner"`
	Margin      float64 `json:"margin,omitempty"`
}

type GameSummary struct {
	SessionID      string           `json:"session_id"`
	Strategy       scoring.Strategy `json:"strategy"`
	Winner         int              `json:"winner"`
	WinnerName     string           `json:"winner_name"`
	DecidedByTie   bool             `json:"decided_by_tie_break"`
	Attributes     []AttributeLabel `json:"attributes,omitempty"`
	Teams          []TeamSummary    `json:"teams"`
	GeneratedAtUTC string           `json:"generated_at_utc"`
}

var title = cases.Title(language.English)

// Label turns an attribute key such as "field_goal_pct" into "Field Goal Pct".
func Label(attr string) string {
	return title.String(strings.ReplaceAll(attr, "_", " "))
}

// BuildGameSummary counts, for every team, the attributes it won, lost and
// tied. Margin is the winner's lead in score over the runner-up.
func BuildGameSummary(sessionID string, res *scoring.Result) *GameSummary {
	out := &GameSummary{
		SessionID:      sessionID,
		Strategy:       res.Strategy,
		Winner:         res.Winner,
		WinnerName:     model.ParticipantLabel(res.Winner),
		DecidedByTie:   len(res.TiedLeaders) > 1,
		Teams:          make([]TeamSummary, 0, len(res.Teams)),
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
	}
	for _, attr := range res.Attributes {
		out.Attributes = append(out.Attributes, AttributeLabel{Key: attr, Label: Label(attr)})
	}

	runnerUp := 0
	for _, t := range res.Teams {
		if t.Participant != res.Winner && t.Score > runnerUp {
			runnerUp = t.Score
		}
	}

	for _, t := range res.Teams {
		ts := TeamSummary{
			Participant: t.Participant,
			Name:        model.ParticipantLabel(t.Participant),
			Score:       t.Score,
			Players:     len(t.Players),
			Unresolved:  len(t.Unresolved),
			IsWinner:    t.Participant == res.Winner,
		}
		for _, a := range t.Attributes {
			switch {
			case a.Won == nil:
				ts.Tied++
			case *a.Won:
				ts.Won++
			default:
				ts.Lost++
			}
		}
		if ts.IsWinner {
			ts.Margin = float64(t.Score - runnerUp)
		}
		out.Teams = append(out.Teams, ts)
	}
	return out
}
