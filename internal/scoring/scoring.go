// Package scoring decides the winner of a finished draft.
//
// The comprehensive strategy compares every league attribute across teams and
// awards one point per attribute to the team with the unique highest total.
// When no league dataset is available the simple strategy counts players.
package scoring

import (
	"math"
	"time"

	"github.com/aatrey56/hoops-draft/internal/league"
	"github.com/aatrey56/hoops-draft/internal/model"
)

type Strategy string

const (
	Comprehensive Strategy = "comprehensive"
	Simple        Strategy = "simple"
)

// TieBreakLowestParticipant names the overall tie-break: among teams level on
// score the lowest participant number wins.
const TieBreakLowestParticipant = "lowest_participant"

// AttributeScore is one team's total for one attribute. Won is true for the
// unique leader, false for everyone else, nil when the lead is shared.
type AttributeScore struct {
	Total float64 `json:"total"`
	Won   *bool   `json:"won"`
}

type PlayerLine struct {
	PlayerID      int64                 `json:"player_id"`
	DisplayName   string                `json:"display_name"`
	Position      string                `json:"position"`
	MatchedRecord string                `json:"matched_record,omitempty"`
	Resolved      bool                  `json:"resolved"`
	Peak          *model.PeakSeasonStat `json:"peak,omitempty"`
}

type TeamScore struct {
	Participant int                       `json:"participant"`
	Score       int                       `json:"score"`
	Attributes  map[string]AttributeScore `json:"attributes,omitempty"`
	Players     []PlayerLine              `json:"players"`
	Unresolved  []string                  `json:"unresolved,omitempty"`
}

// Comparison records how one attribute was decided.
type Comparison struct {
	Attribute    string          `json:"attribute"`
	Max          float64         `json:"max"`
	Winner       int             `json:"winner,omitempty"`
	Tie          bool            `json:"tie"`
	LosingTotals map[int]float64 `json:"losing_totals,omitempty"`
}

type Result struct {
	Strategy       Strategy     `json:"strategy"`
	Attributes     []string     `json:"attributes,omitempty"`
	Teams          []TeamScore  `json:"teams"`
	Comparisons    []Comparison `json:"comparisons,omitempty"`
	Winner         int          `json:"winner"`
	TiedLeaders    []int        `json:"tied_leaders,omitempty"`
	TieBreak       string       `json:"tie_break"`
	GeneratedAtUTC string       `json:"generated_at_utc"`
}

// Team returns the score entry for participant n.
func (r *Result) Team(n int) (TeamScore, bool) {
	for _, t := range r.Teams {
		if t.Participant == n {
			return t, true
		}
	}
	return TeamScore{}, false
}

func boolPtr(b bool) *bool { return &b }

func nearlyEqual(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= 1e-9*scale
}

// ScoreComprehensive sums every dataset attribute per team and awards
// attribute points. ds must hold at least one record.
func ScoreComprehensive(s model.DraftSession, ds *league.Dataset) *Result {
	participants := s.Participants()
	teams := make([]TeamScore, 0, len(participants))
	for _, n := range participants {
		team := TeamScore{
			Participant: n,
			Attributes:  make(map[string]AttributeScore, len(ds.Attributes)),
			Players:     make([]PlayerLine, 0, len(s.Rosters[n])),
		}
		totals := make(map[string]float64, len(ds.Attributes))
		for _, dp := range s.Rosters[n] {
			line := PlayerLine{PlayerID: dp.PlayerID, DisplayName: dp.DisplayName, Position: dp.Position}
			rec, ok := ds.Resolve(dp.DisplayName)
			if ok {
				line.Resolved = true
				line.MatchedRecord = rec.Name
				for _, attr := range ds.Attributes {
					totals[attr] += rec.Value(attr)
				}
			} else {
				team.Unresolved = append(team.Unresolved, dp.DisplayName)
			}
			team.Players = append(team.Players, line)
		}
		for _, attr := range ds.Attributes {
			team.Attributes[attr] = AttributeScore{Total: totals[attr]}
		}
		teams = append(teams, team)
	}

	comparisons := make([]Comparison, 0, len(ds.Attributes))
	for _, attr := range ds.Attributes {
		comparisons = append(comparisons, compareAttribute(attr, teams))
	}

	winner, tied := pickWinner(teams)
	return &Result{
		Strategy:       Comprehensive,
		Attributes:     append([]string(nil), ds.Attributes...),
		Teams:          teams,
		Comparisons:    comparisons,
		Winner:         winner,
		TiedLeaders:    tied,
		TieBreak:       TieBreakLowestParticipant,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
	}
}

// compareAttribute marks the attribute on every team and credits the unique
// leader with a point. Any shared maximum, including one at or below zero,
// is a tie.
func compareAttribute(attr string, teams []TeamScore) Comparison {
	best := math.Inf(-1)
	var leaders []int
	for i := range teams {
		v := teams[i].Attributes[attr].Total
		switch {
		case len(leaders) == 0 || (v > best && !nearlyEqual(v, best)):
			best = v
			leaders = []int{i}
		case nearlyEqual(v, best):
			leaders = append(leaders, i)
		}
	}

	cmp := Comparison{Attribute: attr, Max: best}
	if len(leaders) != 1 {
		cmp.Tie = true
		for i := range teams {
			a := teams[i].Attributes[attr]
			a.Won = nil
			teams[i].Attributes[attr] = a
		}
		return cmp
	}

	lead := leaders[0]
	cmp.Winner = teams[lead].Participant
	cmp.LosingTotals = make(map[int]float64, len(teams)-1)
	for i := range teams {
		a := teams[i].Attributes[attr]
		if i == lead {
			a.Won = boolPtr(true)
			teams[i].Score++
		} else {
			a.Won = boolPtr(false)
			cmp.LosingTotals[teams[i].Participant] = a.Total
		}
		teams[i].Attributes[attr] = a
	}
	return cmp
}

// pickWinner returns the highest-scoring participant, preferring the lowest
// participant number among equals, and every participant level with it when
// more than one is.
func pickWinner(teams []TeamScore) (int, []int) {
	if len(teams) == 0 {
		return 0, nil
	}
	best := teams[0].Score
	for _, t := range teams[1:] {
		if t.Score > best {
			best = t.Score
		}
	}
	var leaders []int
	for _, t := range teams {
		if t.Score == best {
			leaders = append(leaders, t.Participant)
		}
	}
	// teams are ordered by participant number.
	if len(leaders) == 1 {
		return leaders[0], nil
	}
	return leaders[0], leaders
}
