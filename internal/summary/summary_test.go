package summary

import (
	"testing"

	"github.com/aatrey56/hoops-draft/internal/scoring"
)

func ptr(b bool) *bool { return &b }

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"points":         "Points",
		"field_goal_pct": "Field Goal Pct",
		"vorp":           "Vorp",
	}
	for in, want := range cases {
		if got := Label(in); got != want {
			t.Errorf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildGameSummary_CountsWonLostTied(t *testing.T) {
	res := &scoring.Result{
		Strategy:   scoring.Comprehensive,
		Attributes: []string{"assists", "points", "rebounds"},
		Winner:     2,
		Teams: []scoring.TeamScore{
			{Participant: 1, Score: 0, Attributes: map[string]scoring.AttributeScore{
				"assists": {Won: ptr(false)}, "points": {Won: nil}, "rebounds": {Won: ptr(false)},
			}},
			{Participant: 2, Score: 2, Attributes: map[string]scoring.AttributeScore{
				"assists": {Won: ptr(true)}, "points": {Won: nil}, "rebounds": {Won: ptr(true)},
			}, Unresolved: []string{"Ghost"}},
		},
	}

	s := BuildGameSummary("abc", res)

	if s.WinnerName != "Player 2" {
		t.Errorf("WinnerName = %q, want Player 2", s.WinnerName)
	}
	if s.DecidedByTie {
		t.Error("DecidedByTie = true, want false")
	}
	if len(s.Attributes) != 3 || s.Attributes[2].Label != "Rebounds" {
		t.Errorf("Attributes = %+v", s.Attributes)
	}
	one, two := s.Teams[0], s.Teams[1]
	if one.Won != 0 || one.Lost != 2 || one.Tied != 1 {
		t.Errorf("team 1 won/lost/tied = %d/%d/%d, want 0/2/1", one.Won, one.Lost, one.Tied)
	}
	if two.Won != 2 || two.Lost != 0 || two.Tied != 1 {
		t.Errorf("team 2 won/lost/tied = %d/%d/%d, want 2/0/1", two.Won, two.Lost, two.Tied)
	}
	if !two.IsWinner || two.Margin != 2 {
		t.Errorf("team 2 IsWinner=%v Margin=%v, want true 2", two.IsWinner, two.Margin)
	}
	if two.Unresolved != 1 {
		t.Errorf("team 2 Unresolved = %d, want 1", two.Unresolved)
	}
}

func TestBuildGameSummary_SimpleStrategyHasNoAttributes(t *testing.T) {
	res := &scoring.Result{
		Strategy:    scoring.Simple,
		Winner:      1,
		TiedLeaders: []int{1, 2},
		Teams: []scoring.TeamScore{
			{Participant: 1, Score: 5},
			{Participant: 2, Score: 5},
		},
	}

	s := BuildGameSummary("abc", res)

	if !s.DecidedByTie {
		t.Error("DecidedByTie = false, want true")
	}
	if len(s.Attributes) != 0 {
		t.Errorf("Attributes len = %d, want 0", len(s.Attributes))
	}
	if s.Teams[0].Won+s.Teams[0].Lost+s.Teams[0].Tied != 0 {
		t.Error("simple strategy should not tally attributes")
	}
	if s.Teams[0].Margin != 0 {
		t.Errorf("Margin = %v, want 0 on a tie", s.Teams[0].Margin)
	}
}
