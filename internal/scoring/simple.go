package scoring

import (
	"time"

	"github.com/aatrey56/hoops-draft/internal/model"
)

// PeakSeason picks the season with the highest VORP; the earliest listed
// season wins ties.
func PeakSeason(seasons []model.SeasonStat) (model.PeakSeasonStat, bool) {
	if len(seasons) == 0 {
		return model.PeakSeasonStat{}, false
	}
	best := seasons[0]
	for _, st := range seasons[1:] {
		if st.VORP > best.VORP {
			best = st
		}
	}
	return model.PeakSeasonStat{
		Season:               best.Season,
		Points:               best.Points,
		Rebounds:             best.Rebounds,
		Assists:              best.Assists,
		ValueOverReplacement: best.VORP,
	}, true
}

// ScoreSimple scores each team by the number of players drafted. peaks is
// optional context attached to each player line; it does not affect scores.
func ScoreSimple(s model.DraftSession, peaks map[int64]model.PeakSeasonStat) *Result {
	participants := s.Participants()
	teams := make([]TeamScore, 0, len(participants))
	for _, n := range participants {
		roster := s.Rosters[n]
		team := TeamScore{
			Participant: n,
			Score:       len(roster),
			Players:     make([]PlayerLine, 0, len(roster)),
		}
		for _, dp := range roster {
			line := PlayerLine{PlayerID: dp.PlayerID, DisplayName: dp.DisplayName, Position: dp.Position}
			if peak, ok := peaks[dp.PlayerID]; ok {
				p := peak
				line.Peak = &p
				line.Resolved = true
			}
			team.Players = append(team.Players, line)
		}
		teams = append(teams, team)
	}

	winner, tied := pickWinner(teams)
	return &Result{
		Strategy:       Simple,
		Teams:          teams,
		Winner:         winner,
		TiedLeaders:    tied,
		TieBreak:       TieBreakLowestParticipant,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
	}
}
