package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/aatrey56/hoops-draft/internal/model"
)

// BuildDraftLedger lays out a session's picks in draft order. Turn order is a
// fixed rotation, so the i-th player on participant p's roster was taken in
// round i+1 at overall index i*participants + p.
func BuildDraftLedger(s model.DraftSession) *model.DraftLedger {
	n := s.ParticipantCount
	managers := make([]model.Manager, 0, n)
	squads := make([]model.Squad, 0, n)
	picks := make([]model.DraftPick, 0, s.TotalPicks())

	for _, p := range s.Participants() {
		managers = append(managers, model.Manager{
			Participant: p,
			Name:        model.ParticipantLabel(p),
		})

		roster := s.Rosters[p]
		ids := make([]int64, 0, len(roster))
		for i, dp := range roster {
			ids = append(ids, dp.PlayerID)
			picks = append(picks, model.DraftPick{
				Participant: p,
				PlayerID:    dp.PlayerID,
				PlayerName:  dp.DisplayName,
				Position:    dp.Position,
				Round:       i + 1,
				Pick:        p,
				Index:       i*n + p,
			})
		}
		squads = append(squads, model.Squad{
			Participant: p,
			PlayerIDs:   ids,
		})
	}

	sort.Slice(picks, func(i, j int) bool {
		return picks[i].Index < picks[j].Index
	})

	rounds := s.Round - 1
	if s.CurrentParticipant > 1 {
		rounds++
	}

	return &model.DraftLedger{
		SessionID:      s.ID,
		Rounds:         rounds,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Managers:       managers,
		Squads:         squads,
		Picks:          picks,
	}
}

func WriteDraftLedger(path string, ledger *model.DraftLedger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
