package model

import (
	"fmt"
	"time"
)

// DraftedPlayer is one roster slot. Position is declared by the participant
// at draft time and need not match the player's real position.
type DraftedPlayer struct {
	PlayerID    int64  `json:"player_id"`
	DisplayName string `json:"display_name"`
	Position    string `json:"position"`
}

// DraftSession is the persisted snapshot of one game. It is replaced, never
// mutated in place, by draft.SelectPlayer.
type DraftSession struct {
	ID                 string                  `json:"id"`
	Version            int                     `json:"version"`
	ParticipantCount   int                     `json:"participant_count"`
	CurrentParticipant int                     `json:"current_participant"`
	Round              int                     `json:"round"`
	Rosters            map[int][]DraftedPlayer `json:"rosters"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

// Participants lists participant numbers in ascending order.
func (s DraftSession) Participants() []int {
	out := make([]int, 0, s.ParticipantCount)
	for i := 1; i <= s.ParticipantCount; i++ {
		out = append(out, i)
	}
	return out
}

// TotalPicks counts drafted players across all rosters.
func (s DraftSession) TotalPicks() int {
	n := 0
	for _, r := range s.Rosters {
		n += len(r)
	}
	return n
}

// Clone returns a deep copy so transitions never alias the input rosters.
func (s DraftSession) Clone() DraftSession {
	out := s
	out.Rosters = make(map[int][]DraftedPlayer, len(s.Rosters))
	for k, v := range s.Rosters {
		cp := make([]DraftedPlayer, len(v))
		copy(cp, v)
		out.Rosters[k] = cp
	}
	return out
}

// ParticipantLabel is the display name used for a participant number.
func ParticipantLabel(n int) string {
	return fmt.Sprintf("Player %d", n)
}
