// Package draft implements the turn-based selection rules of a draft session.
//
// SelectPlayer is a pure transition: it never mutates its input and either
// returns the next session or a *Rejection describing the first failed rule.
package draft

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/aatrey56/hoops-draft/internal/model"
)

// RoundLimit is the number of rounds each participant drafts in.
const RoundLimit = 5

// MinParticipants is the smallest legal game.
const MinParticipants = 2

// Outcome tells the caller where the game goes after an accepted selection.
type Outcome int

const (
	Continue Outcome = iota
	GameOver
)

func (o Outcome) String() string {
	if o == GameOver {
		return "game_over"
	}
	return "continue"
}

// Selection is one draft action. Participant is the caller's claim on the
// turn; zero means "whoever is on the clock". Player is the repository's
// answer for PlayerID, nil when the id did not resolve.
type Selection struct {
	Participant int
	PlayerID    int64
	Position    string
	Player      *model.Player
}

var fold = cases.Fold()

// NormalizePosition is the comparison key for position labels.
func NormalizePosition(position string) string {
	return fold.String(strings.TrimSpace(position))
}

// NewSession builds the initial state: round 1, participant 1, empty rosters.
func NewSession(id string, participants int, now time.Time) (model.DraftSession, error) {
	if participants < MinParticipants {
		return model.DraftSession{}, fmt.Errorf("participant count must be at least %d, got %d", MinParticipants, participants)
	}
	rosters := make(map[int][]model.DraftedPlayer, participants)
	for i := 1; i <= participants; i++ {
		rosters[i] = []model.DraftedPlayer{}
	}
	return model.DraftSession{
		ID:                 id,
		Version:            1,
		ParticipantCount:   participants,
		CurrentParticipant: 1,
		Round:              1,
		Rosters:            rosters,
		CreatedAt:          now.UTC(),
		UpdatedAt:          now.UTC(),
	}, nil
}

// IsOver reports whether the session has passed the final round.
func IsOver(s model.DraftSession) bool {
	return s.Round > RoundLimit
}

// HolderOf returns the participant whose roster holds playerID, or 0.
func HolderOf(s model.DraftSession, playerID int64) int {
	for _, n := range s.Participants() {
		for _, p := range s.Rosters[n] {
			if p.PlayerID == playerID {
				return n
			}
		}
	}
	return 0
}

// SelectPlayer validates sel against s and, on success, appends the player
// to the current participant's roster and advances the turn.
//
// Rules are checked in order and the first failure wins: game closed, out of
// turn, unknown player, duplicate position, player already drafted.
func SelectPlayer(s model.DraftSession, sel Selection) (model.DraftSession, Outcome, error) {
	if IsOver(s) {
		return s, GameOver, &Rejection{Reason: GameClosed}
	}
	if sel.Participant != 0 && sel.Participant != s.CurrentParticipant {
		return s, Continue, &Rejection{Reason: OutOfTurn, Participant: sel.Participant, Current: s.CurrentParticipant}
	}
	if sel.Player == nil || sel.Player.ID != sel.PlayerID {
		return s, Continue, &Rejection{Reason: UnknownPlayer, PlayerID: sel.PlayerID}
	}

	position := strings.TrimSpace(sel.Position)
	key := NormalizePosition(position)
	for _, p := range s.Rosters[s.CurrentParticipant] {
		if NormalizePosition(p.Position) == key {
			return s, Continue, &Rejection{Reason: DuplicatePosition, Position: position}
		}
	}
	if holder := HolderOf(s, sel.PlayerID); holder != 0 {
		return s, Continue, &Rejection{Reason: PlayerAlreadyDrafted, PlayerID: sel.PlayerID, HeldBy: holder}
	}

	next := s.Clone()
	next.Rosters[s.CurrentParticipant] = append(next.Rosters[s.CurrentParticipant], model.DraftedPlayer{
		PlayerID:    sel.Player.ID,
		DisplayName: sel.Player.Name,
		Position:    position,
	})
	if next.CurrentParticipant < next.ParticipantCount {
		next.CurrentParticipant++
	} else {
		next.CurrentParticipant = 1
		next.Round++
	}

	if IsOver(next) {
		return next, GameOver, nil
	}
	return next, Continue, nil
}
