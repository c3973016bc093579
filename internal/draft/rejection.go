package draft

import "fmt"

// Reason enumerates why a selection was refused.
type Reason string

const (
	GameClosed           Reason = "game_closed"
	OutOfTurn            Reason = "out_of_turn"
	UnknownPlayer        Reason = "unknown_player"
	DuplicatePosition    Reason = "duplicate_position"
	PlayerAlreadyDrafted Reason = "player_already_drafted"
)

// Rejection is returned for every refused selection. The session passed to
// SelectPlayer is returned unchanged alongside it.
type Rejection struct {
	Reason      Reason
	PlayerID    int64
	Position    string
	HeldBy      int
	Participant int
	Current     int
}

func (r *Rejection) Error() string {
	switch r.Reason {
	case GameClosed:
		return "the draft is over"
	case OutOfTurn:
		return fmt.Sprintf("it is player %d's turn, not player %d's", r.Current, r.Participant)
	case UnknownPlayer:
		return fmt.Sprintf("player %d not found", r.PlayerID)
	case DuplicatePosition:
		return fmt.Sprintf("you already have a player at position %s", r.Position)
	case PlayerAlreadyDrafted:
		return fmt.Sprintf("player %d has already been drafted by player %d", r.PlayerID, r.HeldBy)
	default:
		return string(r.Reason)
	}
}

// NotFound reports whether the rejection should surface as a not-found error.
func (r *Rejection) NotFound() bool {
	return r.Reason == UnknownPlayer
}
