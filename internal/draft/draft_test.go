package draft

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aatrey56/hoops-draft/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var epoch = time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC)

func player(id int64, name string) *model.Player {
	return &model.Player{ID: id, Name: name}
}

func pick(t *testing.T, s model.DraftSession, id int64, pos string) (model.DraftSession, Outcome) {
	t.Helper()
	next, out, err := SelectPlayer(s, Selection{PlayerID: id, Position: pos, Player: player(id, "p")})
	require.NoError(t, err)
	return next, out
}

func newSession(t *testing.T, n int) model.DraftSession {
	t.Helper()
	s, err := NewSession("game-1", n, epoch)
	require.NoError(t, err)
	return s
}

func rejectionOf(t *testing.T, err error) *Rejection {
	t.Helper()
	var rej *Rejection
	require.True(t, errors.As(err, &rej), "want *Rejection, got %v", err)
	return rej
}

var positions = []string{"PG", "SG", "SF", "PF", "C"}

func TestNewSession(t *testing.T) {
	s := newSession(t, 3)

	assert.Equal(t, 1, s.CurrentParticipant)
	assert.Equal(t, 1, s.Round)
	assert.Equal(t, 1, s.Version)
	require.Len(t, s.Rosters, 3)
	for i := 1; i <= 3; i++ {
		assert.NotNil(t, s.Rosters[i], "roster %d", i)
		assert.Empty(t, s.Rosters[i])
	}
}

func TestNewSession_TooFewParticipants(t *testing.T) {
	_, err := NewSession("x", 1, epoch)
	require.Error(t, err)
}

// Scenario A: two participants drafting disjoint players finish after ten picks.
func TestSelectPlayer_FullGameTwoParticipants(t *testing.T) {
	s := newSession(t, 2)
	var out Outcome
	id := int64(100)
	for round := 0; round < RoundLimit; round++ {
		for p := 0; p < 2; p++ {
			require.Equal(t, Continue, out, "game ended early at round %d", round+1)
			id++
			s, out = pick(t, s, id, positions[round])
		}
	}

	assert.Equal(t, GameOver, out)
	assert.True(t, IsOver(s))
	assert.Len(t, s.Rosters[1], RoundLimit)
	assert.Len(t, s.Rosters[2], RoundLimit)
}

func TestSelectPlayer_TurnRoundRobin(t *testing.T) {
	for _, n := range []int{2, 3, 4, 7} {
		s := newSession(t, n)
		for k := 1; k <= n*RoundLimit; k++ {
			// Before the k-th selection the turn pointer is determined by k alone.
			assert.Equal(t, (k-1)%n+1, s.CurrentParticipant, "n=%d k=%d", n, k)
			assert.Equal(t, (k-1)/n+1, s.Round, "n=%d k=%d", n, k)

			var out Outcome
			s, out = pick(t, s, int64(k), positions[(k-1)/n])
			if k < n*RoundLimit {
				assert.Equal(t, Continue, out, "n=%d k=%d", n, k)
			} else {
				assert.Equal(t, GameOver, out, "n=%d k=%d", n, k)
			}
		}
	}
}

// Scenario B.
func TestSelectPlayer_DuplicatePositionRejected(t *testing.T) {
	s := newSession(t, 2)
	s, _ = pick(t, s, 1, "PG")
	s, _ = pick(t, s, 2, "C")

	_, _, err := SelectPlayer(s, Selection{PlayerID: 3, Position: "pg", Player: player(3, "x")})

	rej := rejectionOf(t, err)
	assert.Equal(t, DuplicatePosition, rej.Reason)
	assert.Equal(t, "pg", rej.Position)
	assert.Len(t, s.Rosters[1], 1)
}

// Scenario C.
func TestSelectPlayer_PlayerAlreadyDrafted(t *testing.T) {
	s := newSession(t, 2)
	s, _ = pick(t, s, 42, "PG")

	next, _, err := SelectPlayer(s, Selection{PlayerID: 42, Position: "SG", Player: player(42, "x")})

	rej := rejectionOf(t, err)
	assert.Equal(t, PlayerAlreadyDrafted, rej.Reason)
	assert.Equal(t, 1, rej.HeldBy)
	assert.Empty(t, cmp.Diff(s, next))
}

func TestSelectPlayer_DuplicatePositionReportedBeforeDoubleDraft(t *testing.T) {
	s := newSession(t, 2)
	s, _ = pick(t, s, 1, "PG")
	s, _ = pick(t, s, 2, "SG")

	// Player 2 is held by participant 2 and participant 1 already has a PG.
	_, _, err := SelectPlayer(s, Selection{PlayerID: 2, Position: "PG", Player: player(2, "x")})

	assert.Equal(t, DuplicatePosition, rejectionOf(t, err).Reason)
}

func TestSelectPlayer_UnknownPlayer(t *testing.T) {
	s := newSession(t, 2)

	_, _, err := SelectPlayer(s, Selection{PlayerID: 9, Position: "PG"})

	rej := rejectionOf(t, err)
	assert.Equal(t, UnknownPlayer, rej.Reason)
	assert.True(t, rej.NotFound())
}

func TestSelectPlayer_GameClosedWinsOverEverything(t *testing.T) {
	s := newSession(t, 2)
	s.Round = RoundLimit + 1

	_, out, err := SelectPlayer(s, Selection{PlayerID: 9, Position: "PG"})

	assert.Equal(t, GameClosed, rejectionOf(t, err).Reason)
	assert.Equal(t, GameOver, out)
}

func TestSelectPlayer_OutOfTurnClaim(t *testing.T) {
	s := newSession(t, 3)

	_, _, err := SelectPlayer(s, Selection{Participant: 2, PlayerID: 1, Position: "PG", Player: player(1, "x")})

	rej := rejectionOf(t, err)
	assert.Equal(t, OutOfTurn, rej.Reason)
	assert.Equal(t, 1, rej.Current)

	next, _, err := SelectPlayer(s, Selection{Participant: 1, PlayerID: 1, Position: "PG", Player: player(1, "x")})
	require.NoError(t, err)
	assert.Equal(t, 2, next.CurrentParticipant)
}

func TestSelectPlayer_RejectionLeavesStateUnchanged(t *testing.T) {
	s := newSession(t, 2)
	s, _ = pick(t, s, 1, "PG")
	s, _ = pick(t, s, 2, "PG")
	before := s.Clone()

	cases := []Selection{
		{PlayerID: 77, Position: "SG"},
		{PlayerID: 3, Position: " pg ", Player: player(3, "x")},
		{PlayerID: 2, Position: "SF", Player: player(2, "x")},
		{Participant: 2, PlayerID: 4, Position: "SF", Player: player(4, "x")},
	}
	for _, sel := range cases {
		got, _, err := SelectPlayer(s, sel)
		require.Error(t, err)
		assert.Empty(t, cmp.Diff(before, got), "selection %+v", sel)
		assert.Empty(t, cmp.Diff(before, s), "input mutated by %+v", sel)
	}
}

func TestSelectPlayer_DoesNotAliasInput(t *testing.T) {
	s := newSession(t, 2)
	next, _ := pick(t, s, 1, "PG")

	assert.Empty(t, s.Rosters[1])
	assert.Len(t, next.Rosters[1], 1)
	assert.Equal(t, model.DraftedPlayer{PlayerID: 1, DisplayName: "p", Position: "PG"}, next.Rosters[1][0])
}

// No player id may appear twice and no roster may repeat a position, whatever
// sequence of selections is attempted.
func TestSelectPlayer_InvariantsUnderArbitraryAttempts(t *testing.T) {
	s := newSession(t, 3)
	attempts := []struct {
		id  int64
		pos string
	}{
		{1, "PG"}, {1, "SG"}, {2, "PG"}, {3, "c"}, {2, "C"}, {4, "PG"}, {5, "pg"},
		{5, "SG"}, {6, "SG"}, {6, "SF"}, {7, "SG"}, {3, "SF"}, {8, "sf"}, {9, "SF"},
	}
	for _, a := range attempts {
		next, _, err := SelectPlayer(s, Selection{PlayerID: a.id, Position: a.pos, Player: player(a.id, "x")})
		if err == nil {
			s = next
		}
	}

	seen := make(map[int64]int)
	for n, roster := range s.Rosters {
		posSeen := make(map[string]bool)
		for _, p := range roster {
			seen[p.PlayerID]++
			key := NormalizePosition(p.Position)
			assert.False(t, posSeen[key], "participant %d repeats %s", n, p.Position)
			posSeen[key] = true
		}
	}
	for id, c := range seen {
		assert.Equal(t, 1, c, "player %d drafted %d times", id, c)
	}
}

func TestRejectionMessages(t *testing.T) {
	cases := []struct {
		rej  Rejection
		want string
	}{
		{Rejection{Reason: GameClosed}, "the draft is over"},
		{Rejection{Reason: UnknownPlayer, PlayerID: 7}, "player 7 not found"},
		{Rejection{Reason: DuplicatePosition, Position: "C"}, "you already have a player at position C"},
		{Rejection{Reason: PlayerAlreadyDrafted, PlayerID: 3, HeldBy: 2}, "player 3 has already been drafted by player 2"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.rej.Error())
	}
}
