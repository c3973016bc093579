package reconcile

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aatrey56/hoops-draft/internal/draft"
	"github.com/aatrey56/hoops-draft/internal/ledger"
	"github.com/aatrey56/hoops-draft/internal/model"
)

const (
	KindParticipantCount  = "participant_count"
	KindMissingRoster     = "missing_roster"
	KindUnexpectedRoster  = "unexpected_roster"
	KindTurnPointer       = "turn_pointer"
	KindRosterSize        = "roster_size"
	KindDoubleDrafted     = "double_drafted"
	KindDuplicatePosition = "duplicate_position"
)

type Violation struct {
	Kind        string `json:"kind"`
	Participant int    `json:"participant,omitempty"`
	PlayerID    int64  `json:"player_id,omitempty"`
	Detail      string `json:"detail"`
}

type Report struct {
	SessionID      string      `json:"session_id"`
	GeneratedAtUTC string      `json:"generated_at_utc"`
	Violations     []Violation `json:"violations"`
}

// OK reports whether the audit found nothing wrong.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// Err summarizes the violations as an error, nil when the report is clean.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	kinds := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		kinds = append(kinds, v.Kind)
	}
	return fmt.Errorf("session %s failed audit: %s", r.SessionID, strings.Join(kinds, ", "))
}

// BuildOwnershipMap maps participant -> set of owned player ids.
func BuildOwnershipMap(ledgerIn *model.DraftLedger) map[int]map[int64]bool {
	out := make(map[int]map[int64]bool)
	for _, squad := range ledgerIn.Squads {
		if _, ok := out[squad.Participant]; !ok {
			out[squad.Participant] = make(map[int64]bool)
		}
		for _, playerID := range squad.PlayerIDs {
			out[squad.Participant][playerID] = true
		}
	}
	return out
}

// BuildReport audits a session loaded from storage: roster presence, turn
// arithmetic, single ownership of every player and unique positions per roster.
func BuildReport(s model.DraftSession) *Report {
	report := &Report{
		SessionID:      s.ID,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Violations:     make([]Violation, 0),
	}
	add := func(v Violation) { report.Violations = append(report.Violations, v) }

	n := s.ParticipantCount
	if n < draft.MinParticipants {
		add(Violation{Kind: KindParticipantCount, Detail: fmt.Sprintf("participant count %d", n)})
		return report
	}
	for p := 1; p <= n; p++ {
		if _, ok := s.Rosters[p]; !ok {
			add(Violation{Kind: KindMissingRoster, Participant: p, Detail: "no roster entry"})
		}
	}
	extra := make([]int, 0)
	for p := range s.Rosters {
		if p < 1 || p > n {
			extra = append(extra, p)
		}
	}
	sort.Ints(extra)
	for _, p := range extra {
		add(Violation{Kind: KindUnexpectedRoster, Participant: p, Detail: "roster outside participant range"})
	}

	if s.CurrentParticipant < 1 || s.CurrentParticipant > n || s.Round < 1 {
		add(Violation{Kind: KindTurnPointer, Detail: fmt.Sprintf("participant %d round %d", s.CurrentParticipant, s.Round)})
		return report
	}
	for p := 1; p <= n; p++ {
		want := s.Round - 1
		if p < s.CurrentParticipant {
			want++
		}
		if got := len(s.Rosters[p]); got != want {
			add(Violation{Kind: KindRosterSize, Participant: p, Detail: fmt.Sprintf("has %d players, turn order implies %d", got, want)})
		}
	}

	holders := make(map[int64][]int)
	for p := 1; p <= n; p++ {
		seenPos := make(map[string]bool)
		for _, dp := range s.Rosters[p] {
			holders[dp.PlayerID] = append(holders[dp.PlayerID], p)
			key := draft.NormalizePosition(dp.Position)
			if seenPos[key] {
				add(Violation{Kind: KindDuplicatePosition, Participant: p, PlayerID: dp.PlayerID, Detail: dp.Position})
			}
			seenPos[key] = true
		}
	}
	ids := make([]int64, 0, len(holders))
	for id, hs := range holders {
		if len(hs) > 1 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		add(Violation{Kind: KindDoubleDrafted, PlayerID: id, Detail: fmt.Sprintf("held by participants %v", holders[id])})
	}

	return report
}

// Owners inverts the ledger ownership map: player id -> participant.
func Owners(s model.DraftSession) map[int64]int {
	out := make(map[int64]int)
	for participant, owned := range BuildOwnershipMap(ledger.BuildDraftLedger(s)) {
		for id := range owned {
			out[id] = participant
		}
	}
	return out
}
