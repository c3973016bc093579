package game

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aatrey56/hoops-draft/internal/apperr"
	"github.com/aatrey56/hoops-draft/internal/draft"
	"github.com/aatrey56/hoops-draft/internal/league"
	"github.com/aatrey56/hoops-draft/internal/ledger"
	"github.com/aatrey56/hoops-draft/internal/model"
	"github.com/aatrey56/hoops-draft/internal/scoring"
	"github.com/aatrey56/hoops-draft/internal/summary"
)

// Outcome is everything the game-over screen needs.
type Outcome struct {
	Session model.DraftSession   `json:"session"`
	Result  *scoring.Result      `json:"result"`
	Summary *summary.GameSummary `json:"summary"`
	Ledger  *model.DraftLedger   `json:"ledger"`
}

// GameOver scores a finished session. A missing or malformed league dataset
// is not an error: the engine falls back to the simple strategy.
func (s *Service) GameOver(ctx context.Context, sessionID string) (*Outcome, error) {
	sess, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !draft.IsOver(sess) {
		return nil, apperr.New(apperr.Validation,
			fmt.Sprintf("the draft is still in round %d of %d", sess.Round, draft.RoundLimit))
	}

	ds := s.loadDataset(sessionID)
	peaks := s.peaks(ctx, sess)
	res := s.engine.Score(sess, ds, peaks)
	led := ledger.BuildDraftLedger(sess)

	if err := s.archiveLedger(led); err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "", err)
	}

	s.logger.Info("game over",
		zap.String("session", sessionID),
		zap.String("strategy", string(res.Strategy)),
		zap.Int("winner", res.Winner),
		zap.Ints("tied_leaders", res.TiedLeaders))

	return &Outcome{
		Session: sess,
		Result:  res,
		Summary: summary.BuildGameSummary(sessionID, res),
		Ledger:  led,
	}, nil
}

func (s *Service) loadDataset(sessionID string) *league.Dataset {
	if s.dataset == nil {
		return nil
	}
	ds, err := s.dataset.Load()
	if err != nil {
		s.logger.Warn("league dataset unavailable, falling back to simple scoring",
			zap.String("session", sessionID),
			zap.String("kind", string(apperr.DataSource)),
			zap.Error(err))
		return nil
	}
	return ds
}

// peaks looks up the peak season of every drafted player. Lookup failures
// only drop that player's peak.
func (s *Service) peaks(ctx context.Context, sess model.DraftSession) map[int64]model.PeakSeasonStat {
	out := make(map[int64]model.PeakSeasonStat)
	for _, n := range sess.Participants() {
		for _, dp := range sess.Rosters[n] {
			seasons, err := s.catalog.PlayerSeasons(ctx, dp.PlayerID)
			if err != nil {
				s.logger.Warn("season lookup failed",
					zap.Int64("player_id", dp.PlayerID),
					zap.Error(err))
				continue
			}
			if peak, ok := scoring.PeakSeason(seasons); ok {
				out[dp.PlayerID] = peak
			}
		}
	}
	return out
}

// archiveLedger writes the ledger once; later game-over views reuse it.
func (s *Service) archiveLedger(led *model.DraftLedger) error {
	if s.archive == nil {
		return nil
	}
	rel := s.archivePath(led.SessionID)
	if s.archive.Exists(rel) {
		return nil
	}
	if err := ledger.WriteDraftLedger(s.archive.Path(rel), led); err != nil {
		return fmt.Errorf("archive ledger %s: %w", rel, err)
	}
	s.logger.Info("draft ledger archived", zap.String("path", rel))
	return nil
}
