package scoring

import (
	"go.uber.org/zap"

	"github.com/aatrey56/hoops-draft/internal/league"
	"github.com/aatrey56/hoops-draft/internal/model"
)

// Engine picks the strategy from data availability: comprehensive whenever
// the league dataset has records, simple otherwise.
type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Score evaluates the final session. ds may be nil.
func (e *Engine) Score(s model.DraftSession, ds *league.Dataset, peaks map[int64]model.PeakSeasonStat) *Result {
	if ds.Len() == 0 || len(ds.Attributes) == 0 {
		e.logger.Info("scoring with simple strategy",
			zap.String("session", s.ID),
			zap.Int("records", ds.Len()))
		return ScoreSimple(s, peaks)
	}

	res := ScoreComprehensive(s, ds)
	for _, t := range res.Teams {
		for _, name := range t.Unresolved {
			e.logger.Warn("no league record for drafted player",
				zap.String("session", s.ID),
				zap.Int("participant", t.Participant),
				zap.String("player", name))
		}
	}
	return res
}
