// Package game runs draft sessions end to end: it loads a session through
// the gateway, applies one transition and saves the result as one unit, and
// scores the session once the draft is over.
package game

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aatrey56/hoops-draft/internal/apperr"
	"github.com/aatrey56/hoops-draft/internal/draft"
	"github.com/aatrey56/hoops-draft/internal/league"
	"github.com/aatrey56/hoops-draft/internal/model"
	"github.com/aatrey56/hoops-draft/internal/reconcile"
	"github.com/aatrey56/hoops-draft/internal/scoring"
	"github.com/aatrey56/hoops-draft/internal/store"
	"github.com/aatrey56/hoops-draft/internal/store/sqlite"
)

// Redirect targets returned after an accepted selection.
const (
	WheelURL    = "/wheel/"
	GameOverURL = "/game_over/"
	NewGameURL  = "/new_game/"
)

// SessionStore is the Session Gateway: versioned load/save of draft sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, s model.DraftSession) error
	LoadSession(ctx context.Context, id string) (model.DraftSession, error)
	SaveSession(ctx context.Context, s model.DraftSession, expectedVersion int) error
}

// Catalog is the read side of the Stats Repository.
type Catalog interface {
	ListTeams(ctx context.Context) ([]model.Team, error)
	GetTeam(ctx context.Context, id int64) (model.Team, error)
	GetTeamByAbbreviation(ctx context.Context, abbr string) (model.Team, error)
	ListTeamPlayers(ctx context.Context, teamID int64) ([]model.Player, error)
	ListPlayers(ctx context.Context) ([]model.Player, error)
	GetPlayer(ctx context.Context, id int64) (model.Player, error)
	PlayerSeasons(ctx context.Context, playerID int64) ([]model.SeasonStat, error)
}

// DatasetSource yields the league attribute dataset for one scoring pass.
type DatasetSource interface {
	Load() (*league.Dataset, error)
}

type Deps struct {
	Sessions SessionStore
	Catalog  Catalog
	Dataset  DatasetSource
	// Archive receives draft ledgers at game over; nil disables archiving.
	Archive     *store.JSONStore
	ArchiveRoot string
	Logger      *zap.Logger
}

type Service struct {
	sessions    SessionStore
	catalog     Catalog
	dataset     DatasetSource
	archive     *store.JSONStore
	archiveRoot string
	engine      *scoring.Engine
	logger      *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewService(d Deps) *Service {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	root := d.ArchiveRoot
	if root == "" {
		root = "ledger"
	}
	return &Service{
		sessions:    d.Sessions,
		catalog:     d.Catalog,
		dataset:     d.Dataset,
		archive:     d.Archive,
		archiveRoot: root,
		engine:      scoring.NewEngine(logger),
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// NewGame creates and stores a fresh session.
func (s *Service) NewGame(ctx context.Context, participants int) (model.DraftSession, error) {
	sess, err := draft.NewSession(s.newID(), participants, s.now())
	if err != nil {
		return model.DraftSession{}, apperr.Wrap(apperr.Validation, err.Error(), err)
	}
	if err := s.sessions.CreateSession(ctx, sess); err != nil {
		return model.DraftSession{}, apperr.Wrap(apperr.Unexpected, "", fmt.Errorf("create session: %w", err))
	}
	s.logger.Info("game created",
		zap.String("session", sess.ID),
		zap.Int("participants", participants))
	return sess, nil
}

// State loads a session and audits it before handing it out.
func (s *Service) State(ctx context.Context, sessionID string) (model.DraftSession, error) {
	if sessionID == "" {
		return model.DraftSession{}, apperr.Wrap(apperr.Validation, "game state not found", sqlite.ErrNotFound)
	}
	sess, err := s.sessions.LoadSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			return model.DraftSession{}, apperr.Wrap(apperr.Validation, "game state not found", err)
		}
		return model.DraftSession{}, apperr.Wrap(apperr.Unexpected, "", fmt.Errorf("load session %s: %w", sessionID, err))
	}
	if report := reconcile.BuildReport(sess); !report.OK() {
		s.logger.Error("session failed audit",
			zap.String("session", sessionID),
			zap.Any("violations", report.Violations))
		return model.DraftSession{}, apperr.Wrap(apperr.Unexpected, "", report.Err())
	}
	return sess, nil
}

// IsMissingSession reports whether err came from a session that does not exist.
func IsMissingSession(err error) bool {
	return errors.Is(err, sqlite.ErrNotFound)
}

// SelectRequest is one select action. Participant is optional; zero means
// the participant currently on the clock.
type SelectRequest struct {
	Participant int    `json:"participant,omitempty"`
	PlayerID    int64  `json:"player_id"`
	Position    string `json:"position"`
}

type SelectResult struct {
	Session     model.DraftSession `json:"session"`
	Outcome     string             `json:"outcome"`
	RedirectURL string             `json:"redirect_url"`
}

// SelectPlayer validates the request, applies it to the stored session and
// saves the new state with a compare-and-swap on the session version.
func (s *Service) SelectPlayer(ctx context.Context, sessionID string, req SelectRequest) (*SelectResult, error) {
	cur, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// A closed game rejects every action, so the payload is only checked
	// while picks are still open.
	var player *model.Player
	if !draft.IsOver(cur) {
		if req.PlayerID == 0 {
			return nil, apperr.New(apperr.Validation, "player_id is required")
		}
		if strings.TrimSpace(req.Position) == "" {
			return nil, apperr.New(apperr.Validation, "position is required")
		}
		p, err := s.catalog.GetPlayer(ctx, req.PlayerID)
		switch {
		case err == nil:
			player = &p
		case errors.Is(err, sqlite.ErrNotFound):
		default:
			return nil, apperr.Wrap(apperr.Unexpected, "", fmt.Errorf("get player %d: %w", req.PlayerID, err))
		}
	}

	next, outcome, err := draft.SelectPlayer(cur, draft.Selection{
		Participant: req.Participant,
		PlayerID:    req.PlayerID,
		Position:    req.Position,
		Player:      player,
	})
	if err != nil {
		var rej *draft.Rejection
		if errors.As(err, &rej) {
			s.logger.Info("selection rejected",
				zap.String("session", sessionID),
				zap.Int("participant", cur.CurrentParticipant),
				zap.Int64("player_id", req.PlayerID),
				zap.String("reason", string(rej.Reason)))
			kind := apperr.Validation
			if rej.NotFound() {
				kind = apperr.NotFound
			}
			return nil, apperr.Wrap(kind, rej.Error(), rej)
		}
		return nil, apperr.Wrap(apperr.Unexpected, "", err)
	}

	next.Version = cur.Version + 1
	next.UpdatedAt = s.now().UTC()
	if err := s.sessions.SaveSession(ctx, next, cur.Version); err != nil {
		if errors.Is(err, sqlite.ErrVersionConflict) {
			s.logger.Warn("session save conflict",
				zap.String("session", sessionID),
				zap.Int("version", cur.Version))
			return nil, apperr.Wrap(apperr.Conflict, "the game was updated by another request, reload and try again", err)
		}
		return nil, apperr.Wrap(apperr.Unexpected, "", fmt.Errorf("save session %s: %w", sessionID, err))
	}

	s.logger.Info("selection accepted",
		zap.String("session", sessionID),
		zap.Int("participant", cur.CurrentParticipant),
		zap.Int64("player_id", req.PlayerID),
		zap.String("position", req.Position),
		zap.Int("round", cur.Round),
		zap.Stringer("outcome", outcome))

	redirect := WheelURL
	if outcome == draft.GameOver {
		redirect = GameOverURL
	}
	return &SelectResult{Session: next, Outcome: outcome.String(), RedirectURL: redirect}, nil
}

func (s *Service) archivePath(sessionID string) string {
	return path.Join(s.archiveRoot, sessionID+".json")
}
