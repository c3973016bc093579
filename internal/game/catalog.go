package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/aatrey56/hoops-draft/internal/apperr"
	"github.com/aatrey56/hoops-draft/internal/draft"
	"github.com/aatrey56/hoops-draft/internal/model"
	"github.com/aatrey56/hoops-draft/internal/reconcile"
	"github.com/aatrey56/hoops-draft/internal/scoring"
	"github.com/aatrey56/hoops-draft/internal/store/sqlite"
)

// BoardPlayer is a team player annotated with the participant holding them.
type BoardPlayer struct {
	model.Player
	DraftedBy int `json:"drafted_by,omitempty"`
}

// TeamBoard is the selection screen for one team.
type TeamBoard struct {
	Team               model.Team    `json:"team"`
	Players            []BoardPlayer `json:"players"`
	CurrentParticipant int           `json:"current_participant,omitempty"`
	Round              int           `json:"round,omitempty"`
}

// PlayerDetail is a catalog player with its season history and peak.
type PlayerDetail struct {
	model.Player
	Seasons []model.SeasonStat    `json:"seasons"`
	Peak    *model.PeakSeasonStat `json:"peak,omitempty"`
}

func lookupErr(what string, err error) error {
	if errors.Is(err, sqlite.ErrNotFound) {
		return apperr.Wrap(apperr.NotFound, what+" not found", err)
	}
	return apperr.Wrap(apperr.Unexpected, "", fmt.Errorf("%s: %w", what, err))
}

// TeamBoard lists a team's players by abbreviation. When sessionID names a
// session, players already drafted carry their holder.
func (s *Service) TeamBoard(ctx context.Context, sessionID, abbr string) (*TeamBoard, error) {
	team, err := s.catalog.GetTeamByAbbreviation(ctx, abbr)
	if err != nil {
		return nil, lookupErr(fmt.Sprintf("team %q", abbr), err)
	}
	players, err := s.catalog.ListTeamPlayers(ctx, team.ID)
	if err != nil {
		return nil, lookupErr("team players", err)
	}

	board := &TeamBoard{Team: team, Players: make([]BoardPlayer, 0, len(players))}
	owners := map[int64]int{}
	if sessionID != "" {
		sess, err := s.State(ctx, sessionID)
		if err != nil && !IsMissingSession(err) {
			return nil, err
		}
		if err == nil {
			owners = reconcile.Owners(sess)
			board.CurrentParticipant = sess.CurrentParticipant
			board.Round = sess.Round
			if draft.IsOver(sess) {
				board.CurrentParticipant = 0
			}
		}
	}
	for _, p := range players {
		board.Players = append(board.Players, BoardPlayer{Player: p, DraftedBy: owners[p.ID]})
	}
	return board, nil
}

func (s *Service) Teams(ctx context.Context) ([]model.Team, error) {
	teams, err := s.catalog.ListTeams(ctx)
	if err != nil {
		return nil, lookupErr("teams", err)
	}
	return teams, nil
}

func (s *Service) Team(ctx context.Context, id int64) (*model.TeamWithPlayers, error) {
	team, err := s.catalog.GetTeam(ctx, id)
	if err != nil {
		return nil, lookupErr(fmt.Sprintf("team %d", id), err)
	}
	players, err := s.catalog.ListTeamPlayers(ctx, id)
	if err != nil {
		return nil, lookupErr("team players", err)
	}
	return &model.TeamWithPlayers{Team: team, Players: players}, nil
}

func (s *Service) Players(ctx context.Context) ([]model.Player, error) {
	players, err := s.catalog.ListPlayers(ctx)
	if err != nil {
		return nil, lookupErr("players", err)
	}
	return players, nil
}

func (s *Service) Player(ctx context.Context, id int64) (*PlayerDetail, error) {
	p, err := s.catalog.GetPlayer(ctx, id)
	if err != nil {
		return nil, lookupErr(fmt.Sprintf("player %d", id), err)
	}
	seasons, err := s.catalog.PlayerSeasons(ctx, id)
	if err != nil {
		return nil, lookupErr("player seasons", err)
	}
	if seasons == nil {
		seasons = []model.SeasonStat{}
	}
	out := &PlayerDetail{Player: p, Seasons: seasons}
	if peak, ok := scoring.PeakSeason(seasons); ok {
		out.Peak = &peak
	}
	return out, nil
}
