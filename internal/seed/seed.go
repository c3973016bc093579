// Package seed fills the player catalog: NBA teams, an optional YAML catalog
// and optional placeholder players.
package seed

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aatrey56/hoops-draft/internal/model"
)

// Repository is the write side of the catalog store.
type Repository interface {
	UpsertTeam(ctx context.Context, name, abbr string) (model.Team, error)
	UpsertPlayer(ctx context.Context, p model.Player) (model.Player, error)
	LinkPlayerTeam(ctx context.Context, playerID, teamID int64) error
	PutSeasonStat(ctx context.Context, st model.SeasonStat) error
	ClearCatalog(ctx context.Context) error
}

type Options struct {
	Clear   bool
	Catalog *Catalog
	Samples bool
}

type Report struct {
	Teams   int `json:"teams"`
	Players int `json:"players"`
	Seasons int `json:"seasons"`
}

type Seeder struct {
	repo   Repository
	logger *zap.Logger
}

func NewSeeder(repo Repository, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{repo: repo, logger: logger}
}

// Run upserts NBATeams, then the catalog's teams and players, then sample
// players for every team when requested.
func (s *Seeder) Run(ctx context.Context, opts Options) (Report, error) {
	var rep Report
	if opts.Clear {
		s.logger.Info("clearing catalog")
		if err := s.repo.ClearCatalog(ctx); err != nil {
			return rep, err
		}
	}

	teams := make(map[string]model.Team)
	specs := append([]TeamSpec(nil), NBATeams...)
	if opts.Catalog != nil {
		specs = append(specs, opts.Catalog.Teams...)
	}
	for _, spec := range specs {
		abbr := strings.ToUpper(strings.TrimSpace(spec.Abbreviation))
		if _, ok := teams[abbr]; ok {
			continue
		}
		t, err := s.repo.UpsertTeam(ctx, strings.TrimSpace(spec.Name), abbr)
		if err != nil {
			return rep, fmt.Errorf("team %s: %w", abbr, err)
		}
		teams[abbr] = t
		rep.Teams++
	}

	var players []PlayerSpec
	if opts.Catalog != nil {
		players = append(players, opts.Catalog.Players...)
	}
	if opts.Samples {
		for _, spec := range NBATeams {
			players = append(players, SamplePlayers(spec.Abbreviation)...)
		}
	}
	for _, spec := range players {
		if err := s.putPlayer(ctx, teams, spec, &rep); err != nil {
			return rep, err
		}
	}

	s.logger.Info("catalog seeded",
		zap.Int("teams", rep.Teams),
		zap.Int("players", rep.Players),
		zap.Int("seasons", rep.Seasons))
	return rep, nil
}

func (s *Seeder) putPlayer(ctx context.Context, teams map[string]model.Team, spec PlayerSpec, rep *Report) error {
	p, err := s.repo.UpsertPlayer(ctx, model.Player{
		ExternalID: strings.TrimSpace(spec.PlayerID),
		Name:       strings.TrimSpace(spec.Name),
		Position:   strings.TrimSpace(spec.Position),
	})
	if err != nil {
		return fmt.Errorf("player %s: %w", spec.PlayerID, err)
	}
	rep.Players++

	for _, abbr := range spec.Teams {
		t, ok := teams[strings.ToUpper(strings.TrimSpace(abbr))]
		if !ok {
			s.logger.Warn("team not found for player",
				zap.String("team", abbr),
				zap.String("player", spec.Name))
			continue
		}
		if err := s.repo.LinkPlayerTeam(ctx, p.ID, t.ID); err != nil {
			return fmt.Errorf("player %s team %s: %w", spec.PlayerID, abbr, err)
		}
	}
	for _, season := range spec.Seasons {
		err := s.repo.PutSeasonStat(ctx, model.SeasonStat{
			PlayerID: p.ID,
			Season:   season.Season,
			Points:   season.Points,
			Rebounds: season.Rebounds,
			Assists:  season.Assists,
			VORP:     season.VORP,
		})
		if err != nil {
			return fmt.Errorf("player %s season %d: %w", spec.PlayerID, season.Season, err)
		}
		rep.Seasons++
	}
	return nil
}
