package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aatrey56/hoops-draft/internal/model"
)

// ListTeams returns every team ordered by name.
func (s *Store) ListTeams(ctx context.Context) ([]model.Team, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, "SELECT id, name, abbreviation FROM teams ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := []model.Team{}
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Abbreviation); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *Store) GetTeam(ctx context.Context, id int64) (model.Team, error) {
	if err := s.ready(ctx); err != nil {
		return model.Team{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, "SELECT id, name, abbreviation FROM teams WHERE id = ?", id)
	return scanTeam(row)
}

// GetTeamByAbbreviation matches the abbreviation case-insensitively.
func (s *Store) GetTeamByAbbreviation(ctx context.Context, abbr string) (model.Team, error) {
	if err := s.ready(ctx); err != nil {
		return model.Team{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, name, abbreviation FROM teams WHERE abbreviation = ? COLLATE NOCASE",
		strings.TrimSpace(abbr),
	)
	return scanTeam(row)
}

func scanTeam(row *sql.Row) (model.Team, error) {
	var t model.Team
	if err := row.Scan(&t.ID, &t.Name, &t.Abbreviation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Team{}, ErrNotFound
		}
		return model.Team{}, fmt.Errorf("scan team: %w", err)
	}
	return t, nil
}

// ListTeamPlayers returns the players linked to a team ordered by name.
func (s *Store) ListTeamPlayers(ctx context.Context, teamID int64) ([]model.Player, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT p.id, p.external_id, p.name, p.position
FROM players p
JOIN player_teams pt ON pt.player_id = p.id
WHERE pt.team_id = ?
ORDER BY p.name, p.id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team players: %w", err)
	}
	return scanPlayers(rows)
}

func (s *Store) ListPlayers(ctx context.Context) ([]model.Player, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, "SELECT id, external_id, name, position FROM players ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return scanPlayers(rows)
}

func scanPlayers(rows *sql.Rows) ([]model.Player, error) {
	defer rows.Close()
	players := []model.Player{}
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.ExternalID, &p.Name, &p.Position); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *Store) GetPlayer(ctx context.Context, id int64) (model.Player, error) {
	if err := s.ready(ctx); err != nil {
		return model.Player{}, err
	}
	var p model.Player
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, external_id, name, position FROM players WHERE id = ?", id,
	).Scan(&p.ID, &p.ExternalID, &p.Name, &p.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Player{}, ErrNotFound
		}
		return model.Player{}, fmt.Errorf("get player: %w", err)
	}
	return p, nil
}

// PlayerSeasons returns a player's season records ordered by season.
func (s *Store) PlayerSeasons(ctx context.Context, playerID int64) ([]model.SeasonStat, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT player_id, season, points, rebounds, assists, vorp
FROM player_season_stats WHERE player_id = ? ORDER BY season`, playerID)
	if err != nil {
		return nil, fmt.Errorf("player seasons: %w", err)
	}
	defer rows.Close()

	var out []model.SeasonStat
	for rows.Next() {
		var st model.SeasonStat
		if err := rows.Scan(&st.PlayerID, &st.Season, &st.Points, &st.Rebounds, &st.Assists, &st.VORP); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// CreateTeam inserts a team and returns it with its assigned id. A duplicate
// name or abbreviation yields ErrAlreadyExists.
func (s *Store) CreateTeam(ctx context.Context, name, abbr string) (model.Team, error) {
	if err := s.ready(ctx); err != nil {
		return model.Team{}, err
	}
	res, err := s.sqlDB.ExecContext(ctx, "INSERT INTO teams (name, abbreviation) VALUES (?, ?)", name, abbr)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Team{}, ErrAlreadyExists
		}
		return model.Team{}, fmt.Errorf("create team: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Team{}, fmt.Errorf("create team id: %w", err)
	}
	return model.Team{ID: id, Name: name, Abbreviation: abbr}, nil
}

// UpsertTeam returns the team with the given abbreviation, creating it when absent.
func (s *Store) UpsertTeam(ctx context.Context, name, abbr string) (model.Team, error) {
	t, err := s.GetTeamByAbbreviation(ctx, abbr)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return model.Team{}, err
	}
	return s.CreateTeam(ctx, name, abbr)
}

// UpsertPlayer inserts or updates a player keyed by ExternalID and returns
// the stored row.
func (s *Store) UpsertPlayer(ctx context.Context, p model.Player) (model.Player, error) {
	if err := s.ready(ctx); err != nil {
		return model.Player{}, err
	}
	if strings.TrimSpace(p.ExternalID) == "" {
		return model.Player{}, fmt.Errorf("player external id is required")
	}
	_, err := s.sqlDB.ExecContext(ctx, `INSERT INTO players (external_id, name, position) VALUES (?, ?, ?)
ON CONFLICT(external_id) DO UPDATE SET name = excluded.name, position = excluded.position`,
		p.ExternalID, p.Name, p.Position,
	)
	if err != nil {
		return model.Player{}, fmt.Errorf("upsert player: %w", err)
	}
	var out model.Player
	err = s.sqlDB.QueryRowContext(ctx,
		"SELECT id, external_id, name, position FROM players WHERE external_id = ?", p.ExternalID,
	).Scan(&out.ID, &out.ExternalID, &out.Name, &out.Position)
	if err != nil {
		return model.Player{}, fmt.Errorf("reload player: %w", err)
	}
	return out, nil
}

// LinkPlayerTeam records that a player belongs to a team. Repeats are no-ops.
func (s *Store) LinkPlayerTeam(ctx context.Context, playerID, teamID int64) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		"INSERT OR IGNORE INTO player_teams (player_id, team_id) VALUES (?, ?)", playerID, teamID)
	if err != nil {
		return fmt.Errorf("link player team: %w", err)
	}
	return nil
}

// PutSeasonStat inserts or replaces one (player, season) record.
func (s *Store) PutSeasonStat(ctx context.Context, st model.SeasonStat) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `INSERT INTO player_season_stats (player_id, season, points, rebounds, assists, vorp)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(player_id, season) DO UPDATE SET
    points = excluded.points,
    rebounds = excluded.rebounds,
    assists = excluded.assists,
    vorp = excluded.vorp`,
		st.PlayerID, st.Season, st.Points, st.Rebounds, st.Assists, st.VORP,
	)
	if err != nil {
		return fmt.Errorf("put season stat: %w", err)
	}
	return nil
}

// ClearCatalog removes every team, player, link and season stat. Sessions
// are untouched.
func (s *Store) ClearCatalog(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	for _, stmt := range []string{
		"DELETE FROM player_season_stats",
		"DELETE FROM player_teams",
		"DELETE FROM players",
		"DELETE FROM teams",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clear catalog: %w", err)
		}
	}
	return tx.Commit()
}
