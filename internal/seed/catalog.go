package seed

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the YAML import format:
//
//	teams:
//	  - name: Boston Celtics
//	    abbreviation: BOS
//	players:
//	  - player_id: tatumja01
//	    name: Jayson Tatum
//	    position: SF
//	    teams: [BOS]
//	    seasons:
//	      - {season: 2024, points: 26.9, rebounds: 8.1, assists: 4.9, vorp: 5.2}
type Catalog struct {
	Teams   []TeamSpec   `yaml:"teams"`
	Players []PlayerSpec `yaml:"players"`
}

type PlayerSpec struct {
	PlayerID string       `yaml:"player_id"`
	Name     string       `yaml:"name"`
	Position string       `yaml:"position"`
	Teams    []string     `yaml:"teams"`
	Seasons  []SeasonSpec `yaml:"seasons"`
}

type SeasonSpec struct {
	Season   int     `yaml:"season"`
	Points   float64 `yaml:"points"`
	Rebounds float64 `yaml:"rebounds"`
	Assists  float64 `yaml:"assists"`
	VORP     float64 `yaml:"vorp"`
}

// ParseCatalog decodes and validates a YAML catalog. Team references must name
// a team from the catalog itself or one of NBATeams.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	known := make(map[string]bool, len(NBATeams)+len(c.Teams))
	for _, t := range NBATeams {
		known[strings.ToUpper(t.Abbreviation)] = true
	}
	for i, t := range c.Teams {
		if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.Abbreviation) == "" {
			return nil, fmt.Errorf("team %d: name and abbreviation are required", i)
		}
		known[strings.ToUpper(t.Abbreviation)] = true
	}

	seen := make(map[string]bool, len(c.Players))
	for i, p := range c.Players {
		if strings.TrimSpace(p.PlayerID) == "" || strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("player %d: player_id and name are required", i)
		}
		if seen[p.PlayerID] {
			return nil, fmt.Errorf("player %d: duplicate player_id %q", i, p.PlayerID)
		}
		seen[p.PlayerID] = true
		for _, abbr := range p.Teams {
			if !known[strings.ToUpper(abbr)] {
				return nil, fmt.Errorf("player %q: unknown team %q", p.PlayerID, abbr)
			}
		}
	}
	return &c, nil
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
