package model

// Team is an NBA franchise from the catalog.
type Team struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Player is a catalog player. ExternalID is the upstream stats provider id.
type Player struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"player_id"`
	Name       string `json:"name"`
	Position   string `json:"position,omitempty"`
}

// TeamWithPlayers is the team detail shape served by the read-only API.
type TeamWithPlayers struct {
	Team
	Players []Player `json:"players"`
}

// SeasonStat is one season record for a player.
type SeasonStat struct {
	PlayerID int64   `json:"player_id"`
	Season   int     `json:"season"`
	Points   float64 `json:"points"`
	Rebounds float64 `json:"rebounds"`
	Assists  float64 `json:"assists"`
	VORP     float64 `json:"vorp"`
}

// PeakSeasonStat is the season with the highest VORP for one player.
type PeakSeasonStat struct {
	Season               int     `json:"season"`
	Points               float64 `json:"points"`
	Rebounds             float64 `json:"rebounds"`
	Assists              float64 `json:"assists"`
	ValueOverReplacement float64 `json:"value_over_replacement"`
}
