package model

type DraftPick struct {
	Participant int    `json:"participant"`
	PlayerID    int64  `json:"player_id"`
	PlayerName  string `json:"player_name"`
	Position    string `json:"position"`
	Round       int    `json:"round"`
	Pick        int    `json:"pick"`
	Index       int    `json:"index"`
}

type Manager struct {
	Participant int    `json:"participant"`
	Name        string `json:"name"`
}

type Squad struct {
	Participant int     `json:"participant"`
	PlayerIDs   []int64 `json:"player_ids"`
}

type DraftLedger struct {
	SessionID      string      `json:"session_id"`
	Rounds         int         `json:"rounds"`
	GeneratedAtUTC string      `json:"generated_at_utc"`
	Managers       []Manager   `json:"managers"`
	Squads         []Squad     `json:"squads"`
	Picks          []DraftPick `json:"picks"`
}
