package seed

// TeamSpec is a team to create or update.
type TeamSpec struct {
	Name         string `yaml:"name" json:"name"`
	Abbreviation string `yaml:"abbreviation" json:"abbreviation"`
}

// NBATeams are the 30 franchises of the 2024-25 season.
var NBATeams = []TeamSpec{
	{Name: "Atlanta Hawks", Abbreviation: "ATL"},
	{Name: "Boston Celtics", Abbreviation: "BOS"},
	{Name: "Brooklyn Nets", Abbreviation: "BRK"},
	{Name: "Charlotte Hornets", Abbreviation: "CHO"},
	{Name: "Chicago Bulls", Abbreviation: "CHI"},
	{Name: "Cleveland Cavaliers", Abbreviation: "CLE"},
	{Name: "Dallas Mavericks", Abbreviation: "DAL"},
	{Name: "Denver Nuggets", Abbreviation: "DEN"},
	{Name: "Detroit Pistons", Abbreviation: "DET"},
	{Name: "Golden State Warriors", Abbreviation: "GSW"},
	{Name: "Houston Rockets", Abbreviation: "HOU"},
	{Name: "Indiana Pacers", Abbreviation: "IND"},
	{Name: "Los Angeles Clippers", Abbreviation: "LAC"},
	{Name: "Los Angeles Lakers", Abbreviation: "LAL"},
	{Name: "Memphis Grizzlies", Abbreviation: "MEM"},
	{Name: "Miami Heat", Abbreviation: "MIA"},
	{Name: "Milwaukee Bucks", Abbreviation: "MIL"},
	{Name: "Minnesota Timberwolves", Abbreviation: "MIN"},
	{Name: "New Orleans Pelicans", Abbreviation: "NOP"},
	{Name: "New York Knicks", Abbreviation: "NYK"},
	{Name: "Oklahoma City Thunder", Abbreviation: "OKC"},
	{Name: "Orlando Magic", Abbreviation: "ORL"},
	{Name: "Philadelphia 76ers", Abbreviation: "PHI"},
	{Name: "Phoenix Suns", Abbreviation: "PHO"},
	{Name: "Portland Trail Blazers", Abbreviation: "POR"},
	{Name: "Sacramento Kings", Abbreviation: "SAC"},
	{Name: "San Antonio Spurs", Abbreviation: "SAS"},
	{Name: "Toronto Raptors", Abbreviation: "TOR"},
	{Name: "Utah Jazz", Abbreviation: "UTA"},
	{Name: "Washington Wizards", Abbreviation: "WAS"},
}

var sampleNames = []string{
	"Michael Jordan", "LeBron James", "Kobe Bryant", "Magic Johnson", "Larry Bird",
}

// SamplesPerTeam is how many placeholder players SamplePlayers creates.
const SamplesPerTeam = 5

// SamplePlayers builds placeholder players for a team, each with a single
// 2024 season whose numbers rise with the player's slot.
func SamplePlayers(abbr string) []PlayerSpec {
	out := make([]PlayerSpec, 0, SamplesPerTeam)
	for i := 0; i < SamplesPerTeam; i++ {
		n := float64(i)
		out = append(out, PlayerSpec{
			PlayerID: abbr + "_" + itoa(i+1),
			Name:     sampleNames[i%len(sampleNames)] + " " + abbr + itoa(i+1),
			Teams:    []string{abbr},
			Seasons: []SeasonSpec{{
				Season:   2024,
				Points:   20 + 2*n,
				Rebounds: 8 + n,
				Assists:  5 + n,
				VORP:     2.5 + n,
			}},
		})
	}
	return out
}
