package models

// OverviewPoint is one axis of the radar chart
type OverviewPoint struct {
	Subject  string `json:"subject"`
	A        int    `json:"A"`
	FullMark int    `json:"fullMark"`
}

// TrendPoint is one point of the trends line chart
type TrendPoint struct {
	Match   string `json:"match"`
	Value   int    `json:"value"`
	Average int    `json:"average"`
}

// StatBar is one bar of the stats chart
type StatBar struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Caps holds appearance counts per format
type Caps struct {
	Test int `json:"test"`
	ODI  int `json:"odi"`
	T20  int `json:"t20"`
}

// IPLInfo holds league details for the current season
type IPLInfo struct {
	Matches      int    `json:"matches"`
	Team2025     string `json:"team_2025"`
	Status2025   string `json:"status_2025"` // RETAINED or AUCTION
	CUAStatus    string `json:"cua_status"`  // CAPPED, UNCAPPED, ASSOCIATE
	ReservePrice string `json:"reserve_price"`
}

// PlayerInfo is the info strip shown above the charts
type PlayerInfo struct {
	Age          int     `json:"age"`
	Specialism   string  `json:"specialism"`
	Country      string  `json:"country,omitempty"`
	BattingStyle string  `json:"batting_style,omitempty"`
	BowlingStyle string  `json:"bowling_style,omitempty"`
	Caps         Caps    `json:"caps"`
	IPL          IPLInfo `json:"ipl"`
}

// BattingEntry is one parsed innings
type BattingEntry struct {
	Match  string `json:"match"`
	Runs   int    `json:"runs"`
	NotOut bool   `json:"not_out"`
	Raw    string `json:"raw"`
}

// BowlingEntry is one parsed bowling figure
type BowlingEntry struct {
	Match        string `json:"match"`
	Wickets      int    `json:"wickets"`
	RunsConceded int    `json:"runs_conceded"`
	Figure       string `json:"figure"`
}

// BattingForm is the batting series with running aggregates
type BattingForm struct {
	Entries   []BattingEntry `json:"entries"`
	MaxRuns   int            `json:"max_runs"`
	TotalRuns int            `json:"total_runs"`
	Innings   int            `json:"innings"`
	NotOuts   int            `json:"not_outs"`
}

// BowlingForm is the bowling series with running aggregates
type BowlingForm struct {
	Entries      []BowlingEntry `json:"entries"`
	MaxWickets   int            `json:"max_wickets"`
	TotalWickets int            `json:"total_wickets"`
	RunsConceded int            `json:"runs_conceded"`
}

// Form groups the batting and bowling series
type Form struct {
	Batting BattingForm `json:"batting"`
	Bowling BowlingForm `json:"bowling"`
}

// PlayerRef identifies the player a stats payload describes
type PlayerRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// PlayerStats is the full chart payload for one player
type PlayerStats struct {
	Player   PlayerRef       `json:"player"`
	Source   string          `json:"source"`
	Overview []OverviewPoint `json:"overview"`
	Trends   []TrendPoint    `json:"trends"`
	Stats    []StatBar       `json:"stats"`
	Info     PlayerInfo      `json:"info"`
	Form     Form            `json:"form"`
}

// StatsResponse wraps a stats payload
type StatsResponse struct {
	Data *PlayerStats `json:"data"`
}
