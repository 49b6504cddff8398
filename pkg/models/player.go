package models

// Player represents a row of the players table
type Player struct {
	ID           int64    `json:"id"` // list_sr_no
	SetNo        *int     `json:"set_no,omitempty"`
	Set2026      *string  `json:"set_2026,omitempty"`
	FirstName    string   `json:"first_name"`
	Surname      string   `json:"surname"`
	Name         string   `json:"name"`
	Country      *string  `json:"country,omitempty"`
	StateAssoc   *string  `json:"state_assoc,omitempty"`
	DOB          *string  `json:"dob,omitempty"`
	Age          *int     `json:"age,omitempty"`
	Specialism   *string  `json:"specialism,omitempty"` // BATTER, BOWLER, ALL-ROUNDER, WICKETKEEPER
	BattingStyle *string  `json:"batting_style,omitempty"`
	BowlingStyle *string  `json:"bowling_style,omitempty"`
	TestCaps     *int     `json:"test_caps,omitempty"`
	ODICaps      *int     `json:"odi_caps,omitempty"`
	T20Caps      *int     `json:"t20_caps,omitempty"`
	IPLCaps      *int     `json:"ipl,omitempty"`
	Team2025     *string  `json:"team_2025,omitempty"`
	IPL2025      *int     `json:"ipl_2025,omitempty"`
	CUA          *string  `json:"cua,omitempty"` // Capped, Uncapped, Associate
	ReservePrice *string  `json:"reserve_price,omitempty"`
	BattingForm  []string `json:"batting_form,omitempty"`
	BowlingForm  []string `json:"bowling_form,omitempty"`
}

// SearchResult is the autocomplete shape of a player
type SearchResult struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Team    string `json:"team"`
	Country string `json:"country"`
}

// SearchResponse wraps search results
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// ToSearchResult maps a player row into the autocomplete shape
func (p *Player) ToSearchResult() SearchResult {
	return SearchResult{
		ID:      formatID(p.ID),
		Name:    p.Name,
		Team:    deref(p.Team2025),
		Country: deref(p.Country),
	}
}

// HasCaps reports whether any format appearance count is known
func (p *Player) HasCaps() bool {
	return p.TestCaps != nil || p.ODICaps != nil || p.T20Caps != nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
