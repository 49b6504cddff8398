package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ajeebtech/playerlens/pkg/models"
)

// Choice lists for fields the generator fills in
var (
	Specialisms = []string{"BATTER", "BOWLER", "ALL-ROUNDER", "WICKETKEEPER"}
	Teams       = []string{"MI", "CSK", "RCB", "KKR", "GT", "LSG", "RR", "DC", "PBKS", "SRH"}
	CUAStatuses = []string{"CAPPED", "UNCAPPED", "ASSOCIATE"}
)

const (
	trendPoints = 10
	fullMark    = 100
)

type bounds struct {
	label    string
	min, max int
}

var overviewAxes = []bounds{
	{"Batting", 60, 95},
	{"Bowling", 40, 90},
	{"Fielding", 50, 99},
	{"Fitness", 70, 95},
	{"Experience", 30, 100},
	{"Consistency", 50, 90},
}

// Build assembles the chart payload for a player. Fields present on the
// record are echoed; every gap is filled from the generator seeded by the
// player's name (or id), so the same player always renders the same charts.
func Build(p *models.Player, source string) *models.PlayerStats {
	seed := SeedFor(p.Name, p.ID)

	batting := ParseBattingForm(p.BattingForm)
	bowling := ParseBowlingForm(p.BowlingForm)

	out := &models.PlayerStats{
		Player: models.PlayerRef{Name: p.Name},
		Source: source,
		Form: models.Form{
			Batting: batting,
			Bowling: bowling,
		},
	}
	if p.ID > 0 {
		out.Player.ID = strconv.FormatInt(p.ID, 10)
	}

	out.Overview = buildOverview(seed)
	out.Trends = buildTrends(seed, batting)
	out.Stats = buildStatBars(seed, p, batting, bowling)
	out.Info = buildInfo(seed, p, source)

	return out
}

func buildOverview(seed int64) []models.OverviewPoint {
	points := make([]models.OverviewPoint, 0, len(overviewAxes))
	for _, axis := range overviewAxes {
		points = append(points, models.OverviewPoint{
			Subject:  axis.label,
			A:        Rand(seed, axis.min, axis.max),
			FullMark: fullMark,
		})
	}
	return points
}

// buildTrends plots recent runs with their running average when batting form
// exists, otherwise ten generated points around an average of 50. Generated
// point i draws from seed+i rather than the player seed alone, so the line
// moves instead of repeating one value.
func buildTrends(seed int64, batting models.BattingForm) []models.TrendPoint {
	if len(batting.Entries) > 0 {
		points := make([]models.TrendPoint, 0, len(batting.Entries))
		total := 0
		for i, e := range batting.Entries {
			total += e.Runs
			points = append(points, models.TrendPoint{
				Match:   e.Match,
				Value:   e.Runs,
				Average: int(math.Round(float64(total) / float64(i+1))),
			})
		}
		return points
	}

	points := make([]models.TrendPoint, 0, trendPoints)
	for i := 0; i < trendPoints; i++ {
		s := seed + int64(i)
		points = append(points, models.TrendPoint{
			Match:   matchLabel(i),
			Value:   Rand(s, 10, 100),
			Average: 50 + Rand(s, -5, 5),
		})
	}
	return points
}

func buildStatBars(seed int64, p *models.Player, batting models.BattingForm, bowling models.BowlingForm) []models.StatBar {
	matches := Rand(seed, 50, 200)
	if p.HasCaps() {
		matches = intOr(p.TestCaps, 0) + intOr(p.ODICaps, 0) + intOr(p.T20Caps, 0)
	}

	bars := []models.StatBar{
		{Name: "Matches", Value: matches},
		{Name: "Runs", Value: Rand(seed, 1000, 5000)},
		{Name: "Wickets", Value: Rand(seed, 10, 150)},
		{Name: "Catches", Value: Rand(seed, 20, 100)},
		{Name: "Stumpings", Value: Rand(seed, 0, 20)},
	}

	if batting.Innings > 0 {
		bars = append(bars,
			models.StatBar{Name: "Recent Runs", Value: batting.TotalRuns},
			models.StatBar{Name: "Batting Avg", Value: int(math.Round(BattingAverage(batting)))},
		)
	}
	if len(bowling.Entries) > 0 {
		bars = append(bars, models.StatBar{Name: "Recent Wickets", Value: bowling.TotalWickets})
	}

	return bars
}

func buildInfo(seed int64, p *models.Player, source string) models.PlayerInfo {
	info := models.PlayerInfo{
		Age:          intOr(p.Age, Rand(seed, 18, 40)),
		Specialism:   strOr(p.Specialism, Specialisms[Rand(seed, 0, len(Specialisms)-1)]),
		Country:      strOr(p.Country, ""),
		BattingStyle: strOr(p.BattingStyle, ""),
		BowlingStyle: strOr(p.BowlingStyle, ""),
		Caps: models.Caps{
			Test: intOr(p.TestCaps, Rand(seed, 0, 100)),
			ODI:  intOr(p.ODICaps, Rand(seed, 0, 250)),
			T20:  intOr(p.T20Caps, Rand(seed, 0, 150)),
		},
	}

	ipl := models.IPLInfo{
		Matches:      intOr(p.IPLCaps, Rand(seed, 0, 200)),
		CUAStatus:    strings.ToUpper(strOr(p.CUA, Pick(seed, CUAStatuses))),
		ReservePrice: formatReservePrice(p.ReservePrice, seed),
	}

	// A real row without a team is a player going to auction, not a gap.
	if source == models.SourcePostgres {
		ipl.Team2025 = strOr(p.Team2025, "")
		ipl.Status2025 = "AUCTION"
		if ipl.Team2025 != "" {
			ipl.Status2025 = "RETAINED"
		}
	} else {
		ipl.Team2025 = strOr(p.Team2025, Pick(seed, Teams))
		ipl.Status2025 = "AUCTION"
		if Rand(seed, 0, 1) == 1 {
			ipl.Status2025 = "RETAINED"
		}
	}

	info.IPL = ipl
	return info
}

func formatReservePrice(price *string, seed int64) string {
	if price == nil || strings.TrimSpace(*price) == "" {
		return fmt.Sprintf("%d Lakh", Rand(seed, 20, 200))
	}

	v := strings.TrimSpace(*price)
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return v + " Lakh"
	}
	return v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func strOr(v *string, fallback string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fallback
	}
	return strings.TrimSpace(*v)
}
