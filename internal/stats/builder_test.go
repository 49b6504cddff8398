package stats

import (
	"testing"

	"github.com/ajeebtech/playerlens/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestBuild_SyntheticIsDeterministic(t *testing.T) {
	p := &models.Player{Name: "Travis Head"}

	a := Build(p, models.SourceSynthetic)
	b := Build(p, models.SourceSynthetic)

	assert.Equal(t, a, b)
	assert.Equal(t, models.SourceSynthetic, a.Source)
	assert.Equal(t, "Travis Head", a.Player.Name)
	assert.Empty(t, a.Player.ID)
}

func TestBuild_SyntheticShape(t *testing.T) {
	s := Build(&models.Player{Name: "Heinrich Klaasen"}, models.SourceSynthetic)

	require.Len(t, s.Overview, 6)
	for i, axis := range overviewAxes {
		assert.Equal(t, axis.label, s.Overview[i].Subject)
		assert.GreaterOrEqual(t, s.Overview[i].A, axis.min)
		assert.LessOrEqual(t, s.Overview[i].A, axis.max)
		assert.Equal(t, 100, s.Overview[i].FullMark)
	}

	require.Len(t, s.Trends, 10)
	assert.Equal(t, "M1", s.Trends[0].Match)
	assert.Equal(t, "M10", s.Trends[9].Match)
	for _, tp := range s.Trends {
		assert.GreaterOrEqual(t, tp.Value, 10)
		assert.LessOrEqual(t, tp.Value, 100)
		assert.GreaterOrEqual(t, tp.Average, 45)
		assert.LessOrEqual(t, tp.Average, 55)
	}

	require.Len(t, s.Stats, 5)
	assert.Equal(t, "Matches", s.Stats[0].Name)
	assert.Equal(t, "Stumpings", s.Stats[4].Name)

	assert.Contains(t, Specialisms, s.Info.Specialism)
	assert.Contains(t, Teams, s.Info.IPL.Team2025)
	assert.Contains(t, CUAStatuses, s.Info.IPL.CUAStatus)
	assert.Contains(t, []string{"RETAINED", "AUCTION"}, s.Info.IPL.Status2025)
	assert.Contains(t, s.Info.IPL.ReservePrice, " Lakh")
	assert.GreaterOrEqual(t, s.Info.Age, 18)
	assert.LessOrEqual(t, s.Info.Age, 40)

	assert.Empty(t, s.Form.Batting.Entries)
	assert.Empty(t, s.Form.Bowling.Entries)
}

func TestBuild_EchoesRealFields(t *testing.T) {
	p := &models.Player{
		ID:           9,
		Name:         "Deepak Hooda",
		Country:      strPtr("India"),
		Age:          intPtr(30),
		Specialism:   strPtr("ALL-ROUNDER"),
		BattingStyle: strPtr("RHB"),
		BowlingStyle: strPtr("RIGHT ARM Off Spin"),
		TestCaps:     intPtr(0),
		ODICaps:      intPtr(10),
		T20Caps:      intPtr(21),
		IPLCaps:      intPtr(125),
		Team2025:     strPtr("CSK"),
		CUA:          strPtr("Capped"),
		ReservePrice: strPtr("75"),
		BattingForm:  []string{"45*", "DNB", "12"},
		BowlingForm:  []string{"1/22", "-"},
	}

	s := Build(p, models.SourcePostgres)

	assert.Equal(t, "9", s.Player.ID)
	assert.Equal(t, models.SourcePostgres, s.Source)
	assert.Equal(t, 30, s.Info.Age)
	assert.Equal(t, "ALL-ROUNDER", s.Info.Specialism)
	assert.Equal(t, "India", s.Info.Country)
	assert.Equal(t, models.Caps{Test: 0, ODI: 10, T20: 21}, s.Info.Caps)
	assert.Equal(t, 125, s.Info.IPL.Matches)
	assert.Equal(t, "CSK", s.Info.IPL.Team2025)
	assert.Equal(t, "RETAINED", s.Info.IPL.Status2025)
	assert.Equal(t, "CAPPED", s.Info.IPL.CUAStatus)
	assert.Equal(t, "75 Lakh", s.Info.IPL.ReservePrice)

	assert.Equal(t, models.StatBar{Name: "Matches", Value: 31}, s.Stats[0])
	assert.Contains(t, s.Stats, models.StatBar{Name: "Recent Runs", Value: 57})
	assert.Contains(t, s.Stats, models.StatBar{Name: "Batting Avg", Value: 57})
	assert.Contains(t, s.Stats, models.StatBar{Name: "Recent Wickets", Value: 1})

	require.Len(t, s.Trends, 2)
	assert.Equal(t, models.TrendPoint{Match: "M1", Value: 45, Average: 45}, s.Trends[0])
	assert.Equal(t, models.TrendPoint{Match: "M3", Value: 12, Average: 29}, s.Trends[1])

	assert.Equal(t, 45, s.Form.Batting.MaxRuns)
	assert.Equal(t, 1, s.Form.Bowling.MaxWickets)
}

func TestBuild_RealPlayerWithoutTeamGoesToAuction(t *testing.T) {
	s := Build(&models.Player{ID: 3, Name: "Uncapped Hopeful", ReservePrice: strPtr("TBC")}, models.SourcePostgres)

	assert.Equal(t, "", s.Info.IPL.Team2025)
	assert.Equal(t, "AUCTION", s.Info.IPL.Status2025)
	assert.Equal(t, "TBC", s.Info.IPL.ReservePrice)
}
