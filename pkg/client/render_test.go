package client

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ajeebtech/playerlens/pkg/models"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func sampleStats() *models.PlayerStats {
	return &models.PlayerStats{
		Player:   models.PlayerRef{ID: "1", Name: "Shubman Gill"},
		Overview: []models.OverviewPoint{{Subject: "Batting", A: 50, FullMark: 100}},
		Trends: []models.TrendPoint{
			{Match: "M1", Value: 20, Average: 20},
			{Match: "M2", Value: 80, Average: 50},
		},
		Stats: []models.StatBar{{Name: "Matches", Value: 40}, {Name: "Runs", Value: 4000}},
		Form: models.Form{
			Batting: models.BattingForm{
				Entries: []models.BattingEntry{{Match: "M1", Runs: 60, Raw: "60*", NotOut: true}},
				MaxRuns: 60,
			},
		},
	}
}

func TestParsePanel(t *testing.T) {
	p, err := ParsePanel(" form ")
	require.NoError(t, err)
	assert.Equal(t, PanelForm, p)

	_, err = ParsePanel("radar")
	assert.Error(t, err)
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("█", 15)+strings.Repeat("·", 15), bar(50, 100))
	assert.Equal(t, strings.Repeat("·", barWidth), bar(5, 0))
	assert.Equal(t, "█"+strings.Repeat("·", barWidth-1), bar(1, 1000))
	assert.Equal(t, strings.Repeat("█", barWidth), bar(200, 100))
}

func TestRenderPanel_ScalesByMaximum(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPanel(&buf, sampleStats(), PanelTrends))

	out := buf.String()
	assert.Contains(t, out, "Shubman Gill · TRENDS")
	// M2 holds the series maximum so its bar is full width
	assert.Contains(t, out, strings.Repeat("█", barWidth)+" 80")
	assert.Contains(t, out, "avg 50")
}

func TestRenderPanel_Form(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPanel(&buf, sampleStats(), PanelForm))

	out := buf.String()
	assert.Contains(t, out, "(60*)")
	assert.Contains(t, out, "no figures")
}

func TestRenderPanel_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderPanel(&buf, nil, PanelStats))
	assert.Error(t, RenderPanel(&buf, sampleStats(), Panel("PIE")))
}
