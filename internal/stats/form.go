package stats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ajeebtech/playerlens/pkg/models"
)

// Tokens that mean the player did not bat or bowl in that match
var formSentinels = map[string]struct{}{
	"":       {},
	"-":      {},
	"--":     {},
	"dnb":    {},
	"tdnb":   {},
	"absent": {},
}

func isSentinel(s string) bool {
	_, ok := formSentinels[strings.ToLower(s)]
	return ok
}

// ParseBattingScore parses one innings such as "45" or "45*".
// ok is false for sentinels and anything that is not a score.
func ParseBattingScore(s string) (runs int, notOut bool, ok bool) {
	s = strings.TrimSpace(s)
	if isSentinel(s) {
		return 0, false, false
	}

	if strings.HasSuffix(s, "*") {
		notOut = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "*"))
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false, false
	}

	return n, notOut, true
}

// ParseBowlingFigure parses a figure such as "3/28" into wickets and runs conceded
func ParseBowlingFigure(s string) (wickets, conceded int, ok bool) {
	s = strings.TrimSpace(s)
	if isSentinel(s) {
		return 0, 0, false
	}

	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || w < 0 {
		return 0, 0, false
	}
	r, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || r < 0 {
		return 0, 0, false
	}

	return w, r, true
}

// ParseBattingForm turns stored batting outcomes into a chartable series.
// Two-innings tokens like "0 & 37" yield two entries under the same match label.
func ParseBattingForm(raw []string) models.BattingForm {
	form := models.BattingForm{Entries: []models.BattingEntry{}}

	for i, token := range raw {
		label := matchLabel(i)
		for _, innings := range splitInnings(token) {
			runs, notOut, ok := ParseBattingScore(innings)
			if !ok {
				continue
			}

			form.Entries = append(form.Entries, models.BattingEntry{
				Match:  label,
				Runs:   runs,
				NotOut: notOut,
				Raw:    strings.TrimSpace(innings),
			})
			form.Innings++
			form.TotalRuns += runs
			if notOut {
				form.NotOuts++
			}
			if runs > form.MaxRuns {
				form.MaxRuns = runs
			}
		}
	}

	return form
}

// ParseBowlingForm turns stored bowling figures into a chartable series
func ParseBowlingForm(raw []string) models.BowlingForm {
	form := models.BowlingForm{Entries: []models.BowlingEntry{}}

	for i, token := range raw {
		label := matchLabel(i)
		for _, spell := range splitInnings(token) {
			wickets, conceded, ok := ParseBowlingFigure(spell)
			if !ok {
				continue
			}

			form.Entries = append(form.Entries, models.BowlingEntry{
				Match:        label,
				Wickets:      wickets,
				RunsConceded: conceded,
				Figure:       strings.TrimSpace(spell),
			})
			form.TotalWickets += wickets
			form.RunsConceded += conceded
			if wickets > form.MaxWickets {
				form.MaxWickets = wickets
			}
		}
	}

	return form
}

// BattingAverage is runs per dismissal; with no dismissals it is total runs
func BattingAverage(f models.BattingForm) float64 {
	outs := f.Innings - f.NotOuts
	if outs <= 0 {
		return float64(f.TotalRuns)
	}
	return float64(f.TotalRuns) / float64(outs)
}

func splitInnings(token string) []string {
	return strings.Split(token, "&")
}

func matchLabel(i int) string {
	return fmt.Sprintf("M%d", i+1)
}
