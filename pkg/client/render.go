package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/ajeebtech/playerlens/pkg/models"
	"github.com/fatih/color"
)

// Panel selects one chart view of a stats payload
type Panel string

const (
	PanelOverview Panel = "OVERVIEW"
	PanelTrends   Panel = "TRENDS"
	PanelStats    Panel = "STATS"
	PanelForm     Panel = "FORM"
)

// Panels lists every panel in display order
var Panels = []Panel{PanelOverview, PanelTrends, PanelStats, PanelForm}

const barWidth = 30

// ParsePanel matches a panel name, ignoring case
func ParsePanel(s string) (Panel, error) {
	p := Panel(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Panels {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown panel %q (want OVERVIEW, TRENDS, STATS or FORM)", s)
}

var heading = color.New(color.Bold, color.FgCyan)

// RenderPanel writes one panel as text bars. Bars are scaled by the
// largest value in the series so the longest bar spans the full width.
func RenderPanel(w io.Writer, s *models.PlayerStats, panel Panel) error {
	if s == nil {
		return fmt.Errorf("no stats to render")
	}

	heading.Fprintf(w, "%s · %s\n", s.Player.Name, panel)

	switch panel {
	case PanelOverview:
		for _, p := range s.Overview {
			writeBar(w, p.Subject, p.A, p.FullMark, "")
		}
	case PanelTrends:
		max := 0
		for _, p := range s.Trends {
			max = maxInt(max, maxInt(p.Value, p.Average))
		}
		for _, p := range s.Trends {
			writeBar(w, p.Match, p.Value, max, fmt.Sprintf("avg %d", p.Average))
		}
	case PanelStats:
		max := 0
		for _, b := range s.Stats {
			max = maxInt(max, b.Value)
		}
		for _, b := range s.Stats {
			writeBar(w, b.Name, b.Value, max, "")
		}
	case PanelForm:
		renderForm(w, s.Form)
	default:
		return fmt.Errorf("unknown panel %q", panel)
	}

	return nil
}

// RenderInfo writes the info strip shown above the charts
func RenderInfo(w io.Writer, s *models.PlayerStats) {
	info := s.Info
	fmt.Fprintf(w, "%s  age %d  %s", s.Player.Name, info.Age, info.Specialism)
	if info.Country != "" {
		fmt.Fprintf(w, "  %s", info.Country)
	}
	fmt.Fprintf(w, "\ncaps  Test %d  ODI %d  T20 %d\n", info.Caps.Test, info.Caps.ODI, info.Caps.T20)
	fmt.Fprintf(w, "IPL   %d matches  %s  %s  %s  reserve %s\n",
		info.IPL.Matches, orDash(info.IPL.Team2025), info.IPL.Status2025, info.IPL.CUAStatus, info.IPL.ReservePrice)
}

func renderForm(w io.Writer, f models.Form) {
	fmt.Fprintln(w, "Batting")
	if len(f.Batting.Entries) == 0 {
		fmt.Fprintln(w, "  no innings")
	}
	for _, e := range f.Batting.Entries {
		writeBar(w, e.Match, e.Runs, f.Batting.MaxRuns, e.Raw)
	}

	fmt.Fprintln(w, "Bowling")
	if len(f.Bowling.Entries) == 0 {
		fmt.Fprintln(w, "  no figures")
	}
	for _, e := range f.Bowling.Entries {
		writeBar(w, e.Match, e.Wickets, f.Bowling.MaxWickets, e.Figure)
	}
}

func writeBar(w io.Writer, label string, value, max int, note string) {
	fmt.Fprintf(w, "  %-12s %s %d", label, bar(value, max), value)
	if note != "" {
		fmt.Fprintf(w, "  (%s)", note)
	}
	fmt.Fprintln(w)
}

// bar draws value as a share of max; a zero max draws nothing
func bar(value, max int) string {
	n := 0
	if max > 0 && value > 0 {
		n = value * barWidth / max
		if n == 0 {
			n = 1
		}
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n) + strings.Repeat("·", barWidth-n)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
