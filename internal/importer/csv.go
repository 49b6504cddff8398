package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ajeebtech/playerlens/pkg/models"
)

// Column headers of the auction list export
const (
	colSerial       = "List Sr. No."
	colSetNo        = "Set No."
	colSet2026      = "2026 Set"
	colFirstName    = "First Name"
	colSurname      = "Surname"
	colCountry      = "Country"
	colStateAssoc   = "State Assoc"
	colDOB          = "DOB"
	colAge          = "Age"
	colSpecialism   = "Specialism"
	colBattingStyle = "Batting Style"
	colBowlingStyle = "Bowling Style"
	colTestCaps     = "Test caps"
	colODICaps      = "ODI caps"
	colT20Caps      = "T20 caps"
	colIPL          = "IPL"
	colTeam2025     = "2025 Team"
	colIPL2025      = "2025 IPL"
	colCUA          = "C/U/A"
	colReservePrice = "Reserve Price"
	colBattingForm  = "Batting Form"
	colBowlingForm  = "Bowling Form"
)

// formSeparator splits entries inside the optional form columns
const formSeparator = "|"

var requiredColumns = []string{colSerial, colFirstName, colSurname}

// SkippedRow is a CSV line that did not become a player
type SkippedRow struct {
	Line   int
	Reason string
}

// ParseResult holds the players read from a CSV file
type ParseResult struct {
	Players []models.Player
	Skipped []SkippedRow
}

// ParseCSV reads the auction list. Rows without a serial are skipped and
// a serial that appears more than once keeps its last row.
func ParseCSV(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := indexHeader(header)
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	result := &ParseResult{Players: []models.Player{}}
	position := make(map[int64]int)
	line := 1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		row := csvRow{cols: cols, record: record}
		p, ok := row.player()
		if !ok {
			result.Skipped = append(result.Skipped, SkippedRow{Line: line, Reason: "missing list serial number"})
			continue
		}

		if i, seen := position[p.ID]; seen {
			result.Skipped = append(result.Skipped, SkippedRow{
				Line:   line,
				Reason: fmt.Sprintf("serial %d repeated, replacing earlier row", p.ID),
			})
			result.Players[i] = p
			continue
		}
		position[p.ID] = len(result.Players)
		result.Players = append(result.Players, p)
	}

	return result, nil
}

// LenientInt parses integers the way spreadsheet exports write them:
// "12", "12.0" and " 12 " are all 12. Blank or invalid input is nil.
func LenientInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n := int(f)
	return &n
}

// indexHeader maps each header to its first column
func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	return cols
}

type csvRow struct {
	cols   map[string]int
	record []string
}

func (r csvRow) text(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r csvRow) optText(col string) *string {
	s := r.text(col)
	if s == "" {
		return nil
	}
	return &s
}

func (r csvRow) optInt(col string) *int {
	return LenientInt(r.text(col))
}

func (r csvRow) form(col string) []string {
	raw := r.text(col)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, formSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (r csvRow) player() (models.Player, bool) {
	serial := r.optInt(colSerial)
	if serial == nil {
		return models.Player{}, false
	}

	first := r.text(colFirstName)
	surname := r.text(colSurname)

	return models.Player{
		ID:           int64(*serial),
		SetNo:        r.optInt(colSetNo),
		Set2026:      r.optText(colSet2026),
		FirstName:    first,
		Surname:      surname,
		Name:         strings.TrimSpace(first + " " + surname),
		Country:      r.optText(colCountry),
		StateAssoc:   r.optText(colStateAssoc),
		DOB:          r.optText(colDOB),
		Age:          r.optInt(colAge),
		Specialism:   r.optText(colSpecialism),
		BattingStyle: r.optText(colBattingStyle),
		BowlingStyle: r.optText(colBowlingStyle),
		TestCaps:     r.optInt(colTestCaps),
		ODICaps:      r.optInt(colODICaps),
		T20Caps:      r.optInt(colT20Caps),
		IPLCaps:      r.optInt(colIPL),
		Team2025:     r.optText(colTeam2025),
		IPL2025:      r.optInt(colIPL2025),
		CUA:          r.optText(colCUA),
		ReservePrice: r.optText(colReservePrice),
		BattingForm:  r.form(colBattingForm),
		BowlingForm:  r.form(colBowlingForm),
	}, true
}
