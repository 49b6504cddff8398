package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/ajeebtech/playerlens/pkg/models"
	"github.com/lib/pq"
)

const playersSchema = `
	CREATE TABLE IF NOT EXISTS players (
		list_sr_no    INTEGER PRIMARY KEY,
		set_no        INTEGER,
		set_2026      TEXT,
		first_name    TEXT NOT NULL DEFAULT '',
		surname       TEXT NOT NULL DEFAULT '',
		name          TEXT NOT NULL DEFAULT '',
		country       TEXT,
		state_assoc   TEXT,
		dob           TEXT,
		age           INTEGER,
		specialism    TEXT,
		batting_style TEXT,
		bowling_style TEXT,
		test_caps     INTEGER,
		odi_caps      INTEGER,
		t20_caps      INTEGER,
		ipl           INTEGER,
		team_2025     TEXT,
		ipl_2025      INTEGER,
		cua           TEXT,
		reserve_price TEXT,
		batting_form  TEXT[],
		bowling_form  TEXT[]
	);
	CREATE INDEX IF NOT EXISTS players_name_lower_idx ON players (lower(name));
`

// upsertColumns is the insert order used by UpsertPlayers
var upsertColumns = []string{
	"list_sr_no", "set_no", "set_2026", "first_name", "surname", "name", "country",
	"state_assoc", "dob", "age", "specialism", "batting_style", "bowling_style",
	"test_caps", "odi_caps", "t20_caps", "ipl", "team_2025", "ipl_2025", "cua",
	"reserve_price", "batting_form", "bowling_form",
}

// EnsureSchema creates the players table when it does not exist
func (c *Client) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, playersSchema); err != nil {
		return fmt.Errorf("create players table: %w", err)
	}
	return nil
}

// UpsertPlayers inserts players in one statement, replacing rows that share a serial.
// Form columns are only overwritten when the incoming record carries form data.
func (c *Client) UpsertPlayers(ctx context.Context, players []models.Player) (int64, error) {
	if len(players) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO players (")
	sb.WriteString(strings.Join(upsertColumns, ", "))
	sb.WriteString(") VALUES ")

	args := make([]interface{}, 0, len(players)*len(upsertColumns))
	argIdx := 1
	for i, p := range players {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j := range upsertColumns {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", argIdx)
			argIdx++
		}
		sb.WriteString(")")
		args = append(args, upsertArgs(p)...)
	}

	sb.WriteString(" ON CONFLICT (list_sr_no) DO UPDATE SET ")
	updates := make([]string, 0, len(upsertColumns)-1)
	for _, col := range upsertColumns[1:] {
		switch col {
		case "batting_form", "bowling_form":
			updates = append(updates, fmt.Sprintf("%s = COALESCE(EXCLUDED.%s, players.%s)", col, col, col))
		default:
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	}
	sb.WriteString(strings.Join(updates, ", "))

	res, err := c.db.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		return 0, fmt.Errorf("upsert players: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func upsertArgs(p models.Player) []interface{} {
	return []interface{}{
		p.ID, p.SetNo, p.Set2026, p.FirstName, p.Surname, p.Name, p.Country,
		p.StateAssoc, p.DOB, p.Age, p.Specialism, p.BattingStyle, p.BowlingStyle,
		p.TestCaps, p.ODICaps, p.T20Caps, p.IPLCaps, p.Team2025, p.IPL2025, p.CUA,
		p.ReservePrice, formArg(p.BattingForm), formArg(p.BowlingForm),
	}
}

// formArg keeps an absent form as SQL NULL so the COALESCE above preserves stored values
func formArg(form []string) interface{} {
	if form == nil {
		return nil
	}
	return pq.Array(form)
}
