package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ajeebtech/playerlens/pkg/models"
	"github.com/lib/pq"
)

// PlayersDB defines the read operations the API needs from a data source
type PlayersDB interface {
	SearchPlayers(ctx context.Context, term string, limit int) ([]models.Player, error)
	GetPlayerBySerial(ctx context.Context, id int64) (*models.Player, error)
	GetPlayerByName(ctx context.Context, name string) (*models.Player, error)
	Source() string
	Close() error
	Ping(ctx context.Context) error
}

const playerColumns = `
	list_sr_no, set_no, set_2026, first_name, surname, name, country,
	state_assoc, dob, age, specialism, batting_style, bowling_style,
	test_caps, odi_caps, t20_caps, ipl, team_2025, ipl_2025, cua,
	reserve_price, batting_form, bowling_form
`

// Client implements PlayersDB against PostgreSQL
type Client struct {
	db *sql.DB
}

// NewClient creates a new players DB client
func NewClient(dsn string) (*Client, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

// NewClientFromDB wraps an already opened database handle
func NewClientFromDB(db *sql.DB) *Client {
	return &Client{db: db}
}

// SearchPlayers returns players whose name contains term, case-insensitively
func (c *Client) SearchPlayers(ctx context.Context, term string, limit int) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + `
		FROM players
		WHERE name ILIKE $1
		ORDER BY list_sr_no ASC
		LIMIT $2
	`

	rows, err := c.db.QueryContext(ctx, query, "%"+escapeLike(term)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	players := []models.Player{}
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(scanTargets(&p)...); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}

	return players, nil
}

// GetPlayerBySerial retrieves a single player by list serial number
func (c *Client) GetPlayerBySerial(ctx context.Context, id int64) (*models.Player, error) {
	query := `SELECT ` + playerColumns + `
		FROM players
		WHERE list_sr_no = $1
	`

	var p models.Player
	err := c.db.QueryRowContext(ctx, query, id).Scan(scanTargets(&p)...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query player: %w", err)
	}

	return &p, nil
}

// GetPlayerByName retrieves a player by exact name, ignoring case.
// Duplicate names resolve to the lowest serial.
func (c *Client) GetPlayerByName(ctx context.Context, name string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + `
		FROM players
		WHERE lower(name) = lower($1)
		ORDER BY list_sr_no ASC
		LIMIT 1
	`

	var p models.Player
	err := c.db.QueryRowContext(ctx, query, strings.TrimSpace(name)).Scan(scanTargets(&p)...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query player by name: %w", err)
	}

	return &p, nil
}

// Source names the backing store
func (c *Client) Source() string {
	return models.SourcePostgres
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// Ping checks database connectivity
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func scanTargets(p *models.Player) []interface{} {
	return []interface{}{
		&p.ID, &p.SetNo, &p.Set2026, &p.FirstName, &p.Surname, &p.Name, &p.Country,
		&p.StateAssoc, &p.DOB, &p.Age, &p.Specialism, &p.BattingStyle, &p.BowlingStyle,
		&p.TestCaps, &p.ODICaps, &p.T20Caps, &p.IPLCaps, &p.Team2025, &p.IPL2025, &p.CUA,
		&p.ReservePrice, (*pq.StringArray)(&p.BattingForm), (*pq.StringArray)(&p.BowlingForm),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
