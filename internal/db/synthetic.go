package db

import (
	"context"
	"strings"
	"sync"

	"github.com/ajeebtech/playerlens/internal/stats"
	"github.com/ajeebtech/playerlens/pkg/models"
)

// maxIssued bounds how many synthetic ids are remembered
const maxIssued = 10000

type syntheticVariant struct {
	name    func(term string) string
	team    string
	country string
}

var syntheticVariants = []syntheticVariant{
	{func(t string) string { return t }, "Mock Team A", "IN"},
	{func(t string) string { return t + " Jr." }, "Mock Team B", "AU"},
	{func(t string) string { return "Sir " + t }, "Mock Team C", "GB"},
}

// Synthetic implements PlayersDB without a backing store. Search results
// are derived from the term and lookups always succeed; stats for these
// players are generated entirely from the name hash.
type Synthetic struct {
	mu     sync.Mutex
	issued map[int64]string
}

// NewSynthetic creates a data source that invents players on demand
func NewSynthetic() *Synthetic {
	return &Synthetic{issued: make(map[int64]string)}
}

// SearchPlayers returns up to three invented players for term
func (s *Synthetic) SearchPlayers(ctx context.Context, term string, limit int) ([]models.Player, error) {
	term = strings.TrimSpace(term)
	players := []models.Player{}
	if term == "" {
		return players, nil
	}

	for _, v := range syntheticVariants {
		if limit > 0 && len(players) >= limit {
			break
		}

		name := v.name(term)
		team := v.team
		country := v.country
		p := models.Player{
			ID:       SyntheticSerial(name),
			Name:     name,
			Team2025: &team,
			Country:  &country,
		}
		s.remember(p.ID, name)
		players = append(players, p)
	}

	return players, nil
}

// GetPlayerBySerial resolves ids handed out by SearchPlayers back to their
// names; other ids yield a nameless player seeded from the id itself.
func (s *Synthetic) GetPlayerBySerial(ctx context.Context, id int64) (*models.Player, error) {
	s.mu.Lock()
	name := s.issued[id]
	s.mu.Unlock()

	return &models.Player{ID: id, Name: name}, nil
}

// GetPlayerByName always finds a player
func (s *Synthetic) GetPlayerByName(ctx context.Context, name string) (*models.Player, error) {
	return &models.Player{Name: strings.TrimSpace(name)}, nil
}

// Source names the backing store
func (s *Synthetic) Source() string {
	return models.SourceSynthetic
}

// Close is a no-op
func (s *Synthetic) Close() error {
	return nil
}

// Ping always succeeds
func (s *Synthetic) Ping(ctx context.Context) error {
	return nil
}

func (s *Synthetic) remember(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.issued) >= maxIssued {
		s.issued = make(map[int64]string)
	}
	s.issued[id] = name
}

// SyntheticSerial derives a stable positive serial from a player name
func SyntheticSerial(name string) int64 {
	return stats.HashName(name)%1000000 + 1
}
