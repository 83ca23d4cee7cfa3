package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hookiepoker/ledger/internal/errs"
	"github.com/hookiepoker/ledger/internal/metrics"
	"github.com/hookiepoker/ledger/internal/models"
	"github.com/hookiepoker/ledger/internal/storage"
)

// PlayerService manages the player registry. Player names are unique and
// case-sensitive; players are never deleted.
type PlayerService struct {
	store storage.Store
}

// NewPlayerService creates a new PlayerService with the given storage backend.
func NewPlayerService(store storage.Store) *PlayerService {
	return &PlayerService{store: store}
}

// CreatePlayer registers a new player. The name is trimmed of surrounding
// whitespace before the empty and uniqueness checks.
func (s *PlayerService) CreatePlayer(ctx context.Context, name string) (player *models.Player, err error) {
	defer func() { metrics.Observe("create_player", err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Validation("player name must not be empty")
	}

	existing, err := s.store.GetPlayerByName(ctx, name)
	if err != nil {
		return nil, errs.Persistence(err, "failed to look up player name")
	}
	if existing != nil {
		return nil, errs.Conflict("player %q already exists", name)
	}

	player = &models.Player{Name: name}
	if err := s.store.CreatePlayer(ctx, player); err != nil {
		return nil, errs.Persistence(err, "failed to persist player")
	}

	slog.Info("player created", "player_id", player.ID, "name", player.Name)
	return player, nil
}

// ListPlayers returns all registered players sorted by name ascending.
func (s *PlayerService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, errs.Persistence(err, "failed to list players")
	}
	return players, nil
}

// AvailablePlayers returns the players who do not yet participate in the
// given session, sorted by name ascending. This backs the add-player picker.
func (s *PlayerService) AvailablePlayers(ctx context.Context, sessionID string) ([]*models.Player, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, errs.Persistence(err, "failed to get session")
	}
	if session == nil {
		return nil, errs.Validation("session not found: %s", sessionID)
	}

	present := make(map[string]bool, len(session.Participations))
	for i := range session.Participations {
		present[session.Participations[i].PlayerID] = true
	}

	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, errs.Persistence(err, "failed to list players")
	}

	var available []*models.Player
	for _, p := range players {
		if !present[p.ID] {
			available = append(available, p)
		}
	}
	return available, nil
}
