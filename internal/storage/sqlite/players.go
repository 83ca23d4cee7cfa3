package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hookiepoker/ledger/internal/models"
)

// CreatePlayer inserts a new player into the database.
func (s *SQLiteStore) CreatePlayer(ctx context.Context, player *models.Player) error {
	// Generate ID if not set
	if player.ID == "" {
		player.ID = uuid.New().String()
	}
	if player.CreatedAt == 0 {
		player.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO players (id, name, created_at) VALUES (?, ?, ?)",
		player.ID, player.Name, player.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}

	return nil
}

// GetPlayer retrieves a player by ID.
// Returns nil, nil if the player does not exist.
func (s *SQLiteStore) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	player := &models.Player{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM players WHERE id = ?",
		id,
	).Scan(&player.ID, &player.Name, &player.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil // Player not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

// GetPlayerByName retrieves a player by exact name. Name matching is
// case-sensitive.
// Returns nil, nil if no player has that name.
func (s *SQLiteStore) GetPlayerByName(ctx context.Context, name string) (*models.Player, error) {
	player := &models.Player{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM players WHERE name = ?",
		name,
	).Scan(&player.ID, &player.Name, &player.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil // Player not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by name: %w", err)
	}

	return player, nil
}

// ListPlayers returns all players sorted by name ascending.
func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM players ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		player := &models.Player{}
		if err := rows.Scan(&player.ID, &player.Name, &player.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}

	return players, nil
}
