// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"

	"github.com/hookiepoker/ledger/internal/models"
)

// Store defines the persistence gateway for the ledger.
//
// Every mutating method is a durable commit point: when it returns nil the
// change is on disk, and when it returns an error nothing performed by that
// call is durable. This abstraction allows swapping storage backends (SQLite,
// PostgreSQL, etc.) without changing the service layer.
//
// Lookup methods return (nil, nil) when the entity does not exist; an error
// always means the store itself failed.
type Store interface {
	// CreatePlayer persists a new player. ID and CreatedAt are populated
	// by the store if unset.
	CreatePlayer(ctx context.Context, player *models.Player) error

	// GetPlayer retrieves a player by ID.
	GetPlayer(ctx context.Context, id string) (*models.Player, error)

	// GetPlayerByName retrieves a player by exact, case-sensitive name.
	GetPlayerByName(ctx context.Context, name string) (*models.Player, error)

	// ListPlayers returns all players sorted by name ascending.
	ListPlayers(ctx context.Context) ([]*models.Player, error)

	// CreateSession persists a new session. ID and CreatedAt are populated
	// by the store if unset.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session with its full participation and
	// buy-in graph.
	GetSession(ctx context.Context, id string) (*models.Session, error)

	// ListSessions returns all sessions sorted by date descending, each
	// with its full graph.
	ListSessions(ctx context.Context) ([]*models.Session, error)

	// OpenSessions returns the sessions that are not closed. Expected
	// cardinality is 0 or 1; anything more indicates a corrupted store.
	OpenSessions(ctx context.Context) ([]*models.Session, error)

	// UpdateSession overwrites a session's own fields (date, closed flag,
	// expenses). Participations are not touched.
	UpdateSession(ctx context.Context, session *models.Session) error

	// DeleteSession removes a session and cascades to its participations
	// and their buy-ins.
	DeleteSession(ctx context.Context, id string) error

	// CreateParticipation persists a new participation. ID and CreatedAt
	// are populated by the store if unset.
	CreateParticipation(ctx context.Context, part *models.Participation) error

	// GetParticipation retrieves one participation with its buy-ins.
	GetParticipation(ctx context.Context, id string) (*models.Participation, error)

	// DeleteParticipation removes a participation and cascades to its
	// buy-ins. The referenced player is left alone.
	DeleteParticipation(ctx context.Context, id string) error

	// SetCashOut overwrites a participation's cash-out amount.
	SetCashOut(ctx context.Context, participationID string, amount int64) error

	// CreateBuyIn appends a buy-in to a participation. ID and CreatedAt
	// are populated by the store if unset.
	CreateBuyIn(ctx context.Context, buyIn *models.BuyIn) error

	// Close releases any resources held by the store.
	Close() error
}
