package models

// Player represents a registered player.
//
// Players are created explicitly, identified by a unique case-sensitive name,
// and never deleted automatically: participations reference them by ID but do
// not own them.
type Player struct {
	// ID is the unique identifier for the player (UUID format).
	ID string

	// Name is the player's display name. Unique across all players.
	Name string

	// CreatedAt is the Unix timestamp when the player was registered.
	CreatedAt int64
}
