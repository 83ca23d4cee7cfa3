package models

// BuyIn records one addition of money to a player's stack.
// Buy-ins are immutable once recorded and belong to exactly one participation.
type BuyIn struct {
	// ID is the unique identifier for the buy-in (UUID format).
	ID string

	// ParticipationID is the participation this buy-in belongs to.
	ParticipationID string

	// Amount is the buy-in amount in whole currency units.
	Amount int64

	// CreatedAt is the Unix timestamp when the buy-in was recorded.
	CreatedAt int64
}

// Participation is the record of one player's financial activity within one
// session. It is owned by its session and cascade-deleted with it.
type Participation struct {
	// ID is the unique identifier for the participation (UUID format).
	ID string

	// SessionID is the session this participation belongs to.
	SessionID string

	// PlayerID references the player. The player is shared, not owned:
	// removing the participation never removes the player.
	PlayerID string

	// PlayerName is populated from the players table on load, for display.
	PlayerName string

	// BuyIns are owned by this participation, ordered by creation time.
	BuyIns []BuyIn

	// CashOut is nil until the player cashes out. Aggregates treat nil as 0.
	// Setting it again replaces the previous value.
	CashOut *int64

	// CreatedAt is the Unix timestamp when the player joined the session.
	CreatedAt int64
}

// TotalBuyIns returns the sum of all buy-in amounts.
func (p *Participation) TotalBuyIns() int64 {
	var total int64
	for _, b := range p.BuyIns {
		total += b.Amount
	}
	return total
}

// CashOutOrZero returns the recorded cash-out, or 0 if none was recorded.
func (p *Participation) CashOutOrZero() int64 {
	if p.CashOut == nil {
		return 0
	}
	return *p.CashOut
}

// Profit returns the player's net result: cash-out (or 0) minus total
// buy-ins. Negative means the player lost money.
func (p *Participation) Profit() int64 {
	return p.CashOutOrZero() - p.TotalBuyIns()
}
