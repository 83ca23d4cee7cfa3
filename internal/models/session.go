package models

// Session represents one poker session.
//
// At most one session is open at any time; closing a session is irreversible.
// A session exclusively owns its participations: deleting it cascades to them
// and to their buy-ins.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// Date is the Unix timestamp of the session date.
	Date int64

	// IsClosed reports whether the session has been closed.
	IsClosed bool

	// Participations are owned by this session, ordered by creation time.
	Participations []Participation

	// Rake is the house rake for the session.
	Rake int64

	// DealerSalary is the dealers' pay for the session.
	DealerSalary int64

	// DealerTips is the dealers' tips for the session.
	DealerTips int64

	// CreatedAt is the Unix timestamp when the session was created.
	CreatedAt int64
}

// TotalBuyIns returns the sum of buy-ins across all participations.
func (s *Session) TotalBuyIns() int64 {
	var total int64
	for i := range s.Participations {
		total += s.Participations[i].TotalBuyIns()
	}
	return total
}

// TotalCashOuts returns the sum of cash-outs across all participations.
// Participations that have not cashed out count as 0.
func (s *Session) TotalCashOuts() int64 {
	var total int64
	for i := range s.Participations {
		total += s.Participations[i].CashOutOrZero()
	}
	return total
}

// TotalExpenses returns the house expenses: rake + dealer salary + dealer tips.
func (s *Session) TotalExpenses() int64 {
	return s.Rake + s.DealerSalary + s.DealerTips
}

// BalanceDelta returns the reconciliation figure
// (buy-ins - cash-outs - expenses). Zero means the books balance.
func (s *Session) BalanceDelta() int64 {
	return s.TotalBuyIns() - s.TotalCashOuts() - s.TotalExpenses()
}
