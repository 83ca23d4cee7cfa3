// Package ledger computes financial aggregates over sessions and
// participations. All functions are pure: results are recomputed from the
// entity graph on every call and never cached.
package ledger

import "github.com/hookiepoker/ledger/internal/models"

// Totals is the reconciliation summary for one session or a whole history.
type Totals struct {
	BuyIns   int64
	CashOuts int64
	Expenses int64

	// Delta is BuyIns - CashOuts - Expenses. Zero means recorded buy-ins
	// exactly account for cash-outs plus house expenses.
	Delta int64
}

// SessionTotals computes the totals for a single session.
func SessionTotals(s *models.Session) Totals {
	t := Totals{
		BuyIns:   s.TotalBuyIns(),
		CashOuts: s.TotalCashOuts(),
		Expenses: s.TotalExpenses(),
	}
	t.Delta = t.BuyIns - t.CashOuts - t.Expenses
	return t
}

// GlobalTotals sums session totals across the full history. Open and closed
// sessions both count.
func GlobalTotals(sessions []*models.Session) Totals {
	var t Totals
	for _, s := range sessions {
		st := SessionTotals(s)
		t.BuyIns += st.BuyIns
		t.CashOuts += st.CashOuts
		t.Expenses += st.Expenses
	}
	t.Delta = t.BuyIns - t.CashOuts - t.Expenses
	return t
}

// ParticipationProfit returns the signed net result for one participation:
// cash-out (0 if absent) minus total buy-ins.
func ParticipationProfit(p *models.Participation) int64 {
	return p.Profit()
}
