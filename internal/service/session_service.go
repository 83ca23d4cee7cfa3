// Package service implements the session lifecycle rules on top of the
// storage gateway. It is the only legal way to mutate the ledger: every
// operation validates its inputs, enforces the invariants (one open session,
// one participation per player and session, irreversible close), and persists
// before reporting success. When persistence fails the operation returns a
// persistence-kind error and no in-memory state has changed; callers always
// re-query for current data.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/hookiepoker/ledger/internal/errs"
	"github.com/hookiepoker/ledger/internal/ledger"
	"github.com/hookiepoker/ledger/internal/metrics"
	"github.com/hookiepoker/ledger/internal/models"
	"github.com/hookiepoker/ledger/internal/storage"
)

// SessionService manages session lifecycle: opening, participation, buy-ins,
// cash-outs, house expenses, and the irreversible close.
type SessionService struct {
	store storage.Store
}

// NewSessionService creates a new SessionService with the given storage backend.
func NewSessionService(store storage.Store) *SessionService {
	return &SessionService{store: store}
}

// ExpensesInput carries the expense fields to overwrite on a session.
// Nil fields leave the current value unchanged.
type ExpensesInput struct {
	Rake         *int64
	DealerSalary *int64
	DealerTips   *int64
}

// CreateSession opens a new session for the given date. It fails with a
// conflict error while another session is still open.
func (s *SessionService) CreateSession(ctx context.Context, date time.Time) (session *models.Session, err error) {
	defer func() { metrics.Observe("create_session", err) }()

	open, err := s.store.OpenSessions(ctx)
	if err != nil {
		return nil, errs.Persistence(err, "failed to query open sessions")
	}
	if len(open) > 1 {
		// The store guarantees at most one open session; seeing more means
		// the database was modified outside this module.
		slog.Error("multiple open sessions found", "count", len(open))
	}
	if len(open) > 0 {
		return nil, errs.Conflict("an open session already exists")
	}

	session = &models.Session{Date: date.Unix()}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, errs.Persistence(err, "failed to persist session")
	}

	slog.Info("session created", "session_id", session.ID, "date", date.Format(time.DateOnly))
	return session, nil
}

// CurrentSession returns the unique open session, or nil when none is open.
func (s *SessionService) CurrentSession(ctx context.Context) (*models.Session, error) {
	open, err := s.store.OpenSessions(ctx)
	if err != nil {
		return nil, errs.Persistence(err, "failed to query open sessions")
	}
	if len(open) == 0 {
		return nil, nil
	}
	if len(open) > 1 {
		slog.Error("multiple open sessions found", "count", len(open))
	}
	return open[0], nil
}

// GetSession returns one session with its full graph.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, errs.Persistence(err, "failed to get session")
	}
	if session == nil {
		return nil, errs.Validation("session not found: %s", sessionID)
	}
	return session, nil
}

// ListSessions returns all sessions, newest date first.
func (s *SessionService) ListSessions(ctx context.Context) ([]*models.Session, error) {
	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		return nil, errs.Persistence(err, "failed to list sessions")
	}
	return sessions, nil
}

// AddParticipation adds a player to an open session. A player joins a given
// session at most once.
func (s *SessionService) AddParticipation(ctx context.Context, sessionID, playerID string) (part *models.Participation, err error) {
	defer func() { metrics.Observe("add_participation", err) }()

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, errs.Persistence(err, "failed to get session")
	}
	if session == nil {
		return nil, errs.Validation("session not found: %s", sessionID)
	}
	if session.IsClosed {
		return nil, errs.State("session is closed")
	}

	for i := range session.Participations {
		if session.Participations[i].PlayerID == playerID {
			return nil, errs.Conflict("player already participates in this session")
		}
	}

	player, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, errs.Persistence(err, "failed to get player")
	}
	if player == nil {
		return nil, errs.Validation("player not found: %s", playerID)
	}

	part = &models.Participation{
		SessionID:  session.ID,
		PlayerID:   player.ID,
		PlayerName: player.Name,
	}
	if err := s.store.CreateParticipation(ctx, part); err != nil {
		return nil, errs.Persistence(err, "failed to persist participation")
	}

	slog.Info("participation added",
		"session_id", session.ID,
		"participation_id", part.ID,
		"player", player.Name,
	)
	return part, nil
}

// RemoveParticipation removes a participation and its buy-ins from a session.
// The referenced player stays registered. Removal is allowed on closed
// sessions, matching how the session editor has always behaved.
func (s *SessionService) RemoveParticipation(ctx context.Context, sessionID, participationID string) (err error) {
	defer func() { metrics.Observe("remove_participation", err) }()

	part, err := s.store.GetParticipation(ctx, participationID)
	if err != nil {
		return errs.Persistence(err, "failed to get participation")
	}
	if part == nil || part.SessionID != sessionID {
		return errs.Validation("participation not found in session: %s", participationID)
	}

	if err := s.store.DeleteParticipation(ctx, participationID); err != nil {
		return errs.Persistence(err, "failed to delete participation")
	}

	slog.Info("participation removed",
		"session_id", sessionID,
		"participation_id", participationID,
		"player", part.PlayerName,
	)
	return nil
}

// RecordBuyIn appends a buy-in to a participation, stamped with the current
// time. Buy-ins are immutable afterwards.
func (s *SessionService) RecordBuyIn(ctx context.Context, participationID string, amount int64) (buyIn *models.BuyIn, err error) {
	defer func() { metrics.Observe("record_buy_in", err) }()

	if amount <= 0 {
		return nil, errs.Validation("buy-in amount must be positive, got %d", amount)
	}

	part, err := s.store.GetParticipation(ctx, participationID)
	if err != nil {
		return nil, errs.Persistence(err, "failed to get participation")
	}
	if part == nil {
		return nil, errs.Validation("participation not found: %s", participationID)
	}

	buyIn = &models.BuyIn{ParticipationID: part.ID, Amount: amount}
	if err := s.store.CreateBuyIn(ctx, buyIn); err != nil {
		return nil, errs.Persistence(err, "failed to persist buy-in")
	}

	slog.Info("buy-in recorded",
		"participation_id", part.ID,
		"player", part.PlayerName,
		"amount", amount,
	)
	return buyIn, nil
}

// SetCashOut records the amount a player took off the table. Calling it again
// replaces the previous value; it never accumulates.
func (s *SessionService) SetCashOut(ctx context.Context, participationID string, amount int64) (err error) {
	defer func() { metrics.Observe("set_cash_out", err) }()

	if amount < 0 {
		return errs.Validation("cash-out amount must not be negative, got %d", amount)
	}

	part, err := s.store.GetParticipation(ctx, participationID)
	if err != nil {
		return errs.Persistence(err, "failed to get participation")
	}
	if part == nil {
		return errs.Validation("participation not found: %s", participationID)
	}

	if err := s.store.SetCashOut(ctx, participationID, amount); err != nil {
		return errs.Persistence(err, "failed to persist cash-out")
	}

	slog.Info("cash-out set",
		"participation_id", part.ID,
		"player", part.PlayerName,
		"amount", amount,
	)
	return nil
}

// SetExpenses overwrites the house expense fields supplied in input and
// leaves the rest unchanged.
func (s *SessionService) SetExpenses(ctx context.Context, sessionID string, input ExpensesInput) (err error) {
	defer func() { metrics.Observe("set_expenses", err) }()

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return errs.Persistence(err, "failed to get session")
	}
	if session == nil {
		return errs.Validation("session not found: %s", sessionID)
	}

	if input.Rake != nil {
		session.Rake = *input.Rake
	}
	if input.DealerSalary != nil {
		session.DealerSalary = *input.DealerSalary
	}
	if input.DealerTips != nil {
		session.DealerTips = *input.DealerTips
	}

	if err := s.store.UpdateSession(ctx, session); err != nil {
		return errs.Persistence(err, "failed to persist expenses")
	}

	slog.Info("expenses set",
		"session_id", session.ID,
		"rake", session.Rake,
		"dealer_salary", session.DealerSalary,
		"dealer_tips", session.DealerTips,
	)
	return nil
}

// CloseSession closes an open session. There is no way back: a closed session
// never reopens.
func (s *SessionService) CloseSession(ctx context.Context, sessionID string) (err error) {
	defer func() { metrics.Observe("close_session", err) }()

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return errs.Persistence(err, "failed to get session")
	}
	if session == nil {
		return errs.Validation("session not found: %s", sessionID)
	}
	if session.IsClosed {
		return errs.State("session is already closed")
	}

	session.IsClosed = true
	if err := s.store.UpdateSession(ctx, session); err != nil {
		return errs.Persistence(err, "failed to persist session close")
	}

	slog.Info("session closed", "session_id", session.ID, "delta", session.BalanceDelta())
	return nil
}

// DeleteSession removes a session of any state together with its
// participations and buy-ins.
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) (err error) {
	defer func() { metrics.Observe("delete_session", err) }()

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return errs.Persistence(err, "failed to get session")
	}
	if session == nil {
		return errs.Validation("session not found: %s", sessionID)
	}

	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return errs.Persistence(err, "failed to delete session")
	}

	slog.Info("session deleted",
		"session_id", sessionID,
		"participations", len(session.Participations),
	)
	return nil
}

// SessionTotals returns the reconciliation summary for one session.
func (s *SessionService) SessionTotals(ctx context.Context, sessionID string) (ledger.Totals, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return ledger.Totals{}, err
	}
	return ledger.SessionTotals(session), nil
}

// GlobalTotals returns totals summed over every stored session, open and
// closed alike.
func (s *SessionService) GlobalTotals(ctx context.Context) (ledger.Totals, error) {
	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		return ledger.Totals{}, errs.Persistence(err, "failed to list sessions")
	}
	return ledger.GlobalTotals(sessions), nil
}
