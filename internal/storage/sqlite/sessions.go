package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hookiepoker/ledger/internal/models"
)

// CreateSession persists a new session to the database.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *models.Session) error {
	// Generate IDs if not set
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, date, is_closed, rake, dealer_salary, dealer_tips, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.Date, session.IsClosed,
		session.Rake, session.DealerSalary, session.DealerTips, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID, including all participations and
// their buy-ins.
// Returns nil, nil if the session does not exist.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	session := &models.Session{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, date, is_closed, rake, dealer_salary, dealer_tips, created_at
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&session.ID, &session.Date, &session.IsClosed,
		&session.Rake, &session.DealerSalary, &session.DealerTips, &session.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil // Session not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := s.loadParticipations(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// ListSessions returns all sessions sorted by date descending, each with its
// full participation graph.
func (s *SQLiteStore) ListSessions(ctx context.Context) ([]*models.Session, error) {
	return s.querySessions(ctx,
		`SELECT id, date, is_closed, rake, dealer_salary, dealer_tips, created_at
		 FROM sessions ORDER BY date DESC, created_at DESC`)
}

// OpenSessions returns the sessions with is_closed = 0.
// The schema enforces at most one, but the query makes no such assumption so
// the caller can detect a corrupted store.
func (s *SQLiteStore) OpenSessions(ctx context.Context) ([]*models.Session, error) {
	return s.querySessions(ctx,
		`SELECT id, date, is_closed, rake, dealer_salary, dealer_tips, created_at
		 FROM sessions WHERE is_closed = 0 ORDER BY date DESC`)
}

func (s *SQLiteStore) querySessions(ctx context.Context, query string) ([]*models.Session, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session := &models.Session{}
		if err := rows.Scan(&session.ID, &session.Date, &session.IsClosed,
			&session.Rake, &session.DealerSalary, &session.DealerTips, &session.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	for _, session := range sessions {
		if err := s.loadParticipations(ctx, session); err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

// loadParticipations fills session.Participations, joining player names and
// loading each participation's buy-ins in creation order.
func (s *SQLiteStore) loadParticipations(ctx context.Context, session *models.Session) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.session_id, p.player_id, pl.name, p.cash_out, p.created_at
		 FROM participations p
		 JOIN players pl ON pl.id = p.player_id
		 WHERE p.session_id = ?
		 ORDER BY p.created_at, p.id`,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participations: %w", err)
	}
	defer rows.Close()

	var participations []models.Participation
	for rows.Next() {
		var part models.Participation
		var cashOut sql.NullInt64
		if err := rows.Scan(&part.ID, &part.SessionID, &part.PlayerID,
			&part.PlayerName, &cashOut, &part.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan participation: %w", err)
		}
		if cashOut.Valid {
			part.CashOut = &cashOut.Int64
		}
		participations = append(participations, part)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participations: %w", err)
	}

	for i := range participations {
		buyIns, err := s.loadBuyIns(ctx, participations[i].ID)
		if err != nil {
			return err
		}
		participations[i].BuyIns = buyIns
	}

	session.Participations = participations
	return nil
}

func (s *SQLiteStore) loadBuyIns(ctx context.Context, participationID string) ([]models.BuyIn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, participation_id, amount, created_at
		 FROM buy_ins WHERE participation_id = ?
		 ORDER BY created_at, id`,
		participationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get buy-ins: %w", err)
	}
	defer rows.Close()

	var buyIns []models.BuyIn
	for rows.Next() {
		var b models.BuyIn
		if err := rows.Scan(&b.ID, &b.ParticipationID, &b.Amount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan buy-in: %w", err)
		}
		buyIns = append(buyIns, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate buy-ins: %w", err)
	}

	return buyIns, nil
}

// UpdateSession overwrites a session's own fields. Participations are managed
// through their own methods and are not touched here.
func (s *SQLiteStore) UpdateSession(ctx context.Context, session *models.Session) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET date = ?, is_closed = ?, rake = ?, dealer_salary = ?, dealer_tips = ?
		 WHERE id = ?`,
		session.Date, session.IsClosed, session.Rake,
		session.DealerSalary, session.DealerTips, session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session not found: %s", session.ID)
	}

	return nil
}

// DeleteSession removes a session. Participations and buy-ins go with it via
// ON DELETE CASCADE.
func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session not found: %s", id)
	}

	return nil
}
