package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hookiepoker/ledger/internal/models"
)

// CreateParticipation inserts a new participation into the database.
// The UNIQUE (session_id, player_id) constraint rejects duplicate players per
// session at the schema level; the service layer checks first to report a
// clean conflict.
func (s *SQLiteStore) CreateParticipation(ctx context.Context, part *models.Participation) error {
	// Generate ID if not set
	if part.ID == "" {
		part.ID = uuid.New().String()
	}
	if part.CreatedAt == 0 {
		part.CreatedAt = time.Now().Unix()
	}

	var cashOut interface{} = nil
	if part.CashOut != nil {
		cashOut = *part.CashOut
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO participations (id, session_id, player_id, cash_out, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		part.ID, part.SessionID, part.PlayerID, cashOut, part.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participation: %w", err)
	}

	return nil
}

// GetParticipation retrieves one participation with its buy-ins.
// Returns nil, nil if the participation does not exist.
func (s *SQLiteStore) GetParticipation(ctx context.Context, id string) (*models.Participation, error) {
	part := &models.Participation{}
	var cashOut sql.NullInt64

	err := s.db.QueryRowContext(ctx,
		`SELECT p.id, p.session_id, p.player_id, pl.name, p.cash_out, p.created_at
		 FROM participations p
		 JOIN players pl ON pl.id = p.player_id
		 WHERE p.id = ?`,
		id,
	).Scan(&part.ID, &part.SessionID, &part.PlayerID, &part.PlayerName, &cashOut, &part.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil // Participation not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participation: %w", err)
	}

	if cashOut.Valid {
		part.CashOut = &cashOut.Int64
	}

	buyIns, err := s.loadBuyIns(ctx, part.ID)
	if err != nil {
		return nil, err
	}
	part.BuyIns = buyIns

	return part, nil
}

// DeleteParticipation removes a participation. Its buy-ins go with it via
// ON DELETE CASCADE; the referenced player is untouched.
func (s *SQLiteStore) DeleteParticipation(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM participations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete participation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("participation not found: %s", id)
	}

	return nil
}

// SetCashOut overwrites a participation's cash-out amount.
func (s *SQLiteStore) SetCashOut(ctx context.Context, participationID string, amount int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE participations SET cash_out = ? WHERE id = ?",
		amount, participationID,
	)
	if err != nil {
		return fmt.Errorf("failed to set cash-out: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("participation not found: %s", participationID)
	}

	return nil
}

// CreateBuyIn inserts a new buy-in for a participation.
func (s *SQLiteStore) CreateBuyIn(ctx context.Context, buyIn *models.BuyIn) error {
	// Generate ID if not set
	if buyIn.ID == "" {
		buyIn.ID = uuid.New().String()
	}
	if buyIn.CreatedAt == 0 {
		buyIn.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO buy_ins (id, participation_id, amount, created_at)
		 VALUES (?, ?, ?, ?)`,
		buyIn.ID, buyIn.ParticipationID, buyIn.Amount, buyIn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert buy-in: %w", err)
	}

	return nil
}
