package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hookiepoker/ledger/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestPlayers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreatePlayer generates ID and timestamp", func(t *testing.T) {
		player := &models.Player{Name: "Alice"}
		if err := store.CreatePlayer(ctx, player); err != nil {
			t.Fatalf("CreatePlayer failed: %v", err)
		}
		if player.ID == "" {
			t.Error("Expected player ID to be generated")
		}
		if player.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("duplicate name violates unique constraint", func(t *testing.T) {
		if err := store.CreatePlayer(ctx, &models.Player{Name: "Alice"}); err == nil {
			t.Error("Expected error for duplicate player name, got nil")
		}
	})

	t.Run("GetPlayerByName is case-sensitive", func(t *testing.T) {
		player, err := store.GetPlayerByName(ctx, "Alice")
		if err != nil {
			t.Fatalf("GetPlayerByName failed: %v", err)
		}
		if player == nil || player.Name != "Alice" {
			t.Fatalf("Expected Alice, got %+v", player)
		}

		missing, err := store.GetPlayerByName(ctx, "alice")
		if err != nil {
			t.Fatalf("GetPlayerByName failed: %v", err)
		}
		if missing != nil {
			t.Errorf("Expected nil for lowercase name, got %+v", missing)
		}
	})

	t.Run("ListPlayers sorts by name ascending", func(t *testing.T) {
		for _, name := range []string{"Zoe", "Bob"} {
			if err := store.CreatePlayer(ctx, &models.Player{Name: name}); err != nil {
				t.Fatalf("CreatePlayer failed: %v", err)
			}
		}

		players, err := store.ListPlayers(ctx)
		if err != nil {
			t.Fatalf("ListPlayers failed: %v", err)
		}
		want := []string{"Alice", "Bob", "Zoe"}
		if len(players) != len(want) {
			t.Fatalf("Expected %d players, got %d", len(want), len(players))
		}
		for i, name := range want {
			if players[i].Name != name {
				t.Errorf("players[%d] = %s, want %s", i, players[i].Name, name)
			}
		}
	})
}

func TestSessions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := &models.Player{Name: "Alice"}
	bob := &models.Player{Name: "Bob"}
	for _, p := range []*models.Player{alice, bob} {
		if err := store.CreatePlayer(ctx, p); err != nil {
			t.Fatalf("CreatePlayer failed: %v", err)
		}
	}

	session := &models.Session{Date: time.Now().Unix()}

	t.Run("CreateSession and OpenSessions", func(t *testing.T) {
		if err := store.CreateSession(ctx, session); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		open, err := store.OpenSessions(ctx)
		if err != nil {
			t.Fatalf("OpenSessions failed: %v", err)
		}
		if len(open) != 1 || open[0].ID != session.ID {
			t.Fatalf("Expected the new session to be the only open one, got %d", len(open))
		}
	})

	t.Run("schema rejects a second open session", func(t *testing.T) {
		err := store.CreateSession(ctx, &models.Session{Date: time.Now().Unix()})
		if err == nil {
			t.Error("Expected unique index violation for second open session, got nil")
		}
	})

	t.Run("GetSession loads the full graph", func(t *testing.T) {
		part := &models.Participation{SessionID: session.ID, PlayerID: alice.ID}
		if err := store.CreateParticipation(ctx, part); err != nil {
			t.Fatalf("CreateParticipation failed: %v", err)
		}
		for _, amount := range []int64{200, 500} {
			b := &models.BuyIn{ParticipationID: part.ID, Amount: amount}
			if err := store.CreateBuyIn(ctx, b); err != nil {
				t.Fatalf("CreateBuyIn failed: %v", err)
			}
		}

		got, err := store.GetSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected session, got nil")
		}
		if len(got.Participations) != 1 {
			t.Fatalf("Expected 1 participation, got %d", len(got.Participations))
		}
		p := got.Participations[0]
		if p.PlayerName != "Alice" {
			t.Errorf("PlayerName = %s, want Alice", p.PlayerName)
		}
		if len(p.BuyIns) != 2 {
			t.Fatalf("Expected 2 buy-ins, got %d", len(p.BuyIns))
		}
		if p.TotalBuyIns() != 700 {
			t.Errorf("TotalBuyIns() = %d, want 700", p.TotalBuyIns())
		}
		if p.CashOut != nil {
			t.Errorf("Expected no cash-out yet, got %d", *p.CashOut)
		}
	})

	t.Run("duplicate player in session violates unique constraint", func(t *testing.T) {
		err := store.CreateParticipation(ctx, &models.Participation{
			SessionID: session.ID,
			PlayerID:  alice.ID,
		})
		if err == nil {
			t.Error("Expected error for duplicate participation, got nil")
		}
	})

	t.Run("SetCashOut stores the value", func(t *testing.T) {
		got, err := store.GetSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		partID := got.Participations[0].ID

		if err := store.SetCashOut(ctx, partID, 900); err != nil {
			t.Fatalf("SetCashOut failed: %v", err)
		}

		part, err := store.GetParticipation(ctx, partID)
		if err != nil {
			t.Fatalf("GetParticipation failed: %v", err)
		}
		if part.CashOut == nil || *part.CashOut != 900 {
			t.Errorf("Expected cash-out 900, got %v", part.CashOut)
		}
	})

	t.Run("UpdateSession persists closed flag and expenses", func(t *testing.T) {
		session.IsClosed = true
		session.Rake = 100
		if err := store.UpdateSession(ctx, session); err != nil {
			t.Fatalf("UpdateSession failed: %v", err)
		}

		got, err := store.GetSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if !got.IsClosed || got.Rake != 100 {
			t.Errorf("Expected closed session with rake 100, got %+v", got)
		}

		open, err := store.OpenSessions(ctx)
		if err != nil {
			t.Fatalf("OpenSessions failed: %v", err)
		}
		if len(open) != 0 {
			t.Errorf("Expected no open sessions after close, got %d", len(open))
		}
	})

	t.Run("ListSessions sorts by date descending", func(t *testing.T) {
		older := &models.Session{Date: session.Date - 86400, IsClosed: true}
		if err := store.CreateSession(ctx, older); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		sessions, err := store.ListSessions(ctx)
		if err != nil {
			t.Fatalf("ListSessions failed: %v", err)
		}
		if len(sessions) != 2 {
			t.Fatalf("Expected 2 sessions, got %d", len(sessions))
		}
		if sessions[0].ID != session.ID || sessions[1].ID != older.ID {
			t.Error("Expected newest session first")
		}
	})

	t.Run("DeleteParticipation cascades to buy-ins", func(t *testing.T) {
		got, err := store.GetSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		partID := got.Participations[0].ID

		if err := store.DeleteParticipation(ctx, partID); err != nil {
			t.Fatalf("DeleteParticipation failed: %v", err)
		}

		part, err := store.GetParticipation(ctx, partID)
		if err != nil {
			t.Fatalf("GetParticipation failed: %v", err)
		}
		if part != nil {
			t.Error("Expected participation to be gone")
		}

		var count int
		if err := store.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM buy_ins WHERE participation_id = ?", partID,
		).Scan(&count); err != nil {
			t.Fatalf("count query failed: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected 0 buy-ins after cascade, got %d", count)
		}

		// The player survives the cascade.
		player, err := store.GetPlayer(ctx, alice.ID)
		if err != nil {
			t.Fatalf("GetPlayer failed: %v", err)
		}
		if player == nil {
			t.Error("Expected player to survive participation delete")
		}
	})

	t.Run("DeleteSession cascades to participations and buy-ins", func(t *testing.T) {
		part := &models.Participation{SessionID: session.ID, PlayerID: bob.ID}
		if err := store.CreateParticipation(ctx, part); err != nil {
			t.Fatalf("CreateParticipation failed: %v", err)
		}
		if err := store.CreateBuyIn(ctx, &models.BuyIn{ParticipationID: part.ID, Amount: 1000}); err != nil {
			t.Fatalf("CreateBuyIn failed: %v", err)
		}

		if err := store.DeleteSession(ctx, session.ID); err != nil {
			t.Fatalf("DeleteSession failed: %v", err)
		}

		got, err := store.GetSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got != nil {
			t.Error("Expected session to be gone")
		}

		gone, err := store.GetParticipation(ctx, part.ID)
		if err != nil {
			t.Fatalf("GetParticipation failed: %v", err)
		}
		if gone != nil {
			t.Error("Expected participation to be cascade-deleted")
		}
	})

	t.Run("GetSession returns nil for unknown ID", func(t *testing.T) {
		got, err := store.GetSession(ctx, "nonexistent-id")
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil for unknown session, got %+v", got)
		}
	})
}
