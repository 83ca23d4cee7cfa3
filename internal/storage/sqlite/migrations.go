package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: players must be created before participations due to the
// foreign key constraint.
const schema = `
CREATE TABLE IF NOT EXISTS players (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    date INTEGER NOT NULL,
    is_closed INTEGER NOT NULL DEFAULT 0,
    rake INTEGER NOT NULL DEFAULT 0,
    dealer_salary INTEGER NOT NULL DEFAULT 0,
    dealer_tips INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS participations (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    player_id TEXT NOT NULL,
    cash_out INTEGER,
    created_at INTEGER NOT NULL,
    UNIQUE (session_id, player_id),
    FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE,
    FOREIGN KEY (player_id) REFERENCES players(id)
);

CREATE TABLE IF NOT EXISTS buy_ins (
    id TEXT PRIMARY KEY,
    participation_id TEXT NOT NULL,
    amount INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (participation_id) REFERENCES participations(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_single_open ON sessions(is_closed) WHERE is_closed = 0;
CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);
CREATE INDEX IF NOT EXISTS idx_participations_session_id ON participations(session_id);
CREATE INDEX IF NOT EXISTS idx_buy_ins_participation_id ON buy_ins(participation_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
