package sqlite

import "database/sql"

// schema sets up the database tables.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS ledgers (
    conversation_id TEXT PRIMARY KEY,
    document TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ledgers_updated_at ON ledgers(updated_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
