// internal/db/migrations.go
package db

import "fmt"

// members holds XP entries feeding the leaderboard; hr_records and
// lr_records hold per-member activity stats maintained by the bot.
// user_id is the Discord snowflake when known; rows may exist before the
// member has logged in, so only username is mandatory.
const rosterSchema = `
CREATE TABLE IF NOT EXISTS members (
    id          TEXT PRIMARY KEY,
    user_id     TEXT,
    username    TEXT NOT NULL,
    xp          INTEGER NOT NULL DEFAULT 0,
    created_at  TEXT DEFAULT (datetime('now')),
    updated_at  TEXT
);

CREATE INDEX IF NOT EXISTS idx_members_xp ON members(xp DESC);
CREATE INDEX IF NOT EXISTS idx_members_user_id ON members(user_id);

CREATE TABLE IF NOT EXISTS hr_records (
    id            TEXT PRIMARY KEY,
    user_id       TEXT,
    username      TEXT NOT NULL,
    tryouts       INTEGER NOT NULL DEFAULT 0,
    events        INTEGER NOT NULL DEFAULT 0,
    phases        INTEGER NOT NULL DEFAULT 0,
    courses       INTEGER NOT NULL DEFAULT 0,
    inspections   INTEGER NOT NULL DEFAULT 0,
    joint_events  INTEGER NOT NULL DEFAULT 0,
    created_at    TEXT DEFAULT (datetime('now')),
    updated_at    TEXT
);

CREATE INDEX IF NOT EXISTS idx_hr_records_user_id ON hr_records(user_id);

CREATE TABLE IF NOT EXISTS lr_records (
    id               TEXT PRIMARY KEY,
    user_id          TEXT,
    username         TEXT NOT NULL,
    activity         INTEGER NOT NULL DEFAULT 0,
    time_guarded     INTEGER NOT NULL DEFAULT 0,
    events_attended  INTEGER NOT NULL DEFAULT 0,
    created_at       TEXT DEFAULT (datetime('now')),
    updated_at       TEXT
);

CREATE INDEX IF NOT EXISTS idx_lr_records_user_id ON lr_records(user_id);
`

// RunMigrations creates the roster tables. Safe to run on every startup.
func (db *DB) RunMigrations() error {
	if _, err := db.Exec(rosterSchema); err != nil {
		return fmt.Errorf("failed to run roster migrations: %w", err)
	}
	return nil
}
