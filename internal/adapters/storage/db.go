package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// migration is a single schema change applied in order.
type migration struct {
	version int
	name    string
	apply   func(*sql.DB) error
}

// migrations is the ordered migration chain. Append only; never edit an
// applied migration.
var migrations = []migration{
	{1, "baseline schema", migrateBaseline},
}

// LatestSchemaVersion returns the version the database is migrated to.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion reads the current schema version, 0 if never migrated.
// PRE: db is a valid database connection
// POST: Returns the recorded version or 0
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&exists)
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, nil
	}
	var version int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	return version, err
}

// MigrateDB applies all pending migrations.
// PRE: db is a valid database connection
// POST: Schema is at LatestSchemaVersion; idempotent on re-run
func MigrateDB(db *sql.DB, dbPath string) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := m.apply(db); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
		slog.Info("db_migration_applied", "version", m.version, "name", m.name, "db", dbPath)
	}
	return nil
}

// migrateBaseline creates the full baseline schema.
// PRE: db is a valid database connection
// POST: All tables exist; uses IF NOT EXISTS so pre-migration databases
// upgrade in place
func migrateBaseline(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		is_trainer INTEGER NOT NULL DEFAULT 0,
		is_gymmanager INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS trainer_profile (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL UNIQUE,
		experience_years INTEGER NOT NULL DEFAULT 0,
		specialty TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (account_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS gym (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		owner_account_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (owner_account_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS gym_membership (
		account_id TEXT NOT NULL,
		gym_id TEXT NOT NULL,
		joined_at TEXT NOT NULL,
		PRIMARY KEY (account_id, gym_id),
		FOREIGN KEY (account_id) REFERENCES account(id),
		FOREIGN KEY (gym_id) REFERENCES gym(id)
	);

	CREATE TABLE IF NOT EXISTS notice (
		id TEXT PRIMARY KEY,
		gym_id TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'draft',
		created_by TEXT NOT NULL,
		created_at TEXT NOT NULL,
		published_at TEXT,
		FOREIGN KEY (gym_id) REFERENCES gym(id)
	);

	CREATE TABLE IF NOT EXISTS audit_event (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		category TEXT NOT NULL,
		action TEXT NOT NULL,
		severity TEXT NOT NULL DEFAULT 'info',
		actor_id TEXT NOT NULL DEFAULT '',
		actor_email TEXT NOT NULL DEFAULT '',
		resource_id TEXT NOT NULL DEFAULT '',
		resource_type TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		ip_address TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 5,
		last_attempted_at TEXT,
		created_at TEXT NOT NULL,
		external_id TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_gym_city ON gym(city);
	CREATE INDEX IF NOT EXISTS idx_gym_owner ON gym(owner_account_id);
	CREATE INDEX IF NOT EXISTS idx_membership_account ON gym_membership(account_id);
	CREATE INDEX IF NOT EXISTS idx_notice_gym ON notice(gym_id);
	CREATE INDEX IF NOT EXISTS idx_outbox_status ON outbox(status);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create baseline schema: %w", err)
	}
	return nil
}
