package database

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect implements Dialect for SQLite
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

func (d *SQLiteDialect) DSN(config DialectConfig) string {
	return config.Path
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	// SQLite uses ? placeholders, no rewrite needed
	return query
}

func (d *SQLiteDialect) SupportsLastInsertId() bool {
	return true
}

func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return err
	}

	return nil
}

func (d *SQLiteDialect) MigrationsSubdir() string {
	return "sqlite"
}

func (d *SQLiteDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT UNIQUE NOT NULL,
			executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *SQLiteDialect) BoolValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (d *SQLiteDialect) UpsertEntryQuery() string {
	return `
		INSERT INTO accountability_entries (
			user_id, entry_date, wakeup_time, mangala_aarti, morning_katha,
			morning_puja, meditation_mins, vachanamrut, mast_meditation, cheshta,
			mansi_puja_count, reading_time, wasted_time, mantra_jap, notes,
			filled_by_user_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, entry_date) DO UPDATE SET
			wakeup_time = excluded.wakeup_time,
			mangala_aarti = excluded.mangala_aarti,
			morning_katha = excluded.morning_katha,
			morning_puja = excluded.morning_puja,
			meditation_mins = excluded.meditation_mins,
			vachanamrut = excluded.vachanamrut,
			mast_meditation = excluded.mast_meditation,
			cheshta = excluded.cheshta,
			mansi_puja_count = excluded.mansi_puja_count,
			reading_time = excluded.reading_time,
			wasted_time = excluded.wasted_time,
			mantra_jap = excluded.mantra_jap,
			notes = excluded.notes,
			filled_by_user_id = excluded.filled_by_user_id,
			updated_at = CURRENT_TIMESTAMP
	`
}
