package database

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *PostgresDialect) RewriteQuery(query string) string {
	// PostgreSQL uses $1, $2, etc. instead of ?
	return rewritePlaceholdersToNumbered(query)
}

func (d *PostgresDialect) SupportsLastInsertId() bool {
	// PostgreSQL doesn't support LastInsertId(), needs RETURNING clause
	return false
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	// Configure connection pool for PostgreSQL
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// PostgreSQL has foreign keys enabled by default, no pragma needed
	return nil
}

func (d *PostgresDialect) MigrationsSubdir() string {
	return "postgres"
}

func (d *PostgresDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT UNIQUE NOT NULL,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *PostgresDialect) BoolValue(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (d *PostgresDialect) UpsertEntryQuery() string {
	return `
		INSERT INTO accountability_entries (
			user_id, entry_date, wakeup_time, mangala_aarti, morning_katha,
			morning_puja, meditation_mins, vachanamrut, mast_meditation, cheshta,
			mansi_puja_count, reading_time, wasted_time, mantra_jap, notes,
			filled_by_user_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, entry_date) DO UPDATE SET
			wakeup_time = EXCLUDED.wakeup_time,
			mangala_aarti = EXCLUDED.mangala_aarti,
			morning_katha = EXCLUDED.morning_katha,
			morning_puja = EXCLUDED.morning_puja,
			meditation_mins = EXCLUDED.meditation_mins,
			vachanamrut = EXCLUDED.vachanamrut,
			mast_meditation = EXCLUDED.mast_meditation,
			cheshta = EXCLUDED.cheshta,
			mansi_puja_count = EXCLUDED.mansi_puja_count,
			reading_time = EXCLUDED.reading_time,
			wasted_time = EXCLUDED.wasted_time,
			mantra_jap = EXCLUDED.mantra_jap,
			notes = EXCLUDED.notes,
			filled_by_user_id = EXCLUDED.filled_by_user_id,
			updated_at = CURRENT_TIMESTAMP
	`
}
