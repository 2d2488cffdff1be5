package repository

import (
	"database/sql"
	"fmt"

	"gyanghar/internal/database"
	"gyanghar/internal/models"
)

// EntryRepository handles database operations for accountability entries
type EntryRepository struct {
	db *database.DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *database.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

const entryColumns = `id, user_id, entry_date, wakeup_time, mangala_aarti, morning_katha,
	morning_puja, meditation_mins, vachanamrut, mast_meditation, cheshta,
	mansi_puja_count, reading_time, wasted_time, mantra_jap, notes,
	filled_by_user_id, created_at, updated_at`

func scanEntries(rows *sql.Rows) ([]*models.Entry, error) {
	var entries []*models.Entry
	for rows.Next() {
		e := &models.Entry{}
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.EntryDate,
			&e.WakeupTime,
			&e.MangalaAarti,
			&e.MorningKatha,
			&e.MorningPuja,
			&e.MeditationMins,
			&e.Vachanamrut,
			&e.MastMeditation,
			&e.Cheshta,
			&e.MansiPujaCount,
			&e.ReadingTime,
			&e.WastedTime,
			&e.MantraJap,
			&e.Notes,
			&e.FilledByUserID,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

// UpsertEntry inserts an entry, or replaces the existing one for the
// same (user, date). The statement is dialect specific.
func (r *EntryRepository) UpsertEntry(e *models.Entry) error {
	query := r.db.Dialect.UpsertEntryQuery()
	_, err := r.db.Exec(query,
		e.UserID, e.EntryDate, e.WakeupTime, e.MangalaAarti, e.MorningKatha,
		e.MorningPuja, e.MeditationMins, e.Vachanamrut, e.MastMeditation, e.Cheshta,
		e.MansiPujaCount, e.ReadingTime, e.WastedTime, e.MantraJap, e.Notes,
		e.FilledByUserID)
	if err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

// GetEntry retrieves the entry for one user on one date
func (r *EntryRepository) GetEntry(userID int64, date string) (*models.Entry, error) {
	query := "SELECT " + entryColumns + " FROM accountability_entries WHERE user_id = ? AND entry_date = ?"
	rows, err := r.db.Query(query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

// GetEntriesInRange returns one user's entries between two dates inclusive,
// ordered by date
func (r *EntryRepository) GetEntriesInRange(userID int64, startDate, endDate string) ([]*models.Entry, error) {
	query := "SELECT " + entryColumns + ` FROM accountability_entries
		WHERE user_id = ? AND entry_date BETWEEN ? AND ?
		ORDER BY entry_date`
	rows, err := r.db.Query(query, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries in range: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// EntryFilter narrows ListEntries results. Zero values mean no filter.
type EntryFilter struct {
	UserID    int64
	StartDate string
	EndDate   string
	Limit     int
}

// ListEntries returns entries matching the filter, newest first
func (r *EntryRepository) ListEntries(filter EntryFilter) ([]*models.Entry, error) {
	query := "SELECT " + entryColumns + " FROM accountability_entries WHERE 1=1"
	var args []interface{}

	if filter.UserID > 0 {
		query += " AND user_id = ?"
		args = append(args, filter.UserID)
	}
	if filter.StartDate != "" {
		query += " AND entry_date >= ?"
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		query += " AND entry_date <= ?"
		args = append(args, filter.EndDate)
	}
	query += " ORDER BY entry_date DESC, user_id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}
