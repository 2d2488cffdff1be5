package repository

import (
	"database/sql"
	"fmt"

	"gyanghar/internal/database"
	"gyanghar/internal/models"
)

// AssignmentRepository handles poshak and monitor assignments
type AssignmentRepository struct {
	db *database.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *database.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// GetPoshakForStudent returns the student's assigned poshak leader,
// or nil if the student is unassigned
func (r *AssignmentRepository) GetPoshakForStudent(studentID int64) (*models.User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name, u.role,
			u.room_number, u.is_approved, u.is_active, u.created_at, u.updated_at
		FROM poshak_assignments pa
		JOIN users u ON u.id = pa.leader_id
		WHERE pa.student_id = ?
	`
	return scanUser(r.db.QueryRow(query, studentID))
}

// SetPoshakForStudent assigns or reassigns a student's poshak leader.
// One leader per student, so any existing assignment is replaced; the
// delete and insert run in a transaction so a student is never left
// unassigned on failure.
func (r *AssignmentRepository) SetPoshakForStudent(studentID, leaderID int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM poshak_assignments WHERE student_id = ?", studentID); err != nil {
		return fmt.Errorf("failed to clear poshak assignment: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO poshak_assignments (student_id, leader_id) VALUES (?, ?)", studentID, leaderID); err != nil {
		return fmt.Errorf("failed to create poshak assignment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit poshak assignment: %w", err)
	}
	return nil
}

// ListPoshakAssignments returns all poshak assignments
func (r *AssignmentRepository) ListPoshakAssignments() ([]*models.PoshakAssignment, error) {
	query := "SELECT id, student_id, leader_id, created_at FROM poshak_assignments ORDER BY id"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list poshak assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.PoshakAssignment
	for rows.Next() {
		a := &models.PoshakAssignment{}
		if err := rows.Scan(&a.ID, &a.AssignedStudentID, &a.PoshakID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poshak assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate poshak assignments: %w", err)
	}
	return assignments, nil
}

// CanMonitorFill reports whether monitor is assigned to fill entries for student
func (r *AssignmentRepository) CanMonitorFill(monitorID, studentID int64) (bool, error) {
	var one int
	query := "SELECT 1 FROM monitor_assignments WHERE monitor_id = ? AND student_id = ?"
	err := r.db.QueryRow(query, monitorID, studentID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check monitor assignment: %w", err)
	}
	return true, nil
}

// SetMonitorForStudent lets a monitor fill entries for a student
func (r *AssignmentRepository) SetMonitorForStudent(monitorID, studentID int64) error {
	assigned, err := r.CanMonitorFill(monitorID, studentID)
	if err != nil {
		return err
	}
	if assigned {
		return nil
	}
	query := "INSERT INTO monitor_assignments (monitor_id, student_id) VALUES (?, ?)"
	if _, err := r.db.Exec(query, monitorID, studentID); err != nil {
		return fmt.Errorf("failed to create monitor assignment: %w", err)
	}
	return nil
}
