package repository

import (
	"database/sql"
	"fmt"
	"time"

	"gyanghar/internal/database"
	"gyanghar/internal/models"
)

// UserRepository handles database operations for users and password reset tokens
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, password_hash, first_name, last_name, role, room_number, is_approved, is_active, created_at, updated_at"

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.RoomNumber,
		&user.IsApproved,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func scanUsers(rows *sql.Rows) ([]*models.User, error) {
	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.FirstName,
			&user.LastName,
			&user.Role,
			&user.RoomNumber,
			&user.IsApproved,
			&user.IsActive,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// CreateUser inserts a new user into the database
func (r *UserRepository) CreateUser(user *models.User) (*models.User, error) {
	// The first account ever created becomes an approved admin
	var userCount int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if userCount == 0 {
		user.Role = models.RoleAdmin
		user.IsApproved = true
	}

	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, role, room_number, is_approved, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Role, user.RoomNumber, user.IsApproved, user.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = id
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return user, nil
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return scanUser(r.db.QueryRow(query, email))
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return scanUser(r.db.QueryRow(query, id))
}

// ListUsers returns all users ordered by name
func (r *UserRepository) ListUsers() ([]*models.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY first_name, last_name"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

// GetActiveStudents returns all approved, active students ordered by name.
// This is the weekly report roster.
func (r *UserRepository) GetActiveStudents() ([]*models.User, error) {
	query := "SELECT " + userColumns + ` FROM users
		WHERE role = ? AND is_approved = ? AND is_active = ?
		ORDER BY first_name, last_name`
	rows, err := r.db.Query(query, models.RoleStudent, true, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list active students: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

// GetLeaderRecipients returns all approved, active poshak leaders and admins.
// These receive the weekly digest email.
func (r *UserRepository) GetLeaderRecipients() ([]*models.User, error) {
	query := "SELECT " + userColumns + ` FROM users
		WHERE role IN (?, ?) AND is_approved = ? AND is_active = ?
		ORDER BY first_name, last_name`
	rows, err := r.db.Query(query, models.RolePoshakLeader, models.RoleAdmin, true, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list leader recipients: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

// GetAdmins returns all approved, active admins
func (r *UserRepository) GetAdmins() ([]*models.User, error) {
	query := "SELECT " + userColumns + ` FROM users
		WHERE role = ? AND is_approved = ? AND is_active = ?
		ORDER BY first_name, last_name`
	rows, err := r.db.Query(query, models.RoleAdmin, true, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

// ApproveUser marks a pending account as approved
func (r *UserRepository) ApproveUser(id int64) error {
	query := "UPDATE users SET is_approved = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	result, err := r.db.Exec(query, true, id)
	if err != nil {
		return fmt.Errorf("failed to approve user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check approval result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(userID int64, passwordHash string) error {
	query := "UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, passwordHash, userID); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// CreateResetToken stores a password reset token
func (r *UserRepository) CreateResetToken(token *models.PasswordResetToken) error {
	query := "INSERT INTO password_reset_tokens (user_id, token, expires_at) VALUES (?, ?, ?)"
	if _, err := r.db.Exec(query, token.UserID, token.Token, token.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	return nil
}

// GetResetToken retrieves an unused password reset token
func (r *UserRepository) GetResetToken(token string) (*models.PasswordResetToken, error) {
	query := `
		SELECT token, user_id, expires_at, created_at, used
		FROM password_reset_tokens
		WHERE token = ? AND used = ?
	`
	t := &models.PasswordResetToken{}
	err := r.db.QueryRow(query, token, false).Scan(&t.Token, &t.UserID, &t.ExpiresAt, &t.CreatedAt, &t.Used)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	return t, nil
}

// MarkResetTokenUsed invalidates a reset token after a successful reset
func (r *UserRepository) MarkResetTokenUsed(token string) error {
	query := "UPDATE password_reset_tokens SET used = ? WHERE token = ?"
	if _, err := r.db.Exec(query, true, token); err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}
	return nil
}

// DeleteExpiredResetTokens removes tokens past their expiry
func (r *UserRepository) DeleteExpiredResetTokens() error {
	query := "DELETE FROM password_reset_tokens WHERE expires_at < ?"
	if _, err := r.db.Exec(query, time.Now()); err != nil {
		return fmt.Errorf("failed to delete expired reset tokens: %w", err)
	}
	return nil
}
