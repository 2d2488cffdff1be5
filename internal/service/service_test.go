package service

import (
	"path/filepath"
	"testing"

	"gyanghar/internal/database"
	"gyanghar/internal/models"
	"gyanghar/internal/repository"
	"gyanghar/internal/security"
)

type testEnv struct {
	db             *database.DB
	userRepo       *repository.UserRepository
	entryRepo      *repository.EntryRepository
	assignmentRepo *repository.AssignmentRepository
	emailService   *EmailService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "service_test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations/sqlite"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Disabled email service: sends are logged and dropped
	emailService, err := NewEmailService("", "", "", "", false)
	if err != nil {
		t.Fatalf("Failed to create email service: %v", err)
	}

	return &testEnv{
		db:             db,
		userRepo:       repository.NewUserRepository(db),
		entryRepo:      repository.NewEntryRepository(db),
		assignmentRepo: repository.NewAssignmentRepository(db),
		emailService:   emailService,
	}
}

// createUser inserts an approved, active user with the given role.
// The first insert in a fresh database is forced to admin by the
// repository, so tests create a throwaway admin first when they need
// non-admin roles.
func (env *testEnv) createUser(t *testing.T, email, firstName, lastName, role string) *models.User {
	t.Helper()
	hash, err := security.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user, err := env.userRepo.CreateUser(&models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		IsApproved:   true,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	if user.Role != role {
		t.Fatalf("User %s created with role %q, want %q", email, user.Role, role)
	}
	return user
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func testEntry(userID int64, date string) *models.Entry {
	return &models.Entry{
		UserID:         userID,
		EntryDate:      date,
		WakeupTime:     strPtr("06:00"),
		MangalaAarti:   true,
		MorningKatha:   models.KathaZoom,
		MorningPuja:    strPtr("00:30"),
		MeditationMins: intPtr(15),
		Vachanamrut:    true,
		MastMeditation: true,
		Cheshta:        true,
		MansiPujaCount: 5,
		ReadingTime:    strPtr("01:00"),
		WastedTime:     strPtr("00:10"),
		MantraJap:      25,
	}
}
