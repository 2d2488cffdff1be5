package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"gyanghar/internal/models"
)

// fixedNow is a Monday, so the report window is 2025-06-09 to 2025-06-15
var fixedNow = time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)

func newReportService(env *testEnv) *ReportService {
	s := NewReportService(env.userRepo, env.entryRepo, env.assignmentRepo, env.emailService,
		"0 0 18 * * 1", "Asia/Kolkata")
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestBuildDigestPartitionsRoster(t *testing.T) {
	env := newTestEnv(t)
	s := newReportService(env)

	env.createUser(t, "admin@example.com", "Asha", "Admin", models.RoleAdmin)
	active := env.createUser(t, "active@example.com", "Aman", "Student", models.RoleStudent)
	idle := env.createUser(t, "idle@example.com", "Isha", "Student", models.RoleStudent)

	if err := env.entryRepo.UpsertEntry(testEntry(active.ID, "2025-06-10")); err != nil {
		t.Fatalf("UpsertEntry() error = %v", err)
	}

	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	digest, err := s.buildDigest(weekStart, weekEnd)
	if err != nil {
		t.Fatalf("buildDigest() error = %v", err)
	}

	if digest.Total != 2 {
		t.Errorf("Total = %d, want 2", digest.Total)
	}
	if len(digest.Reported) != 1 || digest.Reported[0].Student.ID != active.ID {
		t.Errorf("Reported = %+v, want only the active student", digest.Reported)
	}
	if len(digest.NoData) != 1 || digest.NoData[0].ID != idle.ID {
		t.Errorf("NoData = %+v, want only the idle student", digest.NoData)
	}
}

func TestRunWeeklyDigest(t *testing.T) {
	env := newTestEnv(t)
	s := newReportService(env)

	env.createUser(t, "admin@example.com", "Asha", "Admin", models.RoleAdmin)
	student := env.createUser(t, "student@example.com", "Sanjay", "Student", models.RoleStudent)
	if err := env.entryRepo.UpsertEntry(testEntry(student.ID, "2025-06-10")); err != nil {
		t.Fatalf("UpsertEntry() error = %v", err)
	}

	// Email service is disabled, so a successful run only exercises the
	// aggregation and recipient resolution
	if err := s.RunWeeklyDigest(context.Background()); err != nil {
		t.Errorf("RunWeeklyDigest() error = %v", err)
	}
}

func TestRunWeeklyDigestNoRecipients(t *testing.T) {
	env := newTestEnv(t)
	s := newReportService(env)

	admin := env.createUser(t, "admin@example.com", "Asha", "Admin", models.RoleAdmin)
	env.createUser(t, "student@example.com", "Sanjay", "Student", models.RoleStudent)

	// Deactivate the only leader account
	if _, err := env.db.Exec("UPDATE users SET is_active = 0 WHERE id = ?", admin.ID); err != nil {
		t.Fatalf("Failed to deactivate admin: %v", err)
	}

	if err := s.RunWeeklyDigest(context.Background()); !errors.Is(err, ErrNoRecipients) {
		t.Errorf("RunWeeklyDigest() error = %v, want ErrNoRecipients", err)
	}
}

func TestGenerateStudentReportUnknownStudent(t *testing.T) {
	env := newTestEnv(t)
	s := newReportService(env)

	admin := env.createUser(t, "admin@example.com", "Asha", "Admin", models.RoleAdmin)

	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	if _, err := s.GenerateStudentReport(9999, weekStart, weekEnd); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("GenerateStudentReport(9999) error = %v, want ErrStudentNotFound", err)
	}

	// A non-student account is not a valid report subject either
	if _, err := s.GenerateStudentReport(admin.ID, weekStart, weekEnd); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("GenerateStudentReport(admin) error = %v, want ErrStudentNotFound", err)
	}
}

func TestGenerateStudentReportEmptyWeek(t *testing.T) {
	env := newTestEnv(t)
	s := newReportService(env)

	env.createUser(t, "admin@example.com", "Asha", "Admin", models.RoleAdmin)
	student := env.createUser(t, "student@example.com", "Sanjay", "Student", models.RoleStudent)

	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	sr, err := s.GenerateStudentReport(student.ID, weekStart, weekEnd)
	if err != nil {
		t.Fatalf("GenerateStudentReport() error = %v", err)
	}
	if len(sr.Entries) != 0 {
		t.Errorf("Entries = %d, want 0", len(sr.Entries))
	}
	if sr.Summary.CompletionRate != 0 {
		t.Errorf("CompletionRate = %d, want 0", sr.Summary.CompletionRate)
	}
}

func TestReportCcListWithPoshak(t *testing.T) {
	env := newTestEnv(t)
	s := newReportService(env)

	admin := env.createUser(t, "admin@example.com", "Asha", "Admin", models.RoleAdmin)
	leader := env.createUser(t, "leader@example.com", "Lila", "Leader", models.RolePoshakLeader)
	otherLeader := env.createUser(t, "other@example.com", "Omi", "Leader", models.RolePoshakLeader)
	student := env.createUser(t, "student@example.com", "Sanjay", "Student", models.RoleStudent)
	_ = otherLeader

	if err := env.assignmentRepo.SetPoshakForStudent(student.ID, leader.ID); err != nil {
		t.Fatalf("SetPoshakForStudent() error = %v", err)
	}

	cc, err := s.reportCcList(student)
	if err != nil {
		t.Fatalf("reportCcList() error = %v", err)
	}

	// Assigned leader plus admins, sorted; other leaders stay out
	want := []string{admin.Email, leader.Email}
	if !reflect.DeepEqual(cc, want) {
		t.Errorf("reportCcList() = %v, want %v", cc, want)
	}
}

func TestReportCcListWithoutPoshak(t *testing.T) {
	env := newTestEnv(t)
	s := newReportService(env)

	admin := env.createUser(t, "admin@example.com", "Asha", "Admin", models.RoleAdmin)
	leader := env.createUser(t, "leader@example.com", "Lila", "Leader", models.RolePoshakLeader)
	student := env.createUser(t, "student@example.com", "Sanjay", "Student", models.RoleStudent)

	cc, err := s.reportCcList(student)
	if err != nil {
		t.Fatalf("reportCcList() error = %v", err)
	}

	// No poshak assigned: all leaders and admins get CC'd
	want := []string{admin.Email, leader.Email}
	if !reflect.DeepEqual(cc, want) {
		t.Errorf("reportCcList() = %v, want %v", cc, want)
	}
}

func TestReportCcListDeduplicates(t *testing.T) {
	env := newTestEnv(t)
	s := newReportService(env)

	admin := env.createUser(t, "admin@example.com", "Asha", "Admin", models.RoleAdmin)
	student := env.createUser(t, "student@example.com", "Sanjay", "Student", models.RoleStudent)

	// The admin is also the student's poshak leader; they must appear once
	if err := env.assignmentRepo.SetPoshakForStudent(student.ID, admin.ID); err != nil {
		t.Fatalf("SetPoshakForStudent() error = %v", err)
	}

	cc, err := s.reportCcList(student)
	if err != nil {
		t.Fatalf("reportCcList() error = %v", err)
	}
	want := []string{admin.Email}
	if !reflect.DeepEqual(cc, want) {
		t.Errorf("reportCcList() = %v, want %v", cc, want)
	}
}

func TestSchedulerStatus(t *testing.T) {
	env := newTestEnv(t)
	s := newReportService(env)

	status := s.Status()
	if status.Active {
		t.Error("Status().Active = true before StartScheduler")
	}
	if status.Schedule != "0 0 18 * * 1" {
		t.Errorf("Schedule = %q", status.Schedule)
	}
	if status.Timezone != "Asia/Kolkata" {
		t.Errorf("Timezone = %q", status.Timezone)
	}
	if status.EmailEnabled {
		t.Error("EmailEnabled = true for a disabled email service")
	}

	if err := s.StartScheduler(); err != nil {
		t.Fatalf("StartScheduler() error = %v", err)
	}
	defer s.StopScheduler()

	status = s.Status()
	if !status.Active {
		t.Error("Status().Active = false after StartScheduler")
	}
	if status.NextRun.IsZero() {
		t.Error("NextRun is zero after StartScheduler")
	}
}
