package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/robfig/cron/v3"

	"gyanghar/internal/models"
	"gyanghar/internal/report"
	"gyanghar/internal/repository"
)

// ErrNoRecipients is returned when a digest has nobody to go to
var ErrNoRecipients = errors.New("no recipients for weekly digest")

// ReportService generates and delivers weekly reports
type ReportService struct {
	userRepo       *repository.UserRepository
	entryRepo      *repository.EntryRepository
	assignmentRepo *repository.AssignmentRepository
	emailService   *EmailService

	schedule string
	timezone string
	cron     *cron.Cron
	entryID  cron.EntryID

	// now is swappable for tests
	now func() time.Time
}

// NewReportService creates a new report service
func NewReportService(userRepo *repository.UserRepository, entryRepo *repository.EntryRepository, assignmentRepo *repository.AssignmentRepository, emailService *EmailService, schedule, timezone string) *ReportService {
	return &ReportService{
		userRepo:       userRepo,
		entryRepo:      entryRepo,
		assignmentRepo: assignmentRepo,
		emailService:   emailService,
		schedule:       schedule,
		timezone:       timezone,
		now:            time.Now,
	}
}

// StartScheduler registers the weekly digest cron job and starts it.
// The schedule uses six fields with a leading seconds column.
func (s *ReportService) StartScheduler() error {
	loc, err := time.LoadLocation(s.timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %s: %w", s.timezone, err)
	}

	s.cron = cron.New(cron.WithSeconds(), cron.WithLocation(loc))
	s.entryID, err = s.cron.AddFunc(s.schedule, func() {
		log.Println("Weekly report cron job triggered")
		if err := s.RunWeeklyDigest(context.Background()); err != nil {
			log.Printf("Weekly digest run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule weekly reports: %w", err)
	}

	s.cron.Start()
	log.Printf("Weekly report cron job scheduled: %s (%s)", s.schedule, s.timezone)
	return nil
}

// StopScheduler stops the cron scheduler and waits for running jobs
func (s *ReportService) StopScheduler() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// CronStatus describes the scheduler for the admin status endpoint
type CronStatus struct {
	Active       bool      `json:"active"`
	Schedule     string    `json:"schedule"`
	Timezone     string    `json:"timezone"`
	NextRun      time.Time `json:"next_run,omitempty"`
	EmailEnabled bool      `json:"email_enabled"`
}

// Status reports the scheduler state
func (s *ReportService) Status() CronStatus {
	status := CronStatus{
		Active:       s.cron != nil,
		Schedule:     s.schedule,
		Timezone:     s.timezone,
		EmailEnabled: s.emailService.IsEnabled(),
	}
	if s.cron != nil {
		status.NextRun = s.cron.Entry(s.entryID).Next
	}
	return status
}

// RunWeeklyDigest builds last week's all-students summary and emails it
// to every approved poshak leader and admin. Any aggregation error
// aborts the whole run so a partial digest is never sent.
func (s *ReportService) RunWeeklyDigest(ctx context.Context) error {
	weekStart, weekEnd := report.PreviousWeek(s.now())
	log.Printf("Generating summary report for week: %s to %s",
		report.DateString(weekStart), report.DateString(weekEnd))

	digest, err := s.buildDigest(weekStart, weekEnd)
	if err != nil {
		return err
	}

	recipients, err := s.userRepo.GetLeaderRecipients()
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		log.Println("No poshak leaders or admins found to send report to")
		return ErrNoRecipients
	}

	emails := make([]string, 0, len(recipients))
	for _, r := range recipients {
		emails = append(emails, r.Email)
	}

	html := report.RenderDigest(digest, s.now())
	err = s.emailService.Send(ctx, Message{
		To:      emails,
		Subject: report.DigestSubject(weekStart, weekEnd),
		HTML:    html,
	})
	if err != nil {
		return err
	}

	log.Printf("Weekly summary report sent to %d recipients (%d students with data, %d with no data)",
		len(emails), len(digest.Reported), len(digest.NoData))
	return nil
}

func (s *ReportService) buildDigest(weekStart, weekEnd time.Time) (*report.Digest, error) {
	students, err := s.userRepo.GetActiveStudents()
	if err != nil {
		return nil, err
	}

	digest := report.NewDigest(weekStart, weekEnd)
	for _, student := range students {
		entries, err := s.entryRepo.GetEntriesInRange(student.ID,
			report.DateString(weekStart), report.DateString(weekEnd))
		if err != nil {
			return nil, fmt.Errorf("failed to load entries for student %d: %w", student.ID, err)
		}
		digest.AddStudent(*student, entryValues(entries))
	}
	digest.Sort()
	return digest, nil
}

// GenerateStudentReport builds one student's report for an arbitrary week
func (s *ReportService) GenerateStudentReport(studentID int64, weekStart, weekEnd time.Time) (report.StudentReport, error) {
	student, err := s.userRepo.GetUserByID(studentID)
	if err != nil {
		return report.StudentReport{}, err
	}
	if student == nil || student.Role != models.RoleStudent {
		return report.StudentReport{}, ErrStudentNotFound
	}

	entries, err := s.entryRepo.GetEntriesInRange(studentID,
		report.DateString(weekStart), report.DateString(weekEnd))
	if err != nil {
		return report.StudentReport{}, fmt.Errorf("failed to load entries for student %d: %w", studentID, err)
	}

	return report.BuildStudentReport(*student, entryValues(entries), weekStart, weekEnd), nil
}

func entryValues(entries []*models.Entry) []models.Entry {
	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, *e)
	}
	return out
}

// SendStudentReport emails one student their report for last week.
// The student's poshak leader and all admins are CC'd; if the student
// has no poshak leader, all leaders and admins are CC'd instead.
func (s *ReportService) SendStudentReport(ctx context.Context, studentID int64) error {
	weekStart, weekEnd := report.PreviousWeek(s.now())

	sr, err := s.GenerateStudentReport(studentID, weekStart, weekEnd)
	if err != nil {
		return err
	}

	cc, err := s.reportCcList(&sr.Student)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("📊 Weekly Adhyatmik Report - %s (%s - %s)",
		sr.Student.FullName(),
		weekStart.Format("02/01/2006"),
		weekEnd.Format("02/01/2006"))

	return s.emailService.Send(ctx, Message{
		To:      []string{sr.Student.Email},
		Cc:      cc,
		Subject: subject,
		HTML:    report.RenderStudentReport(sr, s.now()),
	})
}

// reportCcList resolves the CC recipients for a student's report,
// de-duplicated and excluding the student themselves
func (s *ReportService) reportCcList(student *models.User) ([]string, error) {
	var ccUsers []*models.User

	poshak, err := s.assignmentRepo.GetPoshakForStudent(student.ID)
	if err != nil {
		return nil, err
	}

	if poshak != nil {
		admins, err := s.userRepo.GetAdmins()
		if err != nil {
			return nil, err
		}
		ccUsers = append([]*models.User{poshak}, admins...)
	} else {
		leaders, err := s.userRepo.GetLeaderRecipients()
		if err != nil {
			return nil, err
		}
		ccUsers = leaders
	}

	seen := map[string]bool{student.Email: true}
	var cc []string
	for _, u := range ccUsers {
		if seen[u.Email] {
			continue
		}
		seen[u.Email] = true
		cc = append(cc, u.Email)
	}
	sort.Strings(cc)
	return cc, nil
}
