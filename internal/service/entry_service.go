package service

import (
	"errors"
	"fmt"

	"gyanghar/internal/models"
	"gyanghar/internal/repository"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrNotAuthorized   = errors.New("not authorized to fill this entry")
)

// EntryService handles accountability entry submission and listing
type EntryService struct {
	entryRepo      *repository.EntryRepository
	userRepo       *repository.UserRepository
	assignmentRepo *repository.AssignmentRepository
}

// NewEntryService creates a new entry service
func NewEntryService(entryRepo *repository.EntryRepository, userRepo *repository.UserRepository, assignmentRepo *repository.AssignmentRepository) *EntryService {
	return &EntryService{
		entryRepo:      entryRepo,
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
	}
}

// SubmitEntry validates and upserts an entry. The actor may fill their
// own entry; admins, poshak leaders, and assigned monitors may fill on
// behalf of a student.
func (s *EntryService) SubmitEntry(actor *models.User, entry *models.Entry) error {
	if entry.UserID == 0 {
		entry.UserID = actor.ID
	}
	entry.FilledByUserID = actor.ID

	if err := s.authorizeFill(actor, entry.UserID); err != nil {
		return err
	}

	target, err := s.userRepo.GetUserByID(entry.UserID)
	if err != nil {
		return fmt.Errorf("failed to get target user: %w", err)
	}
	if target == nil {
		return ErrStudentNotFound
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	return s.entryRepo.UpsertEntry(entry)
}

func (s *EntryService) authorizeFill(actor *models.User, targetID int64) error {
	if actor.ID == targetID {
		return nil
	}
	if actor.IsLeader() {
		return nil
	}

	assigned, err := s.assignmentRepo.CanMonitorFill(actor.ID, targetID)
	if err != nil {
		return err
	}
	if !assigned {
		return ErrNotAuthorized
	}
	return nil
}

// ListEntries returns entries visible to the actor. Students only see
// their own; leaders and admins can filter by student.
func (s *EntryService) ListEntries(actor *models.User, filter repository.EntryFilter) ([]*models.Entry, error) {
	if !actor.IsLeader() {
		filter.UserID = actor.ID
	}
	return s.entryRepo.ListEntries(filter)
}
