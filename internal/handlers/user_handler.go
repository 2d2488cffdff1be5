package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gyanghar/internal/models"
	"gyanghar/internal/repository"
)

// UserHandler exposes user administration endpoints
type UserHandler struct {
	userRepo       *repository.UserRepository
	assignmentRepo *repository.AssignmentRepository
}

// NewUserHandler creates a new user handler
func NewUserHandler(userRepo *repository.UserRepository, assignmentRepo *repository.AssignmentRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo, assignmentRepo: assignmentRepo}
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.ListUsers()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list users", err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"users": out})
}

// ApproveUser handles POST /api/users/{id}/approve
func (h *UserHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	if err := h.userRepo.ApproveUser(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondWithError(w, http.StatusNotFound, "User not found", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to approve user", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "User approved"})
}

type poshakAssignmentRequest struct {
	StudentID int64 `json:"student_id"`
	LeaderID  int64 `json:"leader_id"`
}

// AssignPoshak handles POST /api/assignments/poshak
func (h *UserHandler) AssignPoshak(w http.ResponseWriter, r *http.Request) {
	var req poshakAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	student, err := h.userRepo.GetUserByID(req.StudentID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to look up student", err)
		return
	}
	if student == nil || student.Role != models.RoleStudent {
		respondWithError(w, http.StatusNotFound, "Student not found", nil)
		return
	}

	leader, err := h.userRepo.GetUserByID(req.LeaderID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to look up leader", err)
		return
	}
	if leader == nil || !leader.IsLeader() {
		respondWithError(w, http.StatusNotFound, "Leader not found", nil)
		return
	}

	if err := h.assignmentRepo.SetPoshakForStudent(req.StudentID, req.LeaderID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to assign poshak leader", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Poshak leader assigned"})
}

// ListPoshakAssignments handles GET /api/assignments/poshak
func (h *UserHandler) ListPoshakAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.assignmentRepo.ListPoshakAssignments()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list assignments", err)
		return
	}

	type assignmentResponse struct {
		StudentID int64 `json:"student_id"`
		LeaderID  int64 `json:"leader_id"`
	}
	out := make([]assignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, assignmentResponse{StudentID: a.AssignedStudentID, LeaderID: a.PoshakID})
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"assignments": out})
}

type monitorAssignmentRequest struct {
	MonitorID int64 `json:"monitor_id"`
	StudentID int64 `json:"student_id"`
}

// AssignMonitor handles POST /api/assignments/monitor
func (h *UserHandler) AssignMonitor(w http.ResponseWriter, r *http.Request) {
	var req monitorAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	for _, id := range []int64{req.MonitorID, req.StudentID} {
		u, err := h.userRepo.GetUserByID(id)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to look up user", err)
			return
		}
		if u == nil || u.Role != models.RoleStudent {
			respondWithError(w, http.StatusNotFound, "Student not found", nil)
			return
		}
	}

	if err := h.assignmentRepo.SetMonitorForStudent(req.MonitorID, req.StudentID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to assign monitor", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Monitor assigned"})
}
