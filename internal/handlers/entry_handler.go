package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"gyanghar/internal/models"
	"gyanghar/internal/repository"
	"gyanghar/internal/service"
)

// EntryHandler exposes accountability entry endpoints
type EntryHandler struct {
	entryService *service.EntryService
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

type entryRequest struct {
	UserID         int64   `json:"user_id"`
	EntryDate      string  `json:"entry_date"`
	WakeupTime     *string `json:"wakeup_time"`
	MangalaAarti   bool    `json:"mangala_aarti"`
	MorningKatha   string  `json:"morning_katha"`
	MorningPuja    *string `json:"morning_puja"`
	MeditationMins *int    `json:"meditation_mins"`
	Vachanamrut    bool    `json:"vachanamrut"`
	MastMeditation bool    `json:"mast_meditation"`
	Cheshta        bool    `json:"cheshta"`
	MansiPujaCount int     `json:"mansi_puja_count"`
	ReadingTime    *string `json:"reading_time"`
	WastedTime     *string `json:"wasted_time"`
	MantraJap      int     `json:"mantra_jap"`
	Notes          string  `json:"notes"`
}

type entryResponse struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"user_id"`
	EntryDate      string  `json:"entry_date"`
	WakeupTime     *string `json:"wakeup_time"`
	MangalaAarti   bool    `json:"mangala_aarti"`
	MorningKatha   string  `json:"morning_katha"`
	MorningPuja    *string `json:"morning_puja"`
	MeditationMins *int    `json:"meditation_mins"`
	Vachanamrut    bool    `json:"vachanamrut"`
	MastMeditation bool    `json:"mast_meditation"`
	Cheshta        bool    `json:"cheshta"`
	MansiPujaCount int     `json:"mansi_puja_count"`
	ReadingTime    *string `json:"reading_time"`
	WastedTime     *string `json:"wasted_time"`
	MantraJap      int     `json:"mantra_jap"`
	Notes          string  `json:"notes"`
	FilledByUserID int64   `json:"filled_by_user_id"`
}

func toEntryResponse(e *models.Entry) entryResponse {
	return entryResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		EntryDate:      e.EntryDate,
		WakeupTime:     e.WakeupTime,
		MangalaAarti:   e.MangalaAarti,
		MorningKatha:   e.MorningKatha,
		MorningPuja:    e.MorningPuja,
		MeditationMins: e.MeditationMins,
		Vachanamrut:    e.Vachanamrut,
		MastMeditation: e.MastMeditation,
		Cheshta:        e.Cheshta,
		MansiPujaCount: e.MansiPujaCount,
		ReadingTime:    e.ReadingTime,
		WastedTime:     e.WastedTime,
		MantraJap:      e.MantraJap,
		Notes:          e.Notes,
		FilledByUserID: e.FilledByUserID,
	}
}

// SubmitEntry handles POST /api/accountability.
// Submitting twice for the same date replaces the earlier entry.
func (h *EntryHandler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	actor := GetUserFromContext(r.Context())

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry := &models.Entry{
		UserID:         req.UserID,
		EntryDate:      req.EntryDate,
		WakeupTime:     req.WakeupTime,
		MangalaAarti:   req.MangalaAarti,
		MorningKatha:   req.MorningKatha,
		MorningPuja:    req.MorningPuja,
		MeditationMins: req.MeditationMins,
		Vachanamrut:    req.Vachanamrut,
		MastMeditation: req.MastMeditation,
		Cheshta:        req.Cheshta,
		MansiPujaCount: req.MansiPujaCount,
		ReadingTime:    req.ReadingTime,
		WastedTime:     req.WastedTime,
		MantraJap:      req.MantraJap,
		Notes:          req.Notes,
	}

	if err := h.entryService.SubmitEntry(actor, entry); err != nil {
		var validationErrs validator.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			respondWithError(w, http.StatusBadRequest, "Invalid entry: "+validationErrs.Error(), nil)
		case errors.Is(err, service.ErrNotAuthorized):
			respondWithError(w, http.StatusForbidden, "Not authorized to fill this entry", nil)
		case errors.Is(err, service.ErrStudentNotFound):
			respondWithError(w, http.StatusNotFound, "Student not found", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to save entry", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Entry saved"})
}

// ListEntries handles GET /api/accountability/list
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	actor := GetUserFromContext(r.Context())

	filter := repository.EntryFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if v := r.URL.Query().Get("user_id"); v != "" {
		userID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid user_id", nil)
			return
		}
		filter.UserID = userID
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		filter.Limit = limit
	}

	entries, err := h.entryService.ListEntries(actor, filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list entries", err)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"entries": out})
}
