package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"gyanghar/internal/report"
	"gyanghar/internal/service"
)

// ReportHandler exposes weekly report administration endpoints
type ReportHandler struct {
	reportService *service.ReportService
	emailService  *service.EmailService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, emailService *service.EmailService) *ReportHandler {
	return &ReportHandler{reportService: reportService, emailService: emailService}
}

// TriggerWeeklyDigest handles POST /api/reports/weekly/send.
// The digest runs in the background; the response is an immediate ack.
func (h *ReportHandler) TriggerWeeklyDigest(w http.ResponseWriter, r *http.Request) {
	admin := GetUserFromContext(r.Context())
	log.Printf("Manual weekly report trigger by admin: %s", admin.FullName())

	go func() {
		if err := h.reportService.RunWeeklyDigest(context.Background()); err != nil {
			log.Printf("Error in manual weekly report sending: %v", err)
		}
	}()

	respondWithJSON(w, http.StatusAccepted, map[string]string{
		"message":      "Weekly report sending initiated. Check logs for progress.",
		"triggered_by": admin.FullName(),
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

// PreviewStudentReport handles GET /api/reports/weekly/preview/{studentId}.
// weekStart and weekEnd query parameters are required (YYYY-MM-DD).
func (h *ReportHandler) PreviewStudentReport(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseInt(r.PathValue("studentId"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid student ID", nil)
		return
	}

	weekStartStr := r.URL.Query().Get("weekStart")
	weekEndStr := r.URL.Query().Get("weekEnd")
	if weekStartStr == "" || weekEndStr == "" {
		respondWithError(w, http.StatusBadRequest, "weekStart and weekEnd query parameters are required (YYYY-MM-DD format)", nil)
		return
	}

	weekStart, err := report.ParseDate(weekStartStr)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid weekStart date", nil)
		return
	}
	weekEnd, err := report.ParseDate(weekEndStr)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid weekEnd date", nil)
		return
	}
	if weekEnd.Before(weekStart) {
		respondWithError(w, http.StatusBadRequest, "weekEnd must not be before weekStart", nil)
		return
	}

	sr, err := h.reportService.GenerateStudentReport(studentID, weekStart, weekEnd)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			respondWithError(w, http.StatusNotFound, "Student not found", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to generate report preview", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"student":       toUserResponse(&sr.Student),
		"summary":       summaryResponse(sr.Summary),
		"quality_score": sr.Score,
		"tier":          sr.Score.Tier(),
		"entries_count": len(sr.Entries),
		"total_days":    report.DaysInRange(sr.WeekStart, sr.WeekEnd),
		"week_period": map[string]string{
			"weekStart": weekStartStr,
			"weekEnd":   weekEndStr,
		},
	})
}

func summaryResponse(s report.WeekSummary) map[string]interface{} {
	return map[string]interface{}{
		"total_days":          s.TotalDays,
		"filled_days":         s.FilledDays,
		"completion_rate":     s.CompletionRate,
		"avg_wakeup_mins":     s.AvgWakeupMins,
		"mangala_aarti_count": s.MangalaAartiCount,
		"mangala_aarti_pct":   s.MangalaAartiPct,
		"zoom_katha_count":    s.ZoomKathaCount,
		"zoom_katha_pct":      s.ZoomKathaPct,
		"youtube_katha_count": s.YoutubeKathaCount,
		"youtube_katha_pct":   s.YoutubeKathaPct,
		"avg_puja_mins":       s.AvgPujaMins,
		"vachanamrut_count":   s.VachanamrutCount,
		"vachanamrut_pct":     s.VachanamrutPct,
		"meditation_count":    s.MeditationCount,
		"meditation_pct":      s.MeditationPct,
		"cheshta_count":       s.CheshtaCount,
		"cheshta_pct":         s.CheshtaPct,
		"avg_mansi_puja":      s.AvgMansiPuja,
		"avg_reading_mins":    s.AvgReadingMins,
		"avg_wasted_mins":     s.AvgWastedMins,
		"total_mantra_jap":    s.TotalMantraJap,
	}
}

// EmailStudentReport handles POST /api/reports/weekly/email/{studentId}
func (h *ReportHandler) EmailStudentReport(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseInt(r.PathValue("studentId"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid student ID", nil)
		return
	}

	if err := h.reportService.SendStudentReport(r.Context(), studentID); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			respondWithError(w, http.StatusNotFound, "Student not found", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to send student report", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Student report sent"})
}

// CronStatus handles GET /api/reports/cron/status
func (h *ReportHandler) CronStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.reportService.Status())
}

type testEmailRequest struct {
	To string `json:"to"`
}

// TestEmail handles POST /api/reports/email/test
func (h *ReportHandler) TestEmail(w http.ResponseWriter, r *http.Request) {
	var req testEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.To == "" {
		respondWithError(w, http.StatusBadRequest, "Recipient email is required", nil)
		return
	}

	if err := h.emailService.SendTestEmail(r.Context(), req.To); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to send test email", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Test email sent"})
}

// Health handles GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
