package report

import (
	"fmt"
	"strings"
	"time"

	"gyanghar/internal/models"
)

// StudentReport is everything needed to render one student's weekly report
type StudentReport struct {
	Student   models.User
	WeekStart time.Time
	WeekEnd   time.Time
	Entries   []models.Entry
	Summary   WeekSummary
	Score     QualityScore
}

// BuildStudentReport aggregates a student's entries for a window and
// computes their quality score
func BuildStudentReport(student models.User, entries []models.Entry, weekStart, weekEnd time.Time) StudentReport {
	summary := AggregateWeek(entries, DaysInRange(weekStart, weekEnd))
	return StudentReport{
		Student:   student,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Entries:   entries,
		Summary:   summary,
		Score:     ComputeQualityScore(summary),
	}
}

// DigestSubject builds the digest email subject line. The format is fixed
// for compatibility with existing mail filters.
func DigestSubject(weekStart, weekEnd time.Time) string {
	return fmt.Sprintf("📊 Weekly Adhyatmik Summary - All Students (%s - %s)",
		formatShortDate(weekStart), formatShortDate(weekEnd))
}

// RenderDigest renders the all-students summary email. Output is
// deterministic for fixed inputs; generatedAt is the only embedded
// timestamp.
func RenderDigest(d *Digest, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString(emailStyles)
	b.WriteString(fmt.Sprintf(`
    <div class="header">
      <h1 style="margin: 0; font-size: 32px;">📊 Weekly Adhyatmik Summary Report</h1>
      <p style="margin: 10px 0 0 0; font-size: 18px; opacity: 0.9;">%s - %s</p>
    </div>
`, formatShortDate(d.WeekStart), formatShortDate(d.WeekEnd)))

	b.WriteString(fmt.Sprintf(`
    <div class="week-info">
      <h2 style="margin-top: 0; color: #667eea;">Summary Overview</h2>
      <div class="summary-grid">
        <div class="summary-card">
          <div class="summary-value" style="color: #667eea;">%d</div>
          <div class="summary-label">Total Students</div>
        </div>
        <div class="summary-card">
          <div class="summary-value" style="color: #48bb78;">%d</div>
          <div class="summary-label">Reported</div>
        </div>
        <div class="summary-card">
          <div class="summary-value" style="color: #f56565;">%d</div>
          <div class="summary-label">No Data</div>
        </div>
        <div class="summary-card">
          <div class="summary-value" style="color: #4299e1;">%d%%</div>
          <div class="summary-label">Participation Rate</div>
        </div>
      </div>
    </div>
`, d.Total, len(d.Reported), len(d.NoData), d.ParticipationRate()))

	b.WriteString(`
    <div style="background: white; padding: 20px; border-radius: 10px; overflow-x: auto;">
      <h2 style="margin-top: 0; color: #667eea;">Student Performance Summary</h2>
      <p style="color: #666; margin-bottom: 20px;">Students are ranked by number of days reported and overall task completion (best to worst)</p>
      <table>
        <thead>
          <tr>
            <th style="text-align: center;">#</th>
            <th>Name</th>
            <th style="text-align: center;">Days</th>
            <th style="text-align: center;">Avg Wakeup Time</th>
            <th style="text-align: center;">Mangala Aarti</th>
            <th style="text-align: center;">Katha</th>
            <th style="text-align: center;">Avg Puja Time</th>
            <th style="text-align: center;">Vachanamrut</th>
            <th style="text-align: center;">Meditation Time</th>
            <th style="text-align: center;">Cheshta</th>
            <th style="text-align: center;">Mansi Puja Count</th>
            <th style="text-align: center;">Reading Time</th>
            <th style="text-align: center;">Wasted Time</th>
            <th style="text-align: center;">Mantra Jap Count</th>
          </tr>
        </thead>
        <tbody>
`)

	for i, row := range d.Reported {
		s := row.Stats
		b.WriteString(fmt.Sprintf(`          <tr>
            <td style="text-align: center;">%d</td>
            <td><strong>%s</strong></td>
            <td style="text-align: center;">%d</td>
            <td style="text-align: center;">%s</td>
            <td style="text-align: center;">%d/%d</td>
            <td style="text-align: center;">Z:%d Y:%d M:%d</td>
            <td style="text-align: center;">%s</td>
            <td style="text-align: center;">%d/%d</td>
            <td style="text-align: center;">%s</td>
            <td style="text-align: center;">%d/%d</td>
            <td style="text-align: center;">%d/%d</td>
            <td style="text-align: center;">%s</td>
            <td style="text-align: center;">%s</td>
            <td style="text-align: center;">%d</td>
          </tr>
`,
			i+1,
			htmlEscape(row.Student.FullName()),
			s.DaysReported,
			FormatClock(s.AvgWakeupMins),
			s.MangalaAartiCount, s.DaysReported,
			s.KathaZoom, s.KathaYoutube, s.KathaMissed,
			FormatDurationShort(s.AvgPujaMins),
			s.VachanamrutCount, s.DaysReported,
			FormatDurationShort(s.MeditationSum),
			s.CheshtaCount, s.DaysReported,
			s.MansiPujaSum, s.MansiPujaMax,
			FormatDurationShort(s.ReadingSum),
			FormatDurationShort(s.WastedSum),
			s.MantraJapSum,
		))
	}

	b.WriteString(`        </tbody>
      </table>
    </div>
`)

	if len(d.NoData) > 0 {
		b.WriteString(fmt.Sprintf(`
    <div style="background: #fff5f5; padding: 20px; border-radius: 10px; margin-top: 30px; border: 2px solid #feb2b2;">
      <h2 style="color: #e53e3e; margin-top: 0;">⚠️ Students with No Data (%d)</h2>
      <p style="color: #666;">The following students have not filled their accountability form even once during this week:</p>
      <ul style="list-style: none; padding: 0;">
`, len(d.NoData)))
		for _, s := range d.NoData {
			b.WriteString(fmt.Sprintf(`        <li style="padding: 8px; background: #fff; margin-bottom: 5px; border-radius: 5px; border-left: 3px solid #e53e3e;">
          <strong>%s</strong> - Room %s
        </li>
`, htmlEscape(s.FullName()), roomOr(s.RoomNumber, "N/A")))
		}
		b.WriteString(`      </ul>
    </div>
`)
	}

	b.WriteString(fmt.Sprintf(`
    <div class="footer">
      <p><strong>Note:</strong> This is an automated weekly summary sent to all Poshak Leaders and Admins.</p>
      <p>Legend: Z=Zoom, Y=YouTube, M=Missed | Format: "X/Y" means X days out of Y total days</p>
      <p style="margin-top: 15px; color: #999;">Generated on %s</p>
    </div>
`, generatedAt.Format("02/01/2006, 15:04:05")))

	return b.String()
}

// RenderStudentReport renders a single student's weekly report email with
// a score badge and a day-by-day table. Dates with no entry get a
// highlighted "Missing Entry" row spanning all metric columns.
func RenderStudentReport(r StudentReport, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Weekly Adhyatmik Report</title>
`)
	b.WriteString(emailStyles)
	b.WriteString(`</head>
<body>
`)

	b.WriteString(fmt.Sprintf(`  <div class="header">
    <h1>📊 Weekly Adhyatmik Report</h1>
    <h2>%s</h2>
    <p>Room: %s</p>
  </div>

  <div class="week-info">
    <h3>📅 Report Period</h3>
    <p><strong>From:</strong> %s</p>
    <p><strong>To:</strong> %s</p>
  </div>
`,
		htmlEscape(r.Student.FullName()),
		roomOr(r.Student.RoomNumber, "Not Assigned"),
		formatLongDate(r.WeekStart),
		formatLongDate(r.WeekEnd)))

	s := r.Summary
	b.WriteString(fmt.Sprintf(`
  <div class="summary-section">
    <h3>📈 Performance Summary</h3>
    <div style="text-align: center; margin: 20px 0;">
      <div style="display: inline-block; background: white; padding: 20px; border-radius: 50%%; border: 8px solid %s;">
        <div class="summary-value" style="color: %s; font-size: 36px;">%d%%</div>
        <div class="summary-label" style="color: %s;">%s</div>
      </div>
    </div>
    <div class="summary-grid">
      <div class="summary-card">
        <div class="summary-value" style="color: %s;">%d%%</div>
        <div class="summary-label">Completion Rate</div>
        <div style="font-size: 10px; color: #888;">%d/%d days</div>
      </div>
      <div class="summary-card">
        <div class="summary-value">%s</div>
        <div class="summary-label">Avg Wake Time</div>
      </div>
      <div class="summary-card">
        <div class="summary-value">%d%%</div>
        <div class="summary-label">Mangala Aarti</div>
      </div>
      <div class="summary-card">
        <div class="summary-value">%d%%</div>
        <div class="summary-label">Zoom Katha</div>
      </div>
      <div class="summary-card">
        <div class="summary-value">%s</div>
        <div class="summary-label">Avg Puja Time</div>
      </div>
      <div class="summary-card">
        <div class="summary-value">%.1f</div>
        <div class="summary-label">Avg Mansi Puja</div>
      </div>
      <div class="summary-card">
        <div class="summary-value">%s</div>
        <div class="summary-label">Avg Reading</div>
      </div>
      <div class="summary-card">
        <div class="summary-value">%d</div>
        <div class="summary-label">Total Mantra Jap</div>
      </div>
    </div>
  </div>
`,
		r.Score.Color(), r.Score.Color(), int(r.Score), r.Score.Color(), r.Score.Tier(),
		pctColor(s.CompletionRate), s.CompletionRate, s.FilledDays, s.TotalDays,
		avgClockOrDash(s.AvgWakeupMins),
		s.MangalaAartiPct,
		s.ZoomKathaPct,
		avgDurationOrDash(s.AvgPujaMins),
		s.AvgMansiPuja,
		avgDurationOrDash(s.AvgReadingMins),
		s.TotalMantraJap))

	b.WriteString(`
  <h3>📋 Detailed Daily Report</h3>
  <table>
    <thead>
      <tr>
        <th>Date</th>
        <th>Wake Up</th>
        <th>Mangala Aarti</th>
        <th>Morning Katha</th>
        <th>Puja Time</th>
        <th>Vachanamrut</th>
        <th>Meditation</th>
        <th>Cheshta</th>
        <th>Mansi Puja</th>
        <th>Reading</th>
        <th>Wasted Time</th>
        <th>Mantra Jap</th>
      </tr>
    </thead>
    <tbody>
`)

	byDate := make(map[string]models.Entry, len(r.Entries))
	for _, e := range r.Entries {
		byDate[e.EntryDate] = e
	}
	for d := r.WeekStart; !d.After(r.WeekEnd); d = d.AddDate(0, 0, 1) {
		entry, ok := byDate[DateString(d)]
		if !ok {
			b.WriteString(fmt.Sprintf(`      <tr class="missing-row">
        <td><strong>%s</strong><br><small>%s</small></td>
        <td colspan="11" style="text-align: center; font-weight: bold;">Missing Entry</td>
      </tr>
`, formatShortDate(d), d.Weekday().String()))
			continue
		}
		b.WriteString(renderEntryRow(d, entry))
	}

	b.WriteString(fmt.Sprintf(`    </tbody>
  </table>

  <div class="footer">
    <p><strong>🏠 Gyan Ghar Accountability System</strong></p>
    <p>This is an automated weekly report. Please do not reply to this email.</p>
    <p>For any questions or concerns, please contact your Poshak Leader or Admin.</p>
    <p><em>Generated on %s</em></p>
  </div>
</body>
</html>
`, generatedAt.Format("02/01/2006, 15:04:05")))

	return b.String()
}

func renderEntryRow(d time.Time, e models.Entry) string {
	katha := "No"
	switch e.MorningKatha {
	case models.KathaZoom:
		katha = "Zoom"
	case models.KathaYoutube:
		katha = "YouTube"
	}
	return fmt.Sprintf(`      <tr>
        <td><strong>%s</strong><br><small>%s</small></td>
        <td><span class="badge %s">%s</span></td>
        <td><span class="badge %s">%s</span></td>
        <td><span class="badge %s">%s</span></td>
        <td><span class="badge %s">%s</span></td>
        <td><span class="badge %s">%s</span></td>
        <td><span class="badge %s">%s</span></td>
        <td><span class="badge %s">%s</span></td>
        <td><span class="badge %s">%d</span></td>
        <td><span class="badge %s">%s</span></td>
        <td><span class="badge %s">%s</span></td>
        <td><span class="badge neutral">%d</span></td>
      </tr>
`,
		formatShortDate(d), d.Weekday().String(),
		wakeupClass(e.WakeupTime), clockOrDash(e.WakeupTime),
		boolClass(e.MangalaAarti), yesNo(e.MangalaAarti),
		kathaClass(e.MorningKatha), katha,
		durationClass(e.MorningPuja, "puja"), durationOrDash(e.MorningPuja),
		boolClass(e.Vachanamrut), yesNo(e.Vachanamrut),
		boolClass(e.MastMeditation), yesNo(e.MastMeditation),
		boolClass(e.Cheshta), yesNo(e.Cheshta),
		mansiPujaClass(e.MansiPujaCount), e.MansiPujaCount,
		durationClass(e.ReadingTime, "reading"), durationOrDash(e.ReadingTime),
		durationClass(e.WastedTime, "wasted"), durationOrDash(e.WastedTime),
		e.MantraJap,
	)
}

// Badge class helpers; thresholds mirror the report form's color scheme.

func wakeupClass(t *string) string {
	mins, ok := clockMinutes(t)
	if !ok {
		return "neutral"
	}
	switch {
	case mins <= 6*60:
		return "excellent"
	case mins < 6*60+45:
		return "good"
	default:
		return "poor"
	}
}

func durationClass(t *string, kind string) string {
	mins, ok := clockMinutes(t)
	if !ok {
		return "neutral"
	}
	switch kind {
	case "puja":
		switch {
		case mins >= 30:
			return "excellent"
		case mins >= 15:
			return "good"
		default:
			return "poor"
		}
	case "reading":
		switch {
		case mins >= 60:
			return "excellent"
		case mins >= 30:
			return "good"
		default:
			return "poor"
		}
	case "wasted":
		switch {
		case mins == 0:
			return "excellent"
		case mins <= 30:
			return "good"
		default:
			return "poor"
		}
	}
	return "neutral"
}

func mansiPujaClass(count int) string {
	switch {
	case count == 5:
		return "excellent"
	case count >= 3:
		return "good"
	default:
		return "poor"
	}
}

func boolClass(v bool) string {
	if v {
		return "excellent"
	}
	return "poor"
}

func kathaClass(v string) string {
	switch v {
	case models.KathaZoom:
		return "excellent"
	case models.KathaYoutube:
		return "good"
	default:
		return "poor"
	}
}

func pctColor(pct int) string {
	switch {
	case pct >= 80:
		return "#28a745"
	case pct >= 60:
		return "#ffc107"
	default:
		return "#dc3545"
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func clockOrDash(t *string) string {
	mins, ok := clockMinutes(t)
	if !ok {
		return "-"
	}
	return FormatClock12(mins)
}

func durationOrDash(t *string) string {
	mins, ok := clockMinutes(t)
	if !ok {
		return "-"
	}
	return FormatDurationLong(mins)
}

func avgClockOrDash(mins int) string {
	if mins == 0 {
		return "-"
	}
	return FormatClock(mins)
}

func avgDurationOrDash(mins int) string {
	if mins == 0 {
		return "-"
	}
	return FormatDurationLong(mins)
}

func roomOr(room *string, fallback string) string {
	if room == nil || *room == "" {
		return fallback
	}
	return htmlEscape(*room)
}

// formatShortDate renders dd/mm/yyyy
func formatShortDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// formatLongDate renders "Monday, January 2, 2006"
func formatLongDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}

// emailStyles is the shared stylesheet for report emails
const emailStyles = `
    <style>
      body {
        font-family: Arial, sans-serif;
        line-height: 1.6;
        color: #333;
        max-width: 1200px;
        margin: 0 auto;
        padding: 20px;
      }
      .header {
        background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
        color: white;
        padding: 30px;
        border-radius: 10px;
        text-align: center;
        margin-bottom: 30px;
      }
      .summary-section {
        background: #f8f9fa;
        border-radius: 10px;
        padding: 25px;
        margin-bottom: 30px;
        border-left: 5px solid #667eea;
      }
      .summary-grid {
        display: flex;
        flex-direction: row;
        justify-content: space-around;
        gap: 15px;
        margin-top: 20px;
      }
      .summary-card {
        background: white;
        padding: 15px 25px;
        border-radius: 8px;
        text-align: center;
        box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        flex: 1;
        min-width: 150px;
      }
      .summary-value {
        font-size: 24px;
        font-weight: bold;
        margin-bottom: 5px;
      }
      .summary-label {
        font-size: 12px;
        color: #666;
        text-transform: uppercase;
      }
      table {
        width: 100%;
        border-collapse: collapse;
        margin: 20px 0;
        background: white;
        border-radius: 10px;
        overflow: hidden;
        box-shadow: 0 4px 6px rgba(0,0,0,0.1);
      }
      th {
        background: #f1f3f4;
        padding: 12px 8px;
        text-align: left;
        font-weight: 600;
        font-size: 11px;
        text-transform: uppercase;
        letter-spacing: 0.5px;
        border-bottom: 2px solid #e0e0e0;
      }
      td {
        padding: 10px 8px;
        border-bottom: 1px solid #f0f0f0;
        font-size: 13px;
      }
      tr:hover { background: #f8f9fa; }
      .excellent { background: #d4edda; color: #155724; }
      .good { background: #fff3cd; color: #856404; }
      .poor { background: #f8d7da; color: #721c24; }
      .neutral { background: #e2e3e5; color: #6c757d; }
      .missing-row { background: #fff5f5; }
      .missing-row td { color: #e53e3e; font-weight: 500; }
      .badge {
        padding: 4px 8px;
        border-radius: 12px;
        font-size: 11px;
        font-weight: 600;
        text-transform: uppercase;
      }
      .footer {
        margin-top: 40px;
        padding: 20px;
        background: #f8f9fa;
        border-radius: 10px;
        font-size: 12px;
        color: #666;
        text-align: center;
      }
      .week-info {
        background: white;
        padding: 20px;
        border-radius: 10px;
        margin-bottom: 20px;
        border: 1px solid #e0e0e0;
      }
    </style>
`
