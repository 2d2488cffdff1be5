package report

import (
	"strings"
	"testing"
	"time"

	"gyanghar/internal/models"
)

func sampleDigest() *Digest {
	start, end := testWindow()
	d := NewDigest(start, end)

	d.AddStudent(models.User{ID: 1, FirstName: "Amit", LastName: "Patel"}, []models.Entry{
		{
			EntryDate:      "2025-06-09",
			WakeupTime:     strPtr("05:45"),
			MangalaAarti:   true,
			MorningKatha:   models.KathaZoom,
			MorningPuja:    strPtr("00:30"),
			Vachanamrut:    true,
			Cheshta:        true,
			MansiPujaCount: 5,
			ReadingTime:    strPtr("01:00"),
			MantraJap:      108,
		},
		{
			EntryDate:    "2025-06-10",
			MorningKatha: models.KathaYoutube,
			WastedTime:   strPtr("00:30"),
		},
	})
	room := "12B"
	d.AddStudent(models.User{ID: 2, FirstName: "Bharat", LastName: "Shah", RoomNumber: &room}, nil)
	d.Sort()
	return d
}

func TestRenderDigest(t *testing.T) {
	generated := time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC)
	html := RenderDigest(sampleDigest(), generated)

	for _, want := range []string{
		"Weekly Adhyatmik Summary Report",
		"09/06/2025 - 15/06/2025",
		"Amit Patel",
		"Z:1 Y:1 M:0",
		"Students with No Data (1)",
		"Bharat Shah",
		"Room 12B",
		"Participation Rate",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("digest HTML missing %q", want)
		}
	}

	// Reported students never appear in the no-data section
	noDataSection := html[strings.Index(html, "Students with No Data"):]
	if strings.Contains(noDataSection, "Amit Patel") {
		t.Error("reported student listed in no-data section")
	}
}

func TestRenderDigestDeterministic(t *testing.T) {
	generated := time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC)

	first := RenderDigest(sampleDigest(), generated)
	second := RenderDigest(sampleDigest(), generated)
	if first != second {
		t.Error("identical inputs produced different digest HTML")
	}
}

func TestRenderDigestOmitsNoDataSectionWhenEmpty(t *testing.T) {
	start, end := testWindow()
	d := NewDigest(start, end)
	d.AddStudent(models.User{ID: 1, FirstName: "Amit", LastName: "Patel"}, []models.Entry{entryOn("2025-06-09")})
	d.Sort()

	html := RenderDigest(d, time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC))
	if strings.Contains(html, "Students with No Data") {
		t.Error("no-data section rendered for an empty no-data list")
	}
}

func TestRenderStudentReport(t *testing.T) {
	start, end := testWindow()
	room := "7A"
	student := models.User{ID: 1, FirstName: "Amit", LastName: "Patel", RoomNumber: &room}

	entries := []models.Entry{
		{
			EntryDate:      "2025-06-09",
			WakeupTime:     strPtr("05:45"),
			MangalaAarti:   true,
			MorningKatha:   models.KathaZoom,
			MorningPuja:    strPtr("00:45"),
			Vachanamrut:    true,
			MastMeditation: true,
			Cheshta:        true,
			MansiPujaCount: 5,
			ReadingTime:    strPtr("01:30"),
			MantraJap:      108,
		},
	}

	r := BuildStudentReport(student, entries, start, end)
	html := RenderStudentReport(r, time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC))

	for _, want := range []string{
		"Weekly Adhyatmik Report",
		"Amit Patel",
		"Room: 7A",
		"Monday, June 9, 2025",
		"Sunday, June 15, 2025",
		"Missing Entry",
		"5:45 AM",
		"Mansi Puja",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("student report HTML missing %q", want)
		}
	}

	// Six of seven days are missing
	if got := strings.Count(html, "Missing Entry"); got != 6 {
		t.Errorf("Missing Entry rows = %d, want 6", got)
	}
	// The score badge shows the computed quality score and its tier
	if !strings.Contains(html, r.Score.Tier()) {
		t.Errorf("student report HTML missing tier %q", r.Score.Tier())
	}
}

func TestRenderStudentReportMissingRoom(t *testing.T) {
	start, end := testWindow()
	student := models.User{ID: 1, FirstName: "Amit", LastName: "Patel"}

	r := BuildStudentReport(student, nil, start, end)
	html := RenderStudentReport(r, time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC))

	if !strings.Contains(html, "Room: Not Assigned") {
		t.Error("student report should show placeholder for missing room")
	}
	if got := strings.Count(html, "Missing Entry"); got != 7 {
		t.Errorf("Missing Entry rows = %d, want 7", got)
	}
}

func TestDigestSubject(t *testing.T) {
	start, end := testWindow()
	got := DigestSubject(start, end)
	want := "📊 Weekly Adhyatmik Summary - All Students (09/06/2025 - 15/06/2025)"
	if got != want {
		t.Errorf("DigestSubject() = %q, want %q", got, want)
	}
}

func TestHTMLEscaping(t *testing.T) {
	start, end := testWindow()
	d := NewDigest(start, end)
	d.AddStudent(models.User{ID: 1, FirstName: "<script>", LastName: "Patel"}, []models.Entry{entryOn("2025-06-09")})
	d.Sort()

	html := RenderDigest(d, time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC))
	if strings.Contains(html, "<script>") {
		t.Error("student name not escaped in digest HTML")
	}
}
