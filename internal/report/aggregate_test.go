package report

import (
	"testing"

	"gyanghar/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestAggregateWeekEmpty(t *testing.T) {
	s := AggregateWeek(nil, 7)

	if s.TotalDays != 7 || s.FilledDays != 0 {
		t.Errorf("days = %d/%d, want 0/7", s.FilledDays, s.TotalDays)
	}
	if s.CompletionRate != 0 {
		t.Errorf("CompletionRate = %d, want 0", s.CompletionRate)
	}
	if s.AvgWakeupMins != 0 || s.AvgPujaMins != 0 || s.AvgReadingMins != 0 {
		t.Error("averages should be 0 with no entries")
	}
}

func TestAggregateWeekPartialWeek(t *testing.T) {
	// Two filled days out of seven; wake times 06:00 and 05:45
	entries := []models.Entry{
		{EntryDate: "2025-06-09", WakeupTime: strPtr("06:00"), MorningKatha: models.KathaZoom, MangalaAarti: true, MansiPujaCount: 5},
		{EntryDate: "2025-06-10", WakeupTime: strPtr("05:45"), MorningKatha: models.KathaNo, MansiPujaCount: 3},
	}

	s := AggregateWeek(entries, 7)

	// 2/7 = 28.57... rounds to 29
	if s.CompletionRate != 29 {
		t.Errorf("CompletionRate = %d, want 29", s.CompletionRate)
	}
	// (360+345)/2 = 352.5, rounds half away from zero to 353 = 05:53
	if s.AvgWakeupMins != 353 {
		t.Errorf("AvgWakeupMins = %d, want 353", s.AvgWakeupMins)
	}
	if FormatClock(s.AvgWakeupMins) != "05:53" {
		t.Errorf("avg wake renders as %s, want 05:53", FormatClock(s.AvgWakeupMins))
	}
	// Percentage denominators are total days, not filled days
	if s.MangalaAartiPct != 14 { // 1/7 = 14.28 -> 14
		t.Errorf("MangalaAartiPct = %d, want 14", s.MangalaAartiPct)
	}
	if s.ZoomKathaPct != 14 {
		t.Errorf("ZoomKathaPct = %d, want 14", s.ZoomKathaPct)
	}
	// Mansi average is over filled days
	if s.AvgMansiPuja != 4.0 {
		t.Errorf("AvgMansiPuja = %v, want 4.0", s.AvgMansiPuja)
	}
}

func TestAggregateWeekAveragesSkipBlankFields(t *testing.T) {
	// Three entries; puja time filled on only two of them. The average
	// divides by the two filled values, not the entry count or day count.
	entries := []models.Entry{
		{EntryDate: "2025-06-09", MorningPuja: strPtr("00:30"), MorningKatha: models.KathaNo},
		{EntryDate: "2025-06-10", MorningKatha: models.KathaNo},
		{EntryDate: "2025-06-11", MorningPuja: strPtr("00:20"), MorningKatha: models.KathaNo},
	}

	s := AggregateWeek(entries, 7)

	if s.AvgPujaMins != 25 {
		t.Errorf("AvgPujaMins = %d, want 25", s.AvgPujaMins)
	}
}

func TestAggregateWeekCounts(t *testing.T) {
	entries := []models.Entry{
		{EntryDate: "2025-06-09", MorningKatha: models.KathaZoom, Vachanamrut: true, MastMeditation: true, Cheshta: true, MantraJap: 108, ReadingTime: strPtr("01:00")},
		{EntryDate: "2025-06-10", MorningKatha: models.KathaYoutube, Vachanamrut: true, MantraJap: 54, ReadingTime: strPtr("00:30")},
		{EntryDate: "2025-06-11", MorningKatha: models.KathaNo, Cheshta: true, WastedTime: strPtr("00:45")},
	}

	s := AggregateWeek(entries, 7)

	if s.ZoomKathaCount != 1 || s.YoutubeKathaCount != 1 {
		t.Errorf("katha counts = zoom %d youtube %d, want 1/1", s.ZoomKathaCount, s.YoutubeKathaCount)
	}
	if s.VachanamrutCount != 2 || s.MeditationCount != 1 || s.CheshtaCount != 2 {
		t.Errorf("activity counts = %d/%d/%d, want 2/1/2", s.VachanamrutCount, s.MeditationCount, s.CheshtaCount)
	}
	if s.TotalMantraJap != 162 {
		t.Errorf("TotalMantraJap = %d, want 162", s.TotalMantraJap)
	}
	if s.AvgReadingMins != 45 { // (60+30)/2
		t.Errorf("AvgReadingMins = %d, want 45", s.AvgReadingMins)
	}
	if s.AvgWastedMins != 45 { // single value
		t.Errorf("AvgWastedMins = %d, want 45", s.AvgWastedMins)
	}
}

func TestAggregateDigest(t *testing.T) {
	entries := []models.Entry{
		{
			EntryDate:      "2025-06-09",
			WakeupTime:     strPtr("05:30"),
			MangalaAarti:   true,
			MorningKatha:   models.KathaZoom,
			MorningPuja:    strPtr("00:30"),
			MeditationMins: intPtr(15),
			Vachanamrut:    true,
			Cheshta:        true,
			MansiPujaCount: 5,
			ReadingTime:    strPtr("01:00"),
			MantraJap:      108,
		},
		{
			EntryDate:      "2025-06-10",
			WakeupTime:     strPtr("06:30"),
			MorningKatha:   models.KathaYoutube,
			MeditationMins: intPtr(10),
			MansiPujaCount: 2,
			WastedTime:     strPtr("00:30"),
		},
		{
			EntryDate:    "2025-06-11",
			MorningKatha: models.KathaNo,
		},
	}

	d := AggregateDigest(entries)

	if d.DaysReported != 3 {
		t.Fatalf("DaysReported = %d, want 3", d.DaysReported)
	}
	if d.AvgWakeupMins != 360 { // (330+390)/2, blank day excluded
		t.Errorf("AvgWakeupMins = %d, want 360", d.AvgWakeupMins)
	}
	if d.AvgPujaMins != 30 { // single filled value
		t.Errorf("AvgPujaMins = %d, want 30", d.AvgPujaMins)
	}
	if d.KathaZoom != 1 || d.KathaYoutube != 1 || d.KathaMissed != 1 {
		t.Errorf("katha = Z:%d Y:%d M:%d, want 1/1/1", d.KathaZoom, d.KathaYoutube, d.KathaMissed)
	}
	if d.MeditationSum != 25 {
		t.Errorf("MeditationSum = %d, want 25", d.MeditationSum)
	}
	if d.MansiPujaSum != 7 || d.MansiPujaMax != 15 {
		t.Errorf("mansi = %d/%d, want 7/15", d.MansiPujaSum, d.MansiPujaMax)
	}
	if d.ReadingSum != 60 || d.WastedSum != 30 {
		t.Errorf("reading/wasted = %d/%d, want 60/30", d.ReadingSum, d.WastedSum)
	}
	if d.MantraJapSum != 108 {
		t.Errorf("MantraJapSum = %d, want 108", d.MantraJapSum)
	}
}
