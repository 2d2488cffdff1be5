package report

import (
	"math"

	"gyanghar/internal/models"
)

// WeekSummary is the per-student aggregation behind the individual weekly
// report. Category percentages are computed against total calendar days in
// the window, so an unfilled day counts as "did not do the activity".
// Duration averages are computed only over entries where the field was
// actually filled, so blank fields do not drag the average down. The
// asymmetry is deliberate; downstream score comparisons depend on it.
type WeekSummary struct {
	TotalDays      int
	FilledDays     int
	CompletionRate int // percent, rounded

	AvgWakeupMins int // 0 when no wakeup times were recorded

	MangalaAartiCount int
	MangalaAartiPct   int
	ZoomKathaCount    int
	ZoomKathaPct      int
	YoutubeKathaCount int
	YoutubeKathaPct   int

	AvgPujaMins int

	VachanamrutCount int
	VachanamrutPct   int
	MeditationCount  int // legacy mast_meditation flag
	MeditationPct    int
	CheshtaCount     int
	CheshtaPct       int

	AvgMansiPuja   float64
	AvgReadingMins int
	AvgWastedMins  int

	TotalMantraJap int
}

// AggregateWeek reduces a student's entries over a window of totalDays
// calendar days into a WeekSummary. Entries outside the window must already
// be filtered out by the caller.
func AggregateWeek(entries []models.Entry, totalDays int) WeekSummary {
	s := WeekSummary{
		TotalDays:  totalDays,
		FilledDays: len(entries),
	}
	if totalDays == 0 {
		return s
	}
	s.CompletionRate = roundPct(len(entries), totalDays)

	var wakeupSum, wakeupN int
	var pujaSum, pujaN int
	var readingSum, readingN int
	var wastedSum, wastedN int
	var mansiSum int

	for _, e := range entries {
		if mins, ok := clockMinutes(e.WakeupTime); ok {
			wakeupSum += mins
			wakeupN++
		}
		if e.MangalaAarti {
			s.MangalaAartiCount++
		}
		switch e.MorningKatha {
		case models.KathaZoom:
			s.ZoomKathaCount++
		case models.KathaYoutube:
			s.YoutubeKathaCount++
		}
		if mins, ok := clockMinutes(e.MorningPuja); ok {
			pujaSum += mins
			pujaN++
		}
		if e.Vachanamrut {
			s.VachanamrutCount++
		}
		if e.MastMeditation {
			s.MeditationCount++
		}
		if e.Cheshta {
			s.CheshtaCount++
		}
		mansiSum += e.MansiPujaCount
		if mins, ok := clockMinutes(e.ReadingTime); ok {
			readingSum += mins
			readingN++
		}
		if mins, ok := clockMinutes(e.WastedTime); ok {
			wastedSum += mins
			wastedN++
		}
		s.TotalMantraJap += e.MantraJap
	}

	s.AvgWakeupMins = roundAvg(wakeupSum, wakeupN)
	s.AvgPujaMins = roundAvg(pujaSum, pujaN)
	s.AvgReadingMins = roundAvg(readingSum, readingN)
	s.AvgWastedMins = roundAvg(wastedSum, wastedN)
	if len(entries) > 0 {
		s.AvgMansiPuja = float64(mansiSum) / float64(len(entries))
	}

	s.MangalaAartiPct = roundPct(s.MangalaAartiCount, totalDays)
	s.ZoomKathaPct = roundPct(s.ZoomKathaCount, totalDays)
	s.YoutubeKathaPct = roundPct(s.YoutubeKathaCount, totalDays)
	s.VachanamrutPct = roundPct(s.VachanamrutCount, totalDays)
	s.MeditationPct = roundPct(s.MeditationCount, totalDays)
	s.CheshtaPct = roundPct(s.CheshtaCount, totalDays)

	return s
}

// DigestStats is the cross-student aggregation behind one row of the
// all-students digest table.
type DigestStats struct {
	DaysReported int

	AvgWakeupMins int
	AvgPujaMins   int

	MangalaAartiCount int
	KathaZoom         int
	KathaYoutube      int
	KathaMissed       int
	VachanamrutCount  int
	CheshtaCount      int

	MeditationSum int // meditation_watch_time minutes
	MansiPujaSum  int
	MansiPujaMax  int // days reported x 5
	ReadingSum    int
	WastedSum     int
	MantraJapSum  int
}

// AggregateDigest reduces a student's entries into the digest row
// statistics. Callers must route students with zero entries to the
// no-data list instead of calling this.
func AggregateDigest(entries []models.Entry) DigestStats {
	var d DigestStats
	d.DaysReported = len(entries)
	d.MansiPujaMax = len(entries) * 5

	var wakeupSum, wakeupN int
	var pujaSum, pujaN int

	for _, e := range entries {
		if mins, ok := clockMinutes(e.WakeupTime); ok {
			wakeupSum += mins
			wakeupN++
		}
		if e.MangalaAarti {
			d.MangalaAartiCount++
		}
		switch e.MorningKatha {
		case models.KathaZoom:
			d.KathaZoom++
		case models.KathaYoutube:
			d.KathaYoutube++
		default:
			d.KathaMissed++
		}
		if mins, ok := clockMinutes(e.MorningPuja); ok {
			pujaSum += mins
			pujaN++
		}
		if e.Vachanamrut {
			d.VachanamrutCount++
		}
		if e.Cheshta {
			d.CheshtaCount++
		}
		if e.MeditationMins != nil {
			d.MeditationSum += *e.MeditationMins
		}
		d.MansiPujaSum += e.MansiPujaCount
		if mins, ok := clockMinutes(e.ReadingTime); ok {
			d.ReadingSum += mins
		}
		if mins, ok := clockMinutes(e.WastedTime); ok {
			d.WastedSum += mins
		}
		d.MantraJapSum += e.MantraJap
	}

	d.AvgWakeupMins = roundAvg(wakeupSum, wakeupN)
	d.AvgPujaMins = roundAvg(pujaSum, pujaN)

	return d
}

// roundAvg returns round(sum/n), or 0 when n is zero
func roundAvg(sum, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// roundPct returns round(count/total*100)
func roundPct(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}
