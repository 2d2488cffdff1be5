package report

import "math"

// QualityScore is the bounded 0-100 composite shown on an individual
// student's weekly report.
type QualityScore int

// RankingScore is the unbounded sort key that orders the all-students
// digest. Days reported dominates at a weight of 100 per day, so students
// who filled in more days always outrank those who filled in fewer; task
// quality only breaks ties within the same day count. It is never shown
// to users and must not be confused with QualityScore.
type RankingScore int

// ComputeQualityScore converts a WeekSummary into the 0-100 performance
// score. Component weights total exactly 100 points: 20 completion,
// 15 wakeup tiers, 10 mangala aarti, 10 morning katha, 15 puja tiers and
// 30 for the remaining activities.
func ComputeQualityScore(s WeekSummary) QualityScore {
	if s.TotalDays == 0 {
		return 0
	}

	earned := 0.0
	max := 0.0

	// Completion rate (20 points)
	earned += float64(s.CompletionRate) / 100 * 20
	max += 20

	// Wake up time (15 points): 6 AM or earlier full marks, 6:45 AM partial
	switch {
	case s.AvgWakeupMins <= 360:
		earned += 15
	case s.AvgWakeupMins <= 405:
		earned += 10
	default:
		earned += 5
	}
	max += 15

	// Mangala aarti attendance (10 points)
	earned += float64(s.MangalaAartiCount) / float64(s.TotalDays) * 10
	max += 10

	// Morning katha (10 points): zoom weighted full, youtube 0.7
	earned += (float64(s.ZoomKathaCount)*1 + float64(s.YoutubeKathaCount)*0.7) / float64(s.TotalDays) * 10
	max += 10

	// Puja time (15 points)
	switch {
	case s.AvgPujaMins >= 30:
		earned += 15
	case s.AvgPujaMins >= 15:
		earned += 10
	default:
		earned += 5
	}
	max += 15

	// Other activities (30 points total)
	earned += float64(s.VachanamrutCount) / float64(s.TotalDays) * 5
	earned += float64(s.MeditationCount) / float64(s.TotalDays) * 5
	earned += float64(s.CheshtaCount) / float64(s.TotalDays) * 5
	earned += math.Min(s.AvgMansiPuja/5, 1) * 10
	earned += math.Min(float64(s.AvgReadingMins)/60, 1) * 5
	max += 30

	return QualityScore(math.Round(earned / max * 100))
}

// Tier buckets a quality score for display
func (q QualityScore) Tier() string {
	switch {
	case q >= 80:
		return "Excellent"
	case q >= 60:
		return "Good"
	default:
		return "Needs Improvement"
	}
}

// Color returns the display color for the score's tier
func (q QualityScore) Color() string {
	switch {
	case q >= 80:
		return "#28a745"
	case q >= 60:
		return "#ffc107"
	default:
		return "#dc3545"
	}
}

// ComputeRankingScore converts DigestStats into the digest's sort key.
func ComputeRankingScore(d DigestStats) RankingScore {
	score := float64(d.DaysReported) * 100

	score += float64(d.MangalaAartiCount) * 5
	score += float64(d.VachanamrutCount) * 5
	score += float64(d.CheshtaCount) * 5
	score += float64(d.KathaZoom)*5 + float64(d.KathaYoutube)*3
	score += math.Min(float64(d.AvgPujaMins)/6, 5)
	score += math.Min(float64(d.MeditationSum)/3, 5)
	if d.MansiPujaMax > 0 {
		score += float64(d.MansiPujaSum) / float64(d.MansiPujaMax) * 10
	}
	score += math.Min(float64(d.ReadingSum)/12, 5)
	score -= math.Min(float64(d.WastedSum)/6, 5)

	return RankingScore(math.Round(score))
}
