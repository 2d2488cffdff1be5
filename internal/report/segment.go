package report

import (
	"sort"
	"time"

	"gyanghar/internal/models"
)

// RankedStudent is one reported row of the all-students digest
type RankedStudent struct {
	Student models.User
	Stats   DigestStats
	Score   RankingScore
}

// Digest partitions the active roster into students who reported at least
// once in the window and students with no data at all. After Sort,
// Reported is ordered best-to-worst by ranking score and NoData
// alphabetically by name.
type Digest struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Reported  []RankedStudent
	NoData    []models.User
	Total     int
}

// NewDigest creates an empty digest for the given window
func NewDigest(weekStart, weekEnd time.Time) *Digest {
	return &Digest{WeekStart: weekStart, WeekEnd: weekEnd}
}

// AddStudent routes a student into the reported or no-data partition
// based on their entries for the window
func (d *Digest) AddStudent(student models.User, entries []models.Entry) {
	d.Total++
	if len(entries) == 0 {
		d.NoData = append(d.NoData, student)
		return
	}
	stats := AggregateDigest(entries)
	d.Reported = append(d.Reported, RankedStudent{
		Student: student,
		Stats:   stats,
		Score:   ComputeRankingScore(stats),
	})
}

// Sort orders both partitions. The reported sort is stable so students
// with identical ranking scores keep their roster order.
func (d *Digest) Sort() {
	sort.SliceStable(d.Reported, func(i, j int) bool {
		return d.Reported[i].Score > d.Reported[j].Score
	})
	sort.SliceStable(d.NoData, func(i, j int) bool {
		if d.NoData[i].FirstName != d.NoData[j].FirstName {
			return d.NoData[i].FirstName < d.NoData[j].FirstName
		}
		return d.NoData[i].LastName < d.NoData[j].LastName
	})
}

// ParticipationRate returns round(reported/total*100), or 0 for an empty roster
func (d *Digest) ParticipationRate() int {
	if d.Total == 0 {
		return 0
	}
	return roundPct(len(d.Reported), d.Total)
}
