package marketing

import (
	"math/rand/v2"
	"time"
)

// RandSource yields uniformly distributed integers in [0, n).
type RandSource interface {
	IntN(n int) int
}

// NewRand returns a PCG backed generator. A zero seed draws one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// GenerateSeries builds SeriesLength consecutive days starting at SeriesStart.
func GenerateSeries(rng RandSource) []DailyRecord {
	if rng == nil {
		rng = NewRand(0)
	}
	records := make([]DailyRecord, 0, SeriesLength)
	for day := 0; day < SeriesLength; day++ {
		records = append(records, DailyRecord{
			Date:          SeriesStart.AddDate(0, 0, day),
			WebsiteVisits: between(rng, MinVisits, MaxVisits),
			Signups:       between(rng, MinSignups, MaxSignups),
			Source:        Sources[rng.IntN(len(Sources))],
		})
	}
	return records
}

func between(rng RandSource, lo, hi int) int {
	return lo + rng.IntN(hi-lo)
}
