package marketing

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ComputeSummary totals the series and derives the conversion rate,
// top channel and recommendation. A series without visits yields ErrNoVisits.
func ComputeSummary(records []DailyRecord) (Summary, error) {
	var summary Summary
	for _, record := range records {
		summary.TotalVisits += record.WebsiteVisits
		summary.TotalSignups += record.Signups
	}
	rate, err := ConversionRate(summary.TotalVisits, summary.TotalSignups)
	if err != nil {
		return summary, err
	}
	summary.ConversionRate = rate
	summary.TopSource, _ = TopSource(records)
	summary.Recommendation = Recommend(rate)
	return summary, nil
}

// ConversionRate returns signups per hundred visits rounded to two decimals.
// Exact halves round to even.
func ConversionRate(visits, signups int) (float64, error) {
	if visits <= 0 {
		return 0, ErrNoVisits
	}
	return round2(100 * float64(signups) / float64(visits)), nil
}

// TopSource returns the most frequent channel. Tied channels resolve to the
// alphabetically first name.
func TopSource(records []DailyRecord) (Source, bool) {
	counts := make(map[Source]int, len(Sources))
	for _, record := range records {
		counts[record.Source]++
	}
	var top Source
	best := 0
	for source, n := range counts {
		if n > best || (n == best && source < top) {
			top, best = source, n
		}
	}
	return top, best > 0
}

// SourceCounts tallies days per channel, most frequent first.
// Equal counts keep first-appearance order.
func SourceCounts(records []DailyRecord) []SourceCount {
	index := make(map[Source]int)
	counts := make([]SourceCount, 0, len(Sources))
	for _, record := range records {
		i, ok := index[record.Source]
		if !ok {
			i = len(counts)
			index[record.Source] = i
			counts = append(counts, SourceCount{Source: record.Source})
		}
		counts[i].Days++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Days > counts[j].Days
	})
	return counts
}

// Recommend picks the advice for a conversion rate against TargetRate.
func Recommend(rate float64) string {
	if rate >= TargetRate {
		return fmt.Sprintf("You are converting at %s%%, at or above the %s%% target. Recommendation: Scale up your ad budget.",
			FormatRate(rate), FormatRate(TargetRate))
	}
	return fmt.Sprintf("Your conversion rate is %s%% (Target: %s%%). Recommendation: Review pricing or page headlines.",
		FormatRate(rate), FormatRate(TargetRate))
}

// MeetsTarget reports whether the summary rate reaches TargetRate.
func (s Summary) MeetsTarget() bool {
	return s.ConversionRate >= TargetRate
}

// Narrative renders the executive summary paragraph shown in the insights box.
func (s Summary) Narrative() string {
	var b strings.Builder
	b.WriteString("Executive Summary:\n\n")
	b.WriteString(fmt.Sprintf("This month, the landing page received %d visitors. ", s.TotalVisits))
	b.WriteString(s.Recommendation)
	if s.TopSource != "" {
		b.WriteString(fmt.Sprintf("\n\nTop Channel: Most customers are coming from %s.", s.TopSource))
	}
	return b.String()
}

// FormatRate prints a percentage with at most two decimals and no trailing zeros.
func FormatRate(rate float64) string {
	return strconv.FormatFloat(round2(rate), 'f', -1, 64)
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
