package marketing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformSeries(visits, signups int, source Source) []DailyRecord {
	records := make([]DailyRecord, SeriesLength)
	for i := range records {
		records[i] = DailyRecord{
			Date:          SeriesStart.AddDate(0, 0, i),
			WebsiteVisits: visits,
			Signups:       signups,
			Source:        source,
		}
	}
	return records
}

func TestComputeSummaryAboveTarget(t *testing.T) {
	summary, err := ComputeSummary(uniformSeries(100, 10, SourceGoogleSearch))
	require.NoError(t, err)

	assert.Equal(t, 3000, summary.TotalVisits)
	assert.Equal(t, 300, summary.TotalSignups)
	assert.Equal(t, 10.0, summary.ConversionRate)
	assert.True(t, summary.MeetsTarget())
	assert.Equal(t, SourceGoogleSearch, summary.TopSource)
	assert.Contains(t, summary.Recommendation, "Scale up")
	assert.Contains(t, summary.Recommendation, "5%")
}

func TestComputeSummaryBelowTarget(t *testing.T) {
	summary, err := ComputeSummary(uniformSeries(200, 5, SourceWalkIn))
	require.NoError(t, err)

	assert.Equal(t, 6000, summary.TotalVisits)
	assert.Equal(t, 150, summary.TotalSignups)
	assert.Equal(t, 2.5, summary.ConversionRate)
	assert.False(t, summary.MeetsTarget())
	assert.Contains(t, summary.Recommendation, "Review pricing")
	assert.Contains(t, summary.Recommendation, "(Target: 5%)")
}

func TestComputeSummaryExactlyAtTarget(t *testing.T) {
	summary, err := ComputeSummary(uniformSeries(100, 5, SourceInstagramAds))
	require.NoError(t, err)
	assert.Equal(t, 5.0, summary.ConversionRate)
	assert.Contains(t, summary.Recommendation, "Scale up")
}

func TestComputeSummaryEmptySeries(t *testing.T) {
	_, err := ComputeSummary(nil)
	assert.ErrorIs(t, err, ErrNoVisits)

	_, err = ComputeSummary(uniformSeries(0, 0, SourceWalkIn))
	assert.ErrorIs(t, err, ErrNoVisits)
}

func TestConversionRateRounding(t *testing.T) {
	rate, err := ConversionRate(3, 1)
	require.NoError(t, err)
	assert.Equal(t, 33.33, rate)

	rate, err = ConversionRate(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 66.67, rate)
}

func TestConversionRateHalvesRoundToEven(t *testing.T) {
	rate, err := ConversionRate(1600, 162)
	require.NoError(t, err)
	assert.Equal(t, 10.12, rate)

	rate, err = ConversionRate(1600, 170)
	require.NoError(t, err)
	assert.Equal(t, 10.62, rate)
}

func TestConversionRateMatchesFormulaOnGeneratedSeries(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		records := GenerateSeries(NewRand(seed))
		summary, err := ComputeSummary(records)
		require.NoError(t, err)

		visits, signups := 0, 0
		for _, r := range records {
			visits += r.WebsiteVisits
			signups += r.Signups
		}
		want := math.RoundToEven(100*float64(signups)/float64(visits)*100) / 100
		assert.Equal(t, want, summary.ConversionRate, "seed %d", seed)
		assert.GreaterOrEqual(t, summary.ConversionRate, 0.0)
		assert.LessOrEqual(t, summary.ConversionRate, 100.0)
		assert.Contains(t, Sources, summary.TopSource)
	}
}

func TestTopSourceIsPresentInInput(t *testing.T) {
	records := uniformSeries(60, 6, SourceWalkIn)
	records[3].Source = SourceGoogleSearch
	top, ok := TopSource(records)
	require.True(t, ok)
	assert.Equal(t, SourceWalkIn, top)

	_, ok = TopSource(nil)
	assert.False(t, ok)
}

func TestTopSourceTieGoesToAlphabeticallyFirst(t *testing.T) {
	records := []DailyRecord{
		{WebsiteVisits: 10, Source: SourceWalkIn},
		{WebsiteVisits: 10, Source: SourceGoogleSearch},
		{WebsiteVisits: 10, Source: SourceWalkIn},
		{WebsiteVisits: 10, Source: SourceGoogleSearch},
	}
	top, ok := TopSource(records)
	require.True(t, ok)
	assert.Equal(t, SourceGoogleSearch, top)

	records = append(records,
		DailyRecord{WebsiteVisits: 10, Source: SourceInstagramAds},
		DailyRecord{WebsiteVisits: 10, Source: SourceInstagramAds},
	)
	top, ok = TopSource(records)
	require.True(t, ok)
	assert.Equal(t, SourceGoogleSearch, top)

	records = append(records, DailyRecord{WebsiteVisits: 10, Source: SourceWalkIn})
	top, ok = TopSource(records)
	require.True(t, ok)
	assert.Equal(t, SourceWalkIn, top)
}

func TestSourceCountsOrdering(t *testing.T) {
	records := []DailyRecord{
		{Source: SourceWalkIn},
		{Source: SourceInstagramAds},
		{Source: SourceGoogleSearch},
		{Source: SourceGoogleSearch},
		{Source: SourceInstagramAds},
	}
	counts := SourceCounts(records)
	assert.Equal(t, []SourceCount{
		{Source: SourceInstagramAds, Days: 2},
		{Source: SourceGoogleSearch, Days: 2},
		{Source: SourceWalkIn, Days: 1},
	}, counts)
}

func TestNarrativeMentionsTopChannel(t *testing.T) {
	summary, err := ComputeSummary(uniformSeries(100, 10, SourceInstagramAds))
	require.NoError(t, err)
	text := summary.Narrative()
	assert.Contains(t, text, "3000 visitors")
	assert.Contains(t, text, "Most customers are coming from Instagram Ads.")
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "10", FormatRate(10))
	assert.Equal(t, "2.5", FormatRate(2.5))
	assert.Equal(t, "4.57", FormatRate(4.5667))
}
