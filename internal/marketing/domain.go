package marketing

import (
	"errors"
	"time"
)

// Source labels the acquisition channel recorded for a day.
type Source string

// Traffic channels shown on the marketing tab.
const (
	SourceInstagramAds Source = "Instagram Ads"
	SourceGoogleSearch Source = "Google Search"
	SourceWalkIn       Source = "Walk-in"
)

// Sources lists every channel in the order the generator draws from.
var Sources = []Source{SourceInstagramAds, SourceGoogleSearch, SourceWalkIn}

// Series shape and sampling bounds. Upper bounds are exclusive.
const (
	SeriesLength = 30

	MinVisits  = 50
	MaxVisits  = 200
	MinSignups = 5
	MaxSignups = 25
)

// SeriesStart is the first calendar day of every generated series.
var SeriesStart = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// TargetRate is the conversion rate, in percent, the recommendation is judged against.
const TargetRate = 5.0

// ErrNoVisits is returned when a conversion rate is requested for zero visits.
var ErrNoVisits = errors.New("marketing: no visits recorded")

// DailyRecord is one synthetic day of landing page activity.
type DailyRecord struct {
	Date          time.Time `json:"date"`
	WebsiteVisits int       `json:"website_visits"`
	Signups       int       `json:"signups"`
	Source        Source    `json:"source"`
}

// Summary aggregates a record series into the headline figures.
type Summary struct {
	TotalVisits    int
	TotalSignups   int
	ConversionRate float64
	TopSource      Source
	Recommendation string
}

// SourceCount is the number of days attributed to a channel.
type SourceCount struct {
	Source Source
	Days   int
}
