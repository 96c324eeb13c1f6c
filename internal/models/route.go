package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// ChangeFreq is the sitemap protocol hint for how often a page changes.
type ChangeFreq string

// Change frequency values accepted by the sitemap protocol.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// Valid reports whether f is one of the protocol values. The empty value is not valid.
func (f ChangeFreq) Valid() bool {
	switch f {
	case ChangeFreqAlways, ChangeFreqHourly, ChangeFreqDaily, ChangeFreqWeekly,
		ChangeFreqMonthly, ChangeFreqYearly, ChangeFreqNever:
		return true
	}
	return false
}

// ParseChangeFreq converts a raw string to a ChangeFreq.
// The empty string is accepted and means "absent".
func ParseChangeFreq(s string) (ChangeFreq, bool) {
	if s == "" {
		return "", true
	}
	f := ChangeFreq(s)
	return f, f.Valid()
}

// Route is a single indexable application path.
type Route struct {
	Path       string     `json:"path" yaml:"path"`
	LastMod    *time.Time `json:"lastmod,omitempty" yaml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `json:"changefreq,omitempty" yaml:"changefreq,omitempty"`
	Priority   *float64   `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// ClampPriority returns p limited to [0, 1].
// NaN has no meaningful clamp and is reported as not ok.
func ClampPriority(p float64) (float64, bool) {
	if math.IsNaN(p) {
		return 0, false
	}
	return math.Max(0, math.Min(1, p)), true
}

// StoredRoute is a Route persisted in the sitemap_routes table.
type StoredRoute struct {
	Route
	ID        uuid.UUID `json:"id"`
	Position  int       `json:"position"`
	Indexable bool      `json:"indexable"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
