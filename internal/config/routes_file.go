package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"lingograde/internal/models"
	"lingograde/internal/validation"
)

// RoutesFile represents the structure of the routes.yaml file.
type RoutesFile struct {
	Routes []RouteConfig `yaml:"routes"`
}

// RouteConfig defines one indexable route in the YAML file.
type RouteConfig struct {
	Path       string   `yaml:"path"`
	LastMod    string   `yaml:"lastmod,omitempty"`    // "2006-01-02" or RFC 3339
	ChangeFreq string   `yaml:"changefreq,omitempty"` // always|hourly|daily|weekly|monthly|yearly|never
	Priority   *float64 `yaml:"priority,omitempty"`
}

// LoadRoutesFile loads static sitemap routes from a YAML file.
// Returns nil without error if the file doesn't exist.
func LoadRoutesFile(path string) ([]models.Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Routes file is optional
			return nil, nil
		}
		return nil, err
	}
	return ParseRoutes(data)
}

// ParseRoutes decodes a routes document and rejects relative or duplicate paths.
func ParseRoutes(data []byte) ([]models.Route, error) {
	var file RoutesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse routes file: %w", err)
	}

	routes := make([]models.Route, 0, len(file.Routes))
	for i, rc := range file.Routes {
		r, err := rc.toRoute()
		if err != nil {
			return nil, fmt.Errorf("routes[%d] (%s): %w", i, rc.Path, err)
		}
		routes = append(routes, r)
	}
	if err := validation.ValidateRoutes(routes); err != nil {
		return nil, fmt.Errorf("routes file: %w", err)
	}
	return routes, nil
}

func (rc RouteConfig) toRoute() (models.Route, error) {
	freq, ok := models.ParseChangeFreq(rc.ChangeFreq)
	if !ok {
		return models.Route{}, fmt.Errorf("unknown changefreq %q", rc.ChangeFreq)
	}

	r := models.Route{
		Path:       rc.Path,
		ChangeFreq: freq,
		Priority:   rc.Priority,
	}

	if rc.LastMod != "" {
		t, err := parseLastMod(rc.LastMod)
		if err != nil {
			return models.Route{}, err
		}
		r.LastMod = &t
	}
	return r, nil
}

func parseLastMod(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid lastmod %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

// DefaultRoutes returns the public marketing pages that are always indexable.
// Used when no routes file is present.
func DefaultRoutes() []models.Route {
	p := func(f float64) *float64 { return &f }
	return []models.Route{
		{Path: "/", ChangeFreq: models.ChangeFreqDaily, Priority: p(1.0)},
		{Path: "/features", ChangeFreq: models.ChangeFreqWeekly, Priority: p(0.9)},
		{Path: "/pricing", ChangeFreq: models.ChangeFreqWeekly, Priority: p(0.9)},
		{Path: "/blog", ChangeFreq: models.ChangeFreqDaily, Priority: p(0.8)},
		{Path: "/about", ChangeFreq: models.ChangeFreqMonthly, Priority: p(0.6)},
		{Path: "/contact", ChangeFreq: models.ChangeFreqMonthly, Priority: p(0.5)},
		{Path: "/login", ChangeFreq: models.ChangeFreqYearly, Priority: p(0.3)},
		{Path: "/signup", ChangeFreq: models.ChangeFreqYearly, Priority: p(0.5)},
		{Path: "/privacy", ChangeFreq: models.ChangeFreqYearly, Priority: p(0.2)},
		{Path: "/terms", ChangeFreq: models.ChangeFreqYearly, Priority: p(0.2)},
	}
}
