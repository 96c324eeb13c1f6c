package sitemap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"lingograde/internal/models"
)

type parsedURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type parsedSet struct {
	XMLName xml.Name    `xml:"urlset"`
	URLs    []parsedURL `xml:"url"`
}

func parse(t *testing.T, doc string) parsedSet {
	t.Helper()
	var set parsedSet
	if err := xml.Unmarshal([]byte(doc), &set); err != nil {
		t.Fatalf("output is not valid XML: %v\n%s", err, doc)
	}
	return set
}

func floatPtr(f float64) *float64 { return &f }

func TestGenerate_Scenario(t *testing.T) {
	routes := []models.Route{{Path: "/"}, {Path: "/about"}}

	doc, err := Generate(routes, "https://example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("document should start with an XML declaration, got %q", doc[:40])
	}
	if !strings.Contains(doc, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Errorf("document missing urlset root with namespace:\n%s", doc)
	}

	first := strings.Index(doc, "<loc>https://example.com/</loc>")
	second := strings.Index(doc, "<loc>https://example.com/about</loc>")
	if first < 0 || second < 0 {
		t.Fatalf("missing expected loc elements:\n%s", doc)
	}
	if first > second {
		t.Error("loc elements are not in input order")
	}
}

func TestGenerate_EmptyBaseURL(t *testing.T) {
	for _, base := range []string{"", "   ", "/"} {
		t.Run(fmt.Sprintf("%q", base), func(t *testing.T) {
			_, err := Generate([]models.Route{{Path: "/"}}, base)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Generate() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestGenerate_EmptyRoutes(t *testing.T) {
	for _, routes := range [][]models.Route{nil, {}} {
		doc, err := Generate(routes, "https://example.com")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		set := parse(t, doc)
		if len(set.URLs) != 0 {
			t.Errorf("got %d url elements, want 0", len(set.URLs))
		}
		if strings.Contains(doc, "<url>") {
			t.Errorf("empty document should have no <url> children:\n%s", doc)
		}
	}
}

func TestGenerate_Cardinality(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			routes := make([]models.Route, n)
			for i := range routes {
				routes[i] = models.Route{Path: fmt.Sprintf("/page-%d", i)}
			}

			doc, err := Generate(routes, "https://lingograde.com")
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			set := parse(t, doc)
			if len(set.URLs) != n {
				t.Fatalf("got %d url elements, want %d", len(set.URLs), n)
			}
			for i, u := range set.URLs {
				want := fmt.Sprintf("https://lingograde.com/page-%d", i)
				if u.Loc != want {
					t.Errorf("url %d loc = %q, want %q", i, u.Loc, want)
				}
			}
		})
	}
}

func TestGenerate_SlashBoundary(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{"plain", "https://example.com", "/about", "https://example.com/about"},
		{"base trailing slash", "https://example.com/", "/about", "https://example.com/about"},
		{"base many trailing slashes", "https://example.com///", "/about", "https://example.com/about"},
		{"path without slash", "https://example.com", "about", "https://example.com/about"},
		{"both missing", "https://example.com/", "about", "https://example.com/about"},
		{"root", "https://example.com/", "/", "https://example.com/"},
		{"empty path", "https://example.com", "", "https://example.com/"},
		{"base with path prefix", "https://example.com/app/", "/about", "https://example.com/app/about"},
		{"surrounding whitespace", "  https://example.com  ", "/about", "https://example.com/about"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Generate([]models.Route{{Path: tt.path}}, tt.base)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			set := parse(t, doc)
			if got := set.URLs[0].Loc; got != tt.want {
				t.Errorf("loc = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	lastmod := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	routes := []models.Route{
		{Path: "/", ChangeFreq: models.ChangeFreqDaily, Priority: floatPtr(1)},
		{Path: "/pricing", LastMod: &lastmod, Priority: floatPtr(0.8)},
		{Path: "/blog"},
	}

	a, err := Generate(routes, "https://lingograde.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := Generate(routes, "https://lingograde.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if a != b {
		t.Errorf("outputs differ:\n%s\n---\n%s", a, b)
	}
}

func TestGenerate_OptionalFields(t *testing.T) {
	lastmod := time.Date(2026, 3, 14, 11, 0, 0, 0, time.FixedZone("CET", 3600))
	routes := []models.Route{
		{Path: "/full", LastMod: &lastmod, ChangeFreq: models.ChangeFreqWeekly, Priority: floatPtr(0.5)},
		{Path: "/bare"},
	}

	doc, err := Generate(routes, "https://lingograde.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	set := parse(t, doc)

	full := set.URLs[0]
	if full.LastMod != "2026-03-14T10:00:00Z" {
		t.Errorf("lastmod = %q, want UTC W3C datetime", full.LastMod)
	}
	if full.ChangeFreq != "weekly" {
		t.Errorf("changefreq = %q, want weekly", full.ChangeFreq)
	}
	if full.Priority != "0.5" {
		t.Errorf("priority = %q, want 0.5", full.Priority)
	}

	bare := set.URLs[1]
	if bare.LastMod != "" || bare.ChangeFreq != "" || bare.Priority != "" {
		t.Errorf("bare route should have no optional fields, got %+v", bare)
	}
	if strings.Count(doc, "<lastmod>") != 1 || strings.Count(doc, "<priority>") != 1 {
		t.Errorf("optional elements emitted for a route without them:\n%s", doc)
	}
}

func TestGenerate_PriorityClamping(t *testing.T) {
	tests := []struct {
		name     string
		priority float64
		want     string
	}{
		{"above one", 1.5, "1.0"},
		{"exactly one", 1, "1.0"},
		{"below zero", -2, "0.0"},
		{"fraction", 0.25, "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Generate([]models.Route{{Path: "/", Priority: floatPtr(tt.priority)}}, "https://example.com")
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			want := "<priority>" + tt.want + "</priority>"
			if !strings.Contains(doc, want) {
				t.Errorf("document missing %s:\n%s", want, doc)
			}
		})
	}
}

func TestGenerate_DegradesOnMalformedFields(t *testing.T) {
	var zero time.Time
	routes := []models.Route{
		{Path: "/a", ChangeFreq: "fortnightly"},
		{Path: "/b", Priority: floatPtr(math.NaN())},
		{Path: "/c", LastMod: &zero},
	}

	doc, err := Generate(routes, "https://example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	set := parse(t, doc)
	if len(set.URLs) != 3 {
		t.Fatalf("got %d urls, want 3", len(set.URLs))
	}
	for _, u := range set.URLs {
		if u.ChangeFreq != "" || u.Priority != "" || u.LastMod != "" {
			t.Errorf("malformed optional field was emitted: %+v", u)
		}
	}
}

func TestGenerate_EscapesLoc(t *testing.T) {
	doc, err := Generate([]models.Route{{Path: "/search&lang=<en>"}}, "https://example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(doc, "<loc>https://example.com/search&amp;lang=&lt;en&gt;</loc>") {
		t.Errorf("loc was not escaped:\n%s", doc)
	}
	set := parse(t, doc)
	if set.URLs[0].Loc != "https://example.com/search&lang=<en>" {
		t.Errorf("loc = %q", set.URLs[0].Loc)
	}
}

func TestGenerate_DoesNotDeduplicate(t *testing.T) {
	doc, err := Generate([]models.Route{{Path: "/a"}, {Path: "/a"}}, "https://example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got := strings.Count(doc, "<loc>https://example.com/a</loc>"); got != 2 {
		t.Errorf("got %d entries for /a, want 2", got)
	}
}
