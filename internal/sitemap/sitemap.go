// Package sitemap renders sitemap protocol documents from route lists.
package sitemap

import (
	"encoding/xml"
	"errors"
	"strconv"
	"strings"
	"time"

	"lingograde/internal/models"
)

// Namespace is the sitemap protocol XML namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ErrInvalidInput is returned when the base URL is empty.
var ErrInvalidInput = errors.New("sitemap: invalid input")

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// NormalizeBaseURL trims whitespace and trailing slashes from baseURL.
func NormalizeBaseURL(baseURL string) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return "", ErrInvalidInput
	}
	return base, nil
}

// JoinURL joins a normalized base URL and a route path with exactly one slash between them.
func JoinURL(base, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// Generate renders routes as a sitemap document rooted at baseURL.
//
// Entries keep the input order. Optional fields that are absent or unusable
// (unknown changefreq, NaN priority, zero lastmod) are left out rather than
// reported. The only error is ErrInvalidInput for an empty base URL.
func Generate(routes []models.Route, baseURL string) (string, error) {
	base, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return "", err
	}

	doc := urlSet{
		Xmlns: Namespace,
		URLs:  make([]urlEntry, 0, len(routes)),
	}
	for _, r := range routes {
		doc.URLs = append(doc.URLs, entry(base, r))
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		// Only strings are marshalled, so this is unreachable in practice.
		return "", err
	}

	var b strings.Builder
	b.Grow(len(xml.Header) + len(out) + 1)
	b.WriteString(xml.Header)
	b.Write(out)
	b.WriteByte('\n')
	return b.String(), nil
}

func entry(base string, r models.Route) urlEntry {
	e := urlEntry{Loc: JoinURL(base, r.Path)}

	if r.LastMod != nil && !r.LastMod.IsZero() {
		e.LastMod = r.LastMod.UTC().Format(time.RFC3339)
	}
	if r.ChangeFreq.Valid() {
		e.ChangeFreq = string(r.ChangeFreq)
	}
	if r.Priority != nil {
		if p, ok := models.ClampPriority(*r.Priority); ok {
			e.Priority = formatPriority(p)
		}
	}
	return e
}

// formatPriority always keeps one decimal place so 1 renders as "1.0".
func formatPriority(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
