package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"lingograde/internal/models"
)

// Route validation errors.
var (
	ErrInvalidPath   = errors.New("invalid route path")
	ErrDuplicatePath = errors.New("duplicate route path")
)

// MaxPathLength bounds a route path. Sitemap loc values are limited to 2048 characters.
const MaxPathLength = 2000

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	// Check scheme - only allow http and https
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// ValidatePath checks that a route path is absolute, reasonably short, and free of
// whitespace, control characters, backslashes, query strings and fragments.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: path is required", ErrInvalidPath)
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: %q must start with /", ErrInvalidPath, path)
	}
	if strings.HasPrefix(path, "//") {
		return fmt.Errorf("%w: %q must not start with //", ErrInvalidPath, path)
	}
	if len(path) > MaxPathLength {
		return fmt.Errorf("%w: path exceeds %d characters", ErrInvalidPath, MaxPathLength)
	}
	if strings.ContainsAny(path, `\?#`) {
		return fmt.Errorf("%w: %q contains a backslash, query or fragment", ErrInvalidPath, path)
	}
	if !utf8.ValidString(path) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidPath, path)
	}
	for _, r := range path {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: %q contains whitespace or control characters", ErrInvalidPath, path)
		}
	}
	return nil
}

// ValidateRoutes checks every path in routes and rejects duplicates.
func ValidateRoutes(routes []models.Route) error {
	seen := make(map[string]struct{}, len(routes))
	for i, r := range routes {
		if err := ValidatePath(r.Path); err != nil {
			return fmt.Errorf("route %d: %w", i, err)
		}
		if _, ok := seen[r.Path]; ok {
			return fmt.Errorf("route %d: %w: %s", i, ErrDuplicatePath, r.Path)
		}
		seen[r.Path] = struct{}{}
	}
	return nil
}
