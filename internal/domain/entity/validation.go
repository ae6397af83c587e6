package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// Categories is the editorial vocabulary offered by the admin panel.
var Categories = []string{
	"General",
	"Technology",
	"Business",
	"Sports",
	"Entertainment",
	"Health",
	"Science",
	"Politics",
}

// IsKnownCategory reports whether c belongs to Categories (case-insensitive).
func IsKnownCategory(c string) bool {
	for _, known := range Categories {
		if strings.EqualFold(known, c) {
			return true
		}
	}
	return false
}

// CanonicalCategory returns the vocabulary spelling of c, or c unchanged
// when it is not part of the vocabulary.
func CanonicalCategory(c string) string {
	for _, known := range Categories {
		if strings.EqualFold(known, c) {
			return known
		}
	}
	return c
}

// ValidateURL validates the format of a source URL.
// It checks that the URL is well-formed, uses HTTP/HTTPS scheme, and has a host.
// The URL is only stored and rendered as a link, never fetched by the server.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "sourceUrl", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "sourceUrl",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "sourceUrl", Message: "URL is invalid"}
	}

	// HTTPまたはHTTPSスキームのみ許可
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "sourceUrl", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "sourceUrl", Message: "URL must have a valid host"}
	}

	return nil
}
