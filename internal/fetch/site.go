// Package fetch - site.go provides posting-site detection.
package fetch

import (
	"net/url"
	"strings"
)

// Source represents a known job posting site.
type Source string

const (
	// SourceLinkedIn is a public LinkedIn job posting page
	SourceLinkedIn Source = "linkedin"
	// SourceUnknown is an unrecognized site
	SourceUnknown Source = "unknown"
)

// DetectSource identifies the posting site from a URL. Unrecognized or
// malformed URLs map to SourceUnknown; callers skip extraction for those
// without issuing a network call.
func DetectSource(urlStr string) Source {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return SourceUnknown
	}

	host := strings.ToLower(parsed.Host)
	if host == "" {
		// Bare strings like "linkedin.com/jobs/..." parse with an empty
		// host; fall back to the raw string so pasted links still match.
		host = strings.ToLower(urlStr)
	}

	if strings.Contains(host, "linkedin.com") {
		return SourceLinkedIn
	}

	return SourceUnknown
}
