// Package types provides type definitions for structured data shared across the analyzer pipeline.
package types

import "strings"

// MaxTitleLength is the maximum number of characters kept for a job title.
const MaxTitleLength = 120

// JobFields holds the three fields acquired for a job posting.
// Fields are filled incrementally: a stage only sets a field that is still
// empty and never overwrites a value supplied by the caller.
type JobFields struct {
	Title       string `json:"job_title"`
	Company     string `json:"company"`
	Description string `json:"job_description"`
}

// IsEmpty reports whether no field has been filled.
func (f JobFields) IsEmpty() bool {
	return f.Title == "" && f.Company == "" && f.Description == ""
}

// FillFrom copies fields from other into f, but only into fields that are
// still empty.
func (f *JobFields) FillFrom(other JobFields) {
	if f.Title == "" {
		f.Title = other.Title
	}
	if f.Company == "" {
		f.Company = other.Company
	}
	if f.Description == "" {
		f.Description = other.Description
	}
}

// TruncateTitle trims a title to MaxTitleLength characters, collapsing
// internal whitespace runs to single spaces first.
func TruncateTitle(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	runes := []rune(title)
	if len(runes) > MaxTitleLength {
		return string(runes[:MaxTitleLength])
	}
	return title
}
