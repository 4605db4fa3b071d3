// Package acquisition resolves a job reference into normalized job fields,
// choosing between remote extraction and manually supplied text.
package acquisition

import (
	"context"
	"strings"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/cleaning"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/scrape"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/types"
)

// Mode selects how job fields are acquired.
type Mode string

const (
	// ModeAuto extracts fields from a posting link
	ModeAuto Mode = "auto"
	// ModeManual uses a description pasted by the user
	ModeManual Mode = "manual"
)

// FailureReason classifies why acquisition produced no usable description.
type FailureReason string

const (
	// FailureNone means acquisition succeeded
	FailureNone FailureReason = ""
	// FailureLinkRequired means auto mode was selected without a link
	FailureLinkRequired FailureReason = "link_required"
	// FailureExtractionEmpty means extraction yielded no description
	FailureExtractionEmpty FailureReason = "extraction_empty"
	// FailureDescriptionRequired means manual mode got no description
	FailureDescriptionRequired FailureReason = "description_required"
)

// DefaultTitle is the placeholder used when no title can be derived.
const DefaultTitle = "Untitled posting"

// Outcome is the result of one acquisition attempt.
type Outcome struct {
	Fields types.JobFields
	OK     bool
	Reason FailureReason
}

// Resolver acquires and normalizes job fields. It is stateless per call and
// makes at most one network attempt.
type Resolver struct {
	strategy   scrape.Strategy
	normalizer *cleaning.Normalizer
}

// NewResolver creates a Resolver from an extraction strategy and a
// description normalizer.
func NewResolver(strategy scrape.Strategy, normalizer *cleaning.Normalizer) *Resolver {
	return &Resolver{strategy: strategy, normalizer: normalizer}
}

// Resolve acquires job fields for the given mode. Supplied fields are never
// overwritten: extraction only fills fields that are still empty. In auto
// mode a supplied description is ignored, matching the user's choice of
// extracting from the link.
func (r *Resolver) Resolve(ctx context.Context, mode Mode, link string, supplied types.JobFields) Outcome {
	fields := supplied

	switch mode {
	case ModeAuto:
		link = strings.TrimSpace(link)
		if link == "" {
			return Outcome{Fields: fields, Reason: FailureLinkRequired}
		}

		fields.Description = ""
		fields.FillFrom(r.strategy.Extract(ctx, link))

		if fields.Description != "" {
			fields.Description = r.normalizer.Normalize(ctx, fields.Description)
		}
		if fields.Description == "" {
			return Outcome{Fields: fields, Reason: FailureExtractionEmpty}
		}

	default: // ModeManual
		if strings.TrimSpace(fields.Description) == "" {
			return Outcome{Fields: fields, Reason: FailureDescriptionRequired}
		}
		fields.Description = r.normalizer.Normalize(ctx, fields.Description)
		if fields.Description == "" {
			return Outcome{Fields: fields, Reason: FailureDescriptionRequired}
		}
	}

	if fields.Title == "" {
		fields.Title = titleFromDescription(fields.Description)
	}

	return Outcome{Fields: fields, OK: true, Reason: FailureNone}
}

// titleFromDescription derives a title from the first non-empty description
// line, truncated to the title limit.
func titleFromDescription(description string) string {
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return types.TruncateTitle(line)
		}
	}
	return DefaultTitle
}
