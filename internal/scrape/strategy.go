// Package scrape extracts job posting fields from known posting-site page
// layouts. Extraction is best-effort: a strategy that cannot read a page
// returns empty fields and never a hard failure.
package scrape

import (
	"context"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/types"
)

// Strategy extracts title, company and description from a posting URL.
// Implementations are bound to one site's markup; a strategy that does not
// recognize the URL returns empty fields without a network call.
type Strategy interface {
	Extract(ctx context.Context, url string) types.JobFields
}
