package cleaning

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Refiner is an external text-normalization capability. Implementations must
// fail open: Refine reports ok=false when no refinement is available, and
// never returns an error. A failing refiner must not block the pipeline.
type Refiner interface {
	Refine(ctx context.Context, text string) (refined string, ok bool)
}

// Normalizer runs the heuristic noise filter and then, when a refiner is
// configured, attempts an AI refinement pass over the filtered text.
type Normalizer struct {
	refiner Refiner
	log     *zap.Logger
}

// NewNormalizer creates a Normalizer. refiner may be nil, in which case only
// the heuristic filter runs.
func NewNormalizer(refiner Refiner, log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{refiner: refiner, log: log}
}

// Normalize cleans a raw job description. The refined text supersedes the
// filtered text only when the refiner produced a non-empty result; otherwise
// the heuristic result is kept. Non-empty input never normalizes to an
// un-inspectable nil: the worst case is the filtered text itself.
func (n *Normalizer) Normalize(ctx context.Context, raw string) string {
	filtered := Filter(raw)
	if n.refiner == nil || filtered == "" {
		return filtered
	}

	refined, ok := n.refiner.Refine(ctx, filtered)
	if !ok {
		n.log.Debug("refinement unavailable, keeping heuristic result")
		return filtered
	}
	refined = strings.TrimSpace(refined)
	if refined == "" {
		return filtered
	}
	return refined
}
