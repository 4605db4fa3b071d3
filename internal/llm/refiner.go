package llm

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/logger"
)

const refinePrompt = `You are cleaning a job description that was scraped from a web page.
Remove any remaining boilerplate: application prompts, share buttons, metadata labels,
cookie notices, "about the company" marketing blurbs and navigation fragments.
Keep every line that describes the role, its requirements, responsibilities or benefits.
Do not summarize, translate or reword the content.
Return ONLY the cleaned description text, no explanation.

Job description:
"""
%s
"""`

// logPreviewLimit caps refined text echoed into debug log lines.
const logPreviewLimit = 120

// DescriptionRefiner applies a model-based cleanup pass to an already
// heuristically filtered job description. It implements cleaning.Refiner and
// therefore fails open: every failure is logged and reported as "no
// refinement available".
type DescriptionRefiner struct {
	client Client
	log    *zap.Logger
}

// NewDescriptionRefiner creates a refiner backed by the given client.
func NewDescriptionRefiner(client Client, log *zap.Logger) *DescriptionRefiner {
	if log == nil {
		log = zap.NewNop()
	}
	return &DescriptionRefiner{client: client, log: log}
}

// Refine asks the lite model to strip residual boilerplate. ok is false when
// the call fails or the response is unusable; the caller keeps its heuristic
// result in that case.
func (r *DescriptionRefiner) Refine(ctx context.Context, text string) (string, bool) {
	if r.client == nil || text == "" {
		return "", false
	}

	out, err := r.client.GenerateContent(ctx, strings.Replace(refinePrompt, "%s", text, 1), TierLite)
	if err != nil {
		r.log.Debug("description refinement failed", zap.Error(err))
		return "", false
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", false
	}
	// A cleanup pass only removes text. A response much longer than the
	// input means the model invented content; discard it.
	if len(out) > 2*len(text) {
		r.log.Debug("description refinement discarded, output grew",
			zap.Int("input_len", len(text)), zap.Int("output_len", len(out)))
		return "", false
	}

	r.log.Debug("description refined",
		zap.Int("input_len", len(text)), zap.Int("output_len", len(out)),
		zap.String("preview", logger.TruncateForLog(out, logPreviewLimit)))
	return out, true
}
