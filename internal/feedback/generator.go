// Package feedback synthesizes recruiter-style feedback and resume rewrite
// suggestions with a generative model. Failures are reported through the
// error marker on the returned report, never as a Go error; the pipeline
// decides whether a failed report aborts the request.
package feedback

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/llm"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/prompts"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/schemas"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/types"
)

const promptFile = "analysis.json"

// unavailableMessage is the user-facing explanation for a failed generative
// call. The cause goes to the log, not to the user.
const unavailableMessage = "The AI analysis is unavailable right now. Try again in a few minutes."

// DefaultVerdictTitle is used when the model omits a verdict headline.
const DefaultVerdictTitle = "Analysis summary"

// Generator produces feedback and rewrite reports for a résumé/job pair.
type Generator struct {
	client llm.Client
	log    *zap.Logger
}

// NewGenerator creates a Generator backed by the given model client.
func NewGenerator(client llm.Client, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{client: client, log: log}
}

// GenerateFeedback produces the structured compatibility feedback report.
// On failure the returned report carries the error marker and a user-facing
// message.
func (g *Generator) GenerateFeedback(ctx context.Context, resumeText, jobText, title, company string) *types.FeedbackReport {
	raw, ok := g.generate(ctx, "feedback", "feedback.schema.json", resumeText, jobText, title, company)
	if !ok {
		return &types.FeedbackReport{Err: true, ErrMessage: unavailableMessage}
	}

	var report types.FeedbackReport
	if err := json.Unmarshal(raw, &report); err != nil {
		g.log.Warn("feedback response unmarshal failed", zap.Error(err))
		return &types.FeedbackReport{Err: true, ErrMessage: unavailableMessage}
	}

	applyFeedbackDefaults(&report)
	return &report
}

// GenerateRewrite produces rewrite suggestions for the weakest résumé
// entries.
func (g *Generator) GenerateRewrite(ctx context.Context, resumeText, jobText, title, company string) *types.RewriteReport {
	raw, ok := g.generate(ctx, "rewrite", "rewrite.schema.json", resumeText, jobText, title, company)
	if !ok {
		return &types.RewriteReport{Err: true, ErrMessage: unavailableMessage}
	}

	var report types.RewriteReport
	if err := json.Unmarshal(raw, &report); err != nil {
		g.log.Warn("rewrite response unmarshal failed", zap.Error(err))
		return &types.RewriteReport{Err: true, ErrMessage: unavailableMessage}
	}

	return &report
}

// generate runs one prompted JSON call and validates the response against
// the named schema. ok is false on any failure.
func (g *Generator) generate(ctx context.Context, promptKey, schemaName, resumeText, jobText, title, company string) ([]byte, bool) {
	if g.client == nil {
		return nil, false
	}

	template, err := prompts.Get(promptFile, promptKey)
	if err != nil {
		g.log.Error("prompt template missing", zap.String("key", promptKey), zap.Error(err))
		return nil, false
	}

	prompt := prompts.Format(template, map[string]string{
		"Resume":  resumeText,
		"Job":     jobText,
		"Title":   title,
		"Company": company,
	})

	out, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		g.log.Warn("generative call failed", zap.String("key", promptKey), zap.Error(err))
		return nil, false
	}

	raw := []byte(llm.CleanJSONBlock(out))
	if err := schemas.Validate(schemaName, raw); err != nil {
		g.log.Warn("generative response failed schema validation",
			zap.String("key", promptKey), zap.Error(err))
		return nil, false
	}

	return raw, true
}

// applyFeedbackDefaults backfills fields the model is allowed to omit so
// rendering code never deals with half-empty reports.
func applyFeedbackDefaults(report *types.FeedbackReport) {
	if report.VerdictTitle == "" {
		report.VerdictTitle = DefaultVerdictTitle
	}
	if report.MissingSkills == nil {
		report.MissingSkills = []string{}
	}
	if report.ScoreTech == 0 {
		report.ScoreTech = report.Score
	}
	if report.ScoreExperience == 0 {
		report.ScoreExperience = report.Score
	}
	if report.ScoreContext == 0 {
		report.ScoreContext = report.Score
	}
}
