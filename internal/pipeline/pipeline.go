// Package pipeline orchestrates a full résumé/job compatibility analysis:
// posting acquisition, résumé text extraction, scoring, audit, generative
// feedback and rewrite suggestions, and history persistence.
package pipeline

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/acquisition"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/resume"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/types"
)

// Severity classifies a user-facing failure. Warnings are recoverable input
// problems; danger means the analysis itself failed.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// UserError is a human-readable failure returned to the caller instead of a
// partial result.
type UserError struct {
	Message  string
	Severity Severity
}

func (e *UserError) Error() string { return e.Message }

// User-facing messages for the recoverable input failures.
const (
	msgResumeRequired      = "Attach your resume before running the analysis."
	msgLinkRequired        = "Paste the job posting link to use automatic extraction."
	msgExtractionEmpty     = "We could not read the posting from that link. Switch to manual mode and paste the description."
	msgDescriptionRequired = "Paste the job description to use manual mode."
)

// historySaveTimeout bounds the background history write after the request
// has already been answered.
const historySaveTimeout = 5 * time.Second

// Acquirer resolves the job posting fields for a request.
type Acquirer interface {
	Resolve(ctx context.Context, mode acquisition.Mode, link string, supplied types.JobFields) acquisition.Outcome
}

// ResumeExtractor turns an uploaded résumé file into plain text.
type ResumeExtractor interface {
	ExtractText(filename string, r io.Reader) string
}

// Scorer computes the lexical compatibility score.
type Scorer interface {
	Compatibility(resumeText, jobText string) int
}

// Auditor runs the heuristic résumé quality checks.
type Auditor interface {
	AuditResume(resumeText, jobText string) *types.AuditReport
}

// FeedbackGenerator produces the generative feedback report.
type FeedbackGenerator interface {
	GenerateFeedback(ctx context.Context, resumeText, jobText, title, company string) *types.FeedbackReport
}

// RewriteGenerator produces the generative rewrite report.
type RewriteGenerator interface {
	GenerateRewrite(ctx context.Context, resumeText, jobText, title, company string) *types.RewriteReport
}

// HistoryStore persists finished analyses.
type HistoryStore interface {
	SaveAnalysis(ctx context.Context, userID, title string, score int, missingSkills []string, jobLink string) error
}

// Request carries everything a single analysis needs.
type Request struct {
	UserID string

	Mode    acquisition.Mode
	JobLink string
	Title   string
	Company string
	// Description is the pasted posting text for manual mode.
	Description string

	ResumeFilename string
	Resume         io.Reader
}

// Result is the complete analysis output.
type Result struct {
	Job      types.JobFields       `json:"job"`
	Score    int                   `json:"score"`
	Audit    *types.AuditReport    `json:"audit"`
	Feedback *types.FeedbackReport `json:"feedback"`
	Rewrite  *types.RewriteReport  `json:"rewrite"`
}

// Controller wires the analysis stages together. Optional collaborators
// (history, rewrite) may be nil and are skipped.
type Controller struct {
	acquirer  Acquirer
	extractor ResumeExtractor
	scorer    Scorer
	auditor   Auditor
	feedback  FeedbackGenerator
	rewrite   RewriteGenerator
	history   HistoryStore
	log       *zap.Logger
}

// NewController creates a Controller. acquirer, extractor, scorer, auditor
// and feedback are required; rewrite and history may be nil.
func NewController(acquirer Acquirer, extractor ResumeExtractor, scorer Scorer, auditor Auditor, feedback FeedbackGenerator, rewrite RewriteGenerator, history HistoryStore, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		acquirer:  acquirer,
		extractor: extractor,
		scorer:    scorer,
		auditor:   auditor,
		feedback:  feedback,
		rewrite:   rewrite,
		history:   history,
		log:       log,
	}
}

// Analyze runs the full pipeline for one request. It returns either a
// complete result or a user-facing error, never both and never a partial
// result.
func (c *Controller) Analyze(ctx context.Context, req Request) (*Result, *UserError) {
	if req.Resume == nil {
		return nil, &UserError{Message: msgResumeRequired, Severity: SeverityWarning}
	}

	supplied := types.JobFields{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
	}
	outcome := c.acquirer.Resolve(ctx, req.Mode, req.JobLink, supplied)
	if !outcome.OK {
		return nil, &UserError{Message: acquisitionMessage(outcome.Reason), Severity: SeverityWarning}
	}
	job := outcome.Fields

	resumeText := c.extractor.ExtractText(req.ResumeFilename, req.Resume)
	if resume.IsErrorText(resumeText) {
		c.log.Warn("resume extraction reported a read failure",
			zap.String("filename", req.ResumeFilename))
	}

	score := c.scorer.Compatibility(resumeText, job.Description)
	audit := c.auditor.AuditResume(resumeText, job.Description)

	fb := c.feedback.GenerateFeedback(ctx, resumeText, job.Description, job.Title, job.Company)
	if fb.Err {
		return nil, &UserError{Message: fb.ErrMessage, Severity: SeverityDanger}
	}

	var rw *types.RewriteReport
	if c.rewrite != nil {
		rw = c.rewrite.GenerateRewrite(ctx, resumeText, job.Description, job.Title, job.Company)
		if rw.Err {
			return nil, &UserError{Message: rw.ErrMessage, Severity: SeverityDanger}
		}
	}

	c.saveHistory(ctx, req, job, fb)

	return &Result{
		Job:      job,
		Score:    score,
		Audit:    audit,
		Feedback: fb,
		Rewrite:  rw,
	}, nil
}

// saveHistory persists the analysis in the background. A failed save is
// logged and never surfaces to the caller.
func (c *Controller) saveHistory(ctx context.Context, req Request, job types.JobFields, fb *types.FeedbackReport) {
	if c.history == nil || req.UserID == "" {
		return
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historySaveTimeout)
	go func() {
		defer cancel()
		err := c.history.SaveAnalysis(saveCtx, req.UserID, job.Title, fb.Score, fb.MissingSkills, req.JobLink)
		if err != nil {
			c.log.Warn("history save failed",
				zap.String("user_id", req.UserID), zap.Error(err))
		}
	}()
}

// acquisitionMessage maps an acquisition failure to its user-facing text.
func acquisitionMessage(reason acquisition.FailureReason) string {
	switch reason {
	case acquisition.FailureLinkRequired:
		return msgLinkRequired
	case acquisition.FailureExtractionEmpty:
		return msgExtractionEmpty
	case acquisition.FailureDescriptionRequired:
		return msgDescriptionRequired
	default:
		return msgExtractionEmpty
	}
}
