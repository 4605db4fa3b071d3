package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/acquisition"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/types"
)

type fakeAcquirer struct {
	outcome acquisition.Outcome
	mode    acquisition.Mode
	link    string
}

func (f *fakeAcquirer) Resolve(_ context.Context, mode acquisition.Mode, link string, _ types.JobFields) acquisition.Outcome {
	f.mode = mode
	f.link = link
	return f.outcome
}

type fakeExtractor struct{ text string }

func (f *fakeExtractor) ExtractText(string, io.Reader) string { return f.text }

type fakeScorer struct{ score int }

func (f *fakeScorer) Compatibility(string, string) int { return f.score }

type fakeAuditor struct{}

func (fakeAuditor) AuditResume(string, string) *types.AuditReport {
	return &types.AuditReport{Grade: "B"}
}

type fakeFeedback struct{ report *types.FeedbackReport }

func (f *fakeFeedback) GenerateFeedback(context.Context, string, string, string, string) *types.FeedbackReport {
	return f.report
}

type fakeRewrite struct{ report *types.RewriteReport }

func (f *fakeRewrite) GenerateRewrite(context.Context, string, string, string, string) *types.RewriteReport {
	return f.report
}

type fakeHistory struct {
	mu    sync.Mutex
	saved bool
	err   error
	title string
	score int
	done  chan struct{}
}

func newFakeHistory(err error) *fakeHistory {
	return &fakeHistory{err: err, done: make(chan struct{})}
}

func (f *fakeHistory) SaveAnalysis(_ context.Context, _ string, title string, score int, _ []string, _ string) error {
	f.mu.Lock()
	f.saved = true
	f.title = title
	f.score = score
	f.mu.Unlock()
	close(f.done)
	return f.err
}

func (f *fakeHistory) wait(t *testing.T) {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(time.Second):
		t.Fatal("history save never ran")
	}
}

func goodOutcome() acquisition.Outcome {
	return acquisition.Outcome{
		OK: true,
		Fields: types.JobFields{
			Title:       "Backend Engineer",
			Company:     "Acme",
			Description: "Build Go services.",
		},
	}
}

func okController(history HistoryStore) (*Controller, *fakeAcquirer) {
	acq := &fakeAcquirer{outcome: goodOutcome()}
	c := NewController(
		acq,
		&fakeExtractor{text: "Go engineer with five years of experience."},
		&fakeScorer{score: 67},
		fakeAuditor{},
		&fakeFeedback{report: &types.FeedbackReport{Score: 70, VerdictText: "good"}},
		&fakeRewrite{report: &types.RewriteReport{SummaryTip: "tip"}},
		history,
		nil,
	)
	return c, acq
}

func TestAnalyze(t *testing.T) {
	history := newFakeHistory(nil)
	c, acq := okController(history)

	result, uerr := c.Analyze(context.Background(), Request{
		UserID:         "user-1",
		Mode:           acquisition.ModeAuto,
		JobLink:        "https://www.linkedin.com/jobs/view/123",
		ResumeFilename: "cv.txt",
		Resume:         strings.NewReader("resume"),
	})

	require.Nil(t, uerr)
	require.NotNil(t, result)
	assert.Equal(t, "Backend Engineer", result.Job.Title)
	assert.Equal(t, 67, result.Score)
	assert.Equal(t, "B", result.Audit.Grade)
	assert.Equal(t, 70, result.Feedback.Score)
	assert.Equal(t, "tip", result.Rewrite.SummaryTip)
	assert.Equal(t, acquisition.ModeAuto, acq.mode)

	history.wait(t)
	assert.True(t, history.saved)
	assert.Equal(t, "Backend Engineer", history.title)
	assert.Equal(t, 70, history.score)
}

func TestAnalyzeWithoutResume(t *testing.T) {
	c, _ := okController(nil)

	result, uerr := c.Analyze(context.Background(), Request{Mode: acquisition.ModeManual})

	assert.Nil(t, result)
	require.NotNil(t, uerr)
	assert.Equal(t, SeverityWarning, uerr.Severity)
	assert.Equal(t, msgResumeRequired, uerr.Message)
}

func TestAnalyzeAcquisitionFailures(t *testing.T) {
	cases := []struct {
		reason  acquisition.FailureReason
		message string
	}{
		{acquisition.FailureLinkRequired, msgLinkRequired},
		{acquisition.FailureExtractionEmpty, msgExtractionEmpty},
		{acquisition.FailureDescriptionRequired, msgDescriptionRequired},
	}

	for _, tc := range cases {
		t.Run(string(tc.reason), func(t *testing.T) {
			acq := &fakeAcquirer{outcome: acquisition.Outcome{OK: false, Reason: tc.reason}}
			c := NewController(acq, &fakeExtractor{text: "r"}, &fakeScorer{}, fakeAuditor{},
				&fakeFeedback{report: &types.FeedbackReport{}}, nil, nil, nil)

			result, uerr := c.Analyze(context.Background(), Request{
				Resume: strings.NewReader("resume"),
			})

			assert.Nil(t, result)
			require.NotNil(t, uerr)
			assert.Equal(t, SeverityWarning, uerr.Severity)
			assert.Equal(t, tc.message, uerr.Message)
		})
	}
}

func TestAnalyzeFeedbackFailureAborts(t *testing.T) {
	acq := &fakeAcquirer{outcome: goodOutcome()}
	history := newFakeHistory(nil)
	c := NewController(acq, &fakeExtractor{text: "r"}, &fakeScorer{}, fakeAuditor{},
		&fakeFeedback{report: &types.FeedbackReport{Err: true, ErrMessage: "AI unavailable"}},
		nil, history, nil)

	result, uerr := c.Analyze(context.Background(), Request{
		UserID: "user-1",
		Resume: strings.NewReader("resume"),
	})

	assert.Nil(t, result)
	require.NotNil(t, uerr)
	assert.Equal(t, SeverityDanger, uerr.Severity)
	assert.Equal(t, "AI unavailable", uerr.Message)
	assert.False(t, history.saved)
}

func TestAnalyzeRewriteFailureAborts(t *testing.T) {
	acq := &fakeAcquirer{outcome: goodOutcome()}
	c := NewController(acq, &fakeExtractor{text: "r"}, &fakeScorer{}, fakeAuditor{},
		&fakeFeedback{report: &types.FeedbackReport{Score: 50}},
		&fakeRewrite{report: &types.RewriteReport{Err: true, ErrMessage: "AI unavailable"}},
		nil, nil)

	result, uerr := c.Analyze(context.Background(), Request{Resume: strings.NewReader("resume")})

	assert.Nil(t, result)
	require.NotNil(t, uerr)
	assert.Equal(t, SeverityDanger, uerr.Severity)
}

func TestAnalyzeWithoutOptionalCollaborators(t *testing.T) {
	acq := &fakeAcquirer{outcome: goodOutcome()}
	c := NewController(acq, &fakeExtractor{text: "r"}, &fakeScorer{score: 10}, fakeAuditor{},
		&fakeFeedback{report: &types.FeedbackReport{Score: 10}}, nil, nil, nil)

	result, uerr := c.Analyze(context.Background(), Request{Resume: strings.NewReader("resume")})

	require.Nil(t, uerr)
	require.NotNil(t, result)
	assert.Nil(t, result.Rewrite)
}

func TestAnalyzeHistorySaveFailureIsSwallowed(t *testing.T) {
	history := newFakeHistory(errors.New("connection refused"))
	c, _ := okController(history)

	result, uerr := c.Analyze(context.Background(), Request{
		UserID: "user-1",
		Resume: strings.NewReader("resume"),
	})

	require.Nil(t, uerr)
	require.NotNil(t, result)
	history.wait(t)
}

func TestAnalyzeSkipsHistoryForAnonymousUser(t *testing.T) {
	history := newFakeHistory(nil)
	c, _ := okController(history)

	_, uerr := c.Analyze(context.Background(), Request{
		Resume: strings.NewReader("resume"),
	})

	require.Nil(t, uerr)
	select {
	case <-history.done:
		t.Fatal("history save should not run without a user")
	case <-time.After(50 * time.Millisecond):
	}
}
