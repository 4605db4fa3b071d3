package types

// RecruiterView is the recruiter-perspective section of a feedback report.
type RecruiterView struct {
	Summary        string   `json:"summary"`
	RedFlags       []string `json:"red_flags"`
	FinalChecklist []string `json:"final_checklist"`
}

// FeedbackReport is the structured output of the feedback synthesizer.
// When the generative call fails, Err is set and ErrMessage carries the
// user-facing explanation; the rest of the report must be ignored.
type FeedbackReport struct {
	Score           int           `json:"score"`
	ScoreTech       int           `json:"score_tech"`
	ScoreExperience int           `json:"score_experience"`
	ScoreContext    int           `json:"score_context"`
	MissingSkills   []string      `json:"missing_skills"`
	VerdictTitle    string        `json:"verdict_title"`
	VerdictText     string        `json:"verdict_text"`
	RecruiterView   RecruiterView `json:"recruiter_view"`

	Err        bool   `json:"error,omitempty"`
	ErrMessage string `json:"error_message,omitempty"`
}

// RewrittenExperience is a single rewritten résumé entry proposed by the
// rewrite synthesizer.
type RewrittenExperience struct {
	Section  string   `json:"section"`
	Original string   `json:"original"`
	Improved string   `json:"improved"`
	Reasons  []string `json:"reasons"`
}

// RewriteReport is the structured output of the rewrite synthesizer.
type RewriteReport struct {
	Experiences []RewrittenExperience `json:"experiences"`
	SummaryTip  string                `json:"summary_tip"`

	Err        bool   `json:"error,omitempty"`
	ErrMessage string `json:"error_message,omitempty"`
}

// AuditCheck is one heuristic check of the résumé quality audit.
type AuditCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// AuditReport is the structured output of the résumé quality auditor.
type AuditReport struct {
	Grade           string       `json:"grade"`
	KeywordCoverage int          `json:"keyword_coverage"`
	Checks          []AuditCheck `json:"checks"`
}
