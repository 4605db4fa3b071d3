package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/types"
)

const (
	minResumeWords = 120
	maxResumeWords = 1400
	topKeywordN    = 20
)

var (
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern  = regexp.MustCompile(`(\+?\d[\d\s().\-]{7,}\d)`)
	numberPattern = regexp.MustCompile(`\d`)
)

// sectionMarkers are headers a reviewable résumé is expected to carry, in
// either supported language.
var sectionMarkers = [][]string{
	{"experience", "experiência", "experiencia"},
	{"education", "formação", "formacao", "educação"},
	{"skills", "habilidades", "competências", "competencias"},
}

func (Engine) AuditResume(resumeText, jobText string) *types.AuditReport {
	return AuditResume(resumeText, jobText)
}

// AuditResume runs heuristic quality checks of a résumé against a job
// description and returns a structured report. It performs no external calls
// and is deterministic.
func AuditResume(resumeText, jobText string) *types.AuditReport {
	report := &types.AuditReport{}

	words := len(strings.Fields(resumeText))
	report.Checks = append(report.Checks, types.AuditCheck{
		Name:   "length",
		Passed: words >= minResumeWords && words <= maxResumeWords,
		Detail: fmt.Sprintf("%d words (expected %d-%d)", words, minResumeWords, maxResumeWords),
	})

	hasContact := emailPattern.MatchString(resumeText) || phonePattern.MatchString(resumeText)
	report.Checks = append(report.Checks, types.AuditCheck{
		Name:   "contact_info",
		Passed: hasContact,
		Detail: contactDetail(hasContact),
	})

	quantified := countQuantifiedLines(resumeText)
	report.Checks = append(report.Checks, types.AuditCheck{
		Name:   "quantified_results",
		Passed: quantified >= 2,
		Detail: fmt.Sprintf("%d lines with measurable results", quantified),
	})

	found := countSections(resumeText)
	report.Checks = append(report.Checks, types.AuditCheck{
		Name:   "sections",
		Passed: found >= 2,
		Detail: fmt.Sprintf("%d of %d expected sections found", found, len(sectionMarkers)),
	})

	report.KeywordCoverage = keywordCoverage(resumeText, jobText)
	report.Checks = append(report.Checks, types.AuditCheck{
		Name:   "keyword_coverage",
		Passed: report.KeywordCoverage >= 40,
		Detail: fmt.Sprintf("%d%% of the posting's top terms appear in the resume", report.KeywordCoverage),
	})

	report.Grade = grade(report)
	return report
}

func contactDetail(found bool) string {
	if found {
		return "email or phone number present"
	}
	return "no email or phone number found"
}

func countQuantifiedLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if numberPattern.MatchString(line) && len(strings.Fields(line)) >= 3 {
			count++
		}
	}
	return count
}

func countSections(text string) int {
	lower := strings.ToLower(text)
	found := 0
	for _, aliases := range sectionMarkers {
		for _, alias := range aliases {
			if strings.Contains(lower, alias) {
				found++
				break
			}
		}
	}
	return found
}

// keywordCoverage is the percentage of the job's most frequent terms that
// appear anywhere in the résumé.
func keywordCoverage(resumeText, jobText string) int {
	top := TopTerms(jobText, topKeywordN)
	if len(top) == 0 {
		return 0
	}

	resumeTerms := make(map[string]bool)
	for _, tok := range Tokenize(resumeText) {
		resumeTerms[tok] = true
	}

	hits := 0
	for _, term := range top {
		if resumeTerms[term] {
			hits++
		}
	}
	return hits * 100 / len(top)
}

func grade(report *types.AuditReport) string {
	passed := 0
	for _, check := range report.Checks {
		if check.Passed {
			passed++
		}
	}
	switch {
	case passed >= 5:
		return "A"
	case passed == 4:
		return "B"
	case passed == 3:
		return "C"
	default:
		return "D"
	}
}
