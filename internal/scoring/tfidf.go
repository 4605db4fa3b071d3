// Package scoring computes the résumé/job compatibility score and the
// heuristic résumé quality audit.
package scoring

import (
	"math"
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}+#]+`)

// Engine adapts the package functions to the pipeline's scorer and auditor
// interfaces.
type Engine struct{}

func (Engine) Compatibility(resumeText, jobText string) int {
	return Compatibility(resumeText, jobText)
}

// stopwords are excluded from scoring tokens. The set is bilingual for the
// same reason the noise table is: postings arrive in Portuguese and English.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "in": true, "is": true,
	"it": true, "of": true, "on": true, "or": true, "the": true, "to": true,
	"with": true, "you": true, "we": true, "our": true, "your": true,
	"o": true, "os": true, "um": true, "uma": true, "de": true, "da": true,
	"do": true, "das": true, "dos": true, "em": true, "no": true, "na": true,
	"nos": true, "nas": true, "e": true, "ou": true, "que": true, "com": true,
	"para": true, "por": true, "ser": true, "ter": true, "mais": true,
	"como": true, "se": true, "ao": true, "à": true,
}

// Tokenize lowercases text and splits it into scoring tokens, dropping
// stopwords and single characters.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len([]rune(tok)) < 2 || stopwords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Compatibility scores how well a résumé matches a job description on a
// 0-100 scale, using TF-IDF weighted cosine similarity over the two texts.
// IDF is smoothed so terms shared by both documents still contribute.
// The score is deterministic and symmetric in its arguments.
func Compatibility(resumeText, jobText string) int {
	resumeTF := termFrequencies(Tokenize(resumeText))
	jobTF := termFrequencies(Tokenize(jobText))
	if len(resumeTF) == 0 || len(jobTF) == 0 {
		return 0
	}

	// Smoothed IDF over the two-document corpus: ln((1+N)/(1+df)) + 1.
	idf := func(term string) float64 {
		df := 0
		if resumeTF[term] > 0 {
			df++
		}
		if jobTF[term] > 0 {
			df++
		}
		return math.Log(3.0/(1.0+float64(df))) + 1.0
	}

	vocab := make(map[string]bool, len(resumeTF)+len(jobTF))
	for term := range resumeTF {
		vocab[term] = true
	}
	for term := range jobTF {
		vocab[term] = true
	}

	var dot, normResume, normJob float64
	for term := range vocab {
		w := idf(term)
		a := float64(resumeTF[term]) * w
		b := float64(jobTF[term]) * w
		dot += a * b
		normResume += a * a
		normJob += b * b
	}
	if normResume == 0 || normJob == 0 {
		return 0
	}

	similarity := dot / (math.Sqrt(normResume) * math.Sqrt(normJob))
	score := int(math.Round(similarity * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func termFrequencies(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	return tf
}

// TopTerms returns the n most frequent scoring tokens of a text, most
// frequent first. Ties break alphabetically so the result is stable.
func TopTerms(text string, n int) []string {
	tf := termFrequencies(Tokenize(text))
	terms := make([]string, 0, len(tf))
	for term := range tf {
		terms = append(terms, term)
	}

	// Insertion sort by (count desc, term asc); vocabulary sizes here are
	// small enough that simplicity wins.
	for i := 1; i < len(terms); i++ {
		for j := i; j > 0; j-- {
			a, b := terms[j-1], terms[j]
			if tf[b] > tf[a] || (tf[b] == tf[a] && b < a) {
				terms[j-1], terms[j] = b, a
			} else {
				break
			}
		}
	}

	if n > len(terms) {
		n = len(terms)
	}
	return terms[:n]
}
