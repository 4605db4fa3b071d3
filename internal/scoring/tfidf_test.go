package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompatibility_IdenticalTexts(t *testing.T) {
	text := "Go engineer with PostgreSQL and Kubernetes experience"
	assert.Equal(t, 100, Compatibility(text, text))
}

func TestCompatibility_DisjointTexts(t *testing.T) {
	score := Compatibility(
		"painter sculptor watercolor gallery",
		"kubernetes golang postgres grafana",
	)
	assert.Equal(t, 0, score)
}

func TestCompatibility_PartialOverlap(t *testing.T) {
	score := Compatibility(
		"Go developer, PostgreSQL, Docker, five years experience",
		"Looking for Go developer with PostgreSQL knowledge",
	)
	assert.Greater(t, score, 0)
	assert.Less(t, score, 100)
}

func TestCompatibility_Symmetric(t *testing.T) {
	a := "Go developer with cloud experience"
	b := "Platform role: Go, AWS, Terraform"
	assert.Equal(t, Compatibility(a, b), Compatibility(b, a))
}

func TestCompatibility_EmptyInputs(t *testing.T) {
	assert.Equal(t, 0, Compatibility("", "anything"))
	assert.Equal(t, 0, Compatibility("anything", ""))
	assert.Equal(t, 0, Compatibility("", ""))
}

func TestCompatibility_Deterministic(t *testing.T) {
	a := "Go developer with PostgreSQL, Docker and Kafka"
	b := "Senior Go engineer, PostgreSQL and Kafka pipelines"
	first := Compatibility(a, b)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compatibility(a, b))
	}
}

func TestTokenize_DropsStopwordsAndShortTokens(t *testing.T) {
	tokens := Tokenize("The engineer e o sistema de pagamentos in Go")
	assert.Equal(t, []string{"engineer", "sistema", "pagamentos", "go"}, tokens)
}

func TestTokenize_KeepsTechnicalTokens(t *testing.T) {
	tokens := Tokenize("C# and C++ developers")
	assert.Contains(t, tokens, "c#")
	assert.Contains(t, tokens, "c++")
}

func TestTopTerms_OrderedByFrequency(t *testing.T) {
	text := "go go go postgres postgres docker"
	assert.Equal(t, []string{"go", "postgres", "docker"}, TopTerms(text, 5))
}

func TestTopTerms_StableTieBreak(t *testing.T) {
	text := "zeta alpha"
	assert.Equal(t, []string{"alpha", "zeta"}, TopTerms(text, 2))
}
