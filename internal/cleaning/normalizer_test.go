package cleaning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubRefiner struct {
	out string
	ok  bool

	lastInput string
}

func (s *stubRefiner) Refine(_ context.Context, text string) (string, bool) {
	s.lastInput = text
	return s.out, s.ok
}

func TestNormalize_RefinedTextSupersedes(t *testing.T) {
	refiner := &stubRefiner{out: "  Refined description  ", ok: true}
	n := NewNormalizer(refiner, nil)

	result := n.Normalize(context.Background(), "Mostrar mais\nRaw description")

	assert.Equal(t, "Refined description", result)
	assert.Equal(t, "Raw description", refiner.lastInput, "refiner should see the filtered text")
}

func TestNormalize_FailOpenKeepsHeuristicResult(t *testing.T) {
	input := "Apply now\nSenior Engineer role\n\n\n\nRequirements: Go"

	n := NewNormalizer(&stubRefiner{ok: false}, nil)
	result := n.Normalize(context.Background(), input)

	assert.Equal(t, Filter(input), result)
}

func TestNormalize_EmptyRefinementKeepsHeuristicResult(t *testing.T) {
	n := NewNormalizer(&stubRefiner{out: "   ", ok: true}, nil)
	result := n.Normalize(context.Background(), "Some description")

	assert.Equal(t, "Some description", result)
}

func TestNormalize_NilRefiner(t *testing.T) {
	n := NewNormalizer(nil, nil)
	result := n.Normalize(context.Background(), "Show more\nContent line")

	assert.Equal(t, "Content line", result)
}

func TestNormalize_NonEmptyInputNeverVanishesIntoRefiner(t *testing.T) {
	// A refiner that claims success with empty output must not erase content.
	n := NewNormalizer(&stubRefiner{out: "", ok: true}, nil)
	result := n.Normalize(context.Background(), "Keep me")

	assert.Equal(t, "Keep me", result)
}
