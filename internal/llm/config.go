// Package llm provides the generative-model client used for description
// refinement, feedback and rewrite synthesis.
package llm

// ModelTier represents the capability level of a model.
type ModelTier string

const (
	// TierLite is for cheap text transforms such as description cleanup
	TierLite ModelTier = "lite"
	// TierStandard is for structured JSON synthesis: feedback, rewrites
	TierStandard ModelTier = "standard"
)

// Config holds the model selection for the application.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model selection.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a tier, falling back to the lite model
// when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
