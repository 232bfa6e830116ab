// Package llm provides the model configuration and client abstraction used for
// text generation. Callers pick a model tier; the config maps it to a concrete model.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short rewrites such as single bullet points
	TierLite ModelTier = "lite"
	// TierStandard is for summaries, cover letters and structured analysis
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-form reasoning over the whole document
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider, currently the only one implemented.
const ProviderGemini Provider = "gemini"

// DefaultTemperature is used when no temperature is configured.
const DefaultTemperature float32 = 0.7

// DefaultSystemInstruction frames every request.
const DefaultSystemInstruction = "You are a career coach helping students and early-career professionals " +
	"present their education, experience and projects. Write in plain, confident English " +
	"and never invent facts that are not in the material you are given."

// Config holds the model configuration for the application
type Config struct {
	Provider          Provider
	Models            map[ModelTier]string
	Temperature       float32
	SystemInstruction string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature:       DefaultTemperature,
		SystemInstruction: DefaultSystemInstruction,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c with model assigned to tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := c.clone()
	out.Models[tier] = model
	return out
}

// WithTemperature returns a copy of c using the given sampling temperature.
func (c *Config) WithTemperature(t float32) *Config {
	out := c.clone()
	out.Temperature = t
	return out
}

// WithSystemInstruction returns a copy of c using the given system instruction.
// An empty instruction sends none.
func (c *Config) WithSystemInstruction(instruction string) *Config {
	out := c.clone()
	out.SystemInstruction = instruction
	return out
}

func (c *Config) clone() *Config {
	out := &Config{
		Provider:          c.Provider,
		Models:            make(map[ModelTier]string, len(c.Models)),
		Temperature:       c.Temperature,
		SystemInstruction: c.SystemInstruction,
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	return out
}
