package scenario

// GeneratorConfig controls scenario generation.
type GeneratorConfig struct {
	// MaxTokens is the token budget for one generated day.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Language is the language the content is written in.
	Language string

	// SeniorFromMonth is the first month that asks for complex situations.
	SeniorFromMonth int
}

// DefaultGeneratorConfig returns the recommended defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MaxTokens:       4096,
		Temperature:     0.9,
		Language:        "Italian",
		SeniorFromMonth: 10,
	}
}
