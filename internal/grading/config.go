package grading

// Config holds grading and assistant settings.
type Config struct {
	EvalMaxTokens     int
	EvalTemperature   float64
	AssistMaxTokens   int
	AssistTemperature float64

	// Language is the language the boss writes feedback in and the
	// assistant drafts in.
	Language string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		EvalMaxTokens:     1024,
		EvalTemperature:   0.3,
		AssistMaxTokens:   512,
		AssistTemperature: 0.7,
		Language:          "Italian",
	}
}
