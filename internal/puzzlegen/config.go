package puzzlegen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every decoded item after schema
	// validation. The first failure drops the item.
	Validators []Validator

	// MaxTokens is the token budget for one batch response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// JSON requests the provider's native JSON output mode.
	JSON bool
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DistinctChoicesValidator{},
		},
		MaxTokens:   8192,
		Temperature: 0.9,
		JSON:        true,
	}
}
