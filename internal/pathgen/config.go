package pathgen

// Config holds generation settings.
type Config struct {
	// OutlineMaxTokens caps the outline response. A full curriculum tree
	// for 4 units runs a few thousand tokens.
	OutlineMaxTokens int

	// QuickDiveMaxTokens caps a quick-dive suggestion response.
	QuickDiveMaxTokens int

	// Temperature for outline generation. Curricula benefit from some
	// variety between regenerations of the same topic.
	Temperature float64

	// LookupConcurrency bounds the parallel video lookups per generation.
	LookupConcurrency int

	// QuickDiveCount is the number of resources a quick dive returns.
	QuickDiveCount int
}

// DefaultConfig returns sensible generation defaults.
func DefaultConfig() Config {
	return Config{
		OutlineMaxTokens:   8192,
		QuickDiveMaxTokens: 2048,
		Temperature:        0.7,
		LookupConcurrency:  8,
		QuickDiveCount:     10,
	}
}
