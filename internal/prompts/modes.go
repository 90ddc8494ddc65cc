package prompts

import "strings"

// DefaultMode is the parameter profile applied when a request omits the mode
// or names one that is not recognized.
const DefaultMode = "standard"

// GenerationProfile fixes the sampling parameters and the optional prompt
// instruction for one generation mode.
type GenerationProfile struct {
	Name        string
	MaxTokens   int64
	Temperature float64
	Instruction string
}

var modeProfiles = map[string]GenerationProfile{
	"standard": {
		Name:        "standard",
		MaxTokens:   8192,
		Temperature: 0.2,
	},
	"telescope": {
		Name:        "telescope",
		MaxTokens:   512,
		Temperature: 0.1,
		Instruction: "Be extremely concise, brief, and to the point. Minimal tokens used.",
	},
	"deep": {
		Name:        "deep",
		MaxTokens:   8192,
		Temperature: 0.3,
		Instruction: "Provide a very detailed, multi-step, and structured response with deep reasoning.",
	},
	"thinking": {
		Name:        "thinking",
		MaxTokens:   8192,
		Temperature: 0.4,
		Instruction: "Process this using chain-of-thought reasoning. Think through the problem out loud before providing the final answer.",
	},
}

// Profile returns the parameter profile for a mode, defaulting to the
// standard profile for empty or unknown modes. Mode names are matched
// case-insensitively.
func Profile(mode string) GenerationProfile {
	if p, ok := modeProfiles[strings.ToLower(mode)]; ok {
		return p
	}
	return modeProfiles[DefaultMode]
}

// NormalizeMode lowercases a requested mode and substitutes the default for
// empty values. The normalized name is what gets persisted on history
// records and used in cache keys.
func NormalizeMode(mode string) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		return DefaultMode
	}
	return mode
}
