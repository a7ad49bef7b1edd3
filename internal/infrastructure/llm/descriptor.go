package llm

import "webpilot/internal/config"

// Descriptor is one row of the static provider table. The table is read-only
// and process-wide; resolution walks it, never mutates it.
type Descriptor struct {
	Name         string
	KeyEnvVar    string
	ModelEnvVar  string
	DefaultModel string
}

var descriptors = map[string]Descriptor{
	config.ProviderOpenAI: {
		Name:         config.ProviderOpenAI,
		KeyEnvVar:    "OPENAI_API_KEY",
		ModelEnvVar:  "OPENAI_MODEL",
		DefaultModel: "gpt-4o",
	},
	config.ProviderAnthropic: {
		Name:         config.ProviderAnthropic,
		KeyEnvVar:    "ANTHROPIC_API_KEY",
		ModelEnvVar:  "ANTHROPIC_MODEL",
		DefaultModel: "claude-3-5-sonnet-20241022",
	},
	config.ProviderGoogle: {
		Name:         config.ProviderGoogle,
		KeyEnvVar:    "GOOGLE_API_KEY",
		ModelEnvVar:  "GOOGLE_MODEL",
		DefaultModel: "gemini-2.0-flash",
	},
	config.ProviderGroq: {
		Name:         config.ProviderGroq,
		KeyEnvVar:    "GROQ_API_KEY",
		ModelEnvVar:  "GROQ_MODEL",
		DefaultModel: "llama-3.3-70b-versatile",
	},
	config.ProviderAzure: {
		Name:         config.ProviderAzure,
		KeyEnvVar:    "AZURE_OPENAI_API_KEY",
		ModelEnvVar:  "AZURE_OPENAI_MODEL",
		DefaultModel: "gpt-4o",
	},
}

// Describe returns the descriptor for a known provider name.
func Describe(name string) (Descriptor, bool) {
	d, ok := descriptors[name]
	return d, ok
}
