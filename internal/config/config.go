package config

import (
	"webpilot/internal/infrastructure/env"
)

// Provider names, also the fixed fallback order used during resolution.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
	ProviderGroq      = "groq"
	ProviderAzure     = "azure"
)

// FallbackOrder is the priority chain tried when no provider is forced.
var FallbackOrder = []string{
	ProviderOpenAI,
	ProviderAnthropic,
	ProviderGoogle,
	ProviderGroq,
	ProviderAzure,
}

// Config is built once at process start and passed by value into the
// resolver and runner. Nothing below reads the environment after this.
type Config struct {
	// APIKeys and ModelOverrides are keyed by provider name.
	APIKeys        map[string]string
	ModelOverrides map[string]string

	AzureEndpoint     string
	PreferredProvider string

	LogLevel string
	Headless bool
}

// FromEnv snapshots the provider configuration from the environment.
func FromEnv(e *env.EnvService) Config {
	return Config{
		APIKeys: map[string]string{
			ProviderOpenAI:    e.Get("OPENAI_API_KEY"),
			ProviderAnthropic: e.Get("ANTHROPIC_API_KEY"),
			ProviderGoogle:    e.Get("GOOGLE_API_KEY"),
			ProviderGroq:      e.Get("GROQ_API_KEY"),
			ProviderAzure:     e.Get("AZURE_OPENAI_API_KEY"),
		},
		ModelOverrides: map[string]string{
			ProviderOpenAI:    e.Get("OPENAI_MODEL"),
			ProviderAnthropic: e.Get("ANTHROPIC_MODEL"),
			ProviderGoogle:    e.Get("GOOGLE_MODEL"),
			ProviderGroq:      e.Get("GROQ_MODEL"),
			ProviderAzure:     e.Get("AZURE_OPENAI_MODEL"),
		},
		AzureEndpoint:     e.Get("AZURE_OPENAI_ENDPOINT"),
		PreferredProvider: e.Get("PREFERRED_PROVIDER"),
		LogLevel:          e.GetDefault("LOGGING_LEVEL", "info"),
		Headless:          e.GetBool("HEADLESS", false),
	}
}

// KnownProvider reports whether name is one of the supported providers.
func KnownProvider(name string) bool {
	for _, p := range FallbackOrder {
		if p == name {
			return true
		}
	}
	return false
}
