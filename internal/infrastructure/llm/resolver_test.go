package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webpilot/internal/application/port/output"
	"webpilot/internal/config"
	"webpilot/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                    {}
func (nopLogger) Info(string, ...any)                     {}
func (nopLogger) Warn(string, ...any)                     {}
func (nopLogger) Error(string, ...any)                    {}
func (n nopLogger) WithField(string, any) output.LoggerPort { return n }
func (nopLogger) Close() error                            { return nil }

func emptyConfig() config.Config {
	return config.Config{
		APIKeys:        map[string]string{},
		ModelOverrides: map[string]string{},
	}
}

func TestResolve_NoKeysAtAll(t *testing.T) {
	_, _, err := Resolve(context.Background(), emptyConfig(), "", "", nopLogger{})

	var cfgErr *entity.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Len(t, cfgErr.Attempts, len(config.FallbackOrder))
	assert.Equal(t, "openai", cfgErr.Attempts[0].Provider)
	assert.Contains(t, cfgErr.Attempts[0].Reason, "OPENAI_API_KEY")
}

func TestResolve_ForcedProviderMissingKeyDoesNotFallBack(t *testing.T) {
	cfg := emptyConfig()
	cfg.APIKeys[config.ProviderOpenAI] = "sk-present"

	_, _, err := Resolve(context.Background(), cfg, "anthropic", "", nopLogger{})

	var cfgErr *entity.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Len(t, cfgErr.Attempts, 1)
	assert.Equal(t, "anthropic", cfgErr.Attempts[0].Provider)
	assert.Contains(t, cfgErr.Attempts[0].Reason, "ANTHROPIC_API_KEY")
}

func TestResolve_ForcedUnknownProvider(t *testing.T) {
	_, _, err := Resolve(context.Background(), emptyConfig(), "mistral", "", nopLogger{})

	var cfgErr *entity.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Len(t, cfgErr.Attempts, 1)
	assert.Equal(t, "mistral", cfgErr.Attempts[0].Provider)
	assert.Equal(t, "unknown provider", cfgErr.Attempts[0].Reason)
}

func TestResolve_FirstConfiguredProviderWins(t *testing.T) {
	cfg := emptyConfig()
	cfg.APIKeys[config.ProviderAnthropic] = "sk-ant"
	cfg.APIKeys[config.ProviderGroq] = "gsk-groq"

	sel, client, err := Resolve(context.Background(), cfg, "", "", nopLogger{})

	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, "anthropic", sel.Provider)
	assert.Equal(t, "claude-3-5-sonnet-20241022", sel.Model)
}

func TestResolve_OnlyGoogleKey(t *testing.T) {
	cfg := emptyConfig()
	cfg.APIKeys[config.ProviderGoogle] = "AIza-test"

	sel, client, err := Resolve(context.Background(), cfg, "", "", nopLogger{})

	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, "google", sel.Provider)
	assert.Equal(t, "gemini-2.0-flash", sel.Model)
}

func TestResolve_PreferredProviderTriedFirst(t *testing.T) {
	cfg := emptyConfig()
	cfg.APIKeys[config.ProviderOpenAI] = "sk-oai"
	cfg.APIKeys[config.ProviderGroq] = "gsk-groq"
	cfg.PreferredProvider = "groq"

	sel, _, err := Resolve(context.Background(), cfg, "", "", nopLogger{})

	require.NoError(t, err)
	assert.Equal(t, "groq", sel.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", sel.Model)
}

func TestResolve_PreferredProviderUnconfiguredFallsThrough(t *testing.T) {
	cfg := emptyConfig()
	cfg.APIKeys[config.ProviderOpenAI] = "sk-oai"
	cfg.PreferredProvider = "groq"

	sel, _, err := Resolve(context.Background(), cfg, "", "", nopLogger{})

	require.NoError(t, err)
	assert.Equal(t, "openai", sel.Provider)
}

func TestResolve_AzureRequiresEndpoint(t *testing.T) {
	cfg := emptyConfig()
	cfg.APIKeys[config.ProviderAzure] = "azure-key"

	_, _, err := Resolve(context.Background(), cfg, "azure", "", nopLogger{})

	var cfgErr *entity.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Attempts[0].Reason, "AZURE_OPENAI_ENDPOINT")

	cfg.AzureEndpoint = "https://example.openai.azure.com"
	sel, client, err := Resolve(context.Background(), cfg, "azure", "", nopLogger{})
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, "azure", sel.Provider)
	assert.Equal(t, "gpt-4o", sel.Model)
}

func TestResolve_ModelPrecedence(t *testing.T) {
	cfg := emptyConfig()
	cfg.APIKeys[config.ProviderOpenAI] = "sk-oai"

	// Default.
	sel, _, err := Resolve(context.Background(), cfg, "", "", nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", sel.Model)

	// Env override beats default.
	cfg.ModelOverrides[config.ProviderOpenAI] = "gpt-4o-mini"
	sel, _, err = Resolve(context.Background(), cfg, "", "", nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", sel.Model)

	// CLI flag beats both.
	sel, _, err = Resolve(context.Background(), cfg, "", "o3-mini", nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, "o3-mini", sel.Model)
}

func TestResolve_ProviderNamesAreCaseInsensitive(t *testing.T) {
	cfg := emptyConfig()
	cfg.APIKeys[config.ProviderGroq] = "gsk-groq"

	sel, _, err := Resolve(context.Background(), cfg, "Groq", "", nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, "groq", sel.Provider)

	cfg.APIKeys[config.ProviderOpenAI] = "sk-oai"
	cfg.PreferredProvider = "GROQ"
	sel, _, err = Resolve(context.Background(), cfg, "", "", nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, "groq", sel.Provider)
}

func TestDescribe(t *testing.T) {
	desc, ok := Describe("groq")
	require.True(t, ok)
	assert.Equal(t, "GROQ_API_KEY", desc.KeyEnvVar)

	_, ok = Describe("cohere")
	assert.False(t, ok)
}
