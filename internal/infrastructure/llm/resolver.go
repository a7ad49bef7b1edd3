package llm

import (
	"context"
	"fmt"
	"strings"

	"webpilot/internal/application/port/output"
	"webpilot/internal/config"
	"webpilot/internal/domain/entity"
	"webpilot/internal/infrastructure/llm/claude"
	"webpilot/internal/infrastructure/llm/gemini"
	"webpilot/internal/infrastructure/llm/openaicompat"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// Selection is the single (provider, model) pair active for a run.
type Selection struct {
	Provider string
	Model    string
}

// Resolve picks exactly one provider and model:
//
//  1. cliProvider forces that provider; a missing key or failed init is a
//     ConfigurationError with no fallback.
//  2. Otherwise cfg.PreferredProvider is tried first if set.
//  3. Otherwise the fixed fallback order applies; the first provider whose
//     key is present and whose client initializes wins.
//
// Model precedence: cliModel, then the provider's env override, then the
// built-in default. Every provider is attempted at most once.
func Resolve(ctx context.Context, cfg config.Config, cliProvider, cliModel string, log output.LoggerPort) (Selection, output.LLMPort, error) {
	// Provider names are case-insensitive on every input surface.
	cliProvider = strings.ToLower(strings.TrimSpace(cliProvider))

	if cliProvider != "" {
		desc, ok := Describe(cliProvider)
		if !ok {
			return Selection{}, nil, &entity.ConfigurationError{Attempts: []entity.ProviderAttempt{
				{Provider: cliProvider, Reason: "unknown provider"},
			}}
		}
		model := modelFor(desc, cfg, cliModel)
		client, err := tryInitialize(ctx, desc, cfg, model, log)
		if err != nil {
			return Selection{}, nil, &entity.ConfigurationError{Attempts: []entity.ProviderAttempt{
				{Provider: desc.Name, Reason: err.Error()},
			}}
		}
		log.Info("LLM provider selected", "provider", desc.Name, "model", model, "forced", true)
		return Selection{Provider: desc.Name, Model: model}, client, nil
	}

	var attempts []entity.ProviderAttempt
	tried := make(map[string]bool)

	order := make([]string, 0, len(config.FallbackOrder)+1)
	if preferred := strings.ToLower(strings.TrimSpace(cfg.PreferredProvider)); preferred != "" && config.KnownProvider(preferred) {
		order = append(order, preferred)
	}
	order = append(order, config.FallbackOrder...)

	for _, name := range order {
		if tried[name] {
			continue
		}
		tried[name] = true

		desc, _ := Describe(name)
		model := modelFor(desc, cfg, cliModel)

		client, err := tryInitialize(ctx, desc, cfg, model, log)
		if err != nil {
			attempts = append(attempts, entity.ProviderAttempt{Provider: name, Reason: err.Error()})
			log.Debug("Provider skipped", "provider", name, "reason", err.Error())
			continue
		}

		log.Info("LLM provider selected", "provider", name, "model", model)
		return Selection{Provider: name, Model: model}, client, nil
	}

	return Selection{}, nil, &entity.ConfigurationError{Attempts: attempts}
}

func modelFor(desc Descriptor, cfg config.Config, cliModel string) string {
	if cliModel != "" {
		return cliModel
	}
	if override := cfg.ModelOverrides[desc.Name]; override != "" {
		return override
	}
	return desc.DefaultModel
}

func tryInitialize(ctx context.Context, desc Descriptor, cfg config.Config, model string, log output.LoggerPort) (output.LLMPort, error) {
	apiKey := cfg.APIKeys[desc.Name]
	if apiKey == "" {
		return nil, fmt.Errorf("%s not set", desc.KeyEnvVar)
	}

	switch desc.Name {
	case config.ProviderOpenAI:
		return openaicompat.New(openaicompat.Config{APIKey: apiKey, Model: model, Logger: log}), nil
	case config.ProviderGroq:
		return openaicompat.New(openaicompat.Config{APIKey: apiKey, Model: model, BaseURL: groqBaseURL, Logger: log}), nil
	case config.ProviderAzure:
		if cfg.AzureEndpoint == "" {
			return nil, fmt.Errorf("AZURE_OPENAI_ENDPOINT not set")
		}
		return openaicompat.NewAzure(openaicompat.AzureConfig{
			APIKey:   apiKey,
			Endpoint: cfg.AzureEndpoint,
			Model:    model,
			Logger:   log,
		}), nil
	case config.ProviderAnthropic:
		return claude.New(claude.Config{APIKey: apiKey, Model: model, Logger: log}), nil
	case config.ProviderGoogle:
		client, err := gemini.New(ctx, gemini.Config{APIKey: apiKey, Model: model, Logger: log})
		if err != nil {
			return nil, fmt.Errorf("client init failed: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", desc.Name)
	}
}
