package entity

import (
	"fmt"
	"strings"
)

// ProviderAttempt records why a single provider could not be used during
// resolution.
type ProviderAttempt struct {
	Provider string
	Reason   string
}

// ConfigurationError means no LLM provider could be resolved. It keeps the
// per-provider failure reasons so the user sees exactly what was tried.
type ConfigurationError struct {
	Attempts []ProviderAttempt
}

func (e *ConfigurationError) Error() string {
	if len(e.Attempts) == 0 {
		return "no LLM provider configured"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %s", a.Provider, a.Reason))
	}
	return "no LLM provider could be initialized: " + strings.Join(parts, "; ")
}

// ValidationError is a fatal CLI input error reported before any provider or
// browser work starts.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Field, e.Msg)
}

// AgentExecutionError wraps a failure raised while the agent loop was
// running. It is surfaced in TaskResult.Error rather than crashing the
// process.
type AgentExecutionError struct {
	Err error
}

func (e *AgentExecutionError) Error() string {
	return "task execution failed: " + e.Err.Error()
}

func (e *AgentExecutionError) Unwrap() error {
	return e.Err
}
