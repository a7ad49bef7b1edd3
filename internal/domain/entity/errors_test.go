package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError_ListsEveryAttempt(t *testing.T) {
	err := &ConfigurationError{Attempts: []ProviderAttempt{
		{Provider: "openai", Reason: "OPENAI_API_KEY not set"},
		{Provider: "anthropic", Reason: "ANTHROPIC_API_KEY not set"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "openai: OPENAI_API_KEY not set")
	assert.Contains(t, msg, "anthropic: ANTHROPIC_API_KEY not set")
	assert.Contains(t, msg, "; ")
}

func TestConfigurationError_Empty(t *testing.T) {
	err := &ConfigurationError{}
	assert.Equal(t, "no LLM provider configured", err.Error())
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "url", Msg: "is required"}
	assert.Equal(t, "invalid argument url: is required", err.Error())
}

func TestAgentExecutionError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("element not found")
	err := &AgentExecutionError{Err: cause}

	assert.Contains(t, err.Error(), "element not found")
	assert.True(t, errors.Is(err, cause))
}
