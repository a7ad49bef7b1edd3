package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webpilot/internal/domain/entity"
)

func validFlags() *agentFlags {
	return &agentFlags{
		url:     "https://example.com",
		task:    "read the title",
		timeout: defaultTimeout,
	}
}

func TestValidateFlags_Valid(t *testing.T) {
	assert.NoError(t, validateFlags(validFlags()))
}

func TestValidateFlags_MissingURL(t *testing.T) {
	flags := validFlags()
	flags.url = ""

	err := validateFlags(flags)

	var valErr *entity.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "url", valErr.Field)
}

func TestValidateFlags_MissingTask(t *testing.T) {
	flags := validFlags()
	flags.task = ""

	err := validateFlags(flags)

	var valErr *entity.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "task", valErr.Field)
}

func TestValidateFlags_NonHTTPScheme(t *testing.T) {
	for _, url := range []string{"ftp://example.com", "javascript:alert(1)", "example.com"} {
		flags := validFlags()
		flags.url = url

		err := validateFlags(flags)

		var valErr *entity.ValidationError
		require.ErrorAs(t, err, &valErr, url)
		assert.Equal(t, "url", valErr.Field, url)
	}
}

func TestValidateFlags_NegativeTimeout(t *testing.T) {
	flags := validFlags()
	flags.timeout = -time.Second

	err := validateFlags(flags)

	var valErr *entity.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "timeout", valErr.Field)
}

func TestValidateFlags_ZeroTimeoutDisablesDeadline(t *testing.T) {
	flags := validFlags()
	flags.timeout = 0

	assert.NoError(t, validateFlags(flags))
}
