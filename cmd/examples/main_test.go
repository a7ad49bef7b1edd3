package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webpilot/internal/domain/entity"
)

func TestRunExamples_NoSelectionIsValidationError(t *testing.T) {
	err := runExamples(context.Background(), &exampleFlags{})

	var valErr *entity.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "example", valErr.Field)
}

func TestRunExamples_UnknownNameListsChoices(t *testing.T) {
	err := runExamples(context.Background(), &exampleFlags{example: "doesnotexist"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown example 'doesnotexist'")
	assert.Contains(t, err.Error(), "search")
	assert.Contains(t, err.Error(), "form")
}

func TestRunExamples_ListRunsNothing(t *testing.T) {
	// --list must not touch providers or the browser; it just prints.
	err := runExamples(context.Background(), &exampleFlags{list: true})
	assert.NoError(t, err)
}
