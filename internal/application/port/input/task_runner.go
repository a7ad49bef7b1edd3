package input

import (
	"context"

	"webpilot/internal/domain/entity"
)

// TaskRunner is the single entry point into the agent: one blocking call per
// task. The returned result is always non-nil; execution failures are
// reported through TaskResult.Error.
type TaskRunner interface {
	RunTask(ctx context.Context, url, task string) (*entity.TaskResult, error)
}
