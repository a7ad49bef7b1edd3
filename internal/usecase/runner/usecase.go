// Package runner implements the agent loop: one blocking RunTask call per
// task, iterating LLM tool calls against the browser until the model
// produces a final answer.
package runner

import (
	"context"
	"fmt"

	"webpilot/internal/application/port/input"
	"webpilot/internal/application/port/output"
	"webpilot/internal/domain/entity"
)

var _ input.TaskRunner = (*UseCase)(nil)

const (
	maxIterations     = 50
	maxObservationLen = 20000
)

type UseCase struct {
	llm          output.LLMPort
	browser      output.BrowserPort
	tools        output.ToolRegistry
	logger       output.LoggerPort
	systemPrompt string
}

func New(
	llm output.LLMPort,
	browser output.BrowserPort,
	tools output.ToolRegistry,
	logger output.LoggerPort,
	systemPrompt string,
) *UseCase {
	return &UseCase{
		llm:          llm,
		browser:      browser,
		tools:        tools,
		logger:       logger,
		systemPrompt: systemPrompt,
	}
}

// RunTask executes one task against one URL. The returned result is always
// non-nil; execution failures end up in TaskResult.Error instead of
// crashing the caller.
func (uc *UseCase) RunTask(ctx context.Context, url, task string) (*entity.TaskResult, error) {
	result := &entity.TaskResult{History: []entity.HistoryEntry{}}

	uc.logger.Info("Task started", "url", url, "task", task)

	if err := uc.browser.Navigate(ctx, url); err != nil {
		execErr := &entity.AgentExecutionError{Err: fmt.Errorf("initial navigation: %w", err)}
		uc.logger.Error("Task failed", "error", execErr.Error())
		result.Error = execErr.Error()
		return result, nil
	}
	result.History = append(result.History, entity.HistoryEntry{
		Action: "navigate",
		Params: fmt.Sprintf(`{"url":%q}`, url),
	})

	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: uc.systemPrompt},
		{Role: entity.RoleUser, Content: buildTaskMessage(url, task)},
	}

	toolDefs := uc.tools.Definitions()

	for iteration := 1; iteration <= maxIterations; iteration++ {
		select {
		case <-ctx.Done():
			result.Error = (&entity.AgentExecutionError{Err: ctx.Err()}).Error()
			result.FinalURL = uc.browser.CurrentURL()
			return result, nil
		default:
		}

		uc.logger.Debug("Starting iteration", "iteration", iteration)

		resp, err := uc.llm.Chat(ctx, output.ChatRequest{
			Messages:    messages,
			Tools:       toolDefs,
			Temperature: 0.0,
		})
		if err != nil {
			execErr := &entity.AgentExecutionError{Err: fmt.Errorf("llm request: %w", err)}
			uc.logger.Error("Task failed", "error", execErr.Error(), "iteration", iteration)
			result.Error = execErr.Error()
			result.FinalURL = uc.browser.CurrentURL()
			return result, nil
		}

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			result.Success = true
			result.FinalAnswer = resp.Message.Content
			result.FinalURL = uc.browser.CurrentURL()
			uc.logger.Info("Task completed", "iterations", iteration, "actions", len(result.History))
			return result, nil
		}

		for _, tc := range resp.Message.ToolCalls {
			observation := uc.executeTool(ctx, tc)

			result.History = append(result.History, entity.HistoryEntry{
				Action: tc.Name,
				Params: tc.Arguments,
			})

			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name,
				Content:    observation,
			})
		}
	}

	result.Error = (&entity.AgentExecutionError{
		Err: fmt.Errorf("max iterations (%d) exceeded", maxIterations),
	}).Error()
	result.FinalURL = uc.browser.CurrentURL()
	uc.logger.Error("Task failed", "error", result.Error)
	return result, nil
}

func (uc *UseCase) executeTool(ctx context.Context, tc entity.ToolCall) string {
	tool, ok := uc.tools.Get(tc.Name)
	if !ok {
		uc.logger.Warn("Unknown tool called", "name", tc.Name)
		return fmt.Sprintf("Error: unknown tool '%s'", tc.Name)
	}

	uc.logger.Info("Executing tool", "name", tc.Name, "args", tc.Arguments)

	observation, err := tool.Execute(ctx, tc.Arguments)
	if err != nil {
		uc.logger.Error("Tool execution failed", "name", tc.Name, "error", err)
		return "Error: " + err.Error()
	}

	if len(observation) > maxObservationLen {
		observation = observation[:maxObservationLen] + "\n... (truncated)"
	}

	uc.logger.Debug("Tool completed", "name", tc.Name, "resultLen", len(observation))
	return observation
}

func buildTaskMessage(url, task string) string {
	return fmt.Sprintf("The browser is already on %s.\n\nYour task: %s", url, task)
}
