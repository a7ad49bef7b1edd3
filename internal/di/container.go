// Package di wires the application graph for one task run.
package di

import (
	"context"
	"fmt"

	"webpilot/internal/adapter/tool"
	"webpilot/internal/application/port/input"
	"webpilot/internal/application/port/output"
	"webpilot/internal/application/service"
	"webpilot/internal/config"
	"webpilot/internal/domain/entity"
	"webpilot/internal/infrastructure/browser/rod"
	"webpilot/internal/infrastructure/env"
	"webpilot/internal/infrastructure/llm"
	"webpilot/internal/infrastructure/logger"
	"webpilot/internal/infrastructure/prompts"
	"webpilot/internal/usecase/runner"
)

// Options selects the provider, model, and browser behavior for a run.
type Options struct {
	Provider string
	Model    string
	Task     entity.TaskOptions
}

// Container owns every component built for a single task run. Close
// releases the browser and flushes the logger.
type Container struct {
	Config    config.Config
	Logger    output.LoggerPort
	Browser   output.BrowserPort
	LLM       output.LLMPort
	Selection llm.Selection
	Runner    input.TaskRunner
}

// NewContainer loads configuration, resolves an LLM provider, launches the
// browser, and assembles the task runner. A non-nil error leaves nothing
// running.
func NewContainer(ctx context.Context, opts Options) (*Container, error) {
	envService := env.NewEnvService()
	cfg := config.FromEnv(envService)

	log, err := logger.New(cfg.LogLevel, opts.Task.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	selection, llmClient, err := llm.Resolve(ctx, cfg, opts.Provider, opts.Model, log)
	if err != nil {
		log.Close()
		return nil, err
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = opts.Task.Headless || cfg.Headless
	if opts.Task.ViewportWidth > 0 {
		browserCfg.ViewportWidth = opts.Task.ViewportWidth
	}
	if opts.Task.ViewportHeight > 0 {
		browserCfg.ViewportHeight = opts.Task.ViewportHeight
	}
	browserCfg.UserDataDir = opts.Task.UserDataDir
	browserCfg.StorageState = opts.Task.StorageState

	browser, err := rod.NewBrowserAdapter(ctx, browserCfg)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	registry := service.NewToolRegistry()
	registry.Register(tool.NewNavigateTool(browser, log))
	registry.Register(tool.NewClickTool(browser, log))
	registry.Register(tool.NewFillTool(browser, log))
	registry.Register(tool.NewScrollTool(browser, log))
	registry.Register(tool.NewPressEnterTool(browser, log))
	registry.Register(tool.NewScreenshotTool(browser, log))
	registry.Register(tool.NewExtractTextTool(browser, log))
	registry.Register(tool.NewUISummaryTool(browser, log))

	uc := runner.New(llmClient, browser, registry, log, prompts.DefaultSystemPrompt)

	return &Container{
		Config:    cfg,
		Logger:    log,
		Browser:   browser,
		LLM:       llmClient,
		Selection: selection,
		Runner:    uc,
	}, nil
}

// Close shuts the browser down first so storage state gets persisted, then
// flushes the logger.
func (c *Container) Close() error {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		return c.Logger.Close()
	}
	return nil
}
