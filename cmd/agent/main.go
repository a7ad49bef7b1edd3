package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"webpilot/internal/di"
	"webpilot/internal/domain/entity"
)

const defaultTimeout = 30 * time.Minute

type agentFlags struct {
	url            string
	task           string
	provider       string
	model          string
	headless       bool
	viewportWidth  int
	viewportHeight int
	userDataDir    string
	storageState   string
	verbose        bool
	timeout        time.Duration
}

func main() {
	flags := &agentFlags{}

	rootCmd := &cobra.Command{
		Use:   "agent",
		Short: "Run a natural-language task against a web page",
		Long: `agent drives a real browser from a natural-language instruction.
It picks the first configured LLM provider (or the one forced with
--provider), opens the target URL, and iterates tool calls until the
model reports a final answer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgent(cmd.Context(), flags)
		},
	}

	rootCmd.Flags().StringVar(&flags.url, "url", "", "target page URL (required)")
	rootCmd.Flags().StringVar(&flags.task, "task", "", "natural-language task description (required)")
	rootCmd.Flags().StringVar(&flags.provider, "provider", "", "force an LLM provider (openai, anthropic, google, groq, azure)")
	rootCmd.Flags().StringVar(&flags.model, "model", "", "override the model for the selected provider")
	rootCmd.Flags().BoolVar(&flags.headless, "headless", false, "run the browser without a visible window")
	rootCmd.Flags().IntVar(&flags.viewportWidth, "viewport-width", 1280, "browser viewport width in pixels")
	rootCmd.Flags().IntVar(&flags.viewportHeight, "viewport-height", 1024, "browser viewport height in pixels")
	rootCmd.Flags().StringVar(&flags.userDataDir, "user-data-dir", "", "persistent browser profile directory")
	rootCmd.Flags().StringVar(&flags.storageState, "storage-state", "", "cookie state file, loaded on start and saved on exit")
	rootCmd.Flags().BoolVar(&flags.verbose, "verbose", false, "also log to stdout")
	rootCmd.Flags().DurationVar(&flags.timeout, "timeout", defaultTimeout, "overall task deadline (0 disables)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runAgent(ctx context.Context, flags *agentFlags) error {
	if err := validateFlags(flags); err != nil {
		return err
	}

	if flags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.timeout)
		defer cancel()
	}

	container, err := di.NewContainer(ctx, di.Options{
		Provider: flags.provider,
		Model:    flags.model,
		Task: entity.TaskOptions{
			Headless:       flags.headless,
			ViewportWidth:  flags.viewportWidth,
			ViewportHeight: flags.viewportHeight,
			UserDataDir:    flags.userDataDir,
			StorageState:   flags.storageState,
			Verbose:        flags.verbose,
		},
	})
	if err != nil {
		var cfgErr *entity.ConfigurationError
		if errors.As(err, &cfgErr) {
			return fmt.Errorf("no usable LLM provider: %s", cfgErr.Error())
		}
		return err
	}
	defer container.Close()

	fmt.Printf("Provider: %s (model %s)\n", container.Selection.Provider, container.Selection.Model)
	fmt.Printf("Running task against %s\n", flags.url)

	result, err := container.Runner.RunTask(ctx, flags.url, flags.task)
	if err != nil {
		return err
	}

	printResult(result)

	if !result.Success {
		return fmt.Errorf("task failed: %s", result.Error)
	}
	return nil
}

func validateFlags(flags *agentFlags) error {
	if flags.url == "" {
		return &entity.ValidationError{Field: "url", Msg: "is required"}
	}
	if flags.task == "" {
		return &entity.ValidationError{Field: "task", Msg: "is required"}
	}
	if !strings.HasPrefix(flags.url, "http://") && !strings.HasPrefix(flags.url, "https://") {
		return &entity.ValidationError{Field: "url", Msg: "must start with http:// or https://"}
	}
	if flags.timeout < 0 {
		return &entity.ValidationError{Field: "timeout", Msg: "must not be negative"}
	}
	return nil
}

func printResult(result *entity.TaskResult) {
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Printf("Result: %+v\n", result)
		return
	}
	fmt.Println(string(encoded))
}
