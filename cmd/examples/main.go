package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"webpilot/internal/di"
	"webpilot/internal/domain/entity"
	"webpilot/internal/examples"
)

type exampleFlags struct {
	example  string
	all      bool
	list     bool
	provider string
	model    string
	headless bool
	verbose  bool
	failFast bool
}

func main() {
	flags := &exampleFlags{}

	rootCmd := &cobra.Command{
		Use:   "examples",
		Short: "Run the built-in demonstration tasks",
		Long: `examples runs curated (url, task) pairs that exercise common
automation scenarios: searching, form filling, data extraction, and more.
Each example gets a fresh browser and provider resolution.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExamples(cmd.Context(), flags)
		},
	}

	rootCmd.Flags().StringVar(&flags.example, "example", "", "name of a single example to run")
	rootCmd.Flags().BoolVar(&flags.all, "all", false, "run every example in sequence")
	rootCmd.Flags().BoolVar(&flags.list, "list", false, "list available examples and exit")
	rootCmd.Flags().StringVar(&flags.provider, "provider", "", "force an LLM provider (openai, anthropic, google, groq, azure)")
	rootCmd.Flags().StringVar(&flags.model, "model", "", "override the model for the selected provider")
	rootCmd.Flags().BoolVar(&flags.headless, "headless", false, "run the browser without a visible window")
	rootCmd.Flags().BoolVar(&flags.verbose, "verbose", false, "also log to stdout")
	rootCmd.Flags().BoolVar(&flags.failFast, "fail-fast", false, "with --all, stop at the first failed example")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExamples(ctx context.Context, flags *exampleFlags) error {
	switch {
	case flags.list:
		printCatalog()
		return nil
	case flags.all:
		return runAll(ctx, flags)
	case flags.example != "":
		ex, err := examples.Get(flags.example)
		if err != nil {
			return err
		}
		result, err := runOne(ctx, flags, ex)
		if err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("example '%s' failed: %s", ex.Name, result.Error)
		}
		return nil
	default:
		return &entity.ValidationError{Field: "example", Msg: "provide --example <name>, --all, or --list"}
	}
}

func printCatalog() {
	fmt.Println("Available examples:")
	for _, ex := range examples.All() {
		fmt.Printf("  %-14s %s\n", ex.Name, ex.Description)
	}
}

// runOne builds a fresh container per example so browser state and provider
// resolution never leak between runs.
func runOne(ctx context.Context, flags *exampleFlags, ex examples.Example) (*entity.TaskResult, error) {
	fmt.Printf("Starting example: %s\n", ex.Name)

	container, err := di.NewContainer(ctx, di.Options{
		Provider: flags.provider,
		Model:    flags.model,
		Task: entity.TaskOptions{
			Headless: flags.headless,
			Verbose:  flags.verbose,
		},
	})
	if err != nil {
		return nil, err
	}
	defer container.Close()

	result, err := container.Runner.RunTask(ctx, ex.URL, ex.Task)
	if err != nil {
		return nil, err
	}

	if result.Success {
		fmt.Printf("Example '%s' completed (%d actions)\n", ex.Name, len(result.History))
	} else {
		fmt.Printf("Example '%s' failed: %s\n", ex.Name, result.Error)
	}
	return result, nil
}

func runAll(ctx context.Context, flags *exampleFlags) error {
	type outcome struct {
		name    string
		success bool
	}
	var outcomes []outcome

	for _, ex := range examples.All() {
		result, err := runOne(ctx, flags, ex)
		success := err == nil && result.Success
		outcomes = append(outcomes, outcome{name: ex.Name, success: success})

		if !success && flags.failFast {
			break
		}
	}

	successful := 0
	for _, o := range outcomes {
		if o.success {
			successful++
		}
	}

	fmt.Println("\nSummary")
	fmt.Printf("Successful examples: %d/%d\n", successful, len(outcomes))
	for _, o := range outcomes {
		status := "FAIL"
		if o.success {
			status = "ok"
		}
		fmt.Printf("  [%s] %s\n", status, o.name)
	}

	if successful != len(outcomes) {
		return fmt.Errorf("%d example(s) failed", len(outcomes)-successful)
	}
	return nil
}
