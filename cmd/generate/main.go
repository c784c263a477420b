// Package main provides a CLI command for running the article generation
// pipeline without the admin UI.
// Usage: fresh-motors-generate --kind youtube|translation --url URL [--category N] [--publish] [--output json]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fresh-motors-web/internal/config"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/infra/apiclient"
	"fresh-motors-web/internal/infra/progress"
	"fresh-motors-web/internal/usecase/generation"
)

// ResultOutput represents the JSON output format for a finished task.
type ResultOutput struct {
	TaskID    string `json:"task_id"`
	Status    string `json:"status"`
	ArticleID int64  `json:"article_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

func main() {
	// Parse command-line arguments
	var (
		kind         string
		sourceURL    string
		categoryID   int64
		publish      bool
		taskID       string
		outputFormat string
		timeout      time.Duration
	)

	flag.StringVar(&kind, "kind", entity.GenerationFromYouTube, "Source kind: youtube or translation")
	flag.StringVar(&sourceURL, "url", "", "Source URL to generate from")
	flag.Int64Var(&categoryID, "category", 0, "Category ID to file the article under")
	flag.BoolVar(&publish, "publish", false, "Publish the article when the pipeline finishes")
	flag.StringVar(&taskID, "task", "", "Attach to an already running task instead of submitting")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.DurationVar(&timeout, "timeout", 15*time.Minute, "Overall deadline for the pipeline")
	flag.Parse()

	if taskID == "" && sourceURL == "" {
		fmt.Fprintln(os.Stderr, "Error: --url is required (or --task to attach to a running task)")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: fresh-motors-generate --kind youtube|translation --url URL [--category N] [--publish] [--output json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  fresh-motors-generate --url https://www.youtube.com/watch?v=dQw4w9WgXcQ")
		fmt.Fprintln(os.Stderr, "  fresh-motors-generate --kind translation --url https://example.com/article --category 3 --publish")
		fmt.Fprintln(os.Stderr, "  fresh-motors-generate --task 7f3a... --output json")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Authentication: set API_TOKEN, or ADMIN_EMAIL and ADMIN_PASSWORD to log in.")
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger()

	// Load backend configuration
	backendCfg, err := config.LoadBackendConfig()
	if err != nil {
		logger.Error("failed to load backend configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to load backend configuration: %v\n", err)
		os.Exit(1)
	}

	api := apiclient.New(backendCfg)
	svc := &generation.Service{
		Repo:    apiclient.NewGenerationClient(api),
		Watcher: progress.NewWatcher(backendCfg, logger),
		Logger:  logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ctx, err = authContext(ctx, apiclient.NewAccountClient(api))
	if err != nil {
		logger.Error("authentication failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Authentication failed: %v\n", err)
		os.Exit(1)
	}

	// Submit unless attaching to an existing task
	if taskID == "" {
		task, err := svc.Submit(ctx, &entity.GenerationRequest{
			Kind:       kind,
			SourceURL:  sourceURL,
			CategoryID: categoryID,
			Publish:    publish,
		})
		if err != nil {
			logger.Error("submit failed", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Submit failed: %v\n", err)
			os.Exit(1)
		}
		taskID = task.TaskID
		if outputFormat != "json" {
			fmt.Printf("Task started: %s\n", taskID)
		}
	}

	last, watchErr := svc.Watch(ctx, taskID, func(ev entity.ProgressEvent) {
		if outputFormat != "json" {
			fmt.Printf("[%d/%d] %-26s %3d%%\n",
				ev.Step, entity.GenerationStepMax, ev.StepName(), ev.Progress)
		}
	})

	result := buildResult(taskID, last, watchErr)

	if outputFormat == "json" {
		outputJSON(result)
	} else {
		outputText(result)
	}

	if watchErr != nil && !errors.Is(watchErr, progress.ErrGenerationFailed) {
		// Failed tasks already carry their message in the result; only
		// transport problems need the raw error.
		fmt.Fprintf(os.Stderr, "Error: %v\n", watchErr)
	}
	if result.Status != "completed" {
		os.Exit(1)
	}
}

// buildResult condenses the terminal event and watch error into one record.
func buildResult(taskID string, last *entity.ProgressEvent, watchErr error) ResultOutput {
	result := ResultOutput{TaskID: taskID, Status: "completed"}
	if last != nil {
		result.ArticleID = last.ArticleID
		result.Error = last.Error
	}
	switch {
	case watchErr == nil:
	case errors.Is(watchErr, progress.ErrGenerationFailed):
		result.Status = "failed"
	case errors.Is(watchErr, context.DeadlineExceeded):
		result.Status = "timeout"
	default:
		result.Status = "interrupted"
	}
	return result
}

// authContext attaches the backend bearer token, logging in with the
// admin credentials when no static token is set.
func authContext(ctx context.Context, accounts *apiclient.AccountClient) (context.Context, error) {
	if token := os.Getenv("API_TOKEN"); token != "" {
		return apiclient.WithToken(ctx, token), nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil, fmt.Errorf("set API_TOKEN, or ADMIN_EMAIL and ADMIN_PASSWORD")
	}
	creds, err := accounts.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return apiclient.WithToken(ctx, creds.AccessToken), nil
}

// outputText prints the final task state in human-readable format.
func outputText(result ResultOutput) {
	switch result.Status {
	case "completed":
		fmt.Printf("\nDone. Article ID: %d\n", result.ArticleID)
	case "failed":
		fmt.Printf("\nGeneration failed: %s\n", result.Error)
	default:
		fmt.Printf("\nWatch ended (%s). Reattach with --task %s\n", result.Status, result.TaskID)
	}
}

// outputJSON prints the final task state in JSON format.
func outputJSON(result ResultOutput) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to encode JSON: %v\n", err)
		os.Exit(1)
	}
}

// initLogger initializes and returns a structured logger.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}
