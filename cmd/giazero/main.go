// Command giazero runs a Gemini-backed agent against a coding task.
//
// The agent reads task files from one directory, works out a solution with
// its file and process tools, and writes everything it produces to a
// separate solution directory. A transcript of the run is printed to stdout.
//
// Usage:
//
//	GEMINI_API_KEY=gk-... giazero -task-dir ./task -solution-dir ./solution [flags]
//
// Flags:
//
//	-task-dir string      Directory containing the task files (required)
//	-solution-dir string  Directory the agent writes to, created if missing (required)
//	-model string         Gemini model ID (default gemini-3-pro-preview)
//	-user-prompt string   Initial user message (default "Solve the challenge.")
//	-api-key string       API key (overrides GEMINI_API_KEY)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	giazero "github.com/torayeff/giazero"
	"github.com/torayeff/giazero/agent"
	"github.com/torayeff/giazero/fs"
	"github.com/torayeff/giazero/gemini"
	"github.com/torayeff/giazero/prompt"
	"github.com/torayeff/giazero/trace"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "giazero: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		taskDir     = flag.String("task-dir", "", "Directory containing the task files (required)")
		solutionDir = flag.String("solution-dir", "", "Directory the agent writes to, created if missing (required)")
		model       = flag.String("model", "", "Gemini model ID (default gemini-3-pro-preview)")
		userPrompt  = flag.String("user-prompt", "Solve the challenge.", "Initial user message")
		apiKey      = flag.String("api-key", "", "API key (overrides GEMINI_API_KEY)")
	)
	flag.Parse()

	if *taskDir == "" || *solutionDir == "" {
		flag.Usage()
		return errors.New("-task-dir and -solution-dir are required")
	}

	key := *apiKey
	if key == "" {
		key = os.Getenv("GEMINI_API_KEY")
	}
	if key == "" {
		return errors.New("no API key: set GEMINI_API_KEY or pass -api-key")
	}

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Both directories are embedded into the system prompt as absolute
	// paths so the model's tool calls are unambiguous about location.
	task := fs.Resolve(*taskDir)
	solution := fs.Resolve(*solutionDir)

	info, err := os.Stat(task)
	if err != nil {
		return fmt.Errorf("task directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("task directory: %s is not a directory", task)
	}
	if err := os.MkdirAll(solution, 0o755); err != nil {
		return fmt.Errorf("solution directory: %w", err)
	}

	toolDefs := tools()

	systemPrompt, err := prompt.Build(task, solution, toolDefs)
	if err != nil {
		return fmt.Errorf("build system prompt: %w", err)
	}

	client, err := gemini.New(ctx, key)
	if err != nil {
		return err
	}

	now := time.Now()
	session := giazero.Session{
		ID:           fmt.Sprintf("%d", now.UnixNano()),
		SystemPrompt: systemPrompt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	session.Messages = append(session.Messages, giazero.UserMessage{
		Content:   []giazero.ContentBlock{giazero.TextBlock{Text: *userPrompt}},
		Timestamp: now,
	})

	printer := trace.New(os.Stdout)
	printer.PrintUser(*userPrompt)

	loop := agent.New(client, &executor{})
	opts := []agent.RunOption{
		agent.WithEventHandler(printer.HandleEvent),
		agent.WithToolResultHandler(printer.HandleToolResult),
	}
	if *model != "" {
		opts = append(opts, agent.WithModel(*model))
	}

	runErr := loop.Run(ctx, &session, toolDefs, opts...)
	printer.Flush()
	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(os.Stderr, "Done in %d turns.\n", countTurns(session.Messages))
	return nil
}

// countTurns counts assistant messages in the conversation.
func countTurns(msgs []giazero.Message) int {
	n := 0
	for _, m := range msgs {
		if _, ok := m.(giazero.AssistantMessage); ok {
			n++
		}
	}
	return n
}
