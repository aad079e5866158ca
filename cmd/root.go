// Package cmd provides the CLI commands for the ServeXa chatbot service.
//
// Commands:
//   - serve: HTTP chatbot gateway (default)
//   - index: index a knowledge corpus file
//   - version: version information
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/CharukaVithana/ServeXa/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "servexa-chatbot",
	Short: "ServeXa chatbot gateway",
	Long: `The ServeXa chatbot gateway answers customer questions by routing
them to either the knowledge base (RAG) or the live business microservices
(appointments, vehicles, notifications).

Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger. DEBUG enables debug level,
// LOG_JSON switches to JSON output for log aggregation.
func newLogger() log.Logger {
	cfg := log.Config{}
	if os.Getenv("DEBUG") != "" {
		cfg.Level = slog.LevelDebug
	}
	if os.Getenv("LOG_JSON") != "" {
		cfg.JSON = true
	}
	return log.New(cfg)
}

// checkRequiredEnv verifies the Gemini API key is present before any
// model-dependent command starts.
func checkRequiredEnv() error {
	if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" {
		fmt.Fprintln(os.Stderr, "Error: GEMINI_API_KEY environment variable not set")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "The chatbot requires a Gemini API key to function.")
		fmt.Fprintln(os.Stderr, "  export GEMINI_API_KEY=your-api-key")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Get your API key at: https://ai.google.dev/")
		return fmt.Errorf("GEMINI_API_KEY not set")
	}
	return nil
}
