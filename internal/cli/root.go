// Package cli implements the lifesim command-line driver.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lifesim/internal/library"
)

var (
	dbPath     string
	formatFlag string
	logLevel   string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "lifesim",
	Short: "Conway's Game of Life on a bounded grid",
	Long: "Run Game of Life boards headless, track population, entropy and stability,\n" +
		"and move boards around as JSON pattern documents or through a local pattern library.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel)
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Pattern library path (default: $LIFESIM_DB or ~/.lifesim/patterns.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("LIFESIM_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lifesim", "patterns.db")
}

func openLibrary() (*library.SQLiteLibrary, error) {
	return library.Open(getDBPath())
}

func textOutput() bool { return formatFlag == "text" }

func printJSON(v any) { writeJSON(os.Stdout, v) }

func writeJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

func exitErr(msg string, err error) {
	slog.Error(msg, "err", err)
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
