// Package main is the entry point for the DNA planner CLI
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dna-planner/internal/config"
	"github.com/KirkDiggler/dna-planner/internal/errors"
	"github.com/KirkDiggler/dna-planner/internal/orchestrators/planner"
)

var (
	// Persistent flags
	configPath   string
	dataDir      string
	logLevel     string
	historyStore string

	// Set up by the root command before any subcommand runs
	settings *config.Config
	service  planner.Service
	cleanup  = func() {}

	// newService wires the planner from config; tests replace it
	newService = buildService
)

var rootCmd = &cobra.Command{
	Use:   "dna-planner",
	Short: "Plan DNA collection for hybrid creatures",
	Long: `dna-planner reads your roster, recipes and wishlist and works out how much
DNA each root creature still has to collect before every wishlist creature
can be unlocked.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (defaults are built in)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the roster files")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&historyStore, "history-store", "", "History backend: file, sqlite or redis")

	// Reports
	rootCmd.AddCommand(needsCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(limitingCmd)
	rootCmd.AddCommand(sharedCmd)
	rootCmd.AddCommand(orderCmd)

	// Roster maintenance
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(wishCmd)

	rootCmd.AddCommand(historyCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	cleanup()

	if err != nil {
		printError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("history-store") {
		cfg.History.Store = historyStore
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	})))

	svc, closeFn, err := newService(cfg)
	if err != nil {
		return err
	}
	settings = cfg
	service = svc
	cleanup = closeFn
	return nil
}

// printError writes err and, for unknown names, the closest matches
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	if suggestions, ok := errors.GetMeta(err)["suggestions"].([]string); ok && len(suggestions) > 0 {
		fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(suggestions, ", "))
	}
}

// exitCode maps domain errors to their code. Anything else came from
// argument parsing.
func exitCode(err error) int {
	var domainErr *errors.Error
	if !errors.As(err, &domainErr) {
		return errors.CodeInvalidArgument.ExitCode()
	}
	return domainErr.Code.ExitCode()
}
