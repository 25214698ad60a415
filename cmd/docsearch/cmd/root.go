// Package cmd provides the CLI commands for docsearch.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	dserrors "github.com/Aman-CERP/docsearch/internal/errors"
	"github.com/Aman-CERP/docsearch/internal/logging"
	"github.com/Aman-CERP/docsearch/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	configPath     string
	loggingCleanup func()
)

// NewRootCmd creates the root command for the docsearch CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docsearch",
		Short: "Build and publish the documentation search index",
		Long: `docsearch turns a documentation source tree into a hosted search index.

It collects guide and reference pages, extracts their metadata, derives
public URLs, and republishes the whole index so search results always
match the current docs.

Run 'docsearch build' from the documentation repository root.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.SetVersionTemplate("docsearch version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.docsearch/logs/")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default .docsearch.yaml)")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRun = stopLogging

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging wires slog to the log file. JSON log lines only reach
// stderr under --debug; normal runs keep the terminal for the summary.
func startLogging(_ *cobra.Command, _ []string) error {
	cfg := logging.DefaultConfig()
	cfg.WriteToStderr = false
	if debugMode {
		cfg = logging.DebugConfig()
	}

	logger, cleanup, err := logging.Setup(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)

	if debugMode {
		slog.Info("debug logging enabled",
			slog.String("log_file", logging.DefaultLogPath()))
	}
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
}

// Execute runs the root command.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, dserrors.FormatForCLI(err))
	}
	return err
}
