package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/docsearch/internal/config"
	"github.com/Aman-CERP/docsearch/internal/output"
	"github.com/Aman-CERP/docsearch/internal/pipeline"
	"github.com/Aman-CERP/docsearch/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	var (
		debounce time.Duration
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the index whenever the docs change",
		Long: `Watch observes the documentation roots and republishes the full index
after every change. Rapid edits are coalesced so save storms trigger one
rebuild, and unchanged files are served from an extraction cache.

Intended for local docs authoring; use 'docsearch build' in CI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			return runWatch(ctx, cmd, cfg, debounce, dryRun)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "How long to wait after the last change before rebuilding")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Rebuild records without publishing")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, cfg *config.Config, debounce time.Duration, dryRun bool) error {
	out := output.NewAuto(cmd.OutOrStdout())

	pub, err := newPublisher(dryRun)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, pub, pipeline.WithCache(4096))
	if err != nil {
		return err
	}

	cfgFile := configPath
	if cfgFile == "" {
		cfgFile = config.DefaultConfigFile
	}

	w, err := watcher.New(watcher.Options{
		DebounceWindow: debounce,
		Extensions:     cfg.Extensions,
		ConfigFile:     cfgFile,
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	// Initial build so the index matches the tree before edits arrive.
	if err := runOnce(ctx, out, p, dryRun); err != nil {
		return err
	}

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- w.Start(ctx, cfg.Guides.Root, cfg.Reference.Root)
	}()

	out.Statusf("👀", "Watching %s and %s for changes...", cfg.Guides.Root, cfg.Reference.Root)

	for {
		select {
		case <-ctx.Done():
			out.Newline()
			out.Status("✋", "Stopping watch")
			return nil
		case err := <-watchErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		case err := <-w.Errors():
			slog.Warn("watch error", slog.String("error", err.Error()))
		case batch, ok := <-w.Batches():
			if !ok {
				return nil
			}

			if reloaded, ok := reloadOnConfigChange(batch, out); ok {
				cfg = reloaded
				rebuilt, err := pipeline.New(cfg, pub, pipeline.WithCache(4096))
				if err != nil {
					out.Errorf("Config reload failed: %v", err)
					continue
				}
				p = rebuilt
			}

			out.Statusf("✏️", "%d change(s) detected, rebuilding...", len(batch))
			if err := runOnce(ctx, out, p, dryRun); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				// Keep watching; the next change gets another chance.
				out.Errorf("Rebuild failed: %v", err)
			}
		}
	}
}

// runOnce executes one rebuild and reports it without ending the watch.
func runOnce(ctx context.Context, out *output.Writer, p *pipeline.Pipeline, dryRun bool) error {
	summary, err := p.Run(ctx, dryRun)
	if err != nil {
		return err
	}
	reportSummary(out, summary)
	return nil
}

// reloadOnConfigChange reloads configuration when the batch contains a
// config file event. The second return reports whether a reload happened.
func reloadOnConfigChange(batch []watcher.FileEvent, out *output.Writer) (*config.Config, bool) {
	for _, ev := range batch {
		if ev.Operation != watcher.OpConfigChange {
			continue
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			out.Errorf("Config reload failed: %v", err)
			return nil, false
		}
		out.Status("🔄", "Configuration reloaded")
		return cfg, true
	}
	return nil, false
}
