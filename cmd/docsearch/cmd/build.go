package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/docsearch/internal/config"
	dserrors "github.com/Aman-CERP/docsearch/internal/errors"
	"github.com/Aman-CERP/docsearch/internal/output"
	"github.com/Aman-CERP/docsearch/internal/pipeline"
	"github.com/Aman-CERP/docsearch/internal/publish"
)

func newBuildCmd() *cobra.Command {
	var (
		dryRun  bool
		workers int
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the search index and publish it",
		Long: `Build collects every guide and reference page, turns each into a
search record, clears the remote index, and publishes the fresh records.

Credentials come from the environment (or a .env file):
  DOCSEARCH_APP_ID   application identifier
  DOCSEARCH_API_KEY  write-capable API key
  DOCSEARCH_INDEX    target index name

Use --dry-run to build records without touching the remote index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Workers = workers
			}

			return runBuild(ctx, cmd, cfg, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build records without publishing")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent extraction workers (default: one per CPU)")

	return cmd
}

// runBuild executes one pipeline run and reports the outcome. Shared by
// build and watch.
func runBuild(ctx context.Context, cmd *cobra.Command, cfg *config.Config, dryRun bool) error {
	out := output.NewAuto(cmd.OutOrStdout())

	pub, err := newPublisher(dryRun)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, pub)
	if err != nil {
		return err
	}

	out.Statusf("⚡", "Building search index (%d workers)...", cfg.EffectiveWorkers())

	summary, err := p.Run(ctx, dryRun)
	if err != nil {
		if summary != nil && summary.Published > 0 {
			out.Errorf("Publish failed after clearing the index; %d records were in flight", summary.Published)
		}
		return err
	}

	reportSummary(out, summary)
	return nil
}

// newPublisher returns the remote client, or an inert mock for dry runs
// so no credentials are needed.
func newPublisher(dryRun bool) (publish.Publisher, error) {
	if dryRun {
		return publish.NewMock(), nil
	}

	creds, err := config.LoadCredentials()
	if err != nil {
		return nil, err
	}

	return publish.NewClient(publish.ClientConfig{
		AppID:     creds.AppID,
		APIKey:    creds.APIKey,
		IndexName: creds.IndexName,
		Retry:     dserrors.DefaultRetryConfig(),
	})
}

func reportSummary(out *output.Writer, s *pipeline.Summary) {
	for _, w := range s.Warnings {
		out.Warningf("%s: %v", w.Path, w.Err)
	}

	out.Detailf("Collected %d guide and %d reference pages",
		s.GuideFiles, s.ReferenceFiles)
	if s.Filtered > 0 {
		out.Detailf("Dropped %d placeholder pages", s.Filtered)
	}

	if s.DryRun {
		out.Successf("Dry run: %d records built in %s (index untouched)",
			s.Published, s.Duration.Round(10*time.Millisecond))
		return
	}
	out.Successf("Published %d records in %s", s.Published, s.Duration.Round(10*time.Millisecond))
}
