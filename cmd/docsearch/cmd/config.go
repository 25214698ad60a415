package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/docsearch/internal/config"
	"github.com/Aman-CERP/docsearch/internal/output"
)

// newConfigCmd creates the config command.
func newConfigCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration the build would run with: defaults merged with
the config file and environment overrides.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if check {
				out := output.NewAuto(cmd.OutOrStdout())
				out.Success("Configuration is valid")
				out.Detailf("Guides root: %s", cfg.Guides.Root)
				out.Detailf("Reference root: %s", cfg.Reference.Root)
				out.Detailf("Workers: %d", cfg.EffectiveWorkers())
				return nil
			}

			dump, err := cfg.Dump()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), dump)
			return err
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Validate the configuration without printing it")

	return cmd
}
