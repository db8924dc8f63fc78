package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCheckCmd validates a definition file without writing anything.
func NewCheckCmd(rootOpts *Options) *cobra.Command {
	var (
		definitions string
		checkSource bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a definition file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("definitions") {
				cfg.Definitions = definitions
			}

			if cmd.Flags().Changed("check-source") {
				cfg.Generate.CheckSource = checkSource
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			f, p, err := planDefinitions(cfg, logger)
			if err != nil {
				return err
			}

			for _, diag := range p.Diagnostics.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", diag)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d mapper(s) ok\n", cfg.Definitions, len(f.Mappers))

			return nil
		},
	}

	cmd.Flags().StringVarP(&definitions, "definitions", "d", "", "Definition file (default: config definitions)")
	cmd.Flags().BoolVar(&checkSource, "check-source", false, "Also check the definitions against the Go package in output.dir")

	return cmd
}
