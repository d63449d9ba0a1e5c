package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apigraph/pkg/report"
)

const defaultReportRoot = "openapi.yaml"

func (c *CLI) reportCommand() *cobra.Command {
	var output, configFile string

	cmd := &cobra.Command{
		Use:   "report [root]",
		Short: "Write a CSV of endpoints and their HTTP methods",
		Long: `Write a CSV of endpoints and their HTTP methods.

The root document's paths must reference one file per path item via $ref.
References are resolved relative to the root document. Path files that cannot
be read are reported and skipped. The root defaults to openapi.yaml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := defaultReportRoot
			if len(args) == 1 {
				root = args[0]
			}
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.ReportOutput = output
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runReport(cmd.Context(), root, cfg.ReportOutput)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "endpoint_methods.csv", "CSV output file")
	cmd.Flags().StringVar(&configFile, "config", "", "TOML configuration file")

	return cmd
}

func runReport(ctx context.Context, root, output string) error {
	logger := loggerFromContext(ctx)

	rows, err := report.NewCollector(logger).Collect(ctx, root)
	if err != nil {
		return err
	}
	if err := report.WriteFile(output, rows); err != nil {
		return err
	}

	printSuccess("Wrote %d endpoints", len(rows))
	printFile(output)
	return nil
}
