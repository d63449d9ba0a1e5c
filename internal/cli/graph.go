package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apigraph/pkg/config"
	"github.com/matzehuels/apigraph/pkg/errors"
	"github.com/matzehuels/apigraph/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
// Flags only override the configuration when set explicitly.
type graphOpts struct {
	configFile string
	output     string
	formats    string
	dark       bool
	noCache    bool
}

func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <spec>",
		Short: "Write one dependency graph per tag",
		Long: `Write one dependency graph per tag of an OpenAPI document.

Each graph links the tag's operations to the schemas, responses and security
schemes they reference. Tags whose operations reference nothing are skipped.
Files are named <tag>_dependencies.<format>.`,
		Example: `  apigraph graph openapi.yaml
  apigraph graph openapi.yaml --dark -f dot,svg -o docs/graphs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.OutputDir = opts.output
			}
			if flags.Changed("format") {
				formats := parseFormats(opts.formats)
				if err := validateFormats(formats); err != nil {
					return err
				}
				cfg.Formats = formats
			}
			if flags.Changed("dark") {
				cfg.Dark = opts.dark
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), args[0], cfg, opts.noCache)
		},
	}

	def := config.Default()
	cmd.Flags().StringVar(&opts.configFile, "config", "", "TOML configuration file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", def.OutputDir, "output directory")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", config.FormatDOT, "output format(s): dot, svg (comma-separated)")
	cmd.Flags().BoolVar(&opts.dark, "dark", false, "use the dark palette")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the SVG render cache")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, input string, cfg config.Config, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner := c.newRunner(noCache || !cfg.WantsFormat(config.FormatSVG))
	defer runner.Cache.Close()

	result, err := runner.Execute(ctx, pipeline.Options{Input: input, Config: cfg})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "create output directory %s", cfg.OutputDir)
	}
	paths := make([]string, 0, len(result.Artifacts))
	for _, a := range result.Artifacts {
		path := filepath.Join(cfg.OutputDir, a.FileName)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeWrite, err, "write %s", path)
		}
		logger.Debug("wrote artifact", "tag", a.Tag, "format", a.Format, "cached", a.CacheHit, "path", path)
		paths = append(paths, path)
	}
	prog.done("Rendered dependency graphs")

	if len(paths) == 0 {
		printWarning("No dependency graphs generated")
		return nil
	}
	printSuccess("Generated %d files in %s", len(paths), cfg.OutputDir)
	for _, p := range paths {
		printFile(p)
	}
	if len(result.Skipped) > 0 {
		printDetail("Skipped %d tags without dependencies", len(result.Skipped))
	}
	return nil
}
