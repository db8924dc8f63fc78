package cli

import (
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mapper-generator/internal/analyze"
	"mapper-generator/internal/config"
	"mapper-generator/internal/diagnostic"
	"mapper-generator/internal/gen"
	"mapper-generator/internal/mapping"
	"mapper-generator/internal/plan"
)

type genOptions struct {
	definitions string
	output      string
	workers     int
	noComments  bool
	checkSource bool
}

// NewGenCmd renders mapper sources for a definition file.
func NewGenCmd(rootOpts *Options) *cobra.Command {
	opts := &genOptions{}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate mapper sources from a definition file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}

			applyGenFlags(cmd, cfg, opts)

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			files, err := runGen(cmd, cfg, logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "generated %d file(s) in %s\n", files, cfg.Output.Dir)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.definitions, "definitions", "d", "", "Definition file (default: config definitions)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output directory (default: config output.dir)")
	flags.IntVar(&opts.workers, "workers", 0, "Files rendered concurrently, 0 means one per CPU")
	flags.BoolVar(&opts.noComments, "no-comments", false, "Omit doc comments from generated code")
	flags.BoolVar(&opts.checkSource, "check-source", false, "Check the definitions against the output package first")

	return cmd
}

// applyGenFlags lets explicitly set flags win over file and env values.
func applyGenFlags(cmd *cobra.Command, cfg *config.Config, opts *genOptions) {
	flags := cmd.Flags()

	if flags.Changed("definitions") {
		cfg.Definitions = opts.definitions
	}

	if flags.Changed("output") {
		cfg.Output.Dir = opts.output
	}

	if flags.Changed("workers") {
		cfg.Generate.Workers = opts.workers
	}

	if flags.Changed("no-comments") {
		cfg.Output.Comments = !opts.noComments
	}

	if flags.Changed("check-source") {
		cfg.Generate.CheckSource = opts.checkSource
	}
}

func runGen(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger) (int, error) {
	if cfg.Generate.Workers < 0 {
		return 0, errors.Newf("workers must not be negative, got %d", cfg.Generate.Workers)
	}

	f, p, err := planDefinitions(cfg, logger)
	if err != nil {
		return 0, err
	}

	g := gen.NewGenerator(gen.GeneratorConfig{
		OutputDir:        cfg.Output.Dir,
		GenerateComments: cfg.Output.Comments,
		Workers:          cfg.Generate.Workers,
	}, gen.WithLogger(logger))

	files, err := g.Generate(cmd.Context(), p)
	if err != nil {
		return 0, errors.Wrap(err, "generate")
	}

	if err := gen.WriteFiles(files, cfg.Output.Dir); err != nil {
		return 0, err
	}

	logger.Info("generation finished",
		zap.String("package", f.Package),
		zap.Int("files", len(files)),
		zap.String("dir", cfg.Output.Dir))

	return len(files), nil
}

// planDefinitions loads, optionally source-checks and plans the configured
// definition file. Diagnostics are logged; errors among them fail the run.
func planDefinitions(cfg *config.Config, logger *zap.Logger) (*mapping.File, *plan.Plan, error) {
	f, err := mapping.LoadFile(cfg.Definitions)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load definitions")
	}

	logger.Debug("loaded definitions",
		zap.String("file", cfg.Definitions),
		zap.Int("mappers", len(f.Mappers)))

	p := plan.Build(f)

	if cfg.Generate.CheckSource && !p.Diagnostics.HasErrors() {
		src, err := checkSource(f, cfg.Output.Dir)
		if err != nil {
			return nil, nil, err
		}

		p.Diagnostics.Merge(*src)
	}

	logDiagnostics(logger, &p.Diagnostics)

	if err := p.Diagnostics.Error(); err != nil {
		return nil, nil, err
	}

	return f, p, nil
}

func checkSource(f *mapping.File, dir string) (*diagnostic.Diagnostics, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", dir)
	}

	graph, err := analyze.NewAnalyzer(abs).LoadPackages(".")
	if err != nil {
		return nil, errors.Wrap(err, "load target package")
	}

	return mapping.CheckSource(f, graph), nil
}

func logDiagnostics(logger *zap.Logger, d *diagnostic.Diagnostics) {
	for _, diag := range d.Errors {
		logger.Error(diag.String())
	}

	for _, diag := range d.Warnings {
		logger.Warn(diag.String())
	}

	for _, diag := range d.Infos {
		logger.Debug(diag.String())
	}
}
