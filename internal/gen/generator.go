package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"runtime"
	"strconv"
	"text/template"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mapper-generator/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir is the directory where generated files are written. It also
	// receives the unformatted source of files that fail to format.
	OutputDir string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
	// Workers bounds the number of files rendered concurrently. Zero means
	// one per CPU.
	Workers int
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputDir:        ".",
		GenerateComments: true,
	}
}

// Generator generates Go code from a mapper plan.
type Generator struct {
	config GeneratorConfig
	logger *zap.Logger
	tmpl   *template.Template
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used to report progress.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig, opts ...Option) *Generator {
	g := &Generator{
		config: config,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.tmpl = template.Must(template.New("mapper").Funcs(template.FuncMap{
		"quote": strconv.Quote,
		"doc":   g.doc,
	}).Parse(mapperTemplate))

	return g
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "book_mapper.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

type fileData struct {
	Package string
	Runtime string
	M       *plan.MapperPlan
}

// Generate renders one file per mapper of p. Files are rendered concurrently
// and returned in plan order. A plan with error diagnostics is rejected.
func (g *Generator) Generate(ctx context.Context, p *plan.Plan) ([]GeneratedFile, error) {
	if p == nil {
		return nil, errors.New("plan is nil")
	}

	if p.Diagnostics.HasErrors() {
		return nil, errors.Wrap(p.Diagnostics.Error(), "plan has errors")
	}

	files := make([]GeneratedFile, len(p.Mappers))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers())

	for i, mp := range p.Mappers {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			file, err := g.render(p.Package, mp)
			if err != nil {
				return errors.Wrapf(err, "generating %s", mp.Name)
			}

			g.logger.Debug("rendered mapper",
				zap.String("type", mp.Name),
				zap.String("file", file.Filename),
				zap.Int("bytes", len(file.Content)))

			files[i] = *file

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}

func (g *Generator) render(pkg string, mp *plan.MapperPlan) (*GeneratedFile, error) {
	var buf bytes.Buffer

	data := fileData{Package: pkg, Runtime: plan.RuntimeImport, M: mp}
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if debugErr := writeDebugUnformatted(g.config.OutputDir, mp.Filename, buf.Bytes()); debugErr != nil {
			g.logger.Warn("writing unformatted source", zap.Error(debugErr))
		}

		return nil, errors.Wrap(err, "formatting code")
	}

	return &GeneratedFile{
		Filename: mp.Filename,
		Content:  formatted,
	}, nil
}

// doc renders a doc comment line, or nothing when comments are disabled.
func (g *Generator) doc(msg string, args ...any) string {
	if !g.config.GenerateComments {
		return ""
	}

	return "// " + fmt.Sprintf(msg, args...) + "\n"
}

func (g *Generator) workers() int {
	if g.config.Workers > 0 {
		return g.config.Workers
	}

	return runtime.GOMAXPROCS(0)
}
