package gen

import (
	"context"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"mapper-generator/internal/mapping"
	"mapper-generator/internal/plan"
)

const libraryDir = "../../examples/library"

func libraryPlan(t *testing.T) *plan.Plan {
	t.Helper()

	f, err := mapping.LoadFile(filepath.Join(libraryDir, "mappers.yaml"))
	require.NoError(t, err)

	p := plan.Build(f)
	require.False(t, p.Diagnostics.HasErrors(), "%v", p.Diagnostics.All())

	return p
}

func generate(t *testing.T, cfg GeneratorConfig, opts ...Option) map[string]string {
	t.Helper()

	files, err := NewGenerator(cfg, opts...).Generate(context.Background(), libraryPlan(t))
	require.NoError(t, err)

	return lo.SliceToMap(files, func(f GeneratedFile) (string, string) {
		return f.Filename, string(f.Content)
	})
}

func TestGenerate_ParsesAsGo(t *testing.T) {
	files := generate(t, DefaultGeneratorConfig())
	require.Len(t, files, 9)

	for name, src := range files {
		f, err := parser.ParseFile(token.NewFileSet(), name, src, parser.ParseComments)
		require.NoError(t, err, name)
		assert.Equal(t, "library", f.Name.Name, name)
	}
}

// The example package is checked in; it must match what the generator
// produces from its definitions.
func TestGenerate_MatchesCheckedInExample(t *testing.T) {
	files := generate(t, DefaultGeneratorConfig())

	for name, src := range files {
		want, err := os.ReadFile(filepath.Join(libraryDir, name))
		require.NoError(t, err, name)
		assert.Equal(t, string(want), src, name)
	}
}

func TestGenerate_Book(t *testing.T) {
	src := generate(t, DefaultGeneratorConfig())["book_mapper.go"]
	require.NotEmpty(t, src)

	for _, snippet := range []string{
		"// Code generated by mapper-generator. DO NOT EDIT.",
		"var _ jsonmap.ObjectMapper[*Book] = (*BookMapper)(nil)",
		`case "id", "book_id":`,
		"return m.parentMapper.ParseField(&instance.Entity, name, r, mc.Child(jsonmap.ParentKey))",
		"if stored := FindBook(instance.ID); stored != nil {",
		"instance.SetISBN(stored.ISBN())",
		`mc.SetNested("Author", child)`,
		"m.relatedCodec = jsonmap.SliceOf(jsonmap.MapperCodec[*Book](m), false)",
		"object.BeforeSerialize()",
		"instance.AfterParse()",
	} {
		assert.Contains(t, src, snippet)
	}

	assert.NotContains(t, src, `"internalNote", m.internalNoteCodec`)
	assert.NotContains(t, src, `case "displayTitle"`)
}

func TestGenerate_Generic(t *testing.T) {
	src := generate(t, DefaultGeneratorConfig())["page_mapper.go"]

	assert.Contains(t, src, "func PageType[T any](tType jsonmap.TypeWitness[T]) jsonmap.TypeWitness[*Page[T]] {")
	assert.Contains(t, src, "if m.tMapper, err = jsonmap.Resolve(res, tType); err != nil {")
	assert.Contains(t, src, "instance := &Page[T]{}")
	assert.NotContains(t, src, "var _ jsonmap.ObjectMapper")
}

func TestGenerate_WithoutComments(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.GenerateComments = false

	src := generate(t, cfg)["author_mapper.go"]

	assert.NotContains(t, src, "// AuthorType returns")
	assert.NotContains(t, src, "// Parse decodes")
	assert.Contains(t, src, "// Code generated by mapper-generator. DO NOT EDIT.")
}

func TestGenerate_SingleWorkerKeepsOrder(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Workers = 1

	p := libraryPlan(t)

	files, err := NewGenerator(cfg).Generate(context.Background(), p)
	require.NoError(t, err)

	want := lo.Map(p.Mappers, func(mp *plan.MapperPlan, _ int) string { return mp.Filename })
	got := lo.Map(files, func(f GeneratedFile, _ int) string { return f.Filename })
	assert.Equal(t, want, got)
}

func TestGenerate_LogsEachFile(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	generate(t, DefaultGeneratorConfig(), WithLogger(zap.New(core)))

	assert.Equal(t, 9, logs.FilterMessage("rendered mapper").Len())
}

func TestGenerate_RejectsInvalidPlans(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig())

	_, err := g.Generate(context.Background(), nil)
	require.Error(t, err)

	p := &plan.Plan{}
	p.Diagnostics.AddError("boom", "broken", "A", "")

	_, err = g.Generate(context.Background(), p)
	require.ErrorContains(t, err, "plan has errors")
}

func TestGenerate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator(DefaultGeneratorConfig()).Generate(ctx, libraryPlan(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	files := []GeneratedFile{
		{Filename: "a_mapper.go", Content: []byte("package a\n")},
		{Filename: "b_mapper.go", Content: []byte("package a\n")},
	}
	require.NoError(t, WriteFiles(files, dir))

	for _, f := range files {
		got, err := os.ReadFile(filepath.Join(dir, f.Filename))
		require.NoError(t, err)
		assert.Equal(t, f.Content, got)
	}
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "book_mapper.go", []byte("package (")))

	got, err := os.ReadFile(filepath.Join(dir, "book_mapper.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, "package (", string(got))

	require.NoError(t, writeDebugUnformatted("", "x.go", nil))
}
