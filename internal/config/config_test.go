package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mapper-generator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "mappers.yaml", cfg.Definitions)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.True(t, cfg.Output.Comments)
	assert.Zero(t, cfg.Generate.Workers)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
definitions: defs/library.yaml
output:
  dir: generated
  comments: false
generate:
  workers: 2
  check_source: true
logging:
  level: debug
  format: json
  file: gen.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Definitions: "defs/library.yaml",
		Output:      OutputConfig{Dir: "generated", Comments: false},
		Generate:    GenerateConfig{Workers: 2, CheckSource: true},
		Logging:     LoggingConfig{Level: "debug", Format: "json", File: "gen.log"},
	}, cfg)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "output:\n  dir: generated\n")

	t.Setenv("MAPPERGEN_OUTPUT_DIR", "from-env")
	t.Setenv("MAPPERGEN_GENERATE_WORKERS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Output.Dir)
	assert.Equal(t, 3, cfg.Generate.Workers)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read config")

	_, err = Load(writeConfig(t, "output: [broken"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "logging:\n  level: loud\n"))
	require.ErrorContains(t, err, "logging.level")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty output", func(c *Config) { c.Output.Dir = "" }, "output.dir"},
		{"negative workers", func(c *Config) { c.Generate.Workers = -1 }, "generate.workers"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	assert.NoError(t, Default().Validate())
}
