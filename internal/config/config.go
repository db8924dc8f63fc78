// Package config loads the generator settings from a YAML file and the
// environment.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that override file values,
// e.g. MAPPERGEN_OUTPUT_DIR.
const EnvPrefix = "MAPPERGEN"

// Config is the top-level generator configuration.
type Config struct {
	// Definitions is the default definition file.
	Definitions string         `mapstructure:"definitions"`
	Output      OutputConfig   `mapstructure:"output"`
	Generate    GenerateConfig `mapstructure:"generate"`
	Logging     LoggingConfig  `mapstructure:"logging"`
}

// OutputConfig controls where and how files are written.
type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	Comments bool   `mapstructure:"comments"`
}

// GenerateConfig controls the generation run.
type GenerateConfig struct {
	// Workers bounds concurrent rendering, 0 means one per CPU.
	Workers int `mapstructure:"workers"`
	// CheckSource loads the target package and checks the definitions
	// against it before generating.
	CheckSource bool `mapstructure:"check_source"`
}

// LoggingConfig controls logger behaviour.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
	File   string `mapstructure:"file"`   // optional rotated log file
}

// Load reads configuration from path. An empty path looks for
// mapper-generator.yaml in the working directory and falls back to the
// defaults when there is none. Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		v.SetConfigName("mapper-generator")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("definitions", "mappers.yaml")

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.comments", true)

	v.SetDefault("generate.workers", 0)
	v.SetDefault("generate.check_source", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
}

// Validate performs basic sanity checks on configuration values.
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return errors.New("output.dir must not be empty")
	}

	if c.Generate.Workers < 0 {
		return errors.Newf("generate.workers must not be negative, got %d", c.Generate.Workers)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Newf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return errors.Newf("logging.format %q is not one of console, json", c.Logging.Format)
	}

	return nil
}
