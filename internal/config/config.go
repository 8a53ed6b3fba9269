// Package config loads the optional leli.yaml file and the .env environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"
	"git.home.luguber.info/inful/leli/internal/foundation/normalization"
)

// DefaultPath is the configuration file looked up when -c is not given.
const DefaultPath = "leli.yaml"

// Defaults for unset fields.
const (
	DefaultExtractOutput   = ".app"
	DefaultTranslateOutput = "doc"
	DefaultStylesheet      = "src/css/style.css"
	DefaultConverter       = "pandoc"
	DefaultWatchDebounce   = 300 * time.Millisecond
)

// Engine selects the document renderer.
type Engine string

const (
	EnginePandoc   Engine = "pandoc"
	EngineGoldmark Engine = "goldmark"
)

var engineNormalizer = normalization.NewEnumNormalizer("engine", map[string]Engine{
	"pandoc":   EnginePandoc,
	"goldmark": EngineGoldmark,
}, EnginePandoc)

// ParseEngine resolves an engine name; empty selects pandoc.
func ParseEngine(raw string) (Engine, error) {
	return engineNormalizer.NormalizeWithValidation(raw)
}

// Config is the file-level configuration. CLI flags override it.
type Config struct {
	Extract   ExtractConfig   `yaml:"extract"`
	Translate TranslateConfig `yaml:"translate"`
	Store     StoreConfig     `yaml:"store"`
	Logging   LoggingConfig   `yaml:"logging"`
	Watch     WatchConfig     `yaml:"watch"`
}

// ExtractConfig configures the extract and watch commands.
type ExtractConfig struct {
	Output    string `yaml:"output"`
	DocOutput string `yaml:"doc_output,omitempty"`
	Protocol  string `yaml:"protocol,omitempty"`
}

// TranslateConfig configures HTML rendering.
type TranslateConfig struct {
	Output     string `yaml:"output"`
	Stylesheet string `yaml:"stylesheet"`
	// Script is a local mermaid build inlined into pages when present.
	Script    string `yaml:"script,omitempty"`
	ScriptURL string `yaml:"script_url,omitempty"`
	Engine    Engine `yaml:"engine"`
	Converter string `yaml:"converter"`
}

// StoreConfig configures the save command.
type StoreConfig struct {
	DatabaseURL string `yaml:"database_url,omitempty"`
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DebounceDuration parses Debounce, falling back to DefaultWatchDebounce.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		return DefaultWatchDebounce
	}
	return d
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads .env files and then the configuration file at path. A missing
// file yields the defaults; a present but invalid file is an error.
func Load(path string) (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, configError(err, "read configuration file", path)
	default:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, configError(err, "parse configuration file", path)
		}
	}

	if err := normalize(cfg); err != nil {
		return nil, configError(err, "invalid configuration", path)
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, configError(err, "invalid configuration", path)
	}
	return cfg, nil
}

func configError(err error, message, path string) error {
	return ferrors.WrapError(err, ferrors.CategoryConfig, message).
		Fatal().
		WithContext("path", path).
		Build()
}

func normalize(cfg *Config) error {
	engine, err := ParseEngine(string(cfg.Translate.Engine))
	if err != nil {
		return err
	}
	cfg.Translate.Engine = engine
	if cfg.Logging.Level != "" {
		cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	}
	if cfg.Logging.Format != "" {
		cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	}
	return nil
}

func applyDefaults(cfg *Config) {
	setDefault(&cfg.Extract.Output, DefaultExtractOutput)
	setDefault(&cfg.Translate.Output, DefaultTranslateOutput)
	setDefault(&cfg.Translate.Stylesheet, DefaultStylesheet)
	setDefault(&cfg.Translate.Converter, DefaultConverter)
	if cfg.Translate.Engine == "" {
		cfg.Translate.Engine = EnginePandoc
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	setDefault(&cfg.Watch.Debounce, DefaultWatchDebounce.String())
	// The environment (including .env) overrides store.database_url.
	if url := strings.TrimSpace(os.Getenv(EnvDatabaseURL)); url != "" {
		cfg.Store.DatabaseURL = url
	}
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}

// Validate checks field-level constraints.
func (c *Config) Validate() error {
	return validation.ValidateStruct(&c.Watch,
		validation.Field(&c.Watch.Debounce, validation.By(func(value any) error {
			d, err := time.ParseDuration(value.(string))
			if err != nil {
				return validation.NewError("leli.config.watch_debounce_invalid", "must be a duration such as 300ms")
			}
			if d <= 0 {
				return validation.NewError("leli.config.watch_debounce_positive", "must be positive")
			}
			return nil
		})),
	)
}

// Init writes a configuration file populated with the defaults.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).Build()
	}

	example := Default()
	example.Store.DatabaseURL = "${" + EnvDatabaseURL + "}"
	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write configuration file").
			WithContext("path", path).
			Build()
	}
	return nil
}
