package config

import (
	stderrors "errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// DefaultFile is the configuration file looked up when no path is given.
const DefaultFile = "blogbuilder.yaml"

// Config represents the application configuration.
type Config struct {
	Site   SiteConfig   `yaml:"site"`
	Source SourceConfig `yaml:"source"`
	Output OutputConfig `yaml:"output"`
	Build  BuildConfig  `yaml:"build"`
}

// SiteConfig holds values shared by every emitted page.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	// BasePath switches links to root-relative form under a fixed prefix
	// (e.g. "/my-site"). Empty keeps links relative to each page.
	BasePath    string `yaml:"base_path,omitempty"`
	DateFormat  string `yaml:"date_format,omitempty"`
	Footer      string `yaml:"footer,omitempty"`
	Stylesheet  string `yaml:"stylesheet,omitempty"`
	LatestPosts int    `yaml:"latest_posts,omitempty"`
	Menu        []Menu `yaml:"menu,omitempty"`
}

// SourceConfig describes where source documents live.
type SourceConfig struct {
	Directory    string   `yaml:"directory"`
	Pages        string   `yaml:"pages"`
	Posts        string   `yaml:"posts"`
	Static       string   `yaml:"static,omitempty"`
	Patterns     []string `yaml:"patterns,omitempty"`
	HomeTemplate string   `yaml:"home_template,omitempty"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory   string `yaml:"directory"`
	Posts       string `yaml:"posts"`
	IndexFile   string `yaml:"index_file"`
	ListingFile string `yaml:"listing_file"`
	Clean       bool   `yaml:"clean"` // Remove the output directory before building
}

// BuildConfig tunes the build pipeline.
type BuildConfig struct {
	Workers         int    `yaml:"workers,omitempty"`
	ListingPage     string `yaml:"listing_page"`
	VerifyLinks     *bool  `yaml:"verify_links,omitempty"`
	StrictLinks     bool   `yaml:"strict_links,omitempty"`
	HardWraps       bool   `yaml:"hard_wraps,omitempty"`
	UnsafeHTML      bool   `yaml:"unsafe_html,omitempty"`
	MetricsTextfile string `yaml:"metrics_textfile,omitempty"`
}

// LinkCheckEnabled reports whether the post-build link check runs.
func (b BuildConfig) LinkCheckEnabled() bool {
	return b.VerifyLinks == nil || *b.VerifyLinks
}

// Resolve loads the configuration at path. An empty path loads DefaultFile when it
// exists and falls back to built-in defaults otherwise.
func Resolve(path string) (*Config, error) {
	if err := loadEnvFile(); err != nil && !stderrors.Is(err, errNoEnvFile) {
		fmt.Fprintf(os.Stderr, "Note: %v\n", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			cfg := Default()
			return finalize(cfg)
		}
		path = DefaultFile
	}
	return Load(path)
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigError("configuration file not found").WithContext("path", configPath).Build()
	}

	// #nosec G304 -- configPath is supplied by the operator.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().WithContext("path", configPath).Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		classified, ok := errors.AsClassified(err)
		if ok {
			return nil, classified.WithContext("path", configPath)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration bytes, expanding ${VAR} references from the
// environment, and applies defaults, normalization and validation.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}
	return finalize(cfg)
}

func finalize(cfg *Config) (*Config, error) {
	applyDefaults(cfg)
	res, err := NormalizeConfig(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "Config warning: %s\n", w)
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).Build()
	}

	example := Default()
	example.Site.Title = "My Website"
	example.Site.Description = "Pages and posts built from Markdown"

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to write config file").
			Fatal().WithContext("path", configPath).Build()
	}
	return nil
}
