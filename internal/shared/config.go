package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Importer policy values accepted in [ImporterConfig].
const (
	MissingURLGenerate = "generate"
	MissingURLReject   = "reject"

	OnErrorContinue = "continue"
	OnErrorAbort    = "abort"

	FrontMatterLenient = "lenient"
	FrontMatterStrict  = "strict"
)

// Environment variables that override values from the config file.
const (
	EnvDatabase  = "DATABASE"
	EnvRepo      = "EBK_WEBSITE_REPO"
	EnvRepoURL   = "EBK_WEBSITE_REPO_URL"
	EnvRepoToken = "EBK_WEBSITE_REPO_TOKEN"
	EnvLogLevel  = "POSTSYNC_LOG_LEVEL"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database   DatabaseConfig   `toml:"database"`
	Repository RepositoryConfig `toml:"repository"`
	Importer   ImporterConfig   `toml:"importer"`
	Logging    LoggingConfig    `toml:"logging"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// RepositoryConfig locates the content repository locally and remotely.
type RepositoryConfig struct {
	Path       string `toml:"path"`
	URL        string `toml:"url"`
	Branch     string `toml:"branch"`
	Token      string `toml:"token"`
	Depth      int    `toml:"depth"`
	ContentDir string `toml:"content_dir"`
}

// ImporterConfig holds field defaults and failure policies for the post importer.
type ImporterConfig struct {
	Extensions       []string `toml:"extensions"`
	DefaultAuthor    string   `toml:"default_author"`
	DefaultTitle     string   `toml:"default_title"`
	DefaultDraft     string   `toml:"default_draft"`
	DefaultDate      string   `toml:"default_date"`
	MissingURL       string   `toml:"missing_url"`
	OnError          string   `toml:"on_error"`
	ReportDuplicates bool     `toml:"report_duplicates"`
	FrontMatter      string   `toml:"front_matter"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, os.ErrExist)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnvFile loads variables from a dotenv file into the process environment.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values with any of the recognised environment variables that are set.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvDatabase); ok && v != "" {
		c.Database.Path = v
	}
	if v, ok := os.LookupEnv(EnvRepo); ok && v != "" {
		c.Repository.Path = v
	}
	if v, ok := os.LookupEnv(EnvRepoURL); ok && v != "" {
		c.Repository.URL = v
	}
	if v, ok := os.LookupEnv(EnvRepoToken); ok && v != "" {
		c.Repository.Token = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Database),
		validation.Field(&c.Importer),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate implements [validation.Validatable].
func (d DatabaseConfig) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Path, validation.Required),
		validation.Field(&d.MaxOpenConns, validation.Min(0)),
		validation.Field(&d.MaxIdleConns, validation.Min(0)),
	)
}

// Validate implements [validation.Validatable].
func (r RepositoryConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Path, validation.Required),
		validation.Field(&r.URL, validation.Required),
		validation.Field(&r.Depth, validation.Min(0)),
		validation.Field(&r.ContentDir, validation.Required),
	)
}

// Validate implements [validation.Validatable].
func (i ImporterConfig) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Extensions, validation.Required),
		validation.Field(&i.MissingURL, validation.In(MissingURLGenerate, MissingURLReject)),
		validation.Field(&i.OnError, validation.In(OnErrorContinue, OnErrorAbort)),
		validation.Field(&i.FrontMatter, validation.In(FrontMatterLenient, FrontMatterStrict)),
	)
}

// ValidateSync checks the repository settings needed to clone or pull content.
func (c *Config) ValidateSync() error {
	if err := c.Repository.Validate(); err != nil {
		return fmt.Errorf("%w: repository: %v", ErrInvalidConfig, err)
	}
	return nil
}
