package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./postsync.db" {
			t.Errorf("expected database path ./postsync.db, got %s", config.Database.Path)
		}

		if config.Repository.ContentDir != "content/post" {
			t.Errorf("expected content dir content/post, got %s", config.Repository.ContentDir)
		}

		if config.Repository.Depth != 1 {
			t.Errorf("expected clone depth 1, got %d", config.Repository.Depth)
		}

		if len(config.Importer.Extensions) != 1 || config.Importer.Extensions[0] != ".markdown" {
			t.Errorf("expected extensions [.markdown], got %v", config.Importer.Extensions)
		}

		if config.Importer.DefaultAuthor != "EBK" {
			t.Errorf("expected default author EBK, got %s", config.Importer.DefaultAuthor)
		}

		if config.Importer.DefaultDraft != "False" {
			t.Errorf("expected default draft False, got %s", config.Importer.DefaultDraft)
		}

		if config.Importer.DefaultDate != "1970-01-01" {
			t.Errorf("expected default date 1970-01-01, got %s", config.Importer.DefaultDate)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); !errors.Is(err, os.ErrExist) {
			t.Errorf("creating config file again should fail with ErrExist, got %v", err)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"

[repository]
path = "/srv/website"
url = "https://example.com/website.git"

[importer]
extensions = [".md", ".markdown"]
on_error = "abort"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Repository.URL != "https://example.com/website.git" {
			t.Errorf("expected repository url to be set, got %s", config.Repository.URL)
		}
		if len(config.Importer.Extensions) != 2 {
			t.Errorf("expected 2 extensions, got %v", config.Importer.Extensions)
		}
		if config.Importer.OnError != OnErrorAbort {
			t.Errorf("expected on_error abort, got %s", config.Importer.OnError)
		}
		if config.Importer.DefaultTitle != "Untitled" {
			t.Errorf("unset keys should keep defaults, got title %q", config.Importer.DefaultTitle)
		}
		if config.Repository.ContentDir != "content/post" {
			t.Errorf("unset keys should keep defaults, got content dir %q", config.Repository.ContentDir)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv(EnvDatabase, "/tmp/env.db")
		t.Setenv(EnvRepo, "/tmp/website")
		t.Setenv(EnvRepoURL, "https://example.com/env.git")
		t.Setenv(EnvRepoToken, "")

		config := DefaultConfig()
		config.Repository.Token = "from-file"
		config.ApplyEnv()

		if config.Database.Path != "/tmp/env.db" {
			t.Errorf("expected DATABASE override, got %s", config.Database.Path)
		}
		if config.Repository.Path != "/tmp/website" {
			t.Errorf("expected EBK_WEBSITE_REPO override, got %s", config.Repository.Path)
		}
		if config.Repository.URL != "https://example.com/env.git" {
			t.Errorf("expected EBK_WEBSITE_REPO_URL override, got %s", config.Repository.URL)
		}
		if config.Repository.Token != "from-file" {
			t.Errorf("blank env var should not override, got %s", config.Repository.Token)
		}
	})

	t.Run("LoadEnvFile", func(t *testing.T) {
		t.Run("missing file is ignored", func(t *testing.T) {
			if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
				t.Errorf("expected nil error, got %v", err)
			}
		})

		t.Run("loads variables", func(t *testing.T) {
			t.Setenv(EnvRepoURL, "")
			os.Unsetenv(EnvRepoURL)

			envPath := filepath.Join(t.TempDir(), ".env")
			if err := os.WriteFile(envPath, []byte("EBK_WEBSITE_REPO_URL=https://example.com/dotenv.git\n"), 0644); err != nil {
				t.Fatalf("failed to write env file: %v", err)
			}

			if err := LoadEnvFile(envPath); err != nil {
				t.Fatalf("failed to load env file: %v", err)
			}

			if got := os.Getenv(EnvRepoURL); got != "https://example.com/dotenv.git" {
				t.Errorf("expected variable from env file, got %q", got)
			}
		})
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name    string
			mutate  func(c *Config)
			wantErr bool
		}{
			{name: "defaults", mutate: func(c *Config) {}},
			{name: "empty database path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: true},
			{name: "unknown missing_url policy", mutate: func(c *Config) { c.Importer.MissingURL = "ignore" }, wantErr: true},
			{name: "unknown on_error policy", mutate: func(c *Config) { c.Importer.OnError = "retry" }, wantErr: true},
			{name: "unknown front matter mode", mutate: func(c *Config) { c.Importer.FrontMatter = "loose" }, wantErr: true},
			{name: "no extensions", mutate: func(c *Config) { c.Importer.Extensions = nil }, wantErr: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)

				err := config.Validate()
				if (err != nil) != tt.wantErr {
					t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
				if err != nil && !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("ValidateSync", func(t *testing.T) {
		config := DefaultConfig()
		if err := config.ValidateSync(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected missing repository url to fail, got %v", err)
		}

		config.Repository.URL = "https://example.com/website.git"
		if err := config.ValidateSync(); err != nil {
			t.Errorf("expected valid repository config, got %v", err)
		}
	})
}
