package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

type Config struct {
	Http      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	UI        UIConfig        `yaml:"ui"`
}

type HTTPConfig struct {
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type ArtifactsConfig struct {
	Store      string `yaml:"store"`
	Dir        string `yaml:"dir"`
	SQLitePath string `yaml:"sqlite_path"`
	Scaler     string `yaml:"scaler"`
	Model      string `yaml:"model"`
	ScalerKind string `yaml:"scaler_kind"`
	ModelKind  string `yaml:"model_kind"`
	Watch      bool   `yaml:"watch"`
	CacheSize  int    `yaml:"cache_size"`
}

type MetricsConfig struct {
	StatsdAddr string `yaml:"statsd_addr"`
	Namespace  string `yaml:"namespace"`
}

type UIConfig struct {
	Locale string `yaml:"locale"`
	Title  string `yaml:"title"`
}

// Default returns a configuration that serves the form on :8080 and reads
// artifacts from ./models.
func Default() Config {
	return Config{
		Http: HTTPConfig{Port: 8080, Timeout: 30 * time.Second},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Artifacts: ArtifactsConfig{
			Store:      StoreFile,
			Dir:        "models",
			SQLitePath: "data/artifacts.db",
			Scaler:     "gpa_scaler.json",
			Model:      "student_gpa_model.json",
			CacheSize:  1024,
		},
		Metrics: MetricsConfig{Namespace: "gpapredict."},
		UI:      UIConfig{Locale: "en", Title: "Student GPA Predictor"},
	}
}

// Load reads the YAML file at path over the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return &config, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&config); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Artifacts.Store {
	case StoreFile, StoreSQLite:
	default:
		return fmt.Errorf("artifacts.store must be %q or %q, got %q", StoreFile, StoreSQLite, c.Artifacts.Store)
	}
	if c.Artifacts.Scaler == "" || c.Artifacts.Model == "" {
		return fmt.Errorf("artifacts.scaler and artifacts.model are required")
	}
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.Http.Port)
	}
	if c.Artifacts.Watch && c.Artifacts.Store != StoreFile {
		return fmt.Errorf("artifacts.watch requires the %q store", StoreFile)
	}
	return nil
}

// Resolve looks for name in the working directory, then its parent, so the
// binary can be started from cmd/ as well as the repository root. Relative
// paths in the returned config are rebased onto the config's directory.
func Resolve(name string) (*Config, string, error) {
	path := name
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if parent := filepath.Join("..", name); fileExists(parent) {
			path = parent
		}
	}

	config, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	if dir := filepath.Dir(path); dir != "." {
		config.Artifacts.Dir = rebase(dir, config.Artifacts.Dir)
		config.Artifacts.SQLitePath = rebase(dir, config.Artifacts.SQLitePath)
		config.Log.File = rebase(dir, config.Log.File)
	}
	return config, path, nil
}

func rebase(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
