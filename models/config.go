package models

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"deepl-desktop/internal/config"
)

// Config holds user settings. Values come from the settings file, then
// environment variables (a .env file in the working directory is honoured).
type Config struct {
	// DeepL authentication key; keys ending in ":fx" use the free endpoint
	APIKey string `json:"api_key" env:"DEEPL_API_KEY"`
	// Overrides the endpoint derived from the key
	BaseURL string `json:"base_url,omitempty" env:"DEEPL_BASE_URL"`

	DefaultTargetLang string `json:"default_target_lang" env:"DEEPL_TARGET_LANG" env-default:"ID"`

	// Tesseract settings
	OCRLanguages  string `json:"ocr_languages" env:"OCR_LANGUAGES" env-default:"eng+ind"`
	TesseractPath string `json:"tesseract_path,omitempty" env:"TESSERACT_CMD"`

	LogLevel string `json:"log_level" env:"LOG_LEVEL" env-default:"info"`

	// Shortest wait between document status polls, in seconds
	MinPollSeconds float64 `json:"min_poll_seconds" env:"DEEPL_MIN_POLL_SECONDS" env-default:"0"`

	path string
}

func DefaultConfig() *Config {
	return &Config{
		DefaultTargetLang: config.DefaultTargetLang,
		OCRLanguages:      config.DefaultOCRLanguages,
		LogLevel:          "info",
	}
}

// DefaultConfigPath is ~/.config/deepl-desktop/config.json.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "deepl-desktop", "config.json")
}

func (c *Config) ConfigPath() string {
	if c.path != "" {
		return c.path
	}
	return DefaultConfigPath()
}

// LoadConfig reads the settings file at DefaultConfigPath.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigPath())
}

// LoadConfigFrom reads the settings file at path, if present, and applies
// the environment on top. A missing file is not an error.
func LoadConfigFrom(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{path: path}
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, err
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	return cfg, nil
}

func (c *Config) Save() error {
	configPath := c.ConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}

	// the file holds the API key
	return os.WriteFile(configPath, data, 0600)
}

// HasAPIKey reports whether a key is configured.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func (c *Config) MinPollInterval() time.Duration {
	if c.MinPollSeconds <= 0 {
		return 0
	}
	return time.Duration(c.MinPollSeconds * float64(time.Second))
}
