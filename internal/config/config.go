package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	defaultWorkers                 = 6
	defaultResolveTimeoutSeconds   = 10
	defaultDecompileTimeoutSeconds = 30
)

// SteamConfig carries manual path overrides. Empty fields mean
// auto-discovery across mounted volumes.
type SteamConfig struct {
	WorkshopDir string `yaml:"workshop_dir"`
	GmadPath    string `yaml:"gmad_path"`
	CacheDir    string `yaml:"cache_dir"`
}

type TranslatorConfig struct {
	Workers                 int  `yaml:"workers"`
	Retranslate             bool `yaml:"retranslate"`
	ResolveTimeoutSeconds   int  `yaml:"resolve_timeout_seconds"`
	DecompileTimeoutSeconds int  `yaml:"decompile_timeout_seconds"`
}

func (c *TranslatorConfig) ResolveTimeout() time.Duration {
	return time.Duration(c.ResolveTimeoutSeconds) * time.Second
}

func (c *TranslatorConfig) DecompileTimeout() time.Duration {
	return time.Duration(c.DecompileTimeoutSeconds) * time.Second
}

type Config struct {
	LogLevel   string           `yaml:"log_level"`
	RedisURL   string           `yaml:"redis_url"`
	Steam      SteamConfig      `yaml:"steam"`
	Translator TranslatorConfig `yaml:"translator"`
}

func (c *Config) SetDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = LogLevelInfo
	}
	if c.Translator.Workers < 1 {
		c.Translator.Workers = defaultWorkers
	}
	if c.Translator.ResolveTimeoutSeconds <= 0 {
		c.Translator.ResolveTimeoutSeconds = defaultResolveTimeoutSeconds
	}
	if c.Translator.DecompileTimeoutSeconds <= 0 {
		c.Translator.DecompileTimeoutSeconds = defaultDecompileTimeoutSeconds
	}
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("unknown log level: %s", c.LogLevel)
	}

	if c.Translator.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Translator.Workers)
	}

	return nil
}

// Load reads the config file, applies .env overrides and defaults.
// A missing file yields a default config so the tool works out of the box.
func Load(fileName string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	data, err := os.ReadFile(fileName)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("cannot read config file: %w", err)
	default:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
			return nil, fmt.Errorf("cannot parse config file: %w", err)
		}
	}

	if url := os.Getenv("TRANSLATOR_REDIS_URL"); url != "" {
		cfg.RedisURL = url
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func MustLoad(fileName string) *Config {
	cfg, err := Load(fileName)
	if err != nil {
		panic(err)
	}

	return cfg
}
