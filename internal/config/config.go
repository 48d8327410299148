package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SourceMode selects the catalog backing the application
type SourceMode string

const (
	SourceJikan  SourceMode = "jikan"  // Remote anime catalog
	SourceStatic SourceMode = "static" // Built-in anime catalog
	SourceMarket SourceMode = "market" // Built-in market board with ticker
)

// Remote reports whether the mode fetches over the network
func (m SourceMode) Remote() bool {
	return m == SourceJikan
}

// Config holds all application configuration
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Ticker  TickerConfig  `mapstructure:"ticker"`
	Player  PlayerConfig  `mapstructure:"player"`
	Store   StoreConfig   `mapstructure:"store"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SourceConfig holds catalog source configuration
type SourceConfig struct {
	Mode      SourceMode    `mapstructure:"mode"`       // "jikan", "static" or "market"
	BaseURL   string        `mapstructure:"base_url"`   // Jikan API root
	Limit     int           `mapstructure:"limit"`      // Result-count limit per request
	Timeout   time.Duration `mapstructure:"timeout"`    // Per-request timeout
	RateLimit float64       `mapstructure:"rate_limit"` // Requests per second
}

// TickerConfig holds the price simulator configuration
type TickerConfig struct {
	Period       time.Duration `mapstructure:"period"`
	PriceJitter  float64       `mapstructure:"price_jitter"`  // Max relative price move per tick
	ChangeJitter float64       `mapstructure:"change_jitter"` // Max percent-change move per tick
}

// PlayerConfig holds trailer player configuration
type PlayerConfig struct {
	Command   string   `mapstructure:"command"`
	Args      []string `mapstructure:"args"`
	StartFlag string   `mapstructure:"start_flag"` // e.g., "--start=" or "--start-time="
}

// StoreConfig holds the session slot location
type StoreConfig struct {
	Path string `mapstructure:"path"` // Empty = memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	SearchDebounce time.Duration `mapstructure:"search_debounce"`
	DefaultView    string        `mapstructure:"default_view"` // "home" or "catalog"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Mode:      SourceJikan,
			BaseURL:   "https://api.jikan.moe/v4",
			Limit:     20,
			Timeout:   15 * time.Second,
			RateLimit: 3,
		},
		Ticker: TickerConfig{
			Period:       3 * time.Second,
			PriceJitter:  0.01,
			ChangeJitter: 1,
		},
		Player: PlayerConfig{
			Args: []string{},
		},
		Store: StoreConfig{
			Path: filepath.Join(dataDir(), "aniverse.db"),
		},
		UI: UIConfig{
			SearchDebounce: 350 * time.Millisecond,
			DefaultView:    "home",
		},
		Logging: LoggingConfig{
			File:  filepath.Join(dataDir(), "aniverse.log"),
			Level: "INFO",
		},
	}
}

// dataDir returns the default data directory for the current OS
func dataDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "aniverse")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "aniverse")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "aniverse")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "aniverse")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(defaultConfigPath(), ".")
}

// LoadConfigFrom loads configuration searching the given directories for config.yaml.
// ANIVERSE_* environment variables override file values (e.g. ANIVERSE_SOURCE_MODE).
func LoadConfigFrom(dirs ...string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Register every key so AutomaticEnv can see nested values
	setDefaults(v, cfg)

	// Environment variable overrides
	v.SetEnvPrefix("ANIVERSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("source.mode", string(cfg.Source.Mode))
	v.SetDefault("source.base_url", cfg.Source.BaseURL)
	v.SetDefault("source.limit", cfg.Source.Limit)
	v.SetDefault("source.timeout", cfg.Source.Timeout)
	v.SetDefault("source.rate_limit", cfg.Source.RateLimit)

	v.SetDefault("ticker.period", cfg.Ticker.Period)
	v.SetDefault("ticker.price_jitter", cfg.Ticker.PriceJitter)
	v.SetDefault("ticker.change_jitter", cfg.Ticker.ChangeJitter)

	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)
	v.SetDefault("player.start_flag", cfg.Player.StartFlag)

	v.SetDefault("store.path", cfg.Store.Path)

	v.SetDefault("ui.search_debounce", cfg.UI.SearchDebounce)
	v.SetDefault("ui.default_view", cfg.UI.DefaultView)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks values that cannot be defaulted silently
func (c *Config) Validate() error {
	switch c.Source.Mode {
	case SourceJikan, SourceStatic, SourceMarket:
	default:
		return fmt.Errorf("unknown source mode %q (want jikan, static or market)", c.Source.Mode)
	}

	// Jikan caps page size at 25
	if c.Source.Limit <= 0 || c.Source.Limit > 25 {
		c.Source.Limit = 20
	}
	if c.Ticker.Period <= 0 {
		c.Ticker.Period = 3 * time.Second
	}
	if c.UI.DefaultView != "catalog" {
		c.UI.DefaultView = "home"
	}
	return nil
}

// SaveConfig saves the current configuration to the default config file
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, defaultConfigPath())
}

// SaveConfigTo saves the configuration as config.yaml inside dir
func SaveConfigTo(cfg *Config, dir string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	// Set fields individually to ensure correct key names (snake_case)
	v.Set("source.mode", string(cfg.Source.Mode))
	v.Set("source.base_url", cfg.Source.BaseURL)
	v.Set("source.limit", cfg.Source.Limit)
	v.Set("source.timeout", cfg.Source.Timeout.String())
	v.Set("source.rate_limit", cfg.Source.RateLimit)

	v.Set("ticker.period", cfg.Ticker.Period.String())
	v.Set("ticker.price_jitter", cfg.Ticker.PriceJitter)
	v.Set("ticker.change_jitter", cfg.Ticker.ChangeJitter)

	v.Set("player.command", cfg.Player.Command)
	v.Set("player.args", cfg.Player.Args)
	v.Set("player.start_flag", cfg.Player.StartFlag)

	v.Set("store.path", cfg.Store.Path)

	v.Set("ui.search_debounce", cfg.UI.SearchDebounce.String())
	v.Set("ui.default_view", cfg.UI.DefaultView)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
