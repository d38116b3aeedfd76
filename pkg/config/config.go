package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"StockPredict/pkg/logger"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

const (
	ProviderYahoo      = "yahoo"
	ProviderTwelveData = "twelvedata"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"5000"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"3s"`
		TrustedProxies  []string      `yaml:"trusted_proxies"`
	} `yaml:"server"`
	Log     logger.Config `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Provider struct {
		Name           string        `yaml:"name" default:"yahoo"`
		BaseURL        string        `yaml:"base_url"`
		APIKey         string        `yaml:"api_key"`
		Range          string        `yaml:"range" default:"1y"`
		Timeout        time.Duration `yaml:"timeout" default:"10s"`
		RequestsPerSec float64       `yaml:"requests_per_sec" default:"5"`
	} `yaml:"provider"`
	Display struct {
		Factor         float64 `yaml:"factor" default:"85"`
		CurrencySymbol string  `yaml:"currency_symbol" default:"₹"`
		Window         int     `yaml:"window" default:"30"`
	} `yaml:"display"`
	RateLimit struct {
		Enabled bool          `yaml:"enabled" default:"false"`
		Limit   int           `yaml:"limit" default:"60"`
		Window  time.Duration `yaml:"window" default:"1m"`
	} `yaml:"ratelimit"`
	Redis struct {
		Enabled  bool   `yaml:"enabled" default:"false"`
		Host     string `yaml:"host" default:"localhost"`
		Port     int    `yaml:"port" default:"6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db" default:"0"`
		Prefix   string `yaml:"prefix" default:"stockpredict"`
	} `yaml:"redis"`
}

// Default returns a config populated only from struct defaults.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	return &c
}

// Load reads and parses a YAML configuration file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	c, err := load(path)
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func load(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("PROVIDER"); v != "" {
		c.Provider.Name = strings.ToLower(v)
	}
	if v := os.Getenv("TWELVEDATA_API_KEY"); v != "" {
		c.Provider.APIKey = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Redis.Enabled = true
		c.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Redis.Port = p
			}
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	switch c.Provider.Name {
	case ProviderYahoo:
	case ProviderTwelveData:
		if c.Provider.APIKey == "" {
			return fmt.Errorf("provider.api_key is required for provider '%s'", ProviderTwelveData)
		}
	default:
		return fmt.Errorf("provider.name must be '%s' or '%s', got '%s'", ProviderYahoo, ProviderTwelveData, c.Provider.Name)
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider.timeout must be positive")
	}
	if c.Display.Factor <= 0 {
		return fmt.Errorf("display.factor must be positive")
	}
	if c.Display.Window <= 0 {
		return fmt.Errorf("display.window must be positive")
	}
	for _, cidr := range c.Server.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("server.trusted_proxies: invalid CIDR '%s'", cidr)
		}
	}
	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("ratelimit.limit and ratelimit.window must be positive when enabled")
	}
	return nil
}
