// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

// Duration accepts "15s"-style scalars; yaml.v3 does not decode those into
// time.Duration on its own.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type ServerConfig struct {
	Port            int      `yaml:"port"`
	RequestTimeout  Duration `yaml:"request_timeout"`
	CORSOrigins     []string `yaml:"cors_origins"`
	RateLimitPerMin int      `yaml:"rate_limit_per_min"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string   `yaml:"url"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
	TTL      Duration `yaml:"ttl"`
}

type GatewayConfig struct {
	Razorpay struct {
		KeyID     string `yaml:"key_id"`
		KeySecret string `yaml:"key_secret"`
	} `yaml:"razorpay"`
}

type IdentityConfig struct {
	Mode       string `yaml:"mode"` // gotrue | jwt
	ProjectURL string `yaml:"project_url"`
	ServiceKey string `yaml:"service_key"`
	JWTSecret  string `yaml:"jwt_secret"`
}

type PlanConfig struct {
	ID          string `yaml:"id"`
	AmountPaise int64  `yaml:"amount_paise"`
	Currency    string `yaml:"currency"`
	Term        string `yaml:"term"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Gateway  GatewayConfig  `yaml:"gateway"`
	Identity IdentityConfig `yaml:"identity"`
	Plans    []PlanConfig   `yaml:"plans"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads, defaults, and validates the config file. Validation is
// fail-fast: the process refuses to start without its secrets.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = Duration(15 * time.Second)
	}
	if cfg.Server.RateLimitPerMin <= 0 {
		cfg.Server.RateLimitPerMin = 30
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = Duration(5 * time.Minute)
	}
	if cfg.Identity.Mode == "" {
		cfg.Identity.Mode = "gotrue"
	}

	cfg.Runtime.Dev = dev
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Database.URL == "" {
		return errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return errors.New("redis.url is required")
	}
	if cfg.Gateway.Razorpay.KeyID == "" || cfg.Gateway.Razorpay.KeySecret == "" {
		return errors.New("gateway.razorpay.key_id and key_secret are required")
	}
	switch cfg.Identity.Mode {
	case "gotrue":
		if cfg.Identity.ProjectURL == "" || cfg.Identity.ServiceKey == "" {
			return errors.New("identity.project_url and service_key are required in gotrue mode")
		}
	case "jwt":
		if cfg.Identity.JWTSecret == "" {
			return errors.New("identity.jwt_secret is required in jwt mode")
		}
	default:
		return fmt.Errorf("identity.mode %q is not supported", cfg.Identity.Mode)
	}
	if len(cfg.Plans) == 0 {
		return errors.New("at least one plan is required")
	}
	for _, p := range cfg.Plans {
		if p.ID == "" || p.AmountPaise <= 0 {
			return fmt.Errorf("plan %q must have an id and a positive amount", p.ID)
		}
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		return errors.New("server.cors_origins is required")
	}
	for _, o := range cfg.Server.CORSOrigins {
		// Wildcard is only acceptable when the server is not otherwise
		// exposed, which for this binary means dev mode.
		if o == "*" && !cfg.Runtime.Dev {
			return errors.New("server.cors_origins may not contain * outside dev mode")
		}
	}
	return nil
}
